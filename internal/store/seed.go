package store

import (
	"time"

	"github.com/Prabesh2159/prestige-builds-locale-wise/internal/model"
)

// seed loads the demo content the site ships with. The collections always
// start from this state; nothing here survives a restart.
func seed(s *Store) {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	s.notices = []model.Notice{
		{
			ID:          "notice-1",
			Title:       "Annual Examination Schedule Released - Check Academic Calendar",
			Description: "The examination schedule for the upcoming annual exams has been released. Students and parents are requested to check the academic calendar for detailed timing.",
			FullContent: "The examination schedule for the upcoming annual exams has been released.\n\nThe examinations will commence from January 20, 2025, and will continue till February 15, 2025. Hall tickets will be distributed from January 15, 2025. Students must report 30 minutes before the exam and carry necessary stationery items. Mobile phones are strictly prohibited in the examination hall.\n\nFor any queries, please contact the examination cell.",
			Date:        day(2024, time.December, 20),
			Attachments: []model.Attachment{
				{ID: "notice-1-a1", URL: "https://images.unsplash.com/photo-1434030216411-0b793f4b4173?w=800", Kind: model.FileKindImage, DisplayName: "exam-schedule.jpg"},
			},
			IsFeatured: true,
		},
		{
			ID:          "notice-2",
			Title:       "Congratulations to our students for winning Inter-School Sports Championship!",
			Description: "Our school has won the prestigious Inter-School Sports Championship. Congratulations to all participating students and coaches.",
			FullContent: "We are proud to announce that our school has won the prestigious Inter-School Sports Championship held at the National Stadium from December 10-15, 2024.\n\nOur students secured first position in basketball, junior football, athletics and table tennis. We thank all the coaches, parents, and staff for their continuous support.",
			Date:        day(2024, time.December, 18),
			Attachments: []model.Attachment{
				{ID: "notice-2-a1", URL: "https://images.unsplash.com/photo-1546519638-68e109498ffc?w=800", Kind: model.FileKindImage, DisplayName: "championship.jpg"},
			},
			IsFeatured: true,
		},
		{
			ID:          "notice-3",
			Title:       "Winter Vacation: December 25, 2024 - January 5, 2025",
			Description: "The school will remain closed for winter vacation from December 25, 2024, to January 5, 2025. Classes resume on January 6, 2025.",
			FullContent: "The school will remain closed for winter vacation from December 25, 2024, to January 5, 2025. Classes will resume on January 6, 2025.\n\nDuring the vacation the school office will remain open from 10 AM to 2 PM for urgent matters. Students are encouraged to complete their holiday assignments.",
			Date:        day(2024, time.December, 15),
		},
		{
			ID:          "notice-4",
			Title:       "Annual Cultural Program on January 15, 2025 - Parents are cordially invited",
			Description: "The Annual Cultural Program 2025 will be held on January 15, 2025. All parents and guardians are cordially invited to attend.",
			FullContent: "We are pleased to invite all parents and guardians to our Annual Cultural Program 2025 at the School Auditorium, January 15, 10:00 AM onwards.\n\nPlease confirm your attendance by January 10, 2025, at the school office or through the class teacher.",
			Date:        day(2024, time.December, 10),
		},
		{
			ID:          "notice-5",
			Title:       "Admission Open for Academic Year 2025-2026 - Apply Now!",
			Description: "Admissions are now open for the academic year 2025-2026 for classes Nursery to Class 10.",
			FullContent: "Admissions are now open for the academic year 2025-2026 for classes Nursery to Class 10.\n\nApplication deadline: February 28, 2025. Entrance tests run March 10-15, with results on March 25. Required documents: birth certificate, previous academic records, four passport-size photographs and parents' ID proof.",
			Date:        day(2024, time.December, 5),
			IsFeatured:  true,
		},
	}

	s.albums = []model.GalleryAlbum{
		{
			ID:         "album-1",
			Title:      "School Building & Campus",
			CoverImage: "https://images.unsplash.com/photo-1580582932707-520aed937b7b?w=800",
			Images: []model.GalleryImage{
				{ID: "album-1-1", URL: "https://images.unsplash.com/photo-1580582932707-520aed937b7b?w=800", AltText: "Main Building"},
				{ID: "album-1-2", URL: "https://images.unsplash.com/photo-1562774053-701939374585?w=800", AltText: "Campus View"},
				{ID: "album-1-3", URL: "https://images.unsplash.com/photo-1541829070764-84a7d30dd3f3?w=800", AltText: "School Gate"},
			},
			Date: day(2024, time.December, 1),
		},
		{
			ID:         "album-2",
			Title:      "Classroom Activities",
			CoverImage: "https://images.unsplash.com/photo-1427504494785-3a9ca7044f45?w=800",
			Images: []model.GalleryImage{
				{ID: "album-2-1", URL: "https://images.unsplash.com/photo-1427504494785-3a9ca7044f45?w=800", AltText: "Students Learning"},
				{ID: "album-2-2", URL: "https://images.unsplash.com/photo-1509062522246-3755977927d7?w=800", AltText: "Teacher Teaching"},
			},
			Date: day(2024, time.November, 28),
		},
		{
			ID:         "album-3",
			Title:      "Annual Sports Day 2024",
			CoverImage: "https://images.unsplash.com/photo-1546519638-68e109498ffc?w=800",
			Images: []model.GalleryImage{
				{ID: "album-3-1", URL: "https://images.unsplash.com/photo-1546519638-68e109498ffc?w=800", AltText: "Sports Day Opening"},
				{ID: "album-3-2", URL: "https://images.unsplash.com/photo-1574629810360-7efbbe195018?w=800", AltText: "Football Match"},
				{ID: "album-3-3", URL: "https://images.unsplash.com/photo-1587280501635-68a0e82cd5ff?w=800", AltText: "Prize Distribution"},
			},
			Date: day(2024, time.November, 20),
		},
	}

	s.messages = []model.ContactMessage{
		{
			ID:       "message-1",
			Name:     "Ramesh Adhikari",
			Email:    "ramesh.adhikari@example.com",
			Phone:    "+977-9841000001",
			Body:     "I would like to know the admission process for Class 5 for my daughter. Please share the fee structure as well.",
			Received: day(2024, time.December, 19),
		},
		{
			ID:       "message-2",
			Name:     "Sunita Rai",
			Email:    "sunita.rai@example.com",
			Phone:    "+977-9841000002",
			Body:     "Does the school provide transportation facility from Itahari? What are the timings?",
			Received: day(2024, time.December, 17),
			IsRead:   true,
		},
		{
			ID:       "message-3",
			Name:     "Bikash Shrestha",
			Email:    "bikash.shrestha@example.com",
			Phone:    "+977-9841000003",
			Body:     "I want to schedule a campus visit before enrolling my son. When would be a good time?",
			Received: day(2024, time.December, 14),
		},
	}

	s.admissions = []model.AdmissionApplication{
		{
			ID:            "admission-1",
			ApplicantName: "Aarav Karki",
			Phone:         "+977-9852000001",
			Email:         "parents.karki@example.com",
			Address:       "Jhumka, Sunsari",
			ClassApplying: "Class 1",
			Body:          "Seeking admission for the 2025-2026 academic year.",
			Submitted:     day(2024, time.December, 16),
			Status:        model.AdmissionPending,
		},
		{
			ID:            "admission-2",
			ApplicantName: "Prisha Limbu",
			Phone:         "+977-9852000002",
			Email:         "limbu.family@example.com",
			Address:       "Dharan-12",
			ClassApplying: "Nursery",
			Body:          "Our daughter is three years old and we would like her to start in Nursery.",
			Submitted:     day(2024, time.December, 12),
			Status:        model.AdmissionReviewed,
		},
		{
			ID:            "admission-3",
			ApplicantName: "Nischal Tamang",
			Phone:         "+977-9852000003",
			Email:         "tamang.home@example.com",
			Address:       "Ramdhuni-05, Jhumka",
			ClassApplying: "Class 7",
			Body:          "Transferring from another school; previous academic records available on request.",
			Submitted:     day(2024, time.December, 8),
			Status:        model.AdmissionApproved,
		},
	}
}
