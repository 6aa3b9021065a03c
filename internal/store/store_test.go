package store

import (
	"errors"
	"testing"

	"github.com/Prabesh2159/prestige-builds-locale-wise/internal/model"
)

func TestCreateNoticeDefaults(t *testing.T) {
	s := New()

	notice, err := s.CreateNotice(NoticeInput{Title: "Exam Notice"})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if notice.Description != "Exam Notice" {
		t.Fatalf("expected description to fall back to title, got %q", notice.Description)
	}
	if notice.FullContent != "Exam Notice" {
		t.Fatalf("expected full content to fall back to title, got %q", notice.FullContent)
	}
	if len(notice.Attachments) != 0 {
		t.Fatalf("expected no attachments")
	}
	if notice.ID == "" {
		t.Fatalf("expected an id to be assigned")
	}
}

func TestCreateNoticeRequiresTitle(t *testing.T) {
	s := New()
	if _, err := s.CreateNotice(NoticeInput{Title: "   "}); err == nil {
		t.Fatalf("expected validation error for blank title")
	}
}

func TestNoticesNewestFirst(t *testing.T) {
	s := New()
	first, _ := s.CreateNotice(NoticeInput{Title: "first"})
	second, _ := s.CreateNotice(NoticeInput{Title: "second"})

	notices := s.Notices()
	if len(notices) != 2 {
		t.Fatalf("expected 2 notices, got %d", len(notices))
	}
	if notices[0].ID != second.ID || notices[1].ID != first.ID {
		t.Fatalf("expected newest-first ordering")
	}
}

func TestCollectionSizeInvariant(t *testing.T) {
	s := New()
	creates := 5
	ids := make([]string, 0, creates)
	for i := 0; i < creates; i++ {
		n, err := s.CreateNotice(NoticeInput{Title: "notice"})
		if err != nil {
			t.Fatalf("create error: %v", err)
		}
		ids = append(ids, n.ID)
	}

	matched := 0
	if err := s.DeleteNotice(ids[0]); err == nil {
		matched++
	}
	if err := s.DeleteNotice(ids[2]); err == nil {
		matched++
	}
	if err := s.DeleteNotice("no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found for unknown id, got %v", err)
	}

	if got := len(s.Notices()); got != creates-matched {
		t.Fatalf("expected %d notices, got %d", creates-matched, got)
	}
}

func TestUpdateNoticeNotFound(t *testing.T) {
	s := New()
	title := "renamed"
	if _, err := s.UpdateNotice("missing", NoticePatch{Title: &title}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAttachmentAddRemove(t *testing.T) {
	s := New()
	notice, _ := s.CreateNotice(NoticeInput{Title: "with files"})

	updated, err := s.AddAttachments(notice.ID, []model.Attachment{
		{ID: "a1", URL: "/files/a1.jpg", Kind: model.FileKindImage, DisplayName: "a1.jpg"},
		{ID: "a2", URL: "/files/a2.pdf", Kind: model.FileKindDocument, DisplayName: "a2.pdf"},
	})
	if err != nil {
		t.Fatalf("add attachments error: %v", err)
	}
	if len(updated.Attachments) != 2 {
		t.Fatalf("expected 2 attachments, got %d", len(updated.Attachments))
	}

	updated, err = s.RemoveAttachment(notice.ID, "a1")
	if err != nil {
		t.Fatalf("remove attachment error: %v", err)
	}
	if len(updated.Attachments) != 1 || updated.Attachments[0].ID != "a2" {
		t.Fatalf("expected only a2 to remain")
	}

	if _, err := s.RemoveAttachment(notice.ID, "a1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found for already-removed attachment, got %v", err)
	}
}

func TestCreateAlbumCoverAndOrder(t *testing.T) {
	s := New()
	album, err := s.CreateAlbum("Sports Day", []model.GalleryImage{
		{ID: "img-a", URL: "/files/a.jpg", AltText: "A"},
		{ID: "img-b", URL: "/files/b.jpg", AltText: "B"},
	})
	if err != nil {
		t.Fatalf("create album error: %v", err)
	}
	if album.CoverImage != "/files/a.jpg" {
		t.Fatalf("expected cover to be first image, got %q", album.CoverImage)
	}
	if len(album.Images) != 2 || album.Images[0].ID != "img-a" || album.Images[1].ID != "img-b" {
		t.Fatalf("expected image order preserved")
	}
}

func TestCreateAlbumValidation(t *testing.T) {
	s := New()
	if _, err := s.CreateAlbum("", []model.GalleryImage{{URL: "/files/a.jpg"}}); err == nil {
		t.Fatalf("expected validation error for empty title")
	}
	if _, err := s.CreateAlbum("Empty", nil); err == nil {
		t.Fatalf("expected validation error for zero images")
	}
}

func TestRemoveLastImageKeepsCover(t *testing.T) {
	s := New()
	album, _ := s.CreateAlbum("Single", []model.GalleryImage{{ID: "only", URL: "/files/only.jpg", AltText: "Only"}})

	updated, err := s.RemoveImage(album.ID, "only")
	if err != nil {
		t.Fatalf("remove image error: %v", err)
	}
	if len(updated.Images) != 0 {
		t.Fatalf("expected no images left")
	}
	if updated.CoverImage != "/files/only.jpg" {
		t.Fatalf("expected cover to retain prior value, got %q", updated.CoverImage)
	}
}

func TestRemoveImageRecomputesCover(t *testing.T) {
	s := New()
	album, _ := s.CreateAlbum("Two", []model.GalleryImage{
		{ID: "one", URL: "/files/one.jpg", AltText: "One"},
		{ID: "two", URL: "/files/two.jpg", AltText: "Two"},
	})

	updated, err := s.RemoveImage(album.ID, "one")
	if err != nil {
		t.Fatalf("remove image error: %v", err)
	}
	if updated.CoverImage != "/files/two.jpg" {
		t.Fatalf("expected cover to move to first remaining image, got %q", updated.CoverImage)
	}
}

func TestAddImagesDefaultsAltText(t *testing.T) {
	s := New()
	album, _ := s.CreateAlbum("Trip", []model.GalleryImage{{URL: "/files/one.jpg", AltText: "One"}})

	updated, err := s.AddImages(album.ID, []model.GalleryImage{{URL: "/files/two.jpg"}})
	if err != nil {
		t.Fatalf("add images error: %v", err)
	}
	if updated.Images[1].AltText == "" {
		t.Fatalf("expected default alt text")
	}
	if updated.Images[1].ID == "" {
		t.Fatalf("expected generated image id")
	}
}

func TestToggleReadTwiceRestoresState(t *testing.T) {
	s := New()
	msg, err := s.CreateMessage("Parent", "parent@example.com", "+977-1", "Question about fees")
	if err != nil {
		t.Fatalf("create message error: %v", err)
	}
	initial := msg.IsRead

	once, _ := s.ToggleRead(msg.ID)
	if once.IsRead == initial {
		t.Fatalf("expected toggle to flip state")
	}
	twice, _ := s.ToggleRead(msg.ID)
	if twice.IsRead != initial {
		t.Fatalf("expected double toggle to restore state")
	}
}

func TestAdmissionStatusDirectTransition(t *testing.T) {
	s := New()
	admission, err := s.CreateAdmission(AdmissionInput{ApplicantName: "Aarav", ClassApplying: "Class 1"})
	if err != nil {
		t.Fatalf("create admission error: %v", err)
	}
	if admission.Status != model.AdmissionPending {
		t.Fatalf("expected new admissions to be pending")
	}

	updated, err := s.SetStatus(admission.ID, model.AdmissionApproved)
	if err != nil {
		t.Fatalf("set status error: %v", err)
	}
	if updated.Status != model.AdmissionApproved {
		t.Fatalf("expected pending to move directly to approved")
	}

	if _, err := s.SetStatus(admission.ID, "archived"); err == nil {
		t.Fatalf("expected unknown status to be rejected")
	}
}

func TestDerivedCounts(t *testing.T) {
	s := New()
	s.CreateMessage("A", "a@example.com", "", "hello")
	read, _ := s.CreateMessage("B", "b@example.com", "", "hi")
	s.ToggleRead(read.ID)
	s.CreateAdmission(AdmissionInput{ApplicantName: "One", ClassApplying: "Class 1"})
	approved, _ := s.CreateAdmission(AdmissionInput{ApplicantName: "Two", ClassApplying: "Class 2"})
	s.SetStatus(approved.ID, model.AdmissionApproved)

	if got := s.UnreadMessageCount(); got != 1 {
		t.Fatalf("expected 1 unread message, got %d", got)
	}
	if got := s.PendingAdmissionCount(); got != 1 {
		t.Fatalf("expected 1 pending admission, got %d", got)
	}

	summary := s.Summary()
	if summary.Messages != 2 || summary.Admissions != 2 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestSeededStore(t *testing.T) {
	s := NewSeeded()
	if len(s.Notices()) == 0 || len(s.Albums()) == 0 || len(s.Messages()) == 0 || len(s.Admissions()) == 0 {
		t.Fatalf("expected all collections to be seeded")
	}
	for _, album := range s.Albums() {
		if len(album.Images) == 0 {
			t.Fatalf("seeded album %s has no images", album.ID)
		}
		if album.CoverImage != album.Images[0].URL {
			t.Fatalf("seeded album %s cover does not match first image", album.ID)
		}
	}
}
