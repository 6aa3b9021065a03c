package store

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Prabesh2159/prestige-builds-locale-wise/internal/model"
)

var ErrNotFound = errors.New("not_found")

type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Store holds the four admin collections in memory. Every mutation is a
// single synchronous step under one lock, so no operation can observe a
// partially mutated collection. Contents reset to seed data on restart.
type Store struct {
	mu         sync.Mutex
	notices    []model.Notice
	albums     []model.GalleryAlbum
	messages   []model.ContactMessage
	admissions []model.AdmissionApplication

	now   func() time.Time
	newID func() string
}

func New() *Store {
	return &Store{
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// NewSeeded returns a store pre-populated with the demo site content.
func NewSeeded() *Store {
	s := New()
	seed(s)
	return s
}

type Counts struct {
	Notices           int
	Albums            int
	Messages          int
	UnreadMessages    int
	Admissions        int
	PendingAdmissions int
}

// Summary recomputes the derived counts from current collection state.
func (s *Store) Summary() Counts {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := Counts{
		Notices:    len(s.notices),
		Albums:     len(s.albums),
		Messages:   len(s.messages),
		Admissions: len(s.admissions),
	}
	for _, m := range s.messages {
		if !m.IsRead {
			c.UnreadMessages++
		}
	}
	for _, a := range s.admissions {
		if a.Status == model.AdmissionPending {
			c.PendingAdmissions++
		}
	}
	return c
}

func (s *Store) UnreadMessageCount() int    { return s.Summary().UnreadMessages }
func (s *Store) PendingAdmissionCount() int { return s.Summary().PendingAdmissions }

// ---- Notices ----

type NoticeInput struct {
	Title       string
	Description string
	FullContent string
	Attachments []model.Attachment
	IsFeatured  bool
}

type NoticePatch struct {
	Title       *string
	Description *string
	FullContent *string
	IsFeatured  *bool
}

func (s *Store) Notices() []model.Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Notice, len(s.notices))
	copy(out, s.notices)
	return out
}

func (s *Store) GetNotice(id string) (model.Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.notices {
		if n.ID == id {
			return n, nil
		}
	}
	return model.Notice{}, ErrNotFound
}

// CreateNotice prepends a new notice; the displayed convention is
// newest-first. Description falls back to the title, full content to the
// description and then the title.
func (s *Store) CreateNotice(input NoticeInput) (model.Notice, error) {
	if strings.TrimSpace(input.Title) == "" {
		return model.Notice{}, ValidationError{Field: "title", Reason: "required"}
	}
	notice := model.Notice{
		ID:          s.newID(),
		Title:       input.Title,
		Description: fallback(input.Description, input.Title),
		FullContent: fallback(input.FullContent, input.Description, input.Title),
		Date:        s.now(),
		Attachments: append([]model.Attachment(nil), input.Attachments...),
		IsFeatured:  input.IsFeatured,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.notices = append([]model.Notice{notice}, s.notices...)
	return notice, nil
}

func (s *Store) UpdateNotice(id string, patch NoticePatch) (model.Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notices {
		if s.notices[i].ID != id {
			continue
		}
		if patch.Title != nil {
			if strings.TrimSpace(*patch.Title) == "" {
				return model.Notice{}, ValidationError{Field: "title", Reason: "required"}
			}
			s.notices[i].Title = *patch.Title
		}
		if patch.Description != nil {
			s.notices[i].Description = fallback(*patch.Description, s.notices[i].Title)
		}
		if patch.FullContent != nil {
			s.notices[i].FullContent = fallback(*patch.FullContent, s.notices[i].Description, s.notices[i].Title)
		}
		if patch.IsFeatured != nil {
			s.notices[i].IsFeatured = *patch.IsFeatured
		}
		return s.notices[i], nil
	}
	return model.Notice{}, ErrNotFound
}

func (s *Store) DeleteNotice(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notices {
		if s.notices[i].ID == id {
			s.notices = append(s.notices[:i], s.notices[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *Store) AddAttachments(noticeID string, attachments []model.Attachment) (model.Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notices {
		if s.notices[i].ID == noticeID {
			s.notices[i].Attachments = append(s.notices[i].Attachments, attachments...)
			return s.notices[i], nil
		}
	}
	return model.Notice{}, ErrNotFound
}

func (s *Store) RemoveAttachment(noticeID, attachmentID string) (model.Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notices {
		if s.notices[i].ID != noticeID {
			continue
		}
		for j := range s.notices[i].Attachments {
			if s.notices[i].Attachments[j].ID == attachmentID {
				s.notices[i].Attachments = append(s.notices[i].Attachments[:j], s.notices[i].Attachments[j+1:]...)
				return s.notices[i], nil
			}
		}
		return model.Notice{}, ErrNotFound
	}
	return model.Notice{}, ErrNotFound
}

// ---- Gallery ----

func (s *Store) Albums() []model.GalleryAlbum {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.GalleryAlbum, len(s.albums))
	copy(out, s.albums)
	return out
}

func (s *Store) GetAlbum(id string) (model.GalleryAlbum, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.albums {
		if a.ID == id {
			return a, nil
		}
	}
	return model.GalleryAlbum{}, ErrNotFound
}

// CreateAlbum requires a non-empty title and at least one image. The cover
// defaults to the first image's url.
func (s *Store) CreateAlbum(title string, images []model.GalleryImage) (model.GalleryAlbum, error) {
	if strings.TrimSpace(title) == "" {
		return model.GalleryAlbum{}, ValidationError{Field: "title", Reason: "required"}
	}
	if len(images) == 0 {
		return model.GalleryAlbum{}, ValidationError{Field: "images", Reason: "at least one image required"}
	}
	imgs := make([]model.GalleryImage, len(images))
	copy(imgs, images)
	for i := range imgs {
		if imgs[i].ID == "" {
			imgs[i].ID = s.newID()
		}
		if strings.TrimSpace(imgs[i].AltText) == "" {
			imgs[i].AltText = fmt.Sprintf("Image %d", i+1)
		}
	}
	album := model.GalleryAlbum{
		ID:         s.newID(),
		Title:      title,
		Images:     imgs,
		CoverImage: imgs[0].URL,
		Date:       s.now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.albums = append([]model.GalleryAlbum{album}, s.albums...)
	return album, nil
}

func (s *Store) RenameAlbum(id, title string) (model.GalleryAlbum, error) {
	if strings.TrimSpace(title) == "" {
		return model.GalleryAlbum{}, ValidationError{Field: "title", Reason: "required"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.albums {
		if s.albums[i].ID == id {
			s.albums[i].Title = title
			return s.albums[i], nil
		}
	}
	return model.GalleryAlbum{}, ErrNotFound
}

func (s *Store) DeleteAlbum(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.albums {
		if s.albums[i].ID == id {
			s.albums = append(s.albums[:i], s.albums[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *Store) AddImages(albumID string, images []model.GalleryImage) (model.GalleryAlbum, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.albums {
		if s.albums[i].ID != albumID {
			continue
		}
		for _, img := range images {
			if img.ID == "" {
				img.ID = s.newID()
			}
			if strings.TrimSpace(img.AltText) == "" {
				img.AltText = fmt.Sprintf("Image %d", len(s.albums[i].Images)+1)
			}
			s.albums[i].Images = append(s.albums[i].Images, img)
		}
		recomputeCover(&s.albums[i])
		return s.albums[i], nil
	}
	return model.GalleryAlbum{}, ErrNotFound
}

func (s *Store) RemoveImage(albumID, imageID string) (model.GalleryAlbum, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.albums {
		if s.albums[i].ID != albumID {
			continue
		}
		for j := range s.albums[i].Images {
			if s.albums[i].Images[j].ID == imageID {
				s.albums[i].Images = append(s.albums[i].Images[:j], s.albums[i].Images[j+1:]...)
				recomputeCover(&s.albums[i])
				return s.albums[i], nil
			}
		}
		return model.GalleryAlbum{}, ErrNotFound
	}
	return model.GalleryAlbum{}, ErrNotFound
}

// recomputeCover points the cover at the first remaining image, or leaves it
// unchanged when no images remain.
func recomputeCover(album *model.GalleryAlbum) {
	if len(album.Images) > 0 {
		album.CoverImage = album.Images[0].URL
	}
}

// ---- Contact messages ----

func (s *Store) Messages() []model.ContactMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.ContactMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *Store) GetMessage(id string) (model.ContactMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.messages {
		if m.ID == id {
			return m, nil
		}
	}
	return model.ContactMessage{}, ErrNotFound
}

// CreateMessage records a public contact submission, unread.
func (s *Store) CreateMessage(name, email, phone, body string) (model.ContactMessage, error) {
	if strings.TrimSpace(name) == "" {
		return model.ContactMessage{}, ValidationError{Field: "name", Reason: "required"}
	}
	if strings.TrimSpace(body) == "" {
		return model.ContactMessage{}, ValidationError{Field: "message", Reason: "required"}
	}
	message := model.ContactMessage{
		ID:       s.newID(),
		Name:     name,
		Email:    email,
		Phone:    phone,
		Body:     body,
		Received: s.now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append([]model.ContactMessage{message}, s.messages...)
	return message, nil
}

func (s *Store) ToggleRead(id string) (model.ContactMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.messages {
		if s.messages[i].ID == id {
			s.messages[i].IsRead = !s.messages[i].IsRead
			return s.messages[i], nil
		}
	}
	return model.ContactMessage{}, ErrNotFound
}

func (s *Store) DeleteMessage(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.messages {
		if s.messages[i].ID == id {
			s.messages = append(s.messages[:i], s.messages[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// ---- Admissions ----

type AdmissionInput struct {
	ApplicantName string
	Phone         string
	Email         string
	Address       string
	ClassApplying string
	Body          string
}

func (s *Store) Admissions() []model.AdmissionApplication {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.AdmissionApplication, len(s.admissions))
	copy(out, s.admissions)
	return out
}

func (s *Store) GetAdmission(id string) (model.AdmissionApplication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.admissions {
		if a.ID == id {
			return a, nil
		}
	}
	return model.AdmissionApplication{}, ErrNotFound
}

// CreateAdmission records a public admission submission, pending review.
func (s *Store) CreateAdmission(input AdmissionInput) (model.AdmissionApplication, error) {
	if strings.TrimSpace(input.ApplicantName) == "" {
		return model.AdmissionApplication{}, ValidationError{Field: "name", Reason: "required"}
	}
	if strings.TrimSpace(input.ClassApplying) == "" {
		return model.AdmissionApplication{}, ValidationError{Field: "classApplying", Reason: "required"}
	}
	admission := model.AdmissionApplication{
		ID:            s.newID(),
		ApplicantName: input.ApplicantName,
		Phone:         input.Phone,
		Email:         input.Email,
		Address:       input.Address,
		ClassApplying: input.ClassApplying,
		Body:          input.Body,
		Submitted:     s.now(),
		Status:        model.AdmissionPending,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.admissions = append([]model.AdmissionApplication{admission}, s.admissions...)
	return admission, nil
}

// SetStatus accepts any valid status from any current status; there is no
// enforced workflow sequence.
func (s *Store) SetStatus(id string, status model.AdmissionStatus) (model.AdmissionApplication, error) {
	if !model.ValidStatus(status) {
		return model.AdmissionApplication{}, ValidationError{Field: "status", Reason: "unknown status"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.admissions {
		if s.admissions[i].ID == id {
			s.admissions[i].Status = status
			return s.admissions[i], nil
		}
	}
	return model.AdmissionApplication{}, ErrNotFound
}

func (s *Store) DeleteAdmission(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.admissions {
		if s.admissions[i].ID == id {
			s.admissions = append(s.admissions[:i], s.admissions[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func fallback(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
