package model

import "time"

type FileKind string

const (
	FileKindImage    FileKind = "image"
	FileKindDocument FileKind = "document"
)

type AdmissionStatus string

const (
	AdmissionPending  AdmissionStatus = "pending"
	AdmissionReviewed AdmissionStatus = "reviewed"
	AdmissionApproved AdmissionStatus = "approved"
	AdmissionRejected AdmissionStatus = "rejected"
)

// ValidStatus reports whether s is one of the admission status values.
// Transitions are unconstrained: any valid status may replace any other.
func ValidStatus(s AdmissionStatus) bool {
	switch s {
	case AdmissionPending, AdmissionReviewed, AdmissionApproved, AdmissionRejected:
		return true
	default:
		return false
	}
}

type Attachment struct {
	ID          string
	URL         string
	Kind        FileKind
	DisplayName string
}

type Notice struct {
	ID          string
	Title       string
	Description string
	FullContent string
	Date        time.Time
	Attachments []Attachment
	IsFeatured  bool
}

type GalleryImage struct {
	ID      string
	URL     string
	AltText string
}

type GalleryAlbum struct {
	ID         string
	Title      string
	Images     []GalleryImage
	CoverImage string
	Date       time.Time
}

type ContactMessage struct {
	ID       string
	Name     string
	Email    string
	Phone    string
	Body     string
	Received time.Time
	IsRead   bool
}

type AdmissionApplication struct {
	ID            string
	ApplicantName string
	Phone         string
	Email         string
	Address       string
	ClassApplying string
	Body          string
	Submitted     time.Time
	Status        AdmissionStatus
}

// StagedFile is a user-selected upload held with a transient preview handle,
// not yet committed to durable storage. The preview handle must be revoked
// exactly once, either at removal or at commit.
type StagedFile struct {
	ID            string
	Content       []byte
	ContentType   string
	Kind          FileKind
	DisplayName   string
	PreviewHandle string
}
