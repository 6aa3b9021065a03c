package staging

import (
	"context"
	"errors"
	"mime"
	"path"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/Prabesh2159/prestige-builds-locale-wise/internal/model"
)

var ErrStagedFileNotFound = errors.New("staged_file_not_found")

type Upload struct {
	Name        string
	ContentType string
	Data        []byte
}

// Stager holds user-selected files between selection and commit. Each staged
// file carries a preview handle that is revoked exactly once: at Unstage, at
// DrainAll, or when Commit copies the bytes into durable storage.
type Stager struct {
	mu      sync.Mutex
	files   map[string]model.StagedFile
	order   []string
	newID   func() string
	staged  int
	revoked int
}

func NewStager() *Stager {
	return &Stager{
		files: make(map[string]model.StagedFile),
		newID: uuid.NewString,
	}
}

// Stage accepts image and document uploads, assigns each a unique id and a
// preview handle, and silently drops unsupported content types.
func (s *Stager) Stage(uploads []Upload) []model.StagedFile {
	s.mu.Lock()
	defer s.mu.Unlock()

	accepted := make([]model.StagedFile, 0, len(uploads))
	for _, upload := range uploads {
		kind, ok := classify(upload.ContentType)
		if !ok {
			continue
		}
		id := s.newID()
		file := model.StagedFile{
			ID:            id,
			Content:       upload.Data,
			ContentType:   upload.ContentType,
			Kind:          kind,
			DisplayName:   displayName(upload.Name, kind),
			PreviewHandle: "/api/uploads/" + id + "/preview",
		}
		s.files[id] = file
		s.order = append(s.order, id)
		s.staged++
		accepted = append(accepted, file)
	}
	return accepted
}

// Unstage revokes the preview handle and discards the file.
func (s *Stager) Unstage(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.files[id]; !ok {
		return ErrStagedFileNotFound
	}
	s.discard(id)
	return nil
}

// DrainAll revokes every current preview handle; used on form cancel.
func (s *Stager) DrainAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range append([]string(nil), s.order...) {
		s.discard(id)
	}
}

// Preview serves the staged bytes for a live handle.
func (s *Stager) Preview(id string) ([]byte, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	file, ok := s.files[id]
	if !ok {
		return nil, "", ErrStagedFileNotFound
	}
	return file.Content, file.ContentType, nil
}

// Describe returns a staged file's metadata without consuming it.
func (s *Stager) Describe(id string) (model.StagedFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	file, ok := s.files[id]
	if !ok {
		return model.StagedFile{}, ErrStagedFileNotFound
	}
	return file, nil
}

// Commit copies each staged file into durable storage and returns attachment
// records pointing at the durable URLs. The preview handles are revoked as
// part of the commit; a committed file cannot be unstaged afterwards and vice
// versa. All-or-nothing: if any id is unknown or any write fails, stored
// blobs are removed again and every file stays staged.
func (s *Stager) Commit(ctx context.Context, ids []string, blobs BlobStore) ([]model.Attachment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		if _, ok := s.files[id]; !ok {
			return nil, ErrStagedFileNotFound
		}
	}

	attachments := make([]model.Attachment, 0, len(ids))
	stored := make([]string, 0, len(ids))
	for _, id := range ids {
		file := s.files[id]
		key := blobKey(file)
		url, err := blobs.Put(ctx, key, file.ContentType, file.Content)
		if err != nil {
			for _, k := range stored {
				_ = blobs.Delete(ctx, k)
			}
			return nil, err
		}
		stored = append(stored, key)
		attachments = append(attachments, model.Attachment{
			ID:          file.ID,
			URL:         url,
			Kind:        file.Kind,
			DisplayName: file.DisplayName,
		})
	}
	for _, id := range ids {
		s.discard(id)
	}
	return attachments, nil
}

// Stats reports how many preview handles were ever created and revoked.
// The two counters are equal whenever no files are currently staged.
func (s *Stager) Stats() (staged, revoked int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.staged, s.revoked
}

func (s *Stager) discard(id string) {
	delete(s.files, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.revoked++
}

func classify(contentType string) (model.FileKind, bool) {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return model.FileKindImage, true
	case contentType == "application/pdf":
		return model.FileKindDocument, true
	default:
		return "", false
	}
}

func displayName(name string, kind model.FileKind) string {
	name = strings.TrimSpace(path.Base(name))
	if name != "" && name != "." && name != "/" {
		return name
	}
	if kind == model.FileKindImage {
		return "image"
	}
	return "document"
}

// DefaultAltText derives alt text from a filename: extension stripped,
// dashes and underscores replaced with spaces.
func DefaultAltText(filename string) string {
	base := path.Base(filename)
	base = strings.TrimSuffix(base, path.Ext(base))
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	return strings.TrimSpace(base)
}

func blobKey(file model.StagedFile) string {
	ext := path.Ext(file.DisplayName)
	if ext == "" {
		if exts, err := mime.ExtensionsByType(file.ContentType); err == nil && len(exts) > 0 {
			ext = exts[0]
		}
	}
	return file.ID + ext
}
