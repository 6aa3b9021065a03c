package staging

import (
	"context"
	"errors"
	"testing"

	"github.com/Prabesh2159/prestige-builds-locale-wise/internal/model"
)

func TestStageClassifiesAndDropsUnsupported(t *testing.T) {
	s := NewStager()

	staged := s.Stage([]Upload{
		{Name: "photo.jpg", ContentType: "image/jpeg", Data: []byte("jpeg")},
		{Name: "form.pdf", ContentType: "application/pdf", Data: []byte("pdf")},
		{Name: "virus.exe", ContentType: "application/octet-stream", Data: []byte("nope")},
	})

	if len(staged) != 2 {
		t.Fatalf("expected 2 accepted files, got %d", len(staged))
	}
	if staged[0].Kind != model.FileKindImage {
		t.Fatalf("expected image kind, got %s", staged[0].Kind)
	}
	if staged[1].Kind != model.FileKindDocument {
		t.Fatalf("expected document kind, got %s", staged[1].Kind)
	}
	if staged[0].PreviewHandle == "" || staged[0].PreviewHandle == staged[1].PreviewHandle {
		t.Fatalf("expected unique preview handles")
	}
}

func TestStageUnstageLeavesNoLeakedHandles(t *testing.T) {
	s := NewStager()

	staged := s.Stage([]Upload{{Name: "photo.jpg", ContentType: "image/png", Data: []byte("png")}})
	if err := s.Unstage(staged[0].ID); err != nil {
		t.Fatalf("unstage error: %v", err)
	}

	created, revoked := s.Stats()
	if created != revoked {
		t.Fatalf("leaked handles: created %d, revoked %d", created, revoked)
	}

	if err := s.Unstage(staged[0].ID); !errors.Is(err, ErrStagedFileNotFound) {
		t.Fatalf("expected second unstage to report not found, got %v", err)
	}
	if _, _, err := s.Preview(staged[0].ID); !errors.Is(err, ErrStagedFileNotFound) {
		t.Fatalf("expected preview to be gone after unstage")
	}
}

func TestRestageAfterUnstage(t *testing.T) {
	s := NewStager()

	first := s.Stage([]Upload{{Name: "photo.jpg", ContentType: "image/jpeg", Data: []byte("jpeg")}})
	if err := s.Unstage(first[0].ID); err != nil {
		t.Fatalf("unstage error: %v", err)
	}

	// The same underlying file must be stageable again after removal.
	second := s.Stage([]Upload{{Name: "photo.jpg", ContentType: "image/jpeg", Data: []byte("jpeg")}})
	if len(second) != 1 {
		t.Fatalf("expected restage to be accepted")
	}
	if second[0].ID == first[0].ID {
		t.Fatalf("expected a fresh id on restage")
	}
}

func TestDrainAllRevokesEverything(t *testing.T) {
	s := NewStager()
	s.Stage([]Upload{
		{Name: "a.jpg", ContentType: "image/jpeg", Data: []byte("a")},
		{Name: "b.jpg", ContentType: "image/jpeg", Data: []byte("b")},
		{Name: "c.pdf", ContentType: "application/pdf", Data: []byte("c")},
	})

	s.DrainAll()
	created, revoked := s.Stats()
	if created != 3 || revoked != 3 {
		t.Fatalf("expected all handles revoked, created %d revoked %d", created, revoked)
	}
}

func TestCommitProducesDurableURLs(t *testing.T) {
	s := NewStager()
	blobs := NewMemoryBlobStore("http://school.test")
	ctx := context.Background()

	staged := s.Stage([]Upload{
		{Name: "building.jpg", ContentType: "image/jpeg", Data: []byte("jpeg-bytes")},
		{Name: "schedule.pdf", ContentType: "application/pdf", Data: []byte("pdf-bytes")},
	})

	ids := []string{staged[0].ID, staged[1].ID}
	attachments, err := s.Commit(ctx, ids, blobs)
	if err != nil {
		t.Fatalf("commit error: %v", err)
	}
	if len(attachments) != 2 {
		t.Fatalf("expected 2 attachments, got %d", len(attachments))
	}
	for _, att := range attachments {
		if att.URL == "" || att.URL == staged[0].PreviewHandle || att.URL == staged[1].PreviewHandle {
			t.Fatalf("expected a durable url distinct from the preview handle, got %q", att.URL)
		}
	}

	// Commit revokes the preview handle; durable bytes remain readable.
	if _, _, err := s.Preview(staged[0].ID); !errors.Is(err, ErrStagedFileNotFound) {
		t.Fatalf("expected preview revoked after commit")
	}
	created, revoked := s.Stats()
	if created != revoked {
		t.Fatalf("leaked handles after commit: created %d revoked %d", created, revoked)
	}

	data, contentType, err := blobs.Get(ctx, attachments[0].ID+".jpg")
	if err != nil {
		t.Fatalf("expected committed blob to be readable: %v", err)
	}
	if string(data) != "jpeg-bytes" || contentType != "image/jpeg" {
		t.Fatalf("unexpected blob contents")
	}
}

func TestCommitUnknownIDCommitsNothing(t *testing.T) {
	s := NewStager()
	blobs := NewMemoryBlobStore("http://school.test")

	staged := s.Stage([]Upload{{Name: "a.jpg", ContentType: "image/jpeg", Data: []byte("a")}})
	if _, err := s.Commit(context.Background(), []string{staged[0].ID, "missing"}, blobs); !errors.Is(err, ErrStagedFileNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, _, err := s.Preview(staged[0].ID); err != nil {
		t.Fatalf("expected staged file untouched after failed commit")
	}
}

// failAfterBlobStore fails every Put after the first n succeed.
type failAfterBlobStore struct {
	inner *MemoryBlobStore
	limit int
	puts  int
}

func (f *failAfterBlobStore) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	if f.puts >= f.limit {
		return "", errors.New("disk full")
	}
	f.puts++
	return f.inner.Put(ctx, key, contentType, data)
}

func (f *failAfterBlobStore) Get(ctx context.Context, key string) ([]byte, string, error) {
	return f.inner.Get(ctx, key)
}

func (f *failAfterBlobStore) Delete(ctx context.Context, key string) error {
	return f.inner.Delete(ctx, key)
}

func TestCommitWriteFailureCommitsNothing(t *testing.T) {
	s := NewStager()
	blobs := &failAfterBlobStore{inner: NewMemoryBlobStore("http://school.test"), limit: 1}
	ctx := context.Background()

	staged := s.Stage([]Upload{
		{Name: "a.jpg", ContentType: "image/jpeg", Data: []byte("a")},
		{Name: "b.jpg", ContentType: "image/jpeg", Data: []byte("b")},
	})

	if _, err := s.Commit(ctx, []string{staged[0].ID, staged[1].ID}, blobs); err == nil {
		t.Fatal("expected commit to fail when a write fails")
	}

	// Both files stay staged and previewable.
	for _, file := range staged {
		if _, _, err := s.Preview(file.ID); err != nil {
			t.Fatalf("expected %s still staged after failed commit: %v", file.DisplayName, err)
		}
	}
	// The blob written before the failure was rolled back.
	if _, _, err := blobs.Get(ctx, staged[0].ID+".jpg"); !errors.Is(err, ErrBlobNotFound) {
		t.Fatalf("expected first blob rolled back, got %v", err)
	}
}

func TestDescribeDoesNotConsume(t *testing.T) {
	s := NewStager()

	staged := s.Stage([]Upload{{Name: "a.pdf", ContentType: "application/pdf", Data: []byte("a")}})
	file, err := s.Describe(staged[0].ID)
	if err != nil {
		t.Fatalf("describe error: %v", err)
	}
	if file.Kind != model.FileKindDocument {
		t.Fatalf("expected document kind, got %s", file.Kind)
	}
	if _, _, err := s.Preview(staged[0].ID); err != nil {
		t.Fatalf("expected file still staged after describe: %v", err)
	}
	if _, err := s.Describe("missing"); !errors.Is(err, ErrStagedFileNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDiskBlobStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	blobs, err := NewDiskBlobStore(dir, "http://school.test")
	if err != nil {
		t.Fatalf("disk store error: %v", err)
	}
	ctx := context.Background()

	url, err := blobs.Put(ctx, "cover.png", "image/png", []byte("png-bytes"))
	if err != nil {
		t.Fatalf("put error: %v", err)
	}
	if url != "http://school.test/files/cover.png" {
		t.Fatalf("unexpected url %q", url)
	}

	data, contentType, err := blobs.Get(ctx, "cover.png")
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if string(data) != "png-bytes" || contentType != "image/png" {
		t.Fatalf("unexpected blob contents: %q %q", data, contentType)
	}

	if err := blobs.Delete(ctx, "cover.png"); err != nil {
		t.Fatalf("delete error: %v", err)
	}
	if _, _, err := blobs.Get(ctx, "cover.png"); !errors.Is(err, ErrBlobNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := blobs.Delete(ctx, "cover.png"); err != nil {
		t.Fatalf("expected delete of missing blob to be a no-op, got %v", err)
	}
}

func TestDefaultAltText(t *testing.T) {
	cases := map[string]string{
		"sports-day_2024.jpg": "sports day 2024",
		"Main Building.png":   "Main Building",
		"cover.webp":          "cover",
	}
	for input, expect := range cases {
		if got := DefaultAltText(input); got != expect {
			t.Fatalf("DefaultAltText(%q) = %q, want %q", input, got, expect)
		}
	}
}
