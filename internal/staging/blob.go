package staging

import (
	"context"
	"errors"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
)

var ErrBlobNotFound = errors.New("blob_not_found")

// BlobStore is durable storage for committed files. Put returns the public
// URL for the stored blob; that URL outlives any staging preview handle.
type BlobStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
	Get(ctx context.Context, key string) ([]byte, string, error)
	Delete(ctx context.Context, key string) error
}

type MemoryBlobStore struct {
	mu      sync.Mutex
	blobs   map[string]memoryBlob
	baseURL string
}

type memoryBlob struct {
	data        []byte
	contentType string
}

func NewMemoryBlobStore(baseURL string) *MemoryBlobStore {
	return &MemoryBlobStore{
		blobs:   make(map[string]memoryBlob),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

func (s *MemoryBlobStore) Put(_ context.Context, key, contentType string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	s.blobs[key] = memoryBlob{data: stored, contentType: contentType}
	return s.baseURL + "/files/" + key, nil
}

func (s *MemoryBlobStore) Get(_ context.Context, key string) ([]byte, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	blob, ok := s.blobs[key]
	if !ok {
		return nil, "", ErrBlobNotFound
	}
	return blob.data, blob.contentType, nil
}

func (s *MemoryBlobStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	return nil
}

// DiskBlobStore writes blobs under one directory. The content type is
// recovered from the key's extension on read.
type DiskBlobStore struct {
	dir     string
	baseURL string
}

func NewDiskBlobStore(dir, baseURL string) (*DiskBlobStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskBlobStore{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (s *DiskBlobStore) Put(_ context.Context, key, _ string, data []byte) (string, error) {
	if err := os.WriteFile(filepath.Join(s.dir, filepath.Base(key)), data, 0o644); err != nil {
		return "", err
	}
	return s.baseURL + "/files/" + key, nil
}

func (s *DiskBlobStore) Get(_ context.Context, key string) ([]byte, string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, filepath.Base(key)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", ErrBlobNotFound
		}
		return nil, "", err
	}
	contentType := mime.TypeByExtension(path.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return data, contentType, nil
}

func (s *DiskBlobStore) Delete(_ context.Context, key string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(key)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
