package mocks

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/pkg/storage"
)

// Transactor runs fn directly and counts how often a transaction was opened.
type Transactor struct {
	Calls int
}

func (t *Transactor) WithTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	t.Calls++
	return fn(ctx)
}

// MemoryStorage is an in-memory storage.FileStorage.
type MemoryStorage struct {
	mu      sync.Mutex
	Objects map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{Objects: make(map[string][]byte)}
}

func (s *MemoryStorage) Upload(ctx context.Context, r io.Reader, size int64, key string, contentType string) (string, error) {
	k, err := storage.CleanKey(key)
	if err != nil {
		return "", err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Objects[k] = data
	return k, nil
}

func (s *MemoryStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.Objects[key]
	if !ok {
		return nil, storage.ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *MemoryStorage) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Objects, key)
	return nil
}

func (s *MemoryStorage) GetURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "memory://" + key, nil
}

func (s *MemoryStorage) Exists(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.Objects[key]
	return ok, nil
}
