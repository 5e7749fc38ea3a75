package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
)

const ContentTypeJSON = "application/json"

var (
	ErrObjectNotFound = errors.New("stored object not found")
	ErrInvalidKey     = errors.New("invalid object key")
)

// FileStorage keeps generated documents under slash separated keys such as
// "payslips/<company>/<year>/<id>.json".
type FileStorage interface {
	// Upload stores size bytes from r under key and returns the key.
	Upload(ctx context.Context, r io.Reader, size int64, key string, contentType string) (string, error)
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	// GetURL returns a link the caller can fetch the object from.
	GetURL(ctx context.Context, key string, expiry time.Duration) (string, error)
	Exists(ctx context.Context, key string) (bool, error)
}

// CleanKey normalises key and rejects keys escaping the storage root.
func CleanKey(key string) (string, error) {
	k := strings.TrimPrefix(path.Clean("/"+strings.ReplaceAll(key, "\\", "/")), "/")
	if k == "" || k == "." || strings.Contains(key, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return k, nil
}

// Key joins path segments into an object key.
func Key(segments ...string) string {
	return strings.Join(segments, "/")
}

// PutJSON encodes v and stores it under key.
func PutJSON(ctx context.Context, s FileStorage, key string, v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}
	return s.Upload(ctx, bytes.NewReader(data), int64(len(data)), key, ContentTypeJSON)
}
