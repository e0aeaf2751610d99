// Package core defines the abstractions shared by training-data sources.
// A source is a read-mostly key/value blob namespace holding the per-airfoil
// polar tables and coordinate files produced by an external generator.
package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
)

// Driver identifies a concrete source backend.
type Driver string

const (
	// DriverFilesystem reads files under a local root directory.
	DriverFilesystem Driver = "fs"
	// DriverS3 reads objects from an S3 / MinIO compatible bucket.
	DriverS3 Driver = "s3"
	// DriverMemory keeps blobs in process memory (tests, HTTP uploads).
	DriverMemory Driver = "memory"
)

// Info describes a stored blob.
type Info struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size_bytes"`
	ContentType  string    `json:"content_type,omitempty"`
	ETag         string    `json:"etag,omitempty"`
	LastModified time.Time `json:"last_modified"`
}

// Source is the read surface the polar loader consumes.
type Source interface {
	Get(ctx context.Context, key string) (Info, io.ReadCloser, error)
	Head(ctx context.Context, key string) (Info, error)
	List(ctx context.Context, prefix string) ([]Info, error)
	Driver() Driver
}

var (
	// ErrNotFound is returned when a key does not exist.
	ErrNotFound = errors.New("source: not found")

	// ErrInvalidKey is returned for empty, absolute or escaping keys.
	ErrInvalidKey = errors.New("source: invalid key")

	// ErrUnsupported is returned when an optional capability is not available.
	ErrUnsupported = errors.New("source: unsupported operation")
)

// SanitizeKey rejects keys that are empty, absolute or contain "..", and
// returns the slash-normalised form.
func SanitizeKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("empty key: %w", ErrInvalidKey)
	}
	if strings.Contains(key, "..") {
		return "", fmt.Errorf("key %q contains '..': %w", key, ErrInvalidKey)
	}
	if strings.HasPrefix(key, "/") {
		return "", fmt.Errorf("absolute key %q: %w", key, ErrInvalidKey)
	}

	return filepath.ToSlash(filepath.Clean(key)), nil
}
