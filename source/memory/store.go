// Package memory is an in-process training-data source.
package memory

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/katalvlaran/propel/source/core"
)

type object struct {
	body        []byte
	contentType string
	etag        string
	modified    time.Time
}

// Store implements core.Source over a map guarded by a RWMutex.
type Store struct {
	mu      sync.RWMutex
	objects map[string]object
}

// New returns an empty memory source.
func New() *Store {
	return &Store{objects: make(map[string]object)}
}

// Driver reports core.DriverMemory.
func (s *Store) Driver() core.Driver { return core.DriverMemory }

// Put stores (or replaces) a blob.
func (s *Store) Put(_ context.Context, key string, r io.Reader, contentType string) (core.Info, error) {
	k, err := core.SanitizeKey(key)
	if err != nil {
		return core.Info{}, err
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return core.Info{}, fmt.Errorf("read %s: %w", key, err)
	}
	sum := sha256.Sum256(body)
	obj := object{body: body, contentType: contentType, etag: hex.EncodeToString(sum[:]), modified: time.Now().UTC()}

	s.mu.Lock()
	s.objects[k] = obj
	s.mu.Unlock()

	return info(k, obj), nil
}

// Get returns a reader over a copy-free view of the stored bytes.
func (s *Store) Get(_ context.Context, key string) (core.Info, io.ReadCloser, error) {
	obj, k, err := s.lookup(key)
	if err != nil {
		return core.Info{}, nil, err
	}

	return info(k, obj), io.NopCloser(bytes.NewReader(obj.body)), nil
}

// Head returns metadata for key.
func (s *Store) Head(_ context.Context, key string) (core.Info, error) {
	obj, k, err := s.lookup(key)
	if err != nil {
		return core.Info{}, err
	}

	return info(k, obj), nil
}

// List returns every key with the given prefix, sorted.
func (s *Store) List(_ context.Context, prefix string) ([]core.Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.Info
	for k, obj := range s.objects {
		if strings.HasPrefix(k, prefix) {
			out = append(out, info(k, obj))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })

	return out, nil
}

func (s *Store) lookup(key string) (object, string, error) {
	k, err := core.SanitizeKey(key)
	if err != nil {
		return object{}, "", err
	}
	s.mu.RLock()
	obj, ok := s.objects[k]
	s.mu.RUnlock()
	if !ok {
		return object{}, "", fmt.Errorf("%s: %w", key, core.ErrNotFound)
	}

	return obj, k, nil
}

func info(key string, obj object) core.Info {
	return core.Info{
		Key:          key,
		Size:         int64(len(obj.body)),
		ContentType:  obj.contentType,
		ETag:         obj.etag,
		LastModified: obj.modified,
	}
}
