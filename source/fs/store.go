// Package fs reads training data from a local directory tree.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/katalvlaran/propel/source/core"
)

// Store implements core.Source using the local filesystem. Keys map to
// slash-separated paths relative to root.
type Store struct {
	root string
}

// New returns a filesystem source rooted at root. The directory must exist.
func New(root string) (*Store, error) {
	if root == "" {
		root = "./polars"
	}
	st, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("open source root: %w", err)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("source root %s is not a directory", root)
	}

	return &Store{root: root}, nil
}

// Driver reports core.DriverFilesystem.
func (s *Store) Driver() core.Driver { return core.DriverFilesystem }

func (s *Store) pathFor(key string) (string, string, error) {
	k, err := core.SanitizeKey(key)
	if err != nil {
		return "", "", err
	}

	return filepath.Join(s.root, filepath.FromSlash(k)), k, nil
}

// Get opens the file for key.
func (s *Store) Get(ctx context.Context, key string) (core.Info, io.ReadCloser, error) {
	path, k, err := s.pathFor(key)
	if err != nil {
		return core.Info{}, nil, err
	}
	f, err := os.Open(path)
	if errors.Is(err, iofs.ErrNotExist) {
		return core.Info{}, nil, fmt.Errorf("%s: %w", key, core.ErrNotFound)
	}
	if err != nil {
		return core.Info{}, nil, err
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return core.Info{}, nil, err
	}

	return fileInfo(k, st), f, nil
}

// Head stats the file for key.
func (s *Store) Head(ctx context.Context, key string) (core.Info, error) {
	path, k, err := s.pathFor(key)
	if err != nil {
		return core.Info{}, err
	}
	st, err := os.Stat(path)
	if errors.Is(err, iofs.ErrNotExist) {
		return core.Info{}, fmt.Errorf("%s: %w", key, core.ErrNotFound)
	}
	if err != nil {
		return core.Info{}, err
	}

	return fileInfo(k, st), nil
}

// List walks the root and returns regular files whose key has prefix.
func (s *Store) List(ctx context.Context, prefix string) ([]core.Info, error) {
	var out []core.Info
	err := filepath.WalkDir(s.root, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if !strings.HasPrefix(key, prefix) {
			return nil
		}
		st, err := d.Info()
		if err != nil {
			return err
		}
		out = append(out, fileInfo(key, st))

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", prefix, err)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })

	return out, nil
}

func fileInfo(key string, st os.FileInfo) core.Info {
	ct := ""
	if strings.HasSuffix(key, ".json") {
		ct = "application/json"
	}

	return core.Info{Key: key, Size: st.Size(), ContentType: ct, LastModified: st.ModTime().UTC()}
}
