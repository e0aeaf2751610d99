package source_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/propel/source"
	"github.com/katalvlaran/propel/source/core"
	"github.com/katalvlaran/propel/source/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOpen_DefaultsToFilesystem verifies the env factory picks fs by default.
func TestOpen_DefaultsToFilesystem(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "naca0012.json"), []byte(`{}`), 0o600))
	t.Setenv("PROPEL_SOURCE_DRIVER", "")
	t.Setenv("PROPEL_SOURCE_ROOT", root)

	src, err := source.Open(context.Background())
	require.NoError(t, err)
	assert.Equal(t, core.DriverFilesystem, src.Driver())

	infos, err := src.List(context.Background(), "naca")
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "naca0012.json", infos[0].Key)
	assert.Equal(t, "application/json", infos[0].ContentType)

	_, _, err = src.Get(context.Background(), "missing.json")
	assert.ErrorIs(t, err, core.ErrNotFound)
	_, err = src.Head(context.Background(), "../escape.json")
	assert.ErrorIs(t, err, core.ErrInvalidKey)
}

// TestOpen_Memory verifies the memory driver and unknown driver handling.
func TestOpen_Memory(t *testing.T) {
	src, err := source.OpenDriver(context.Background(), core.DriverMemory, "")
	require.NoError(t, err)
	assert.Equal(t, core.DriverMemory, src.Driver())

	_, err = source.OpenDriver(context.Background(), core.Driver("ftp"), "")
	assert.ErrorIs(t, err, core.ErrUnsupported)
}

// TestOpen_S3RequiresBucket verifies the s3 driver demands a bucket.
func TestOpen_S3RequiresBucket(t *testing.T) {
	t.Setenv("PROPEL_S3_BUCKET", "")
	_, err := source.OpenDriver(context.Background(), core.DriverS3, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PROPEL_S3_BUCKET")
}

// TestMemory_PutGet verifies round trip and sorted listing.
func TestMemory_PutGet(t *testing.T) {
	ctx := context.Background()
	m := memory.New()
	_, err := m.Put(ctx, "b.json", strings.NewReader(`{"b":1}`), "application/json")
	require.NoError(t, err)
	info, err := m.Put(ctx, "a.json", strings.NewReader(`{"a":1}`), "application/json")
	require.NoError(t, err)
	assert.Equal(t, int64(7), info.Size)
	assert.NotEmpty(t, info.ETag)

	_, rc, err := m.Get(ctx, "a.json")
	require.NoError(t, err)
	defer rc.Close()

	infos, err := m.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "a.json", infos[0].Key)

	_, err = m.Put(ctx, "", strings.NewReader(""), "")
	assert.ErrorIs(t, err, core.ErrInvalidKey)
	_, err = m.Head(ctx, "c.json")
	assert.ErrorIs(t, err, core.ErrNotFound)
}
