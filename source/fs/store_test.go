package fs_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/propel/source/core"
	"github.com/katalvlaran/propel/source/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNew_RootChecks verifies missing roots and plain files are rejected.
func TestNew_RootChecks(t *testing.T) {
	root := t.TempDir()
	_, err := fs.New(filepath.Join(root, "absent"))
	assert.Error(t, err)

	file := filepath.Join(root, "plain.json")
	require.NoError(t, os.WriteFile(file, []byte(`{}`), 0o600))
	_, err = fs.New(file)
	assert.Error(t, err)
}

// TestStore_NestedKeys verifies slash keys map onto subdirectories.
func TestStore_NestedKeys(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "clarky"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "clarky", "polar.json"), []byte(`{"alpha":[0]}`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "clarky", "coords.dat"), []byte("1 0\n"), 0o600))

	st, err := fs.New(root)
	require.NoError(t, err)
	assert.Equal(t, core.DriverFilesystem, st.Driver())

	infos, err := st.List(context.Background(), "clarky/")
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "clarky/coords.dat", infos[0].Key)
	assert.Empty(t, infos[0].ContentType)
	assert.Equal(t, "clarky/polar.json", infos[1].Key)

	info, body, err := st.Get(context.Background(), "clarky/polar.json")
	require.NoError(t, err)
	defer body.Close()
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":[0]}`, string(data))
	assert.Equal(t, int64(len(data)), info.Size)

	_, err = st.Head(context.Background(), "clarky/missing.json")
	assert.ErrorIs(t, err, core.ErrNotFound)
}
