package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestFindFilesByExtension(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"b.hcl", "a.hcl", "notes.txt", "nested/c.hcl"} {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("# empty"), 0644))
	}

	t.Run("directory", func(t *testing.T) {
		files, err := FindFilesByExtension(root, ".hcl")
		require.NoError(t, err)

		want := []string{
			filepath.Join(root, "a.hcl"),
			filepath.Join(root, "b.hcl"),
			filepath.Join(root, "nested", "c.hcl"),
		}
		if diff := cmp.Diff(want, files); diff != "" {
			t.Errorf("files mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("single file", func(t *testing.T) {
		path := filepath.Join(root, "a.hcl")
		files, err := FindFilesByExtension(path, ".hcl")
		require.NoError(t, err)
		require.Equal(t, []string{path}, files)
	})

	t.Run("single file with other extension", func(t *testing.T) {
		files, err := FindFilesByExtension(filepath.Join(root, "notes.txt"), ".hcl")
		require.NoError(t, err)
		require.Empty(t, files)
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := FindFilesByExtension(filepath.Join(root, "nope"), ".hcl")
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("empty extension panics", func(t *testing.T) {
		require.Panics(t, func() { _, _ = FindFilesByExtension(root, "") })
	})
}
