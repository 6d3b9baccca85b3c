package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureDir_CreatesNested(t *testing.T) {
	tmp := t.TempDir()
	want := filepath.Join(tmp, "a", "b")

	got, err := EnsureDir(want)
	require.NoError(t, err)
	require.Equal(t, want, got)

	fi, err := os.Stat(got)
	require.NoError(t, err)
	require.True(t, fi.IsDir())
	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm())
	}
}

func TestEnsureDir_Idempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	first, err := EnsureDir(dir)
	require.NoError(t, err)
	second, err := EnsureDir(dir)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestEnsureDir_RelativeIsMadeAbsolute(t *testing.T) {
	tmp := t.TempDir()
	t.Chdir(tmp)

	got, err := EnsureDir(".recetario")
	require.NoError(t, err)
	require.True(t, filepath.IsAbs(got))

	resolved, err := filepath.EvalSymlinks(got)
	require.NoError(t, err)
	expected, err := filepath.EvalSymlinks(filepath.Join(tmp, ".recetario"))
	require.NoError(t, err)
	require.Equal(t, expected, resolved)
}

func TestEnsureDir_FailsWhenFileExists(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "taken")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	_, err := EnsureDir(path)
	require.Error(t, err)
}
