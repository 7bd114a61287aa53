package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveReadClear(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)

	_, err := Password()
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, SavePassword("s3cret"))
	got, err := Password()
	require.NoError(t, err)
	require.Equal(t, "s3cret", got)

	path, err := passwordPath()
	require.NoError(t, err)
	require.Equal(t, "rushcargo", filepath.Base(filepath.Dir(path)))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(raw), "s3cret")
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, SavePassword("rotated"))
	got, err = Password()
	require.NoError(t, err)
	require.Equal(t, "rotated", got)

	require.NoError(t, ClearPassword())
	require.NoError(t, ClearPassword())
	_, err = Password()
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTamperedFileIsRejected(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)

	require.NoError(t, SavePassword("s3cret"))
	path, err := passwordPath()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("bm90IHNlYWxlZCBhdCBhbGwgYnV0IGxvbmcgZW5vdWdo\n"), 0o600))

	_, err = Password()
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)
}
