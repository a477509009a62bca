package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFS(t *testing.T) {
	tmp := t.TempDir()
	lfs := LocalFS{}

	dir := filepath.Join(tmp, "subdir")
	require.NoError(t, lfs.MkdirAll(dir, 0o755))

	fpath := filepath.Join(dir, "test.txt")
	f, err := lfs.OpenFile(fpath, os.O_CREATE|os.O_WRONLY, 0o644)
	require.NoError(t, err)

	_, err = f.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, f.Sync())
	require.NoError(t, f.Close())

	newPath := filepath.Join(dir, "renamed.txt")
	require.NoError(t, lfs.Rename(fpath, newPath))

	data, err := os.ReadFile(newPath)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	require.NoError(t, lfs.Remove(newPath))
	_, err = os.Stat(newPath)
	assert.True(t, os.IsNotExist(err))
}

func TestFaultyFS(t *testing.T) {
	tmp := t.TempDir()
	ffs := NewFaultyFS(nil)
	ffs.AddRule("limited", Fault{FailAfterBytes: 4})
	ffs.AddRule("nosync", Fault{FailAfterBytes: -1, FailOnSync: true})
	ffs.AddRule("noclose", Fault{FailAfterBytes: -1, FailOnClose: true})
	ffs.AddRule("norename", Fault{FailAfterBytes: -1, FailOnRename: true})

	open := func(name string) File {
		f, err := ffs.OpenFile(filepath.Join(tmp, name), os.O_CREATE|os.O_WRONLY, 0o644)
		require.NoError(t, err)
		t.Cleanup(func() { _ = f.Close() })
		return f
	}

	t.Run("WriteLimit", func(t *testing.T) {
		f := open("limited")
		_, err := f.Write([]byte("abcd"))
		require.NoError(t, err)
		_, err = f.Write([]byte("e"))
		assert.ErrorIs(t, err, ErrInjected)
	})

	t.Run("Sync", func(t *testing.T) {
		assert.ErrorIs(t, open("nosync").Sync(), ErrInjected)
	})

	t.Run("Close", func(t *testing.T) {
		assert.ErrorIs(t, open("noclose").Close(), ErrInjected)
	})

	t.Run("Rename", func(t *testing.T) {
		_ = open("norename")
		err := ffs.Rename(filepath.Join(tmp, "norename"), filepath.Join(tmp, "other"))
		assert.ErrorIs(t, err, ErrInjected)
	})

	t.Run("Unmatched", func(t *testing.T) {
		f := open("plain")
		_, err := f.Write(make([]byte, 1024))
		assert.NoError(t, err)
		assert.NoError(t, f.Sync())
	})

	t.Run("CustomErr", func(t *testing.T) {
		custom := os.ErrPermission
		ffs.AddRule("custom", Fault{FailAfterBytes: 0, Err: custom})
		_, err := open("custom").Write([]byte("x"))
		assert.ErrorIs(t, err, custom)
	})
}
