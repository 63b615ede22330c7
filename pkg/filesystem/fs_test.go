package filesystem_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/promptfill/pkg/filesystem"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOS(t *testing.T) {
	fs := filesystem.NewOS()
	require.NotNil(t, fs)

	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "prompt.md")
	require.NoError(t, os.WriteFile(testFile, []byte("hello world"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "sub", "dir"), 0755))

	info, err := fs.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, "prompt.md", info.Name())

	content, err := fs.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(content))

	entries, err := fs.ReadDir(tmpDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	canonical, err := fs.EvalSymlinks(testFile)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(canonical))

	_, err = fs.Stat(filepath.Join(tmpDir, "missing"))
	assert.True(t, os.IsNotExist(err))
}

func TestOSFS_EvalSymlinksFollowsLinks(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "target.txt")
	link := filepath.Join(tmpDir, "link.txt")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0644))
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	fs := filesystem.NewOS()
	got, err := fs.EvalSymlinks(link)
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(target)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	info, err := fs.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink)
}

func TestAferoFS(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, "/work/a.txt", []byte("alpha"), 0644))
	require.NoError(t, mem.MkdirAll("/work/docs", 0755))

	fs := filesystem.NewAferoFS(mem)

	content, err := fs.ReadFile("/work/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "alpha", string(content))

	_, err = fs.ReadFile("/work/docs")
	assert.Error(t, err, "reading a directory should fail")

	entries, err := fs.ReadDir("/work")
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	got, err := fs.EvalSymlinks("/work/docs/../a.txt")
	require.NoError(t, err)
	assert.Equal(t, "/work/a.txt", got)

	_, err = fs.EvalSymlinks("/work/missing")
	assert.Error(t, err)

	info, err := fs.Lstat("/work/a.txt")
	require.NoError(t, err)
	assert.False(t, info.IsDir())
}
