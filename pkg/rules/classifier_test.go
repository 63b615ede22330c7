package rules_test

import (
	"testing"

	"github.com/arthur-debert/promptfill/pkg/filesystem"
	"github.com/arthur-debert/promptfill/pkg/rules"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memFS(t *testing.T, files map[string]string) (afero.Fs, filesystem.FS) {
	t.Helper()
	mem := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(mem, path, []byte(content), 0644))
	}
	return mem, filesystem.NewAferoFS(mem)
}

func TestClassifier_IsIgnored(t *testing.T) {
	_, fs := memFS(t, map[string]string{
		"/proj/.gitignore":         "*.log\n# comment\n\nbuild/\n!keep.log\n",
		"/proj/sub/.gitignore":     "local.txt\n",
		"/proj/sub/local.txt":      "x",
		"/proj/other/local.txt":    "x",
		"/proj/app.log":            "x",
		"/proj/keep.log":           "x",
		"/proj/notes.txt":          "x",
		"/proj/build/out.bin":      "x",
		"/proj/.git/HEAD":          "ref",
		"/proj/editor.swp":         "x",
		"/proj/sub/deep/trace.log": "x",
	})

	c := rules.NewClassifier(fs, rules.DefaultOptions())

	tests := []struct {
		name  string
		rel   string
		isDir bool
		want  bool
	}{
		{name: "root pattern", rel: "app.log", want: true},
		{name: "negated pattern", rel: "keep.log", want: false},
		{name: "plain file", rel: "notes.txt", want: false},
		{name: "directory pattern", rel: "build", isDir: true, want: true},
		{name: "directory pattern does not match file", rel: "build", isDir: false, want: false},
		{name: "default vcs dir", rel: ".git", isDir: true, want: true},
		{name: "default editor file", rel: "editor.swp", want: true},
		{name: "nested ignore file", rel: "sub/local.txt", want: true},
		{name: "nested ignore file scoped to its dir", rel: "other/local.txt", want: false},
		{name: "root pattern applies at depth", rel: "sub/deep/trace.log", want: true},
		{name: "root itself", rel: ".", isDir: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.IsIgnored("/proj", tt.rel, tt.isDir))
		})
	}
}

func TestClassifier_IgnoreFilesDisabled(t *testing.T) {
	_, fs := memFS(t, map[string]string{
		"/proj/.gitignore": "*.log\n",
	})

	c := rules.NewClassifier(fs, rules.Options{Patterns: []string{"*.tmp"}})
	assert.False(t, c.IsIgnored("/proj", "app.log", false))
	assert.True(t, c.IsIgnored("/proj", "scratch.tmp", false))
	assert.False(t, c.IsIgnoreFile("/proj/.gitignore"))

	custom := rules.NewClassifier(fs, rules.Options{HonorIgnoreFiles: true, IgnoreFileName: ".promptignore"})
	assert.True(t, custom.IsIgnoreFile("/proj/sub/.promptignore"))
	assert.False(t, custom.IsIgnoreFile("/proj/.gitignore"))
}

func TestClassifier_CacheInvalidation(t *testing.T) {
	mem, fs := memFS(t, map[string]string{
		"/proj/.gitignore": "a.txt\n",
	})

	c := rules.NewClassifier(fs, rules.DefaultOptions())
	assert.True(t, c.IsIgnored("/proj", "a.txt", false))
	assert.False(t, c.IsIgnored("/proj", "b.txt", false))

	require.NoError(t, afero.WriteFile(mem, "/proj/.gitignore", []byte("b.txt\n"), 0644))

	// Still served from cache
	assert.True(t, c.IsIgnored("/proj", "a.txt", false))

	c.Invalidate("/proj")
	assert.False(t, c.IsIgnored("/proj", "a.txt", false))
	assert.True(t, c.IsIgnored("/proj", "b.txt", false))

	require.NoError(t, afero.WriteFile(mem, "/proj/.gitignore", []byte("c.txt\n"), 0644))
	c.Reset()
	assert.False(t, c.IsIgnored("/proj", "b.txt", false))
	assert.True(t, c.IsIgnored("/proj", "c.txt", false))
}

func TestClassifier_ClassifyFile(t *testing.T) {
	_, fs := memFS(t, nil)
	opts := rules.DefaultOptions()
	opts.MaxFileSize = 16
	c := rules.NewClassifier(fs, opts)

	assert.Equal(t, rules.Include, c.ClassifyFile("/proj", "readme.md", []byte("# Title\n")))
	assert.Equal(t, rules.Ignored, c.ClassifyFile("/proj", "old.bak", []byte("text")))
	assert.Equal(t, rules.TooLarge, c.ClassifyFile("/proj", "big.txt", []byte("this is more than sixteen bytes")))
	assert.Equal(t, rules.Binary, c.ClassifyFile("/proj", "blob", []byte{0x00, 0x01, 0x02, 0xfe, 0xff}))
}

func TestIsBinary(t *testing.T) {
	assert.False(t, rules.IsBinary(nil))
	assert.False(t, rules.IsBinary([]byte("plain words\n")))
	assert.False(t, rules.IsBinary([]byte(`{"json": true}`)))
	assert.True(t, rules.IsBinary([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")))
}

func TestClassificationString(t *testing.T) {
	assert.Equal(t, "include", rules.Include.String())
	assert.Equal(t, "ignored", rules.Ignored.String())
	assert.Equal(t, "binary", rules.Binary.String())
	assert.Equal(t, "too-large", rules.TooLarge.String())
}
