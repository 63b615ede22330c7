package placeholders_test

import (
	"io/fs"
	"os"
	"testing"
	"time"

	"github.com/arthur-debert/promptfill/pkg/filesystem"
	"github.com/arthur-debert/promptfill/pkg/placeholders"
	"github.com/arthur-debert/promptfill/pkg/values"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingFS records reads and can fake failures per path
type countingFS struct {
	filesystem.FS
	reads    map[string]int
	failRead map[string]error
	modes    map[string]fs.FileMode
}

func (c *countingFS) ReadFile(name string) ([]byte, error) {
	c.reads[name]++
	if err, ok := c.failRead[name]; ok {
		return nil, err
	}
	return c.FS.ReadFile(name)
}

func (c *countingFS) Stat(name string) (fs.FileInfo, error) {
	info, err := c.FS.Stat(name)
	if err != nil {
		return nil, err
	}
	if mode, ok := c.modes[name]; ok {
		return fakeInfo{FileInfo: info, mode: mode}, nil
	}
	return info, nil
}

type fakeInfo struct {
	fs.FileInfo
	mode fs.FileMode
}

func (f fakeInfo) Mode() fs.FileMode { return f.mode }
func (f fakeInfo) IsDir() bool       { return f.mode.IsDir() }

func workFS(t *testing.T) *countingFS {
	t.Helper()
	mem := afero.NewMemMapFs()
	files := map[string]string{
		"/work/notes.txt":   "hello",
		"/work/tpl.txt":     "say {{input}}",
		"/work/braces.txt":  "{{{input}}",
		"/work/docs/a.md":   "A",
		"/work/docs/b.md":   "B {{x}}",
		"/work/device":      "",
		"/work/locked.txt":  "secret",
		"/elsewhere/ab.txt": "absolute",
	}
	for path, content := range files {
		require.NoError(t, afero.WriteFile(mem, path, []byte(content), 0644))
	}
	return &countingFS{
		FS:       filesystem.NewAferoFS(mem),
		reads:    make(map[string]int),
		failRead: map[string]error{"/work/locked.txt": &fs.PathError{Op: "open", Path: "/work/locked.txt", Err: fs.ErrPermission}},
		modes:    map[string]fs.FileMode{"/work/device": fs.ModeDevice | 0644},
	}
}

func fileFormatter(fsys filesystem.FS, mutate func(*placeholders.Options)) *placeholders.Formatter {
	return newFormatter(func(o *placeholders.Options) {
		o.Root = "/work"
		o.FS = fsys
		if mutate != nil {
			mutate(o)
		}
	})
}

func TestFormat_FileDirectives(t *testing.T) {
	f := fileFormatter(workFS(t), nil)
	b := bag(map[string]any{"input": "X"})

	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "file", text: "{{file:notes.txt}}", want: "File: notes.txt\nhello\n\n"},
		{name: "content", text: "[{{content:notes.txt}}]", want: "[hello]"},
		{name: "padded path", text: "{{file: notes.txt }}", want: "File: notes.txt\nhello\n\n"},
		{name: "absolute path", text: "{{content:/elsewhere/ab.txt}}", want: "absolute"},
		{
			name: "directory",
			text: "{{file:docs}}",
			want: "Directory: docs/\nFile: a.md\nA\n\nFile: b.md\nB {{x}}\n\n",
		},
		{name: "directory content", text: "{{content:docs/}}", want: "File: a.md\nA\n\nFile: b.md\nB {{x}}\n\n"},
		{name: "retrieved tokens are not resolved", text: "{{content:tpl.txt}}", want: "say {{input}}"},
		{name: "missing file", text: "{{file:missing.txt}}", want: "[Error: File not found: missing.txt]"},
		{name: "traversal", text: "{{file:../etc/passwd}}", want: "[Error: Path escapes root directory: ../etc/passwd]"},
		{name: "permission", text: "{{content:locked.txt}}", want: "[Error: Permission denied: locked.txt]"},
		{name: "unsupported type", text: "{{file:device}}", want: "[Error: Unsupported file type: device]"},
		{name: "error falls through to next segment", text: "{{file:missing.txt|input}}", want: "X"},
		{name: "earlier value wins over file", text: "{{input|file:notes.txt}}", want: "X"},
		{name: "file as fallback", text: "{{title|content:notes.txt}}", want: "hello"},
		{
			name: "failure does not affect siblings",
			text: "{{file:missing.txt}} / {{content:notes.txt}} / {{input}}",
			want: "[Error: File not found: missing.txt] / hello / X",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Format(tt.text, b))
		})
	}
}

func TestFormat_FirstFailureRenderedWhenNothingUsable(t *testing.T) {
	f := fileFormatter(workFS(t), nil)

	got := f.Format("{{input|file:missing.txt|content:../x}}", values.Map())
	assert.Equal(t, "[Error: File not found: missing.txt]", got)
}

func TestFormat_NoRoot(t *testing.T) {
	f := fileFormatter(workFS(t), func(o *placeholders.Options) { o.Root = "" })

	assert.Equal(t, "[Error: No root directory for relative path: notes.txt]",
		f.Format("{{file:notes.txt}}", values.Map()))
	assert.Equal(t, "absolute", f.Format("{{content:/elsewhere/ab.txt}}", values.Map()))
	assert.Equal(t, "X", f.Format("{{input}}", bag(map[string]any{"input": "X"})))
}

func TestFormat_FilesDisabled(t *testing.T) {
	fsys := workFS(t)
	f := fileFormatter(fsys, func(o *placeholders.Options) { o.ResolveFiles = false })

	assert.Equal(t, "{{file:notes.txt}} {{content:notes.txt}}",
		f.Format("{{file:notes.txt}} {{content:notes.txt}}", values.Map()))
	b := bag(map[string]any{"input": "X"})
	assert.Equal(t, "{{file:notes.txt|input}}", f.Format("{{file:notes.txt|input}}", b))
	assert.Equal(t, "{{title|content:notes.txt|input}}", f.Format("{{title|content:notes.txt|input}}", b))
	assert.Equal(t, "X", f.Format("{{input|file:notes.txt}}", b))
	assert.Equal(t, "{{file:missing.txt}}", f.Format("{{file:missing.txt}}", values.Map()))
	assert.Empty(t, fsys.reads)
}

func TestFormat_EscapedContent(t *testing.T) {
	b := bag(map[string]any{"input": "X"})

	f := fileFormatter(workFS(t), nil)
	assert.Equal(t, "File: tpl.txt\nsay {{input}}\n\n", f.Format("{{file:tpl.txt}}", b))

	preserving := fileFormatter(workFS(t), func(o *placeholders.Options) { o.PreserveEscapes = true })
	out := preserving.Format("{{content:tpl.txt}} {{input}}", b)
	assert.Equal(t, `say \{\{input}} X`, out)

	// The preserved output survives another pass untouched
	assert.Equal(t, `say \{\{input}} X`, preserving.Format(out, b))
}

func TestFormat_EscapedBraceRuns(t *testing.T) {
	b := bag(map[string]any{"input": "X"})

	preserving := fileFormatter(workFS(t), func(o *placeholders.Options) { o.PreserveEscapes = true })
	out := preserving.Format("{{content:braces.txt}}", b)
	assert.Equal(t, `\{\{\{input}}`, out)
	assert.Equal(t, out, preserving.Format(out, bag(map[string]any{"input": "INJECTED"})))

	f := fileFormatter(workFS(t), nil)
	assert.Equal(t, "{{{input}}", f.Format("{{content:braces.txt}}", b))
	assert.Equal(t, "{{{input}} X", f.Format(out+" {{input}}", b))
}

func TestFormat_ReadsEachFileOnce(t *testing.T) {
	fsys := workFS(t)
	f := fileFormatter(fsys, nil)

	got := f.Format("{{title|content:notes.txt}}", values.Map())
	assert.Equal(t, "hello", got)
	assert.Equal(t, 1, fsys.reads["/work/notes.txt"])
}

func TestFormat_PropertyExpandsIntoDirective(t *testing.T) {
	fsys := workFS(t)
	f := fileFormatter(fsys, nil)

	got := f.Format("{{attachment}}", bag(map[string]any{"attachment": "{{content:notes.txt}}"}))
	assert.Equal(t, "hello", got)
	assert.Equal(t, 1, fsys.reads["/work/notes.txt"])
}

func TestFormat_SymlinkEscapeOnDisk(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	require.NoError(t, os.WriteFile(outside+"/secret.txt", []byte("top secret"), 0644))
	if err := os.Symlink(outside, root+"/escape"); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	f := placeholders.New(placeholders.Options{
		Root:         root,
		ResolveFiles: true,
		Now:          func() time.Time { return fixedNow },
	})

	got := f.Format("{{content:escape/secret.txt}}", values.Map())
	assert.Equal(t, "[Error: Path escapes root directory: escape/secret.txt]", got)
}
