package promptfill

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTopics(t *testing.T) {
	files := fstest.MapFS{
		"topics/b.md":     {Data: []byte("# B")},
		"topics/a.md":     {Data: []byte("# A")},
		"topics/skip.txt": {Data: []byte("no")},
	}

	tp, err := loadTopics(files)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tp.names())

	content, ok := tp.get("--a")
	assert.True(t, ok)
	assert.Equal(t, "# A", content)

	_, ok = tp.get("skip")
	assert.False(t, ok)
}

func TestHelpCmd(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "topic list", args: []string{"help", "topics"}, want: "syntax"},
		{name: "topic", args: []string{"help", "syntax"}, want: "# Placeholder syntax"},
		{name: "command help", args: []string{"help", "render"}, want: "render [template]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, "", append([]string{"--format", "text"}, tt.args...)...)
			require.NoError(t, res.err)
			assert.Contains(t, res.stdout, tt.want)
		})
	}

	t.Run("unknown", func(t *testing.T) {
		res := run(t, "", "--format", "text", "help", "nope")
		require.NoError(t, res.err)
		assert.Contains(t, res.stderr, "nope")
	})
}
