package placeholders_test

import (
	"testing"

	"github.com/arthur-debert/promptfill/pkg/placeholders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokens(t *testing.T) {
	text := "a {{input}} b {{file:x.txt}} {{ option:o }}"
	tokens := placeholders.Tokens(text)
	require.Len(t, tokens, 3)

	assert.Equal(t, "{{input}}", tokens[0].Raw)
	assert.Equal(t, placeholders.DirectiveNone, tokens[0].Directive)
	assert.Equal(t, "input", tokens[0].Body)
	assert.Equal(t, "{{input}}", text[tokens[0].Start:tokens[0].End])

	assert.Equal(t, placeholders.DirectiveFile, tokens[1].Directive)
	assert.Equal(t, "x.txt", tokens[1].Body)

	// A space before the directive keeps it out of the token's directive
	assert.Equal(t, placeholders.DirectiveNone, tokens[2].Directive)
	assert.Equal(t, " option:o ", tokens[2].Body)
}

func TestTokens_Edges(t *testing.T) {
	assert.Empty(t, placeholders.Tokens("no tokens here"))
	assert.Empty(t, placeholders.Tokens("{{}}"))
	assert.Empty(t, placeholders.Tokens(`\{\{input}}`))

	tokens := placeholders.Tokens("{{a}}b}}")
	require.Len(t, tokens, 1)
	assert.Equal(t, "{{a}}", tokens[0].Raw)

	tokens = placeholders.Tokens("{{a}}{{b}}")
	require.Len(t, tokens, 2)
	assert.Equal(t, "b", tokens[1].Body)
}

func TestToken_Chain(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []placeholders.Reference
	}{
		{
			name: "aliases trimmed",
			text: "{{ i | s | c }}",
			want: []placeholders.Reference{{Path: "i"}, {Path: "s"}, {Path: "c"}},
		},
		{
			name: "token directive applies to first segment",
			text: "{{file:a.txt|input}}",
			want: []placeholders.Reference{
				{Directive: placeholders.DirectiveFile, Path: "a.txt"},
				{Path: "input"},
			},
		},
		{
			name: "qualified segment",
			text: "{{title|option:tones|content:notes.md}}",
			want: []placeholders.Reference{
				{Path: "title"},
				{Directive: placeholders.DirectiveOption, Path: "tones"},
				{Directive: placeholders.DirectiveContent, Path: "notes.md"},
			},
		},
		{
			name: "escaped pipe",
			text: `{{a\|b|c}}`,
			want: []placeholders.Reference{{Path: "a|b"}, {Path: "c"}},
		},
		{
			name: "empty segments kept",
			text: "{{input|}}",
			want: []placeholders.Reference{{Path: "input"}, {Path: ""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := placeholders.Tokens(tt.text)
			require.Len(t, tokens, 1)
			assert.Equal(t, tt.want, tokens[0].Chain())
		})
	}
}
