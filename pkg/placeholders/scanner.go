package placeholders

import (
	"regexp"
	"strings"
)

// Directive changes how a reference is resolved
type Directive string

const (
	DirectiveNone    Directive = ""
	DirectiveFile    Directive = "file"
	DirectiveOption  Directive = "option"
	DirectiveContent Directive = "content"
)

var tokenPattern = regexp.MustCompile(`\{\{(?:(file|option|content):)?([^}]+)\}\}`)

var directivePrefixes = []Directive{DirectiveFile, DirectiveOption, DirectiveContent}

// Token is one {{...}} occurrence. Start and End are byte offsets into the
// scanned text; Body is returned untrimmed.
type Token struct {
	Start     int
	End       int
	Raw       string
	Directive Directive
	Body      string
}

// Reference is one element of a fallback chain
type Reference struct {
	Directive Directive
	Path      string
}

// Tokens returns every token in text, left to right. The first }} after {{
// closes a token; nesting is not supported.
func Tokens(text string) []Token {
	matches := tokenPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	tokens := make([]Token, 0, len(matches))
	for _, m := range matches {
		tok := Token{
			Start: m[0],
			End:   m[1],
			Raw:   text[m[0]:m[1]],
			Body:  text[m[4]:m[5]],
		}
		if m[2] >= 0 {
			tok.Directive = Directive(text[m[2]:m[3]])
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// Chain splits the body into references. The token's own directive applies
// to the first reference; later segments may carry their own prefix.
func (t Token) Chain() []Reference {
	segments := splitChain(t.Body)
	refs := make([]Reference, 0, len(segments))
	for i, seg := range segments {
		if i == 0 && t.Directive != DirectiveNone {
			refs = append(refs, Reference{Directive: t.Directive, Path: strings.TrimSpace(seg)})
			continue
		}
		refs = append(refs, parseReference(seg))
	}
	return refs
}

func parseReference(segment string) Reference {
	trimmed := strings.TrimSpace(segment)
	for _, d := range directivePrefixes {
		prefix := string(d) + ":"
		if strings.HasPrefix(trimmed, prefix) {
			return Reference{Directive: d, Path: strings.TrimSpace(trimmed[len(prefix):])}
		}
	}
	return Reference{Path: trimmed}
}

// splitChain splits on | except where escaped as \|
func splitChain(body string) []string {
	var (
		segments []string
		current  strings.Builder
	)
	for i := 0; i < len(body); i++ {
		switch {
		case body[i] == '\\' && i+1 < len(body) && body[i+1] == '|':
			current.WriteByte('|')
			i++
		case body[i] == '|':
			segments = append(segments, current.String())
			current.Reset()
		default:
			current.WriteByte(body[i])
		}
	}
	return append(segments, current.String())
}

// splice replaces the given tokens of text with their replacements.
// tokens must be in scan order.
func splice(text string, tokens []Token, replacements map[int]string) string {
	if len(replacements) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for i, tok := range tokens {
		repl, ok := replacements[i]
		if !ok {
			continue
		}
		b.WriteString(text[last:tok.Start])
		b.WriteString(repl)
		last = tok.End
	}
	b.WriteString(text[last:])
	return b.String()
}

var (
	braceRun        = regexp.MustCompile(`\{\{+`)
	escapedBraceRun = regexp.MustCompile(`(?:\\\{){2,}`)
)

// escapeBraces turns every { in a run of two or more into \{ so no part
// of the run can open a token.
func escapeBraces(s string) string {
	return braceRun.ReplaceAllStringFunc(s, func(run string) string {
		return strings.Repeat(`\{`, len(run))
	})
}

func unescapeBraces(s string) string {
	return escapedBraceRun.ReplaceAllStringFunc(s, func(run string) string {
		return strings.Repeat("{", len(run)/2)
	})
}
