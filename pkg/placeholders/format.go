package placeholders

import (
	"strings"
	"time"

	"github.com/arthur-debert/promptfill/pkg/dirtext"
	"github.com/arthur-debert/promptfill/pkg/errors"
	"github.com/arthur-debert/promptfill/pkg/filesystem"
	"github.com/arthur-debert/promptfill/pkg/logging"
	"github.com/arthur-debert/promptfill/pkg/paths"
	"github.com/arthur-debert/promptfill/pkg/values"
	"github.com/rs/zerolog"
)

// MaxRecursionIterations bounds the property-path expansion loop
const MaxRecursionIterations = 10

// Options configures a Formatter
type Options struct {
	// Root makes relative file: and content: paths resolvable. Empty
	// disables relative paths; absolute paths still work.
	Root string

	// ResolveFiles enables file: and content: directives. When false those
	// tokens are left literal so a template can be previewed without I/O.
	ResolveFiles bool

	// PreserveEscapes keeps \{\{ in the output instead of restoring {{
	PreserveEscapes bool

	Table      *Table
	FS         filesystem.FS
	Serializer DirectorySerializer
	Now        func() time.Time
	NowLayout  string
	Logger     *zerolog.Logger
}

// DefaultOptions returns options with file resolution enabled
func DefaultOptions() Options {
	return Options{ResolveFiles: true}
}

// Formatter resolves templates against value bags. It holds no per-call
// state and may be used concurrently.
type Formatter struct {
	root            string
	resolveFiles    bool
	preserveEscapes bool
	table           *Table
	fs              filesystem.FS
	resolver        *paths.Resolver
	serializer      DirectorySerializer
	now             func() time.Time
	nowLayout       string
	logger          zerolog.Logger
}

// New creates a Formatter, filling unset collaborators with defaults
func New(opts Options) *Formatter {
	f := &Formatter{
		root:            opts.Root,
		resolveFiles:    opts.ResolveFiles,
		preserveEscapes: opts.PreserveEscapes,
		table:           opts.Table,
		fs:              opts.FS,
		serializer:      opts.Serializer,
		now:             opts.Now,
		nowLayout:       opts.NowLayout,
	}

	if f.table == nil {
		f.table = DefaultTable()
	}
	if f.fs == nil {
		f.fs = filesystem.NewOS()
	}
	if f.serializer == nil {
		f.serializer = dirtext.New(f.fs, nil)
	}
	if f.now == nil {
		f.now = time.Now
	}
	if f.nowLayout == "" {
		f.nowLayout = DefaultNowLayout
	}
	if opts.Logger != nil {
		f.logger = *opts.Logger
	} else {
		f.logger = logging.GetLogger("placeholders.formatter")
	}
	f.resolver = paths.NewResolver(f.fs)

	return f
}

// Format resolves text against bag with DefaultOptions
func Format(text string, bag values.Value) string {
	return New(DefaultOptions()).Format(text, bag)
}

// Table returns the key table in use
func (f *Formatter) Table() *Table {
	return f.table
}

// Effective builds the effective map for bag
func (f *Formatter) Effective(bag values.Value) EffectiveMap {
	return BuildEffective(f.table, bag, f.now(), f.nowLayout)
}

// Format returns text with every resolvable token replaced. Tokens without
// a usable value are left as they were. Format never fails; path problems
// are rendered inline at the token position.
func (f *Formatter) Format(text string, bag values.Value) string {
	if len(Tokens(text)) == 0 {
		return text
	}

	c := &call{f: f, bag: bag, effective: f.Effective(bag)}

	text = c.expandRecursive(text)
	text = c.finalPass(text)

	if !f.preserveEscapes {
		text = unescapeBraces(text)
	}
	return text
}

// call carries the state of one Format invocation
type call struct {
	f         *Formatter
	bag       values.Value
	effective EffectiveMap
}

type outcome int

const (
	unresolved outcome = iota
	resolved
	deferred
)

// isRecursive reports whether tok starts with a property path
func (c *call) isRecursive(tok Token) bool {
	if tok.Directive != DirectiveNone {
		return false
	}
	first := tok.Chain()[0]
	return first.Directive == DirectiveNone && !c.f.table.IsStandard(first.Path)
}

func (c *call) expandRecursive(text string) string {
	for i := 0; i < MaxRecursionIterations; i++ {
		next := c.recursivePass(text)
		if next == text {
			return text
		}
		text = next
	}

	c.f.logger.Warn().
		Int("iterations", MaxRecursionIterations).
		Msg("Property expansion did not settle, continuing with partial result")
	return text
}

func (c *call) recursivePass(text string) string {
	tokens := Tokens(text)
	replacements := make(map[int]string)
	for i, tok := range tokens {
		if !c.isRecursive(tok) {
			continue
		}
		if value, out := c.evaluate(tok.Chain(), false); out == resolved {
			replacements[i] = value
		}
	}
	return splice(text, tokens, replacements)
}

func (c *call) finalPass(text string) string {
	tokens := Tokens(text)
	replacements := make(map[int]string)
	for i, tok := range tokens {
		if value, out := c.evaluate(tok.Chain(), true); out == resolved {
			replacements[i] = value
		}
	}
	return splice(text, tokens, replacements)
}

// evaluate walks a chain left to right and returns the first usable value.
// Outside the final pass a file: or content: reference defers the whole
// token so reads happen exactly once. With file resolution off such a
// reference leaves the token literal. If nothing is usable but a path
// failed, the first failure is rendered as the token's value.
func (c *call) evaluate(refs []Reference, final bool) (string, outcome) {
	var failure string

	for _, ref := range refs {
		if ref.Path == "" {
			continue
		}

		switch ref.Directive {
		case DirectiveNone:
			if value, ok := c.plain(ref.Path); ok {
				return value, resolved
			}
		case DirectiveOption:
			if value, ok := c.option(ref.Path); ok {
				return value, resolved
			}
		case DirectiveFile, DirectiveContent:
			if !final {
				return "", deferred
			}
			if !c.f.resolveFiles {
				return "", unresolved
			}
			value, err := c.readReference(ref)
			if err != nil {
				c.f.logger.Debug().
					Err(err).
					Str("code", string(errors.GetErrorCode(err))).
					Str("path", ref.Path).
					Msg("Path reference failed")
				if failure == "" {
					failure = errorMarker(err, ref.Path)
				}
				continue
			}
			return value, resolved
		}
	}

	if failure != "" {
		return failure, resolved
	}
	return "", unresolved
}

// plain resolves a standard key through the effective map and anything else
// as a property path into the bag.
func (c *call) plain(path string) (string, bool) {
	if key, ok := c.f.table.Resolve(path); ok {
		value, found := c.effective[key]
		return value, found
	}
	return usable(c.bag.Lookup(path))
}

// option yields the first element of an array, the first entry of a map or
// the value itself.
func (c *call) option(path string) (string, bool) {
	v, ok := c.bag.Lookup(path)
	if !ok {
		return "", false
	}
	switch v.Kind() {
	case values.KindArray, values.KindMap:
		return usable(v.First())
	default:
		return usable(v, true)
	}
}

func usable(v values.Value, ok bool) (string, bool) {
	if !ok || v.IsNull() {
		return "", false
	}
	if s, isString := v.Str(); isString {
		if strings.TrimSpace(s) == "" {
			return "", false
		}
		return s, true
	}
	return v.String(), true
}
