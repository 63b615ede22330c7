package rules

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/arthur-debert/promptfill/pkg/filesystem"
	"github.com/arthur-debert/promptfill/pkg/logging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/rs/zerolog"
)

// Classifier applies ignore patterns and content checks to directory
// entries. It is safe for concurrent use.
type Classifier struct {
	fs     filesystem.FS
	opts   Options
	base   []gitignore.Pattern
	logger zerolog.Logger

	mu    sync.Mutex
	cache map[cacheKey][]gitignore.Pattern
}

// Patterns carry their domain relative to the root, so the same directory
// seen from two roots is cached twice.
type cacheKey struct {
	root string
	dir  string
}

// NewClassifier creates a classifier reading ignore files through fs. A nil
// fs uses the OS filesystem.
func NewClassifier(fs filesystem.FS, opts Options) *Classifier {
	if fs == nil {
		fs = filesystem.NewOS()
	}
	if opts.IgnoreFileName == "" {
		opts.IgnoreFileName = DefaultIgnoreFileName
	}

	c := &Classifier{
		fs:     fs,
		opts:   opts,
		logger: logging.GetLogger("rules.classifier"),
		cache:  make(map[cacheKey][]gitignore.Pattern),
	}
	for _, p := range opts.Patterns {
		if pattern, ok := parseLine(p, nil); ok {
			c.base = append(c.base, pattern)
		}
	}
	return c
}

// IsIgnored reports whether rel (slash or OS separated, relative to root)
// matches an ignore pattern.
func (c *Classifier) IsIgnored(root, rel string, isDir bool) bool {
	parts := splitRel(rel)
	if len(parts) == 0 {
		return false
	}

	patterns := append([]gitignore.Pattern(nil), c.base...)
	if c.opts.HonorIgnoreFiles {
		// Ignore files of root and every ancestor directory of rel
		for depth := 0; depth < len(parts); depth++ {
			domain := append([]string(nil), parts[:depth]...)
			dir := filepath.Join(append([]string{root}, domain...)...)
			patterns = append(patterns, c.dirPatterns(root, dir, domain)...)
		}
	}

	if len(patterns) == 0 {
		return false
	}
	return gitignore.NewMatcher(patterns).Match(parts, isDir)
}

// IsIgnoreFile reports whether name is the per-directory ignore file
func (c *Classifier) IsIgnoreFile(name string) bool {
	return c.opts.HonorIgnoreFiles && filepath.Base(name) == c.opts.IgnoreFileName
}

// ExceedsSize reports whether a file of size bytes is over the limit
func (c *Classifier) ExceedsSize(size int64) bool {
	return c.opts.MaxFileSize > 0 && size > c.opts.MaxFileSize
}

// ClassifyFile combines the ignore, size and content checks for a file
// whose content has already been read.
func (c *Classifier) ClassifyFile(root, rel string, content []byte) Classification {
	switch {
	case c.IsIgnored(root, rel, false):
		return Ignored
	case c.ExceedsSize(int64(len(content))):
		return TooLarge
	case IsBinary(content):
		return Binary
	default:
		return Include
	}
}

// Invalidate drops the cached ignore file of dir
func (c *Classifier) Invalidate(dir string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	dir = filepath.Clean(dir)
	for key := range c.cache {
		if key.dir == dir {
			delete(c.cache, key)
			c.logger.Debug().Str("dir", dir).Msg("Invalidated ignore cache entry")
		}
	}
}

// Reset drops every cached ignore file
func (c *Classifier) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache = make(map[cacheKey][]gitignore.Pattern)
	c.logger.Debug().Msg("Reset ignore cache")
}

func (c *Classifier) dirPatterns(root, dir string, domain []string) []gitignore.Pattern {
	key := cacheKey{root: filepath.Clean(root), dir: filepath.Clean(dir)}

	c.mu.Lock()
	defer c.mu.Unlock()

	if cached, ok := c.cache[key]; ok {
		c.logger.Trace().Str("dir", dir).Msg("Ignore cache hit")
		return cached
	}

	var patterns []gitignore.Pattern
	data, err := c.fs.ReadFile(filepath.Join(dir, c.opts.IgnoreFileName))
	switch {
	case err == nil:
		for _, line := range strings.Split(string(data), "\n") {
			if pattern, ok := parseLine(line, domain); ok {
				patterns = append(patterns, pattern)
			}
		}
	case !stderrors.Is(err, fs.ErrNotExist):
		c.logger.Warn().Err(err).Str("dir", dir).Msg("Cannot read ignore file")
	}

	c.cache[key] = patterns
	return patterns
}

func parseLine(line string, domain []string) (gitignore.Pattern, bool) {
	line = strings.TrimRight(line, "\r")
	if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
		return nil, false
	}
	return gitignore.ParsePattern(line, domain), true
}

func splitRel(rel string) []string {
	rel = filepath.ToSlash(filepath.Clean(rel))
	if rel == "." || rel == "" {
		return nil
	}
	return strings.Split(strings.Trim(rel, "/"), "/")
}

// IsBinary reports whether content is not text. Empty content is text.
func IsBinary(content []byte) bool {
	if len(content) == 0 {
		return false
	}
	for t := mimetype.Detect(content); t != nil; t = t.Parent() {
		if t.Is("text/plain") {
			return false
		}
	}
	return true
}
