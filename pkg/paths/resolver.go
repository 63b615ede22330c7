package paths

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/promptfill/pkg/errors"
	"github.com/arthur-debert/promptfill/pkg/filesystem"
)

// Resolver turns paths named in templates into absolute paths, refusing
// anything that would escape the root directory.
type Resolver struct {
	fs filesystem.FS
}

// NewResolver creates a resolver reading through fs. A nil fs uses the OS filesystem.
func NewResolver(fs filesystem.FS) *Resolver {
	if fs == nil {
		fs = filesystem.NewOS()
	}
	return &Resolver{fs: fs}
}

// Resolve returns the absolute path for given.
//
// Absolute (and ~/) paths are returned cleaned. Relative paths require root
// (ErrNoRoot otherwise) and must stay inside the canonicalized root, both
// lexically and after following symlinks (ErrPathTraversal otherwise).
// Resolve only inspects the filesystem; it never opens or reads files.
func (r *Resolver) Resolve(given, root string) (string, error) {
	given = strings.TrimSpace(given)
	if err := ValidatePath(given); err != nil {
		return "", err
	}

	expanded := ExpandHome(given)
	if filepath.IsAbs(expanded) {
		return filepath.Clean(expanded), nil
	}

	if strings.TrimSpace(root) == "" {
		return "", errors.Newf(errors.ErrNoRoot,
			"relative path %q requires a root directory", given).
			WithDetail("path", given)
	}

	absRoot, err := filepath.Abs(ExpandHome(root))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess,
			"cannot determine absolute root for %s", root)
	}

	// A root that does not exist yet is compared lexically
	canonicalRoot := absRoot
	if c, err := r.fs.EvalSymlinks(absRoot); err == nil {
		canonicalRoot = c
	}

	joined := filepath.Join(canonicalRoot, expanded)
	if !ContainsPath(canonicalRoot, joined) {
		return "", traversalError(given, root)
	}

	// Missing targets cannot be followed; the later read reports not-found
	if c, err := r.fs.EvalSymlinks(joined); err == nil {
		if !ContainsPath(canonicalRoot, c) {
			return "", traversalError(given, root)
		}
	}

	return joined, nil
}

func traversalError(given, root string) error {
	return errors.Newf(errors.ErrPathTraversal,
		"path %q escapes root directory", given).
		WithDetail("path", given).
		WithDetail("root", root)
}
