// Package rules decides how directory entries are treated when a directory
// is serialized into a prompt.
//
// # Pattern Conventions
//
// Ignore patterns use gitignore syntax:
//
//   - `*.log` - Glob on the entry name at any depth
//   - `build/` - Directories only (trailing slash)
//   - `docs/*.md` - Anchored path pattern
//   - `**/tmp` - Any depth
//   - `!keep.log` - Re-include (leading !)
//
// Patterns come from the classifier options and, when enabled, from the
// ignore file (".gitignore" by default) of each directory on the way down.
// A nested ignore file only applies below its own directory. Later patterns
// win, so a nested file can re-include what a parent excluded.
//
// # Caching
//
// Parsed ignore files are cached per directory. Callers that watch the tree
// drop stale entries with Invalidate or Reset.
//
// # Content checks
//
// Files that are larger than the configured limit, or whose content is not
// text, are listed without content.
package rules
