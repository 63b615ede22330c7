// Package paths provides centralized path handling for promptfill.
//
// It covers two concerns:
//
//   - Safe resolution of paths named by `file:` and `content:` placeholders
//     against a caller-supplied root directory (Resolver)
//   - promptfill's own XDG config location
//
// # Path resolution
//
// A relative path is only accepted when a root is given, and the joined
// result must stay inside the canonicalized root. Both `..` traversal and
// symlinks pointing outside the root are rejected:
//
//	r := paths.NewResolver(filesystem.NewOS())
//	abs, err := r.Resolve("docs/guide.md", "/home/user/project")
//	// abs == "/home/user/project/docs/guide.md"
//
//	_, err = r.Resolve("../secrets.txt", "/home/user/project")
//	// errors.IsErrorCode(err, errors.ErrPathTraversal) == true
//
// Absolute paths (and `~/...` paths) are returned as-is; they never need a root.
//
// # Environment Variables
//
//   - PROMPTFILL_CONFIG_DIR: Override XDG config directory (default: $XDG_CONFIG_HOME/promptfill)
package paths
