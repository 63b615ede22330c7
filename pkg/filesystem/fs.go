package filesystem

import "io/fs"

// FS is the subset of filesystem operations promptfill needs
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	// Lstat does not follow a trailing symlink. Backends without symlink
	// support may fall back to Stat.
	Lstat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	ReadDir(name string) ([]fs.DirEntry, error)

	// EvalSymlinks returns the canonical form of an existing path.
	EvalSymlinks(name string) (string, error)
}
