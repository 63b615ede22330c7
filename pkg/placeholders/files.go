package placeholders

import (
	stderrors "errors"
	"io/fs"
	"strings"

	"github.com/arthur-debert/promptfill/pkg/errors"
)

// DirectorySerializer renders a directory tree as text
type DirectorySerializer interface {
	Serialize(dir string) (string, error)
}

// readReference resolves a file: or content: reference and returns its
// escaped text.
func (c *call) readReference(ref Reference) (string, error) {
	abs, err := c.f.resolver.Resolve(ref.Path, c.f.root)
	if err != nil {
		return "", err
	}

	info, err := c.f.fs.Stat(abs)
	if err != nil {
		return "", classifyIOError(err, ref.Path)
	}

	var header, body, trailer string
	switch {
	case info.IsDir():
		tree, err := c.f.serializer.Serialize(abs)
		if err != nil {
			return "", classifyIOError(err, ref.Path)
		}
		header = "Directory: " + strings.TrimRight(ref.Path, "/") + "/\n"
		body = tree
	case info.Mode().IsRegular():
		data, err := c.f.fs.ReadFile(abs)
		if err != nil {
			return "", classifyIOError(err, ref.Path)
		}
		header = "File: " + ref.Path + "\n"
		body = string(data)
		trailer = "\n\n"
	default:
		return "", errors.Newf(errors.ErrUnsupportedType, "%s is neither a file nor a directory", ref.Path).
			WithDetail("path", ref.Path)
	}

	if ref.Directive == DirectiveContent {
		return escapeBraces(body), nil
	}
	return escapeBraces(header + body + trailer), nil
}

func classifyIOError(err error, path string) error {
	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		return err
	}

	code := errors.ErrFileAccess
	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		code = errors.ErrFileNotFound
	case stderrors.Is(err, fs.ErrPermission):
		code = errors.ErrPermission
	}
	return errors.Wrapf(err, code, "cannot read %s", path).WithDetail("path", path)
}

// errorMarker renders a path failure inline
func errorMarker(err error, path string) string {
	var class string
	switch errors.GetErrorCode(err) {
	case errors.ErrNoRoot:
		class = "No root directory for relative path"
	case errors.ErrPathTraversal:
		class = "Path escapes root directory"
	case errors.ErrFileNotFound:
		class = "File not found"
	case errors.ErrPermission:
		class = "Permission denied"
	case errors.ErrUnsupportedType:
		class = "Unsupported file type"
	case errors.ErrInvalidInput:
		class = "Invalid path"
	default:
		class = "Could not read file"
	}
	return escapeBraces("[Error: " + class + ": " + path + "]")
}
