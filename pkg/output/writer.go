package output

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/promptfill/pkg/errors"
	"github.com/arthur-debert/promptfill/pkg/logging"
	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/rs/zerolog"
)

// Writer saves rendered text to files
type Writer struct {
	logger     zerolog.Logger
	filesystem filesystem.FullFileSystem
}

// NewWriter creates a writer on the OS filesystem
func NewWriter() *Writer {
	osfs := filesystem.NewOSFileSystem("/")
	pathAwareFS := synthfs.NewPathAwareFileSystem(osfs, "/").WithAbsolutePaths()

	return &Writer{
		logger:     logging.GetLogger("output.writer"),
		filesystem: pathAwareFS,
	}
}

// WriteOptions controls a single write
type WriteOptions struct {
	// Force replaces an existing file
	Force bool
	// Mode of a newly written file; zero means 0644
	Mode os.FileMode
}

// Write stores content at target, creating parent directories
func (w *Writer) Write(ctx context.Context, target string, content []byte, opts WriteOptions) error {
	if target == "" {
		return errors.New(errors.ErrInvalidInput, "output path cannot be empty")
	}

	abs, err := filepath.Abs(target)
	if err != nil {
		return errors.Wrapf(err, errors.ErrInvalidInput, "invalid output path %s", target)
	}

	if info, err := os.Stat(abs); err == nil {
		if info.IsDir() {
			return errors.Newf(errors.ErrFileWrite, "output path %s is a directory", target).
				WithDetail("path", abs)
		}
		if !opts.Force {
			return errors.Newf(errors.ErrAlreadyExists, "output file %s already exists (use --force to replace it)", target).
				WithDetail("path", abs)
		}
	}

	mode := opts.Mode
	if mode == 0 {
		mode = 0644
	}

	sfs := synthfs.New()
	id := fmt.Sprintf("write_%s_%d", filepath.Base(abs), time.Now().UnixNano())
	op := sfs.CustomOperationWithID(id, func(ctx context.Context, fs filesystem.FileSystem) error {
		parentDir := filepath.Dir(abs)
		if parentDir != "." && parentDir != "/" {
			if err := fs.MkdirAll(parentDir, 0755); err != nil {
				return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", parentDir)
			}
		}
		if err := fs.WriteFile(abs, content, mode); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", abs)
		}
		return nil
	})

	options := synthfs.DefaultPipelineOptions()
	if _, err := synthfs.RunWithOptions(ctx, w.filesystem, options, op); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write output file %s", target).
			WithDetail("path", abs)
	}

	w.logger.Info().
		Str("path", abs).
		Int("bytes", len(content)).
		Msg("Wrote rendered output")
	return nil
}
