package promptfill

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/promptfill/pkg/errors"
	"github.com/arthur-debert/promptfill/pkg/logging"
	"github.com/arthur-debert/promptfill/pkg/paths"
	"github.com/arthur-debert/promptfill/pkg/rules"
	"github.com/arthur-debert/promptfill/pkg/style"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// watcher re-runs a render after filesystem changes settle
type watcher struct {
	fsw        *fsnotify.Watcher
	files      map[string]bool
	skip       map[string]bool
	root       string
	debounce   time.Duration
	classifier *rules.Classifier
	onChange   func() error
	onError    func(error)
	logger     zerolog.Logger
}

// newWatcher watches the parent directories of files (editors often replace
// files instead of writing them in place) and every non-ignored directory
// under root.
func newWatcher(files []string, root string, classifier *rules.Classifier, debounce time.Duration) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot start file watcher")
	}

	w := &watcher{
		fsw:        fsw,
		files:      make(map[string]bool, len(files)),
		skip:       make(map[string]bool),
		root:       root,
		debounce:   debounce,
		classifier: classifier,
		logger:     logging.GetLogger("cmd.watch"),
	}

	dirs := make(map[string]bool)
	for _, file := range files {
		path, err := canonicalPath(file)
		if err != nil {
			_ = fsw.Close()
			return nil, err
		}
		w.files[path] = true
		dirs[filepath.Dir(path)] = true
	}
	for dir := range dirs {
		if err := w.add(dir); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}
	if root != "" {
		if err := w.addTree(root); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}

	return w, nil
}

// canonicalPath makes file absolute with its parent directory's symlinks
// resolved, matching the names fsnotify reports for watched directories.
func canonicalPath(file string) (string, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "invalid path %s", file)
	}
	dir := filepath.Dir(abs)
	if canonical, err := filepath.EvalSymlinks(dir); err == nil {
		dir = canonical
	}
	return filepath.Join(dir, filepath.Base(abs)), nil
}

// ignoreWrites excludes a file the watch loop writes itself, so saving the
// output does not trigger another render.
func (w *watcher) ignoreWrites(file string) error {
	path, err := canonicalPath(file)
	if err != nil {
		return err
	}
	w.skip[path] = true
	return nil
}

func (w *watcher) add(dir string) error {
	if err := w.fsw.Add(dir); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot watch %s", dir)
	}
	w.logger.Debug().Str("dir", dir).Msg("Watching directory")
	return nil
}

func (w *watcher) addTree(top string) error {
	return filepath.WalkDir(top, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == top {
				return errors.Wrapf(err, errors.ErrFileAccess, "cannot watch %s", top)
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root {
			rel, relErr := filepath.Rel(w.root, path)
			if relErr == nil && w.classifier.IsIgnored(w.root, rel, true) {
				return filepath.SkipDir
			}
		}
		return w.add(path)
	})
}

// relevant reports whether a change to name affects the rendered output
func (w *watcher) relevant(name string) bool {
	if w.skip[name] {
		return false
	}
	if w.files[name] {
		return true
	}
	if w.root == "" || !paths.ContainsPath(w.root, name) {
		return false
	}
	rel, err := filepath.Rel(w.root, name)
	if err != nil {
		return false
	}
	// A changed ignore file alters what is ignored, so it always counts
	if w.classifier.IsIgnoreFile(name) {
		return true
	}
	return !w.classifier.IsIgnored(w.root, rel, false)
}

// run blocks until ctx is done, calling onChange once per burst of
// relevant events.
func (w *watcher) run(ctx context.Context) error {
	defer func() { _ = w.fsw.Close() }()

	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
				continue
			}

			w.classifier.Invalidate(filepath.Dir(event.Name))
			if event.Has(fsnotify.Create) && w.root != "" && paths.ContainsPath(w.root, event.Name) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						w.logger.Warn().Err(err).Str("dir", event.Name).Msg("Cannot watch new directory")
					}
				}
			}

			if !w.relevant(event.Name) {
				continue
			}
			w.logger.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("Change detected")
			timer.Reset(w.debounce)

		case <-timer.C:
			if err := w.onChange(); err != nil && w.onError != nil {
				w.onError(err)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("File watcher error")
		}
	}
}

// watch renders once and then again on every relevant change
func (r *renderer) watch(cmd *cobra.Command) error {
	if r.template == "" {
		return errors.New(errors.ErrInvalidInput, MsgErrWatchStdin)
	}

	root, err := r.root()
	if err != nil {
		return err
	}
	if r.g.cfg.Format.ResolveFiles && !r.flags.noFiles && root != "" {
		if canonical, err := r.fs.EvalSymlinks(root); err == nil {
			root = canonical
		}
	} else {
		root = ""
	}

	files := append([]string{r.template}, r.flags.values.files...)
	w, err := newWatcher(files, root, r.classifier, r.g.cfg.Watch.Debounce)
	if err != nil {
		return err
	}

	if r.flags.output != "" {
		if err := w.ignoreWrites(paths.SanitizePath(r.flags.output)); err != nil {
			_ = w.fsw.Close()
			return err
		}
	}

	w.onChange = func() error { return r.render(cmd) }
	w.onError = func(err error) {
		fmt.Fprintln(cmd.ErrOrStderr(), style.Render("Error", fmt.Sprintf(MsgRerenderFailed, err)))
	}

	if err := r.render(cmd); err != nil {
		w.onError(err)
	}
	fmt.Fprintln(cmd.ErrOrStderr(), style.Render("Muted", MsgWatching))

	return w.run(cmd.Context())
}
