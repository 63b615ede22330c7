package dirtext

import (
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/promptfill/pkg/filesystem"
	"github.com/arthur-debert/promptfill/pkg/logging"
	"github.com/arthur-debert/promptfill/pkg/rules"
	"github.com/rs/zerolog"
)

// Serializer renders directories as text
type Serializer struct {
	fs         filesystem.FS
	classifier *rules.Classifier
	logger     zerolog.Logger
}

// New creates a serializer. A nil fs uses the OS filesystem and a nil
// classifier uses rules.DefaultOptions.
func New(fs filesystem.FS, classifier *rules.Classifier) *Serializer {
	if fs == nil {
		fs = filesystem.NewOS()
	}
	if classifier == nil {
		classifier = rules.NewClassifier(fs, rules.DefaultOptions())
	}
	return &Serializer{
		fs:         fs,
		classifier: classifier,
		logger:     logging.GetLogger("dirtext.serializer"),
	}
}

// Classifier returns the classifier deciding ignored entries
func (s *Serializer) Classifier() *rules.Classifier {
	return s.classifier
}

// Serialize renders dir. Only a failure to list dir itself is returned;
// problems further down are logged and the entry is listed without content.
func (s *Serializer) Serialize(dir string) (string, error) {
	root := filepath.Clean(dir)
	entries, err := s.readDir(root)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	stats := &walkStats{}
	s.writeEntries(&b, root, "", entries, stats)

	s.logger.Debug().
		Str("dir", root).
		Int("files", stats.files).
		Int("skipped", stats.skipped).
		Msg("Serialized directory")
	return b.String(), nil
}

type walkStats struct {
	files   int
	skipped int
}

func (s *Serializer) readDir(dir string) ([]entry, error) {
	dirEntries, err := s.fs.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	entries := make([]entry, 0, len(dirEntries))
	for _, e := range dirEntries {
		entries = append(entries, entry{name: e.Name(), isDir: e.IsDir()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].name < entries[j].name })
	return entries, nil
}

type entry struct {
	name  string
	isDir bool
}

func (s *Serializer) writeEntries(b *strings.Builder, root, rel string, entries []entry, stats *walkStats) {
	for _, e := range entries {
		childRel := path.Join(rel, e.name)
		full := filepath.Join(root, filepath.FromSlash(childRel))

		if !e.isDir {
			s.writeFile(b, root, childRel, full, stats)
			continue
		}

		b.WriteString("Directory: " + childRel + "/\n")
		if s.classifier.IsIgnored(root, childRel, true) {
			stats.skipped++
			continue
		}

		children, err := s.readDir(full)
		if err != nil {
			s.logger.Warn().Err(err).Str("dir", full).Msg("Cannot list directory")
			stats.skipped++
			continue
		}
		s.writeEntries(b, root, childRel, children, stats)
	}
}

func (s *Serializer) writeFile(b *strings.Builder, root, rel, full string, stats *walkStats) {
	skip := func(reason string) {
		s.logger.Trace().Str("file", rel).Str("reason", reason).Msg("Listing file without content")
		b.WriteString("File: " + rel + " (content ignored)\n\n")
		stats.skipped++
	}

	if s.classifier.IsIgnored(root, rel, false) {
		skip(rules.Ignored.String())
		return
	}

	info, err := s.fs.Lstat(full)
	if err != nil {
		skip(err.Error())
		return
	}
	if !info.Mode().IsRegular() {
		skip("not a regular file")
		return
	}
	if s.classifier.ExceedsSize(info.Size()) {
		skip(rules.TooLarge.String())
		return
	}

	content, err := s.fs.ReadFile(full)
	if err != nil {
		skip(err.Error())
		return
	}
	if class := s.classifier.ClassifyFile(root, rel, content); class != rules.Include {
		skip(class.String())
		return
	}

	b.WriteString("File: " + rel + "\n")
	b.Write(content)
	b.WriteString("\n\n")
	stats.files++
}
