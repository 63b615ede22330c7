package config

import (
	"strings"
	"time"

	"github.com/arthur-debert/promptfill/pkg/errors"
	"github.com/arthur-debert/promptfill/pkg/rules"
	"github.com/pelletier/go-toml/v2"
)

// Config is the merged promptfill configuration
type Config struct {
	Format    FormatConfig    `koanf:"format" toml:"format"`
	Directory DirectoryConfig `koanf:"directory" toml:"directory"`
	Watch     WatchConfig     `koanf:"watch" toml:"watch"`
}

// FormatConfig controls placeholder resolution
type FormatConfig struct {
	ResolveFiles    bool   `koanf:"resolve_files" toml:"resolve_files"`
	PreserveEscapes bool   `koanf:"preserve_escapes" toml:"preserve_escapes"`
	NowLayout       string `koanf:"now_layout" toml:"now_layout"`
}

// DirectoryConfig controls how directories are serialized
type DirectoryConfig struct {
	Ignore         []string `koanf:"ignore" toml:"ignore"`
	HonorGitignore bool     `koanf:"honor_gitignore" toml:"honor_gitignore"`
	IgnoreFile     string   `koanf:"ignore_file" toml:"ignore_file"`
	MaxFileSize    int64    `koanf:"max_file_size" toml:"max_file_size"`
}

// WatchConfig controls render --watch
type WatchConfig struct {
	Debounce time.Duration `koanf:"debounce" toml:"debounce"`
}

// RulesOptions converts the directory settings for rules.NewClassifier
func (d DirectoryConfig) RulesOptions() rules.Options {
	patterns := make([]string, len(d.Ignore))
	copy(patterns, d.Ignore)
	return rules.Options{
		Patterns:         patterns,
		HonorIgnoreFiles: d.HonorGitignore,
		IgnoreFileName:   d.IgnoreFile,
		MaxFileSize:      d.MaxFileSize,
	}
}

// Validate checks values that would make formatting misbehave
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Format.NowLayout) == "" {
		return errors.New(errors.ErrConfigValid, "format.now_layout cannot be empty")
	}
	if c.Directory.MaxFileSize < 0 {
		return errors.Newf(errors.ErrConfigValid, "directory.max_file_size must not be negative, got %d", c.Directory.MaxFileSize)
	}
	if c.Directory.IgnoreFile == "" || strings.ContainsAny(c.Directory.IgnoreFile, `/\`) {
		return errors.Newf(errors.ErrConfigValid, "directory.ignore_file must be a plain file name, got %q", c.Directory.IgnoreFile)
	}
	if c.Watch.Debounce < 0 {
		return errors.New(errors.ErrConfigValid, "watch.debounce must not be negative")
	}
	return nil
}

// MarshalTOML renders the configuration in the same shape as the config
// file, durations as strings so the output can be loaded back.
func (c *Config) MarshalTOML() ([]byte, error) {
	doc := map[string]interface{}{
		"format": map[string]interface{}{
			"resolve_files":    c.Format.ResolveFiles,
			"preserve_escapes": c.Format.PreserveEscapes,
			"now_layout":       c.Format.NowLayout,
		},
		"directory": map[string]interface{}{
			"ignore":          c.Directory.Ignore,
			"honor_gitignore": c.Directory.HonorGitignore,
			"ignore_file":     c.Directory.IgnoreFile,
			"max_file_size":   c.Directory.MaxFileSize,
		},
		"watch": map[string]interface{}{
			"debounce": c.Watch.Debounce.String(),
		},
	}

	data, err := toml.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to encode configuration")
	}
	return data, nil
}
