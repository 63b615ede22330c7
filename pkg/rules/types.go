package rules

// Classification is the treatment of one directory entry
type Classification int

const (
	// Include serializes the entry (file content or directory children)
	Include Classification = iota
	// Ignored matched an ignore pattern
	Ignored
	// Binary is a file whose content is not text
	Binary
	// TooLarge is a file over the size limit
	TooLarge
)

func (c Classification) String() string {
	switch c {
	case Ignored:
		return "ignored"
	case Binary:
		return "binary"
	case TooLarge:
		return "too-large"
	default:
		return "include"
	}
}

// Options configures a Classifier
type Options struct {
	// Patterns apply to every directory, before any ignore file
	Patterns []string

	// HonorIgnoreFiles reads IgnoreFileName in each directory
	HonorIgnoreFiles bool
	IgnoreFileName   string

	// MaxFileSize in bytes; zero or less disables the limit
	MaxFileSize int64
}

// DefaultIgnoreFileName is read in each directory when ignore files are honored
const DefaultIgnoreFileName = ".gitignore"

// DefaultMaxFileSize keeps a single file from flooding a prompt
const DefaultMaxFileSize int64 = 1 << 20

// DefaultPatterns lists version control metadata, dependency folders and
// editor/OS leftovers.
func DefaultPatterns() []string {
	return []string{
		".git/",
		".hg/",
		".svn/",
		"node_modules/",
		".DS_Store",
		"*.bak",
		"*.tmp",
		"*.swp",
		"#*#",
		"*~",
	}
}

// DefaultOptions returns the options used when none are configured
func DefaultOptions() Options {
	return Options{
		Patterns:         DefaultPatterns(),
		HonorIgnoreFiles: true,
		IgnoreFileName:   DefaultIgnoreFileName,
		MaxFileSize:      DefaultMaxFileSize,
	}
}
