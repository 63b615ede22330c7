package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for promptfill
	EnvConfigDir = "PROMPTFILL_CONFIG_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

const (
	// AppDirName is the directory name for promptfill-specific files
	AppDirName = "promptfill"

	// ConfigFileName is the name of the user configuration file
	ConfigFileName = "config.toml"
)

// Dirs holds the XDG locations promptfill reads
type Dirs struct {
	configDir string
}

// NewDirs resolves promptfill's directories, respecting environment overrides
func NewDirs() Dirs {
	d := Dirs{}

	if configDir := os.Getenv(EnvConfigDir); configDir != "" {
		d.configDir = ExpandHome(configDir)
	} else {
		d.configDir = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	return d
}

// ConfigDir returns the user configuration directory
func (d Dirs) ConfigDir() string {
	return d.configDir
}

// ConfigFile returns the path of the user configuration file
func (d Dirs) ConfigFile() string {
	return filepath.Join(d.configDir, ConfigFileName)
}

// ExpandHome expands a leading ~ to the user's home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	// Only ~/ is expanded; ~user forms are left alone
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
