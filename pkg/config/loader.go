package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"strings"

	"github.com/arthur-debert/promptfill/pkg/errors"
	"github.com/arthur-debert/promptfill/pkg/logging"
	"github.com/arthur-debert/promptfill/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix starts every environment override, e.g. PROMPTFILL_FORMAT_RESOLVE_FILES
const EnvPrefix = "PROMPTFILL_"

// LoadOptions selects the sources merged by Load
type LoadOptions struct {
	// UserFile is read when it exists. Empty uses paths.NewDirs().ConfigFile().
	UserFile string

	// ExplicitFile must exist when set (the --config flag)
	ExplicitFile string

	// Overrides are applied last, keyed by dotted path
	Overrides map[string]interface{}

	// SkipEnv ignores PROMPTFILL_ environment variables
	SkipEnv bool
}

// Load merges the configuration layers and validates the result
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config.loader")
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse embedded defaults")
	}

	userFile := opts.UserFile
	if userFile == "" {
		userFile = paths.NewDirs().ConfigFile()
	}
	if _, err := os.Stat(userFile); err == nil {
		if err := k.Load(file.Provider(userFile), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", userFile)
		}
		logger.Debug().Str("file", userFile).Msg("Loaded user config")
	} else if !stderrors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot access config file %s", userFile)
	}

	if opts.ExplicitFile != "" {
		if _, err := os.Stat(opts.ExplicitFile); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not found", opts.ExplicitFile)
		}
		if err := k.Load(file.Provider(opts.ExplicitFile), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", opts.ExplicitFile)
		}
		logger.Debug().Str("file", opts.ExplicitFile).Msg("Loaded explicit config")
	}

	if !opts.SkipEnv {
		err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment variables")
		}
	}

	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps PROMPTFILL_DIRECTORY_MAX_FILE_SIZE to directory.max_file_size.
// Only the first underscore separates section from key.
func envKey(s string) string {
	return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
}
