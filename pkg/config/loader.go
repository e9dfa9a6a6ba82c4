package config

import (
	"os"
	"strings"

	"github.com/craftec/rpbuilder/pkg/errors"
	"github.com/craftec/rpbuilder/pkg/logging"
	"github.com/craftec/rpbuilder/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every configuration environment variable
const EnvPrefix = "RPBUILDER_"

// LoadConfiguration merges every configuration layer. An explicit path
// replaces the project file lookup and must exist.
func LoadConfiguration(p paths.Paths, explicit string) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	if err := k.Load(&bytesProvider{data: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse embedded defaults")
	}

	var loaded []string
	load := func(path string) error {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path)
		}
		loaded = append(loaded, path)
		logger.Debug().Str("path", path).Msg("Loaded config file")
		return nil
	}

	// 1. User config
	if userPath := p.UserConfigPath(); isFile(userPath) {
		if err := load(userPath); err != nil {
			return nil, err
		}
	}

	// 2. Project or explicit config
	if explicit != "" {
		path := p.Resolve(explicit)
		if !isFile(path) {
			return nil, errors.Newf(errors.ErrConfigLoad, "config file %s not found", path).
				WithDetail("path", path)
		}
		if err := load(path); err != nil {
			return nil, err
		}
	} else if path, ok := p.ProjectConfigPath(); ok {
		if err := load(path); err != nil {
			return nil, err
		}
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment variables")
	}

	// 4. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	cfg.LoadedFiles = loaded

	// 5. Normalize and validate
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps RPBUILDER_SOURCES__ASSETS_DIR to sources.assets_dir. Variables
// without a section separator are not configuration keys.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if !strings.Contains(key, "__") {
		return ""
	}
	return strings.ReplaceAll(key, "__", ".")
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
