package config

import (
	"os"
	"reflect"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/medialink/pkg/errors"
	"github.com/arthur-debert/medialink/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix prefixes every environment override
	EnvPrefix = "MEDIALINK_"
	// UserConfigFile is searched for below the XDG config directories
	UserConfigFile = "medialink/config.toml"
)

// LoadOptions selects the optional layers of a Load
type LoadOptions struct {
	// File is an explicit config file; it must exist. When empty the XDG
	// config directories are searched.
	File string
	// Overrides are flag values keyed by dotted path, e.g. "ledger.path"
	Overrides map[string]interface{}
	// Environ replaces os.Environ, for tests
	Environ []string
}

// Load builds the effective configuration.
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")
	var sources []string

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. User config file
	path, err := userConfigPath(opts.File)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path)
		}
		sources = append(sources, path)
		logger.Debug().Str("path", path).Msg("Loaded config file")
	}

	// 3. Environment
	if err := k.Load(envProvider(opts.Environ), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	// 4. Flags
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply flag overrides")
		}
	}

	// 5. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
				trimSliceHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal configuration")
	}
	cfg.Sources = sources

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func userConfigPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "config file %s is not readable", explicit)
		}
		return explicit, nil
	}
	path, err := xdg.SearchConfigFile(UserConfigFile)
	if err != nil {
		// not finding a user config is the common case
		return "", nil
	}
	return path, nil
}

// envProvider maps MEDIALINK_SECTION_SOME_KEY to section.some_key
func envProvider(environ []string) koanf.Provider {
	transform := func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.Replace(key, "_", ".", 1)
	}
	if environ == nil {
		return env.Provider(EnvPrefix, ".", transform)
	}

	values := make(map[string]interface{})
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, EnvPrefix) {
			continue
		}
		values[transform(name)] = value
	}
	return confmap.Provider(values, ".")
}

// trimSliceHookFunc drops surrounding spaces from string list items, so
// "mkv, mp4" in the environment behaves like ["mkv", "mp4"]
func trimSliceHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if t.Kind() != reflect.Slice || t.Elem().Kind() != reflect.String {
			return data, nil
		}
		items, ok := data.([]string)
		if !ok {
			return data, nil
		}
		trimmed := make([]string, 0, len(items))
		for _, item := range items {
			if item = strings.TrimSpace(item); item != "" {
				trimmed = append(trimmed, item)
			}
		}
		return trimmed, nil
	}
}
