package config

import (
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"pkt.systems/marklog/errors"
	"pkt.systems/marklog/level"
	"pkt.systems/marklog/output"
)

const (
	// EnvPrefix prefixes the environment variables Load reads. Nested keys
	// use a double underscore: MARKLOG_EXCEPTION__HIDE_TYPE.
	EnvPrefix = "MARKLOG_"

	// keyDelim separates nested keys. Category prefixes contain dots, so
	// the dot cannot be used.
	keyDelim = "/"

	appName = "marklog"
)

// configNames are searched for, in order, under the XDG config directories.
var configNames = []string{"config.yaml", "config.yml", "config.toml"}

// Defaults returns the settings used when neither file nor environment set
// a key.
func Defaults() map[string]any {
	return map[string]any{
		"level":                      "info",
		"theme":                      "default",
		"output":                     "stdout",
		"queue_size":                 output.DefaultQueueSize,
		"no_color":                   false,
		"force_color":                false,
		"utc":                        false,
		"background":                 false,
		"reset_margin":               false,
		"preserve_markup":            false,
		"short_category":             false,
		"exception/hide_type":        false,
		"exception/hide_stack_trace": false,
	}
}

// DefaultPath returns where Load looks for a config file when none is
// given: the first existing marklog config under the XDG config
// directories, or the preferred location under XDG_CONFIG_HOME.
func DefaultPath() string {
	for _, name := range configNames {
		if path, err := xdg.SearchConfigFile(filepath.Join(appName, name)); err == nil {
			return path
		}
	}
	return filepath.Join(xdg.ConfigHome, appName, configNames[0])
}

// Load layers Defaults, the config file at path and the environment. An
// empty path uses DefaultPath and tolerates it being absent; an explicit
// path must exist.
func Load(path string) (*Config, error) {
	k := koanf.New(keyDelim)
	if err := k.Load(confmap.Provider(Defaults(), keyDelim), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "load defaults")
	}

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if err := loadFile(k, path, explicit); err != nil {
		return nil, err
	}

	if err := k.Load(env.Provider(EnvPrefix, keyDelim, envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "load environment")
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				stringToLevelMapHookFunc(),
				mapstructure.TextUnmarshallerHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "decode configuration")
	}
	return &cfg, nil
}

func loadFile(k *koanf.Koanf, path string, required bool) error {
	if _, err := os.Stat(path); err != nil {
		if !required && os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrConfigLoad, "config file %s", path).WithDetail("path", path)
	}
	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".toml":
		parser = toml.Parser()
	default:
		return errors.Newf(errors.ErrConfigParse, "unsupported config file type %q", filepath.Ext(path)).WithDetail("path", path)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "parse config file %s", path).WithDetail("path", path)
	}
	return nil
}

// envKey maps MARKLOG_EXCEPTION__HIDE_TYPE to exception/hide_type.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", keyDelim)
}

// stringToLevelMapHookFunc decodes "App.Db=warn,Vendor=error" into a level
// map so overrides can be set from a single environment variable.
func stringToLevelMapHookFunc() mapstructure.DecodeHookFunc {
	levelMap := reflect.TypeOf(map[string]level.Level{})
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t != levelMap {
			return data, nil
		}
		out := map[string]level.Level{}
		for _, item := range strings.Split(data.(string), ",") {
			if strings.TrimSpace(item) == "" {
				continue
			}
			category, name, found := strings.Cut(item, "=")
			if !found {
				return nil, errors.Newf(errors.ErrConfigParse, "level override %q is not category=level", item)
			}
			var lvl level.Level
			if err := lvl.UnmarshalText([]byte(name)); err != nil {
				return nil, err
			}
			out[strings.TrimSpace(category)] = lvl
		}
		return out, nil
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
