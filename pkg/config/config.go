package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dirsort/pkg/errors"
	"github.com/arthur-debert/dirsort/pkg/organizer"
	"github.com/arthur-debert/dirsort/pkg/rules"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read by Load
const EnvPrefix = "DIRSORT_"

// Keys usable in overrides passed to Load
const (
	KeyRules      = "rules"
	KeyWorkers    = "organize.workers"
	KeyOnConflict = "organize.on_conflict"
)

// envKeys maps the lowercased variable name (prefix removed) to a config key
var envKeys = map[string]string{
	"rules":       KeyRules,
	"workers":     KeyWorkers,
	"on_conflict": KeyOnConflict,
}

// Config is the effective dirsort configuration
type Config struct {
	Rules    []string       `koanf:"rules" toml:"rules" yaml:"rules"`
	Organize OrganizeConfig `koanf:"organize" toml:"organize" yaml:"organize"`
}

// OrganizeConfig holds organizer tuning
type OrganizeConfig struct {
	Workers    int    `koanf:"workers" toml:"workers" yaml:"workers"`
	OnConflict string `koanf:"on_conflict" toml:"on_conflict" yaml:"on_conflict"`
}

// Load builds the configuration. Layers, later wins:
//  1. embedded defaults
//  2. the config file at path, if path is not empty
//  3. DIRSORT_RULES, DIRSORT_WORKERS, DIRSORT_ON_CONFLICT
//  4. overrides, keyed by KeyRules, KeyWorkers, KeyOnConflict
func Load(path string, overrides map[string]interface{}) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read config file %s", path)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path)
		}
	}

	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return envKeys[strings.ToLower(strings.TrimPrefix(s, EnvPrefix))]
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

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
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	default:
		return nil, errors.Newf(errors.ErrConfigLoad,
			"unsupported config file %s (want .toml, .yaml or .yml)", path).
			WithDetail("path", path)
	}
}

// Validate checks organizer settings. Rule tokens are checked by RuleTable.
func (c *Config) Validate() error {
	if c.Organize.Workers < 1 {
		return errors.Newf(errors.ErrConfigValid,
			"organize.workers must be at least 1, got %d", c.Organize.Workers)
	}
	if _, err := organizer.ParseConflictPolicy(c.Organize.OnConflict); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid organize.on_conflict")
	}
	return nil
}

// RuleTable parses the configured rule tokens
func (c *Config) RuleTable() (rules.Table, error) {
	return rules.ParseTokens(c.Rules)
}

// ConflictPolicy returns the validated conflict policy
func (c *Config) ConflictPolicy() organizer.ConflictPolicy {
	p, err := organizer.ParseConflictPolicy(c.Organize.OnConflict)
	if err != nil {
		return organizer.ConflictSkip
	}
	return p
}
