package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"
)

const (
	// ProjectConfigFile is the name of the project-level config file
	ProjectConfigFile = "teicrm.yaml"

	// HiddenConfigFile is accepted in place of ProjectConfigFile
	HiddenConfigFile = ".teicrm.yaml"

	// EnvPrefix starts every environment override
	EnvPrefix = "TEICRM_"

	// EnvConfig names the config file when no path is given
	EnvConfig = EnvPrefix + "CONFIG"
)

// envOverride binds one TEICRM_* variable to a Config field.
type envOverride struct {
	name  string
	apply func(cfg *Config, value string) error
}

var envOverrides = []envOverride{
	{"DOMAIN", func(cfg *Config, value string) error { cfg.Domain = value; return nil }},
	{"TYPE_DOMAIN", func(cfg *Config, value string) error { cfg.TypeDomain = value; return nil }},
	{"DEFAULT_LANG", func(cfg *Config, value string) error { cfg.DefaultLang = value; return nil }},
	{"NOT_KNOWN_VALUE", func(cfg *Config, value string) error { cfg.NotKnownValue = value; return nil }},
	{"VERBOSE", boolOverride(func(cfg *Config) *bool { return &cfg.Verbose })},
	{"STRICT", boolOverride(func(cfg *Config) *bool { return &cfg.Strict })},
	{"SAME_AS", boolOverride(func(cfg *Config) *bool { return &cfg.Identifiers.SameAs })},
	{"GEO_INVERSE", boolOverride(func(cfg *Config) *bool { return &cfg.Geo.Inverse })},
	{"WATCH_DEBOUNCE", func(cfg *Config, value string) error {
		debounce, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		cfg.Watch.Debounce = debounce
		return nil
	}},
}

func boolOverride(field func(cfg *Config) *bool) func(cfg *Config, value string) error {
	return func(cfg *Config, value string) error {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		*field(cfg) = parsed
		return nil
	}
}

// Loader resolves the effective configuration of a run
type Loader struct {
	logger *zap.SugaredLogger
	lookup func(string) (string, bool)
	dir    string
}

// NewLoader creates a new configuration loader
func NewLoader(logger *zap.SugaredLogger) *Loader {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Loader{logger: logger, lookup: os.LookupEnv}
}

// Load reads one config file over the defaults, applies the TEICRM_*
// variables and validates the result.
//
// The file is path when given, else the file named by TEICRM_CONFIG, else
// the nearest teicrm.yaml or .teicrm.yaml in the working directory or a
// parent. Without any of them the defaults are used.
func (l *Loader) Load(path string) (*Config, error) {
	path, origin := l.resolve(path)

	cfg := DefaultConfig()
	if path != "" {
		loaded, err := LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("%s config %s: %w", origin, path, err)
		}
		cfg = loaded
		l.logger.Debugw("config file loaded", "path", path, "origin", origin)
	}

	for _, override := range envOverrides {
		variable := EnvPrefix + override.name
		value, ok := l.lookup(variable)
		if !ok || value == "" {
			continue
		}
		if err := override.apply(cfg, value); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", variable, err)
		}
		l.logger.Debugw("config override from environment", "variable", variable)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolve picks the config file and reports where it came from.
func (l *Loader) resolve(path string) (string, string) {
	if path != "" {
		return path, "explicit"
	}
	if named, ok := l.lookup(EnvConfig); ok && named != "" {
		return named, "environment"
	}
	if found := l.findProjectConfig(); found != "" {
		return found, "project"
	}
	return "", ""
}

func (l *Loader) findProjectConfig() string {
	dir := l.dir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return ""
		}
		dir = cwd
	}

	for {
		for _, name := range []string{ProjectConfigFile, HiddenConfigFile} {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
