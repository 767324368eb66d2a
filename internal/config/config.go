// Package config loads the application configuration from file, environment
// and flags, in that order of increasing precedence. The spaced-repetition
// priority thresholds live here: they are a policy surface, not constants.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/nosoyjaviero/Sistema-de-Cursos-y-examenes-IA-sub000/internal/spacedrep"
)

// envPrefix is the prefix for configuration environment variables.
// Nested keys use a double underscore: REPASO_SESION__MAX_PREGUNTAS.
const envPrefix = "REPASO_"

// Config is the full application configuration.
type Config struct {
	// DB is the SQLite database path. Empty means the XDG default.
	DB string `koanf:"db"`

	Session   Session          `koanf:"sesion"`
	Prioridad spacedrep.Policy `koanf:"prioridad"`
}

// Session configures study session composition.
type Session struct {
	// MaxPreguntas is the default requested session size.
	MaxPreguntas int `koanf:"max_preguntas" validate:"gte=1,lte=100"`
}

// Default returns the reference configuration.
func Default() Config {
	return Config{
		Session:   Session{MaxPreguntas: 10},
		Prioridad: spacedrep.DefaultPolicy(),
	}
}

// Load builds the configuration: defaults, then the YAML file at path (or
// the default location when path is empty; a missing file is fine), then
// REPASO_* environment variables, then flags.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	cfg := Default()
	k := koanf.New(".")

	if path == "" {
		path = defaultConfigPath()
	}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return cfg, fmt.Errorf("load config file %s: %w", path, err)
			}
		}
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil)
	if err != nil {
		return cfg, fmt.Errorf("load env config: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return cfg, fmt.Errorf("load flag config: %w", err)
		}
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// defaultConfigPath resolves $XDG_CONFIG_HOME/repaso/config.yaml.
func defaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "repaso", "config.yaml")
}
