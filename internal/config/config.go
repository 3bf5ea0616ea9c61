// Package config loads optional TOML defaults for the feedback
// tools. Flags always win over config values; config files only move
// the defaults.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// RepoConfigName is the per-project config file, found by walking up
// from the working directory.
const RepoConfigName = ".reviewtap.toml"

// Config holds the tunable defaults shared by both tools.
type Config struct {
	// Actors are exact logins added to the built-in defaults,
	// like repeated --actor flags.
	Actors []string `toml:"actors"`

	// ActorRegex is a case-insensitive pattern complementing the
	// exact logins.
	ActorRegex string `toml:"actor_regex"`

	// NoDefaultActors drops the built-in login list.
	NoDefaultActors bool `toml:"no_default_actors"`

	// MaxBodyLength caps each item body after whitespace
	// compaction (feedback tool).
	MaxBodyLength int `toml:"max_body_length"`

	// Format is the feedback tool's default output format,
	// "markdown" or "json".
	Format string `toml:"format"`
}

// ConfigDir returns the reviewtap config directory.
// Uses REVIEWTAP_CONFIG_DIR if set, otherwise ~/.reviewtap
func ConfigDir() string {
	if dir := os.Getenv("REVIEWTAP_CONFIG_DIR"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".reviewtap")
}

// GlobalConfigPath returns the path of the global config file.
func GlobalConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// LoadGlobal loads the global configuration, or nil when the file
// does not exist.
func LoadGlobal() (*Config, error) {
	return LoadFile(GlobalConfigPath())
}

// LoadFile loads a config file from a specific path. A missing file
// is not an error; it returns nil.
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadRepo finds the nearest .reviewtap.toml from dir upward and
// loads it. Returns nil when no file exists on the path to the
// filesystem root. The lookup deliberately does not require a git
// checkout: with --repo the tools work from any directory.
func LoadRepo(dir string) (*Config, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	for {
		cfg, err := LoadFile(filepath.Join(abs, RepoConfigName))
		if err != nil || cfg != nil {
			return cfg, err
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return nil, nil
		}
		abs = parent
	}
}

// Merge layers repo config over global config. Either may be nil;
// the result is never nil. Scalar fields take the repo value when it
// is set; Actors lists are concatenated since both only ever add to
// the built-in defaults.
func Merge(global, repo *Config) *Config {
	merged := Config{}
	for _, cfg := range []*Config{global, repo} {
		if cfg == nil {
			continue
		}
		merged.Actors = append(merged.Actors, cfg.Actors...)
		if cfg.ActorRegex != "" {
			merged.ActorRegex = cfg.ActorRegex
		}
		if cfg.NoDefaultActors {
			merged.NoDefaultActors = true
		}
		if cfg.MaxBodyLength != 0 {
			merged.MaxBodyLength = cfg.MaxBodyLength
		}
		if cfg.Format != "" {
			merged.Format = cfg.Format
		}
	}
	return &merged
}
