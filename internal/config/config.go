// Package config handles TOML configuration loading with environment
// variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/vmunix/grabarr/internal/library"
)

// Config is the root configuration structure.
type Config struct {
	LogLevel  string           `toml:"log_level"`
	Database  DatabaseConfig   `toml:"database"`
	Instances []InstanceConfig `toml:"instance"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

// InstanceConfig describes one managed instance: what type of content it
// hunts, how often, through which indexers, and where grabs go.
type InstanceConfig struct {
	Name                string              `toml:"name"`
	Type                library.ManagedType `toml:"type"`
	SyncIntervalMinutes int                 `toml:"sync_interval_minutes"`
	Indexers            []IndexerConfig     `toml:"indexer"`
	SABnzbd             *SABnzbdConfig      `toml:"sabnzbd"`
}

// SyncInterval returns the configured interval as a duration.
func (i InstanceConfig) SyncInterval() time.Duration {
	return time.Duration(i.SyncIntervalMinutes) * time.Minute
}

type IndexerConfig struct {
	Name     string `toml:"name"`
	URL      string `toml:"url"`
	APIKey   string `toml:"api_key"`
	Priority int    `toml:"priority"`
}

type SABnzbdConfig struct {
	URL      string `toml:"url"`
	APIKey   string `toml:"api_key"`
	Category string `toml:"category"`
}

// Load reads and parses the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	content := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Apply defaults
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "./data/grabarr.db"
	}
	for i := range cfg.Instances {
		inst := &cfg.Instances[i]
		if inst.Type == "" {
			inst.Type = library.TypeMovie
		}
		if inst.SyncIntervalMinutes == 0 {
			inst.SyncIntervalMinutes = 30
		}
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	seen := make(map[string]bool)
	for _, inst := range cfg.Instances {
		if inst.Name == "" {
			return fmt.Errorf("instance without a name")
		}
		if seen[inst.Name] {
			return fmt.Errorf("duplicate instance name %q", inst.Name)
		}
		seen[inst.Name] = true

		if inst.Type != library.TypeMovie && inst.Type != library.TypeSeries {
			return fmt.Errorf("instance %q: unknown type %q", inst.Name, inst.Type)
		}
		for _, idx := range inst.Indexers {
			if idx.URL == "" {
				return fmt.Errorf("instance %q: indexer %q without a url", inst.Name, idx.Name)
			}
		}
	}
	return nil
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func substituteEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		varName := match[2 : len(match)-1] // Strip ${ and }
		if value, ok := os.LookupEnv(varName); ok {
			return value
		}
		return match // Leave unchanged if not found
	})
}
