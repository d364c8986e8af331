// Package config loads and validates the cratedig.yml configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the configuration file cratedig looks for.
const DefaultFileName = "cratedig.yml"

// Defaults applied when the corresponding field is omitted.
const (
	DefaultGatherCount  = 4
	DefaultSimilarLimit = 20
	DefaultTagLimit     = 19
	DefaultCacheTTL     = 24 * time.Hour
)

// Config is the top-level cratedig.yml structure.
type Config struct {
	// APIKey is the audioscrobbler API credential. Required.
	APIKey string `yaml:"api_key"`

	// BaseURL overrides the provider endpoint. Mostly useful for tests.
	BaseURL string `yaml:"base_url,omitempty"`

	// Autocorrect asks the provider to fix common misspellings.
	Autocorrect bool `yaml:"autocorrect,omitempty"`

	Gather GatherConfig `yaml:"gather,omitempty"`
	Tags   TagsConfig   `yaml:"tags,omitempty"`
	Cache  *CacheConfig `yaml:"cache,omitempty"`
}

// GatherConfig tunes the similar-track gatherer.
type GatherConfig struct {
	// Count is how many candidates each gather round admits.
	Count int `yaml:"count,omitempty"`

	// SimilarLimit is how many related artists seed the feed.
	SimilarLimit int `yaml:"similar_limit,omitempty"`
}

// TagsConfig tunes the tag matcher.
type TagsConfig struct {
	// Limit caps the top-tag list kept per track. The provider treats its
	// own limit as advisory, so this is enforced client-side.
	Limit int `yaml:"limit,omitempty"`
}

// CacheConfig enables the Redis-backed provider response cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Addr    string        `yaml:"addr,omitempty"`
	TTL     time.Duration `yaml:"ttl,omitempty"`
}

// Load reads and validates a configuration file, applying defaults for
// omitted fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Find locates the configuration file: the explicit path if given, then
// ./cratedig.yml, then $HOME/.cratedig.yml.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file %s: %w", explicit, err)
		}
		return explicit, nil
	}

	if _, err := os.Stat(DefaultFileName); err == nil {
		return DefaultFileName, nil
	}
	home, err := os.UserHomeDir()
	if err == nil {
		candidate := filepath.Join(home, "."+DefaultFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no %s found in the current directory or home directory", DefaultFileName)
}

func (c *Config) applyDefaults() {
	if c.Gather.Count == 0 {
		c.Gather.Count = DefaultGatherCount
	}
	if c.Gather.SimilarLimit == 0 {
		c.Gather.SimilarLimit = DefaultSimilarLimit
	}
	if c.Tags.Limit == 0 {
		c.Tags.Limit = DefaultTagLimit
	}
	if c.Cache != nil && c.Cache.TTL == 0 {
		c.Cache.TTL = DefaultCacheTTL
	}
}

// Validate performs strict validation on the configuration.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("api_key is required")
	}
	if c.Gather.Count < 1 {
		return fmt.Errorf("gather.count must be positive, got %d", c.Gather.Count)
	}
	if c.Gather.SimilarLimit < 1 {
		return fmt.Errorf("gather.similar_limit must be positive, got %d", c.Gather.SimilarLimit)
	}
	if c.Tags.Limit < 1 {
		return fmt.Errorf("tags.limit must be positive, got %d", c.Tags.Limit)
	}
	if c.Cache != nil && c.Cache.Enabled && c.Cache.Addr == "" {
		return fmt.Errorf("cache.addr is required when the cache is enabled")
	}
	return nil
}
