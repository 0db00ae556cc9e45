package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Config holds runtime settings for the reader.
type Config struct {
	// Manifest is the archive manifest location: an http(s) URL or a
	// local file path.
	Manifest string `koanf:"manifest" yaml:"manifest"`
	// DBPath is the sqlite file holding the disclaimer flag and the
	// resume fragment.
	DBPath   string `koanf:"db_path" yaml:"db_path"`
	CacheDir string `koanf:"cache_dir" yaml:"cache_dir"`
	// ImagePreview toggles inline comic rendering via chafa.
	ImagePreview bool `koanf:"image_preview" yaml:"image_preview"`
	// SwipeThreshold is the horizontal mouse-drag distance, in cells,
	// that counts as a page swipe.
	SwipeThreshold     int `koanf:"swipe_threshold" yaml:"swipe_threshold"`
	HTTPTimeoutSeconds int `koanf:"http_timeout_seconds" yaml:"http_timeout_seconds"`
}

func DefaultConfig() *Config {
	return &Config{
		DBPath:             "comicshelf.db",
		CacheDir:           "comicshelf-images",
		ImagePreview:       true,
		SwipeThreshold:     8,
		HTTPTimeoutSeconds: 10,
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (COMICSHELF_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// COMICSHELF_MANIFEST -> manifest, COMICSHELF_DB_PATH -> db_path, etc.
	if err := k.Load(env.Provider("COMICSHELF_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "COMICSHELF_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if c.Manifest == "" {
		return fmt.Errorf("manifest is required (set manifest in the config file or COMICSHELF_MANIFEST)")
	}
	if c.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}
	if c.SwipeThreshold < 1 {
		return fmt.Errorf("swipe_threshold must be positive: %d", c.SwipeThreshold)
	}
	if c.HTTPTimeoutSeconds < 1 {
		return fmt.Errorf("http_timeout_seconds must be positive: %d", c.HTTPTimeoutSeconds)
	}
	return nil
}
