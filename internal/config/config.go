// internal/config/config.go
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the run configuration that can come from a YAML file. Command-line
// flags that are set explicitly override file values.
type Config struct {
	Segment      int           `yaml:"segment"`
	Kmer         int           `yaml:"kmer"`
	Threads      int           `yaml:"threads"`
	Out          string        `yaml:"out"`
	ShortSegment string        `yaml:"short_segment"`
	Staging      StagingConfig `yaml:"staging"`
}

type StagingConfig struct {
	Kind string `yaml:"kind"` // dir | memory | sqlite
	Dir  string `yaml:"dir"`
	Keep bool   `yaml:"keep"`
}

// Defaults used when neither a file nor a flag sets a value.
const (
	DefaultSegment      = 5000
	DefaultKmer         = 11
	DefaultThreads      = 1
	DefaultOut          = "out.txt"
	DefaultShortSegment = "nan"
	DefaultStaging      = "dir"
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Segment:      DefaultSegment,
		Kmer:         DefaultKmer,
		Threads:      DefaultThreads,
		Out:          DefaultOut,
		ShortSegment: DefaultShortSegment,
		Staging:      StagingConfig{Kind: DefaultStaging},
	}
}

// Load reads a YAML file on top of Default. Keys absent from the file keep
// their defaults; an empty path returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := Parse(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML into cfg, rejecting unknown keys.
func Parse(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config: %w", err)
	}
	applyDefaults(cfg)
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Out == "" {
		cfg.Out = DefaultOut
	}
	if cfg.ShortSegment == "" {
		cfg.ShortSegment = DefaultShortSegment
	}
	if cfg.Staging.Kind == "" {
		cfg.Staging.Kind = DefaultStaging
	}
}
