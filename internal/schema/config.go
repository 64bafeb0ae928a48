package schema

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the tunable parts of the dataset schema: which date layouts
// the validator accepts and how many data rows a single upload may carry.
// The required column set itself is fixed.
type Config struct {
	DateLayouts []string `yaml:"date_layouts"`
	MaxRows     int      `yaml:"max_rows"`
}

// Default returns the built-in schema config used when no file is given.
func Default() Config {
	return Config{
		DateLayouts: []string{
			"2006-01-02",
			"2006/01/02",
			"01/02/2006",
			"2006-01-02 15:04:05",
			time.RFC3339,
		},
		MaxRows: 100000,
	}
}

// Load reads a YAML schema config file. Unknown fields fail immediately so
// typos in the file surface at startup rather than as silently ignored
// settings. An empty path yields Default().
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read schema config: %w", err)
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode schema config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("schema config validation failed: %w", err)
	}

	return cfg, nil
}

func (c Config) validate() error {
	if len(c.DateLayouts) == 0 {
		return fmt.Errorf("date_layouts must not be empty")
	}

	if c.MaxRows <= 0 {
		return fmt.Errorf("max_rows must be positive")
	}

	return nil
}

// ParseDate tries each configured layout in order.
func (c Config) ParseDate(s string) (time.Time, bool) {
	for _, layout := range c.DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
