// Package config provides configuration loading for batch runs.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ChrisMcGann/PepMass/pkg/core"
	"github.com/ChrisMcGann/PepMass/pkg/filter"
)

// Config represents the complete batch configuration
type Config struct {
	// MassType is "monoisotopic" or "average"
	MassType string `yaml:"mass_type"`
	// Modifications are applied to every record (names or literal mass shifts)
	Modifications []string `yaml:"modifications,omitempty"`
	// ModsCSV extends the default modification table (format: mod,massshift[,sites])
	ModsCSV string       `yaml:"mods_csv"`
	Filter  FilterConfig `yaml:"filter"`
	Output  OutputConfig `yaml:"output"`
}

// FilterConfig bounds the records written. Zero disables a bound.
type FilterConfig struct {
	MinLength int     `yaml:"min_length"`
	MaxLength int     `yaml:"max_length"`
	MinMass   float64 `yaml:"min_mass"`
	MaxMass   float64 `yaml:"max_mass"`
}

// OutputConfig configures the result database
type OutputConfig struct {
	// Description is stored in HeaderTable
	Description string `yaml:"description"`
	// Precision is the number of decimal places stored (0 = full precision)
	Precision int `yaml:"precision"`
	// ProgressEvery logs progress after this many records (0 = never)
	ProgressEvery int `yaml:"progress_every"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		MassType: string(core.Monoisotopic),
		Output: OutputConfig{
			Precision:     5,
			ProgressEvery: 1000,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if _, err := core.ParseMassType(c.MassType); err != nil {
		return fmt.Errorf("mass_type: %w", err)
	}
	if c.Output.Precision < 0 {
		return fmt.Errorf("output.precision must be non-negative")
	}
	if c.Output.ProgressEvery < 0 {
		return fmt.Errorf("output.progress_every must be non-negative")
	}
	if err := c.FilterConfig().Validate(); err != nil {
		return fmt.Errorf("filter: %w", err)
	}
	return nil
}

// ParsedMassType returns the configured mass type.
func (c *Config) ParsedMassType() (core.MassType, error) {
	return core.ParseMassType(c.MassType)
}

// FilterConfig converts the filter section for the filter package
func (c *Config) FilterConfig() *filter.Config {
	return &filter.Config{
		MinLength: c.Filter.MinLength,
		MaxLength: c.Filter.MaxLength,
		MinMass:   c.Filter.MinMass,
		MaxMass:   c.Filter.MaxMass,
	}
}

// ModDatabase returns the default modification table, extended from
// ModsCSV when set.
func (c *Config) ModDatabase() (*core.ModDatabase, error) {
	db := core.DefaultModDatabase()
	if c.ModsCSV == "" {
		return db, nil
	}

	f, err := os.Open(c.ModsCSV)
	if err != nil {
		return nil, fmt.Errorf("failed to open modification CSV: %w", err)
	}
	defer f.Close()

	if err := db.LoadFromCSV(f); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", c.ModsCSV, err)
	}
	return db, nil
}

// LoadFromFile loads configuration from a YAML file over the defaults
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
