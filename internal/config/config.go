// Package config loads generation settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"svw.info/maxrun/internal/domain"
)

// Config describes a grid, its tile alphabet and the run rules to enforce.
type Config struct {
	Name        string          `yaml:"name,omitempty"`
	Topology    domain.Topology `yaml:"topology"`
	Tiles       []domain.Tile   `yaml:"tiles"`
	Constraints []domain.Rule   `yaml:"constraints"`
	Seed        int64           `yaml:"seed,omitempty"`
}

// Load reads and validates the YAML file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a YAML document.
func Parse(data []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	c.Topology = c.Topology.Normalize()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the topology and that every rule only names known tiles.
func (c *Config) Validate() error {
	if err := c.Topology.Validate(); err != nil {
		return err
	}
	if len(c.Tiles) == 0 {
		return errors.New("tiles are required")
	}
	known := make(map[domain.Tile]bool, len(c.Tiles))
	for _, t := range c.Tiles {
		if known[t] {
			return fmt.Errorf("duplicate tile %q", t)
		}
		known[t] = true
	}
	for i, r := range c.Constraints {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("constraint %d: %w", i, err)
		}
		for _, t := range r.Tiles {
			if !known[t] {
				return fmt.Errorf("constraint %d: unknown tile %q", i, t)
			}
		}
	}
	return nil
}

// Template returns an open sample for the configured grid.
func (c *Config) Template() *domain.Sample {
	return &domain.Sample{
		Name:     c.Name,
		Seed:     c.Seed,
		Topology: c.Topology,
		Alphabet: append([]domain.Tile(nil), c.Tiles...),
		Rules:    append([]domain.Rule(nil), c.Constraints...),
	}
}
