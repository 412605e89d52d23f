package config

import "fmt"

// GeneratorConfig controls random instance generation.
type GeneratorConfig struct {
	// Nodes is the number of points including the depot.
	Nodes int `json:"nodes"`
	// Size is the side of the square points are drawn from.
	Size float64 `json:"size"`
	Seed int64   `json:"seed"`
}

// SetDefaults applies sane defaults.
func (c *GeneratorConfig) SetDefaults() {
	if c.Nodes == 0 {
		c.Nodes = 100
	}
	if c.Size == 0 {
		c.Size = 100
	}
	if c.Seed == 0 {
		c.Seed = 1
	}
}

// Validate checks mandatory fields.
func (c GeneratorConfig) Validate() error {
	if c.Nodes < 1 {
		return fmt.Errorf("nodes must include the depot, got %d", c.Nodes)
	}
	if c.Size <= 0 {
		return fmt.Errorf("size must be positive, got %v", c.Size)
	}
	return nil
}
