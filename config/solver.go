package config

import "fmt"

// SolverConfig holds the fleet parameters.
type SolverConfig struct {
	// Agents is the number of routes to build.
	Agents int `json:"agents"`
	// Radius is the communication radius the fleet must stay within.
	// Zero disables the feasibility check.
	Radius float64 `json:"radius"`
}

// SetDefaults applies sane defaults.
func (c *SolverConfig) SetDefaults() {
	if c.Agents == 0 {
		c.Agents = 3
	}
}

// Validate checks mandatory fields.
func (c SolverConfig) Validate() error {
	if c.Agents < 1 {
		return fmt.Errorf("agents must be at least 1, got %d", c.Agents)
	}
	if c.Radius < 0 {
		return fmt.Errorf("radius must not be negative, got %v", c.Radius)
	}
	return nil
}

// InstanceConfig points to an instance file. When Path is set the generator
// is not used.
type InstanceConfig struct {
	Path string `json:"path"`
}

// ExportConfig selects where plan files are written. An empty Dir disables
// export.
type ExportConfig struct {
	Dir string `json:"dir"`
}
