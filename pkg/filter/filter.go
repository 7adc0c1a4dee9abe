// Package filter provides record filtering for batch runs
package filter

import (
	"fmt"

	"github.com/ChrisMcGann/PepMass/pkg/core"
)

// Config holds filtering configuration. Zero values disable a bound.
type Config struct {
	MinLength int     // Keep only sequences at least this long
	MaxLength int     // Keep only sequences at most this long
	MinMass   float64 // Keep only molecular weights at or above this value (Da)
	MaxMass   float64 // Keep only molecular weights at or below this value (Da)
}

// Rejection explains why an evaluated peptide did not pass the filter.
type Rejection struct {
	Reason string
}

func (r *Rejection) Error() string {
	return "filtered: " + r.Reason
}

// Validate checks that bounds are non-negative and ordered
func (c *Config) Validate() error {
	if c.MinLength < 0 || c.MaxLength < 0 {
		return fmt.Errorf("length bounds must be non-negative")
	}
	if c.MinMass < 0 || c.MaxMass < 0 {
		return fmt.Errorf("mass bounds must be non-negative")
	}
	if c.MaxLength > 0 && c.MinLength > c.MaxLength {
		return fmt.Errorf("min length %d exceeds max length %d", c.MinLength, c.MaxLength)
	}
	if c.MaxMass > 0 && c.MinMass > c.MaxMass {
		return fmt.Errorf("min mass %.4f exceeds max mass %.4f", c.MinMass, c.MaxMass)
	}
	return nil
}

// Apply returns a *Rejection if the evaluated peptide falls outside any
// configured window, nil otherwise.
func (c *Config) Apply(p *core.Peptide) error {
	if err := c.checkLength(p); err != nil {
		return err
	}
	return c.checkMass(p)
}

// checkLength compares the normalized sequence length
func (c *Config) checkLength(p *core.Peptide) error {
	n := len(p.Sequence)
	if c.MinLength > 0 && n < c.MinLength {
		return &Rejection{Reason: fmt.Sprintf("length %d below minimum %d", n, c.MinLength)}
	}
	if c.MaxLength > 0 && n > c.MaxLength {
		return &Rejection{Reason: fmt.Sprintf("length %d above maximum %d", n, c.MaxLength)}
	}
	return nil
}

// checkMass compares the modified molecular weight
func (c *Config) checkMass(p *core.Peptide) error {
	mw := p.MolecularWeight
	if c.MinMass > 0 && mw < c.MinMass {
		return &Rejection{Reason: fmt.Sprintf("mass %.4f below minimum %.4f", mw, c.MinMass)}
	}
	if c.MaxMass > 0 && mw > c.MaxMass {
		return &Rejection{Reason: fmt.Sprintf("mass %.4f above maximum %.4f", mw, c.MaxMass)}
	}
	return nil
}
