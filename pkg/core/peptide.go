// Package core provides the intermediate representation used by batch
// callers: one Peptide per input record, filled in by a Calculator.
package core

import (
	"fmt"
	"math"
	"strings"
)

// Peptide represents one input sequence with all calculated values.
type Peptide struct {
	// Input
	ID            string   // FASTA identifier
	Description   string   // FASTA description line after the identifier
	RawSequence   string   // sequence as read
	Modifications []string // modification tokens applied to MolecularWeight

	// Calculated by Calculator.Evaluate
	Sequence        string // normalized sequence
	MassType        MassType
	MolecularWeight float64 // includes modifications
	MZByCharge      map[int]float64
	Composition     Composition
	Formula         string // unmodified peptide

	// Internal tracking
	SourceFile string
}

// ValidationError represents an error found during peptide validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
}

// Evaluate computes all values for p. On error p is left unchanged.
func (c *Calculator) Evaluate(p *Peptide, mt MassType) error {
	summary, err := c.Summary(p.RawSequence, mt)
	if err != nil {
		return err
	}

	mw := summary.MolecularWeight
	mzs := summary.MZByCharge
	if len(p.Modifications) > 0 {
		mw, err = c.MolecularWeight(summary.Sequence, summary.MassType, p.Modifications)
		if err != nil {
			return err
		}
		mzs = make(map[int]float64, len(SummaryCharges))
		for _, z := range SummaryCharges {
			mzs[z] = (mw + float64(z)*ProtonMass) / float64(z)
		}
	}

	formula, err := MolecularFormula(summary.Sequence)
	if err != nil {
		return err
	}

	p.Sequence = summary.Sequence
	p.MassType = summary.MassType
	p.MolecularWeight = mw
	p.MZByCharge = mzs
	p.Composition = summary.Composition
	p.Formula = formula
	return nil
}

// Validate checks that an evaluated peptide is complete.
func (p *Peptide) Validate() error {
	var errs []string

	if p.Sequence == "" {
		errs = append(errs, "sequence is required")
	}
	if math.IsNaN(p.MolecularWeight) || math.IsInf(p.MolecularWeight, 0) || p.MolecularWeight <= 0 {
		errs = append(errs, "molecular weight must be positive and finite")
	}
	for _, z := range SummaryCharges {
		if mz, ok := p.MZByCharge[z]; !ok || mz <= 0 {
			errs = append(errs, fmt.Sprintf("m/z for charge %d is missing", z))
		}
	}
	if p.Composition.Total() != len(p.Sequence) {
		errs = append(errs, "composition does not match sequence length")
	}

	if len(errs) > 0 {
		return &ValidationError{
			Field:   "Peptide",
			Message: strings.Join(errs, "; "),
		}
	}

	return nil
}

// Name returns the peptide name: the ID if set, otherwise the sequence
func (p *Peptide) Name() string {
	if p.ID != "" {
		return p.ID
	}
	if p.Sequence != "" {
		return p.Sequence
	}
	return p.RawSequence
}
