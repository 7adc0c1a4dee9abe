package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	calc := NewCalculator(nil)

	p := &Peptide{ID: "ova", RawSequence: "siinfekl"}
	require.NoError(t, calc.Evaluate(p, Monoisotopic))
	require.NoError(t, p.Validate())

	summary, err := SequenceSummary("SIINFEKL", Monoisotopic)
	require.NoError(t, err)
	assert.Equal(t, "SIINFEKL", p.Sequence)
	assert.Equal(t, summary.MolecularWeight, p.MolecularWeight)
	assert.Equal(t, summary.MZByCharge, p.MZByCharge)
	assert.Equal(t, summary.Composition, p.Composition)
	assert.Equal(t, "ova", p.Name())
	assert.NotEmpty(t, p.Formula)
}

func TestEvaluateWithModifications(t *testing.T) {
	calc := NewCalculator(nil)

	p := &Peptide{RawSequence: "SIINFEKL", Modifications: []string{"phosphorylation"}}
	require.NoError(t, calc.Evaluate(p, Monoisotopic))

	base, err := CalculateMW("SIINFEKL", Monoisotopic, nil)
	require.NoError(t, err)
	assert.InDelta(t, base+79.96633, p.MolecularWeight, 1e-9)

	for _, z := range SummaryCharges {
		want, err := CalculateMZ("SIINFEKL", z, Monoisotopic, []string{"phosphorylation"})
		require.NoError(t, err)
		assert.InDelta(t, want, p.MZByCharge[z], 1e-9)
	}
	assert.Equal(t, "SIINFEKL", p.Name())
}

func TestEvaluateLeavesPeptideUnchangedOnError(t *testing.T) {
	calc := NewCalculator(nil)

	p := &Peptide{RawSequence: "SIIXFEKL"}
	assert.ErrorIs(t, calc.Evaluate(p, Monoisotopic), ErrInvalidResidue)
	assert.Empty(t, p.Sequence)
	assert.Nil(t, p.MZByCharge)

	p = &Peptide{RawSequence: "SIINFEKL", Modifications: []string{"glycation"}}
	assert.ErrorIs(t, calc.Evaluate(p, Monoisotopic), ErrInvalidModification)
	assert.Empty(t, p.Sequence)
}

func TestPeptideValidate(t *testing.T) {
	tests := []struct {
		name    string
		pep     *Peptide
		wantErr bool
	}{
		{
			name: "valid peptide",
			pep: &Peptide{
				Sequence:        "AG",
				MolecularWeight: 146.06914,
				MZByCharge:      map[int]float64{1: 147.07, 2: 74.04, 3: 49.7},
				Composition:     Composition{'A': 1, 'G': 1},
			},
			wantErr: false,
		},
		{
			name:    "not evaluated",
			pep:     &Peptide{RawSequence: "AG"},
			wantErr: true,
		},
		{
			name: "missing charge",
			pep: &Peptide{
				Sequence:        "AG",
				MolecularWeight: 146.06914,
				MZByCharge:      map[int]float64{1: 147.07},
				Composition:     Composition{'A': 1, 'G': 1},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.pep.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
