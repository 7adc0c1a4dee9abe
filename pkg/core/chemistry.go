// Package core provides chemistry calculations for peptide mass calculations
package core

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Atomic masses (monoisotopic)
const (
	MassH = 1.0078250321
	MassC = 12.0000000000
	MassN = 14.0030740052
	MassO = 15.9949146221
	MassS = 31.9720706900

	// Proton mass for charge calculations
	ProtonMass = 1.00727646688
)

// Water added once per peptide for the terminal H and OH.
const (
	WaterMonoisotopic = 18.01056
	WaterAverage      = 18.0153
)

// MassType selects which mass column to sum.
type MassType string

const (
	Monoisotopic MassType = "monoisotopic"
	Average      MassType = "average"
)

// ParseMassType converts a mass type name into a MassType. Names match
// exactly; the empty string selects Monoisotopic.
func ParseMassType(s string) (MassType, error) {
	switch MassType(s) {
	case "", Monoisotopic:
		return Monoisotopic, nil
	case Average:
		return Average, nil
	default:
		return "", invalidParameter("mass type", s)
	}
}

type residueMass struct {
	mono, avg float64
}

// residueMasses holds residue (water-removed) masses in Da.
var residueMasses = map[rune]residueMass{
	'G': {57.02146, 57.0519},
	'A': {71.03711, 71.0788},
	'V': {99.06841, 99.1326},
	'L': {113.08406, 113.1594},
	'I': {113.08406, 113.1594},
	'P': {97.05276, 97.1167},
	'F': {147.06841, 147.1766},
	'W': {186.07931, 186.2132},
	'M': {131.04049, 131.1926},
	'S': {87.03203, 87.0782},
	'T': {101.04768, 101.1051},
	'C': {103.00919, 103.1388},
	'Y': {163.06333, 163.1760},
	'H': {137.05891, 137.1411},
	'D': {115.02694, 115.0886},
	'E': {129.04259, 129.1155},
	'N': {114.04293, 114.1038},
	'Q': {128.05858, 128.1307},
	'K': {128.09496, 128.1741},
	'R': {156.10111, 156.1875},
}

// ResidueMass returns the residue mass of aa for the given mass type.
func ResidueMass(aa rune, mt MassType) (float64, bool) {
	m, ok := residueMasses[aa]
	if !ok {
		return 0, false
	}
	if mt == Average {
		return m.avg, true
	}
	return m.mono, true
}

// WaterMass returns the water mass for the given mass type.
func WaterMass(mt MassType) float64 {
	if mt == Average {
		return WaterAverage
	}
	return WaterMonoisotopic
}

// ElementalComposition stores elemental composition
type ElementalComposition struct {
	C, H, N, O, S int
}

// residueElements maps amino acid one-letter codes to residue elemental composition
var residueElements = map[rune]ElementalComposition{
	'A': {C: 3, H: 5, N: 1, O: 1, S: 0},
	'R': {C: 6, H: 12, N: 4, O: 1, S: 0},
	'N': {C: 4, H: 6, N: 2, O: 2, S: 0},
	'D': {C: 4, H: 5, N: 1, O: 3, S: 0},
	'C': {C: 3, H: 5, N: 1, O: 1, S: 1},
	'E': {C: 5, H: 7, N: 1, O: 3, S: 0},
	'Q': {C: 5, H: 8, N: 2, O: 2, S: 0},
	'G': {C: 2, H: 3, N: 1, O: 1, S: 0},
	'H': {C: 6, H: 7, N: 3, O: 1, S: 0},
	'I': {C: 6, H: 11, N: 1, O: 1, S: 0},
	'L': {C: 6, H: 11, N: 1, O: 1, S: 0},
	'K': {C: 6, H: 12, N: 2, O: 1, S: 0},
	'M': {C: 5, H: 9, N: 1, O: 1, S: 1},
	'F': {C: 9, H: 9, N: 1, O: 1, S: 0},
	'P': {C: 5, H: 7, N: 1, O: 1, S: 0},
	'S': {C: 3, H: 5, N: 1, O: 2, S: 0},
	'T': {C: 4, H: 7, N: 1, O: 2, S: 0},
	'W': {C: 11, H: 10, N: 2, O: 1, S: 0},
	'Y': {C: 9, H: 9, N: 1, O: 2, S: 0},
	'V': {C: 5, H: 9, N: 1, O: 1, S: 0},
}

// Composition counts occurrences of each residue in a sequence.
type Composition map[rune]int

// Total returns the number of residues counted.
func (c Composition) Total() int {
	n := 0
	for _, count := range c {
		n += count
	}
	return n
}

// String returns the composition in format "A:2;G:2" sorted by residue.
func (c Composition) String() string {
	keys := make([]rune, 0, len(c))
	for aa := range c {
		keys = append(keys, aa)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	parts := make([]string, 0, len(keys))
	for _, aa := range keys {
		parts = append(parts, fmt.Sprintf("%c:%d", aa, c[aa]))
	}
	return strings.Join(parts, ";")
}

// Summary combines the common per-sequence results.
type Summary struct {
	Sequence        string
	Length          int
	MassType        MassType
	MolecularWeight float64
	MZByCharge      map[int]float64 // charges 1..3, no modifications
	Composition     Composition
}

// SummaryCharges are the charge states reported by a Summary.
var SummaryCharges = []int{1, 2, 3}

// Calculator computes peptide masses against a modification database.
// It holds no mutable state of its own and is safe for concurrent use as
// long as its ModDatabase is not modified.
type Calculator struct {
	mods *ModDatabase
}

// NewCalculator returns a Calculator resolving modifications against mods.
// A nil database selects DefaultModDatabase.
func NewCalculator(mods *ModDatabase) *Calculator {
	if mods == nil {
		mods = DefaultModDatabase()
	}
	return &Calculator{mods: mods}
}

var defaultCalculator = NewCalculator(nil)

// MolecularWeight computes the neutral mass of a peptide: residue masses
// plus water plus one delta per modification.
func (c *Calculator) MolecularWeight(sequence string, mt MassType, modifications []string) (float64, error) {
	mt, err := ParseMassType(string(mt))
	if err != nil {
		return 0, err
	}

	seq, err := prepareSequence(sequence)
	if err != nil {
		return 0, err
	}

	mass := WaterMass(mt)
	for _, aa := range seq {
		m, _ := ResidueMass(aa, mt)
		mass += m
	}

	// Add modification masses
	for _, mod := range modifications {
		delta, err := c.mods.Resolve(mod)
		if err != nil {
			return 0, err
		}
		mass += delta
	}
	if mass <= 0 || math.IsNaN(mass) || math.IsInf(mass, 0) {
		return 0, nonPositiveMass(modifications, mass)
	}

	return mass, nil
}

// MZ computes the mass-to-charge ratio for a positive charge state.
func (c *Calculator) MZ(sequence string, charge int, mt MassType, modifications []string) (float64, error) {
	if charge <= 0 {
		return 0, invalidParameter("charge", strconv.Itoa(charge))
	}

	mass, err := c.MolecularWeight(sequence, mt, modifications)
	if err != nil {
		return 0, err
	}

	// Calculate m/z: (mass + charge * proton) / charge
	return (mass + float64(charge)*ProtonMass) / float64(charge), nil
}

// Summary validates the sequence once and reports weight, m/z at charges
// 1-3 and composition. No modifications are applied.
func (c *Calculator) Summary(sequence string, mt MassType) (*Summary, error) {
	seq, err := prepareSequence(sequence)
	if err != nil {
		return nil, err
	}
	mt, err = ParseMassType(string(mt))
	if err != nil {
		return nil, err
	}

	mw, err := c.MolecularWeight(seq, mt, nil)
	if err != nil {
		return nil, err
	}

	mzs := make(map[int]float64, len(SummaryCharges))
	for _, z := range SummaryCharges {
		mz, err := c.MZ(seq, z, mt, nil)
		if err != nil {
			return nil, err
		}
		mzs[z] = mz
	}

	comp, err := AminoAcidComposition(seq)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Sequence:        seq,
		Length:          len(seq),
		MassType:        mt,
		MolecularWeight: mw,
		MZByCharge:      mzs,
		Composition:     comp,
	}, nil
}

// CalculateMW computes the molecular weight using the default modification table.
func CalculateMW(sequence string, mt MassType, modifications []string) (float64, error) {
	return defaultCalculator.MolecularWeight(sequence, mt, modifications)
}

// CalculateMZ computes m/z using the default modification table.
func CalculateMZ(sequence string, charge int, mt MassType, modifications []string) (float64, error) {
	return defaultCalculator.MZ(sequence, charge, mt, modifications)
}

// SequenceSummary summarizes a sequence using the default modification table.
func SequenceSummary(sequence string, mt MassType) (*Summary, error) {
	return defaultCalculator.Summary(sequence, mt)
}

// AminoAcidComposition counts each residue present in the sequence.
// Residues that do not occur are absent from the result.
func AminoAcidComposition(sequence string) (Composition, error) {
	seq, err := prepareSequence(sequence)
	if err != nil {
		return nil, err
	}

	comp := make(Composition)
	for _, aa := range seq {
		comp[aa]++
	}
	return comp, nil
}

// MolecularFormula returns the elemental formula of the unmodified peptide
// in Hill order, e.g. "C9H17N3O4" for AAA.
func MolecularFormula(sequence string) (string, error) {
	seq, err := prepareSequence(sequence)
	if err != nil {
		return "", err
	}

	comp := ElementalComposition{C: 0, H: 2, N: 0, O: 1, S: 0} // Add water
	for _, aa := range seq {
		e := residueElements[aa]
		comp.C += e.C
		comp.H += e.H
		comp.N += e.N
		comp.O += e.O
		comp.S += e.S
	}

	var b strings.Builder
	for _, el := range []struct {
		symbol string
		count  int
	}{{"C", comp.C}, {"H", comp.H}, {"N", comp.N}, {"O", comp.O}, {"S", comp.S}} {
		switch {
		case el.count == 0:
		case el.count == 1:
			b.WriteString(el.symbol)
		default:
			b.WriteString(el.symbol)
			b.WriteString(strconv.Itoa(el.count))
		}
	}
	return b.String(), nil
}

// ElementalMass returns the monoisotopic mass implied by an elemental composition.
func (a ElementalComposition) ElementalMass() float64 {
	return float64(a.C)*MassC +
		float64(a.H)*MassH +
		float64(a.N)*MassN +
		float64(a.O)*MassO +
		float64(a.S)*MassS
}

// RoundFloat rounds a float to n decimal places
func RoundFloat(val float64, precision int) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}
