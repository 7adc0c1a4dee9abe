package core

import (
	"strings"
	"unicode"
)

// StandardAminoAcids lists the one-letter codes the calculator accepts.
const StandardAminoAcids = "ACDEFGHIKLMNPQRSTVWY"

// NormalizeSequence uppercases a raw sequence and strips all whitespace.
// It does not validate the result.
func NormalizeSequence(raw string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToUpper(r)
	}, raw)
}

// ValidateSequence checks that a normalized sequence is non-empty and uses
// only the 20 standard residues. Extended codes such as U and X are rejected.
func ValidateSequence(sequence string) error {
	if sequence == "" {
		return invalidInput("sequence is empty")
	}
	pos := 0
	for _, aa := range sequence {
		pos++
		if _, ok := residueMasses[aa]; !ok {
			return invalidResidue(aa, pos)
		}
	}
	return nil
}

// prepareSequence normalizes and validates in one step.
func prepareSequence(raw string) (string, error) {
	seq := NormalizeSequence(raw)
	if err := ValidateSequence(seq); err != nil {
		return "", err
	}
	return seq, nil
}
