package core

import "fmt"

// ErrorKind classifies calculation failures.
type ErrorKind string

const (
	KindInvalidInput        ErrorKind = "invalid input"
	KindInvalidResidue      ErrorKind = "invalid residue"
	KindInvalidParameter    ErrorKind = "invalid parameter"
	KindInvalidModification ErrorKind = "invalid modification"
)

// Sentinels for errors.Is. Any *Error matches the sentinel of the same kind.
var (
	ErrInvalidInput        = &Error{Kind: KindInvalidInput}
	ErrInvalidResidue      = &Error{Kind: KindInvalidResidue}
	ErrInvalidParameter    = &Error{Kind: KindInvalidParameter}
	ErrInvalidModification = &Error{Kind: KindInvalidModification}
)

// Error is returned by every calculation in this package.
type Error struct {
	Kind     ErrorKind
	Message  string
	Residue  rune   // offending residue, KindInvalidResidue only
	Position int    // 1-based position of Residue in the normalized sequence
	Value    string // offending parameter or modification token
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func invalidInput(msg string) error {
	return &Error{Kind: KindInvalidInput, Message: msg}
}

func invalidResidue(aa rune, pos int) error {
	return &Error{
		Kind:     KindInvalidResidue,
		Message:  fmt.Sprintf("unknown amino acid %q at position %d", aa, pos),
		Residue:  aa,
		Position: pos,
	}
}

func invalidParameter(name, value string) error {
	return &Error{
		Kind:    KindInvalidParameter,
		Message: fmt.Sprintf("unsupported %s '%s'", name, value),
		Value:   value,
	}
}

func invalidModification(token string) error {
	return &Error{
		Kind:    KindInvalidModification,
		Message: fmt.Sprintf("unknown modification '%s'", token),
		Value:   token,
	}
}

func nonPositiveMass(modifications []string, mass float64) error {
	mods := ModString(modifications)
	return &Error{
		Kind:    KindInvalidModification,
		Message: fmt.Sprintf("modifications '%s' give non-positive mass %g", mods, mass),
		Value:   mods,
	}
}
