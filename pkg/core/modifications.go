// Package core provides modification parsing and management
package core

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ModEntry describes a named post-translational modification.
type ModEntry struct {
	Name  string
	Mass  float64 // monoisotopic mass shift
	Sites string  // residues the modification is valid for; informational only
}

// ModDatabase stores modification definitions
type ModDatabase struct {
	mods map[string]ModEntry // name -> entry
}

// NewModDatabase creates an empty modification database
func NewModDatabase() *ModDatabase {
	return &ModDatabase{
		mods: make(map[string]ModEntry),
	}
}

// LoadFromCSV loads modifications from a CSV file (format: mod,massshift[,sites])
func (db *ModDatabase) LoadFromCSV(r io.Reader) error {
	scanner := bufio.NewScanner(r)

	// Skip header line
	scanner.Scan()

	lineNum := 1
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Split(line, ",")
		if len(parts) < 2 {
			return fmt.Errorf("line %d: invalid format, expected at least 2 comma-separated fields", lineNum)
		}

		modName := strings.TrimSpace(parts[0])
		massStr := strings.TrimSpace(parts[1])
		if modName == "" {
			return fmt.Errorf("line %d: empty modification name", lineNum)
		}

		mass, err := parseDelta(massStr)
		if err != nil {
			return fmt.Errorf("line %d: invalid mass value '%s': %w", lineNum, massStr, err)
		}

		var sites string
		if len(parts) > 2 {
			sites = strings.TrimSpace(parts[2])
		}

		db.Add(modName, mass, sites)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading CSV: %w", err)
	}

	return nil
}

// GetMass returns the mass shift for a modification name
func (db *ModDatabase) GetMass(name string) (float64, bool) {
	e, ok := db.mods[name]
	return e.Mass, ok
}

// Add adds or updates a modification
func (db *ModDatabase) Add(name string, mass float64, sites string) {
	db.mods[name] = ModEntry{Name: name, Mass: mass, Sites: sites}
}

// Len returns the number of modifications in the database.
func (db *ModDatabase) Len() int {
	return len(db.mods)
}

// Entries returns all modifications sorted by name.
func (db *ModDatabase) Entries() []ModEntry {
	entries := make([]ModEntry, 0, len(db.mods))
	for _, e := range db.mods {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries
}

// Resolve returns the mass shift for a modification token. A token is either
// a known name or a literal decimal mass shift such as "79.96633".
func (db *ModDatabase) Resolve(token string) (float64, error) {
	name := strings.TrimSpace(token)
	if mass, ok := db.GetMass(name); ok {
		return mass, nil
	}
	if mass, err := parseDelta(name); err == nil {
		return mass, nil
	}
	return 0, invalidModification(token)
}

// parseDelta parses a finite decimal mass shift.
func parseDelta(s string) (float64, error) {
	mass, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(mass) || math.IsInf(mass, 0) {
		return 0, fmt.Errorf("mass shift must be finite")
	}
	return mass, nil
}

// ModString returns modification tokens in format "name;name;..."
func ModString(modifications []string) string {
	parts := make([]string, 0, len(modifications))
	for _, m := range modifications {
		if m = strings.TrimSpace(m); m != "" {
			parts = append(parts, m)
		}
	}
	return strings.Join(parts, ";")
}

// ParseModString splits a "name;name" or "name,name" list into tokens.
func ParseModString(modStr string) []string {
	if modStr == "" {
		return nil
	}

	var mods []string
	for _, part := range strings.FieldsFunc(modStr, func(r rune) bool {
		return r == ';' || r == ','
	}) {
		if part = strings.TrimSpace(part); part != "" {
			mods = append(mods, part)
		}
	}
	return mods
}

// DefaultModDatabase returns a ModDatabase pre-loaded with the common modifications
func DefaultModDatabase() *ModDatabase {
	db := NewModDatabase()

	db.Add("phosphorylation", 79.96633, "STY")
	db.Add("acetylation", 42.01057, "K/N-term")
	db.Add("methylation", 14.01565, "KR")
	db.Add("dimethylation", 28.03130, "KR")
	db.Add("trimethylation", 42.04695, "K")
	db.Add("oxidation", 15.99491, "M")
	db.Add("deamidation", 0.98402, "NQ")
	db.Add("carbamidomethylation", 57.02146, "C")
	db.Add("ubiquitination", 114.04293, "K")

	return db
}
