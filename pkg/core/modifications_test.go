package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultModDatabase(t *testing.T) {
	db := DefaultModDatabase()
	require.Equal(t, 9, db.Len())

	want := map[string]float64{
		"phosphorylation":      79.96633,
		"acetylation":          42.01057,
		"methylation":          14.01565,
		"dimethylation":        28.03130,
		"trimethylation":       42.04695,
		"oxidation":            15.99491,
		"deamidation":          0.98402,
		"carbamidomethylation": 57.02146,
		"ubiquitination":       114.04293,
	}
	for name, mass := range want {
		got, ok := db.GetMass(name)
		require.True(t, ok, name)
		assert.Equal(t, mass, got, name)
	}

	entries := db.Entries()
	require.Len(t, entries, 9)
	assert.Equal(t, "acetylation", entries[0].Name)
	assert.Equal(t, "ubiquitination", entries[8].Name)
	for _, e := range entries {
		assert.NotEmpty(t, e.Sites, e.Name)
	}
}

func TestResolve(t *testing.T) {
	db := DefaultModDatabase()

	tests := []struct {
		token   string
		want    float64
		wantErr bool
	}{
		{"oxidation", 15.99491, false},
		{" oxidation ", 15.99491, false},
		{"-18.010565", -18.010565, false},
		{"Oxidation", 0, true},
		{"unknown", 0, true},
		{"Inf", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := db.Resolve(tt.token)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidModification, tt.token)
			continue
		}
		require.NoError(t, err, tt.token)
		assert.Equal(t, tt.want, got)
	}
}

func TestLoadFromCSV(t *testing.T) {
	csv := `mod,massshift,aa
SILAC-K8,8.014199,K

SILAC-R10,10.008269,R
oxidation,16.0
`
	db := DefaultModDatabase()
	require.NoError(t, db.LoadFromCSV(strings.NewReader(csv)))

	assert.Equal(t, 11, db.Len())
	mass, ok := db.GetMass("SILAC-K8")
	require.True(t, ok)
	assert.Equal(t, 8.014199, mass)

	// later rows override earlier definitions
	mass, ok = db.GetMass("oxidation")
	require.True(t, ok)
	assert.Equal(t, 16.0, mass)
}

func TestLoadFromCSVErrors(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"missing mass", "mod,massshift\nlonely\n"},
		{"bad mass", "mod,massshift\nfoo,abc\n"},
		{"non-finite mass", "mod,massshift\nfoo,NaN\n"},
		{"empty name", "mod,massshift\n,1.0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModDatabase().LoadFromCSV(strings.NewReader(tt.csv))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "line 2")
		})
	}
}

func TestModStringRoundTrip(t *testing.T) {
	mods := ParseModString("oxidation; phosphorylation,,79.9")
	assert.Equal(t, []string{"oxidation", "phosphorylation", "79.9"}, mods)
	assert.Equal(t, "oxidation;phosphorylation;79.9", ModString(mods))

	assert.Nil(t, ParseModString(""))
	assert.Equal(t, "", ModString(nil))
}
