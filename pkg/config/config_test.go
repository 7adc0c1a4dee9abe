package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChrisMcGann/PepMass/pkg/core"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Validate())
	mt, err := cfg.ParsedMassType()
	require.NoError(t, err)
	assert.Equal(t, core.Monoisotopic, mt)
	assert.Equal(t, 5, cfg.Output.Precision)
	assert.Equal(t, 1000, cfg.Output.ProgressEvery)
	assert.Empty(t, cfg.Modifications)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "average mass",
			modify:  func(c *Config) { c.MassType = "average" },
			wantErr: false,
		},
		{
			name:    "unknown mass type",
			modify:  func(c *Config) { c.MassType = "nominal" },
			wantErr: true,
		},
		{
			name:    "negative precision",
			modify:  func(c *Config) { c.Output.Precision = -1 },
			wantErr: true,
		},
		{
			name:    "inverted length window",
			modify:  func(c *Config) { c.Filter.MinLength, c.Filter.MaxLength = 20, 8 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	content := `mass_type: average
modifications:
  - oxidation
filter:
  min_length: 8
  max_mass: 4000
output:
  description: epitope scan
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "average", cfg.MassType)
	assert.Equal(t, []string{"oxidation"}, cfg.Modifications)
	assert.Equal(t, 8, cfg.Filter.MinLength)
	assert.Equal(t, 4000.0, cfg.Filter.MaxMass)
	assert.Equal(t, "epitope scan", cfg.Output.Description)
	assert.Equal(t, 5, cfg.Output.Precision, "unset fields keep defaults")

	fc := cfg.FilterConfig()
	assert.Equal(t, 8, fc.MinLength)
	assert.Equal(t, 4000.0, fc.MaxMass)
}

func TestLoadFromFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFromFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("mass_type: [unterminated"), 0644))
	_, err = LoadFromFile(bad)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("mass_type: nominal\n"), 0644))
	_, err = LoadFromFile(invalid)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "run.yaml")

	cfg := DefaultConfig()
	cfg.MassType = "average"
	cfg.Filter.MinMass = 500
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestModDatabase(t *testing.T) {
	cfg := DefaultConfig()
	db, err := cfg.ModDatabase()
	require.NoError(t, err)
	assert.Equal(t, 9, db.Len())

	csvPath := filepath.Join(t.TempDir(), "mods.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("mod,massshift,aa\nSILAC-K8,8.014199,K\n"), 0644))
	cfg.ModsCSV = csvPath
	db, err = cfg.ModDatabase()
	require.NoError(t, err)
	assert.Equal(t, 10, db.Len())

	cfg.ModsCSV = filepath.Join(t.TempDir(), "missing.csv")
	_, err = cfg.ModDatabase()
	assert.Error(t, err)
}
