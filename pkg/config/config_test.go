package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, NoCenter, cfg.Center)
	assert.NoError(t, cfg.Validate())
	assert.Error(t, cfg.Generator.Validate(), "neither n nor radius is set")
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
input: sites.txt
precision: 128
center: 3
output:
  vertices: v.txt
  triangulation: t.txt
generator:
  n: 1000
  seed: 42
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sites.txt", cfg.Input)
	assert.Equal(t, 128, cfg.Precision)
	assert.Equal(t, 3, cfg.Center)
	assert.Equal(t, Output{Vertices: "v.txt", Triangulation: "t.txt"}, cfg.Output)
	assert.Equal(t, 1000, cfg.Generator.N)
	assert.Equal(t, int64(42), cfg.Generator.Seed)
	// не заданные поля остаются по умолчанию
	assert.Equal(t, -1.0, cfg.Generator.Radius)
	assert.Equal(t, 1.0, cfg.Generator.Alpha)
	assert.Equal(t, 8.0, cfg.Generator.Degree)
	assert.NoError(t, cfg.Validate())
	assert.NoError(t, cfg.Generator.Validate())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "precision: [1, 2"))
	assert.Error(t, err)
}

func TestValidateCollectsAll(t *testing.T) {
	cfg := Default()
	cfg.Precision = -5
	cfg.Center = -2
	cfg.Generator.Alpha = 0.25
	cfg.Generator.Output = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Len(t, multierr.Errors(err), 2)

	// n/radius, alpha > 0.5, output
	err = cfg.Generator.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 3)
}

func TestValidateUnsupportedPrecision(t *testing.T) {
	cfg := Default()
	cfg.Precision = 100
	cfg.Generator.N = 10
	assert.NoError(t, cfg.Validate())
}
