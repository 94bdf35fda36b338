package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/helix/config"
	"github.com/pthm-cable/helix/telemetry"
)

func TestGenerateAndExport(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Field.Count = 60
	cfg.Field.RowWidth = 4
	cfg.Field.Preset = "molecule"

	buf, err := generate(cfg, 3)
	require.NoError(t, err)
	require.Equal(t, 20, buf.Len())

	path := filepath.Join(t.TempDir(), "field.csv")
	require.NoError(t, export(path, buf))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var rows []telemetry.ParticleRecord
	require.NoError(t, gocsv.UnmarshalBytes(data, &rows))
	require.Len(t, rows, 20)
	assert.Equal(t, buf.Positions[3*19+1], rows[19].Y)
	assert.Equal(t, buf.Randoms[5], rows[5].Random)
}

func TestGenerateUnknownPreset(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Field.Preset = "spiral"

	_, err = generate(cfg, 1)
	assert.Error(t, err)
}

func TestGenerateKeepsZeroVerticalOffset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flat.yaml")
	require.NoError(t, os.WriteFile(path, []byte("field:\n  count: 600\n  vertical_offset: 0\n"), 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	buf, err := generate(cfg, 1)
	require.NoError(t, err)
	assert.Equal(t, float32(0), buf.Position(0)[1])
	assert.InDelta(t, 0.01, buf.Position(100)[1], 1e-6)
}

func TestExportToUnwritablePath(t *testing.T) {
	buf, err := generate(mustDefaults(t), 1)
	require.NoError(t, err)

	err = export(filepath.Join(t.TempDir(), "missing", "field.csv"), buf)
	assert.Error(t, err)
}

func mustDefaults(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Field.Count = 30
	return cfg
}
