package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, float32(100), cfg.Camera.Scale)
	assert.Equal(t, [3]float32{100, 100, 100}, cfg.Camera.Position)
	assert.Equal(t, "assets/gamePortfolio2.glb", cfg.Asset.Path)
	assert.Equal(t, int32(2048), cfg.Lighting.ShadowMapSize)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "viewer.toml"))

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[window]
width = 1920
height = 1080

[camera]
scale = 50
position = [10, 20, 30]

[input]
click_slop = 8
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, int32(1920), cfg.Window.Width)
	assert.Equal(t, float32(50), cfg.Camera.Scale)
	assert.Equal(t, [3]float32{10, 20, 30}, cfg.Camera.Position)
	assert.Equal(t, float32(8), cfg.Input.ClickSlop)
	assert.Equal(t, "Portfolio", cfg.Window.Title, "untouched keys keep defaults")
	assert.Equal(t, float32(0.05), cfg.Camera.Damping)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.toml")
	require.NoError(t, os.WriteFile(path, []byte("[camera]\nzoom = 3\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.toml")
	require.NoError(t, os.WriteFile(path, []byte("[camera]\nscale = 0\nnear = 5\nfar = 1\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "camera.scale")
	assert.Contains(t, err.Error(), "near/far")
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.toml")
	cfg := Default()
	cfg.Window.Title = "Round trip"

	require.NoError(t, Save(path, cfg))
	loaded, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "Round trip", loaded.Window.Title)
	assert.Equal(t, cfg.Window, loaded.Window)
	assert.Equal(t, cfg.Lighting.Background, loaded.Lighting.Background)
	assert.InDelta(t, cfg.Camera.Near, loaded.Camera.Near, 1e-6)
	assert.InDelta(t, cfg.Lighting.ShadowBias, loaded.Lighting.ShadowBias, 1e-6)
}
