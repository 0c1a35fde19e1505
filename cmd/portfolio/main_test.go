package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio3d/internal/config"
	"portfolio3d/internal/engine"
	"portfolio3d/internal/world"
)

func tri(name string) *engine.Node {
	return engine.NewMeshNode(name, &engine.Mesh{
		Positions: []rl.Vector3{{X: -1}, {X: 1}, {Y: 1}},
		Indices:   []uint32{0, 1, 2},
	})
}

func TestPrintInspection(t *testing.T) {
	root := engine.NewNode("Scene")
	office := engine.NewNode("Office")
	office.AddChild(tri("Desk"))
	root.AddChild(office)
	root.AddChild(tri("Ground"))

	w := world.New()
	require.NoError(t, w.Populate(root))

	var out bytes.Buffer
	printInspection(&out, w)

	text := out.String()
	assert.Contains(t, text, "   Scene\n")
	assert.Contains(t, text, "     Office\n")
	assert.Contains(t, text, "M*     Desk (1 tris)\n")
	assert.Contains(t, text, "M    Ground (1 tris)\n")
	assert.Contains(t, text, "Interactable (1):\n  /Main/Scene/Office/Desk\n")
}

func TestSetupLogging(t *testing.T) {
	assert.NoError(t, setupLogging("debug"))
	assert.NoError(t, setupLogging("WARN"))
	assert.Error(t, setupLogging("loud"))
}

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "viewer.toml")
	require.NoError(t, os.WriteFile(path, []byte("[asset]\npath = \"from-file.glb\"\n"), 0o644))

	cmd := newRootCmd()
	require.NoError(t, cmd.Flags().Parse([]string{"--config", path, "--content", "bodies.toml"}))

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "from-file.glb", cfg.Asset.Path)
	assert.Equal(t, "bodies.toml", cfg.Content.Path)

	require.NoError(t, cmd.Flags().Parse([]string{"--asset", "flag.glb"}))
	cfg, err = loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "flag.glb", cfg.Asset.Path)
}

func TestConfigCommandWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.toml")
	cmd := newRootCmd()
	cmd.SetArgs([]string{"config", path})
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, cmd.Execute())

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default().Asset, cfg.Asset)
	assert.Contains(t, out.String(), "wrote")

	cmd = newRootCmd()
	cmd.SetArgs([]string{"config", path})
	cmd.SetErr(&bytes.Buffer{})
	assert.Error(t, cmd.Execute(), "refuses to overwrite")
}

func TestResolveUserPathsKeepsCallerDirectory(t *testing.T) {
	t.Chdir(t.TempDir())
	wd, err := os.Getwd()
	require.NoError(t, err)

	cmd := newRootCmd()
	require.NoError(t, cmd.Flags().Parse([]string{"--asset", "scene.glb", "--content", "text/bodies.toml"}))
	require.NoError(t, resolveUserPaths(cmd))

	assert.Equal(t, filepath.Join(wd, "scene.glb"), assetPath)
	assert.Equal(t, filepath.Join(wd, "text", "bodies.toml"), contentPath)
	assert.Equal(t, config.DefaultPath, configPath, "unset flags keep their defaults")
}

func TestInspectRelativePath(t *testing.T) {
	t.Chdir(t.TempDir())

	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	doc.Meshes = []*gltf.Mesh{{
		Name:       "Desk",
		Primitives: []*gltf.Primitive{{Attributes: map[string]int{gltf.POSITION: pos}}},
	}}
	doc.Nodes = []*gltf.Node{
		{Name: "Office", Children: []int{1}},
		{Name: "Desk", Mesh: gltf.Index(0)},
	}
	doc.Scenes[0].Nodes = []int{0}
	require.NoError(t, gltf.SaveBinary(doc, "scene.glb"))

	cmd := newRootCmd()
	cmd.SetArgs([]string{"inspect", "scene.glb"})
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Interactable (1):")
	assert.Contains(t, out.String(), "/Office/Desk")
}

func TestConfigCommandRelativePath(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cmd := newRootCmd()
	cmd.SetArgs([]string{"config", "mine.toml"})
	cmd.SetOut(&bytes.Buffer{})
	require.NoError(t, cmd.Execute())

	assert.FileExists(t, filepath.Join(dir, "mine.toml"))
}
