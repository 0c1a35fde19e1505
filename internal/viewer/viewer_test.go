package viewer

import (
	"errors"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio3d/internal/assets"
	"portfolio3d/internal/config"
	"portfolio3d/internal/content"
	"portfolio3d/internal/engine"
	"portfolio3d/internal/interaction"
)

func droneModel() *engine.Node {
	root := engine.NewNode("Scene")
	drone := engine.NewNode("Drone")
	prop := engine.NewMeshNode("Propeller", &engine.Mesh{
		Positions: []rl.Vector3{{X: -1, Z: -1}, {X: 1, Z: -1}, {X: 0, Z: 1}},
		Indices:   []uint32{0, 2, 1},
	})
	prop.Transform.Position = rl.Vector3{Y: 2}
	drone.AddChild(prop)
	root.AddChild(drone)
	return root
}

func resultChan(res assets.Result) <-chan assets.Result {
	ch := make(chan assets.Result, 1)
	ch <- res
	return ch
}

func TestPollLoadInstallsModel(t *testing.T) {
	v := New(config.Default())
	root := droneModel()
	v.load = resultChan(assets.Result{Path: "scene.glb", Root: root})
	v.loading = true

	got := v.pollLoad()

	assert.Same(t, root, got)
	assert.False(t, v.Loading())
	assert.True(t, v.World.Populated())
	assert.Equal(t, 1, v.World.Picks.Len())
	assert.Len(t, v.meshes, 1)
	assert.Nil(t, v.pollLoad(), "the result is consumed once")
	assert.ErrorIs(t, v.Controller.SetInteractables(v.World.Picks), interaction.ErrInteractablesFixed)
}

func TestPollLoadDoesNotBlock(t *testing.T) {
	v := New(config.Default())
	pending := make(chan assets.Result, 1)
	v.load = pending
	v.loading = true

	assert.Nil(t, v.pollLoad())
	assert.True(t, v.Loading())
}

func TestFailedLoadLeavesEmptySession(t *testing.T) {
	v := New(config.Default())
	err := &assets.LoadError{Path: "missing.glb", Err: assets.ErrNotFound}
	v.load = resultChan(assets.Result{Path: "missing.glb", Err: err})

	assert.Nil(t, v.pollLoad())

	assert.False(t, v.World.Populated())
	assert.Zero(t, v.World.Picks.Len())
	assert.Empty(t, v.meshes)

	v.Controller.PointerMove(400, 300, 800, 600)
	assert.False(t, v.Controller.Click(v.Camera))
	assert.False(t, v.Controller.Popup().Visible)
}

func TestPopupCloseEventClosesController(t *testing.T) {
	v := New(config.Default())
	v.load = resultChan(assets.Result{Root: droneModel()})
	v.pollLoad()

	// look straight down the camera axis at the propeller
	prop := v.World.Scene.FindByName("Propeller")
	require.NotNil(t, prop)
	v.Controller.PointerMove(640, 360, 1280, 720)
	require.True(t, v.Controller.Click(v.Camera))
	require.True(t, v.Controller.Popup().Visible)

	v.Popup.Sync(v.Controller.Popup())
	v.Popup.OnClose.Invoke()

	assert.False(t, v.Controller.Popup().Visible)
}

func TestPollContentSwapsTable(t *testing.T) {
	v := New(config.Default())
	updates := make(chan content.Update, 2)
	v.contentUpdates = updates

	table, err := content.Parse([]byte("[bodies]\nPropeller = \"Carbon blades.\"\n"))
	require.NoError(t, err)
	updates <- content.Update{Table: table}
	v.pollContent()
	assert.Same(t, table, v.content)

	updates <- content.Update{Err: errors.New("half written")}
	v.pollContent()
	assert.Same(t, table, v.content, "a failed reload keeps the previous table")

	close(updates)
	v.pollContent()
	assert.Nil(t, v.contentUpdates)
}

func TestNewUsesConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Input.ClickSlop = 9
	cfg.Debug.Overlay = true

	v := New(cfg)

	assert.True(t, v.DebugMode)
	assert.Equal(t, float32(9), v.gesture.Slop)
	w, h := v.Camera.Viewport()
	assert.Equal(t, float32(cfg.Window.Width), w)
	assert.Equal(t, float32(cfg.Window.Height), h)
}
