// Package interaction turns pointer input into hover feedback and popups for
// the interactable meshes of the scene.
package interaction

import (
	"errors"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"portfolio3d/internal/engine"
	"portfolio3d/internal/physics"
)

// ErrInteractablesFixed is returned when the pick set is replaced after it
// was installed.
var ErrInteractablesFixed = errors.New("interactable set is already fixed")

type CursorKind int

const (
	CursorDefault CursorKind = iota
	CursorPointer
)

func (k CursorKind) String() string {
	if k == CursorPointer {
		return "pointer"
	}
	return "default"
}

// RayCaster builds a world-space pick ray through normalized device coordinates.
type RayCaster interface {
	RayFromNDC(nx, ny float32) rl.Ray
}

// Picker answers ray queries against the interactable set, nearest hit first.
type Picker interface {
	Intersect(ray rl.Ray) []physics.RaycastHit
}

type Cursor interface {
	SetCursor(kind CursorKind)
}

// BodyResolver supplies the popup text for an object name.
type BodyResolver interface {
	Body(name string) string
}

// Pointer is the last pointer position in normalized device coordinates,
// x right and y up, both in [-1, 1].
type Pointer struct {
	X, Y float32
}

type Popup struct {
	Visible bool
	Title   string
	Body    string
}

// Controller owns pointer, hover and popup state. All methods run on the
// main loop.
type Controller struct {
	pointer Pointer
	hover   *engine.Node
	popup   Popup

	picker Picker
	fixed  bool
	cursor Cursor
	kind   CursorKind
	bodies BodyResolver

	// Opened fires with the object name each time a click opens the popup.
	Opened engine.EventWithArg[string]
	// Closed fires when a visible popup is hidden.
	Closed engine.Event
}

// NewController starts with an empty interactable set, so picks miss until
// SetInteractables is called. The cursor is assumed to show CursorDefault.
func NewController(cursor Cursor, bodies BodyResolver) *Controller {
	return &Controller{
		cursor: cursor,
		kind:   CursorDefault,
		bodies: bodies,
	}
}

// SetInteractables installs the pick set. It may be called once.
func (c *Controller) SetInteractables(p Picker) error {
	if c.fixed {
		return ErrInteractablesFixed
	}
	c.picker = p
	c.fixed = true
	return nil
}

// SetBodies swaps the popup text source, e.g. after a content reload. An
// open popup keeps the text it was opened with.
func (c *Controller) SetBodies(b BodyResolver) {
	c.bodies = b
}

// PointerMove records the pointer from pixel coordinates in a w×h viewport.
// A zero-sized viewport (minimized window) leaves the pointer unchanged.
func (c *Controller) PointerMove(px, py, w, h float32) {
	if w <= 0 || h <= 0 {
		return
	}
	c.pointer = Pointer{
		X: (px/w)*2 - 1,
		Y: -(py/h)*2 + 1,
	}
}

func (c *Controller) Pointer() Pointer { return c.pointer }

func (c *Controller) Hover() *engine.Node { return c.hover }

func (c *Controller) Popup() Popup { return c.popup }

func (c *Controller) pick(cam RayCaster) *engine.Node {
	if c.picker == nil || cam == nil {
		return nil
	}
	hits := c.picker.Intersect(cam.RayFromNDC(c.pointer.X, c.pointer.Y))
	if len(hits) == 0 {
		return nil
	}
	return hits[0].Node
}

// Tick refreshes hover from the current pointer. Call it once per frame.
func (c *Controller) Tick(cam RayCaster) {
	hit := c.pick(cam)
	switch {
	case hit == nil:
		c.hover = nil
		c.setCursor(CursorDefault)
	case hit != c.hover:
		c.hover = hit
		c.setCursor(CursorPointer)
	}
}

func (c *Controller) setCursor(kind CursorKind) {
	if kind == c.kind {
		return
	}
	c.kind = kind
	if c.cursor != nil {
		c.cursor.SetCursor(kind)
	}
}

// Click picks independently of hover and opens the popup for the nearest
// hit. It reports whether a popup was opened; a miss changes nothing.
func (c *Controller) Click(cam RayCaster) bool {
	hit := c.pick(cam)
	if hit == nil {
		return false
	}

	body := ""
	if c.bodies != nil {
		body = c.bodies.Body(hit.Name)
	}
	c.popup = Popup{Visible: true, Title: hit.Name, Body: body}
	slog.Debug("popup opened", "object", hit.Name, "path", hit.Path())
	c.Opened.Invoke(hit.Name)
	return true
}

// ClosePopup hides the popup. Closing a hidden popup does nothing.
func (c *Controller) ClosePopup() {
	if !c.popup.Visible {
		return
	}
	c.popup.Visible = false
	c.Closed.Invoke()
}
