package camera

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"portfolio3d/internal/config"
)

const polarEpsilon = 1e-6

// Projection is the orthographic view volume in camera space.
type Projection struct {
	Left, Right, Top, Bottom float32
	Near, Far                float32
}

// Input is one frame of orbit gestures, in screen pixels and wheel notches.
type Input struct {
	Rotate rl.Vector2
	Pan    rl.Vector2
	Wheel  float32
}

// Orbit is an orthographic camera circling Target. Rotation and panning are
// damped: each Update applies a fraction of the pending delta and keeps the
// rest for later frames.
type Orbit struct {
	Target rl.Vector3
	Zoom   float32

	radius  float32
	azimuth float32
	polar   float32

	width, height float32

	pendingAzimuth float32
	pendingPolar   float32
	pendingPan     rl.Vector3

	cfg config.Camera
}

func New(cfg config.Camera, width, height int32) *Orbit {
	o := &Orbit{
		Target: rl.Vector3{X: cfg.Target[0], Y: cfg.Target[1], Z: cfg.Target[2]},
		Zoom:   1,
		cfg:    cfg,
	}
	o.setPosition(rl.Vector3{X: cfg.Position[0], Y: cfg.Position[1], Z: cfg.Position[2]})
	o.Resize(width, height)
	return o
}

func (o *Orbit) setPosition(pos rl.Vector3) {
	offset := rl.Vector3Subtract(pos, o.Target)
	o.radius = rl.Vector3Length(offset)
	o.azimuth = math32.Atan2(offset.X, offset.Z)
	o.polar = clampPolar(math32.Acos(clampUnit(offset.Y / o.radius)))
}

// Resize keeps the projection matched to the viewport. Non-positive sizes
// come from a minimized window and are ignored.
func (o *Orbit) Resize(width, height int32) {
	if width <= 0 || height <= 0 {
		return
	}
	o.width = float32(width)
	o.height = float32(height)
}

// Viewport returns the size the projection was last built for.
func (o *Orbit) Viewport() (width, height float32) {
	return o.width, o.height
}

// Projection returns the zoomed view volume: half-extents are the viewport
// size divided by the scale.
func (o *Orbit) Projection() Projection {
	halfW := o.width / o.cfg.Scale / o.Zoom
	halfH := o.height / o.cfg.Scale / o.Zoom
	return Projection{
		Left:   -halfW,
		Right:  halfW,
		Top:    halfH,
		Bottom: -halfH,
		Near:   o.cfg.Near,
		Far:    o.cfg.Far,
	}
}

func (o *Orbit) Position() rl.Vector3 {
	sinPolar := math32.Sin(o.polar)
	return rl.Vector3Add(o.Target, rl.Vector3{
		X: o.radius * sinPolar * math32.Sin(o.azimuth),
		Y: o.radius * math32.Cos(o.polar),
		Z: o.radius * sinPolar * math32.Cos(o.azimuth),
	})
}

// Basis returns the camera's forward, right and up unit vectors.
func (o *Orbit) Basis() (forward, right, up rl.Vector3) {
	forward = rl.Vector3Normalize(rl.Vector3Subtract(o.Target, o.Position()))
	right = rl.Vector3Normalize(rl.Vector3CrossProduct(forward, rl.Vector3{Y: 1}))
	up = rl.Vector3CrossProduct(right, forward)
	return forward, right, up
}

func (o *Orbit) ViewMatrix() rl.Matrix {
	return rl.MatrixLookAt(o.Position(), o.Target, rl.Vector3{Y: 1})
}

func (o *Orbit) ProjectionMatrix() rl.Matrix {
	p := o.Projection()
	return rl.MatrixOrtho(p.Left, p.Right, p.Bottom, p.Top, p.Near, p.Far)
}

// RayFromNDC returns the pick ray through a point in normalized device
// coordinates. Orthographic rays are parallel: they start on the near plane
// and all point along the view direction.
func (o *Orbit) RayFromNDC(nx, ny float32) rl.Ray {
	forward, right, up := o.Basis()
	p := o.Projection()

	origin := o.Position()
	origin = rl.Vector3Add(origin, rl.Vector3Scale(right, nx*p.Right))
	origin = rl.Vector3Add(origin, rl.Vector3Scale(up, ny*p.Top))
	origin = rl.Vector3Add(origin, rl.Vector3Scale(forward, p.Near))

	return rl.Ray{Position: origin, Direction: forward}
}

// Update folds one frame of input into the pending deltas and applies the
// damped share of them.
func (o *Orbit) Update(in Input) {
	if o.height > 0 {
		o.pendingAzimuth -= 2 * math32.Pi * in.Rotate.X / o.height * o.cfg.RotateSpeed
		o.pendingPolar -= 2 * math32.Pi * in.Rotate.Y / o.height * o.cfg.RotateSpeed
	}
	if in.Pan.X != 0 || in.Pan.Y != 0 {
		o.pan(in.Pan)
	}
	if in.Wheel != 0 {
		o.zoomBy(in.Wheel)
	}

	f := o.cfg.Damping
	if f <= 0 {
		f = 1
	}
	o.azimuth += o.pendingAzimuth * f
	o.polar = clampPolar(o.polar + o.pendingPolar*f)
	o.Target = rl.Vector3Add(o.Target, rl.Vector3Scale(o.pendingPan, f))

	o.pendingAzimuth *= 1 - f
	o.pendingPolar *= 1 - f
	o.pendingPan = rl.Vector3Scale(o.pendingPan, 1-f)
}

// pan converts a pixel drag into a world-space offset on the view plane.
func (o *Orbit) pan(delta rl.Vector2) {
	if o.width <= 0 || o.height <= 0 {
		return
	}
	_, right, up := o.Basis()
	p := o.Projection()
	perPixelX := (p.Right - p.Left) / o.width * o.cfg.PanSpeed
	perPixelY := (p.Top - p.Bottom) / o.height * o.cfg.PanSpeed

	offset := rl.Vector3Scale(right, -delta.X*perPixelX)
	offset = rl.Vector3Add(offset, rl.Vector3Scale(up, delta.Y*perPixelY))
	o.pendingPan = rl.Vector3Add(o.pendingPan, offset)
}

func (o *Orbit) zoomBy(wheel float32) {
	scale := math32.Pow(0.95, o.cfg.ZoomSpeed)
	o.Zoom = math32.Max(o.cfg.MinZoom, math32.Min(o.cfg.MaxZoom, o.Zoom/math32.Pow(scale, wheel)))
}

// Settled reports whether no damped motion is left to apply.
func (o *Orbit) Settled() bool {
	const eps = 1e-5
	return math32.Abs(o.pendingAzimuth) < eps &&
		math32.Abs(o.pendingPolar) < eps &&
		rl.Vector3Length(o.pendingPan) < eps
}

// RaylibCamera describes the same view for BeginMode3D. raylib derives the
// horizontal extent from Fovy and the aspect ratio; callers that need the
// exact near/far planes override the projection with ProjectionMatrix.
func (o *Orbit) RaylibCamera() rl.Camera3D {
	p := o.Projection()
	return rl.Camera3D{
		Position:   o.Position(),
		Target:     o.Target,
		Up:         rl.Vector3{Y: 1},
		Fovy:       p.Top - p.Bottom,
		Projection: rl.CameraOrthographic,
	}
}

func clampPolar(phi float32) float32 {
	return math32.Max(polarEpsilon, math32.Min(math32.Pi-polarEpsilon, phi))
}

func clampUnit(v float32) float32 {
	return math32.Max(-1, math32.Min(1, v))
}
