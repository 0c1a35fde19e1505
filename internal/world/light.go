package world

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"portfolio3d/internal/config"
)

// DirectionalLight shines from Position towards Target. Only the direction
// matters for shading; Position also places the shadow camera.
type DirectionalLight struct {
	Position         rl.Vector3
	Target           rl.Vector3
	Color            rl.Color
	Intensity        float32
	AmbientColor     rl.Color
	AmbientIntensity float32
}

func NewDirectionalLight(cfg config.Lighting) *DirectionalLight {
	return &DirectionalLight{
		Position:         vec3(cfg.DirectionalPosition),
		Target:           rl.Vector3Zero(),
		Color:            rgb(cfg.DirectionalColor),
		Intensity:        cfg.DirectionalIntensity,
		AmbientColor:     rgb(cfg.AmbientColor),
		AmbientIntensity: cfg.AmbientIntensity,
	}
}

// Direction is the normalized vector the light travels along.
func (l *DirectionalLight) Direction() rl.Vector3 {
	return rl.Vector3Normalize(rl.Vector3Subtract(l.Target, l.Position))
}

// Camera is the orthographic camera the shadow map is rendered from.
func (l *DirectionalLight) Camera(extent float32) rl.Camera3D {
	return rl.Camera3D{
		Position:   l.Position,
		Target:     l.Target,
		Up:         lightCameraUp(l.Direction()),
		Fovy:       extent * 2,
		Projection: rl.CameraOrthographic,
	}
}

func (l *DirectionalLight) ColorFloat() []float32 {
	return scaledColor(l.Color, l.Intensity)
}

func (l *DirectionalLight) AmbientFloat() []float32 {
	return scaledColor(l.AmbientColor, l.AmbientIntensity)
}

func scaledColor(c rl.Color, intensity float32) []float32 {
	return []float32{
		float32(c.R) / 255.0 * intensity,
		float32(c.G) / 255.0 * intensity,
		float32(c.B) / 255.0 * intensity,
		1.0,
	}
}

func lightCameraUp(dir rl.Vector3) rl.Vector3 {
	if math.Abs(float64(dir.Y)) > 0.9 {
		return rl.Vector3{X: 0, Y: 0, Z: 1}
	}
	return rl.Vector3{X: 0, Y: 1, Z: 0}
}

func vec3(v [3]float32) rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

func rgb(c [3]int) rl.Color {
	return rl.NewColor(uint8(c[0]), uint8(c[1]), uint8(c[2]), 255)
}
