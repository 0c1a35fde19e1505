// Package config holds the viewer's tunables and loads them from TOML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = "viewer.toml"

type Config struct {
	Window   Window   `toml:"window"`
	Asset    Asset    `toml:"asset"`
	Content  Content  `toml:"content"`
	Camera   Camera   `toml:"camera"`
	Lighting Lighting `toml:"lighting"`
	Input    Input    `toml:"input"`
	Debug    Debug    `toml:"debug"`
}

type Window struct {
	Width     int32  `toml:"width"`
	Height    int32  `toml:"height"`
	Title     string `toml:"title"`
	TargetFPS int32  `toml:"target_fps"`
	HighDPI   bool   `toml:"high_dpi"`
	Resizable bool   `toml:"resizable"`
	MSAA      bool   `toml:"msaa"`
}

type Asset struct {
	Path string `toml:"path"`
}

type Content struct {
	Path  string `toml:"path"`
	Watch bool   `toml:"watch"`
}

// Camera describes the orthographic orbit camera. Scale is pixels per world
// unit at zoom 1: the visible half-width is viewportWidth/Scale.
type Camera struct {
	Scale       float32    `toml:"scale"`
	Near        float32    `toml:"near"`
	Far         float32    `toml:"far"`
	Position    [3]float32 `toml:"position"`
	Target      [3]float32 `toml:"target"`
	Damping     float32    `toml:"damping"`
	RotateSpeed float32    `toml:"rotate_speed"`
	ZoomSpeed   float32    `toml:"zoom_speed"`
	PanSpeed    float32    `toml:"pan_speed"`
	MinZoom     float32    `toml:"min_zoom"`
	MaxZoom     float32    `toml:"max_zoom"`
}

type Lighting struct {
	AmbientColor         [3]int     `toml:"ambient_color"`
	AmbientIntensity     float32    `toml:"ambient_intensity"`
	DirectionalColor     [3]int     `toml:"directional_color"`
	DirectionalIntensity float32    `toml:"directional_intensity"`
	DirectionalPosition  [3]float32 `toml:"directional_position"`
	ShadowMapSize        int32      `toml:"shadow_map_size"`
	ShadowExtent         float32    `toml:"shadow_extent"`
	ShadowNear           float32    `toml:"shadow_near"`
	ShadowFar            float32    `toml:"shadow_far"`
	ShadowBias           float32    `toml:"shadow_bias"`
	Exposure             float32    `toml:"exposure"`
	Background           [3]int     `toml:"background"`
}

type Input struct {
	// ClickSlop is how far, in pixels, the pointer may travel between press
	// and release for the gesture to count as a click rather than an orbit.
	ClickSlop float32 `toml:"click_slop"`
}

type Debug struct {
	Overlay bool `toml:"overlay"`
}

// Default mirrors the values the portfolio scene was authored against.
func Default() Config {
	return Config{
		Window: Window{
			Width:     1280,
			Height:    720,
			Title:     "Portfolio",
			TargetFPS: 60,
			HighDPI:   true,
			Resizable: true,
			MSAA:      true,
		},
		Asset:   Asset{Path: "assets/gamePortfolio2.glb"},
		Content: Content{Path: "assets/content.toml", Watch: true},
		Camera: Camera{
			Scale:       100,
			Near:        0.1,
			Far:         2000,
			Position:    [3]float32{100, 100, 100},
			Target:      [3]float32{0, 0, 0},
			Damping:     0.05,
			RotateSpeed: 1,
			ZoomSpeed:   1,
			PanSpeed:    1,
			MinZoom:     0.25,
			MaxZoom:     8,
		},
		Lighting: Lighting{
			AmbientColor:         [3]int{255, 255, 255},
			AmbientIntensity:     0.4,
			DirectionalColor:     [3]int{255, 255, 255},
			DirectionalIntensity: 1,
			DirectionalPosition:  [3]float32{50, 100, 50},
			ShadowMapSize:        2048,
			ShadowExtent:         150,
			ShadowNear:           1,
			ShadowFar:            400,
			ShadowBias:           -0.001,
			Exposure:             1,
			Background:           [3]int{0, 0, 0},
		},
		Input: Input{ClickSlop: 4},
	}
}

// Load reads path over Default. A missing file is not an error; a malformed
// or invalid one is.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config as TOML, used by `portfolio config` to dump defaults.
func Save(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Camera.Scale <= 0 {
		errs = append(errs, fmt.Errorf("camera.scale must be positive, got %g", c.Camera.Scale))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera near/far must satisfy 0 < near < far, got %g/%g", c.Camera.Near, c.Camera.Far))
	}
	if c.Camera.Damping < 0 || c.Camera.Damping > 1 {
		errs = append(errs, fmt.Errorf("camera.damping must be within [0,1], got %g", c.Camera.Damping))
	}
	if c.Camera.MinZoom <= 0 || c.Camera.MaxZoom < c.Camera.MinZoom {
		errs = append(errs, fmt.Errorf("camera zoom range invalid: %g..%g", c.Camera.MinZoom, c.Camera.MaxZoom))
	}
	if c.Camera.Position == c.Camera.Target {
		errs = append(errs, errors.New("camera.position must differ from camera.target"))
	}
	if c.Lighting.ShadowMapSize <= 0 {
		errs = append(errs, fmt.Errorf("lighting.shadow_map_size must be positive, got %d", c.Lighting.ShadowMapSize))
	}
	if c.Lighting.ShadowNear <= 0 || c.Lighting.ShadowFar <= c.Lighting.ShadowNear {
		errs = append(errs, fmt.Errorf("lighting shadow near/far invalid: %g/%g", c.Lighting.ShadowNear, c.Lighting.ShadowFar))
	}
	for name, col := range map[string][3]int{
		"ambient_color":     c.Lighting.AmbientColor,
		"directional_color": c.Lighting.DirectionalColor,
		"background":        c.Lighting.Background,
	} {
		for _, v := range col {
			if v < 0 || v > 255 {
				errs = append(errs, fmt.Errorf("lighting.%s components must be within [0,255], got %v", name, col))
				break
			}
		}
	}
	if c.Input.ClickSlop < 0 {
		errs = append(errs, fmt.Errorf("input.click_slop must not be negative, got %g", c.Input.ClickSlop))
	}
	if c.Asset.Path == "" {
		errs = append(errs, errors.New("asset.path is empty"))
	}
	return errors.Join(errs...)
}
