// Package ui draws the object popup on top of the 3D view.
package ui

import (
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"portfolio3d/internal/engine"
	"portfolio3d/internal/interaction"
)

const (
	popupMaxWidth  = 480
	popupMargin    = 20
	popupPadding   = 14
	statusBarH     = 24 // raygui WindowBox title bar
	lineHeight     = textSize + 6
	openDuration   = 0.25
	slideDistance  = 24
	minPopupHeight = statusBarH + 2*popupPadding + lineHeight
)

// MeasureFunc returns the pixel width of a line of text.
type MeasureFunc func(text string) float32

// PopupView renders interaction.Popup as a raygui window box centered in the
// viewport. It animates in when opened and reports the close button through
// OnClose; it never hides itself.
type PopupView struct {
	OnClose engine.Event

	visible bool
	title   string
	body    string

	progress float32
	tween    *gween.Tween

	bounds rl.Rectangle
	lines  []string
}

func NewPopupView() *PopupView {
	return &PopupView{}
}

// Sync mirrors the controller's popup. Opening, or switching to another
// object while open, restarts the entry animation.
func (p *PopupView) Sync(popup interaction.Popup) {
	if !popup.Visible {
		p.visible = false
		p.tween = nil
		return
	}
	if !p.visible || popup.Title != p.title || popup.Body != p.body {
		p.progress = 0
		p.tween = gween.New(0, 1, openDuration, ease.OutCubic)
	}
	p.visible = true
	p.title = popup.Title
	p.body = popup.Body
}

// Update advances the entry animation by dt seconds.
func (p *PopupView) Update(dt float32) {
	if p.tween == nil {
		return
	}
	value, done := p.tween.Update(dt)
	p.progress = value
	if done {
		p.progress = 1
		p.tween = nil
	}
}

func (p *PopupView) Visible() bool { return p.visible }

// Progress is the entry animation position, 0 when just opened and 1 at rest.
func (p *PopupView) Progress() float32 { return p.progress }

// Bounds is the window rectangle computed by the last Layout.
func (p *PopupView) Bounds() rl.Rectangle { return p.bounds }

// Layout sizes the window for the current text and centers it in a w×h
// viewport, offset downwards while the entry animation runs.
func (p *PopupView) Layout(w, h float32, measure MeasureFunc) {
	width := min(popupMaxWidth, w-2*popupMargin)
	if width < 0 {
		width = 0
	}
	p.lines = wrapText(p.body, width-2*popupPadding, measure)

	height := float32(statusBarH + 2*popupPadding + len(p.lines)*lineHeight)
	height = max(height, minPopupHeight)
	height = min(height, h-2*popupMargin)

	slide := (1 - p.progress) * slideDistance
	p.bounds = rl.Rectangle{
		X:      (w - width) / 2,
		Y:      (h-height)/2 + slide,
		Width:  width,
		Height: height,
	}
}

// Contains reports whether point lies on the visible popup.
func (p *PopupView) Contains(point rl.Vector2) bool {
	if !p.visible {
		return false
	}
	b := p.bounds
	return point.X >= b.X && point.X <= b.X+b.Width &&
		point.Y >= b.Y && point.Y <= b.Y+b.Height
}

// Draw renders the popup using the last Layout. Call between BeginDrawing
// and EndDrawing.
func (p *PopupView) Draw() {
	if !p.visible {
		return
	}

	gui.SetAlpha(p.progress)
	defer gui.SetAlpha(1)

	if gui.WindowBox(p.bounds, p.title) {
		p.OnClose.Invoke()
	}

	y := p.bounds.Y + statusBarH + popupPadding
	for _, line := range p.lines {
		if y+lineHeight > p.bounds.Y+p.bounds.Height {
			break
		}
		gui.Label(rl.Rectangle{
			X:      p.bounds.X + popupPadding,
			Y:      y,
			Width:  p.bounds.Width - 2*popupPadding,
			Height: lineHeight,
		}, line)
		y += lineHeight
	}
}

// RaylibMeasure measures with raylib's default font at the popup text size.
func RaylibMeasure(text string) float32 {
	return float32(rl.MeasureText(text, textSize))
}

// wrapText breaks text into lines no wider than maxWidth, splitting on spaces
// and keeping explicit newlines. A single word wider than maxWidth gets its
// own line.
func wrapText(text string, maxWidth float32, measure MeasureFunc) []string {
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, word := range words[1:] {
			candidate := line + " " + word
			if measure(candidate) > maxWidth {
				lines = append(lines, line)
				line = word
				continue
			}
			line = candidate
		}
		lines = append(lines, line)
	}
	return lines
}
