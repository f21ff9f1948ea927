// Package ui draws the debug overlay.
package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the debug HUD.
type HUDData struct {
	Frame uint64
	FPS   int32
	X, Y  float64
	Rot   float64
	Speed float64
	Keys  string
}

// HUD renders the ship state panel. Hidden unless enabled.
type HUD struct {
	visible bool
	font    rl.Font
	hasFont bool
}

// NewHUD creates a new HUD.
func NewHUD(visible bool) *HUD {
	return &HUD{visible: visible}
}

// SetFont makes the HUD and raygui draw with font.
func (h *HUD) SetFont(font rl.Font) {
	h.font = font
	h.hasFont = true
	gui.SetFont(font)
}

// Toggle flips visibility.
func (h *HUD) Toggle() {
	h.visible = !h.visible
}

// Visible reports whether the HUD is drawn.
func (h *HUD) Visible() bool {
	return h.visible
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	if !h.visible {
		return
	}

	const (
		x, y       = 10, 10
		w          = 230
		lineHeight = 20
	)

	lines := []string{
		fmt.Sprintf("Frame: %d  FPS: %d", data.Frame, data.FPS),
		fmt.Sprintf("Pos: %.1f, %.1f", data.X, data.Y),
		fmt.Sprintf("Heading: %.1f deg", data.Rot),
		fmt.Sprintf("Speed: %.2f", data.Speed),
		fmt.Sprintf("Keys: %s", data.Keys),
	}

	gui.Panel(rl.Rectangle{X: x, Y: y, Width: w, Height: float32(34 + len(lines)*lineHeight)}, "Ship")
	for i, line := range lines {
		bounds := rl.Rectangle{X: x + 8, Y: float32(y + 28 + i*lineHeight), Width: w - 16, Height: lineHeight}
		if h.hasFont {
			rl.DrawTextEx(h.font, line, rl.Vector2{X: bounds.X, Y: bounds.Y}, 16, 1, rl.RayWhite)
			continue
		}
		gui.Label(bounds, line)
	}
}
