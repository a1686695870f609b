// pkg/render/engo/hud.go
package engo

import (
	"fmt"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-fireworks/pkg/engine"
	"github.com/opd-ai/go-fireworks/pkg/render/raster"
)

const buttonHUD = "hud"

// hudMargin is the pixel inset of the header text.
const hudMargin = 10

// HUDSystem draws the title and live statistics into the header band, the
// strip at the top of the window where clicks do not launch fireworks.
type HUDSystem struct {
	title   string
	stats   func() engine.Stats
	enabled bool

	// toggled reports a press of the HUD key this frame
	toggled func() bool

	titleColor  color.Color
	statusColor color.Color
}

// NewHUDSystem creates a HUD showing title and the statistics of sim
func NewHUDSystem(title string, sim *engine.Simulation) *HUDSystem {
	return &HUDSystem{
		title:       title,
		stats:       sim.Stats,
		enabled:     true,
		toggled:     func() bool { return engo.Input.Button(buttonHUD).JustPressed() },
		titleColor:  color.RGBA{255, 255, 255, 255},
		statusColor: color.RGBA{160, 160, 160, 255},
	}
}

// Priority runs with input handling, before the show is advanced.
func (hud *HUDSystem) Priority() int {
	return 9
}

// Remove satisfies the ecs.System interface
func (hud *HUDSystem) Remove(basic ecs.BasicEntity) {}

// Update toggles the HUD when its key is pressed
func (hud *HUDSystem) Update(dt float32) {
	if hud.toggled() {
		hud.enabled = !hud.enabled
	}
}

// SetEnabled shows or hides the HUD
func (hud *HUDSystem) SetEnabled(enabled bool) {
	hud.enabled = enabled
}

// IsEnabled returns whether the HUD is drawn
func (hud *HUDSystem) IsEnabled() bool {
	return hud.enabled
}

// StatusLine returns the statistics text shown at the top right
func (hud *HUDSystem) StatusLine() string {
	s := hud.stats()
	return fmt.Sprintf("fireworks %d  sparks %d  frame %d", s.Fireworks, s.Sparks, s.Frame)
}

// Draw writes the header onto the frame. It is called once per frame just
// before the frame is uploaded.
func (hud *HUDSystem) Draw(c *raster.Canvas) {
	if !hud.enabled {
		return
	}

	c.DrawText(hudMargin, hudMargin, hud.title, hud.titleColor)

	status := hud.StatusLine()
	x := c.Bounds().Dx() - hudMargin - raster.TextWidth(status)
	if x < hudMargin {
		// narrow window: put the status under the title
		c.DrawText(hudMargin, hudMargin+raster.LineHeight+4, status, hud.statusColor)
		return
	}
	c.DrawText(x, hudMargin, status, hud.statusColor)
}
