// pkg/render/terminal.go
package render

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-fireworks/pkg/engine"
	"github.com/opd-ai/go-fireworks/pkg/render/raster"
)

// halfBlock paints the top half of a cell in the foreground colour.
const halfBlock = '▀'

// TerminalRenderer draws the show with half-block characters. Every cell
// shows two vertically stacked pixels of a software canvas.
//
// The simulation keeps its window-sized units: the canvas is scaled so
// that virtualHeight units fill the terminal height, and the width follows
// the terminal's aspect ratio.
type TerminalRenderer struct {
	*raster.Canvas
	screen        tcell.Screen
	virtualHeight float64

	// mouse button state from the previous event, for press detection
	buttons tcell.ButtonMask
}

// NewTerminalRenderer creates a renderer on an initialised screen.
// A virtualHeight of 0 maps one unit to one half-block pixel.
func NewTerminalRenderer(screen tcell.Screen, virtualHeight float64) *TerminalRenderer {
	screen.EnableMouse()
	screen.HideCursor()
	r := &TerminalRenderer{
		Canvas:        raster.NewCanvas(1, 1),
		screen:        screen,
		virtualHeight: virtualHeight,
	}
	r.MinDiameter = 1
	r.fit()
	return r
}

// scaleFor returns pixels per simulation unit for a terminal of rows rows.
func (r *TerminalRenderer) scaleFor(rows int) float64 {
	if r.virtualHeight <= 0 || rows <= 0 {
		return 1
	}
	return float64(rows*2) / r.virtualHeight
}

func (r *TerminalRenderer) fit() {
	cols, rows := r.screen.Size()
	r.Canvas.Resize(cols, rows*2)
	r.Scale = r.scaleFor(rows)
}

// Size returns the surface size in simulation units.
func (r *TerminalRenderer) Size() (width, height float64) {
	b := r.Bounds()
	return float64(b.Dx()) / r.Scale, float64(b.Dy()) / r.Scale
}

// Resize refits the canvas to the current terminal size. The arguments are
// in simulation units and only signal that the terminal changed.
func (r *TerminalRenderer) Resize(width, height int) {
	r.fit()
}

// Present implements entity.Renderer
func (r *TerminalRenderer) Present() {
	img := r.Image()
	b := img.Bounds()
	cols, rows := r.screen.Size()

	for row := 0; row < rows && row*2+1 < b.Dy(); row++ {
		for col := 0; col < cols && col < b.Dx(); col++ {
			top := img.RGBAAt(col, row*2)
			bottom := img.RGBAAt(col, row*2+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			r.screen.SetContent(col, row, halfBlock, nil, style)
		}
	}
	r.screen.Show()
}

// Inputs polls terminal events on a separate goroutine and delivers them as
// engine inputs. The channel is closed when the screen is finalised or ctx
// is cancelled.
func (r *TerminalRenderer) Inputs(ctx context.Context) <-chan engine.Input {
	out := make(chan engine.Input, 16)
	go func() {
		defer close(out)
		for {
			ev := r.screen.PollEvent()
			if ev == nil {
				return
			}
			in, ok := r.translate(ev)
			if !ok {
				continue
			}
			select {
			case out <- in:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// translate maps a terminal event to an input in simulation units. Mouse
// clicks are reported on the press edge only; tcell repeats the button mask
// on every motion.
func (r *TerminalRenderer) translate(ev tcell.Event) (engine.Input, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return engine.Input{Kind: engine.InputQuit}, true
		case ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q'):
			return engine.Input{Kind: engine.InputQuit}, true
		case ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
			return engine.Input{Kind: engine.InputLaunch}, true
		}
	case *tcell.EventMouse:
		buttons := ev.Buttons()
		pressed := buttons&tcell.Button1 != 0 && r.buttons&tcell.Button1 == 0
		r.buttons = buttons
		if pressed {
			_, rows := r.screen.Size()
			scale := r.scaleFor(rows)
			col, row := ev.Position()
			return engine.Input{
				Kind: engine.InputClick,
				X:    (float64(col) + 0.5) / scale,
				Y:    (float64(row*2) + 1) / scale,
			}, true
		}
	case *tcell.EventResize:
		cols, rows := ev.Size()
		scale := r.scaleFor(rows)
		return engine.Input{
			Kind: engine.InputResize,
			X:    float64(cols) / scale,
			Y:    float64(rows*2) / scale,
		}, true
	}
	return engine.Input{}, false
}
