// pkg/render/engo/renderer.go
package engo

import (
	"image"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-fireworks/pkg/render/raster"
)

// frameEntity is the single full-window sprite the show is drawn on
type frameEntity struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

// uploadFunc turns a finished frame into something the render system can
// draw. The previous drawable is passed so it can be released.
type uploadFunc func(img *image.NRGBA, previous common.Drawable) common.Drawable

// FrameRenderer implements entity.Renderer using the Engo game engine.
// Drawing happens on a software canvas; Present uploads the canvas as the
// texture of one full-window entity.
type FrameRenderer struct {
	*raster.Canvas
	frame   *frameEntity
	upload  uploadFunc
	overlay func(*raster.Canvas)
}

// NewFrameRenderer creates a renderer for a window of the given size.
func NewFrameRenderer(width, height int) *FrameRenderer {
	return newFrameRenderer(width, height, uploadTexture)
}

func newFrameRenderer(width, height int, upload uploadFunc) *FrameRenderer {
	frame := &frameEntity{BasicEntity: ecs.NewBasic()}
	frame.SpaceComponent = common.SpaceComponent{
		Position: engo.Point{X: 0, Y: 0},
		Width:    float32(width),
		Height:   float32(height),
	}
	return &FrameRenderer{
		Canvas: raster.NewCanvas(width, height),
		frame:  frame,
		upload: upload,
	}
}

// AddTo registers the frame entity with every render system in world.
func (r *FrameRenderer) AddTo(world *ecs.World) {
	for _, system := range world.Systems() {
		if rs, ok := system.(*common.RenderSystem); ok {
			rs.Add(&r.frame.BasicEntity, &r.frame.RenderComponent, &r.frame.SpaceComponent)
		}
	}
}

// Resize follows the window size.
func (r *FrameRenderer) Resize(width, height int) {
	r.Canvas.Resize(width, height)
	b := r.Bounds()
	r.frame.SpaceComponent.Width = float32(b.Dx())
	r.frame.SpaceComponent.Height = float32(b.Dy())
}

// SetOverlay registers a function that draws on top of every finished frame.
func (r *FrameRenderer) SetOverlay(overlay func(*raster.Canvas)) {
	r.overlay = overlay
}

// Present implements entity.Renderer
func (r *FrameRenderer) Present() {
	if r.overlay != nil {
		r.overlay(r.Canvas)
	}
	r.frame.RenderComponent.Drawable = r.upload(r.NRGBA(), r.frame.RenderComponent.Drawable)
}

// uploadTexture creates a fresh GL texture for every frame and deletes the
// previous one: one full-window glTexImage2D per Present. engo/common has
// no call for updating texture pixels in place, and at window sizes the
// upload, not the allocation, dominates the cost.
func uploadTexture(img *image.NRGBA, previous common.Drawable) common.Drawable {
	if tex, ok := previous.(common.Texture); ok {
		tex.Close()
	}
	return common.NewTextureSingle(common.NewImageObject(img))
}
