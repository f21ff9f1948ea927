package systems

import "github.com/pthm-cable/thrust/components"

// Rect is an axis-aligned rectangle in pixels.
type Rect struct {
	X, Y, W, H float32
}

// Placement is everything needed to blit one sprite.
type Placement struct {
	Src Rect // texture crop
	Dst Rect // top-left anchored screen rectangle

	// Pivot relative to Dst's top-left.
	OriginX, OriginY float32

	Rotation float32 // degrees, clockwise on screen
}

// SpritePlacement computes where a renderable is drawn. The source is always
// the top-left SrcW x SrcH crop; Frame is not applied. The destination is
// centered on the truncated position and rotated about its own center by
// the entity's heading.
func SpritePlacement(pos components.Position, r components.Renderable) Placement {
	halfW := int32(r.DstW / 2)
	halfH := int32(r.DstH / 2)
	x, y := int32(pos.X), int32(pos.Y)

	return Placement{
		Src: Rect{X: 0, Y: 0, W: float32(r.SrcW), H: float32(r.SrcH)},
		Dst: Rect{
			X: float32(x - halfW),
			Y: float32(y - halfH),
			W: float32(r.DstW),
			H: float32(r.DstH),
		},
		OriginX:  float32(halfW),
		OriginY:  float32(halfH),
		Rotation: float32(pos.Rot),
	}
}
