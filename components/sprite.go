package components

import "github.com/pthm-cable/thrust/config"

// Renderable describes which texture region to draw for an entity and at
// what size. Frame, TotalFrames and Rot are carried but not animated; the
// renderer takes rotation from Position.
type Renderable struct {
	TexName     string // texture path, also the cache key
	SrcW, SrcH  uint32 // source crop taken from the texture's top-left
	DstW, DstH  uint32 // drawn size on screen
	Frame       uint32
	TotalFrames uint32
	Rot         float64
}

// RenderableFromShip returns the renderable for the configured ship sprite.
func RenderableFromShip(ship config.ShipConfig) Renderable {
	return Renderable{
		TexName:     ship.Texture,
		SrcW:        ship.SrcWidth,
		SrcH:        ship.SrcHeight,
		DstW:        ship.DstWidth,
		DstH:        ship.DstHeight,
		Frame:       0,
		TotalFrames: ship.TotalFrames,
	}
}
