package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/thrust/components"
	"github.com/pthm-cable/thrust/systems"
)

// SpriteRenderer draws every entity that has a Position and a Renderable.
type SpriteRenderer struct {
	filter   *ecs.Filter2[components.Position, components.Renderable]
	textures *TextureCache
}

// NewSpriteRenderer creates a sprite renderer over the given world.
func NewSpriteRenderer(w *ecs.World, textures *TextureCache) *SpriteRenderer {
	return &SpriteRenderer{
		filter:   ecs.NewFilter2[components.Position, components.Renderable](w),
		textures: textures,
	}
}

// Draw blits all sprites in query order. Must be called between
// BeginDrawing and EndDrawing. A texture that fails to load stops drawing
// and is returned.
func (r *SpriteRenderer) Draw() error {
	query := r.filter.Query()
	for query.Next() {
		pos, ren := query.Get()

		tex, err := r.textures.Load(ren.TexName)
		if err != nil {
			query.Close()
			return err
		}

		p := systems.SpritePlacement(*pos, *ren)
		src := rl.Rectangle{X: p.Src.X, Y: p.Src.Y, Width: p.Src.W, Height: p.Src.H}
		// raylib positions dst by its origin, so shift from top-left to pivot.
		dst := rl.Rectangle{X: p.Dst.X + p.OriginX, Y: p.Dst.Y + p.OriginY, Width: p.Dst.W, Height: p.Dst.H}
		origin := rl.Vector2{X: p.OriginX, Y: p.OriginY}

		rl.DrawTexturePro(tex, src, dst, origin, p.Rotation, rl.White)
	}
	return nil
}
