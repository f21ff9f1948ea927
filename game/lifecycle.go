package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/thrust/components"
)

// spawnShip creates the player ship at the screen center, heading 0.
func (g *Game) spawnShip() ecs.Entity {
	pos := components.Position{X: g.cfg.Derived.CenterX, Y: g.cfg.Derived.CenterY, Rot: 0}
	ren := components.RenderableFromShip(g.cfg.Ship)
	player := components.Player{}

	entity := g.shipMapper.NewEntity(&pos, &ren, &player)

	slog.Debug("ship spawned", "x", pos.X, "y", pos.Y, "texture", ren.TexName)
	return entity
}

// Ship returns copies of the ship's components.
func (g *Game) Ship() (components.Position, components.Renderable, components.Player) {
	pos, ren, player := g.shipMapper.Get(g.ship)
	return *pos, *ren, *player
}

// CreateEntity adds an entity with no components. It is invisible to every
// system until components are attached.
func (g *Game) CreateEntity() ecs.Entity {
	return g.world.NewEntity()
}

// AttachPosition sets e's Position, adding the component if e lacks one.
func (g *Game) AttachPosition(e ecs.Entity, pos components.Position) {
	attach(g.positions, e, pos)
}

// AttachRenderable sets e's Renderable, adding the component if e lacks one.
func (g *Game) AttachRenderable(e ecs.Entity, ren components.Renderable) {
	attach(g.renderables, e, ren)
}

// AttachPlayer sets e's Player, adding the component if e lacks one.
func (g *Game) AttachPlayer(e ecs.Entity, player components.Player) {
	attach(g.players, e, player)
}

// attach overwrites an existing component in place; ark panics on a
// second Add of the same type.
func attach[T any](m *ecs.Map[T], e ecs.Entity, c T) {
	if m.Has(e) {
		*m.Get(e) = c
		return
	}
	m.Add(e, &c)
}

// Position returns a copy of e's Position and whether e has one.
func (g *Game) Position(e ecs.Entity) (components.Position, bool) {
	if !g.positions.Has(e) {
		return components.Position{}, false
	}
	return *g.positions.Get(e), true
}
