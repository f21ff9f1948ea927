// Package components defines ECS components for the game.
package components

import "gonum.org/v1/gonum/spatial/r2"

// Player holds thrust state for a player-controlled entity.
type Player struct {
	Impulse      r2.Vec // thrust accumulated this frame, zeroed after integration
	CurrentSpeed r2.Vec // persists across frames; decays and is capped
}
