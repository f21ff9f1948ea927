// Package systems contains ECS systems for the game.
package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/thrust/components"
	"github.com/pthm-cable/thrust/config"
	"github.com/pthm-cable/thrust/input"
)

// MovementParams holds the per-frame ship physics constants.
type MovementParams struct {
	RotationSpeed float64 // degrees per frame
	MaxSpeed      float64 // hard cap on |CurrentSpeed|
	Acceleration  float64 // impulse magnitude per thrust frame
	Deceleration  float64 // speed multiplier per frame
}

// DefaultMovementParams returns the stock ship handling.
func DefaultMovementParams() MovementParams {
	return MovementParams{
		RotationSpeed: 1.5,
		MaxSpeed:      3.5,
		Acceleration:  4.5,
		Deceleration:  0.99,
	}
}

// MovementParamsFromConfig converts the physics config section.
func MovementParamsFromConfig(cfg config.PhysicsConfig) MovementParams {
	return MovementParams{
		RotationSpeed: cfg.RotationSpeed,
		MaxSpeed:      cfg.MaxSpeed,
		Acceleration:  cfg.Acceleration,
		Deceleration:  cfg.Deceleration,
	}
}

// Controls names the keys that steer a player entity.
type Controls struct {
	RotateLeft  string
	RotateRight string
	Thrust      string
}

// DefaultControls returns the arrow-key bindings.
func DefaultControls() Controls {
	return Controls{RotateLeft: "Left", RotateRight: "Right", Thrust: "Up"}
}

// ControlsFromConfig converts the controls config section.
func ControlsFromConfig(cfg config.ControlsConfig) Controls {
	return Controls{
		RotateLeft:  cfg.RotateLeft,
		RotateRight: cfg.RotateRight,
		Thrust:      cfg.Thrust,
	}
}

// ControlSystem applies player input and movement to every entity that
// has both a Position and a Player.
type ControlSystem struct {
	filter   *ecs.Filter2[components.Position, components.Player]
	params   MovementParams
	controls Controls
}

// NewControlSystem creates a new control system.
func NewControlSystem(w *ecs.World, params MovementParams, controls Controls) *ControlSystem {
	return &ControlSystem{
		filter:   ecs.NewFilter2[components.Position, components.Player](w),
		params:   params,
		controls: controls,
	}
}

// Update runs one frame of input and movement.
func (s *ControlSystem) Update(keys input.KeyReader) {
	query := s.filter.Query()
	for query.Next() {
		pos, player := query.Get()
		ApplyControls(pos, player, keys, s.controls, s.params)
	}
}

// ApplyControls steers a single entity for one frame.
//
// Heading 0 points along +Y of the speed vector, so thrust uses sin for X
// and cos for Y. Position Y grows downward, which UpdateMovement accounts for.
func ApplyControls(pos *components.Position, player *components.Player, keys input.KeyReader, controls Controls, params MovementParams) {
	if keys.IsPressed(controls.RotateLeft) {
		pos.Rot -= params.RotationSpeed
	}
	if keys.IsPressed(controls.RotateRight) {
		pos.Rot += params.RotationSpeed
	}

	if keys.IsPressed(controls.Thrust) {
		rad := pos.Rot * math.Pi / 180
		player.Impulse = r2.Add(player.Impulse, r2.Vec{
			X: math.Sin(rad) * params.Acceleration,
			Y: math.Cos(rad) * params.Acceleration,
		})
	}

	UpdateMovement(pos, player, params)

	pos.Rot = WrapAngle(pos.Rot)
}

// UpdateMovement decays speed, adds the pending impulse, caps the speed and
// moves the position. The impulse is always zero on return.
func UpdateMovement(pos *components.Position, player *components.Player, params MovementParams) {
	player.CurrentSpeed = r2.Scale(params.Deceleration, player.CurrentSpeed)
	player.CurrentSpeed = r2.Add(player.CurrentSpeed, player.Impulse)

	if r2.Norm(player.CurrentSpeed) > params.MaxSpeed {
		player.CurrentSpeed = r2.Scale(params.MaxSpeed, r2.Unit(player.CurrentSpeed))
	}

	pos.X += player.CurrentSpeed.X
	pos.Y -= player.CurrentSpeed.Y

	player.Impulse = r2.Vec{}
}

// WrapAngle applies a single 360 degree correction. Inputs further than one
// turn outside [0, 360) are only corrected once.
func WrapAngle(rot float64) float64 {
	if rot >= 360 {
		rot -= 360
	}
	if rot < 0 {
		rot += 360
	}
	return rot
}
