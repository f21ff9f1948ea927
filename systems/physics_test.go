package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/thrust/components"
	"github.com/pthm-cable/thrust/input"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"zero", 0, 0},
		{"in range", 123.5, 123.5},
		{"just below full turn", 359.5, 359.5},
		{"full turn", 360, 0},
		{"past full turn", 361.5, 1.5},
		{"just negative", -1.5, 358.5},
		{"single correction only above", 720, 360},
		{"single correction only below", -400, -40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WrapAngle(tt.in); got != tt.want {
				t.Errorf("WrapAngle(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestWrapAngleStaysInRangeForOneStep(t *testing.T) {
	for rot := 0.0; rot < 360; rot += 0.25 {
		for _, delta := range []float64{-1.5, 0, 1.5} {
			got := WrapAngle(rot + delta)
			if got < 0 || got >= 360 {
				t.Fatalf("WrapAngle(%v%+v) = %v, outside [0, 360)", rot, delta, got)
			}
		}
	}
}

func TestUpdateMovement_ClearsImpulse(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	params := DefaultMovementParams()

	for i := 0; i < 100; i++ {
		pos := components.Position{X: 400, Y: 300}
		player := components.Player{
			Impulse:      r2.Vec{X: rng.Float64()*20 - 10, Y: rng.Float64()*20 - 10},
			CurrentSpeed: r2.Vec{X: rng.Float64()*4 - 2, Y: rng.Float64()*4 - 2},
		}
		UpdateMovement(&pos, &player, params)
		if player.Impulse != (r2.Vec{}) {
			t.Fatalf("impulse = %v after UpdateMovement, want zero", player.Impulse)
		}
	}
}

func TestUpdateMovement_SpeedNeverExceedsCap(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	params := DefaultMovementParams()
	pos := components.Position{X: 400, Y: 300}
	var player components.Player

	for frame := 0; frame < 5000; frame++ {
		if rng.Intn(3) > 0 {
			player.Impulse = r2.Vec{X: rng.NormFloat64() * 6, Y: rng.NormFloat64() * 6}
		}
		UpdateMovement(&pos, &player, params)
		if n := r2.Norm(player.CurrentSpeed); n > params.MaxSpeed+eps {
			t.Fatalf("frame %d: |speed| = %v exceeds %v", frame, n, params.MaxSpeed)
		}
	}
}

func TestUpdateMovement_CapRescalesToExactlyMax(t *testing.T) {
	params := DefaultMovementParams()
	pos := components.Position{}
	player := components.Player{Impulse: r2.Vec{X: 30, Y: 40}}

	UpdateMovement(&pos, &player, params)

	if !approx(r2.Norm(player.CurrentSpeed), 3.5) {
		t.Errorf("|speed| = %v, want 3.5", r2.Norm(player.CurrentSpeed))
	}
	// Direction is preserved: (3, 4) / 5 * 3.5
	if !approx(player.CurrentSpeed.X, 2.1) || !approx(player.CurrentSpeed.Y, 2.8) {
		t.Errorf("speed = %v, want (2.1, 2.8)", player.CurrentSpeed)
	}
}

func TestUpdateMovement_YAxisInverted(t *testing.T) {
	params := DefaultMovementParams()
	pos := components.Position{X: 100, Y: 100}
	player := components.Player{Impulse: r2.Vec{X: 1, Y: 2}}

	UpdateMovement(&pos, &player, params)

	if !approx(pos.X, 101) {
		t.Errorf("x = %v, want 101", pos.X)
	}
	if !approx(pos.Y, 98) {
		t.Errorf("y = %v, want 98 (speed.Y is subtracted)", pos.Y)
	}
}

func TestUpdateMovement_DecaysWithoutInput(t *testing.T) {
	params := DefaultMovementParams()
	pos := components.Position{X: 400, Y: 300}
	// |(2.1, -1.4)| is about 2.52, under the cap, so only decay applies.
	player := components.Player{CurrentSpeed: r2.Vec{X: 2.1, Y: -1.4}}

	for n := 1; n <= 1000; n++ {
		UpdateMovement(&pos, &player, params)
		want := math.Pow(0.99, float64(n))
		if math.Abs(player.CurrentSpeed.X-2.1*want) > 1e-6 || math.Abs(player.CurrentSpeed.Y+1.4*want) > 1e-6 {
			t.Fatalf("frame %d: speed = %v, want %v", n, player.CurrentSpeed, r2.Vec{X: 2.1 * want, Y: -1.4 * want})
		}
	}
	if r2.Norm(player.CurrentSpeed) > 1e-3 {
		t.Errorf("speed %v did not converge toward zero", player.CurrentSpeed)
	}
}

func TestUpdateMovement_DecayThenCapAboveMax(t *testing.T) {
	params := DefaultMovementParams()
	pos := components.Position{}
	// |(3, -2)| is about 3.61; after one 0.99 decay it is still over 3.5.
	player := components.Player{CurrentSpeed: r2.Vec{X: 3, Y: -2}}

	UpdateMovement(&pos, &player, params)

	if !approx(r2.Norm(player.CurrentSpeed), 3.5) {
		t.Errorf("|speed| = %v, want clamped to 3.5", r2.Norm(player.CurrentSpeed))
	}
	if !approx(player.CurrentSpeed.X/player.CurrentSpeed.Y, -1.5) {
		t.Errorf("speed = %v, direction changed", player.CurrentSpeed)
	}
}

func TestApplyControls_ThrustFromRest(t *testing.T) {
	pos := components.Position{X: 400, Y: 300, Rot: 0}
	var player components.Player

	ApplyControls(&pos, &player, input.Held("Up"), DefaultControls(), DefaultMovementParams())

	// The 4.5 impulse is over the 3.5 cap, so the speed is clamped.
	if player.CurrentSpeed != (r2.Vec{X: 0, Y: 3.5}) {
		t.Errorf("speed = %v, want (0, 3.5)", player.CurrentSpeed)
	}
	if pos.X != 400 || pos.Y != 296.5 {
		t.Errorf("position = (%v, %v), want (400, 296.5)", pos.X, pos.Y)
	}
	if player.Impulse != (r2.Vec{}) {
		t.Errorf("impulse = %v, want zero", player.Impulse)
	}
}

func TestApplyControls_ThrustBelowCap(t *testing.T) {
	params := DefaultMovementParams()
	params.Acceleration = 1

	tests := []struct {
		name         string
		rot          float64
		wantX, wantY float64
	}{
		{"heading 0 moves up the screen", 0, 400, 299},
		{"heading 90 moves right", 90, 401, 300},
		{"heading 180 moves down the screen", 180, 400, 301},
		{"heading 270 moves left", 270, 399, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := components.Position{X: 400, Y: 300, Rot: tt.rot}
			var player components.Player

			ApplyControls(&pos, &player, input.Held("Up"), DefaultControls(), params)

			if !approx(pos.X, tt.wantX) || !approx(pos.Y, tt.wantY) {
				t.Errorf("position = (%v, %v), want (%v, %v)", pos.X, pos.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestApplyControls_RotationBeforeThrust(t *testing.T) {
	pos := components.Position{X: 400, Y: 300, Rot: 0}
	var player components.Player

	ApplyControls(&pos, &player, input.Held("Up", "Right"), DefaultControls(), DefaultMovementParams())

	if pos.Rot != 1.5 {
		t.Errorf("rot = %v, want 1.5", pos.Rot)
	}
	if pos.X <= 400 {
		t.Errorf("x = %v, want thrust along the already-rotated heading", pos.X)
	}
}

func TestApplyControls_LeftFullTurn(t *testing.T) {
	pos := components.Position{X: 400, Y: 300, Rot: 0}
	var player components.Player
	keys := input.Held("Left")

	for frame := 0; frame < 240; frame++ {
		ApplyControls(&pos, &player, keys, DefaultControls(), DefaultMovementParams())
		if pos.Rot < 0 || pos.Rot >= 360 {
			t.Fatalf("frame %d: rot = %v outside [0, 360)", frame, pos.Rot)
		}
	}

	if pos.Rot != 0 {
		t.Errorf("rot after 240 frames = %v, want 0", pos.Rot)
	}
	if pos.X != 400 || pos.Y != 300 {
		t.Errorf("rotation alone moved the ship to (%v, %v)", pos.X, pos.Y)
	}
}

func TestApplyControls_RightFullTurn(t *testing.T) {
	pos := components.Position{Rot: 0}
	var player components.Player
	keys := input.Held("Right")

	for frame := 0; frame < 240; frame++ {
		ApplyControls(&pos, &player, keys, DefaultControls(), DefaultMovementParams())
	}

	if pos.Rot != 0 {
		t.Errorf("rot after 240 frames = %v, want 0", pos.Rot)
	}
}

func TestApplyControls_LeftAndRightCancel(t *testing.T) {
	pos := components.Position{Rot: 90}
	var player components.Player

	ApplyControls(&pos, &player, input.Held("Left", "Right"), DefaultControls(), DefaultMovementParams())

	if pos.Rot != 90 {
		t.Errorf("rot = %v, want 90", pos.Rot)
	}
}

func TestApplyControls_CustomBindings(t *testing.T) {
	controls := Controls{RotateLeft: "A", RotateRight: "D", Thrust: "W"}
	pos := components.Position{Rot: 10}
	var player components.Player

	ApplyControls(&pos, &player, input.Held("Left", "Up"), controls, DefaultMovementParams())
	if pos.Rot != 10 || pos.Y != 0 {
		t.Errorf("default keys should be ignored, got rot %v y %v", pos.Rot, pos.Y)
	}

	ApplyControls(&pos, &player, input.Held("A"), controls, DefaultMovementParams())
	if pos.Rot != 8.5 {
		t.Errorf("rot = %v, want 8.5", pos.Rot)
	}
}

func TestControlSystem_OnlyEntitiesWithPositionAndPlayer(t *testing.T) {
	world := ecs.NewWorld()
	shipMapper := ecs.NewMap2[components.Position, components.Player](world)
	propMapper := ecs.NewMap2[components.Position, components.Renderable](world)
	posMap := ecs.NewMap[components.Position](world)

	ship := shipMapper.NewEntity(&components.Position{X: 400, Y: 300}, &components.Player{})
	prop := propMapper.NewEntity(&components.Position{X: 10, Y: 10, Rot: 5}, &components.Renderable{})

	sys := NewControlSystem(world, DefaultMovementParams(), DefaultControls())
	sys.Update(input.Held("Up", "Left"))

	shipPos := posMap.Get(ship)
	if shipPos.Rot != 358.5 {
		t.Errorf("ship rot = %v, want 358.5", shipPos.Rot)
	}
	if shipPos.Y >= 300 {
		t.Errorf("ship y = %v, want thrust applied", shipPos.Y)
	}

	propPos := posMap.Get(prop)
	if *propPos != (components.Position{X: 10, Y: 10, Rot: 5}) {
		t.Errorf("entity without Player was modified: %+v", *propPos)
	}
}

func TestControlSystem_StatePersistsAcrossFrames(t *testing.T) {
	world := ecs.NewWorld()
	mapper := ecs.NewMap2[components.Position, components.Player](world)
	ship := mapper.NewEntity(&components.Position{X: 400, Y: 300}, &components.Player{})

	sys := NewControlSystem(world, DefaultMovementParams(), DefaultControls())
	sys.Update(input.Held("Up"))
	sys.Update(input.NewKeyState())

	pos, player := mapper.Get(ship)
	// Frame 2 coasts at 3.5 * 0.99.
	if !approx(player.CurrentSpeed.Y, 3.465) {
		t.Errorf("speed.Y = %v, want 3.465", player.CurrentSpeed.Y)
	}
	if !approx(pos.Y, 300-3.5-3.465) {
		t.Errorf("y = %v, want %v", pos.Y, 300-3.5-3.465)
	}
}

func TestControlSystem_VisitsEntitiesInCreationOrder(t *testing.T) {
	world := ecs.NewWorld()
	mapper := ecs.NewMap2[components.Position, components.Player](world)

	var created []ecs.Entity
	for i := 0; i < 5; i++ {
		created = append(created, mapper.NewEntity(&components.Position{X: float64(i)}, &components.Player{}))
	}

	sys := NewControlSystem(world, DefaultMovementParams(), DefaultControls())
	var visited []ecs.Entity
	query := sys.filter.Query()
	for query.Next() {
		visited = append(visited, query.Entity())
	}

	if len(visited) != len(created) {
		t.Fatalf("visited %d entities, want %d", len(visited), len(created))
	}
	for i := range created {
		if visited[i] != created[i] {
			t.Errorf("visit %d = %v, want %v", i, visited[i], created[i])
		}
	}
}
