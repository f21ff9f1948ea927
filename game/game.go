// Package game owns the ECS world and drives the fixed-rate frame loop.
package game

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/thrust/components"
	"github.com/pthm-cable/thrust/config"
	"github.com/pthm-cable/thrust/input"
	"github.com/pthm-cable/thrust/systems"
	"github.com/pthm-cable/thrust/telemetry"
)

// Options configures a Game beyond what config.Config holds.
type Options struct {
	OutputDir string // flight/perf CSV directory (empty = disabled)
	MaxFrames uint64 // stop after N frames (0 = unlimited)
	NoSleep   bool   // skip the end-of-frame sleep (headless runs)
}

// Frontend connects the frame loop to a window or a script.
type Frontend interface {
	// PollInput applies pending input events to keys and reports whether
	// the player asked to quit.
	PollInput(keys *input.KeyState) (quit bool)
	// Render draws the current world state. An error aborts the loop.
	Render() error
}

// Game holds the complete game state.
type Game struct {
	cfg  *config.Config
	opts Options

	world      *ecs.World
	shipMapper *ecs.Map3[components.Position, components.Renderable, components.Player]
	ship       ecs.Entity

	positions   *ecs.Map[components.Position]
	renderables *ecs.Map[components.Renderable]
	players     *ecs.Map[components.Player]

	keys    *input.KeyState
	control *systems.ControlSystem

	perf   *telemetry.PerfCollector
	output *telemetry.OutputManager

	frame uint64
	sleep func(time.Duration)
}

// NewGame creates the world and spawns the ship.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	world := ecs.NewWorld()

	g := &Game{
		cfg:        cfg,
		opts:       opts,
		world:      world,
		shipMapper: ecs.NewMap3[components.Position, components.Renderable, components.Player](world),

		positions:   ecs.NewMap[components.Position](world),
		renderables: ecs.NewMap[components.Renderable](world),
		players:     ecs.NewMap[components.Player](world),

		keys: input.NewKeyState(),
		control: systems.NewControlSystem(world,
			systems.MovementParamsFromConfig(cfg.Physics),
			systems.ControlsFromConfig(cfg.Controls),
		),
		perf:  telemetry.NewPerfCollector(cfg.Debug.PerfWindow),
		sleep: time.Sleep,
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("initializing output: %w", err)
	}
	g.output = output
	if err := g.output.WriteConfig(cfg); err != nil {
		g.output.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	g.ship = g.spawnShip()

	return g, nil
}

// World returns the ECS world for systems that render it.
func (g *Game) World() *ecs.World {
	return g.world
}

// Keys returns the key state read by the update step.
func (g *Game) Keys() *input.KeyState {
	return g.keys
}

// Frame returns the number of completed updates.
func (g *Game) Frame() uint64 {
	return g.frame
}

// Perf returns the frame timing collector.
func (g *Game) Perf() *telemetry.PerfCollector {
	return g.perf
}

// Step runs the update for one frame against the current key state.
func (g *Game) Step() {
	g.control.Update(g.keys)
	g.frame++
	g.recordFlight()
}

// RunFrame runs one poll, update and render cycle. It reports whether the
// frontend asked to quit; the update and render are skipped in that case.
func (g *Game) RunFrame(fe Frontend) (quit bool, err error) {
	g.perf.RecordFrame()
	g.perf.StartFrame()

	g.perf.StartPhase(telemetry.PhaseInput)
	if fe.PollInput(g.keys) {
		g.perf.EndFrame()
		return true, nil
	}

	g.perf.StartPhase(telemetry.PhaseUpdate)
	g.Step()

	g.perf.StartPhase(telemetry.PhaseRender)
	if err := fe.Render(); err != nil {
		g.perf.EndFrame()
		return false, fmt.Errorf("rendering frame %d: %w", g.frame, err)
	}
	g.perf.EndFrame()

	g.reportPerf()
	return false, nil
}

// Run loops until the frontend quits, MaxFrames is reached or a frame fails.
// Each iteration sleeps a fixed frame duration with no drift compensation.
func (g *Game) Run(fe Frontend) error {
	for {
		quit, err := g.RunFrame(fe)
		if err != nil {
			return err
		}
		if quit {
			slog.Info("quit requested", "frame", g.frame)
			return nil
		}
		if g.opts.MaxFrames > 0 && g.frame >= g.opts.MaxFrames {
			slog.Info("max frames reached", "frame", g.frame)
			return nil
		}
		if !g.opts.NoSleep {
			g.sleep(g.cfg.Derived.FrameDuration)
		}
	}
}

// Unload releases game-owned resources.
func (g *Game) Unload() error {
	if err := g.output.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}
	return nil
}

// Close is Unload for deferred calls: a failure is logged, not returned.
func (g *Game) Close() {
	if err := g.Unload(); err != nil {
		slog.Error("failed to unload game", "error", err)
	}
}
