package game

import (
	"log/slog"

	"github.com/pthm-cable/thrust/telemetry"
)

// recordFlight appends the ship state for the frame just updated.
func (g *Game) recordFlight() {
	if g.output == nil {
		return
	}
	pos, _, player := g.Ship()
	err := g.output.WriteFlight(telemetry.FlightSample{
		Frame:  g.frame,
		X:      pos.X,
		Y:      pos.Y,
		Rot:    pos.Rot,
		SpeedX: player.CurrentSpeed.X,
		SpeedY: player.CurrentSpeed.Y,
	})
	if err != nil {
		slog.Error("failed to write flight sample", "error", err)
	}
}

// reportPerf logs and stores perf stats every PerfLogInterval frames.
func (g *Game) reportPerf() {
	interval := uint64(g.cfg.Debug.PerfLogInterval)
	if interval == 0 || g.frame%interval != 0 {
		return
	}

	stats := g.perf.Stats()
	stats.LogStats(g.frame)

	if err := g.output.WritePerf(stats, g.frame); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}
