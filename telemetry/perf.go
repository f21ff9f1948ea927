// Package telemetry collects frame timings and records flight data.
package telemetry

import (
	"log/slog"
	"time"
)

// Phase is one stage of a game loop frame.
type Phase int

// A frame polls the keyboard, steps the ship, then draws.
const (
	PhaseInput Phase = iota
	PhaseUpdate
	PhaseRender
	numPhases
)

var phaseNames = [numPhases]string{"input", "update", "render"}

func (p Phase) String() string {
	if p < 0 || p >= numPhases {
		return "unknown"
	}
	return phaseNames[p]
}

// frameTiming is the measured work of one frame, split by phase.
type frameTiming struct {
	work   time.Duration
	phases [numPhases]time.Duration
}

func (f *frameTiming) add(o frameTiming, sign time.Duration) {
	f.work += sign * o.work
	for i := range f.phases {
		f.phases[i] += sign * o.phases[i]
	}
}

// PerfCollector measures how long the loop spends polling, updating and
// drawing, averaged over the last N frames. The end-of-frame sleep is not
// work and only shows up in the frame interval.
type PerfCollector struct {
	now func() time.Time

	window []frameTiming
	next   int
	filled int
	total  frameTiming // sum over window[:filled]

	current    frameTiming
	frameStart time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool

	lastFrame time.Time
	interval  time.Duration
}

// NewPerfCollector creates a collector averaging over window frames.
// A non-positive window falls back to 60, one second at the default rate.
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 60
	}
	return &PerfCollector{
		now:    time.Now,
		window: make([]frameTiming, window),
	}
}

// StartFrame marks the beginning of the frame's work.
func (p *PerfCollector) StartFrame() {
	p.frameStart = p.now()
	p.current = frameTiming{}
	p.inPhase = false
}

// StartPhase closes the running phase, if any, and opens phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := p.now()
	p.closePhase(now)
	p.phase = phase
	p.phaseStart = now
	p.inPhase = true
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase {
		p.current.phases[p.phase] += now.Sub(p.phaseStart)
		p.inPhase = false
	}
}

// EndFrame stores the frame in the window, evicting the oldest one once
// the window is full.
func (p *PerfCollector) EndFrame() {
	now := p.now()
	p.closePhase(now)
	p.current.work = now.Sub(p.frameStart)

	if p.filled == len(p.window) {
		p.total.add(p.window[p.next], -1)
	} else {
		p.filled++
	}
	p.window[p.next] = p.current
	p.total.add(p.current, 1)
	p.next = (p.next + 1) % len(p.window)
}

// RecordFrame notes the wall-clock time since the previous call, sleep
// included. Call it once at the top of every frame.
func (p *PerfCollector) RecordFrame() {
	now := p.now()
	if !p.lastFrame.IsZero() {
		p.interval = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats summarizes the frames currently in the window.
type PerfStats struct {
	AvgFrameWork time.Duration
	MinFrameWork time.Duration
	MaxFrameWork time.Duration

	PhaseAvg [numPhases]time.Duration
	PhasePct [numPhases]float64 // share of AvgFrameWork

	// Last frame-to-frame interval and the rate it implies
	FrameInterval time.Duration
	FPS           float64
}

// Stats summarizes the current window. An empty window yields zero work.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{FrameInterval: p.interval}
	if p.interval > 0 {
		s.FPS = float64(time.Second) / float64(p.interval)
	}
	if p.filled == 0 {
		return s
	}

	n := time.Duration(p.filled)
	s.AvgFrameWork = p.total.work / n
	s.MinFrameWork = p.window[0].work
	for _, f := range p.window[:p.filled] {
		s.MinFrameWork = min(s.MinFrameWork, f.work)
		s.MaxFrameWork = max(s.MaxFrameWork, f.work)
	}
	for i, sum := range p.total.phases {
		s.PhaseAvg[i] = sum / n
		if s.AvgFrameWork > 0 {
			s.PhasePct[i] = float64(s.PhaseAvg[i]) / float64(s.AvgFrameWork) * 100
		}
	}
	return s
}

// LogStats logs the summary at debug level.
func (s PerfStats) LogStats(frame uint64) {
	attrs := []any{
		"frame", frame,
		"avg_work_us", s.AvgFrameWork.Microseconds(),
		"min_work_us", s.MinFrameWork.Microseconds(),
		"max_work_us", s.MaxFrameWork.Microseconds(),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for ph := PhaseInput; ph < numPhases; ph++ {
		if pct := s.PhasePct[ph]; pct > 0.1 {
			attrs = append(attrs, ph.String()+"_pct", int(pct*10)/10.0)
		}
	}
	slog.Debug("perf", attrs...)
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	WindowEnd uint64  `csv:"window_end"`
	AvgWorkUS int64   `csv:"avg_work_us"`
	MinWorkUS int64   `csv:"min_work_us"`
	MaxWorkUS int64   `csv:"max_work_us"`
	FPS       float64 `csv:"fps"`
	InputPct  float64 `csv:"input_pct"`
	UpdatePct float64 `csv:"update_pct"`
	RenderPct float64 `csv:"render_pct"`
}

// ToCSV flattens the summary for the window ending at frame windowEnd.
func (s PerfStats) ToCSV(windowEnd uint64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd: windowEnd,
		AvgWorkUS: s.AvgFrameWork.Microseconds(),
		MinWorkUS: s.MinFrameWork.Microseconds(),
		MaxWorkUS: s.MaxFrameWork.Microseconds(),
		FPS:       s.FPS,
		InputPct:  s.PhasePct[PhaseInput],
		UpdatePct: s.PhasePct[PhaseUpdate],
		RenderPct: s.PhasePct[PhaseRender],
	}
}
