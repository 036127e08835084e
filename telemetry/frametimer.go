package telemetry

import (
	"log/slog"
	"math"
	"time"
)

// Phase is a timed section of a frame.
type Phase uint8

const (
	PhaseInput Phase = iota
	PhaseUpdate
	PhaseDraw
	PhaseTelemetry
	numPhases
)

var phaseNames = [numPhases]string{"input", "update", "draw", "telemetry"}

func (p Phase) String() string {
	if p < numPhases {
		return phaseNames[p]
	}
	return "unknown"
}

// FrameTimer measures the cost of each frame and its phases, accumulated
// until Flush. The interval between consecutive frame ends gives the
// delivered frame rate.
type FrameTimer struct {
	now func() time.Time

	frameStart time.Time
	phaseStart time.Time
	phase      Phase // numPhases when no phase is open
	current    [numPhases]time.Duration

	frames   int
	total    time.Duration
	min, max time.Duration
	phases   [numPhases]time.Duration

	lastEnd     time.Time
	intervalSum time.Duration
	intervals   int
}

// NewFrameTimer creates a timer reading from now (time.Now if nil).
func NewFrameTimer(now func() time.Time) *FrameTimer {
	if now == nil {
		now = time.Now
	}
	return &FrameTimer{now: now, phase: numPhases}
}

// StartFrame begins timing a frame.
func (ft *FrameTimer) StartFrame() {
	ft.frameStart = ft.now()
	ft.phaseStart = ft.frameStart
	ft.phase = numPhases
	ft.current = [numPhases]time.Duration{}
}

// StartPhase closes the open phase, if any, and opens p.
func (ft *FrameTimer) StartPhase(p Phase) {
	t := ft.now()
	ft.closePhase(t)
	ft.phase = p
	ft.phaseStart = t
}

func (ft *FrameTimer) closePhase(t time.Time) {
	if ft.phase < numPhases {
		ft.current[ft.phase] += t.Sub(ft.phaseStart)
	}
	ft.phase = numPhases
}

// EndFrame closes the open phase and adds the frame to the window.
func (ft *FrameTimer) EndFrame() {
	t := ft.now()
	ft.closePhase(t)
	for p, d := range ft.current {
		ft.phases[p] += d
	}

	d := t.Sub(ft.frameStart)
	if ft.frames == 0 || d < ft.min {
		ft.min = d
	}
	if d > ft.max {
		ft.max = d
	}
	ft.total += d
	ft.frames++

	if !ft.lastEnd.IsZero() {
		ft.intervalSum += t.Sub(ft.lastEnd)
		ft.intervals++
	}
	ft.lastEnd = t
}

// Flush summarises the frames ended since the previous Flush and starts a
// new window. A frame still open counts toward the next window. The
// frame-rate baseline carries over.
func (ft *FrameTimer) Flush(windowEnd int) FrameCost {
	c := FrameCost{WindowEnd: windowEnd, Frames: ft.frames}

	if ft.frames > 0 {
		c.AvgFrameUS = (ft.total / time.Duration(ft.frames)).Microseconds()
		c.MinFrameUS = ft.min.Microseconds()
		c.MaxFrameUS = ft.max.Microseconds()
	}
	if ft.intervalSum > 0 {
		c.FPS = float64(ft.intervals) / ft.intervalSum.Seconds()
	}

	var pct [numPhases]float64
	if ft.total > 0 {
		for p, d := range ft.phases {
			pct[p] = float64(d) / float64(ft.total) * 100
		}
	}
	c.InputPct = pct[PhaseInput]
	c.UpdatePct = pct[PhaseUpdate]
	c.DrawPct = pct[PhaseDraw]
	c.TelemetryPct = pct[PhaseTelemetry]

	ft.frames = 0
	ft.total, ft.min, ft.max = 0, 0, 0
	ft.phases = [numPhases]time.Duration{}
	ft.intervalSum, ft.intervals = 0, 0

	return c
}

// FrameCost is one window of frame timing, written as a perf.csv row.
type FrameCost struct {
	WindowEnd    int     `csv:"window_end"`
	Frames       int     `csv:"frames"`
	AvgFrameUS   int64   `csv:"avg_frame_us"`
	MinFrameUS   int64   `csv:"min_frame_us"`
	MaxFrameUS   int64   `csv:"max_frame_us"`
	FPS          float64 `csv:"fps"`
	InputPct     float64 `csv:"input_pct"`
	UpdatePct    float64 `csv:"update_pct"`
	DrawPct      float64 `csv:"draw_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// LogStats logs the window's frame cost using slog.
func (c FrameCost) LogStats() {
	round := func(v float64) float64 { return math.Round(v*10) / 10 }
	slog.Info("perf",
		"window_end", c.WindowEnd,
		"frames", c.Frames,
		"avg_frame_us", c.AvgFrameUS,
		"max_frame_us", c.MaxFrameUS,
		"fps", round(c.FPS),
		"input_pct", round(c.InputPct),
		"update_pct", round(c.UpdatePct),
		"draw_pct", round(c.DrawPct),
		"telemetry_pct", round(c.TelemetryPct),
	)
}
