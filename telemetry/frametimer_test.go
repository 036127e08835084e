package telemetry

import (
	"math"
	"testing"
	"time"
)

// manualClock is a time source advanced explicitly by the test.
type manualClock struct {
	t time.Time
}

func (c *manualClock) now() time.Time          { return c.t }
func (c *manualClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestFrameTimerWindow(t *testing.T) {
	clk := &manualClock{t: time.Unix(100, 0)}
	ft := NewFrameTimer(clk.now)

	// Frames cost 8, 10, 12, 14 ms with 2 ms idle between them
	for i := 0; i < 4; i++ {
		ft.StartFrame()
		ft.StartPhase(PhaseInput)
		clk.advance(time.Millisecond)
		ft.StartPhase(PhaseUpdate)
		clk.advance(3 * time.Millisecond)
		ft.StartPhase(PhaseDraw)
		clk.advance(time.Duration(4+2*i) * time.Millisecond)
		ft.EndFrame()
		clk.advance(2 * time.Millisecond)
	}

	c := ft.Flush(4)

	if c.WindowEnd != 4 || c.Frames != 4 {
		t.Errorf("window = %d, frames = %d, want 4, 4", c.WindowEnd, c.Frames)
	}
	if c.AvgFrameUS != 11000 || c.MinFrameUS != 8000 || c.MaxFrameUS != 14000 {
		t.Errorf("avg/min/max = %d/%d/%d us, want 11000/8000/14000", c.AvgFrameUS, c.MinFrameUS, c.MaxFrameUS)
	}

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"input", c.InputPct, 4.0 / 44 * 100},
		{"update", c.UpdatePct, 12.0 / 44 * 100},
		{"draw", c.DrawPct, 28.0 / 44 * 100},
		{"telemetry", c.TelemetryPct, 0},
		// Frame ends 12, 14 and 16 ms apart
		{"fps", c.FPS, 3 / 0.042},
	}
	for _, tt := range tests {
		if math.Abs(tt.got-tt.want) > 1e-6 {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestFrameTimerFlushResets(t *testing.T) {
	clk := &manualClock{t: time.Unix(100, 0)}
	ft := NewFrameTimer(clk.now)

	frame := func(d time.Duration) {
		ft.StartFrame()
		ft.StartPhase(PhaseUpdate)
		clk.advance(d)
		ft.EndFrame()
	}

	frame(5 * time.Millisecond)
	first := ft.Flush(1)
	if first.Frames != 1 || first.FPS != 0 {
		t.Errorf("first window = %+v, want 1 frame and no fps", first)
	}

	empty := ft.Flush(1)
	if empty != (FrameCost{WindowEnd: 1}) {
		t.Errorf("empty window = %+v, want zero values", empty)
	}

	// The interval baseline survives the flush
	clk.advance(15 * time.Millisecond)
	frame(5 * time.Millisecond)
	next := ft.Flush(2)
	if math.Abs(next.FPS-50) > 1e-6 {
		t.Errorf("fps = %v, want 50", next.FPS)
	}
	if next.UpdatePct != 100 {
		t.Errorf("update pct = %v, want 100", next.UpdatePct)
	}
}

func TestFrameTimerPhaseOutsideFrame(t *testing.T) {
	clk := &manualClock{t: time.Unix(100, 0)}
	ft := NewFrameTimer(clk.now)

	// Time before the first StartPhase is frame cost but no phase's
	ft.StartFrame()
	clk.advance(2 * time.Millisecond)
	ft.StartPhase(PhaseDraw)
	clk.advance(2 * time.Millisecond)
	ft.EndFrame()

	c := ft.Flush(1)
	if c.AvgFrameUS != 4000 || c.DrawPct != 50 {
		t.Errorf("avg = %d us, draw = %v%%, want 4000, 50", c.AvgFrameUS, c.DrawPct)
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseDraw.String() != "draw" {
		t.Errorf("PhaseDraw = %q", PhaseDraw.String())
	}
	if Phase(9).String() != "unknown" {
		t.Errorf("Phase(9) = %q", Phase(9).String())
	}
}

func TestFrameTimerFlushMidFrame(t *testing.T) {
	clk := &manualClock{t: time.Unix(100, 0)}
	ft := NewFrameTimer(clk.now)

	ft.StartFrame()
	ft.StartPhase(PhaseInput)
	clk.advance(time.Millisecond)
	ft.StartPhase(PhaseTelemetry)

	if c := ft.Flush(1); c.Frames != 0 || c.InputPct != 0 {
		t.Errorf("open frame leaked into window: %+v", c)
	}

	clk.advance(time.Millisecond)
	ft.EndFrame()

	c := ft.Flush(2)
	if c.Frames != 1 || c.InputPct != 50 || c.TelemetryPct != 50 {
		t.Errorf("window = %+v, want 1 frame split 50/50 input/telemetry", c)
	}
}
