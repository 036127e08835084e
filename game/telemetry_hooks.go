package game

import "log/slog"

// flushTelemetry closes the stats window when it is due, logging and writing
// it as configured.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.frame) {
		return
	}

	stats := g.collector.Flush(g.frame, g.plants.Len(), g.animals.Len(), g.simTime)
	cost := g.perf.Flush(stats.WindowEndFrame)

	if g.logStats {
		stats.LogStats()
		cost.LogStats()
	}

	// Write failures are logged and the run continues
	if err := g.output.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.output.WritePerf(cost); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}
