package telemetry

// Collector accumulates events within windows of frames and produces
// WindowStats.
type Collector struct {
	windowFrames     int
	windowStartFrame int

	// Event counters for current window
	counts [numEventTypes]int

	// Per-frame elapsed time, seconds
	frameDT []float64
}

// NewCollector creates a collector that flushes every windowFrames frames.
func NewCollector(windowFrames int) *Collector {
	if windowFrames < 1 {
		windowFrames = 1
	}
	return &Collector{
		windowFrames: windowFrames,
		frameDT:      make([]float64, 0, windowFrames),
	}
}

// Record adds n occurrences of ev to the current window.
func (c *Collector) Record(ev EventType, n int) {
	if ev < numEventTypes {
		c.counts[ev] += n
	}
}

// Count returns how many ev were recorded in the current window.
func (c *Collector) Count(ev EventType) int {
	if ev < numEventTypes {
		return c.counts[ev]
	}
	return 0
}

// RecordFrame records the elapsed time used for one frame's update.
func (c *Collector) RecordFrame(dt float32) {
	c.frameDT = append(c.frameDT, float64(dt))
}

// ShouldFlush returns true if enough frames have passed to flush the window.
func (c *Collector) ShouldFlush(frame int) bool {
	return frame-c.windowStartFrame >= c.windowFrames
}

// Flush produces a WindowStats and resets counters for the next window.
// simTime is the total clamped time simulated so far.
func (c *Collector) Flush(frame int, plants, animals int, simTime float64) WindowStats {
	mean, std, p50, p95 := ComputeFrameStats(c.frameDT)

	stats := WindowStats{
		WindowStartFrame: c.windowStartFrame,
		WindowEndFrame:   frame,
		SimTimeSec:       simTime,

		Plants:  plants,
		Animals: animals,

		PlantsPlaced:  c.counts[EventPlantPlaced],
		AnimalsPlaced: c.counts[EventAnimalPlaced],
		PlantsDenied:  c.counts[EventPlantDenied],
		AnimalsDenied: c.counts[EventAnimalDenied],
		PlantsErased:  c.counts[EventPlantErased],
		AnimalsErased: c.counts[EventAnimalErased],
		PlantsSwept:   c.counts[EventPlantSwept],
		AnimalsSwept:  c.counts[EventAnimalSwept],
		TileEdits:     c.counts[EventTileEdit],

		FrameDTMeanMS: mean * 1000,
		FrameDTStdMS:  std * 1000,
		FrameDTP50MS:  p50 * 1000,
		FrameDTP95MS:  p95 * 1000,
	}

	// Reset for next window
	c.windowStartFrame = frame
	c.counts = [numEventTypes]int{}
	c.frameDT = c.frameDT[:0]

	return stats
}

// WindowFrames returns the number of frames per window.
func (c *Collector) WindowFrames() int {
	return c.windowFrames
}
