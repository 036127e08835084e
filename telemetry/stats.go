package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of frames.
type WindowStats struct {
	WindowStartFrame int     `csv:"-"`
	WindowEndFrame   int     `csv:"window_end"`
	SimTimeSec       float64 `csv:"sim_time"`

	// Population counts at window end
	Plants  int `csv:"plants"`
	Animals int `csv:"animals"`

	// Edits during window
	PlantsPlaced  int `csv:"plants_placed"`
	AnimalsPlaced int `csv:"animals_placed"`
	PlantsDenied  int `csv:"plants_denied"`
	AnimalsDenied int `csv:"animals_denied"`
	PlantsErased  int `csv:"plants_erased"`
	AnimalsErased int `csv:"animals_erased"`
	PlantsSwept   int `csv:"plants_swept"`
	AnimalsSwept  int `csv:"animals_swept"`
	TileEdits     int `csv:"tile_edits"`

	// Clamped frame dt distribution
	FrameDTMeanMS float64 `csv:"frame_dt_mean_ms"`
	FrameDTStdMS  float64 `csv:"frame_dt_std_ms"`
	FrameDTP50MS  float64 `csv:"frame_dt_p50_ms"`
	FrameDTP95MS  float64 `csv:"frame_dt_p95_ms"`
}

// Percentile returns the p-th empirical quantile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[len(sorted)-1]
	}
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// ComputeFrameStats calculates mean, sample standard deviation, median and
// 95th percentile of frame times.
func ComputeFrameStats(values []float64) (mean, std, p50, p95 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	if n == 1 {
		mean = values[0]
	} else {
		mean, std = stat.MeanStdDev(values, nil)
	}

	// Sort a copy for quantiles
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p50 = Percentile(sorted, 0.50)
	p95 = Percentile(sorted, 0.95)

	return mean, std, p50, p95
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndFrame,
		"sim_time", s.SimTimeSec,
		"plants", s.Plants,
		"animals", s.Animals,
		"plants_placed", s.PlantsPlaced,
		"animals_placed", s.AnimalsPlaced,
		"denied", s.PlantsDenied+s.AnimalsDenied,
		"erased", s.PlantsErased+s.AnimalsErased,
		"swept", s.PlantsSwept+s.AnimalsSwept,
		"tile_edits", s.TileEdits,
		"frame_dt_mean_ms", s.FrameDTMeanMS,
		"frame_dt_std_ms", s.FrameDTStdMS,
		"frame_dt_p95_ms", s.FrameDTP95MS,
	)
}
