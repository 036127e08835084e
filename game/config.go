package game

import (
	"time"

	"github.com/pthm-cable/terrarium/input"
	"github.com/pthm-cable/terrarium/renderer"
)

// Options holds the collaborators and run settings for a Game.
type Options struct {
	Seed    int64
	Surface renderer.Surface // required
	Input   input.Source     // required
	Now     func() time.Time // clock source, time.Now if nil
	CostNow func() time.Time // frame cost timing source, time.Now if nil
	Overlay Overlay          // drawn over the bodies layer, optional

	OutputDir string // CSV telemetry and config snapshot, disabled if empty
	MaxFrames int    // stop after this many frames, 0 for no limit
	LogStats  bool   // log each telemetry window
}

// Overlay draws on top of the finished scene, before present.
type Overlay interface {
	Draw(status HUDStatus)
}

// HUDStatus is the state shown by an overlay.
type HUDStatus struct {
	Mode       PlacementMode
	Selected   string // name of the tile, plant or animal type for Mode
	Plants     int
	Animals    int
	CursorX    int // tile under the cursor
	CursorY    int
	MouseDown  string
	Frame      int
	SimTimeSec float64
}
