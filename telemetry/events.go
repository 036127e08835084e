// Package telemetry counts sandbox edits per window of frames, summarises
// frame timing, and writes both to CSV.
package telemetry

// EventType identifies a counted sandbox event.
type EventType uint8

const (
	EventPlantPlaced EventType = iota
	EventAnimalPlaced
	EventPlantDenied
	EventAnimalDenied
	EventPlantErased
	EventAnimalErased
	EventPlantSwept
	EventAnimalSwept
	EventTileEdit
	numEventTypes
)

var eventNames = [numEventTypes]string{
	"plant_placed",
	"animal_placed",
	"plant_denied",
	"animal_denied",
	"plant_erased",
	"animal_erased",
	"plant_swept",
	"animal_swept",
	"tile_edit",
}

func (e EventType) String() string {
	if e < numEventTypes {
		return eventNames[e]
	}
	return "unknown"
}
