package game

import "github.com/pthm-cable/terrarium/input"

// PlacementMode selects what a left click places.
type PlacementMode uint8

const (
	ModeTiles PlacementMode = iota
	ModePlants
	ModeAnimals
)

func (m PlacementMode) String() string {
	switch m {
	case ModeTiles:
		return "tiles"
	case ModePlants:
		return "plants"
	case ModeAnimals:
		return "animals"
	}
	return "unknown"
}

// Selection is the input state machine: the placement mode, the type chosen
// for each entity mode, and the latched mouse button. The tile type is held
// by the level. Switching mode leaves the other selections untouched.
type Selection struct {
	Mode         PlacementMode
	PlantTypeID  int
	AnimalTypeID int
	MouseDown    input.Button
}

// SelectTiles switches to tile placement.
func (s *Selection) SelectTiles() {
	s.Mode = ModeTiles
}

// SelectPlant switches to plant placement with the given type.
func (s *Selection) SelectPlant(id int) {
	s.Mode = ModePlants
	s.PlantTypeID = id
}

// SelectAnimal switches to animal placement with the given type.
func (s *Selection) SelectAnimal(id int) {
	s.Mode = ModeAnimals
	s.AnimalTypeID = id
}

// Press latches b when no button is held. Only left and right latch; the
// first one pressed wins until release. Returns true if b was latched.
func (s *Selection) Press(b input.Button) bool {
	if s.MouseDown != input.ButtonNone {
		return false
	}
	if b != input.ButtonLeft && b != input.ButtonRight {
		return false
	}
	s.MouseDown = b
	return true
}

// Release clears the latch, whichever button was released.
func (s *Selection) Release() {
	s.MouseDown = input.ButtonNone
}
