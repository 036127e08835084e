package game

import (
	"log/slog"
	"math"

	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/systems"
	"github.com/pthm-cable/terrarium/telemetry"
)

// applyPlacement runs the left-button action for the current mode.
func (g *Game) applyPlacement() {
	switch g.selection.Mode {
	case ModeTiles:
		g.placeTile(g.cursor)
	case ModePlants:
		g.addPlant(g.selection.PlantTypeID, g.cursor)
	case ModeAnimals:
		g.addAnimal(g.selection.AnimalTypeID, g.cursor)
	}
}

// placeTile writes the selected tile under cursor, then removes every entity
// the edit left on unsuitable ground.
func (g *Game) placeTile(cursor components.Position) {
	tx, ty := cursor.Tile()
	if g.level.PlaceTileTypeIDSelected(tx, ty) {
		g.collector.Record(telemetry.EventTileEdit, 1)
	}
	g.sweep()
}

// sweep removes plants and animals whose tiles no longer suit them.
func (g *Game) sweep() {
	np := g.plants.RemoveInvalid(g.level)
	na := g.animals.RemoveInvalid(g.level)
	if np+na == 0 {
		return
	}
	g.collector.Record(telemetry.EventPlantSwept, np)
	g.collector.Record(telemetry.EventAnimalSwept, na)
	slog.Info("sweep", "plants", np, "animals", na, "frame", g.frame)
}

// addPlant places a plant of typeID in the cell under cursor, jittered around
// the cell centre. Returns false if the position was rejected.
func (g *Game) addPlant(typeID int, cursor components.Position) bool {
	tx, ty := cursor.Tile()
	pos := components.Position{
		X: float32(tx) + 0.5 + (g.rng.Float32()*2-1)*g.jitter,
		Y: float32(ty) + 0.5 + (g.rng.Float32()*2-1)*g.jitter,
	}

	if !systems.PlantPositionOK(pos, typeID, g) {
		g.collector.Record(telemetry.EventPlantDenied, 1)
		slog.Debug("plant_denied", "type", typeID, "x", pos.X, "y", pos.Y)
		return false
	}

	g.plants.Add(systems.NewPlant(g.catalog, typeID, pos))
	g.collector.Record(telemetry.EventPlantPlaced, 1)
	slog.Debug("plant_placed", "type", typeID, "x", pos.X, "y", pos.Y)
	return true
}

// addAnimal places an animal of typeID at cursor with a random heading.
// Returns false if the position was rejected.
func (g *Game) addAnimal(typeID int, cursor components.Position) bool {
	if !systems.AnimalPositionOK(cursor, typeID, g) {
		g.collector.Record(telemetry.EventAnimalDenied, 1)
		slog.Debug("animal_denied", "type", typeID, "x", cursor.X, "y", cursor.Y)
		return false
	}

	heading := g.rng.Float32() * 2 * math.Pi
	g.animals.Add(systems.NewAnimal(g.catalog, typeID, cursor, heading))
	g.collector.Record(telemetry.EventAnimalPlaced, 1)
	slog.Debug("animal_placed", "type", typeID, "x", cursor.X, "y", cursor.Y)
	return true
}

// removeAtCursor erases every plant and animal under the cursor.
func (g *Game) removeAtCursor() {
	np := g.plants.RemoveAtCursor(g.cursor)
	na := g.animals.RemoveAtCursor(g.cursor)
	if np+na == 0 {
		return
	}
	g.collector.Record(telemetry.EventPlantErased, np)
	g.collector.Record(telemetry.EventAnimalErased, na)
	slog.Debug("erased", "plants", np, "animals", na)
}
