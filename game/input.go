package game

import (
	"log/slog"

	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/input"
)

// Key bindings for entity types, by type id.
var (
	plantKeys  = []input.Key{input.KeyQ, input.KeyW, input.KeyE, input.KeyR, input.KeyT}
	animalKeys = []input.Key{input.KeyA, input.KeyS, input.KeyD}
)

// processInput drains pending events, samples the cursor once, and applies
// the held button's action.
func (g *Game) processInput() {
	g.events = g.input.Poll(g.events[:0])
	for _, ev := range g.events {
		switch ev.Kind {
		case input.EventQuit:
			g.running = false
		case input.EventKeyDown:
			g.handleKey(ev.Key)
		case input.EventMouseDown:
			g.selection.Press(ev.Button)
		case input.EventMouseUp:
			g.selection.Release()
		}
	}

	mx, my := g.input.MousePosition()
	g.cursor = components.Position{X: mx / g.tileSize, Y: my / g.tileSize}

	switch g.selection.MouseDown {
	case input.ButtonLeft:
		g.applyPlacement()
	case input.ButtonRight:
		g.removeAtCursor()
	}
}

// handleKey applies a key press to the selection.
func (g *Game) handleKey(k input.Key) {
	if k == input.KeyEscape {
		g.running = false
		return
	}

	if k >= input.KeyOne && k <= input.KeySeven {
		g.level.SetTileTypeIDSelected(int(k - input.KeyOne))
		g.selection.SelectTiles()
		slog.Debug("select", "mode", ModeTiles, "type", g.level.TileTypeIDSelected())
		return
	}
	for id, pk := range plantKeys {
		if k == pk {
			g.selection.SelectPlant(id)
			slog.Debug("select", "mode", ModePlants, "type", id)
			return
		}
	}
	for id, ak := range animalKeys {
		if k == ak {
			g.selection.SelectAnimal(id)
			slog.Debug("select", "mode", ModeAnimals, "type", id)
			return
		}
	}
}
