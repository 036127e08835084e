package game

import "github.com/pthm-cable/terrarium/renderer"

// Draw renders one frame: tiles, the composited shadow layer, entity bodies,
// then the overlay.
func (g *Game) Draw() {
	s := g.surface
	ts := g.tileSize

	s.BeginFrame()
	s.Clear(renderer.Black)
	g.level.Draw(s, ts)

	// Shadows are drawn opaque into their own target and blended once, so
	// overlapping shadows do not darken each other.
	s.SetTarget(g.shadows)
	s.Clear(renderer.Transparent)
	g.level.DrawShadows(s, ts)
	g.plants.DrawShadow(s, ts)
	g.animals.DrawShadow(s, ts)
	s.SetTarget(nil)
	s.Blit(g.shadows, g.shadowAlpha)

	g.plants.Draw(s, ts)
	g.animals.Draw(s, ts)

	if g.overlay != nil {
		g.overlay.Draw(g.Status())
	}
	s.Present()
}
