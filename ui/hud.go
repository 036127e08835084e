package ui

import (
	"fmt"
	"image/color"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/terrarium/game"
)

const statusBarHeight = 24

// Swatch is a named colour shown in the palette legend.
type Swatch struct {
	Key   string
	Name  string
	Color color.RGBA
}

// HUD renders the palette legend and a raygui status bar. It implements
// game.Overlay.
type HUD struct {
	renderer      *Renderer
	width, height int32

	tiles   []Swatch
	plants  []Swatch
	animals []Swatch
}

// NewHUD creates a HUD for a screen of the given size. The swatch lists are
// shown in key order.
func NewHUD(width, height int32, tiles, plants, animals []Swatch) *HUD {
	return &HUD{
		renderer: NewRenderer(),
		width:    width,
		height:   height,
		tiles:    tiles,
		plants:   plants,
		animals:  animals,
	}
}

// Draw renders the HUD for one frame.
func (h *HUD) Draw(st game.HUDStatus) {
	h.drawLegend(st)

	gui.StatusBar(
		rl.Rectangle{X: 0, Y: float32(h.height - statusBarHeight), Width: float32(h.width), Height: statusBarHeight},
		StatusLine(st),
	)
}

func (h *HUD) drawLegend(st game.HUDStatus) {
	r := h.renderer
	pad := r.Theme.Padding
	rows := int32(len(h.tiles)+len(h.plants)+len(h.animals)) + 5
	panelW := int32(170)
	panelH := rows*r.Theme.LineHeight + pad*2

	x, y := pad, pad
	r.DrawPanel(x, y, panelW, panelH)
	x += pad
	y += pad

	y = r.DrawLabelValue(x, y, "Plants", fmt.Sprint(st.Plants), false)
	y = r.DrawLabelValue(x, y, "Animals", fmt.Sprint(st.Animals), false)
	y += 4

	sections := []struct {
		title  string
		mode   game.PlacementMode
		swatch []Swatch
	}{
		{"Tiles", game.ModeTiles, h.tiles},
		{"Plants", game.ModePlants, h.plants},
		{"Animals", game.ModeAnimals, h.animals},
	}
	for _, sec := range sections {
		y = r.DrawSectionHeader(x, y, sec.title)
		for _, sw := range sec.swatch {
			label := sw.Key + "  " + sw.Name
			if st.Mode == sec.mode && sw.Name == st.Selected {
				label += "  <"
			}
			y = r.DrawColorSwatch(x, y, label, sw.Color)
		}
	}
}

// StatusLine formats the status bar text.
func StatusLine(st game.HUDStatus) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", strings.ToUpper(st.Mode.String()), st.Selected)
	fmt.Fprintf(&b, " | tile %d,%d", st.CursorX, st.CursorY)
	if st.MouseDown != "none" && st.MouseDown != "" {
		fmt.Fprintf(&b, " | %s held", st.MouseDown)
	}
	fmt.Fprintf(&b, " | frame %d | %.1fs", st.Frame, st.SimTimeSec)
	return b.String()
}

// KeyLabels returns the key names bound to n consecutive type ids.
func KeyLabels(keys string, n int) []string {
	out := make([]string, 0, n)
	for i, k := range keys {
		if i >= n {
			break
		}
		out = append(out, string(k))
	}
	return out
}
