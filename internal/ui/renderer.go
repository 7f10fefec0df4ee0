package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/cavecrawl/internal/dice"
	"github.com/samdwyer/cavecrawl/internal/grid"
	"github.com/samdwyer/cavecrawl/internal/world"
)

var (
	wallStyle       = tcell.StyleDefault.Foreground(tcell.NewRGBColor(155, 75, 0))
	floorStyle      = tcell.StyleDefault.Foreground(tcell.NewRGBColor(128, 128, 128))
	rememberedStyle = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
	statusStyle     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	messageStyle    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// ScreenPos maps a map cell to a screen cell. The map's +Y is north, so
// rows are flipped.
func ScreenPos(w *world.World, p grid.Point) (int, int) {
	return int(p.X), w.Height - 1 - int(p.Y)
}

// Render draws remembered terrain dimmed, visible terrain and creatures in
// color, then a status line with the player's attack dice and msg below the
// map.
func (r *Renderer) Render(w *world.World, msg string) {
	r.screen.Clear()

	w.Seen.Each(func(p grid.Point) {
		t := w.TerrainAt(p)
		style := rememberedStyle
		if w.Visible.Has(p) {
			style = r.getTerrainStyle(t)
		}
		x, y := ScreenPos(w, p)
		r.screen.SetContent(x, y, t.Rune(), style)
	})

	for _, c := range w.Roster.All() {
		if !w.Visible.Has(c.Pos) {
			continue
		}
		style := tcell.StyleDefault.Foreground(c.Color)
		if c.IsPlayer {
			style = style.Bold(true)
		}
		x, y := ScreenPos(w, c.Pos)
		r.screen.SetContent(x, y, c.Glyph, style)
	}

	status := fmt.Sprintf("HP %d/%d  Atk %s  Turn %d  Seed %d",
		w.Player.HP, w.Player.MaxHP, dice.Describe(w.Player.AttackStep), w.Turn, w.Seed)
	r.screen.DrawText(0, w.Height, status, statusStyle)
	r.screen.DrawText(0, w.Height+1, msg, messageStyle)

	r.screen.Show()
}

// getTerrainStyle returns the style for terrain in view.
func (r *Renderer) getTerrainStyle(t world.Terrain) tcell.Style {
	switch t {
	case world.TerrainWall:
		return wallStyle
	case world.TerrainFloor:
		return floorStyle
	default:
		return tcell.StyleDefault
	}
}

// MapPos is the inverse of ScreenPos.
func MapPos(w *world.World, x, y int) grid.Point {
	return grid.Pt(int32(x), int32(w.Height-1-y))
}
