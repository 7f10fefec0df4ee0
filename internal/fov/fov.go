// Package fov computes field of view with the precise permissive algorithm.
//
// A cell is visible when some unobstructed line joins any point of the
// origin cell to any point of the target cell. Each quadrant is swept
// outward in shells of equal |dx|+|dy|; the still-open angular ranges are
// kept as views bounded by a shallow and a steep line, and opaque cells
// bend those lines around their corners ("bumps") instead of casting rays.
//
// See http://www.roguebasin.com/index.php?title=Precise_Permissive_Field_of_View
package fov

import (
	"fmt"
	"math"

	"github.com/zyedidia/generic/mapset"

	"github.com/samdwyer/cavecrawl/internal/grid"
)

// PrecisePermissive calls visit once for every cell visible from origin
// within radius, origin first. blocked reports whether a cell stops sight;
// it is called only for cells that are themselves visible.
//
// Neither callback may change the map being viewed. It panics if radius is
// negative or origin±radius would overflow int32.
func PrecisePermissive(origin grid.Point, radius int32, blocked func(grid.Point) bool, visit func(grid.Point)) {
	checkBounds(origin, radius)

	visited := mapset.New[grid.Point]()
	visited.Put(origin)
	visit(origin)
	if radius == 0 {
		return
	}

	for _, dir := range quadrants {
		q := quadrant{
			origin:  origin,
			dir:     dir,
			visited: visited,
			blocked: blocked,
			visit:   visit,
		}
		q.sweep(radius, radius)
	}
}

// Visible collects the cells PrecisePermissive would visit.
func Visible(origin grid.Point, radius int32, blocked func(grid.Point) bool) mapset.Set[grid.Point] {
	out := mapset.New[grid.Point]()
	PrecisePermissive(origin, radius, blocked, func(p grid.Point) { out.Put(p) })
	return out
}

var quadrants = [4]grid.Point{{X: 1, Y: 1}, {X: -1, Y: 1}, {X: -1, Y: -1}, {X: 1, Y: -1}}

func checkBounds(origin grid.Point, radius int32) {
	if radius < 0 {
		panic(fmt.Sprintf("fov: vision radius must be non-negative, got %d", radius))
	}
	r := int64(radius)
	x, y := int64(origin.X), int64(origin.Y)
	if x+r >= math.MaxInt32 || y+r >= math.MaxInt32 || x-r <= math.MinInt32 || y-r <= math.MinInt32 {
		panic(fmt.Sprintf("fov: origin %v with radius %d overflows", origin, radius))
	}
}

// quadrant sweeps one of the four quadrants. Offsets inside it are always
// non-negative; dir maps them back to map coordinates.
type quadrant struct {
	origin  grid.Point
	dir     grid.Point
	visited mapset.Set[grid.Point]
	blocked func(grid.Point) bool
	visit   func(grid.Point)
	views   []*view
}

func (q *quadrant) sweep(extentX, extentY int32) {
	q.views = []*view{newView(
		line{xi: 0, yi: 1, xf: extentX, yf: 0},
		line{xi: 1, yi: 0, xf: 0, yf: extentY},
	)}

	for i := int32(1); i <= extentX+extentY; i++ {
		for j := max(0, i-extentX); j <= min(i, extentY); j++ {
			if len(q.views) == 0 {
				return
			}
			q.visitOffset(i-j, j)
		}
	}
}

// visitOffset resolves the cell at the given quadrant offset against the
// active views.
func (q *quadrant) visitOffset(ox, oy int32) {
	topLeft := corner{ox, oy + 1}
	bottomRight := corner{ox + 1, oy}

	// Views are ordered from steep to shallow. Skip views that lie wholly
	// beyond this cell; stop if the cell is beyond the next view.
	idx := 0
	for {
		if idx >= len(q.views) {
			return
		}
		v := q.views[idx]
		if v.steep.belowOrCollinear(bottomRight) {
			idx++
		} else if v.shallow.aboveOrCollinear(topLeft) {
			return
		} else {
			break
		}
	}

	target := grid.Pt(q.origin.X+ox*q.dir.X, q.origin.Y+oy*q.dir.Y)
	if !q.visited.Has(target) {
		q.visited.Put(target)
		q.visit(target)
	}

	if !q.blocked(target) {
		return
	}

	v := q.views[idx]
	shallowHits := v.shallow.above(bottomRight)
	steepHits := v.steep.below(topLeft)
	switch {
	case shallowHits && steepHits:
		// The cell fills the whole view.
		q.removeView(idx)
	case shallowHits:
		v.addShallowBump(topLeft)
		q.checkView(idx)
	case steepHits:
		v.addSteepBump(bottomRight)
		q.checkView(idx)
	default:
		// The cell sits inside the view and splits it in two. The shallow
		// half at idx+1 is bumped first so removing it leaves idx valid.
		q.insertView(idx, v.clone())
		q.views[idx+1].addShallowBump(topLeft)
		q.checkView(idx + 1)
		q.views[idx].addSteepBump(bottomRight)
		q.checkView(idx)
	}
}

// checkView drops the view at idx if its lines have pinched together along
// one of the quadrant's axes.
func (q *quadrant) checkView(idx int) {
	v := q.views[idx]
	if v.shallow.collinearLine(v.steep) &&
		(v.shallow.collinear(corner{0, 1}) || v.shallow.collinear(corner{1, 0})) {
		q.removeView(idx)
	}
}

func (q *quadrant) insertView(idx int, v *view) {
	q.views = append(q.views, nil)
	copy(q.views[idx+1:], q.views[idx:])
	q.views[idx] = v
}

func (q *quadrant) removeView(idx int) {
	copy(q.views[idx:], q.views[idx+1:])
	q.views[len(q.views)-1] = nil
	q.views = q.views[:len(q.views)-1]
}
