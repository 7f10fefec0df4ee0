package fov

// corner is a lattice point in quadrant-local coordinates. Cell (x, y)
// spans corners (x, y) to (x+1, y+1).
type corner struct {
	x, y int32
}

// line runs from (xi, yi) to (xf, yf) in quadrant-local coordinates.
type line struct {
	xi, yi, xf, yf int32
}

func (l line) dx() int64 { return int64(l.xf) - int64(l.xi) }
func (l line) dy() int64 { return int64(l.yf) - int64(l.yi) }

// relativeSlope is positive when c lies below the line, negative when
// above and zero when collinear.
func (l line) relativeSlope(c corner) int64 {
	return l.dy()*(int64(l.xf)-int64(c.x)) - l.dx()*(int64(l.yf)-int64(c.y))
}

func (l line) below(c corner) bool            { return l.relativeSlope(c) > 0 }
func (l line) belowOrCollinear(c corner) bool { return l.relativeSlope(c) >= 0 }
func (l line) above(c corner) bool            { return l.relativeSlope(c) < 0 }
func (l line) aboveOrCollinear(c corner) bool { return l.relativeSlope(c) <= 0 }
func (l line) collinear(c corner) bool        { return l.relativeSlope(c) == 0 }

// collinearLine reports whether both endpoints of o lie on l.
func (l line) collinearLine(o line) bool {
	return l.collinear(corner{o.xi, o.yi}) && l.collinear(corner{o.xf, o.yf})
}

// view is an angular range still open to sight. Bumps are kept newest
// first.
type view struct {
	shallow      line
	steep        line
	shallowBumps []corner
	steepBumps   []corner
}

func newView(shallow, steep line) *view {
	return &view{shallow: shallow, steep: steep}
}

func (v *view) clone() *view {
	return &view{
		shallow:      v.shallow,
		steep:        v.steep,
		shallowBumps: append([]corner(nil), v.shallowBumps...),
		steepBumps:   append([]corner(nil), v.steepBumps...),
	}
}

// addShallowBump swings the shallow line up to pass through c, then pulls
// its start point onto any steep bump it would otherwise cut across.
func (v *view) addShallowBump(c corner) {
	v.shallow.xf, v.shallow.yf = c.x, c.y
	v.shallowBumps = append([]corner{c}, v.shallowBumps...)
	for _, b := range v.steepBumps {
		if v.shallow.above(b) {
			v.shallow.xi, v.shallow.yi = b.x, b.y
		}
	}
}

// addSteepBump is the mirror of addShallowBump.
func (v *view) addSteepBump(c corner) {
	v.steep.xf, v.steep.yf = c.x, c.y
	v.steepBumps = append([]corner{c}, v.steepBumps...)
	for _, b := range v.shallowBumps {
		if v.steep.below(b) {
			v.steep.xi, v.steep.yi = b.x, b.y
		}
	}
}
