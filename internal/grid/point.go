// Package grid provides integer grid coordinates and dense boolean buffers.
//
// Grids carry no implicit bounds: callers address cells by absolute
// coordinate and treat anything outside their map as wall.
package grid

import "fmt"

// Point is a cell coordinate.
type Point struct {
	X, Y int32
}

// Pt is a convenience constructor for Point.
func Pt(x, y int32) Point { return Point{X: x, Y: y} }

// Unit offsets for the four orthogonal directions. North is +Y.
var (
	North = Point{0, 1}
	South = Point{0, -1}
	East  = Point{1, 0}
	West  = Point{-1, 0}
)

// Add returns the component-wise sum.
func (p Point) Add(o Point) Point {
	return Point{p.X + o.X, p.Y + o.Y}
}

// Sub returns the component-wise difference.
func (p Point) Sub(o Point) Point {
	return Point{p.X - o.X, p.Y - o.Y}
}

// Neighbors returns the four orthogonally adjacent cells.
func (p Point) Neighbors() [4]Point {
	return [4]Point{p.Add(East), p.Add(West), p.Add(North), p.Add(South)}
}

// IsNeighbor reports whether o is orthogonally adjacent to p.
func (p Point) IsNeighbor(o Point) bool {
	return p.ManhattanDist(o) == 1
}

// ManhattanDist is the 4-connected step distance between two cells on an
// open grid.
func (p Point) ManhattanDist(o Point) int32 {
	return abs(p.X-o.X) + abs(p.Y-o.Y)
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

func abs(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
