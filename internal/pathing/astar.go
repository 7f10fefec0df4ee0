// Package pathing finds routes across the 4-connected grid.
package pathing

import (
	"github.com/zyedidia/generic/heap"
	"github.com/zyedidia/generic/mapset"

	"github.com/samdwyer/cavecrawl/internal/grid"
)

// Path is a route stored goal first: Path[0] is the goal and the last entry
// is the start. Use Reversed for walking order.
type Path []grid.Point

// Len returns the number of steps, one less than the number of cells.
func (p Path) Len() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// Reversed returns a copy in start-to-goal order.
func (p Path) Reversed() Path {
	out := make(Path, len(p))
	for i, pt := range p {
		out[len(p)-1-i] = pt
	}
	return out
}

// Next returns the first step to take from the start, if any.
func (p Path) Next() (grid.Point, bool) {
	if len(p) < 2 {
		return grid.Point{}, false
	}
	return p[len(p)-2], true
}

// openNode is an entry in the open list. Stale entries whose cell has since
// been closed are skipped when popped.
type openNode struct {
	pt grid.Point
	f  int32
}

// AStar finds a shortest route from start to goal moving one orthogonal
// step at a time onto cells for which walkable is true. start itself is not
// tested. It reports false when goal cannot be reached.
//
// Ties between equally promising cells are broken arbitrarily. The
// heuristic is min(|dx|, |dy|), which never overestimates the remaining
// orthogonal distance, so returned paths are shortest.
//
// walkable must not change the map during the search. An unreachable goal
// on an unbounded map never terminates; callers bound the map themselves.
func AStar(start, goal grid.Point, walkable func(grid.Point) bool) (Path, bool) {
	closed := mapset.New[grid.Point]()
	cameFrom := make(map[grid.Point]grid.Point)
	gScore := map[grid.Point]int32{start: 0}

	open := heap.New[openNode](func(a, b openNode) bool { return a.f < b.f })
	open.Push(openNode{pt: start, f: heuristic(start, goal)})

	for open.Size() > 0 {
		node, _ := open.Pop()
		current := node.pt
		if closed.Has(current) {
			continue
		}
		if current == goal {
			return reconstruct(cameFrom, current), true
		}
		closed.Put(current)

		for _, neighbor := range current.Neighbors() {
			if closed.Has(neighbor) || !walkable(neighbor) {
				continue
			}
			tentative := gScore[current] + 1
			if known, ok := gScore[neighbor]; ok && tentative >= known {
				continue
			}
			cameFrom[neighbor] = current
			gScore[neighbor] = tentative
			open.Push(openNode{pt: neighbor, f: tentative + heuristic(neighbor, goal)})
		}
	}
	return nil, false
}

func heuristic(a, b grid.Point) int32 {
	return min(abs(a.X-b.X), abs(a.Y-b.Y))
}

// reconstruct walks cameFrom back from the goal.
func reconstruct(cameFrom map[grid.Point]grid.Point, current grid.Point) Path {
	path := Path{current}
	for {
		prev, ok := cameFrom[current]
		if !ok {
			return path
		}
		path = append(path, prev)
		current = prev
	}
}

func abs(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
