package entity

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/samdwyer/cavecrawl/internal/grid"
)

var (
	// ErrOccupied is returned when a creature would share a cell.
	ErrOccupied = errors.New("cell occupied")
	// ErrUnknownCreature is returned for IDs the roster does not hold.
	ErrUnknownCreature = errors.New("unknown creature")
)

// Roster owns every creature on a level. It indexes them by ID and by
// position and hands out IDs from its own counter, so two rosters never
// interfere. IDs start at 1 and are never reused.
type Roster struct {
	nextID uint64
	byID   map[uint64]*Creature
	byPos  map[grid.Point]*Creature
}

// NewRoster creates an empty roster.
func NewRoster() *Roster {
	return &Roster{
		nextID: 1,
		byID:   make(map[uint64]*Creature),
		byPos:  make(map[grid.Point]*Creature),
	}
}

// Add assigns c the next ID and places it at c.Pos.
func (r *Roster) Add(c *Creature) (uint64, error) {
	if other, ok := r.byPos[c.Pos]; ok {
		return 0, fmt.Errorf("add %s at %v: %w by %s", c.Name, c.Pos, ErrOccupied, other.Name)
	}
	c.ID = r.nextID
	r.nextID++
	r.byID[c.ID] = c
	r.byPos[c.Pos] = c
	return c.ID, nil
}

// At returns the creature standing on p.
func (r *Roster) At(p grid.Point) (*Creature, bool) {
	c, ok := r.byPos[p]
	return c, ok
}

// Get returns the creature with the given ID.
func (r *Roster) Get(id uint64) (*Creature, bool) {
	c, ok := r.byID[id]
	return c, ok
}

// Move relocates a creature, keeping both indexes in step.
func (r *Roster) Move(id uint64, to grid.Point) error {
	c, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("move %d: %w", id, ErrUnknownCreature)
	}
	if to == c.Pos {
		return nil
	}
	if other, ok := r.byPos[to]; ok {
		return fmt.Errorf("move %s to %v: %w by %s", c.Name, to, ErrOccupied, other.Name)
	}
	delete(r.byPos, c.Pos)
	c.Pos = to
	r.byPos[to] = c
	return nil
}

// Remove takes a creature off the level. It reports whether it was present.
func (r *Roster) Remove(id uint64) bool {
	c, ok := r.byID[id]
	if !ok {
		return false
	}
	delete(r.byID, id)
	delete(r.byPos, c.Pos)
	return true
}

// All returns the creatures in ID order, which is also the order they act.
func (r *Roster) All() []*Creature {
	out := make([]*Creature, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b *Creature) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// Len returns the number of creatures on the level.
func (r *Roster) Len() int {
	return len(r.byID)
}
