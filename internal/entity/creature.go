// Package entity provides the creatures that live in the cave, the player
// included, and the roster that owns them.
package entity

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/cavecrawl/internal/dice"
	"github.com/samdwyer/cavecrawl/internal/gamedata"
	"github.com/samdwyer/cavecrawl/internal/grid"
	"github.com/samdwyer/cavecrawl/internal/prng"
)

// Creature is anything that occupies a cell and can fight.
type Creature struct {
	ID       uint64                // Assigned by Roster.Add; zero until then
	Def      *gamedata.CreatureDef // Definition the creature was built from
	Name     string
	Glyph    rune
	Color    tcell.Color
	Pos      grid.Point
	IsPlayer bool

	HP, MaxHP  int
	AttackStep int32
	Defense    int
}

// FromDef creates a creature from a data-driven definition.
func FromDef(def *gamedata.CreatureDef, pos grid.Point) *Creature {
	return &Creature{
		Def:        def,
		Name:       def.Name,
		Glyph:      def.GlyphRune(),
		Color:      def.TCellColor(),
		Pos:        pos,
		HP:         def.HP,
		MaxHP:      def.HP,
		AttackStep: def.AttackStep,
		Defense:    def.Defense,
	}
}

// Spawn creates a creature from def with rolled hit points: the base HP plus
// def.HPDice rolls of a def.HPDie-sided die. Without hit point dice nothing
// is drawn from src.
func Spawn(def *gamedata.CreatureDef, pos grid.Point, src prng.Source) *Creature {
	c := FromDef(def, pos)
	if def.HPDice > 0 {
		c.HP += dice.Roll(src, def.HPDice, prng.NewRange(1, uint32(def.HPDie)))
		c.MaxHP = c.HP
	}
	return c
}

// NewPlayer creates the player from its definition.
func NewPlayer(def *gamedata.CreatureDef, pos grid.Point) *Creature {
	c := FromDef(def, pos)
	c.IsPlayer = true
	return c
}

// GetName returns the creature's display name.
func (c *Creature) GetName() string { return c.Name }

// IsAlive returns true if the creature has HP remaining.
func (c *Creature) IsAlive() bool { return c.HP > 0 }

// GetAttackStep returns the damage step the creature attacks with.
func (c *Creature) GetAttackStep() int32 { return c.AttackStep }

// GetDefense returns the defense stat.
func (c *Creature) GetDefense() int { return c.Defense }

// TakeDamage reduces HP and returns actual damage taken.
func (c *Creature) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := min(amount, c.HP)
	c.HP -= actual
	return actual
}

// Heal restores HP up to MaxHP and returns the amount healed.
func (c *Creature) Heal(amount int) int {
	if amount <= 0 || !c.IsAlive() {
		return 0
	}
	actual := min(amount, c.MaxHP-c.HP)
	c.HP += actual
	return actual
}
