// Package combat resolves melee attacks with step dice.
package combat

import (
	"fmt"

	"github.com/samdwyer/cavecrawl/internal/dice"
	"github.com/samdwyer/cavecrawl/internal/prng"
)

// Combatant is the interface for anything that can attack or be attacked.
type Combatant interface {
	GetName() string
	IsAlive() bool
	GetAttackStep() int32
	GetDefense() int
	TakeDamage(amount int) int // Returns actual damage taken
}

// Result contains the outcome of one attack.
type Result struct {
	Roll    int    // Step dice total before defense
	Damage  int    // HP actually removed
	Killed  bool   // Defender died from this attack
	Message string // Human-readable description
}

// Resolver calculates and applies attacks.
type Resolver struct{}

// NewResolver creates a new resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Attack rolls the attacker's step dice, subtracts the defender's defense
// and applies what is left.
func (r *Resolver) Attack(src prng.Source, attacker, defender Combatant) Result {
	roll := int(dice.Step(src, attacker.GetAttackStep()))
	damage := defender.TakeDamage(r.CalculateDamage(roll, defender))

	result := Result{
		Roll:   roll,
		Damage: damage,
		Killed: damage > 0 && !defender.IsAlive(),
	}
	result.Message = describe(attacker.GetName(), defender.GetName(), result)
	return result
}

// CalculateDamage returns the damage a roll would do to defender without
// applying it. Defense can soak a roll completely but never heals.
func (r *Resolver) CalculateDamage(roll int, defender Combatant) int {
	return max(0, roll-defender.GetDefense())
}

func describe(attacker, defender string, res Result) string {
	switch {
	case res.Killed:
		return fmt.Sprintf("%s %s %s.", attacker, verb(attacker, "kill", "kills"), defender)
	case res.Damage > 0:
		return fmt.Sprintf("%s %s %s for %d.", attacker, verb(attacker, "hit", "hits"), defender, res.Damage)
	default:
		return fmt.Sprintf("%s %s %s.", attacker, verb(attacker, "miss", "misses"), defender)
	}
}

// verb picks the second-person form when the player ("you") is acting.
func verb(subject, second, third string) string {
	if subject == "you" {
		return second
	}
	return third
}
