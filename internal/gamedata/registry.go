package gamedata

import (
	"errors"

	"github.com/samdwyer/cavecrawl/internal/prng"
)

// CreatureRegistry holds loaded creature definitions and provides spawning
// utilities.
type CreatureRegistry struct {
	player      CreatureDef
	creatures   []CreatureDef
	totalWeight int
}

// NewCreatureRegistry creates a registry from loaded definitions.
func NewCreatureRegistry(file CreaturesFile) *CreatureRegistry {
	totalWeight := 0
	for _, c := range file.Creatures {
		totalWeight += c.SpawnWeight
	}
	return &CreatureRegistry{
		player:      file.Player,
		creatures:   file.Creatures,
		totalWeight: totalWeight,
	}
}

// LoadCreatureRegistry loads and creates a registry from the embedded
// creatures.json.
func LoadCreatureRegistry() (*CreatureRegistry, error) {
	file, err := LoadCreatures()
	if err != nil {
		return nil, err
	}
	if len(file.Creatures) == 0 {
		return nil, errors.New("no creatures loaded from creatures.json")
	}
	return NewCreatureRegistry(file), nil
}

// MustLoadCreatureRegistry loads a registry, panicking on error.
func MustLoadCreatureRegistry() *CreatureRegistry {
	registry, err := LoadCreatureRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// SpawnRandom selects a creature definition by spawn weight, or nil when no
// creature can spawn. It leaves src untouched when there is only one weight
// unit to choose.
func (r *CreatureRegistry) SpawnRandom(src prng.Source) *CreatureDef {
	if r.totalWeight <= 0 {
		return nil
	}

	roll := 0
	if r.totalWeight > 1 {
		roll = int(prng.NewRange(0, uint32(r.totalWeight-1)).RollWith(src))
	}

	cumulative := 0
	for i := range r.creatures {
		cumulative += r.creatures[i].SpawnWeight
		if roll < cumulative {
			return &r.creatures[i]
		}
	}
	return nil
}

// Player returns the player definition.
func (r *CreatureRegistry) Player() *CreatureDef {
	return &r.player
}

// GetByID returns the creature definition with the given ID, or nil if not found.
func (r *CreatureRegistry) GetByID(id string) *CreatureDef {
	for i := range r.creatures {
		if r.creatures[i].ID == id {
			return &r.creatures[i]
		}
	}
	return nil
}

// All returns all spawnable creature definitions.
func (r *CreatureRegistry) All() []CreatureDef {
	return r.creatures
}

// Count returns the number of creature types in the registry.
func (r *CreatureRegistry) Count() int {
	return len(r.creatures)
}
