// Package tuning holds the numbers that shape a run: map size, cave
// roughness, sight radius and how many creatures are spawned.
package tuning

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/samdwyer/cavecrawl/internal/cave"
)

//go:embed default.yaml
var defaultYAML []byte

type Tuning struct {
	World  World  `yaml:"world"`
	Cave   Cave   `yaml:"cave"`
	Sight  Sight  `yaml:"sight"`
	Spawns Spawns `yaml:"spawns"`
	Player Player `yaml:"player"`
}

type World struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type Cave struct {
	WallPercent   int     `yaml:"wall_percent"`
	SmoothPasses  int     `yaml:"smooth_passes"`
	SeedAttempts  int     `yaml:"seed_attempts"`
	MinFloorRatio float64 `yaml:"min_floor_ratio"`
	MaxAttempts   int     `yaml:"max_attempts"`
}

type Sight struct {
	Radius int32 `yaml:"radius"`
}

type Player struct {
	RegenTurns int `yaml:"regen_turns"` // turns per hit point healed; 0 turns healing off
}

type Spawns struct {
	Creatures         int   `yaml:"creatures"`
	MinPlayerDistance int32 `yaml:"min_player_distance"`
	PlacementAttempts int   `yaml:"placement_attempts"`
}

// Default returns the built-in tuning.
func Default() Tuning {
	var t Tuning
	if err := decode(defaultYAML, &t); err != nil {
		panic(fmt.Sprintf("tuning: embedded default.yaml: %v", err))
	}
	return t
}

// Load reads the YAML file at path over the defaults and validates the result.
func Load(path string) (Tuning, error) {
	t := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("tuning %s: %w", path, err)
	}
	if err := decode(raw, &t); err != nil {
		return t, fmt.Errorf("tuning %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("tuning %s: %w", path, err)
	}
	return t, nil
}

// decode overlays raw onto t. Unknown keys are rejected so a typo does not
// silently fall back to a default.
func decode(raw []byte, t *Tuning) error {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(t); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// CaveParams converts the cave section for the generator.
func (t Tuning) CaveParams() cave.Params {
	return cave.Params{
		WallPercent:   t.Cave.WallPercent,
		SmoothPasses:  t.Cave.SmoothPasses,
		SeedAttempts:  t.Cave.SeedAttempts,
		MinFloorRatio: t.Cave.MinFloorRatio,
		MaxAttempts:   t.Cave.MaxAttempts,
	}
}

// Validate checks the values a run cannot start without.
func (t Tuning) Validate() error {
	if t.World.Width < cave.MinDimension || t.World.Height < cave.MinDimension {
		return fmt.Errorf("world %dx%d is smaller than %dx%d", t.World.Width, t.World.Height, cave.MinDimension, cave.MinDimension)
	}
	if err := t.CaveParams().Validate(); err != nil {
		return err
	}
	if t.Sight.Radius < 1 {
		return fmt.Errorf("sight radius %d must be at least 1", t.Sight.Radius)
	}
	if t.Spawns.Creatures < 0 {
		return fmt.Errorf("creature count %d is negative", t.Spawns.Creatures)
	}
	if t.Spawns.MinPlayerDistance < 0 {
		return fmt.Errorf("min player distance %d is negative", t.Spawns.MinPlayerDistance)
	}
	if t.Spawns.PlacementAttempts < 1 {
		return fmt.Errorf("placement attempts %d must be at least 1", t.Spawns.PlacementAttempts)
	}
	if t.Player.RegenTurns < 0 {
		return fmt.Errorf("regen turns %d is negative", t.Player.RegenTurns)
	}
	return nil
}
