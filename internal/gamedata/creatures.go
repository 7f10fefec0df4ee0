package gamedata

import (
	"fmt"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// CreatureDef defines a creature type loaded from JSON.
type CreatureDef struct {
	ID          string `json:"id"`          // Unique identifier (e.g., "kobold")
	Name        string `json:"name"`        // Display name, lower case (e.g., "kobold")
	Glyph       string `json:"glyph"`       // Single character for rendering
	Color       string `json:"color"`       // Hex color code (e.g., "#50C878")
	HP          int    `json:"hp"`          // Base hit points
	HPDice      int    `json:"hpDice"`      // Number of HPDie rolled on top of HP at spawn
	HPDie       int    `json:"hpDie"`       // Sides on each hit point die
	AttackStep  int32  `json:"attackStep"`  // Damage step rolled on a hit
	Defense     int    `json:"defense"`     // Subtracted from incoming damage
	SpawnWeight int    `json:"spawnWeight"` // Relative spawn frequency
}

// GlyphRune returns the glyph as a rune for rendering.
func (c *CreatureDef) GlyphRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Glyph)
	if r == utf8.RuneError {
		return '?'
	}
	return r
}

// TCellColor returns the color as a tcell.Color.
func (c *CreatureDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(c.Color)
	if err != nil {
		return tcell.ColorWhite
	}
	return color
}

func (c *CreatureDef) validate() error {
	switch {
	case c.ID == "":
		return fmt.Errorf("creature %q has no id", c.Name)
	case utf8.RuneCountInString(c.Glyph) != 1:
		return fmt.Errorf("creature %s: glyph %q must be one character", c.ID, c.Glyph)
	case c.HP < 1:
		return fmt.Errorf("creature %s: hp %d must be positive", c.ID, c.HP)
	case c.HPDice < 0:
		return fmt.Errorf("creature %s: negative hp dice %d", c.ID, c.HPDice)
	case c.HPDice > 0 && c.HPDie < 2:
		return fmt.Errorf("creature %s: hp dice %dd%d need at least two sides", c.ID, c.HPDice, c.HPDie)
	case c.AttackStep < 1:
		return fmt.Errorf("creature %s: attack step %d must be positive", c.ID, c.AttackStep)
	case c.Defense < 0:
		return fmt.Errorf("creature %s: negative defense %d", c.ID, c.Defense)
	case c.SpawnWeight < 0:
		return fmt.Errorf("creature %s: negative spawn weight %d", c.ID, c.SpawnWeight)
	}
	if _, err := ParseHexColor(c.Color); err != nil {
		return fmt.Errorf("creature %s: %w", c.ID, err)
	}
	return nil
}

// CreaturesFile represents the structure of creatures.json.
type CreaturesFile struct {
	Player    CreatureDef   `json:"player"`
	Creatures []CreatureDef `json:"creatures"`
}

// Validate checks every definition and rejects duplicate IDs.
func (f *CreaturesFile) Validate() error {
	if err := f.Player.validate(); err != nil {
		return fmt.Errorf("player: %w", err)
	}
	seen := make(map[string]bool, len(f.Creatures))
	for i := range f.Creatures {
		def := &f.Creatures[i]
		if err := def.validate(); err != nil {
			return err
		}
		if seen[def.ID] {
			return fmt.Errorf("duplicate creature id %q", def.ID)
		}
		seen[def.ID] = true
	}
	return nil
}

// LoadCreatures loads the player and creature definitions from the embedded
// creatures.json file.
func LoadCreatures() (CreaturesFile, error) {
	return Load[CreaturesFile]("creatures.json")
}
