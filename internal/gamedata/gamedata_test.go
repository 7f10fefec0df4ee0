package gamedata

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/cavecrawl/internal/prng"
)

func TestLoadCreatures(t *testing.T) {
	file, err := LoadCreatures()
	if err != nil {
		t.Fatalf("Failed to load creatures: %v", err)
	}

	if len(file.Creatures) != 4 {
		t.Errorf("Expected 4 creatures, got %d", len(file.Creatures))
	}
	if file.Player.GlyphRune() != '@' {
		t.Errorf("Expected player glyph '@', got %c", file.Player.GlyphRune())
	}

	expectedIDs := map[string]bool{"cave_rat": false, "kobold": false, "cave_bear": false, "ooze": false}
	for _, c := range file.Creatures {
		if _, ok := expectedIDs[c.ID]; ok {
			expectedIDs[c.ID] = true
		}
	}
	for id, found := range expectedIDs {
		if !found {
			t.Errorf("Expected creature %q not found", id)
		}
	}
}

func TestCreatureRegistry(t *testing.T) {
	registry, err := LoadCreatureRegistry()
	if err != nil {
		t.Fatalf("Failed to load registry: %v", err)
	}

	if registry.Count() != 4 {
		t.Errorf("Expected 4 creature types, got %d", registry.Count())
	}

	kobold := registry.GetByID("kobold")
	if kobold == nil {
		t.Fatal("Kobold not found by ID")
	}
	if kobold.Name != "kobold" {
		t.Errorf("Expected name 'kobold', got %q", kobold.Name)
	}
	if registry.GetByID("dragon") != nil {
		t.Error("GetByID(dragon) should be nil")
	}
	if registry.Player().ID != "player" {
		t.Errorf("Player().ID = %q, want %q", registry.Player().ID, "player")
	}
}

func TestSpawnRandomDeterministic(t *testing.T) {
	registry := MustLoadCreatureRegistry()

	gen1 := prng.New(12345)
	gen2 := prng.New(12345)
	for i := 0; i < 20; i++ {
		a := registry.SpawnRandom(&gen1)
		b := registry.SpawnRandom(&gen2)
		if a == nil || b == nil {
			t.Fatalf("Spawn %d returned nil", i)
		}
		if a.ID != b.ID {
			t.Errorf("Spawn %d mismatch: %s != %s", i, a.ID, b.ID)
		}
	}
}

func TestSpawnRandomFollowsWeights(t *testing.T) {
	registry := NewCreatureRegistry(CreaturesFile{Creatures: []CreatureDef{
		{ID: "common", SpawnWeight: 9},
		{ID: "never", SpawnWeight: 0},
		{ID: "rare", SpawnWeight: 1},
	}})

	gen := prng.New(7)
	counts := map[string]int{}
	for i := 0; i < 10000; i++ {
		counts[registry.SpawnRandom(&gen).ID]++
	}

	if counts["never"] != 0 {
		t.Errorf("zero-weight creature spawned %d times", counts["never"])
	}
	if counts["common"] < 8500 || counts["common"] > 9500 {
		t.Errorf("common spawned %d/10000 times, want about 9000", counts["common"])
	}
	if counts["rare"] < 700 || counts["rare"] > 1300 {
		t.Errorf("rare spawned %d/10000 times, want about 1000", counts["rare"])
	}
}

func TestSpawnRandomEdgeWeights(t *testing.T) {
	gen := prng.New(1)

	empty := NewCreatureRegistry(CreaturesFile{})
	if got := empty.SpawnRandom(&gen); got != nil {
		t.Errorf("SpawnRandom on empty registry = %v, want nil", got)
	}

	single := NewCreatureRegistry(CreaturesFile{Creatures: []CreatureDef{{ID: "only", SpawnWeight: 1}}})
	before := gen.State()
	if got := single.SpawnRandom(&gen); got == nil || got.ID != "only" {
		t.Errorf("SpawnRandom on single weight = %v, want only", got)
	}
	if gen.State() != before {
		t.Error("a single weight unit should not draw from the generator")
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input string
		want  tcell.Color
		valid bool
	}{
		{"#FF0000", tcell.NewRGBColor(255, 0, 0), true},
		{"FF0000", tcell.NewRGBColor(255, 0, 0), true},
		{"#00ff00", tcell.NewRGBColor(0, 255, 0), true},
		{"#0000FF", tcell.NewRGBColor(0, 0, 255), true},
		{"#A0825A", tcell.NewRGBColor(0xA0, 0x82, 0x5A), true},
		{"#000000", tcell.NewRGBColor(0, 0, 0), true},
		{"invalid", tcell.ColorDefault, false},
		{"#FFF", tcell.ColorDefault, false},
		{"#GG0000", tcell.ColorDefault, false},
		{"#+12345", tcell.ColorDefault, false},
	}

	for _, tt := range tests {
		got, err := ParseHexColor(tt.input)
		if tt.valid && err != nil {
			t.Errorf("ParseHexColor(%q) should be valid, got error: %v", tt.input, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("ParseHexColor(%q) should be invalid, got no error", tt.input)
		}
		if got != tt.want {
			t.Errorf("ParseHexColor(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestCreatureDefMethods(t *testing.T) {
	def := CreatureDef{
		ID:          "test",
		Name:        "test creature",
		Glyph:       "T",
		Color:       "#FF0000",
		HP:          10,
		AttackStep:  5,
		Defense:     2,
		SpawnWeight: 50,
	}

	if def.GlyphRune() != 'T' {
		t.Errorf("Expected glyph 'T', got %c", def.GlyphRune())
	}
	if got := def.TCellColor(); got != tcell.NewRGBColor(255, 0, 0) {
		t.Errorf("TCellColor() = %v, want red", got)
	}

	def.Color = "nope"
	if got := def.TCellColor(); got != tcell.ColorWhite {
		t.Errorf("TCellColor() with a bad color = %v, want white fallback", got)
	}
	def.Glyph = ""
	if def.GlyphRune() != '?' {
		t.Errorf("Expected fallback glyph '?', got %c", def.GlyphRune())
	}
}

func TestLoadFSValidates(t *testing.T) {
	valid := `{"id":"x","name":"x","glyph":"x","color":"#123456","hp":1,"attackStep":1,"defense":0,"spawnWeight":1}`
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"ok", `{"player":` + valid + `,"creatures":[` + valid + `]}`, ""},
		{"duplicate id", `{"player":` + valid + `,"creatures":[` + valid + `,` + valid + `]}`, "duplicate"},
		{"player glyph", `{"player":{"id":"p","glyph":"","color":"#FFFFFF","hp":1,"attackStep":1},"creatures":[]}`, "player"},
		{"zero step", `{"player":` + valid + `,"creatures":[{"id":"y","glyph":"y","color":"#FFFFFF","hp":1,"attackStep":0}]}`, "attack step"},
		{"hp die too small", `{"player":` + valid + `,"creatures":[{"id":"y","glyph":"y","color":"#FFFFFF","hp":1,"hpDice":2,"hpDie":1,"attackStep":1}]}`, "two sides"},
		{"negative hp dice", `{"player":` + valid + `,"creatures":[{"id":"y","glyph":"y","color":"#FFFFFF","hp":1,"hpDice":-1,"attackStep":1}]}`, "negative hp dice"},
		{"bad color", `{"player":` + valid + `,"creatures":[{"id":"y","glyph":"y","color":"red","hp":1,"attackStep":1}]}`, "hex color"},
		{"bad json", `{"player":`, "parse JSON"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{"creatures.json": {Data: []byte(tt.body)}}
			_, err := LoadFS[CreaturesFile](fsys, "creatures.json")
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("LoadFS() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("LoadFS() error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load[CreaturesFile]("missing.json"); err == nil {
		t.Error("Load(missing.json) should fail")
	}
}
