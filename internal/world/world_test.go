package world

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/samdwyer/cavecrawl/internal/cave"
	"github.com/samdwyer/cavecrawl/internal/entity"
	"github.com/samdwyer/cavecrawl/internal/gamedata"
	"github.com/samdwyer/cavecrawl/internal/grid"
	"github.com/samdwyer/cavecrawl/internal/pathing"
	"github.com/samdwyer/cavecrawl/internal/prng"
	"github.com/samdwyer/cavecrawl/internal/tuning"
)

var (
	testPlayer = &gamedata.CreatureDef{ID: "player", Name: "you", Glyph: "@", Color: "#FFFFFF", HP: 100, AttackStep: 4}
	testKobold = &gamedata.CreatureDef{ID: "kobold", Name: "kobold", Glyph: "k", Color: "#50C878", HP: 1, AttackStep: 4}
	testBear   = &gamedata.CreatureDef{ID: "bear", Name: "bear", Glyph: "B", Color: "#8B4513", HP: 500, AttackStep: 4}
)

// buildWorld parses a layout: '#' rock, '@' the player, 'k' a one-HP
// kobold, 'B' a bear that will not die. Row n of the layout is y = n.
func buildWorld(t *testing.T, layout string) *World {
	t.Helper()
	layout = strings.TrimPrefix(layout, "\n")
	w := newWorld(grid.ParseBool(layout), prng.New(7), 10)

	for y, line := range strings.Split(strings.TrimRight(layout, "\n"), "\n") {
		for x, ch := range line {
			p := grid.Pt(int32(x), int32(y))
			var err error
			switch ch {
			case '@':
				err = w.addPlayer(testPlayer, p)
			case 'k':
				_, err = w.Roster.Add(entity.FromDef(testKobold, p))
			case 'B':
				_, err = w.Roster.Add(entity.FromDef(testBear, p))
			}
			if err != nil {
				t.Fatalf("placing %c at %v: %v", ch, p, err)
			}
		}
	}
	if w.Player == nil {
		t.Fatal("layout has no player")
	}
	w.refreshView()
	return w
}

func TestMovePlayerIntoWall(t *testing.T) {
	w := buildWorld(t, `
#####
#@..#
#####`)

	out := w.MovePlayer(context.Background(), grid.West)

	if out.Action != ActionBlocked {
		t.Errorf("Action = %v, want blocked", out.Action)
	}
	if out.TookTurn() {
		t.Error("bumping a wall should not take a turn")
	}
	if w.Turn != 0 {
		t.Errorf("Turn = %d, want 0", w.Turn)
	}
	if w.Player.Pos != grid.Pt(1, 1) {
		t.Errorf("Player moved to %v", w.Player.Pos)
	}
}

func TestMovePlayerOntoFloor(t *testing.T) {
	w := buildWorld(t, `
#####
#@..#
#####`)

	out := w.MovePlayer(context.Background(), grid.East)

	if out.Action != ActionMoved || !out.TookTurn() {
		t.Errorf("Action = %v, want moved", out.Action)
	}
	if w.Player.Pos != grid.Pt(2, 1) {
		t.Errorf("Player.Pos = %v, want (2,1)", w.Player.Pos)
	}
	if got, ok := w.Roster.At(grid.Pt(2, 1)); !ok || got != w.Player {
		t.Error("roster does not index the player's new cell")
	}
	if w.Turn != 1 {
		t.Errorf("Turn = %d, want 1", w.Turn)
	}
	if !w.Visible.Has(w.Player.Pos) {
		t.Error("player's own cell is not visible")
	}
	w.Visible.Each(func(p grid.Point) {
		if !w.Seen.Has(p) {
			t.Errorf("%v visible but not remembered", p)
		}
	})
}

func TestMovePlayerWaits(t *testing.T) {
	w := buildWorld(t, `
########
#@....B#
########`)

	out := w.MovePlayer(context.Background(), grid.Point{})

	if out.Action != ActionMoved || w.Turn != 1 {
		t.Errorf("wait: Action = %v, Turn = %d, want moved and 1", out.Action, w.Turn)
	}
	if w.Player.Pos != grid.Pt(1, 1) || w.Player.HP != w.Player.MaxHP {
		t.Error("waiting should neither move nor hurt the player")
	}
	if _, ok := w.Roster.At(grid.Pt(5, 1)); !ok {
		t.Error("the bear should use the waited turn to approach")
	}
}

func TestMovePlayerAttacks(t *testing.T) {
	w := buildWorld(t, `
######
#@k..#
######`)

	out := w.MovePlayer(context.Background(), grid.East)

	if out.Action != ActionAttacked {
		t.Fatalf("Action = %v, want attacked", out.Action)
	}
	if w.Player.Pos != grid.Pt(1, 1) {
		t.Errorf("attacking moved the player to %v", w.Player.Pos)
	}
	// a step 4 roll is at least 1, more than a one-HP kobold can take
	if len(out.Messages) == 0 || out.Messages[0] != "you kill kobold." {
		t.Errorf("Messages = %q, want a kill", out.Messages)
	}
	if w.Occupied(grid.Pt(2, 1)) {
		t.Error("dead kobold still on the map")
	}
	if w.Roster.Len() != 1 {
		t.Errorf("Roster.Len() = %d, want 1", w.Roster.Len())
	}
	if w.Turn != 1 {
		t.Errorf("Turn = %d, want 1", w.Turn)
	}
}

func TestCreaturesApproachVisiblePlayer(t *testing.T) {
	w := buildWorld(t, `
###########
#.........#
#.@.....B.#
#.........#
###########`)
	bear, _ := w.Roster.At(grid.Pt(8, 2))

	w.MovePlayer(context.Background(), grid.South)

	if w.Player.Pos != grid.Pt(2, 1) {
		t.Fatalf("Player.Pos = %v, want (2,1)", w.Player.Pos)
	}
	if got := bear.Pos.ManhattanDist(w.Player.Pos); got != 6 {
		t.Errorf("bear is %d steps away, want 6 after closing in", got)
	}
}

func TestCreatureAttacksWhenAdjacent(t *testing.T) {
	w := buildWorld(t, `
######
#..B.#
#.@..#
######`)

	out := w.MovePlayer(context.Background(), grid.South)

	if w.Player.Pos != grid.Pt(2, 1) {
		t.Fatalf("Player.Pos = %v, want (2,1)", w.Player.Pos)
	}
	if w.Player.HP >= w.Player.MaxHP {
		t.Errorf("Player.HP = %d, want damage from the bear", w.Player.HP)
	}
	if len(out.Messages) != 1 || !strings.HasPrefix(out.Messages[0], "bear hits you for ") {
		t.Errorf("Messages = %q, want the bear's hit", out.Messages)
	}
	if bear, _ := w.Roster.At(grid.Pt(3, 1)); bear == nil {
		t.Error("bear should attack in place, not move")
	}
}

func TestCreaturesOutOfSightWait(t *testing.T) {
	w := buildWorld(t, `
#########
#@.#....#
#..#..B.#
#########`)

	w.MovePlayer(context.Background(), grid.North)

	if w.Player.Pos != grid.Pt(1, 2) {
		t.Fatalf("Player.Pos = %v, want (1,2)", w.Player.Pos)
	}
	if !w.Occupied(grid.Pt(6, 2)) {
		t.Error("a bear behind the wall should not move")
	}
	if w.Visible.Has(grid.Pt(6, 2)) || w.Seen.Has(grid.Pt(6, 2)) {
		t.Error("the far room should not be in view")
	}
}

func TestDeadPlayerCannotAct(t *testing.T) {
	w := buildWorld(t, `
#####
#@..#
#####`)
	w.Player.HP = 0

	out := w.MovePlayer(context.Background(), grid.East)

	if out.Action != ActionNone || out.TookTurn() {
		t.Errorf("Action = %v, want none", out.Action)
	}
	if !w.PlayerDead() {
		t.Error("PlayerDead() = false")
	}
}

func TestPathToAndTravel(t *testing.T) {
	w := buildWorld(t, `
#########
#@......#
#.......#
#########`)
	goal := grid.Pt(7, 2)

	path, ok := w.PathTo(goal)
	if !ok {
		t.Fatal("PathTo() found no path across an open room")
	}
	if path.Len() != 7 {
		t.Errorf("path.Len() = %d, want 7", path.Len())
	}

	res := w.Travel(context.Background(), goal)
	if !res.Arrived || res.Steps != 7 {
		t.Errorf("Travel() = %+v, want arrival in 7 steps", res)
	}
	if w.Turn != 7 {
		t.Errorf("Turn = %d, want 7", w.Turn)
	}
}

func TestPathToUnseenGoal(t *testing.T) {
	w := buildWorld(t, `
#########
#@.#....#
#..#....#
#########`)
	goal := grid.Pt(6, 1)

	if _, ok := w.PathTo(goal); ok {
		t.Error("PathTo() into an unseen room should fail")
	}
	if _, ok := w.PathTo(grid.Pt(3, 1)); ok {
		t.Error("PathTo() a wall should fail")
	}

	res := w.Travel(context.Background(), goal)
	if res.Steps != 0 || res.Arrived {
		t.Errorf("Travel() = %+v, want no movement", res)
	}
	if len(res.Messages) != 1 || res.Messages[0] != "You don't know a way there." {
		t.Errorf("Messages = %q", res.Messages)
	}
}

func TestTravelStopsForCreatures(t *testing.T) {
	w := buildWorld(t, `
##########
#@.......#
#.......B#
##########`)

	res := w.Travel(context.Background(), grid.Pt(5, 1))

	if res.Steps != 0 {
		t.Errorf("Steps = %d, want 0 with a bear in view", res.Steps)
	}
	if len(res.Messages) == 0 || res.Messages[0] != "You see a bear and stop." {
		t.Errorf("Messages = %q", res.Messages)
	}
}

func TestTerrainOffMap(t *testing.T) {
	w := buildWorld(t, `
#####
#@..#
#####`)

	tests := []struct {
		p        grid.Point
		want     Terrain
		walkable bool
	}{
		{grid.Pt(1, 1), TerrainFloor, true},
		{grid.Pt(0, 0), TerrainWall, false},
		{grid.Pt(-1, 1), TerrainWall, false},
		{grid.Pt(5, 1), TerrainWall, false},
		{grid.Pt(2, 99), TerrainWall, false},
	}
	for _, tt := range tests {
		if got := w.TerrainAt(tt.p); got != tt.want {
			t.Errorf("TerrainAt(%v) = %c, want %c", tt.p, got, tt.want)
		}
		if got := w.IsWalkable(tt.p); got != tt.walkable {
			t.Errorf("IsWalkable(%v) = %v, want %v", tt.p, got, tt.walkable)
		}
		if got := w.IsOpaque(tt.p); got == tt.walkable {
			t.Errorf("IsOpaque(%v) = %v, want %v", tt.p, got, !tt.walkable)
		}
	}
}

func TestNewReproducible(t *testing.T) {
	cfg := Config{
		Seed:     0xC0FFEE,
		Tuning:   tuning.Default(),
		Registry: gamedata.MustLoadCreatureRegistry(),
	}
	ctx := context.Background()

	w1, err := New(ctx, cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	w2, err := New(ctx, cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if w1.Digest != w2.Digest {
		t.Errorf("Digest mismatch: %x != %x", w1.Digest, w2.Digest)
	}
	if w1.Player.Pos != w2.Player.Pos {
		t.Errorf("Player start mismatch: %v != %v", w1.Player.Pos, w2.Player.Pos)
	}
	c1, c2 := w1.Roster.All(), w2.Roster.All()
	if len(c1) != len(c2) {
		t.Fatalf("Roster size mismatch: %d != %d", len(c1), len(c2))
	}
	for i := range c1 {
		if c1[i].Pos != c2[i].Pos || c1[i].Name != c2[i].Name {
			t.Errorf("creature %d mismatch: %s@%v != %s@%v", i, c1[i].Name, c1[i].Pos, c2[i].Name, c2[i].Pos)
		}
	}
	if w1.Gen != w2.Gen {
		t.Error("generators diverged during setup")
	}
	if w1.SessionID == w2.SessionID {
		t.Error("SessionID should be unique per world")
	}
}

func TestNewPlacement(t *testing.T) {
	tun := tuning.Default()
	w, err := New(context.Background(), Config{Seed: 42, Tuning: tun, Registry: gamedata.MustLoadCreatureRegistry()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if len(w.Terrain) != tun.World.Width*tun.World.Height {
		t.Errorf("Terrain has %d cells, want %d", len(w.Terrain), tun.World.Width*tun.World.Height)
	}
	if !w.IsWalkable(w.Player.Pos) {
		t.Errorf("player starts on rock at %v", w.Player.Pos)
	}
	if !w.Visible.Has(w.Player.Pos) || !w.Seen.Has(w.Player.Pos) {
		t.Error("player's start cell not in view")
	}

	monsters := 0
	for _, c := range w.Roster.All() {
		if c.IsPlayer {
			continue
		}
		monsters++
		if !w.IsWalkable(c.Pos) {
			t.Errorf("%s spawned on rock at %v", c.Name, c.Pos)
		}
		if d := c.Pos.ManhattanDist(w.Player.Pos); d < tun.Spawns.MinPlayerDistance {
			t.Errorf("%s spawned %d steps from the player", c.Name, d)
		}
	}
	if monsters == 0 || monsters > tun.Spawns.Creatures {
		t.Errorf("spawned %d creatures, want 1..%d", monsters, tun.Spawns.Creatures)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	bad := tuning.Default()
	bad.Cave.WallPercent = 0
	_, err := New(context.Background(), Config{Tuning: bad, Registry: gamedata.MustLoadCreatureRegistry()})
	if !errors.Is(err, cave.ErrInvalidParams) {
		t.Errorf("New() error = %v, want cave.ErrInvalidParams", err)
	}

	if _, err := New(context.Background(), Config{Tuning: tuning.Default()}); err == nil {
		t.Error("New() without a registry should fail")
	}

	solid := tuning.Default()
	solid.Cave.WallPercent = 99
	solid.Cave.MaxAttempts = 2
	_, err = New(context.Background(), Config{Tuning: solid, Registry: gamedata.MustLoadCreatureRegistry()})
	if !errors.Is(err, cave.ErrNoLayout) {
		t.Errorf("New() with unmeetable tuning error = %v, want cave.ErrNoLayout", err)
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		action   Action
		expected string
	}{
		{ActionNone, "none"},
		{ActionBlocked, "blocked"},
		{ActionMoved, "moved"},
		{ActionAttacked, "attacked"},
		{Action(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.action.String(); got != tt.expected {
			t.Errorf("Action(%d).String() = %q, want %q", tt.action, got, tt.expected)
		}
	}
}

func TestStepCreatureIntoTakenCell(t *testing.T) {
	w := buildWorld(t, `
#######
#@.kB.#
#######`)
	bear, _ := w.Roster.At(grid.Pt(4, 1))

	// planned before the kobold stepped in the way
	blocked := pathing.Path{grid.Pt(1, 1), grid.Pt(2, 1), grid.Pt(3, 1), grid.Pt(4, 1)}
	if w.stepCreature(bear, blocked) {
		t.Error("stepCreature() into an occupied cell = true, want false")
	}
	if bear.Pos != grid.Pt(4, 1) {
		t.Errorf("bear moved to %v, want it to stay at (4,1)", bear.Pos)
	}

	open := pathing.Path{grid.Pt(1, 1), grid.Pt(2, 1), grid.Pt(3, 1), grid.Pt(4, 1), grid.Pt(5, 1)}
	w.Roster.Move(bear.ID, grid.Pt(5, 1))
	if !w.stepCreature(bear, open) || bear.Pos != grid.Pt(4, 1) {
		t.Errorf("stepCreature() along a free path left the bear at %v", bear.Pos)
	}

	adjacent := pathing.Path{w.Player.Pos, grid.Pt(2, 1)}
	if w.stepCreature(bear, adjacent) {
		t.Error("stepCreature() onto the player = true, want false")
	}
}

func TestPlayerRegenerates(t *testing.T) {
	w := buildWorld(t, `
#####
#@..#
#####`)
	w.regenTurns = 2
	w.Player.TakeDamage(5)

	wantHP := []int{95, 96, 96, 97}
	for i, want := range wantHP {
		w.MovePlayer(context.Background(), grid.Point{})
		if w.Player.HP != want {
			t.Errorf("after turn %d HP = %d, want %d", i+1, w.Player.HP, want)
		}
	}

	w.MovePlayer(context.Background(), grid.West)
	if w.Player.HP != 97 {
		t.Errorf("a wall bump healed the player to %d", w.Player.HP)
	}
}
