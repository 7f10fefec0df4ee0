package world

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/zyedidia/generic/mapset"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/cavecrawl/internal/cave"
	"github.com/samdwyer/cavecrawl/internal/combat"
	"github.com/samdwyer/cavecrawl/internal/entity"
	"github.com/samdwyer/cavecrawl/internal/fov"
	"github.com/samdwyer/cavecrawl/internal/gamedata"
	"github.com/samdwyer/cavecrawl/internal/grid"
	"github.com/samdwyer/cavecrawl/internal/prng"
	"github.com/samdwyer/cavecrawl/internal/telemetry"
	"github.com/samdwyer/cavecrawl/internal/tuning"
)

// playerPlacementAttempts bounds the random probes for the player's start
// cell before falling back to a scan.
const playerPlacementAttempts = 1000

// ErrNoFloor is returned when there is no free floor cell for the player.
var ErrNoFloor = errors.New("no free floor cell")

// Config selects the level to build.
type Config struct {
	Seed     uint64
	Tuning   tuning.Tuning
	Registry *gamedata.CreatureRegistry
}

// World is one cave level and everything on it.
type World struct {
	Width, Height int
	Terrain       map[grid.Point]Terrain
	Roster        *entity.Roster
	Player        *entity.Creature

	// Gen is the level's only random source. Generation, spawning and
	// combat all draw from it in turn order, so a seed replays a run.
	Gen prng.PCG32

	Seen    mapset.Set[grid.Point] // cells the player has ever seen
	Visible mapset.Set[grid.Point] // cells the player sees this turn

	Seed      uint64
	SessionID string
	Digest    uint64 // terrain digest, stable for a seed and tuning
	Turn      int

	sightRadius int32
	regenTurns  int
	resolver    *combat.Resolver
}

// New generates a cave from cfg, places the player and spawns creatures.
func New(ctx context.Context, cfg Config) (*World, error) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "world.generate")
	defer span.End()

	startTime := time.Now()
	fail := func(err error) (*World, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("world: %w", err)
	}

	t := cfg.Tuning
	if err := t.Validate(); err != nil {
		return fail(err)
	}
	if cfg.Registry == nil {
		return fail(errors.New("no creature registry"))
	}

	gen := prng.New(cfg.Seed)
	terrain, stats, err := cave.TryGenerate(t.World.Width, t.World.Height, &gen, t.CaveParams())
	if err != nil {
		span.SetAttributes(attribute.Int("cave.attempts", stats.Attempts))
		return fail(err)
	}

	w := newWorld(terrain, gen, t.Sight.Radius)
	w.Seed = cfg.Seed
	w.regenTurns = t.Player.RegenTurns
	if err := w.placePlayer(cfg.Registry.Player()); err != nil {
		return fail(err)
	}
	spawned := w.spawnCreatures(cfg.Registry, t.Spawns)
	w.refreshView()

	span.SetAttributes(
		attribute.String("session.id", w.SessionID),
		attribute.String("world.seed", strconv.FormatUint(cfg.Seed, 10)),
		attribute.Int("world.width", w.Width),
		attribute.Int("world.height", w.Height),
		attribute.Int("cave.attempts", stats.Attempts),
		attribute.Int("cave.floor_cells", stats.FloorCells),
		attribute.String("cave.digest", fmt.Sprintf("%016x", w.Digest)),
		attribute.Int("creatures.spawned", spawned),
		attribute.Int64("world.generation_ms", time.Since(startTime).Milliseconds()),
	)
	return w, nil
}

// newWorld builds an empty level over terrain, true meaning wall.
func newWorld(terrain *grid.Bool, gen prng.PCG32, sightRadius int32) *World {
	w := &World{
		Width:       terrain.Width(),
		Height:      terrain.Height(),
		Terrain:     make(map[grid.Point]Terrain, terrain.Len()),
		Roster:      entity.NewRoster(),
		Gen:         gen,
		Seen:        mapset.New[grid.Point](),
		Visible:     mapset.New[grid.Point](),
		SessionID:   uuid.NewString(),
		Digest:      terrain.Digest(),
		sightRadius: sightRadius,
		resolver:    combat.NewResolver(),
	}
	terrain.Each(func(x, y int, wall bool) {
		t := TerrainFloor
		if wall {
			t = TerrainWall
		}
		w.Terrain[grid.Pt(int32(x), int32(y))] = t
	})
	return w
}

// TerrainAt returns the terrain at p. Everything off the map is wall.
func (w *World) TerrainAt(p grid.Point) Terrain {
	t, ok := w.Terrain[p]
	if !ok {
		return TerrainWall
	}
	return t
}

// IsWalkable reports whether the terrain at p can be walked on. Creatures
// are not considered.
func (w *World) IsWalkable(p grid.Point) bool {
	return w.TerrainAt(p).IsPassable()
}

// IsOpaque reports whether the terrain at p blocks sight.
func (w *World) IsOpaque(p grid.Point) bool {
	return w.TerrainAt(p).IsOpaque()
}

// Occupied reports whether a creature stands on p.
func (w *World) Occupied(p grid.Point) bool {
	_, ok := w.Roster.At(p)
	return ok
}

// PlayerDead reports whether the run is over.
func (w *World) PlayerDead() bool {
	return !w.Player.IsAlive()
}

// randomFreeFloor probes random cells for an unoccupied floor cell that
// satisfies accept.
func (w *World) randomFreeFloor(attempts int, accept func(grid.Point) bool) (grid.Point, bool) {
	xs := prng.NewRange(0, uint32(w.Width-1))
	ys := prng.NewRange(0, uint32(w.Height-1))
	for i := 0; i < attempts; i++ {
		p := grid.Pt(int32(xs.RollWith(&w.Gen)), int32(ys.RollWith(&w.Gen)))
		if w.IsWalkable(p) && !w.Occupied(p) && accept(p) {
			return p, true
		}
	}
	return grid.Point{}, false
}

func (w *World) placePlayer(def *gamedata.CreatureDef) error {
	anywhere := func(grid.Point) bool { return true }
	p, ok := w.randomFreeFloor(playerPlacementAttempts, anywhere)
	if !ok {
		p, ok = w.firstFreeFloor()
	}
	if !ok {
		return ErrNoFloor
	}
	return w.addPlayer(def, p)
}

func (w *World) addPlayer(def *gamedata.CreatureDef, p grid.Point) error {
	player := entity.NewPlayer(def, p)
	if _, err := w.Roster.Add(player); err != nil {
		return err
	}
	w.Player = player
	return nil
}

// firstFreeFloor scans in row order.
func (w *World) firstFreeFloor() (grid.Point, bool) {
	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			p := grid.Pt(int32(x), int32(y))
			if w.IsWalkable(p) && !w.Occupied(p) {
				return p, true
			}
		}
	}
	return grid.Point{}, false
}

// spawnCreatures places up to s.Creatures creatures away from the player.
// A creature that finds no cell within s.PlacementAttempts probes is
// skipped. It returns how many were placed.
func (w *World) spawnCreatures(reg *gamedata.CreatureRegistry, s tuning.Spawns) int {
	farEnough := func(p grid.Point) bool {
		return p.ManhattanDist(w.Player.Pos) >= s.MinPlayerDistance
	}
	spawned := 0
	for i := 0; i < s.Creatures; i++ {
		def := reg.SpawnRandom(&w.Gen)
		if def == nil {
			break
		}
		p, ok := w.randomFreeFloor(s.PlacementAttempts, farEnough)
		if !ok {
			continue
		}
		if _, err := w.Roster.Add(entity.Spawn(def, p, &w.Gen)); err == nil {
			spawned++
		}
	}
	return spawned
}

// refreshView recomputes what the player sees and remembers it.
func (w *World) refreshView() {
	w.Visible = fov.Visible(w.Player.Pos, w.sightRadius, w.IsOpaque)
	w.Visible.Each(func(p grid.Point) {
		w.Seen.Put(p)
	})
}
