package game

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/cavecrawl/internal/gamedata"
	"github.com/samdwyer/cavecrawl/internal/grid"
	"github.com/samdwyer/cavecrawl/internal/telemetry"
	"github.com/samdwyer/cavecrawl/internal/tuning"
	"github.com/samdwyer/cavecrawl/internal/ui"
	"github.com/samdwyer/cavecrawl/internal/world"
)

const helpMessage = "Arrows or hjkl move, click to travel, r for a new cave, q quits."

// command is what a key press asks for.
type command int

const (
	cmdNone command = iota
	cmdMove
	cmdRegenerate
	cmdQuit
)

// Game holds the entire game state.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	tuning   tuning.Tuning
	registry *gamedata.CreatureRegistry
	world    *world.World
	seed     uint64
	state    State
	message  string
	running  bool
}

// New creates a new game instance on the terminal.
func New(cfg Config) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	g, err := newGame(cfg, screen)
	if err != nil {
		screen.Close()
		return nil, err
	}
	return g, nil
}

func newGame(cfg Config, screen *ui.Screen) (*Game, error) {
	t, err := cfg.loadTuning()
	if err != nil {
		return nil, err
	}
	registry, err := gamedata.LoadCreatureRegistry()
	if err != nil {
		return nil, err
	}

	return &Game{
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		tuning:   t,
		registry: registry,
		seed:     cfg.seed(),
		state:    StateExplore,
		running:  true,
	}, nil
}

// Run executes the main game loop.
func (g *Game) Run(ctx context.Context) error {
	defer g.screen.Close()

	if err := g.newLevel(ctx, g.seed); err != nil {
		return err
	}

	for g.running {
		g.renderer.Render(g.world, g.message)
		g.handleInput(ctx)
	}
	return nil
}

// newLevel replaces the current cave with one built from seed.
func (g *Game) newLevel(ctx context.Context, seed uint64) error {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.init")
	defer span.End()

	w, err := world.New(ctx, world.Config{
		Seed:     seed,
		Tuning:   g.tuning,
		Registry: g.registry,
	})
	if err != nil {
		span.RecordError(err)
		return err
	}

	g.world = w
	g.seed = seed
	g.state = StateExplore
	g.message = helpMessage

	span.SetAttributes(
		attribute.String("game.seed", strconv.FormatUint(seed, 10)),
		attribute.Int("player.x", int(w.Player.Pos.X)),
		attribute.Int("player.y", int(w.Player.Pos.Y)),
		attribute.Int("creatures", w.Roster.Len()-1),
	)
	return nil
}

// nextSeed draws the seed for the following cave from the current one, so a
// run of regenerations replays from the first seed.
func (g *Game) nextSeed() uint64 {
	hi := uint64(g.world.Gen.NextUint32())
	lo := uint64(g.world.Gen.NextUint32())
	return hi<<32 | lo
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case nil:
		g.running = false
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			x, y := ev.Position()
			g.travel(ctx, ui.MapPos(g.world, x, y))
		}
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	cmd, delta := decodeKey(ev.Key(), ev.Rune())
	g.apply(ctx, cmd, delta)
}

// decodeKey maps a key to a command. Up is north.
func decodeKey(key tcell.Key, ch rune) (command, grid.Point) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return cmdQuit, grid.Point{}
	case tcell.KeyUp:
		return cmdMove, grid.North
	case tcell.KeyDown:
		return cmdMove, grid.South
	case tcell.KeyLeft:
		return cmdMove, grid.West
	case tcell.KeyRight:
		return cmdMove, grid.East
	case tcell.KeyRune:
		switch ch {
		case 'q', 'Q':
			return cmdQuit, grid.Point{}
		case 'r', 'R':
			return cmdRegenerate, grid.Point{}
		case 'k':
			return cmdMove, grid.North
		case 'j':
			return cmdMove, grid.South
		case 'h':
			return cmdMove, grid.West
		case 'l':
			return cmdMove, grid.East
		}
	}
	return cmdNone, grid.Point{}
}

func (g *Game) apply(ctx context.Context, cmd command, delta grid.Point) {
	switch cmd {
	case cmdQuit:
		g.running = false
	case cmdRegenerate:
		if err := g.newLevel(ctx, g.nextSeed()); err != nil {
			g.message = err.Error()
		}
	case cmdMove:
		g.tryMove(ctx, delta)
	}
}

// tryMove attempts to move the player by the given delta.
func (g *Game) tryMove(ctx context.Context, delta grid.Point) {
	if g.state != StateExplore {
		return
	}
	out := g.world.MovePlayer(ctx, delta)
	if out.TookTurn() {
		g.message = strings.Join(out.Messages, " ")
	}
	g.checkDeath()
}

// travel walks toward goal until something interrupts.
func (g *Game) travel(ctx context.Context, goal grid.Point) {
	if g.state != StateExplore {
		return
	}
	res := g.world.Travel(ctx, goal)
	g.message = strings.Join(res.Messages, " ")
	g.checkDeath()
}

func (g *Game) checkDeath() {
	if g.world.PlayerDead() {
		g.state = StateDead
		g.message = fmt.Sprintf("%s You die on turn %d. r for a new cave, q quits.",
			g.message, g.world.Turn)
	}
}
