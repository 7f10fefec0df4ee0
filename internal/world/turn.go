package world

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/cavecrawl/internal/entity"
	"github.com/samdwyer/cavecrawl/internal/grid"
	"github.com/samdwyer/cavecrawl/internal/pathing"
	"github.com/samdwyer/cavecrawl/internal/telemetry"
)

// Action is what a move request turned into.
type Action int

const (
	// ActionNone means nothing happened because the player is dead.
	ActionNone Action = iota
	// ActionBlocked is a bump into rock. It does not use up the turn.
	ActionBlocked
	// ActionMoved is a step onto open floor.
	ActionMoved
	// ActionAttacked is a step into a creature.
	ActionAttacked
)

// String returns a human-readable action name.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionBlocked:
		return "blocked"
	case ActionMoved:
		return "moved"
	case ActionAttacked:
		return "attacked"
	default:
		return "unknown"
	}
}

// MoveOutcome reports one player move and everything that answered it.
type MoveOutcome struct {
	Action   Action
	Messages []string
}

// TookTurn reports whether the move used up the player's turn.
func (o MoveOutcome) TookTurn() bool {
	return o.Action == ActionMoved || o.Action == ActionAttacked
}

// MovePlayer tries to move the player one cell by delta. Moving into a
// creature attacks it. Moving into rock does nothing and costs no turn.
// Otherwise the turn ends: sight is recomputed and every creature the
// player can see acts. A zero delta waits a turn.
func (w *World) MovePlayer(ctx context.Context, delta grid.Point) MoveOutcome {
	if w.PlayerDead() {
		return MoveOutcome{Action: ActionNone}
	}

	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "world.turn")
	defer span.End()

	target := w.Player.Pos.Add(delta)
	var out MoveOutcome

	if defender, ok := w.Roster.At(target); ok && !defender.IsPlayer {
		res := w.resolver.Attack(&w.Gen, w.Player, defender)
		out.Action = ActionAttacked
		out.Messages = append(out.Messages, res.Message)
		if res.Killed {
			w.Roster.Remove(defender.ID)
		}
		span.SetAttributes(
			attribute.String("turn.target", defender.Name),
			attribute.Int("turn.damage", res.Damage),
			attribute.Bool("turn.killed", res.Killed),
		)
	} else if !w.IsWalkable(target) || w.Roster.Move(w.Player.ID, target) != nil {
		span.SetAttributes(attribute.String("turn.action", ActionBlocked.String()))
		return MoveOutcome{Action: ActionBlocked}
	} else {
		out.Action = ActionMoved
	}

	w.refreshView()
	out.Messages = append(out.Messages, w.creaturesAct()...)
	w.Turn++
	w.regenerate()

	span.SetAttributes(
		attribute.String("turn.action", out.Action.String()),
		attribute.Int("turn.number", w.Turn),
		attribute.Int("player.hp", w.Player.HP),
		attribute.Int("view.visible", w.Visible.Size()),
	)
	return out
}

// regenerate heals the player one hit point every regenTurns turns.
func (w *World) regenerate() {
	if w.regenTurns > 0 && w.Turn%w.regenTurns == 0 {
		w.Player.Heal(1)
	}
}

// creaturesAct gives every creature in view one action, in ID order. Sight
// is symmetric, so a creature the player can see can see the player. It
// attacks when adjacent and otherwise steps along the shortest path.
func (w *World) creaturesAct() []string {
	var messages []string
	for _, c := range w.Roster.All() {
		if w.PlayerDead() {
			break
		}
		if c.IsPlayer || !c.IsAlive() || !w.Visible.Has(c.Pos) {
			continue
		}

		if c.Pos.IsNeighbor(w.Player.Pos) {
			res := w.resolver.Attack(&w.Gen, c, w.Player)
			messages = append(messages, res.Message)
			continue
		}

		if path, ok := pathing.AStar(c.Pos, w.Player.Pos, w.approachable(w.Player.Pos)); ok {
			w.stepCreature(c, path)
		}
	}
	return messages
}

// stepCreature moves c to the next cell of path, which runs from the player
// back to c. It reports whether c moved. A cell taken since the path was
// planned leaves c where it is for this turn.
func (w *World) stepCreature(c *entity.Creature, path pathing.Path) bool {
	next, ok := path.Next()
	if !ok || next == w.Player.Pos {
		return false
	}
	return w.Roster.Move(c.ID, next) == nil
}

// approachable is the walkability a creature uses to reach goal: open floor
// that no other creature stands on.
func (w *World) approachable(goal grid.Point) func(grid.Point) bool {
	return func(p grid.Point) bool {
		return p == goal || (w.IsWalkable(p) && !w.Occupied(p))
	}
}

// PathTo finds a route for the player to goal through cells the player has
// already seen. Creatures block all cells but the goal.
func (w *World) PathTo(goal grid.Point) (pathing.Path, bool) {
	if !w.Seen.Has(goal) || !w.IsWalkable(goal) {
		return nil, false
	}
	approach := w.approachable(goal)
	return pathing.AStar(w.Player.Pos, goal, func(p grid.Point) bool {
		return w.Seen.Has(p) && approach(p)
	})
}

// TravelResult reports how far an auto-travel got.
type TravelResult struct {
	Steps    int
	Arrived  bool
	Messages []string
}

// Travel walks the player toward goal one turn per step. It refuses to start,
// and stops, as soon as a creature is in view or a step does not land.
func (w *World) Travel(ctx context.Context, goal grid.Point) TravelResult {
	tracer := telemetry.Tracer("world")
	ctx, span := tracer.Start(ctx, "world.travel")
	defer span.End()

	var res TravelResult
	path, ok := w.PathTo(goal)
	if !ok {
		res.Messages = append(res.Messages, "You don't know a way there.")
		span.SetAttributes(attribute.Bool("travel.no_path", true))
		return res
	}

	for _, next := range path.Reversed()[1:] {
		if w.PlayerDead() {
			break
		}
		if c := w.creatureInView(); c != nil {
			res.Messages = append(res.Messages, "You see a "+c.Name+" and stop.")
			break
		}
		out := w.MovePlayer(ctx, next.Sub(w.Player.Pos))
		res.Messages = append(res.Messages, out.Messages...)
		if out.Action != ActionMoved {
			break
		}
		res.Steps++
	}
	res.Arrived = w.Player.Pos == goal

	span.SetAttributes(
		attribute.Int("travel.path_len", path.Len()),
		attribute.Int("travel.steps", res.Steps),
		attribute.Bool("travel.arrived", res.Arrived),
	)
	return res
}

// creatureInView returns the first visible creature other than the player.
func (w *World) creatureInView() *entity.Creature {
	for _, c := range w.Roster.All() {
		if !c.IsPlayer && w.Visible.Has(c.Pos) {
			return c
		}
	}
	return nil
}
