// Package game provides the main game loop and state management.
package game

// State represents the current game state.
type State int

const (
	// StateExplore is normal play: the player moves and creatures answer.
	StateExplore State = iota
	// StateDead means the player has died. Only regenerate and quit work.
	StateDead
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateExplore:
		return "explore"
	case StateDead:
		return "dead"
	default:
		return "unknown"
	}
}
