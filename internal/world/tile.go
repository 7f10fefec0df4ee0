// Package world owns a level: its terrain, the creatures on it, what the
// player can see, and the turn that moves them all.
package world

// Terrain represents what fills a single map cell.
type Terrain rune

const (
	// TerrainWall is solid rock. It blocks movement and sight.
	TerrainWall Terrain = '#'
	// TerrainFloor is open cave floor.
	TerrainFloor Terrain = '.'
)

// IsPassable returns true if the terrain can be walked on.
func (t Terrain) IsPassable() bool {
	return t == TerrainFloor
}

// IsOpaque returns true if the terrain stops sight.
func (t Terrain) IsOpaque() bool {
	return t != TerrainFloor
}

// Rune returns the terrain's display character.
func (t Terrain) Rune() rune {
	return rune(t)
}
