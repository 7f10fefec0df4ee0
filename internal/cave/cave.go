// Package cave generates connected cave layouts with a cellular automaton.
//
// Generation seeds random noise, smooths it into cavern shapes, then keeps
// only the floor region connected to a random seed cell. Layouts whose
// connected floor covers less than the configured share of the grid are
// thrown away and generated again from fresh noise.
package cave

import (
	"errors"
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"github.com/samdwyer/cavecrawl/internal/grid"
	"github.com/samdwyer/cavecrawl/internal/prng"
)

// MinDimension is the smallest width or height Generate accepts. Smaller
// grids smooth to solid rock almost every time.
const MinDimension = 6

// MaxFloorRatio is the largest MinFloorRatio Validate accepts. The four
// corner cells always smooth to wall, so a ratio near 1 can never be met on
// a small grid; 0.8 leaves room even at MinDimension.
const MaxFloorRatio = 0.8

// ErrInvalidParams is returned by Params.Validate.
var ErrInvalidParams = errors.New("invalid cave params")

// ErrNoLayout is returned by TryGenerate when every allowed layout fell
// short of MinFloorRatio.
var ErrNoLayout = errors.New("no layout reached the floor ratio")

// Params tunes the generator. DefaultParams matches the classic 45% / 5
// pass cave.
type Params struct {
	WallPercent   int     // chance (1-100) a noise cell starts as wall
	SmoothPasses  int     // automaton passes over the noise
	SeedAttempts  int     // random probes for a floor cell before giving up on a layout
	MinFloorRatio float64 // share of the grid the connected floor must cover
	MaxAttempts   int     // layouts to try before giving up; 0 tries forever
}

// DefaultParams returns the standard generation parameters.
func DefaultParams() Params {
	return Params{
		WallPercent:   45,
		SmoothPasses:  5,
		SeedAttempts:  100,
		MinFloorRatio: 0.5,
	}
}

// Validate checks that the params can produce a cave.
func (p Params) Validate() error {
	switch {
	case p.WallPercent < 1 || p.WallPercent > 99:
		return fmt.Errorf("%w: wall percent %d outside 1-99", ErrInvalidParams, p.WallPercent)
	case p.SmoothPasses < 0:
		return fmt.Errorf("%w: negative smooth passes %d", ErrInvalidParams, p.SmoothPasses)
	case p.SeedAttempts < 1:
		return fmt.Errorf("%w: seed attempts %d must be positive", ErrInvalidParams, p.SeedAttempts)
	case p.MinFloorRatio <= 0 || p.MinFloorRatio > MaxFloorRatio:
		return fmt.Errorf("%w: min floor ratio %v outside (0,%v]", ErrInvalidParams, p.MinFloorRatio, MaxFloorRatio)
	case p.MaxAttempts < 0:
		return fmt.Errorf("%w: negative max attempts %d", ErrInvalidParams, p.MaxAttempts)
	}
	return nil
}

// Stats describes how a layout was produced.
type Stats struct {
	Attempts   int // layouts generated, including the accepted one
	FloorCells int // connected floor cells in the accepted layout
}

// Generate builds a width×height cave with DefaultParams. In the result
// true is wall and false is floor; every floor cell is reachable from every
// other through orthogonal floor steps.
func Generate(width, height int, gen *prng.PCG32) *grid.Bool {
	out, _ := GenerateWithParams(width, height, gen, DefaultParams())
	return out
}

// GenerateWithParams is Generate with explicit parameters and statistics.
//
// It panics where TryGenerate would return an error. With MaxAttempts 0 the
// retry loop has no cap; with sane params the expected number of attempts
// is small.
func GenerateWithParams(width, height int, gen *prng.PCG32, p Params) (*grid.Bool, Stats) {
	out, stats, err := TryGenerate(width, height, gen, p)
	if err != nil {
		panic(fmt.Sprintf("cave: %v", err))
	}
	return out, stats
}

// TryGenerate builds a cave like GenerateWithParams but reports bad input
// and exhausted attempts as errors. On ErrNoLayout, Stats still counts the
// layouts tried.
func TryGenerate(width, height int, gen *prng.PCG32, p Params) (*grid.Bool, Stats, error) {
	if width < MinDimension || height < MinDimension {
		return nil, Stats{}, fmt.Errorf("%w: %dx%d is below the %dx%d minimum",
			ErrInvalidParams, width, height, MinDimension, MinDimension)
	}
	if err := p.Validate(); err != nil {
		return nil, Stats{}, err
	}

	bufA := grid.NewBool(width, height)
	bufB := grid.NewBool(width, height)
	out := grid.NewBool(width, height)
	need := p.MinFloorRatio * float64(width*height)

	for attempt := 1; p.MaxAttempts == 0 || attempt <= p.MaxAttempts; attempt++ {
		seedNoise(bufA, gen, p.WallPercent)
		smoothed := smooth(bufA, bufB, p.SmoothPasses)
		copied := floodCopy(smoothed, out, gen, p.SeedAttempts)
		if float64(copied) >= need {
			return out, Stats{Attempts: attempt, FloorCells: copied}, nil
		}
	}
	return nil, Stats{Attempts: p.MaxAttempts}, fmt.Errorf("%w after %d attempts", ErrNoLayout, p.MaxAttempts)
}

// seedNoise fills buf with independent walls at wallPercent.
func seedNoise(buf *grid.Bool, gen *prng.PCG32, wallPercent int) {
	d100 := prng.NewRange(1, 100)
	for y := 0; y < buf.Height(); y++ {
		for x := 0; x < buf.Width(); x++ {
			buf.Set(x, y, d100.RollWith(gen) <= uint32(wallPercent))
		}
	}
}

// smooth runs the automaton passes, ping-ponging between a and b, and
// returns whichever buffer holds the final pass.
func smooth(a, b *grid.Bool, passes int) *grid.Bool {
	src, dst := a, b
	for i := 0; i < passes; i++ {
		caveCopy(src, dst)
		src, dst = dst, src
	}
	return src
}

// caveCopy writes one automaton step of src into dst. A cell becomes wall
// when its 3×3 block holds at least 5 walls, or its 5×5 block holds at most
// one, which breaks up wide open areas.
func caveCopy(src, dst *grid.Bool) {
	for y := 0; y < src.Height(); y++ {
		for x := 0; x < src.Width(); x++ {
			dst.Set(x, y, rangeCount(src, x, y, 1) >= 5 || rangeCount(src, x, y, 2) <= 1)
		}
	}
}

// rangeCount counts walls in the square of the given radius around (x, y),
// the centre included. Cells off the grid count as wall.
func rangeCount(buf *grid.Bool, x, y, radius int) int {
	total := 0
	for yy := y - radius; yy <= y+radius; yy++ {
		for xx := x - radius; xx <= x+radius; xx++ {
			if buf.At(xx, yy, true) {
				total++
			}
		}
	}
	return total
}

// floodCopy resets dst to solid wall and carves into it the floor region of
// src connected to a randomly chosen floor cell. It returns the number of
// cells carved, zero when no floor cell was found within attempts probes.
func floodCopy(src, dst *grid.Bool, gen *prng.PCG32, attempts int) int {
	dst.Fill(true)

	start, ok := randomFloor(src, gen, attempts)
	if !ok {
		return 0
	}

	visited := mapset.New[grid.Point]()
	visited.Put(start)
	queue := []grid.Point{start}
	copied := 0
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		dst.Set(int(current.X), int(current.Y), false)
		copied++

		for _, n := range current.Neighbors() {
			if visited.Has(n) {
				continue
			}
			if wall := src.At(int(n.X), int(n.Y), true); wall {
				continue
			}
			visited.Put(n)
			queue = append(queue, n)
		}
	}
	return copied
}

// randomFloor probes random cells for a floor cell.
func randomFloor(buf *grid.Bool, gen *prng.PCG32, attempts int) (grid.Point, bool) {
	xs := prng.NewRange(0, uint32(buf.Width()-1))
	ys := prng.NewRange(0, uint32(buf.Height()-1))
	for i := 0; i < attempts; i++ {
		x := int(xs.RollWith(gen))
		y := int(ys.RollWith(gen))
		if wall, _ := buf.Get(x, y); !wall {
			return grid.Pt(int32(x), int32(y)), true
		}
	}
	return grid.Point{}, false
}
