package prng

import (
	"fmt"
	"math"
)

// RangeInclusive samples uniformly from the closed interval [low, high].
//
// Raw draws above the rejection threshold are discarded instead of being
// folded in with a modulo, so every value in the interval is equally likely.
type RangeInclusive struct {
	base   uint32
	width  uint32
	reject uint32
}

// NewRange creates a sampler for [low, high]. It panics unless low < high.
func NewRange(low, high uint32) RangeInclusive {
	if low >= high {
		panic(fmt.Sprintf("prng: range must go from low to high, got %d..=%d", low, high))
	}
	width := high - low + 1
	if width == 0 {
		// [0, MaxUint32] wraps to zero width; it is the full raw output.
		return RangeInclusive{base: 0, width: 0, reject: math.MaxUint32}
	}
	return RangeInclusive{
		base:   low,
		width:  width,
		reject: (math.MaxUint32/width)*width - 1,
	}
}

// Low returns the smallest possible result.
func (r RangeInclusive) Low() uint32 {
	return r.base
}

// High returns the largest possible result.
func (r RangeInclusive) High() uint32 {
	return r.base + (r.width - 1)
}

// Width returns the number of distinct results. A full-range sampler
// reports zero.
func (r RangeInclusive) Width() uint32 {
	return r.width
}

// RejectThreshold returns the largest raw value Convert accepts.
func (r RangeInclusive) RejectThreshold() uint32 {
	return r.reject
}

// Convert maps a raw draw into the range. It reports false when the draw
// must be rejected.
func (r RangeInclusive) Convert(raw uint32) (uint32, bool) {
	if raw > r.reject {
		return 0, false
	}
	if r.width == 0 {
		return raw, true
	}
	return r.base + raw%r.width, true
}

// RollWith draws from src until a value is accepted.
func (r RangeInclusive) RollWith(src Source) uint32 {
	for {
		if out, ok := r.Convert(src.NextUint32()); ok {
			return out
		}
	}
}

// Explode rolls open-ended: every roll of High adds High to the total and
// rolls again. The result is the first non-maximum roll plus High times the
// number of maximum rolls before it.
func (r RangeInclusive) Explode(src Source) uint32 {
	highest := r.High()
	var explosions uint32
	for {
		out := r.RollWith(src)
		if out != highest {
			return out + explosions*highest
		}
		explosions++
	}
}

// String formats the range as dice notation when it starts at one.
func (r RangeInclusive) String() string {
	if r.base == 1 {
		return fmt.Sprintf("1d%d", r.width)
	}
	return fmt.Sprintf("%d..=%d", r.Low(), r.High())
}
