// Package dice provides the standard dice samplers and the step table that
// turns an abstract difficulty step into an open-ended dice-pool roll.
package dice

import (
	"fmt"

	"github.com/samdwyer/cavecrawl/internal/prng"
)

// Standard dice. Each rolls 1..N.
var (
	D4  = prng.NewRange(1, 4)
	D6  = prng.NewRange(1, 6)
	D8  = prng.NewRange(1, 8)
	D10 = prng.NewRange(1, 10)
	D12 = prng.NewRange(1, 12)
	D20 = prng.NewRange(1, 20)
)

// MaxTableStep is the largest step resolved directly by the table. Higher
// steps are reduced by adding exploding d12s.
const MaxTableStep = 13

// stepReduction is how much each extra d12 takes off an oversized step.
const stepReduction = 7

// Step rolls the dice pool for the given step number.
//
// Steps of zero or below roll nothing. Steps above 13 add one exploding d12
// and drop by 7 until they fall inside the table.
func Step(src prng.Source, step int32) int32 {
	if step < 1 {
		return 0
	}
	var total uint32
	for step > MaxTableStep {
		total += D12.Explode(src)
		step -= stepReduction
	}
	return int32(total + stepTable(src, step))
}

// stepTable resolves a step in [1, 13].
func stepTable(src prng.Source, step int32) uint32 {
	switch step {
	case 1:
		return atLeastOne(D4.Explode(src), 2)
	case 2:
		return atLeastOne(D4.Explode(src), 1)
	case 3:
		return D4.Explode(src)
	case 4:
		return D6.Explode(src)
	case 5:
		return D8.Explode(src)
	case 6:
		return D10.Explode(src)
	case 7:
		return D12.Explode(src)
	case 8:
		return D6.Explode(src) + D6.Explode(src)
	case 9:
		return D8.Explode(src) + D6.Explode(src)
	case 10:
		return D8.Explode(src) + D8.Explode(src)
	case 11:
		return D10.Explode(src) + D8.Explode(src)
	case 12:
		return D10.Explode(src) + D10.Explode(src)
	case 13:
		return D12.Explode(src) + D10.Explode(src)
	default:
		panic(fmt.Sprintf("dice: step %d outside the step table", step))
	}
}

// atLeastOne subtracts penalty from roll, never going below one.
func atLeastOne(roll, penalty uint32) uint32 {
	if roll <= penalty {
		return 1
	}
	return roll - penalty
}

// Roll sums count plain (non-exploding) rolls of r.
func Roll(src prng.Source, count int, r prng.RangeInclusive) int {
	total := 0
	for i := 0; i < count; i++ {
		total += int(r.RollWith(src))
	}
	return total
}

// Describe returns the dice-pool notation for a step, e.g. "d12!+d10!" for
// step 13 or "2d12!+2d6!" for step 22.
func Describe(step int32) string {
	if step < 1 {
		return "0"
	}
	extra := 0
	for step > MaxTableStep {
		extra++
		step -= stepReduction
	}
	pool := stepNames[step]
	switch extra {
	case 0:
		return pool
	case 1:
		return "d12!+" + pool
	default:
		return fmt.Sprintf("%dd12!+%s", extra, pool)
	}
}

var stepNames = [MaxTableStep + 1]string{
	1:  "d4!-2",
	2:  "d4!-1",
	3:  "d4!",
	4:  "d6!",
	5:  "d8!",
	6:  "d10!",
	7:  "d12!",
	8:  "2d6!",
	9:  "d8!+d6!",
	10: "2d8!",
	11: "d10!+d8!",
	12: "2d10!",
	13: "d12!+d10!",
}
