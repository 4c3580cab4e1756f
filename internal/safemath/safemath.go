package safemath

import (
	"math"
	"math/bits"
)

// Add64 returns a+b and whether the addition stayed within uint64 range.
func Add64(a, b uint64) (uint64, bool) {
	v, carry := bits.Add64(a, b, 0)
	return v, carry == 0
}

// Mul64 returns a*b and whether the multiplication stayed within uint64 range.
func Mul64(a, b uint64) (uint64, bool) {
	hi, lo := bits.Mul64(a, b)
	return lo, hi == 0
}

// SaturatingAdd64 returns a+b, clamped to math.MaxUint64 on overflow.
// Vote weight accumulators use this so that an extreme tally pins at the
// maximum instead of silently wrapping around.
func SaturatingAdd64(a, b uint64) uint64 {
	v, ok := Add64(a, b)
	if !ok {
		return math.MaxUint64
	}
	return v
}
