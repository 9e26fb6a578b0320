// Package mathx provides small integer helpers for duty-cycle maths.
package mathx

import "golang.org/x/exp/constraints"

// Clamp limits v to [lo, hi]. If lo > hi, the bounds are swapped.
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if hi < lo {
		lo, hi = hi, lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Scale maps x in [0, inMax] to [0, outMax] with 32-bit intermediates,
// truncating toward zero. Inputs above inMax clamp to outMax.
func Scale(x, inMax, outMax uint16) uint16 {
	if inMax == 0 {
		return 0
	}
	if x > inMax {
		return outMax
	}
	return uint16(uint32(x) * uint32(outMax) / uint32(inMax))
}
