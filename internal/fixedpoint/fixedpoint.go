// Package fixedpoint provides the integer math primitives the
// deterministic simulation core builds on. Nothing here touches a
// float; every operation uses explicit 64-bit intermediates so results
// are bit-identical across 32-bit and 64-bit targets.
package fixedpoint

import "rollback-core/internal/simerr"

// Scale defines the fixed-point unit: "1.0 world unit" is stored as
// Scale. Angles and percentages use the same milli-unit convention.
const Scale int32 = 1000

// Mul multiplies two fixed-point values, scaling the result back down
// through a 64-bit intermediate to avoid overflow.
func Mul(a, b int32) int32 {
	return int32((int64(a) * int64(b)) / int64(Scale))
}

// Div divides two fixed-point values. b == 0 is caller misuse and is
// never reachable from step; it returns ErrDivideByZero rather than
// panicking.
func Div(a, b int32) (int32, error) {
	if b == 0 {
		return 0, simerr.ErrDivideByZero
	}
	return int32((int64(a) * int64(Scale)) / int64(b)), nil
}

// Sqrt computes an integer square root via Newton iteration. n <= 0
// returns 0. The result is deterministic and never uses a hardware
// sqrt instruction.
func Sqrt(n int32) int32 {
	if n <= 0 {
		return 0
	}

	x := int64(n)
	guess := x
	if guess > 1 {
		guess = x/2 + 1
	}

	for {
		next := (guess + x/guess) / 2
		if next >= guess {
			break
		}
		guess = next
	}

	return int32(guess)
}

// SqrtI64 is Sqrt over a 64-bit domain, for callers whose intermediate
// (e.g. a squared distance) can overflow int32 — knockback direction
// normalization in particular. n <= 0 returns 0.
func SqrtI64(n int64) int32 {
	if n <= 0 {
		return 0
	}

	x := n
	guess := x
	if guess > 1 {
		guess = x/2 + 1
	}

	for {
		next := (guess + x/guess) / 2
		if next >= guess {
			break
		}
		guess = next
	}

	return int32(guess)
}

// Abs returns the absolute value of a.
func Abs(a int32) int32 {
	if a < 0 {
		return -a
	}
	return a
}

// Min returns the smaller of a and b.
func Min(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

// Clamp restricts v to the inclusive range [lo, hi].
func Clamp(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Sign returns -1, 0, or 1 according to the sign of v.
func Sign(v int32) int32 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
