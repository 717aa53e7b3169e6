package utils

import "math"

// Checked int64 arithmetic for escrowed amounts. Overflow is reported, never
// wrapped: a false return must abort the enclosing operation.

// CheckedAdd returns a+b and whether the addition stayed in range.
func CheckedAdd(a, b int64) (int64, bool) {
	if b > 0 && a > math.MaxInt64-b {
		return 0, false
	}
	if b < 0 && a < math.MinInt64-b {
		return 0, false
	}
	return a + b, true
}

// CheckedSub returns a-b and whether the subtraction stayed in range.
func CheckedSub(a, b int64) (int64, bool) {
	if b < 0 && a > math.MaxInt64+b {
		return 0, false
	}
	if b > 0 && a < math.MinInt64+b {
		return 0, false
	}
	return a - b, true
}

// CheckedMul returns a*b and whether the multiplication stayed in range.
func CheckedMul(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == math.MinInt64 && b == -1) || (b == math.MinInt64 && a == -1) {
		return 0, false
	}
	p := a * b
	if p/b != a {
		return 0, false
	}
	return p, true
}
