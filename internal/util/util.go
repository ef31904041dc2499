// Package util collects the small generic helpers the engine leans on,
// generalized from the teacher's own util package.
package util

import "golang.org/x/exp/constraints"

// Filter returns the elements of ts for which fn is true, preserving order.
func Filter[T any](ts []T, fn func(T) bool) []T {
	result := make([]T, 0, len(ts))
	for _, v := range ts {
		if fn(v) {
			result = append(result, v)
		}
	}
	return result
}

// Reduce folds ts into a single accumulated value, left to right.
func Reduce[T, V any](ts []T, acc func(T, V) V, base V) V {
	for _, v := range ts {
		base = acc(v, base)
	}
	return base
}

// Choose is a ternary helper: cond ? a : b.
func Choose[T any](cond bool, a, b T) T {
	if cond {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max[T constraints.Integer](a, b T) T {
	if a > b {
		return a
	}
	return b
}
