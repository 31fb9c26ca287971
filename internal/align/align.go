// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package align provides integer rounding helpers for GPU memory layouts.
package align

import "golang.org/x/exp/constraints"

// RoundUp rounds v up to the next multiple of a.
// A non-positive alignment returns v unchanged.
func RoundUp[T constraints.Integer](v, a T) T {
	if a <= 0 {
		return v
	}
	if r := v % a; r != 0 {
		return v + (a - r)
	}
	return v
}

// IsAligned reports whether v is a multiple of a.
func IsAligned[T constraints.Integer](v, a T) bool {
	return a > 0 && v%a == 0
}
