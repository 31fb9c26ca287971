// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package align

import "testing"

func TestRoundUp(t *testing.T) {
	tests := []struct {
		v, a, want int
	}{
		{0, 16, 0},
		{1, 16, 16},
		{15, 16, 16},
		{16, 16, 16},
		{17, 16, 32},
		{76, 16, 80},
		{5, 0, 5},
		{5, -4, 5},
	}

	for _, tt := range tests {
		if got := RoundUp(tt.v, tt.a); got != tt.want {
			t.Errorf("RoundUp(%d, %d) = %d, want %d", tt.v, tt.a, got, tt.want)
		}
	}
}

func TestRoundUpUnsigned(t *testing.T) {
	if got := RoundUp(uint32(33), uint32(16)); got != 48 {
		t.Errorf("RoundUp(33, 16) = %d, want 48", got)
	}
}

func TestIsAligned(t *testing.T) {
	if !IsAligned(64, 16) {
		t.Error("64 should be 16-aligned")
	}
	if IsAligned(20, 16) {
		t.Error("20 should not be 16-aligned")
	}
	if IsAligned(16, 0) {
		t.Error("zero alignment should never report aligned")
	}
}
