package vecmath

import (
	"math"
	"testing"
)

func TestVector3_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Vector3
		want Vector3
	}{
		{"unit x stays unit", Vector3{1, 0, 0}, Vector3{1, 0, 0}},
		{"scaled vector normalizes", Vector3{2, 0, 0}, Vector3{1, 0, 0}},
		{"zero vector stays zero", Vector3{0, 0, 0}, Vector3{0, 0, 0}},
		{"near-zero vector falls back to zero", Vector3{1e-12, 0, 0}, Vector3{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 || math.Abs(got.Z-tt.want.Z) > 1e-9 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVector3_Cross(t *testing.T) {
	x := Vector3{1, 0, 0}
	y := Vector3{0, 1, 0}
	z := x.Cross(y)
	want := Vector3{0, 0, 1}
	if z != want {
		t.Errorf("x cross y = %v, want %v", z, want)
	}
}

func TestVector3_IsFinite(t *testing.T) {
	if !((Vector3{1, 2, 3}).IsFinite()) {
		t.Error("finite vector reported non-finite")
	}
	if (Vector3{math.NaN(), 0, 0}).IsFinite() {
		t.Error("NaN vector reported finite")
	}
	if (Vector3{math.Inf(1), 0, 0}).IsFinite() {
		t.Error("Inf vector reported finite")
	}
}
