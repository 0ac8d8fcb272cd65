package vecmath

import (
	"math"
	"testing"
)

func TestQuaternion_RotateVector(t *testing.T) {
	tests := []struct {
		name  string
		axis  Vector3
		angle float64
		v     Vector3
		want  Vector3
	}{
		{"90deg about Z rotates +X to +Y", Vector3{0, 0, 1}, math.Pi / 2, Vector3{1, 0, 0}, Vector3{0, 1, 0}},
		{"identity leaves vector unchanged", Vector3{0, 0, 1}, 0, Vector3{1, 2, 3}, Vector3{1, 2, 3}},
		{"180deg about X flips Y and Z", Vector3{1, 0, 0}, math.Pi, Vector3{0, 1, 1}, Vector3{0, -1, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := FromAxisAngle(tt.axis, tt.angle)
			got := q.RotateVector(tt.v)
			if got.Sub(tt.want).Norm() > 1e-9 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQuaternion_Normalize(t *testing.T) {
	q := Quaternion{2, 0, 0, 0}
	got := q.Normalize()
	if math.Abs(got.Norm()-1) > 1e-9 {
		t.Errorf("normalized quaternion has norm %v, want 1", got.Norm())
	}
}

func TestQuaternion_MultiplyIdentity(t *testing.T) {
	q := FromAxisAngle(Vector3{0, 1, 0}, 0.7)
	got := q.Multiply(IdentityQuaternion)
	if math.Abs(got.X-q.X) > 1e-12 || math.Abs(got.W-q.W) > 1e-12 {
		t.Errorf("q * identity = %v, want %v", got, q)
	}
}

func TestSmallAngleError_SameOrientationIsZero(t *testing.T) {
	q := FromAxisAngle(Vector3{0, 0, 1}, 0.3)
	e := SmallAngleError(q, q)
	if e.Norm() > 1e-9 {
		t.Errorf("error between identical orientations = %v, want ~0", e)
	}
}
