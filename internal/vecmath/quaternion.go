package vecmath

import "math"

// Quaternion is a unit quaternion (x, y, z, w) representing a 3D rotation.
// Identity is (0, 0, 0, 1).
type Quaternion struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

// IdentityQuaternion is the no-rotation quaternion.
var IdentityQuaternion = Quaternion{0, 0, 0, 1}

// IsFinite reports whether all components are finite.
func (q Quaternion) IsFinite() bool {
	return isFiniteFloat(q.X) && isFiniteFloat(q.Y) && isFiniteFloat(q.Z) && isFiniteFloat(q.W)
}

// Norm returns the quaternion's magnitude.
func (q Quaternion) Norm() float64 {
	return math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
}

// Normalize returns q scaled to unit norm. Falls back to identity if q is
// degenerate (norm below eps), matching the vector-normalize convention of
// never dividing by a near-zero magnitude.
func (q Quaternion) Normalize() Quaternion {
	n := q.Norm()
	if n < 1e-9 {
		return IdentityQuaternion
	}
	inv := 1 / n
	return Quaternion{q.X * inv, q.Y * inv, q.Z * inv, q.W * inv}
}

// Conjugate returns the inverse rotation for a unit quaternion.
func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{-q.X, -q.Y, -q.Z, q.W}
}

// Multiply returns the Hamilton product q * o (apply o then q).
func (q Quaternion) Multiply(o Quaternion) Quaternion {
	return Quaternion{
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
	}
}

// RotateVector applies q's rotation to v.
func (q Quaternion) RotateVector(v Vector3) Vector3 {
	// v' = q * (v, 0) * q_conj, expanded to avoid an intermediate quaternion.
	qv := Vector3{q.X, q.Y, q.Z}
	uv := qv.Cross(v)
	uuv := qv.Cross(uv)
	return v.Add(uv.Scale(2 * q.W)).Add(uuv.Scale(2))
}

// FromAxisAngle builds a unit quaternion representing a rotation of angle
// radians about axis (which need not be pre-normalized; the zero vector
// yields the identity rotation).
func FromAxisAngle(axis Vector3, angle float64) Quaternion {
	a := axis.Normalize()
	if a == Zero3 {
		return IdentityQuaternion
	}
	half := angle / 2
	s := math.Sin(half)
	return Quaternion{a.X * s, a.Y * s, a.Z * s, math.Cos(half)}
}

// SmallAngleError returns 2*vec(target * current^-1), the small-angle
// approximation of the rotation error used to extend the IK residual to
// orientation, per the damped-least-squares orientation term.
func SmallAngleError(target, current Quaternion) Vector3 {
	delta := target.Multiply(current.Conjugate())
	// Ensure shortest-path: flip sign if w is negative.
	if delta.W < 0 {
		delta = Quaternion{-delta.X, -delta.Y, -delta.Z, -delta.W}
	}
	return Vector3{delta.X, delta.Y, delta.Z}.Scale(2)
}
