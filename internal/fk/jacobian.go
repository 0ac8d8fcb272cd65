package fk

import (
	"fmt"

	"github.com/ext-sakamoro/ALICE-Kinematics-Cloud/internal/kinchain"
	"github.com/ext-sakamoro/ALICE-Kinematics-Cloud/internal/vecmath"
)

// Jacobian holds the position (and, when orientation is tracked, angular
// velocity) sensitivity of the end effector to each joint coordinate. Pos
// and Ang are each length-N slices of Vector3 columns; Ang is nil when
// orientation was not requested.
type Jacobian struct {
	Pos []vecmath.Vector3
	Ang []vecmath.Vector3 // nil unless orientation tracking was requested
}

// Frames holds, for each joint, its world-frame origin (position before
// that joint's own transform is applied) and world-frame axis, plus the
// resulting end-effector position.
type Frames struct {
	Origins []vecmath.Vector3
	Axes    []vecmath.Vector3
	Tip     vecmath.Vector3
}

// JointFrames walks the chain once, recording each joint's origin and
// world-frame axis prior to applying its own coordinate. Used by both the
// analytical Jacobian and the CCD fallback, which need the same per-joint
// geometry.
func JointFrames(chain kinchain.Chain, q []float64) (Frames, error) {
	n := chain.DOF()
	if len(q) != n {
		return Frames{}, fmt.Errorf("joint coordinate count %d does not match chain DOF %d", len(q), n)
	}

	base := vecmath.IdentityPose
	pos, rot := base.Position, base.Orientation
	origins := make([]vecmath.Vector3, n)
	worldAxes := make([]vecmath.Vector3, n)

	for i, j := range chain.Joints {
		origins[i] = pos
		worldAxes[i] = rot.RotateVector(j.Axis.Normalize())

		switch j.Type {
		case kinchain.Revolute:
			rot = rot.Multiply(vecmath.FromAxisAngle(j.Axis, q[i])).Normalize()
			pos = pos.Add(rot.RotateVector(linkAxis.Scale(j.LinkLength)))
		case kinchain.Prismatic:
			pos = pos.Add(rot.RotateVector(j.Axis.Normalize().Scale(j.LinkLength + q[i])))
		default:
			return Frames{}, fmt.Errorf("joint %d has unknown type %q", i, j.Type)
		}
	}

	return Frames{Origins: origins, Axes: worldAxes, Tip: pos}, nil
}

// AnalyticalJacobian computes the Jacobian in closed form: for a revolute
// joint i with world-frame axis a_i, J_pos_i = a_i x (p_tip - p_i) and
// J_ang_i = a_i; for a prismatic joint, J_pos_i = a_i and J_ang_i = 0.
func AnalyticalJacobian(chain kinchain.Chain, q []float64, withOrientation bool) (Jacobian, error) {
	n := chain.DOF()
	frames, err := JointFrames(chain, q)
	if err != nil {
		return Jacobian{}, err
	}
	origins, worldAxes, tip := frames.Origins, frames.Axes, frames.Tip

	posJac := make([]vecmath.Vector3, n)
	var angJac []vecmath.Vector3
	if withOrientation {
		angJac = make([]vecmath.Vector3, n)
	}

	for i := 0; i < n; i++ {
		switch chain.Joints[i].Type {
		case kinchain.Revolute:
			posJac[i] = worldAxes[i].Cross(tip.Sub(origins[i]))
			if withOrientation {
				angJac[i] = worldAxes[i]
			}
		case kinchain.Prismatic:
			posJac[i] = worldAxes[i]
			if withOrientation {
				angJac[i] = vecmath.Zero3
			}
		}
	}

	return Jacobian{Pos: posJac, Ang: angJac}, nil
}

// NumericalJacobian computes the position Jacobian via central differences
// with step h, for comparison against AnalyticalJacobian in tests and as
// a fallback when a future joint type has no closed form.
func NumericalJacobian(chain kinchain.Chain, q []float64, h float64) ([]vecmath.Vector3, error) {
	n := chain.DOF()
	if len(q) != n {
		return nil, fmt.Errorf("joint coordinate count %d does not match chain DOF %d", len(q), n)
	}

	cols := make([]vecmath.Vector3, n)
	perturbed := make([]float64, n)
	copy(perturbed, q)

	for i := 0; i < n; i++ {
		perturbed[i] = q[i] + h
		plus, err := Evaluate(chain, perturbed)
		if err != nil {
			return nil, err
		}
		perturbed[i] = q[i] - h
		minus, err := Evaluate(chain, perturbed)
		if err != nil {
			return nil, err
		}
		perturbed[i] = q[i]

		cols[i] = plus.EndEffectorPose.Position.Sub(minus.EndEffectorPose.Position).Scale(1 / (2 * h))
	}

	return cols, nil
}
