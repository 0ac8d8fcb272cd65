// Package fk implements the forward kinematics evaluator: composing
// per-joint transforms along a serial chain into per-joint world positions
// and an end-effector pose.
package fk

import (
	"fmt"
	"math"

	"github.com/ext-sakamoro/ALICE-Kinematics-Cloud/internal/kinchain"
	"github.com/ext-sakamoro/ALICE-Kinematics-Cloud/internal/vecmath"
)

// implicitAxes is the default axis convention for implicit-chain mode
// (joint_angles + link_lengths, no explicit chain): the first joint yaws
// about Z, every subsequent joint pitches about Y. Combined with a local
// +X link direction, this is the documented resolution of the spec's open
// question on the implicit-chain axis convention.
var implicitAxes = []vecmath.Vector3{{Z: 1}, {Y: 1}}

// ImplicitChain builds a chain of len(linkLengths) revolute joints using
// the alternating Z, Y, Y, ... axis convention.
func ImplicitChain(linkLengths []float64) kinchain.Chain {
	joints := make([]kinchain.Joint, len(linkLengths))
	for i, l := range linkLengths {
		axis := implicitAxes[1]
		if i == 0 {
			axis = implicitAxes[0]
		}
		joints[i] = kinchain.Joint{Type: kinchain.Revolute, Axis: axis, LinkLength: l}
	}
	return kinchain.Chain{Joints: joints}
}

// Result is the output of an FK evaluation.
type Result struct {
	EndEffectorPose vecmath.Pose
	JointPositions  []vecmath.Vector3 // len N+1; [0] is the base, [N] is the end effector
}

// linkAxis is the local direction a link extends along after its joint's
// rotation has been applied: local +X, per the documented convention.
var linkAxis = vecmath.Vector3{X: 1}

// Evaluate walks chain from base to tip applying joint coordinates q,
// returning per-joint world positions and the end-effector pose.
//
// For a revolute joint i with axis a: the accumulated rotation is updated
// by a rotation of angle q[i] about a (expressed in the current frame),
// then position advances by R * (link_length * localX).
//
// For a prismatic joint i with axis a: position translates by
// (link_length + q[i]) * (R * a); rotation is unchanged.
func Evaluate(chain kinchain.Chain, q []float64) (Result, error) {
	if len(q) != chain.DOF() {
		return Result{}, fmt.Errorf("joint coordinate count %d does not match chain DOF %d", len(q), chain.DOF())
	}
	for i, v := range q {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Result{}, fmt.Errorf("joint coordinate %d is non-finite", i)
		}
	}

	n := chain.DOF()
	positions := make([]vecmath.Vector3, n+1)
	base := vecmath.IdentityPose
	pos, rot := base.Position, base.Orientation
	positions[0] = pos

	for i, j := range chain.Joints {
		switch j.Type {
		case kinchain.Revolute:
			rot = rot.Multiply(vecmath.FromAxisAngle(j.Axis, q[i])).Normalize()
			pos = pos.Add(rot.RotateVector(linkAxis.Scale(j.LinkLength)))
		case kinchain.Prismatic:
			pos = pos.Add(rot.RotateVector(j.Axis.Normalize().Scale(j.LinkLength + q[i])))
		default:
			return Result{}, fmt.Errorf("joint %d has unknown type %q", i, j.Type)
		}
		positions[i+1] = pos
	}

	return Result{
		EndEffectorPose: vecmath.Pose{Position: pos, Orientation: rot},
		JointPositions:  positions,
	}, nil
}
