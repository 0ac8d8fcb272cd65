package ik

import (
	"math"

	"github.com/ext-sakamoro/ALICE-Kinematics-Cloud/internal/fk"
	"github.com/ext-sakamoro/ALICE-Kinematics-Cloud/internal/kinchain"
	"github.com/ext-sakamoro/ALICE-Kinematics-Cloud/internal/vecmath"
)

// ccdSweep performs one cyclic-coordinate-descent pass: for each joint from
// tip to base, it picks the 1-DOF update that minimizes distance to target
// in closed form, holding every other joint fixed.
func ccdSweep(chain kinchain.Chain, q []float64, target vecmath.Vector3) []float64 {
	n := chain.DOF()
	out := make([]float64, n)
	copy(out, q)

	for i := n - 1; i >= 0; i-- {
		frames, err := fk.JointFrames(chain, out)
		if err != nil {
			return out
		}
		origin := frames.Origins[i]
		axis := frames.Axes[i]
		tip := frames.Tip

		joint := chain.Joints[i]
		switch joint.Type {
		case kinchain.Revolute:
			delta := ccdRevoluteAngle(origin, axis, tip, target)
			out[i] = joint.ClampCoordinate(out[i] + delta)
		case kinchain.Prismatic:
			delta := target.Sub(tip).Dot(axis)
			out[i] = joint.ClampCoordinate(out[i] + delta)
		}
	}

	return out
}

// ccdRevoluteAngle returns the rotation about axis (through origin) that
// best aligns the vector to tip with the vector to target, projecting both
// onto the plane perpendicular to axis.
func ccdRevoluteAngle(origin, axis, tip, target vecmath.Vector3) float64 {
	toTip := tip.Sub(origin)
	toTarget := target.Sub(origin)

	pTip := toTip.Sub(axis.Scale(toTip.Dot(axis)))
	pTarget := toTarget.Sub(axis.Scale(toTarget.Dot(axis)))

	if pTip.Norm() < 1e-9 || pTarget.Norm() < 1e-9 {
		return 0
	}
	pTip = pTip.Normalize()
	pTarget = pTarget.Normalize()

	cosA := pTip.Dot(pTarget)
	sinA := axis.Dot(pTip.Cross(pTarget))
	return math.Atan2(sinA, cosA)
}
