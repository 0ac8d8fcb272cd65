package api

import (
	"fmt"

	"github.com/ext-sakamoro/ALICE-Kinematics-Cloud/internal/fk"
	"github.com/ext-sakamoro/ALICE-Kinematics-Cloud/internal/kinchain"
)

// resolveChain turns a chainSpec into a concrete chain: by preset id, by
// an explicit joint list, or (implicit mode) by link_lengths. Failing
// those, it builds an implicit chain of 0.1 m links from joint_count, or
// else from the caller-supplied jointCount.
func resolveChain(spec chainSpec, jointCount int) (kinchain.Chain, error) {
	switch {
	case spec.ChainID != "":
		preset, ok := kinchain.PresetByID(spec.ChainID)
		if !ok {
			return kinchain.Chain{}, fmt.Errorf("unknown chain_id %q", spec.ChainID)
		}
		return preset.Chain, nil

	case len(spec.Chain) > 0:
		joints := make([]kinchain.Joint, len(spec.Chain))
		for i, j := range spec.Chain {
			joint := kinchain.Joint{
				Axis:       j.Axis,
				LinkLength: j.LinkLength,
			}
			switch j.Type {
			case string(kinchain.Revolute):
				joint.Type = kinchain.Revolute
			case string(kinchain.Prismatic):
				joint.Type = kinchain.Prismatic
			default:
				return kinchain.Chain{}, fmt.Errorf("joint %d has unknown type %q", i, j.Type)
			}
			if j.Limits != nil {
				joint.Limits = &kinchain.Limits{Lo: j.Limits.Lo, Hi: j.Limits.Hi}
			}
			joints[i] = joint
		}
		return kinchain.Chain{Joints: joints}, nil

	case len(spec.LinkLengths) > 0:
		return fk.ImplicitChain(spec.LinkLengths), nil

	case spec.JointCount > 0:
		lengths := make([]float64, spec.JointCount)
		for i := range lengths {
			lengths[i] = 0.1
		}
		return fk.ImplicitChain(lengths), nil

	case jointCount > 0:
		lengths := make([]float64, jointCount)
		for i := range lengths {
			lengths[i] = 0.1
		}
		return fk.ImplicitChain(lengths), nil

	default:
		return kinchain.Chain{}, fmt.Errorf("request must supply chain_id, chain, link_lengths, or joint_count")
	}
}
