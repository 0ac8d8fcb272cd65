// Package kinchain models parameterized serial kinematic chains and holds
// the immutable built-in preset registry.
package kinchain

import (
	"fmt"

	"github.com/ext-sakamoro/ALICE-Kinematics-Cloud/internal/vecmath"
)

// JointType tags a joint as revolute (angular) or prismatic (linear).
type JointType string

const (
	Revolute  JointType = "revolute"
	Prismatic JointType = "prismatic"
)

// Limits bounds a joint's scalar coordinate to [Lo, Hi].
type Limits struct {
	Lo float64 `json:"lo"`
	Hi float64 `json:"hi"`
}

// Clamp restricts v to the limit range.
func (l Limits) Clamp(v float64) float64 {
	if v < l.Lo {
		return l.Lo
	}
	if v > l.Hi {
		return l.Hi
	}
	return v
}

// Joint is one degree of freedom of a serial chain: a type, a unit axis,
// a non-negative link length, and optional coordinate limits.
type Joint struct {
	Type       JointType       `json:"type"`
	Axis       vecmath.Vector3 `json:"axis"`
	LinkLength float64         `json:"link_length"`
	Limits     *Limits         `json:"limits,omitempty"` // nil means unbounded
}

// ClampCoordinate applies the joint's limits, if any, to a coordinate.
func (j Joint) ClampCoordinate(v float64) float64 {
	if j.Limits == nil {
		return v
	}
	return j.Limits.Clamp(v)
}

// Validate checks the joint invariants: known type, non-negative link
// length, and a non-degenerate axis.
func (j Joint) Validate() error {
	if j.Type != Revolute && j.Type != Prismatic {
		return fmt.Errorf("joint type must be revolute or prismatic, got %q", j.Type)
	}
	if j.LinkLength < 0 {
		return fmt.Errorf("link length must be non-negative, got %v", j.LinkLength)
	}
	if !j.Axis.IsFinite() || j.Axis.Norm() < 1e-9 {
		return fmt.Errorf("joint axis must be a non-degenerate finite vector")
	}
	return nil
}

// Chain is an ordered sequence of joints. The base frame is the world
// frame; FK is purely serial composition from joint 0 to the last joint.
type Chain struct {
	Joints []Joint
}

// DOF returns the chain's degree-of-freedom count.
func (c Chain) DOF() int {
	return len(c.Joints)
}

// Validate checks the chain invariant (joint_count = len(joints), every
// joint individually valid) and enforces the resource ceiling maxDOF.
func (c Chain) Validate(maxDOF int) error {
	if len(c.Joints) == 0 {
		return fmt.Errorf("chain must have at least one joint")
	}
	if len(c.Joints) > maxDOF {
		return fmt.Errorf("chain has %d joints, exceeds ceiling of %d", len(c.Joints), maxDOF)
	}
	for i, j := range c.Joints {
		if err := j.Validate(); err != nil {
			return fmt.Errorf("joint %d: %w", i, err)
		}
	}
	return nil
}

// NormalizedAxes returns a copy of the chain with every joint axis
// normalized to unit length.
func (c Chain) NormalizedAxes() Chain {
	joints := make([]Joint, len(c.Joints))
	for i, j := range c.Joints {
		j.Axis = j.Axis.Normalize()
		joints[i] = j
	}
	return Chain{Joints: joints}
}
