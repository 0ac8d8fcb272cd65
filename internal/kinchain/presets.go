package kinchain

import "github.com/ext-sakamoro/ALICE-Kinematics-Cloud/internal/vecmath"

// Preset is a named, pre-declared chain exposed to clients via
// GET /api/v1/kinematics/chains.
type Preset struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	DOF              int     `json:"dof"`
	JointTypeSummary string  `json:"joint_type_summary"`
	Description      string  `json:"description"`
	Chain            Chain   `json:"-"`
	Joints           []Joint `json:"joints"`
}

var (
	axisX = vecmath.Vector3{X: 1}
	axisY = vecmath.Vector3{Y: 1}
	axisZ = vecmath.Vector3{Z: 1}
)

func revolute(axis vecmath.Vector3, linkLength float64) Joint {
	return Joint{Type: Revolute, Axis: axis, LinkLength: linkLength}
}

func prismatic(axis vecmath.Vector3, linkLength float64, limits Limits) Joint {
	l := limits
	return Joint{Type: Prismatic, Axis: axis, LinkLength: linkLength, Limits: &l}
}

// registry holds the five built-in presets in declaration order. Built
// once at process start and never mutated afterward — safe for concurrent
// readers without synchronization.
type registry struct {
	order []Preset
	byID  map[string]Preset
}

func buildRegistry() registry {
	presets := []Preset{
		{
			ID:               "human_arm",
			Name:             "Human Arm",
			DOF:              7,
			JointTypeSummary: "7 revolute",
			Description:      "Anthropomorphic 7-DOF arm: shoulder (3), elbow (1), wrist (3).",
			Joints: []Joint{
				revolute(axisZ, 0.0),
				revolute(axisY, 0.0),
				revolute(axisX, 0.30),
				revolute(axisY, 0.25),
				revolute(axisZ, 0.0),
				revolute(axisY, 0.05),
				revolute(axisX, 0.10),
			},
		},
		{
			ID:               "human_leg",
			Name:             "Human Leg",
			DOF:              6,
			JointTypeSummary: "6 revolute",
			Description:      "Anthropomorphic 6-DOF leg: hip (3), knee (1), ankle (2).",
			Joints: []Joint{
				revolute(axisZ, 0.0),
				revolute(axisY, 0.0),
				revolute(axisX, 0.45),
				revolute(axisY, 0.42),
				revolute(axisX, 0.0),
				revolute(axisY, 0.08),
			},
		},
		{
			ID:               "robotic_arm_6dof",
			Name:             "Robotic Arm (6-DOF)",
			DOF:              6,
			JointTypeSummary: "6 revolute",
			Description:      "Standard industrial 6-axis articulated arm.",
			Joints: []Joint{
				revolute(axisZ, 0.0),
				revolute(axisY, 0.40),
				revolute(axisY, 0.35),
				revolute(axisZ, 0.0),
				revolute(axisY, 0.10),
				revolute(axisZ, 0.08),
			},
		},
		{
			ID:               "delta_robot",
			Name:             "Delta Robot",
			DOF:              3,
			JointTypeSummary: "3 prismatic",
			Description:      "Parallel delta robot with three prismatic actuators, modeled here as a serial 3-DOF approximation for FK/IK purposes.",
			Joints: []Joint{
				prismatic(axisX, 0.0, Limits{Lo: -0.2, Hi: 0.2}),
				prismatic(axisY, 0.0, Limits{Lo: -0.2, Hi: 0.2}),
				prismatic(axisZ, 0.30, Limits{Lo: -0.15, Hi: 0.05}),
			},
		},
		{
			ID:               "scara",
			Name:             "SCARA",
			DOF:              4,
			JointTypeSummary: "3 revolute, 1 prismatic",
			Description:      "Selective Compliance Articulated Robot Arm: two revolute shoulder/elbow joints, one revolute wrist, one prismatic Z-axis plunge.",
			Joints: []Joint{
				revolute(axisZ, 0.35),
				revolute(axisZ, 0.30),
				revolute(axisZ, 0.0),
				prismatic(axisZ, 0.0, Limits{Lo: -0.10, Hi: 0.0}),
			},
		},
	}

	r := registry{order: make([]Preset, 0, len(presets)), byID: make(map[string]Preset, len(presets))}
	for _, p := range presets {
		p.Chain = Chain{Joints: p.Joints}
		r.order = append(r.order, p)
		r.byID[p.ID] = p
	}
	return r
}

// defaultRegistry is initialized once and used by all requests. Its
// contents never change after this package's init runs, so no locking is
// required for concurrent readers.
var defaultRegistry = buildRegistry()

// Presets returns the built-in presets in declaration order.
func Presets() []Preset {
	out := make([]Preset, len(defaultRegistry.order))
	copy(out, defaultRegistry.order)
	return out
}

// PresetByID looks up a preset by its string id.
func PresetByID(id string) (Preset, bool) {
	p, ok := defaultRegistry.byID[id]
	return p, ok
}
