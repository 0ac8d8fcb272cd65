package vecmath

// Pose is a rigid-body position and orientation in the world frame.
type Pose struct {
	Position    Vector3    `json:"position"`
	Orientation Quaternion `json:"orientation"`
}

// IdentityPose is the origin with no rotation.
var IdentityPose = Pose{Position: Zero3, Orientation: IdentityQuaternion}

// IsFinite reports whether both position and orientation are finite.
func (p Pose) IsFinite() bool {
	return p.Position.IsFinite() && p.Orientation.IsFinite()
}
