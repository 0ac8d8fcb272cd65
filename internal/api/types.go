package api

import (
	"github.com/ext-sakamoro/ALICE-Kinematics-Cloud/internal/vecmath"
)

// jointDTO is the wire representation of a single joint, used when a
// request supplies an explicit chain rather than a preset id or the
// implicit-chain shorthand.
type jointDTO struct {
	Type       string           `json:"type"`
	Axis       vecmath.Vector3  `json:"axis"`
	LinkLength float64          `json:"link_length"`
	Limits     *limitsDTO       `json:"limits,omitempty"`
}

type limitsDTO struct {
	Lo float64 `json:"lo"`
	Hi float64 `json:"hi"`
}

// chainSpec is embedded in FK and IK requests: a caller identifies a chain
// by preset id, by an explicit joint list, or by the implicit link_lengths
// or joint_count shorthand (accepted by both FK and IK).
type chainSpec struct {
	ChainID     string     `json:"chain_id,omitempty"`
	Chain       []jointDTO `json:"chain,omitempty"`
	LinkLengths []float64  `json:"link_lengths,omitempty"`
	JointCount  int        `json:"joint_count,omitempty"`
}

// --- FK ---

type solveFKRequest struct {
	chainSpec
	JointAngles []float64 `json:"joint_angles"`
}

type solveFKResponse struct {
	EndEffectorPosition    vecmath.Vector3    `json:"end_effector_position"`
	EndEffectorOrientation vecmath.Quaternion `json:"end_effector_orientation"`
	JointPositions         []vecmath.Vector3  `json:"joint_positions"`
	ElapsedUs              int64              `json:"elapsed_us"`
}

// --- IK ---

type constraintsDTO struct {
	MaxIterations int     `json:"max_iterations,omitempty"`
	Tolerance     float64 `json:"tolerance,omitempty"`
}

type solveIKRequest struct {
	chainSpec
	TargetPosition    vecmath.Vector3     `json:"target_position"`
	TargetOrientation *vecmath.Quaternion `json:"target_orientation,omitempty"`
	Constraints       constraintsDTO      `json:"constraints"`
}

type solveIKResponse struct {
	JointAngles   []float64 `json:"joint_angles"`
	Iterations    int       `json:"iterations"`
	Converged     bool      `json:"converged"`
	ErrorDistance float64   `json:"error_distance"`
	ElapsedUs     int64     `json:"elapsed_us"`
	SolutionID    string    `json:"solution_id"`
}

// --- Intent ---

type sampleDTO struct {
	TimestampMs int64            `json:"timestamp_ms"`
	Position    vecmath.Vector3  `json:"position"`
	Velocity    *vecmath.Vector3 `json:"velocity,omitempty"`
}

type compressIntentRequest struct {
	Samples      []sampleDTO `json:"samples"`
	SampleRateHz float64     `json:"sample_rate_hz"`
}

type compressIntentResponse struct {
	IntentID         string          `json:"intent_id"`
	IntentType       string          `json:"intent_type"`
	Direction        vecmath.Vector3 `json:"direction"`
	Magnitude        float64         `json:"magnitude"`
	CompressedBytes  int             `json:"compressed_bytes"`
	OriginalSamples  int             `json:"original_samples"`
	CompressionRatio float64         `json:"compression_ratio"`
	ElapsedUs        int64           `json:"elapsed_us"`
}

// --- Trajectory ---

type optimizeTrajectoryRequest struct {
	Waypoints    []vecmath.Vector3 `json:"waypoints"`
	MaxVelocity  float64           `json:"max_velocity,omitempty"`
	Acceleration float64           `json:"acceleration,omitempty"`
}

type optimizeTrajectoryResponse struct {
	TotalDistance      float64   `json:"total_distance"`
	TotalTime          float64   `json:"total_time"`
	SegmentTimes       []float64 `json:"segment_times"`
	MaxVelocityReached float64   `json:"max_velocity_reached"`
	ElapsedUs          int64     `json:"elapsed_us"`
}

// --- Misc ---

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status     string `json:"status"`
	Version    string `json:"version"`
	UptimeSecs int64  `json:"uptime_secs"`
}

type bannerResponse struct {
	Service string `json:"service"`
	Version string `json:"version"`
}
