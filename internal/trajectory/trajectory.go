// Package trajectory parameterizes a polyline of waypoints under a global
// velocity ceiling, assigning each segment a trapezoidal or triangular
// velocity profile.
package trajectory

import (
	"fmt"
	"math"

	"github.com/ext-sakamoro/ALICE-Kinematics-Cloud/internal/vecmath"
)

// DefaultMaxVelocity and DefaultAcceleration are used when a request omits
// them.
const (
	DefaultMaxVelocity  = 1.0
	DefaultAcceleration = 2.0
)

// Request is the input to Optimize.
type Request struct {
	Waypoints    []vecmath.Vector3
	MaxVelocity  float64 // 0 means DefaultMaxVelocity
	Acceleration float64 // 0 means DefaultAcceleration
}

// Result is the output of Optimize.
type Result struct {
	TotalDistance      float64
	TotalTime          float64
	SegmentTimes       []float64
	SegmentDistances   []float64
	MaxVelocityReached float64
}

// Optimize assigns each segment a trapezoidal profile that reaches
// MaxVelocity when the segment is long enough to do so, or a triangular
// profile peaking below it otherwise.
func Optimize(req Request) (Result, error) {
	if len(req.Waypoints) < 2 {
		return Result{}, fmt.Errorf("waypoints must contain at least 2 points, got %d", len(req.Waypoints))
	}

	maxVelocity := req.MaxVelocity
	if maxVelocity <= 0 {
		maxVelocity = DefaultMaxVelocity
	}
	accel := req.Acceleration
	if accel <= 0 {
		accel = DefaultAcceleration
	}

	for i, w := range req.Waypoints {
		if !w.IsFinite() {
			return Result{}, fmt.Errorf("waypoint %d is not finite", i)
		}
	}

	n := len(req.Waypoints) - 1
	segmentTimes := make([]float64, n)
	segmentDistances := make([]float64, n)

	dMin := maxVelocity * maxVelocity / accel

	var totalDistance, totalTime, peakReached float64
	for i := 0; i < n; i++ {
		d := req.Waypoints[i+1].Sub(req.Waypoints[i]).Norm()
		segmentDistances[i] = d

		var vPeak float64
		if d >= dMin {
			vPeak = maxVelocity
		} else {
			vPeak = math.Sqrt(accel * d)
		}

		var t float64
		if vPeak > 0 {
			t = d/vPeak + vPeak/accel
		}

		segmentTimes[i] = t
		totalDistance += d
		totalTime += t
		if vPeak > peakReached {
			peakReached = vPeak
		}
	}

	return Result{
		TotalDistance:      totalDistance,
		TotalTime:          totalTime,
		SegmentTimes:       segmentTimes,
		SegmentDistances:   segmentDistances,
		MaxVelocityReached: peakReached,
	}, nil
}
