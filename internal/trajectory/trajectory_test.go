package trajectory

import (
	"math"
	"testing"

	"github.com/ext-sakamoro/ALICE-Kinematics-Cloud/internal/vecmath"
)

func TestOptimize_TriangularProfile(t *testing.T) {
	req := Request{
		Waypoints:    []vecmath.Vector3{{}, {X: 0.1}},
		MaxVelocity:  1.0,
		Acceleration: 2.0,
	}

	result, err := Optimize(req)
	if err != nil {
		t.Fatalf("Optimize returned error: %v", err)
	}

	wantPeak := math.Sqrt(0.2)
	if math.Abs(result.MaxVelocityReached-wantPeak) > 1e-9 {
		t.Errorf("max_velocity_reached = %v, want %v", result.MaxVelocityReached, wantPeak)
	}
	wantTime := 2 * wantPeak / 2.0
	if math.Abs(result.TotalTime-wantTime) > 1e-6 {
		t.Errorf("total_time = %v, want %v", result.TotalTime, wantTime)
	}
}

func TestOptimize_TrapezoidalProfileCapsAtMaxVelocity(t *testing.T) {
	req := Request{
		Waypoints:    []vecmath.Vector3{{}, {X: 10}},
		MaxVelocity:  1.0,
		Acceleration: 2.0,
	}
	result, err := Optimize(req)
	if err != nil {
		t.Fatalf("Optimize returned error: %v", err)
	}
	if result.MaxVelocityReached != 1.0 {
		t.Errorf("max_velocity_reached = %v, want 1.0 (capped)", result.MaxVelocityReached)
	}
}

func TestOptimize_SumsMatchInvariant(t *testing.T) {
	req := Request{
		Waypoints: []vecmath.Vector3{
			{}, {X: 1}, {X: 1, Y: 1}, {X: 2, Y: 1, Z: 0.5},
		},
	}
	result, err := Optimize(req)
	if err != nil {
		t.Fatalf("Optimize returned error: %v", err)
	}

	var sumDist, sumTime float64
	for i, d := range result.SegmentDistances {
		sumDist += d
		sumTime += result.SegmentTimes[i]
	}
	if math.Abs(sumDist-result.TotalDistance) > 1e-9 {
		t.Errorf("sum of segment distances = %v, want total_distance %v", sumDist, result.TotalDistance)
	}
	if math.Abs(sumTime-result.TotalTime) > 1e-9 {
		t.Errorf("sum of segment times = %v, want total_time %v", sumTime, result.TotalTime)
	}
}

func TestOptimize_RejectsTooFewWaypoints(t *testing.T) {
	if _, err := Optimize(Request{Waypoints: []vecmath.Vector3{{}}}); err == nil {
		t.Error("expected error for fewer than 2 waypoints")
	}
}

func TestOptimize_RejectsNonFiniteWaypoint(t *testing.T) {
	req := Request{Waypoints: []vecmath.Vector3{{}, {X: math.NaN()}}}
	if _, err := Optimize(req); err == nil {
		t.Error("expected error for non-finite waypoint")
	}
}

func TestOptimize_DefaultsApplyWhenUnset(t *testing.T) {
	req := Request{Waypoints: []vecmath.Vector3{{}, {X: 0.1}}}
	result, err := Optimize(req)
	if err != nil {
		t.Fatalf("Optimize returned error: %v", err)
	}
	if result.MaxVelocityReached <= 0 {
		t.Error("expected a positive peak velocity under default constraints")
	}
}
