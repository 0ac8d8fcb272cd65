// Package ik implements the iterative inverse-kinematics solver: damped
// least squares (Levenberg-Marquardt) over the position (and optional
// orientation) Jacobian, with a cyclic-coordinate-descent fallback on
// ill-conditioning.
package ik

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/ext-sakamoro/ALICE-Kinematics-Cloud/internal/fk"
	"github.com/ext-sakamoro/ALICE-Kinematics-Cloud/internal/kinchain"
	"github.com/ext-sakamoro/ALICE-Kinematics-Cloud/internal/vecmath"
)

// Defaults per the solver contract.
const (
	DefaultMaxIterations = 100
	DefaultTolerance     = 1e-6
	IterationCeiling     = 10_000
	MinTolerance         = 1e-12

	initialDamping = 0.01
	dampingGrowth  = 10.0
	dampingDecay   = 0.5
	dampingMax     = 1.0
	dampingMin     = 1e-6

	stallWindow    = 5
	stallImproveMin = 0.01 // 1% required reduction to not count as a stall
)

// Constraints bounds the solver's search.
type Constraints struct {
	MaxIterations int
	Tolerance     float64
}

// Normalize fills in defaults and clamps to the resource ceilings.
func (c Constraints) Normalize() Constraints {
	out := c
	if out.MaxIterations <= 0 {
		out.MaxIterations = DefaultMaxIterations
	}
	if out.MaxIterations > IterationCeiling {
		out.MaxIterations = IterationCeiling
	}
	if out.Tolerance <= 0 {
		out.Tolerance = DefaultTolerance
	}
	if out.Tolerance < MinTolerance {
		out.Tolerance = MinTolerance
	}
	return out
}

// Request is the input to Solve.
type Request struct {
	Chain             kinchain.Chain
	TargetPosition    vecmath.Vector3
	TargetOrientation *vecmath.Quaternion // nil means position-only
	Constraints       Constraints
}

// Result is the output of Solve.
type Result struct {
	JointAngles   []float64
	Iterations    int
	Converged     bool
	ErrorDistance float64
	SolutionID    string
	ElapsedUs     int64
}

// Solve runs damped least squares with CCD fallback until convergence, the
// iteration ceiling, or ctx's deadline, whichever comes first.
func Solve(ctx context.Context, req Request) (Result, error) {
	start := time.Now()

	n := req.Chain.DOF()
	if n < 1 || n > 64 {
		return Result{}, fmt.Errorf("joint_count must be in [1, 64], got %d", n)
	}
	if !req.TargetPosition.IsFinite() {
		return Result{}, fmt.Errorf("target_position must be finite")
	}
	if req.TargetOrientation != nil && !req.TargetOrientation.IsFinite() {
		return Result{}, fmt.Errorf("target_orientation must be finite")
	}

	constraints := req.Constraints.Normalize()
	withOrientation := req.TargetOrientation != nil

	q := make([]float64, n)
	best := make([]float64, n)
	bestErr := math.Inf(1)

	lambda := initialDamping
	stalled := 0
	converged := false
	iterations := 0

	for iterations < constraints.MaxIterations {
		select {
		case <-ctx.Done():
			return finish(clampAndWrap(req.Chain, best), iterations, false, bestErr, start), nil
		default:
		}

		result, err := fk.Evaluate(req.Chain, q)
		if err != nil {
			return Result{}, err
		}
		posErr := req.TargetPosition.Sub(result.EndEffectorPose.Position)

		var angErr vecmath.Vector3
		if withOrientation {
			angErr = vecmath.SmallAngleError(*req.TargetOrientation, result.EndEffectorPose.Orientation)
		}
		errDist := residualNorm(posErr, angErr, withOrientation)

		if errDist < bestErr {
			bestErr = errDist
			copy(best, q)
		}
		if errDist <= constraints.Tolerance {
			converged = true
			copy(best, q)
			bestErr = errDist
			break
		}

		jac, err := fk.AnalyticalJacobian(req.Chain, q, withOrientation)
		if err != nil {
			return Result{}, err
		}

		if lambda >= dampingMax && stalled >= stallWindow {
			// CCD fallback: one sweep counts as one iteration.
			q = ccdSweep(req.Chain, q, req.TargetPosition)
			iterations++
			stalled = 0
			lambda = initialDamping
			continue
		}

		delta, ok := dampedStep(jac, posErr, angErr, withOrientation, lambda)
		if !ok {
			// Singular JᵀJ + λ²I: bump damping and retry.
			lambda = math.Min(lambda*dampingGrowth, dampingMax)
			iterations++
			stalled++
			continue
		}

		candidate := applyDelta(req.Chain, q, delta)
		candResult, err := fk.Evaluate(req.Chain, candidate)
		if err != nil {
			return Result{}, err
		}
		candPosErr := req.TargetPosition.Sub(candResult.EndEffectorPose.Position)
		var candAngErr vecmath.Vector3
		if withOrientation {
			candAngErr = vecmath.SmallAngleError(*req.TargetOrientation, candResult.EndEffectorPose.Orientation)
		}
		candErr := residualNorm(candPosErr, candAngErr, withOrientation)

		if candErr < errDist {
			// Accept.
			improvement := 0.0
			if errDist > 0 {
				improvement = (errDist - candErr) / errDist
			}
			q = candidate
			lambda = math.Max(lambda*dampingDecay, dampingMin)
			if improvement < stallImproveMin {
				stalled++
			} else {
				stalled = 0
			}
		} else {
			// Reject.
			lambda = math.Min(lambda*dampingGrowth, dampingMax)
			stalled++
		}

		iterations++
	}

	return finish(clampAndWrap(req.Chain, best), iterations, converged, bestErr, start), nil
}

func finish(joints []float64, iterations int, converged bool, errDist float64, start time.Time) Result {
	return Result{
		JointAngles:   joints,
		Iterations:    iterations,
		Converged:     converged,
		ErrorDistance: errDist,
		SolutionID:    uuid.New().String(),
		ElapsedUs:     time.Since(start).Microseconds(),
	}
}

// residualNorm returns the norm of the error vector the solver is driving
// to zero: the 3-D position residual alone, or the concatenated 6-D
// position+orientation residual when an orientation target is set, per the
// extended residual e used throughout dampedStep.
func residualNorm(posErr, angErr vecmath.Vector3, withOrientation bool) float64 {
	if !withOrientation {
		return posErr.Norm()
	}
	return math.Sqrt(posErr.Dot(posErr) + angErr.Dot(angErr))
}

// dampedStep solves (JtJ + lambda^2 I) delta = Jt*e for the joint update.
func dampedStep(jac fk.Jacobian, posErr, angErr vecmath.Vector3, withOrientation bool, lambda float64) ([]float64, bool) {
	n := len(jac.Pos)
	jtj := make([][]float64, n)
	jte := make([]float64, n)
	lambda2 := lambda * lambda

	for i := 0; i < n; i++ {
		jtj[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			d := jac.Pos[i].Dot(jac.Pos[j])
			if withOrientation {
				d += jac.Ang[i].Dot(jac.Ang[j])
			}
			jtj[i][j] = d
		}
		jtj[i][i] += lambda2

		e := jac.Pos[i].Dot(posErr)
		if withOrientation {
			e += jac.Ang[i].Dot(angErr)
		}
		jte[i] = e
	}

	return solveLinearSystem(jtj, jte)
}

// applyDelta adds delta to q and clamps each coordinate to its joint's
// limits, if any.
func applyDelta(chain kinchain.Chain, q, delta []float64) []float64 {
	out := make([]float64, len(q))
	for i := range q {
		v := q[i] + delta[i]
		out[i] = chain.Joints[i].ClampCoordinate(v)
	}
	return out
}

// clampAndWrap returns a copy of q with revolute angles wrapped into
// (-pi, pi] for reporting; internal solve state is left unwrapped.
func clampAndWrap(chain kinchain.Chain, q []float64) []float64 {
	out := make([]float64, len(q))
	for i, j := range chain.Joints {
		v := q[i]
		if j.Type == kinchain.Revolute {
			v = wrapAngle(v)
		}
		out[i] = v
	}
	return out
}

func wrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}
