package api

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ext-sakamoro/ALICE-Kinematics-Cloud/internal/config"
	"github.com/ext-sakamoro/ALICE-Kinematics-Cloud/internal/fk"
	"github.com/ext-sakamoro/ALICE-Kinematics-Cloud/internal/ik"
	"github.com/ext-sakamoro/ALICE-Kinematics-Cloud/internal/intent"
	"github.com/ext-sakamoro/ALICE-Kinematics-Cloud/internal/kinchain"
	"github.com/ext-sakamoro/ALICE-Kinematics-Cloud/internal/log"
	"github.com/ext-sakamoro/ALICE-Kinematics-Cloud/internal/trajectory"
)

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: err.Error()})
}

func internalError(c *fiber.Ctx, err error) error {
	log.Error("internal error", "path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{Error: err.Error()})
}

func (s *Server) handleSolveFK(c *fiber.Ctx) error {
	start := time.Now()
	defer func() { s.stats.Record("solve-fk", time.Since(start).Microseconds()) }()

	var req solveFKRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}

	chain, err := resolveChain(req.chainSpec, len(req.JointAngles))
	if err != nil {
		return badRequest(c, err)
	}
	if err := chain.Validate(config.MaxJoints()); err != nil {
		return badRequest(c, err)
	}

	result, err := fk.Evaluate(chain, req.JointAngles)
	if err != nil {
		return badRequest(c, err)
	}

	resp := solveFKResponse{
		EndEffectorPosition:    result.EndEffectorPose.Position,
		EndEffectorOrientation: result.EndEffectorPose.Orientation,
		JointPositions:         result.JointPositions,
		ElapsedUs:              time.Since(start).Microseconds(),
	}
	return c.JSON(resp)
}

func (s *Server) handleSolveIK(c *fiber.Ctx) error {
	start := time.Now()
	defer func() { s.stats.Record("solve-ik", time.Since(start).Microseconds()) }()

	var req solveIKRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}

	jointCount := req.chainSpec.JointCount
	chain, err := resolveChain(req.chainSpec, jointCount)
	if err != nil {
		return badRequest(c, err)
	}
	if err := chain.Validate(config.MaxJoints()); err != nil {
		return badRequest(c, err)
	}
	if req.Constraints.MaxIterations > config.MaxIterations() {
		return badRequest(c, fmt.Errorf("max_iterations %d exceeds ceiling of %d", req.Constraints.MaxIterations, config.MaxIterations()))
	}

	ctx, cancel := context.WithTimeout(c.Context(), config.RequestTimeout())
	defer cancel()

	solveReq := ik.Request{
		Chain:             chain,
		TargetPosition:    req.TargetPosition,
		TargetOrientation: req.TargetOrientation,
		Constraints: ik.Constraints{
			MaxIterations: req.Constraints.MaxIterations,
			Tolerance:     req.Constraints.Tolerance,
		},
	}

	result, err := ik.Solve(ctx, solveReq)
	if err != nil {
		return badRequest(c, err)
	}

	resp := solveIKResponse{
		JointAngles:   result.JointAngles,
		Iterations:    result.Iterations,
		Converged:     result.Converged,
		ErrorDistance: result.ErrorDistance,
		ElapsedUs:     result.ElapsedUs,
		SolutionID:    result.SolutionID,
	}
	return c.JSON(resp)
}

func (s *Server) handleCompressIntent(c *fiber.Ctx) error {
	start := time.Now()
	defer func() { s.stats.Record("compress-intent", time.Since(start).Microseconds()) }()

	var req compressIntentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	if len(req.Samples) > config.MaxSamples() {
		return badRequest(c, fiber.NewError(fiber.StatusBadRequest, "samples exceed configured ceiling"))
	}

	samples := make([]intent.Sample, len(req.Samples))
	for i, sample := range req.Samples {
		samples[i] = intent.Sample{
			TimestampUs: sample.TimestampMs * 1000,
			Position:    sample.Position,
			Velocity:    sample.Velocity,
		}
	}

	result, err := intent.Compress(intent.Request{Samples: samples, SampleRateHz: req.SampleRateHz})
	if err != nil {
		return badRequest(c, err)
	}

	resp := compressIntentResponse{
		IntentID:         result.IntentID,
		IntentType:       result.IntentType.String(),
		Direction:        result.Direction,
		Magnitude:        result.Magnitude,
		CompressedBytes:  result.CompressedBytes,
		OriginalSamples:  result.OriginalSamples,
		CompressionRatio: result.CompressionRatio,
		ElapsedUs:        result.ElapsedUs,
	}
	return c.JSON(resp)
}

func (s *Server) handleOptimizeTrajectory(c *fiber.Ctx) error {
	start := time.Now()
	defer func() { s.stats.Record("optimize-trajectory", time.Since(start).Microseconds()) }()

	var req optimizeTrajectoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}

	if len(req.Waypoints) > config.MaxWaypoints() {
		return badRequest(c, fiber.NewError(fiber.StatusBadRequest, "waypoints exceed configured ceiling"))
	}

	result, err := trajectory.Optimize(trajectory.Request{
		Waypoints:    req.Waypoints,
		MaxVelocity:  req.MaxVelocity,
		Acceleration: req.Acceleration,
	})
	if err != nil {
		return badRequest(c, err)
	}

	resp := optimizeTrajectoryResponse{
		TotalDistance:      result.TotalDistance,
		TotalTime:          result.TotalTime,
		SegmentTimes:       result.SegmentTimes,
		MaxVelocityReached: result.MaxVelocityReached,
		ElapsedUs:          time.Since(start).Microseconds(),
	}
	return c.JSON(resp)
}

func (s *Server) handleListChains(c *fiber.Ctx) error {
	s.stats.Record("chains", 0)
	return c.JSON(kinchain.Presets())
}

func (s *Server) handleStats(c *fiber.Ctx) error {
	s.stats.Record("stats", 0)
	return c.JSON(s.stats.Snapshot())
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(healthResponse{
		Status:     "ok",
		Version:    s.version,
		UptimeSecs: s.stats.UptimeSeconds(),
	})
}

func (s *Server) handleBanner(c *fiber.Ctx) error {
	return c.JSON(bannerResponse{Service: "kinematicsd", Version: s.version})
}
