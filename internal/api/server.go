// Package api wires the kinematics core to an HTTP contract: JSON
// decode, validate, dispatch to internal/fk, internal/ik,
// internal/intent, or internal/trajectory, then JSON encode.
package api

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ext-sakamoro/ALICE-Kinematics-Cloud/internal/log"
)

// Server is the kinematics engine's HTTP dispatcher.
type Server struct {
	app     *fiber.App
	stats   *Stats
	version string
}

// New builds a Fiber app with the kinematics routes registered, mirroring
// the middleware stack used across this codebase's HTTP services:
// panic recovery, permissive CORS (an outer gateway owns auth), and
// optional request logging.
func New(version string, debug bool) *Server {
	s := &Server{
		stats:   NewStats(),
		version: version,
	}

	app := fiber.New(fiber.Config{
		AppName:               "kinematicsd",
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok {
				return c.Status(fe.Code).JSON(errorResponse{Error: fe.Message})
			}
			return internalError(c, err)
		},
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type,X-API-Key",
	}))
	if debug {
		app.Use(logger.New())
	}

	s.app = app
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	v1 := s.app.Group("/api/v1/kinematics")
	v1.Post("/solve-ik", s.handleSolveIK)
	v1.Post("/solve-fk", s.handleSolveFK)
	v1.Post("/compress-intent", s.handleCompressIntent)
	v1.Post("/optimize-trajectory", s.handleOptimizeTrajectory)
	v1.Get("/chains", s.handleListChains)
	v1.Get("/stats", s.handleStats)

	s.app.Get("/health", s.handleHealth)
	s.app.Get("/", s.handleBanner)
}

// Listen starts serving on addr, blocking until the server stops or errors.
func (s *Server) Listen(addr string) error {
	log.Info("kinematics engine listening", "addr", addr)
	return s.app.Listen(addr)
}

// ShutdownWithContext gracefully drains in-flight requests until ctx is
// done.
func (s *Server) ShutdownWithContext(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
