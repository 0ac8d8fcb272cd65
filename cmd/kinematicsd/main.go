// kinematicsd serves the cloud kinematics engine: forward/inverse
// kinematics, motion-intent compression, and trajectory optimization
// over a small stateless HTTP contract.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ext-sakamoro/ALICE-Kinematics-Cloud/internal/api"
	"github.com/ext-sakamoro/ALICE-Kinematics-Cloud/internal/config"
	"github.com/ext-sakamoro/ALICE-Kinematics-Cloud/internal/log"
)

var (
	version = "1.0.0"
	debug   = flag.Bool("debug", false, "enable request logging")
)

func main() {
	flag.Parse()

	log.Init(config.LogLevel())

	fmt.Println()
	fmt.Println("ALICE Kinematics Cloud v" + version)
	fmt.Println()

	server := api.New(version, *debug)

	addr := config.Addr()
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Listen(addr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server exited", "error", err)
			os.Exit(1)
		}
	case <-quit:
		log.Info("shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.ShutdownWithContext(ctx); err != nil {
			log.Error("shutdown error", "error", err)
		}
	}

	log.Info("goodbye")
}
