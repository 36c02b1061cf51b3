package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"whichx/api"
	"whichx/model"
	"whichx/processor"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the classifier over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Uint("port", 0, "Port number (overrides PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m, s, cfg, err := openModel(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if port, _ := cmd.Flags().GetUint("port"); port != 0 {
		cfg.Port = port
	}

	q := processor.NewQueue(m, cfg.SyncInterval)
	queueDone := make(chan struct{})
	go func() {
		q.Run(ctx)
		close(queueDone)
	}()

	app := newApp(m, q)

	go func() {
		<-ctx.Done()
		log.Info("Shutting down")
		if err := app.Shutdown(); err != nil {
			log.Errorf("Failed to shut down: %s", err)
		}
	}()

	log.WithField("model", m.Name).Infof("Listening on PORT %d", cfg.Port)
	if err := app.Listen(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		return err
	}
	<-queueDone
	// labels and direct training are only persisted on sync
	return m.Sync(context.Background())
}

// newApp wires the HTTP surface of one model. Prefork stays off: every
// child process would hold its own model and overwrite the others' snapshot.
func newApp(m *model.Model, q *processor.Queue) *fiber.App {
	app := fiber.New(fiber.Config{
		Prefork: false,
	})
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(compress.New())
	app.Use(cors.New())

	// ===== API ROUTES =====
	app.Get("/ping", func(c *fiber.Ctx) error { return c.Status(fiber.StatusOK).Send([]byte("pong")) })
	apiGroup := app.Group("/api")
	api.Routes(&apiGroup, m, q)
	return app
}
