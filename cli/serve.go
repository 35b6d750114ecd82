package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/spf13/cobra"

	"plant-irrigation-api/db"
	"plant-irrigation-api/irrigation"
	"plant-irrigation-api/rest"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if listenAddr != "" {
		cfg.Server.Listen = listenAddr
	}

	store, err := db.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer store.Close()

	log.Infof("Connected to %s database successfully", store.Driver())

	if err := store.RunMigrations(cmd.Context()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, err := store.CurrentVersion(cmd.Context())
	if err != nil {
		log.Warnf("Failed to get current schema version: %v", err)
	} else {
		log.Infof("Database schema version: %d", version)
	}

	app := NewApp(irrigation.NewService(store))

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-shutdown
		log.Info("Shutting down server")
		if err := app.ShutdownWithTimeout(cfg.Server.ShutdownTimeout); err != nil {
			log.Errorf("Failed to shut down cleanly: %v", err)
		}
	}()

	log.Infof("Starting server on %s", cfg.Server.Listen)
	if err := app.Listen(cfg.Server.Listen); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// NewApp builds the fiber application with middleware and routes.
func NewApp(svc *irrigation.Service) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "irrigation-api",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	rest.Init(app, svc)
	return app
}

func init() {
	serveCmd.Flags().StringVarP(&listenAddr, "listen", "l", "", "Listen address, overrides config")
	rootCmd.AddCommand(serveCmd)
}
