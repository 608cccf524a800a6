package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"country-api/core/loader"
	"country-api/core/logger"
	"country-api/core/middleware/rayid"
	"country-api/core/scheduler"
	"country-api/feature/countries"
	"country-api/feature/status"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "country-api/docs/swagger"
)

// @title Country API
// @version 1.0
// @description Country metadata enriched with exchange rates and estimated GDP.
// @host localhost:3000
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the country API server",
	Long:  `Starts the HTTP server, initializes all enabled features and the refresh schedule.`,
	Run: func(cmd *cobra.Command, args []string) {
		rt, err := bootstrap()
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		defer rt.close()

		logg := rt.logger
		zap.ReplaceGlobals(logg)

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		// Feature Loader
		countryService := countries.NewService(rt.store, rt.engine, rt.reporter, logg)

		mgr := loader.NewManager(logg)
		if err := mgr.Register(countries.NewFeature(countryService)); err != nil {
			logg.Fatal("Failed to register feature", zap.Error(err))
		}
		if err := mgr.Register(status.NewFeature(rt.store, logg)); err != nil {
			logg.Fatal("Failed to register feature", zap.Error(err))
		}

		// RayID must be first to trace everything
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		app.Get("/swagger/*", swagger.HandlerDefault)

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// Scheduled refresh
		sched := scheduler.New(logg)
		job := countries.NewRefreshJob(countryService, rt.cfg.Refresh.Schedule)
		if rt.cfg.Refresh.Enabled() {
			if err := sched.AddJob(job); err != nil {
				logg.Fatal("Invalid refresh schedule", zap.Error(err))
			}
		}
		sched.Start()
		if rt.cfg.Refresh.OnStart {
			go sched.RunNow(job)
		}

		addr := rt.cfg.Server.ListenAddr()
		go func() {
			logg.Info("Starting server", zap.String("addr", addr))
			if err := app.Listen(addr); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")

		sched.Stop()
		if err := app.ShutdownWithTimeout(rt.cfg.Server.ShutdownTimeout()); err != nil {
			logg.Warn("Server shutdown incomplete", zap.Error(err))
		}
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
