package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ardacaliskaan/RaporServisi/internal/app"
	"github.com/ardacaliskaan/RaporServisi/internal/handlers"
	"github.com/ardacaliskaan/RaporServisi/internal/logger"

	"github.com/gofiber/fiber/v2"
)

func main() {
	log := logger.New("main")

	application, err := app.New()
	if err != nil {
		log.Er("failed to initialize application", err)
		os.Exit(1)
	}
	defer application.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go application.SyncService.Run(ctx)

	server := fiber.New(fiber.Config{
		AppName: "RaporServisi",
	})

	if err := handlers.Router(server, application); err != nil {
		log.Er("failed to register routes", err)
		os.Exit(1)
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Info("shutdown signal received")
		cancel()

		if err := server.Shutdown(); err != nil {
			log.Er("failed to shut down server", err)
		}
	}()

	port := application.Config.ServerPort
	if port == "" {
		port = "8080"
	}

	log.Info("starting server", "port", port, "environment", application.Config.Environment)
	if err := server.Listen(":" + port); err != nil {
		log.Er("server stopped", err)
	}
}
