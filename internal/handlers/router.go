package handlers

import (
	"github.com/ardacaliskaan/RaporServisi/internal/app"
	"github.com/ardacaliskaan/RaporServisi/internal/logger"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	log    logger.Logger
	router fiber.Router
}

func Router(router fiber.Router, app *app.App) (err error) {
	api := router.Group("/api")
	HealthHandler(api, app.Config)
	NewReportHandler(*app, api).Register()
	NewSyncHandler(*app, api).Register()
	NewAdminHandler(*app, api).Register()

	return nil
}
