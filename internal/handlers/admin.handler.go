package handlers

import (
	"github.com/ardacaliskaan/RaporServisi/internal/app"
	adminController "github.com/ardacaliskaan/RaporServisi/internal/controllers/admin"
	"github.com/ardacaliskaan/RaporServisi/internal/logger"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Handler
	controller *adminController.AdminController
}

func NewAdminHandler(app app.App, router fiber.Router) *AdminHandler {
	log := logger.New("handlers").File("admin_handler")
	return &AdminHandler{
		controller: app.AdminController,
		Handler: Handler{
			log:    log,
			router: router,
		},
	}
}

func (h *AdminHandler) Register() {
	admin := h.router.Group("/admin")
	admin.Get("/rate-limits", h.rateLimitStats)
	admin.Post("/rate-limits/reset", h.resetRateLimit)
	admin.Post("/rate-limits/clear", h.clearRateLimits)
	admin.Post("/cache/flush", h.flushCache)
}

func (h *AdminHandler) rateLimitStats(c *fiber.Ctx) error {
	log := h.log.Function("rateLimitStats")

	stats, err := h.controller.RateLimitStats(c.Context())
	if err != nil {
		log.Er("failed to collect rate limit stats", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to collect rate limit stats"})
	}

	return c.JSON(fiber.Map{"message": "success", "stats": stats})
}

func (h *AdminHandler) resetRateLimit(c *fiber.Ctx) error {
	log := h.log.Function("resetRateLimit")

	var request struct {
		CompanyCode string `json:"companyCode"`
		Operation   string `json:"operation"`
	}
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse reset request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse reset request"})
	}

	if err := h.controller.ResetRateLimit(c.Context(), request.CompanyCode, request.Operation); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "success"})
}

func (h *AdminHandler) clearRateLimits(c *fiber.Ctx) error {
	log := h.log.Function("clearRateLimits")

	if err := h.controller.ClearRateLimits(c.Context()); err != nil {
		log.Er("failed to clear rate limits", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to clear rate limits"})
	}

	return c.JSON(fiber.Map{"message": "success"})
}

func (h *AdminHandler) flushCache(c *fiber.Ctx) error {
	log := h.log.Function("flushCache")

	if err := h.controller.FlushCache(c.Context()); err != nil {
		log.Er("failed to flush cache", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to flush cache"})
	}

	return c.JSON(fiber.Map{"message": "success"})
}
