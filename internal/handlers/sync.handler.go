package handlers

import (
	"github.com/ardacaliskaan/RaporServisi/internal/app"
	syncController "github.com/ardacaliskaan/RaporServisi/internal/controllers/syncops"
	"github.com/ardacaliskaan/RaporServisi/internal/logger"
	"github.com/ardacaliskaan/RaporServisi/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type SyncHandler struct {
	Handler
	controller *syncController.SyncController
}

func NewSyncHandler(app app.App, router fiber.Router) *SyncHandler {
	log := logger.New("handlers").File("sync_handler")
	return &SyncHandler{
		controller: app.SyncController,
		Handler: Handler{
			log:    log,
			router: router,
		},
	}
}

func (h *SyncHandler) Register() {
	sync := h.router.Group("/sync")
	sync.Post("/:date", h.syncDate)
	sync.Get("/stats", h.stats)
}

// syncDate triggers a one-off pull for a single day, date in yyyyMMdd.
func (h *SyncHandler) syncDate(c *fiber.Ctx) error {
	log := h.log.Function("syncDate")

	date := c.Params("date")
	if _, err := utils.ParseCompactDate(date); err != nil {
		log.Er("invalid sync date", err, "date", date)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "date must be in yyyyMMdd form"})
	}

	result, err := h.controller.SyncDate(c.Context(), date)
	if err != nil {
		log.Er("manual sync failed", err, "date", c.Params("date"))
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "result": result})
}

func (h *SyncHandler) stats(c *fiber.Ctx) error {
	log := h.log.Function("stats")

	count, err := h.controller.StoredReportCount(c.Context())
	if err != nil {
		log.Er("failed to count stored reports", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to count stored reports"})
	}

	return c.JSON(fiber.Map{"message": "success", "storedReports": count})
}
