package handlers

import (
	"context"
	"errors"

	"github.com/ardacaliskaan/RaporServisi/internal/app"
	reportController "github.com/ardacaliskaan/RaporServisi/internal/controllers/reports"
	"github.com/ardacaliskaan/RaporServisi/internal/logger"
	. "github.com/ardacaliskaan/RaporServisi/internal/models"
	"github.com/ardacaliskaan/RaporServisi/internal/sgk"
	"github.com/ardacaliskaan/RaporServisi/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	Handler
	controller *reportController.ReportController
}

func NewReportHandler(app app.App, router fiber.Router) *ReportHandler {
	log := logger.New("handlers").File("report_handler")
	return &ReportHandler{
		controller: app.ReportController,
		Handler: Handler{
			log:    log,
			router: router,
		},
	}
}

func (h *ReportHandler) Register() {
	sgkGroup := h.router.Group("/sgk")
	sgkGroup.Post("/login", h.login)

	reports := sgkGroup.Group("/reports")
	reports.Post("/search-by-date", h.searchByDate)
	reports.Post("/approved", h.searchApproved)
	reports.Post("/close", h.closeReport)
	reports.Post("/approve", h.approve)
	reports.Post("/cancel-approval", h.cancelApproval)
	reports.Post("/bulk-approve", h.bulkApprove)
	reports.Post("/bulk-cancel", h.bulkCancel)
	reports.Post("/bulk-close", h.bulkClose)
}

func (h *ReportHandler) login(c *fiber.Ctx) error {
	log := h.log.Function("login")

	var request LoginRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse login request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse login request"})
	}

	result, err := h.controller.Login(c.Context(), request)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "token": result.Token, "code": result.Code})
}

func (h *ReportHandler) searchByDate(c *fiber.Ctx) error {
	log := h.log.Function("searchByDate")

	var request SearchByDateRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse search request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse search request"})
	}

	if _, err := utils.ParseViziteDate(request.Date); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": err.Error()})
	}

	result, err := h.controller.SearchByDate(c.Context(), request)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "success",
		"reports": result.Items,
		"count":   len(result.Items),
		"skipped": result.Skipped,
	})
}

func (h *ReportHandler) searchApproved(c *fiber.Ctx) error {
	log := h.log.Function("searchApproved")

	var request SearchApprovedRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse approved search request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse approved search request"})
	}

	for _, date := range []string{request.StartDate, request.EndDate} {
		if _, err := utils.ParseViziteDate(date); err != nil {
			return c.Status(fiber.StatusBadRequest).
				JSON(fiber.Map{"message": err.Error()})
		}
	}

	result, err := h.controller.SearchApproved(c.Context(), request)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "reports": result.Items, "count": len(result.Items)})
}

func (h *ReportHandler) approve(c *fiber.Ctx) error {
	log := h.log.Function("approve")

	var request ApproveReportRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse approve request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse approve request"})
	}

	result, err := h.controller.Approve(c.Context(), request)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "code": result.Code, "description": result.Message})
}

func (h *ReportHandler) closeReport(c *fiber.Ctx) error {
	return h.reportIDOperation(c, "closeReport", h.controller.CloseReport)
}

func (h *ReportHandler) cancelApproval(c *fiber.Ctx) error {
	return h.reportIDOperation(c, "cancelApproval", h.controller.CancelApproval)
}

func (h *ReportHandler) reportIDOperation(
	c *fiber.Ctx,
	name string,
	op func(ctx context.Context, req ReportIDRequest) (sgk.OperationResult, error),
) error {
	log := h.log.Function(name)

	var request ReportIDRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse request"})
	}

	result, err := op(c.Context(), request)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "code": result.Code, "description": result.Message})
}

func (h *ReportHandler) bulkApprove(c *fiber.Ctx) error {
	log := h.log.Function("bulkApprove")

	var request BulkApproveRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse bulk approve request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse bulk approve request"})
	}

	if len(request.Reports) == 0 {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "empty batch"})
	}

	outcome := h.controller.BulkApprove(c.Context(), request)
	return c.JSON(bulkResponse(outcome.Success(), outcome.SuccessCount(), outcome.ErrorCount(), outcome.SuccessList, outcome.ErrorList))
}

func (h *ReportHandler) bulkCancel(c *fiber.Ctx) error {
	log := h.log.Function("bulkCancel")

	var request BulkReportIDsRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse bulk cancel request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse bulk cancel request"})
	}

	if len(request.ReportIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "empty batch"})
	}

	outcome := h.controller.BulkCancel(c.Context(), request)
	return c.JSON(bulkResponse(outcome.Success(), outcome.SuccessCount(), outcome.ErrorCount(), outcome.SuccessList, outcome.ErrorList))
}

func (h *ReportHandler) bulkClose(c *fiber.Ctx) error {
	log := h.log.Function("bulkClose")

	var request BulkReportIDsRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse bulk close request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse bulk close request"})
	}

	if len(request.ReportIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "empty batch"})
	}

	outcome := h.controller.BulkClose(c.Context(), request)
	return c.JSON(bulkResponse(outcome.Success(), outcome.SuccessCount(), outcome.ErrorCount(), outcome.SuccessList, outcome.ErrorList))
}

// Bulk endpoints answer 200 regardless of per-item failures; the body
// carries the partition.
func bulkResponse(success bool, successCount, errorCount int, successList, errorList any) fiber.Map {
	return fiber.Map{
		"success":      success,
		"successCount": successCount,
		"errorCount":   errorCount,
		"successList":  successList,
		"errorList":    errorList,
	}
}

// respondError maps controller errors onto HTTP statuses: local quota
// denials to 429, upstream rejections to 400 with the SGK code, auth
// failures to 401, and transport problems to 502.
func respondError(c *fiber.Ctx, err error) error {
	var rateErr *reportController.RateLimitError
	if errors.As(err, &rateErr) {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"message":         "rate limit exceeded",
			"error":           rateErr.Decision.Message,
			"nextAvailableAt": rateErr.Decision.NextAvailable,
		})
	}

	var authErr *sgk.AuthError
	if errors.As(err, &authErr) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "authentication failed",
			"code":    authErr.Code,
			"error":   authErr.Message,
		})
	}

	var bizErr *sgk.BusinessError
	if errors.As(err, &bizErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message":   "operation rejected",
			"operation": bizErr.Operation,
			"code":      bizErr.Code,
			"error":     bizErr.Message,
		})
	}

	var transportErr *sgk.TransportError
	if errors.As(err, &transportErr) {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message":   "upstream unavailable",
			"operation": transportErr.Operation,
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "internal error"})
}
