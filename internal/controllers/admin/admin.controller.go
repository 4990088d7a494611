package adminController

import (
	"context"

	"github.com/ardacaliskaan/RaporServisi/config"
	"github.com/ardacaliskaan/RaporServisi/internal/database"
	"github.com/ardacaliskaan/RaporServisi/internal/logger"
	"github.com/ardacaliskaan/RaporServisi/internal/services"
)

type AdminController struct {
	rateLimits *services.RateLimitService
	db         database.DB
	Config     config.Config
	log        logger.Logger
}

func New(
	rateLimits *services.RateLimitService,
	db database.DB,
	config config.Config,
) *AdminController {
	return &AdminController{
		rateLimits: rateLimits,
		db:         db,
		Config:     config,
		log:        logger.New("AdminController"),
	}
}

func (c *AdminController) RateLimitStats(ctx context.Context) ([]services.RateLimitStats, error) {
	return c.rateLimits.Stats(ctx)
}

// ResetRateLimit clears one (company, operation) window. Operational
// recovery only.
func (c *AdminController) ResetRateLimit(ctx context.Context, companyCode, operation string) error {
	log := c.log.Function("ResetRateLimit")

	if companyCode == "" || operation == "" {
		return log.Error("companyCode and operation are required",
			"companyCode", companyCode, "operation", operation)
	}

	return c.rateLimits.Reset(ctx, companyCode, operation)
}

func (c *AdminController) ClearRateLimits(ctx context.Context) error {
	return c.rateLimits.Clear(ctx)
}

func (c *AdminController) FlushCache(ctx context.Context) error {
	return c.db.FlushCache()
}
