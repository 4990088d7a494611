package syncController

import (
	"context"

	"github.com/ardacaliskaan/RaporServisi/internal/logger"
	"github.com/ardacaliskaan/RaporServisi/internal/repositories"
	"github.com/ardacaliskaan/RaporServisi/internal/services"
	"github.com/ardacaliskaan/RaporServisi/internal/utils"
)

type SyncController struct {
	syncService *services.SyncService
	reportRepo  repositories.SickReportRepository
	log         logger.Logger
}

func New(
	syncService *services.SyncService,
	reportRepo repositories.SickReportRepository,
) *SyncController {
	return &SyncController{
		syncService: syncService,
		reportRepo:  reportRepo,
		log:         logger.New("SyncController"),
	}
}

// SyncDate triggers one manual pull for a single day, yyyyMMdd form.
func (c *SyncController) SyncDate(ctx context.Context, yyyyMMdd string) (services.SyncResult, error) {
	log := c.log.Function("SyncDate")

	day, err := utils.ParseCompactDate(yyyyMMdd)
	if err != nil {
		return services.SyncResult{}, log.Err("invalid sync date", err, "date", yyyyMMdd)
	}

	return c.syncService.SyncDay(ctx, day)
}

// StoredReportCount reports how many records the sync loop has imported.
func (c *SyncController) StoredReportCount(ctx context.Context) (int64, error) {
	return c.reportRepo.Count(ctx)
}
