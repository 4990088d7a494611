package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/ardacaliskaan/RaporServisi/internal/database"
	"github.com/ardacaliskaan/RaporServisi/internal/logger"
	. "github.com/ardacaliskaan/RaporServisi/internal/models"
	"github.com/ardacaliskaan/RaporServisi/internal/services"

	"gorm.io/gorm"
)

type SickReportRepository interface {
	GetByID(ctx context.Context, id string) (*SickReport, error)
	GetBySourceID(ctx context.Context, sourceID string) (*SickReport, error)
	ExistsBySourceID(ctx context.Context, sourceID string) (bool, error)
	Create(ctx context.Context, report *SickReport) error
	CreateBatch(ctx context.Context, reports []*SickReport) error
	ListByTcknAndRange(ctx context.Context, tckn string, start, end time.Time) ([]*SickReport, error)
	Count(ctx context.Context) (int64, error)
}

type sickReportRepository struct {
	db  database.DB
	log logger.Logger
}

func New(db database.DB) SickReportRepository {
	return &sickReportRepository{
		db:  db,
		log: logger.New("sickReportRepository"),
	}
}

func (r *sickReportRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *sickReportRepository) GetByID(ctx context.Context, id string) (*SickReport, error) {
	log := r.log.Function("GetByID")

	var report SickReport
	if err := r.getDB(ctx).First(&report, "id = ?", id).Error; err != nil {
		return nil, log.Err("failed to get sick report by id", err, "id", id)
	}

	return &report, nil
}

func (r *sickReportRepository) GetBySourceID(ctx context.Context, sourceID string) (*SickReport, error) {
	log := r.log.Function("GetBySourceID")

	var report SickReport
	if err := r.getDB(ctx).First(&report, "source_system_id = ?", sourceID).Error; err != nil {
		return nil, log.Err("failed to get sick report by source id", err, "sourceID", sourceID)
	}

	return &report, nil
}

func (r *sickReportRepository) ExistsBySourceID(ctx context.Context, sourceID string) (bool, error) {
	log := r.log.Function("ExistsBySourceID")

	var report SickReport
	err := r.getDB(ctx).Select("id").First(&report, "source_system_id = ?", sourceID).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}

	return false, log.Err("failed to check sick report existence", err, "sourceID", sourceID)
}

func (r *sickReportRepository) Create(ctx context.Context, report *SickReport) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(report).Error; err != nil {
		return log.Err("failed to create sick report", err, "sourceID", report.SourceSystemID)
	}

	return nil
}

func (r *sickReportRepository) CreateBatch(ctx context.Context, reports []*SickReport) error {
	log := r.log.Function("CreateBatch")

	if len(reports) == 0 {
		return nil
	}

	if err := r.getDB(ctx).CreateInBatches(reports, 100).Error; err != nil {
		return log.Err("failed to create sick report batch", err, "count", len(reports))
	}

	log.Info("inserted sick report batch", "count", len(reports))
	return nil
}

func (r *sickReportRepository) ListByTcknAndRange(
	ctx context.Context,
	tckn string,
	start, end time.Time,
) ([]*SickReport, error) {
	log := r.log.Function("ListByTcknAndRange")

	var reports []*SickReport
	err := r.getDB(ctx).
		Where("tckn = ? AND start_date >= ? AND end_date <= ?", tckn, start, end).
		Order("start_date asc").
		Find(&reports).Error
	if err != nil {
		return nil, log.Err("failed to list sick reports", err, "tckn", tckn)
	}

	return reports, nil
}

func (r *sickReportRepository) Count(ctx context.Context) (int64, error) {
	log := r.log.Function("Count")

	var count int64
	if err := r.getDB(ctx).Model(&SickReport{}).Count(&count).Error; err != nil {
		return 0, log.Err("failed to count sick reports", err)
	}

	return count, nil
}
