package seed

import (
	"time"

	"github.com/ardacaliskaan/RaporServisi/config"
	"github.com/ardacaliskaan/RaporServisi/internal/logger"
	. "github.com/ardacaliskaan/RaporServisi/internal/models"

	"gorm.io/gorm"
)

func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	day := func(value string) time.Time {
		parsed, _ := time.Parse("2006-01-02", value)
		return parsed
	}

	reports := []SickReport{
		{
			Tckn:           "12345678901",
			SicilNo:        "0001",
			StartDate:      day("2025-01-06"),
			EndDate:        day("2025-01-08"),
			DiagnosisCode:  "1",
			SourceSystemID: "900001",
			Status:         ReportStatusImported,
		}, {
			Tckn:           "98765432109",
			SicilNo:        "0002",
			StartDate:      day("2025-01-07"),
			EndDate:        day("2025-01-07"),
			DiagnosisCode:  "2",
			SourceSystemID: "900002",
			Status:         ReportStatusImported,
		},
	}

	for _, report := range reports {
		var existing SickReport
		if err := db.First(&existing, "source_system_id = ?", report.SourceSystemID).Error; err == nil {
			log.Info("Report already exists", "sourceSystemId", report.SourceSystemID)
			continue
		}
		log.Info("Seeding report", "sourceSystemId", report.SourceSystemID)
		if err := db.Create(&report).Error; err != nil {
			log.Er("failed to create report", err, "sourceSystemId", report.SourceSystemID)
		}
	}

	return nil
}
