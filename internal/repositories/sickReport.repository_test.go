package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ardacaliskaan/RaporServisi/internal/database"
	. "github.com/ardacaliskaan/RaporServisi/internal/models"
	"github.com/ardacaliskaan/RaporServisi/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) database.DB {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, gormDB.AutoMigrate(&SickReport{}))

	return database.DB{SQL: gormDB}
}

func testReport(sourceID, tckn string, start, end time.Time) *SickReport {
	return &SickReport{
		Tckn:           tckn,
		SicilNo:        "0001",
		StartDate:      start,
		EndDate:        end,
		DiagnosisCode:  "3",
		SourceSystemID: sourceID,
		Status:         ReportStatusImported,
	}
}

func TestSickReportRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := New(db)
	ctx := context.Background()

	day := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	report := testReport("100", "11111111111", day, day.AddDate(0, 0, 2))
	require.NoError(t, repo.Create(ctx, report))
	require.NotEmpty(t, report.ID, "BeforeSave hook should assign a UUID")

	byID, err := repo.GetByID(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, "11111111111", byID.Tckn)

	bySource, err := repo.GetBySourceID(ctx, "100")
	require.NoError(t, err)
	assert.Equal(t, report.ID, bySource.ID)
}

func TestSickReportRepository_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := New(db)

	_, err := repo.GetByID(context.Background(), "does-not-exist")
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSickReportRepository_ExistsBySourceID(t *testing.T) {
	db := setupTestDB(t)
	repo := New(db)
	ctx := context.Background()

	day := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, testReport("100", "11111111111", day, day)))

	exists, err := repo.ExistsBySourceID(ctx, "100")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsBySourceID(ctx, "999")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSickReportRepository_DuplicateSourceIDRejected(t *testing.T) {
	db := setupTestDB(t)
	repo := New(db)
	ctx := context.Background()

	day := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, testReport("100", "11111111111", day, day)))

	err := repo.Create(ctx, testReport("100", "22222222222", day, day))
	assert.Error(t, err, "source system id is unique")
}

func TestSickReportRepository_CreateBatchAndCount(t *testing.T) {
	db := setupTestDB(t)
	repo := New(db)
	ctx := context.Background()

	day := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	reports := []*SickReport{
		testReport("100", "11111111111", day, day),
		testReport("200", "22222222222", day, day.AddDate(0, 0, 1)),
		testReport("300", "33333333333", day, day.AddDate(0, 0, 5)),
	}
	require.NoError(t, repo.CreateBatch(ctx, reports))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestSickReportRepository_CreateBatch_Empty(t *testing.T) {
	db := setupTestDB(t)
	repo := New(db)

	require.NoError(t, repo.CreateBatch(context.Background(), nil))

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestSickReportRepository_ListByTcknAndRange(t *testing.T) {
	db := setupTestDB(t)
	repo := New(db)
	ctx := context.Background()

	jan := func(d int) time.Time { return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC) }
	require.NoError(t, repo.CreateBatch(ctx, []*SickReport{
		testReport("100", "11111111111", jan(10), jan(12)),
		testReport("200", "11111111111", jan(2), jan(4)),
		testReport("300", "11111111111", jan(20), jan(25)),
		testReport("400", "22222222222", jan(10), jan(12)),
	}))

	reports, err := repo.ListByTcknAndRange(ctx, "11111111111", jan(1), jan(15))
	require.NoError(t, err)

	require.Len(t, reports, 2)
	assert.Equal(t, "200", reports[0].SourceSystemID, "results are ordered by start date")
	assert.Equal(t, "100", reports[1].SourceSystemID)
}

func TestSickReportRepository_UsesTransactionFromContext(t *testing.T) {
	db := setupTestDB(t)
	repo := New(db)
	transactions := services.NewTransactionService(db)
	ctx := context.Background()

	day := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	rollback := errors.New("force rollback")
	err := transactions.Execute(ctx, func(txCtx context.Context) error {
		if err := repo.Create(txCtx, testReport("100", "11111111111", day, day)); err != nil {
			return err
		}

		// Visible inside the transaction
		exists, err := repo.ExistsBySourceID(txCtx, "100")
		if err != nil {
			return err
		}
		assert.True(t, exists)

		return rollback
	})
	require.ErrorIs(t, err, rollback)

	// Rolled back, nothing was persisted
	exists, err := repo.ExistsBySourceID(ctx, "100")
	require.NoError(t, err)
	assert.False(t, exists)
}
