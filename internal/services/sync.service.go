package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ardacaliskaan/RaporServisi/config"
	"github.com/ardacaliskaan/RaporServisi/internal/logger"
	. "github.com/ardacaliskaan/RaporServisi/internal/models"
	"github.com/ardacaliskaan/RaporServisi/internal/sgk"
)

// SickReportStore is the slice of the report repository the sync loop
// needs. Satisfied by repositories.SickReportRepository.
type SickReportStore interface {
	ExistsBySourceID(ctx context.Context, sourceID string) (bool, error)
	CreateBatch(ctx context.Context, reports []*SickReport) error
}

// SyncResult summarizes one day's pull.
type SyncResult struct {
	Date     string `json:"date"`
	Fetched  int    `json:"fetched"`
	Inserted int    `json:"inserted"`
}

// SyncService periodically pulls reports for a trailing date window and
// persists the ones whose source id is not in the store yet. Iterations
// are independent: a failed iteration is logged and the loop continues
// after the normal delay.
type SyncService struct {
	client       sgk.Client
	sessions     *sgk.SessionManager
	repo         SickReportStore
	transactions *TransactionService
	config       config.Config
	log          logger.Logger

	now  func() time.Time
	acks sync.WaitGroup
}

func NewSyncService(
	client sgk.Client,
	sessions *sgk.SessionManager,
	repo SickReportStore,
	transactions *TransactionService,
	config config.Config,
) *SyncService {
	return &SyncService{
		client:       client,
		sessions:     sessions,
		repo:         repo,
		transactions: transactions,
		config:       config,
		log:          logger.New("syncService"),
		now:          time.Now,
	}
}

// Run blocks until ctx is cancelled, executing one sync pass immediately
// and then one per configured interval.
func (s *SyncService) Run(ctx context.Context) {
	log := s.log.Function("Run")
	log.Info("starting sync loop",
		"interval", s.config.SyncInterval,
		"windowDays", s.config.SyncWindowDays,
		"autoAcknowledge", s.config.AutoAcknowledge,
	)

	ticker := time.NewTicker(s.config.SyncInterval)
	defer ticker.Stop()

	for {
		if err := s.RunOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Er("sync iteration failed", err)
		}

		select {
		case <-ctx.Done():
			log.Info("sync loop stopping")
			s.acks.Wait()
			return
		case <-ticker.C:
		}
	}
}

// RunOnce walks the trailing window in ascending day order. The first
// transport or auth failure abandons the iteration; cancellation stops
// before the next day's fetch.
func (s *SyncService) RunOnce(ctx context.Context) error {
	today := s.now().Truncate(24 * time.Hour)

	for offset := s.config.SyncWindowDays; offset >= 0; offset-- {
		if err := ctx.Err(); err != nil {
			return err
		}

		day := today.AddDate(0, 0, -offset)
		if _, err := s.SyncDay(ctx, day); err != nil {
			return err
		}
	}

	return nil
}

// SyncDay fetches one day's reports and inserts the previously-unseen
// ones in a single transaction.
func (s *SyncService) SyncDay(ctx context.Context, day time.Time) (SyncResult, error) {
	log := s.log.Function("SyncDay")

	creds := sgk.Credentials{
		Username:    s.config.SgkUsername,
		CompanyCode: s.config.SgkCompanyCode,
		Password:    s.config.SgkPassword,
	}

	result := SyncResult{Date: day.Format("2006-01-02")}

	token, err := s.sessions.AcquireToken(ctx, creds)
	if err != nil {
		return result, log.Err("failed to acquire token", err, "date", result.Date)
	}

	search, err := s.client.SearchReportsByDate(ctx, creds, token, day.Format(sgk.DateLayout))
	if err != nil {
		return result, log.Err("failed to search reports", err, "date", result.Date)
	}

	if !sgk.IsSuccess(search.Code) {
		// "No records" codes just mean an empty day
		if search.Code >= sgk.CodeRecordNotFound && search.Code <= sgk.CodeNoRecordsForTcIdentity {
			return result, nil
		}
		bizErr := &sgk.BusinessError{Operation: "raporAramaTarihile", Code: search.Code, Message: search.Message}
		return result, log.Err("upstream rejected report search", bizErr, "date", result.Date)
	}

	result.Fetched = len(search.Items)

	var staged []*SickReport
	for _, item := range search.Items {
		exists, err := s.repo.ExistsBySourceID(ctx, sourceID(item.ReportID))
		if err != nil {
			return result, err
		}
		if exists {
			continue
		}
		staged = append(staged, s.buildRecord(item, day))
	}

	if len(staged) > 0 {
		err := s.transactions.Execute(ctx, func(txCtx context.Context) error {
			return s.repo.CreateBatch(txCtx, staged)
		})
		if err != nil {
			return result, log.Err("failed to insert staged reports", err, "date", result.Date)
		}
		result.Inserted = len(staged)

		if s.config.AutoAcknowledge {
			for _, report := range staged {
				s.dispatchAcknowledge(creds, token, report.SourceSystemID)
			}
		}
	}

	log.Info("synced day", "date", result.Date, "fetched", result.Fetched, "inserted", result.Inserted)
	return result, nil
}

// Wait blocks until in-flight acknowledge calls have finished.
func (s *SyncService) Wait() {
	s.acks.Wait()
}

// dispatchAcknowledge fires the mark-as-read call on a supervised
// background goroutine. Failures are logged, never retried, and never
// roll back the insert.
func (s *SyncService) dispatchAcknowledge(creds sgk.Credentials, token, sourceSystemID string) {
	log := s.log.Function("dispatchAcknowledge")

	reportID, err := parseSourceID(sourceSystemID)
	if err != nil {
		log.Er("invalid source system id", err, "sourceID", sourceSystemID)
		return
	}

	s.acks.Add(1)
	go func() {
		defer s.acks.Done()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		result, err := s.client.MarkReportAsRead(ctx, creds, token, reportID)
		if err != nil {
			log.Er("acknowledge transport failure", err, "reportID", reportID)
			return
		}
		if !result.Success() {
			log.ErMsg("acknowledge rejected by upstream",
				"reportID", reportID, "code", result.Code, "message", result.Message)
		}
	}()
}

func (s *SyncService) buildRecord(item ReportItem, day time.Time) *SickReport {
	start, end := day, day
	if item.ClinicDate != nil {
		start, end = *item.ClinicDate, *item.ClinicDate
	}

	return &SickReport{
		Tckn:           item.TcIdentityNumber,
		SicilNo:        "",
		StartDate:      start,
		EndDate:        end,
		DiagnosisCode:  item.CaseType,
		SourceSystemID: sourceID(item.ReportID),
		Status:         ReportStatusImported,
	}
}
