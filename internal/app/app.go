package app

import (
	"github.com/ardacaliskaan/RaporServisi/config"
	"github.com/ardacaliskaan/RaporServisi/internal/database"
	"github.com/ardacaliskaan/RaporServisi/internal/logger"
	"github.com/ardacaliskaan/RaporServisi/internal/repositories"
	"github.com/ardacaliskaan/RaporServisi/internal/services"
	"github.com/ardacaliskaan/RaporServisi/internal/sgk"

	adminController "github.com/ardacaliskaan/RaporServisi/internal/controllers/admin"
	reportController "github.com/ardacaliskaan/RaporServisi/internal/controllers/reports"
	syncController "github.com/ardacaliskaan/RaporServisi/internal/controllers/syncops"
)

type App struct {
	Database database.DB
	Config   config.Config

	// Upstream boundary
	SgkClient sgk.Client
	Sessions  *sgk.SessionManager

	// Services
	TransactionService *services.TransactionService
	RateLimitService   *services.RateLimitService
	SyncService        *services.SyncService

	// Repositories
	ReportRepo repositories.SickReportRepository

	// Controllers
	ReportController *reportController.ReportController
	SyncController   *syncController.SyncController
	AdminController  *adminController.AdminController
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.InitConfig()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	sgkClient := sgk.NewClient(config.SgkEndpoint)
	sessions := sgk.NewSessionManager(sgkClient)

	// Initialize services
	transactionService := services.NewTransactionService(db)
	rateLimitService := services.NewRateLimitService(db.Cache)

	// Initialize repositories
	reportRepo := repositories.New(db)

	syncService := services.NewSyncService(sgkClient, sessions, reportRepo, transactionService, config)

	// Initialize controllers with repositories and services
	reportController := reportController.New(sgkClient, sessions, rateLimitService, config.BulkPace)
	syncController := syncController.New(syncService, reportRepo)
	adminController := adminController.New(rateLimitService, db, config)

	app := &App{
		Database:           db,
		Config:             config,
		SgkClient:          sgkClient,
		Sessions:           sessions,
		TransactionService: transactionService,
		RateLimitService:   rateLimitService,
		SyncService:        syncService,
		ReportRepo:         reportRepo,
		ReportController:   reportController,
		SyncController:     syncController,
		AdminController:    adminController,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.SgkClient,
		a.Sessions,
		a.TransactionService,
		a.RateLimitService,
		a.SyncService,
		a.ReportRepo,
		a.ReportController,
		a.SyncController,
		a.AdminController,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	a.SyncService.Wait()

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
