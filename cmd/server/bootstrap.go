package main

import (
	"github.com/OmondiJoshua/GLOBAL-GTM/internal/config"
	"github.com/OmondiJoshua/GLOBAL-GTM/internal/handlers"
	"github.com/OmondiJoshua/GLOBAL-GTM/internal/models"
	"github.com/OmondiJoshua/GLOBAL-GTM/internal/services"
	"github.com/OmondiJoshua/GLOBAL-GTM/internal/utils"
	"github.com/OmondiJoshua/GLOBAL-GTM/pkg/logger"
)

// appServices holds the initialized services and handlers needed by the application.
type appServices struct {
	reconcileService *services.ReconcileService
	authHandler      *handlers.AuthHandler
	reportHandler    *handlers.ReportHandler
	entryHandler     *handlers.EntryHandler
	userHandler      *handlers.UserHandler
	dashboardHandler *handlers.DashboardHandler
	metaHandler      *handlers.MetaHandler
}

// bootstrap initializes database, services and schedulers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	db := models.GetDB()

	authHandler := handlers.NewAuthHandler(db, cfg)
	if err := authHandler.CreateManagerIfNotExists(); err != nil {
		logger.Warn().Err(err).Msg("Failed to create default manager")
	}

	reconcileService := services.NewReconcileService(db)
	if cfg.Reconcile.Enabled {
		if err := reconcileService.StartScheduler(cfg.Reconcile.Schedule); err != nil {
			logger.Warn().Err(err).Msg("Failed to start reconciliation scheduler")
		}
	}

	return &appServices{
		reconcileService: reconcileService,
		authHandler:      authHandler,
		reportHandler:    handlers.NewReportHandler(db),
		entryHandler:     handlers.NewEntryHandler(db),
		userHandler:      handlers.NewUserHandler(db),
		dashboardHandler: handlers.NewDashboardHandler(db),
		metaHandler:      handlers.NewMetaHandler(),
	}
}

// shutdown stops background services.
func (s *appServices) shutdown() {
	s.reconcileService.StopScheduler()
	logger.Info().Msg("Schedulers stopped")
}
