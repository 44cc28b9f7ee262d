package services

import (
	"github.com/OmondiJoshua/GLOBAL-GTM/internal/models"
	"github.com/OmondiJoshua/GLOBAL-GTM/pkg/logger"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// ReconcileService periodically recomputes aggregates for every report. The
// request path keeps aggregates in sync already; the sweep repairs drift caused by
// out-of-band writes to the store.
type ReconcileService struct {
	db            *gorm.DB
	aggregates    *AggregateService
	cronScheduler *cron.Cron
}

func NewReconcileService(db *gorm.DB) *ReconcileService {
	return &ReconcileService{db: db, aggregates: NewAggregateService(db)}
}

// ReconcileAll recomputes aggregates for all reports, each in its own
// transaction. Returns the number of reports processed.
func (s *ReconcileService) ReconcileAll() (int, error) {
	var ids []uint
	if err := s.db.Model(&models.Report{}).Pluck("id", &ids).Error; err != nil {
		return 0, err
	}

	processed := 0
	for _, id := range ids {
		err := s.db.Transaction(func(tx *gorm.DB) error {
			return s.aggregates.Recompute(tx, id)
		})
		if err != nil {
			logger.Error().Err(err).Uint("report_id", id).Msg("aggregate reconciliation failed")
			continue
		}
		processed++
	}
	return processed, nil
}

// StartScheduler begins the periodic sweep with the given cron schedule.
func (s *ReconcileService) StartScheduler(schedule string) error {
	s.cronScheduler = cron.New()
	_, err := s.cronScheduler.AddFunc(schedule, func() {
		n, err := s.ReconcileAll()
		if err != nil {
			logger.Error().Err(err).Msg("aggregate reconciliation sweep failed")
			return
		}
		logger.Info().Int("reports", n).Msg("aggregate reconciliation sweep finished")
	})
	if err != nil {
		return err
	}
	s.cronScheduler.Start()
	logger.Info().Str("schedule", schedule).Msg("aggregate reconciliation scheduler started")
	return nil
}

// StopScheduler stops the periodic sweep.
func (s *ReconcileService) StopScheduler() {
	if s.cronScheduler != nil {
		s.cronScheduler.Stop()
	}
}
