package services

import (
	"github.com/OmondiJoshua/GLOBAL-GTM/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AggregateService recomputes the derived fields of a report (total_entries,
// active_rate, completion_rate) from its current entries. Every entry mutation must
// run Recompute on the parent inside the same transaction, so a reader never
// observes an entry without the matching aggregates.
type AggregateService struct {
	db *gorm.DB
}

func NewAggregateService(db *gorm.DB) *AggregateService {
	return &AggregateService{db: db}
}

var oneHundred = decimal.NewFromInt(100)

// Recompute reloads entry counts for the report and persists the derived fields.
// With zero entries the stored values are left untouched; rates are percentages
// rounded to two decimals. The operation is idempotent.
func (s *AggregateService) Recompute(tx *gorm.DB, reportID uint) error {
	var total int64
	if err := tx.Model(&models.ReportData{}).
		Where("report_id = ?", reportID).
		Count(&total).Error; err != nil {
		return err
	}
	if total == 0 {
		return nil
	}

	var active int64
	if err := tx.Model(&models.ReportData{}).
		Where("report_id = ? AND is_active = ?", reportID, true).
		Count(&active).Error; err != nil {
		return err
	}

	var completed int64
	if err := tx.Model(&models.ReportData{}).
		Where("report_id = ? AND status = ?", reportID, models.EntryStatusCompleted).
		Count(&completed).Error; err != nil {
		return err
	}

	totalDec := decimal.NewFromInt(total)
	activeRate := decimal.NewFromInt(active).Mul(oneHundred).Div(totalDec).Round(2)
	completionRate := decimal.NewFromInt(completed).Mul(oneHundred).Div(totalDec).Round(2)

	return tx.Model(&models.Report{}).
		Where("id = ?", reportID).
		Updates(map[string]interface{}{
			"total_entries":   total,
			"active_rate":     activeRate,
			"completion_rate": completionRate,
		}).Error
}
