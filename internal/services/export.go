package services

import (
	"fmt"

	"github.com/OmondiJoshua/GLOBAL-GTM/internal/models"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportService builds spreadsheet exports of entry data.
type ExportService struct {
	db *gorm.DB
}

func NewExportService(db *gorm.DB) *ExportService {
	return &ExportService{db: db}
}

var exportHeaders = []string{
	"Entry Number", "Customer Name", "Customer Phone", "Location",
	"Service Type", "Priority", "Status", "Agent Feedback",
	"Supervisor Feedback", "Created At",
}

// ExportEntries writes the entries visible to the user into an xlsx workbook,
// optionally filtered by report. The caller owns closing the file.
func (s *ExportService) ExportEntries(user *models.User, reportID uint) (*excelize.File, error) {
	query := ScopeEntries(s.db.Model(&models.ReportData{}), user)
	if reportID != 0 {
		query = query.Where("report_data.report_id = ?", reportID)
	}

	var entries []models.ReportData
	if err := query.Order("report_data.id ASC").Find(&entries).Error; err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Report Data"
	f.SetSheetName("Sheet1", sheet)

	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	for row, entry := range entries {
		values := []interface{}{
			entry.EntryNumber,
			entry.CustomerName,
			entry.CustomerPhone,
			entry.Location,
			entry.ServiceType,
			entry.Priority,
			entry.Status,
			entry.AgentFeedback,
			entry.SupervisorFeedback,
			entry.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	// Widen the customer and feedback columns for readability
	if err := f.SetColWidth(sheet, "A", "J", 20); err != nil {
		return nil, err
	}

	return f, nil
}

// ExportFilename returns the download filename for an export.
func ExportFilename(reportID uint) string {
	if reportID == 0 {
		return "report_data.xlsx"
	}
	return fmt.Sprintf("report_%d_data.xlsx", reportID)
}
