package models

import "time"

// ReportData is one service record belonging to a report. EntryNumber is assigned
// once at creation and never regenerated; IsActive is derived from Status on every
// save.
type ReportData struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	ReportID uint    `gorm:"index;not null;uniqueIndex:idx_report_entry_number,priority:1" json:"report"`
	Report   *Report `gorm:"foreignKey:ReportID" json:"-"`

	EntryNumber string `gorm:"size:50;not null;uniqueIndex:idx_report_entry_number,priority:2" json:"entry_number"`

	// Locked customer fields, set at creation
	CustomerName  string `gorm:"size:200;not null" json:"customer_name"`
	CustomerPhone string `gorm:"size:15" json:"customer_phone"`
	Location      string `gorm:"size:200" json:"location"`

	ServiceType string `gorm:"size:50" json:"service_type"` // installation, maintenance, repair, upgrade, consultation
	Priority    string `gorm:"size:20" json:"priority"`     // low, medium, high, urgent
	Status      string `gorm:"size:20;default:pending" json:"status"`
	IsActive    bool   `gorm:"default:false" json:"is_active"` // derived: status in_progress or completed

	AgentFeedback      string `gorm:"type:text" json:"agent_feedback"`
	SupervisorFeedback string `gorm:"type:text" json:"supervisor_feedback"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ReportData) TableName() string { return "report_data" }
