package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Report is a field-service report assigned to one user within a geographic area.
// TotalEntries, ActiveRate and CompletionRate are derived from the child entries and
// must only be written by the aggregation engine.
type Report struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Status      string `gorm:"size:20;default:pending" json:"status"` // pending, in_progress, completed
	County      string `gorm:"size:50;index" json:"county"`
	Sublocation string `gorm:"size:50" json:"sublocation"`

	AssignedToID uint  `gorm:"index;not null" json:"assigned_to"`
	AssignedTo   *User `gorm:"foreignKey:AssignedToID" json:"assigned_to_user,omitempty"`
	CreatedByID  uint  `gorm:"index;not null" json:"created_by"`
	CreatedBy    *User `gorm:"foreignKey:CreatedByID" json:"created_by_user,omitempty"`

	TotalEntries   int             `gorm:"default:0" json:"total_entries"`
	ActiveRate     decimal.Decimal `gorm:"type:decimal(5,2);default:0" json:"active_rate"`
	CompletionRate decimal.Decimal `gorm:"type:decimal(5,2);default:0" json:"completion_rate"`

	ManagerFeedback string `gorm:"type:text" json:"manager_feedback"`

	Entries []ReportData `gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE" json:"entries,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Report) TableName() string { return "reports" }
