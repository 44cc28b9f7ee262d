package services

import (
	"github.com/OmondiJoshua/GLOBAL-GTM/internal/models"
	"gorm.io/gorm"
)

// Role-based visibility is a single filter predicate, not polymorphic dispatch:
// agents see what is assigned to them, supervisors see their county, managers see
// everything, anyone else sees nothing.

// ScopeReports narrows a reports query to what the user may see.
func ScopeReports(query *gorm.DB, user *models.User) *gorm.DB {
	if user == nil {
		return query.Where("1 = 0")
	}
	switch user.Role {
	case models.RoleAgent:
		return query.Where("reports.assigned_to_id = ?", user.ID)
	case models.RoleSupervisor:
		return query.Where("reports.county = ?", user.County)
	case models.RoleManager:
		return query
	default:
		return query.Where("1 = 0")
	}
}

// ScopeEntries narrows an entries query to what the user may see. Entry visibility
// follows the parent report.
func ScopeEntries(query *gorm.DB, user *models.User) *gorm.DB {
	if user == nil {
		return query.Where("1 = 0")
	}
	switch user.Role {
	case models.RoleAgent:
		return query.Select("report_data.*").
			Joins("JOIN reports ON reports.id = report_data.report_id").
			Where("reports.assigned_to_id = ?", user.ID)
	case models.RoleSupervisor:
		return query.Select("report_data.*").
			Joins("JOIN reports ON reports.id = report_data.report_id").
			Where("reports.county = ?", user.County)
	case models.RoleManager:
		return query
	default:
		return query.Where("1 = 0")
	}
}

// CanViewReport reports whether the user may see a single report.
func CanViewReport(user *models.User, report *models.Report) bool {
	if user == nil {
		return false
	}
	switch user.Role {
	case models.RoleAgent:
		return report.AssignedToID == user.ID
	case models.RoleSupervisor:
		return report.County == user.County
	case models.RoleManager:
		return true
	default:
		return false
	}
}
