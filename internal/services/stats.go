package services

import (
	"github.com/OmondiJoshua/GLOBAL-GTM/internal/models"
	"gorm.io/gorm"
)

// StatsService produces the manager dashboard rollups.
type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

type UserStats struct {
	TotalAgents      int64 `json:"total_agents"`
	TotalSupervisors int64 `json:"total_supervisors"`
}

type ReportStats struct {
	TotalReports     int64   `json:"total_reports"`
	CompletedReports int64   `json:"completed_reports"`
	PendingReports   int64   `json:"pending_reports"`
	CompletionRate   float64 `json:"completion_rate"`
}

type CountyStats struct {
	County        string  `json:"county"`
	Total         int64   `json:"total"`
	Completed     int64   `json:"completed"`
	AvgActiveRate float64 `json:"avg_active_rate"`
}

type ManagerStatistics struct {
	UserStats     UserStats       `json:"user_stats"`
	ReportStats   ReportStats     `json:"report_stats"`
	CountyStats   []CountyStats   `json:"county_stats"`
	RecentReports []models.Report `json:"recent_reports"`
	RecentUsers   []models.User   `json:"recent_users"`
}

// ManagerStatistics aggregates user counts, report status totals, a per-county
// rollup and the five most recent reports and users.
func (s *StatsService) ManagerStatistics() (*ManagerStatistics, error) {
	stats := &ManagerStatistics{}

	if err := s.db.Model(&models.User{}).
		Where("role = ? AND is_active = ?", models.RoleAgent, true).
		Count(&stats.UserStats.TotalAgents).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.User{}).
		Where("role = ? AND is_active = ?", models.RoleSupervisor, true).
		Count(&stats.UserStats.TotalSupervisors).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Report{}).Count(&stats.ReportStats.TotalReports).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Report{}).
		Where("status = ?", models.ReportStatusCompleted).
		Count(&stats.ReportStats.CompletedReports).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Report{}).
		Where("status = ?", models.ReportStatusPending).
		Count(&stats.ReportStats.PendingReports).Error; err != nil {
		return nil, err
	}
	if stats.ReportStats.TotalReports > 0 {
		stats.ReportStats.CompletionRate = float64(stats.ReportStats.CompletedReports) /
			float64(stats.ReportStats.TotalReports) * 100
	}

	if err := s.db.Model(&models.Report{}).
		Select("county, COUNT(*) AS total, SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS completed, AVG(active_rate) AS avg_active_rate",
			models.ReportStatusCompleted).
		Group("county").
		Scan(&stats.CountyStats).Error; err != nil {
		return nil, err
	}

	if err := s.db.Preload("AssignedTo").
		Order("created_at DESC").Limit(5).
		Find(&stats.RecentReports).Error; err != nil {
		return nil, err
	}
	if err := s.db.Where("role IN ?", []string{models.RoleAgent, models.RoleSupervisor}).
		Order("created_at DESC").Limit(5).
		Find(&stats.RecentUsers).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
