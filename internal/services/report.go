package services

import (
	"errors"

	"github.com/OmondiJoshua/GLOBAL-GTM/internal/models"
	"gorm.io/gorm"
)

type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

type ReportListRequest struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Status   string `form:"status"`
	County   string `form:"county"`
}

type ReportListResponse struct {
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
	Items    []models.Report `json:"items"`
}

type CreateReportRequest struct {
	Title           string `json:"title" binding:"required"`
	Description     string `json:"description"`
	Status          string `json:"status"`
	County          string `json:"county" binding:"required"`
	Sublocation     string `json:"sublocation" binding:"required"`
	AssignedToID    uint   `json:"assigned_to" binding:"required"`
	ManagerFeedback string `json:"manager_feedback"`
}

type UpdateReportRequest struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	Status          *string `json:"status"`
	AssignedToID    *uint   `json:"assigned_to"`
	ManagerFeedback *string `json:"manager_feedback"`
}

// List returns paginated reports visible to the user.
func (s *ReportService) List(user *models.User, req *ReportListRequest) (*ReportListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 20
	}

	query := ScopeReports(s.db.Model(&models.Report{}), user)
	if req.Status != "" {
		query = query.Where("reports.status = ?", req.Status)
	}
	if req.County != "" {
		query = query.Where("reports.county = ?", req.County)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var reports []models.Report
	offset := (req.Page - 1) * req.PageSize
	if err := query.Preload("AssignedTo").Preload("CreatedBy").
		Order("reports.created_at DESC").
		Offset(offset).Limit(req.PageSize).
		Find(&reports).Error; err != nil {
		return nil, err
	}

	return &ReportListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    reports,
	}, nil
}

// GetByID returns a report with its entries, subject to the user's scope.
func (s *ReportService) GetByID(user *models.User, id uint) (*models.Report, error) {
	var report models.Report
	if err := ScopeReports(s.db.Model(&models.Report{}), user).
		Preload("AssignedTo").Preload("CreatedBy").Preload("Entries").
		Where("reports.id = ?", id).
		First(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("report not found")
		}
		return nil, err
	}
	return &report, nil
}

// Create creates a new report assigned to a user.
func (s *ReportService) Create(req *CreateReportRequest, createdByID uint) (*models.Report, error) {
	if req.Status == "" {
		req.Status = models.ReportStatusPending
	}
	if !models.ValidReportStatus(req.Status) {
		return nil, ErrValidation("invalid status: " + req.Status)
	}
	if !models.ValidCounty(req.County) {
		return nil, ErrValidation("invalid county: " + req.County)
	}
	if !models.ValidSublocation(req.Sublocation) {
		return nil, ErrValidation("invalid sublocation: " + req.Sublocation)
	}

	var assignee models.User
	if err := s.db.First(&assignee, req.AssignedToID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrValidation("assigned_to user does not exist")
		}
		return nil, err
	}

	report := models.Report{
		Title:           req.Title,
		Description:     req.Description,
		Status:          req.Status,
		County:          req.County,
		Sublocation:     req.Sublocation,
		AssignedToID:    req.AssignedToID,
		CreatedByID:     createdByID,
		ManagerFeedback: req.ManagerFeedback,
	}
	if err := s.db.Create(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// Update applies partial changes to a report. The derived aggregate fields are not
// caller-settable.
func (s *ReportService) Update(id uint, req *UpdateReportRequest) (*models.Report, error) {
	var report models.Report
	if err := s.db.First(&report, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("report not found")
		}
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Status != nil {
		if !models.ValidReportStatus(*req.Status) {
			return nil, ErrValidation("invalid status: " + *req.Status)
		}
		updates["status"] = *req.Status
	}
	if req.AssignedToID != nil {
		var assignee models.User
		if err := s.db.First(&assignee, *req.AssignedToID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrValidation("assigned_to user does not exist")
			}
			return nil, err
		}
		updates["assigned_to_id"] = *req.AssignedToID
	}
	if req.ManagerFeedback != nil {
		updates["manager_feedback"] = *req.ManagerFeedback
	}

	if len(updates) == 0 {
		return nil, ErrValidation("no fields to update")
	}

	if err := s.db.Model(&report).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// Delete removes a report together with its entries and sequence row.
func (s *ReportService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var report models.Report
		if err := tx.First(&report, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound("report not found")
			}
			return err
		}
		if err := tx.Where("report_id = ?", id).Delete(&models.ReportData{}).Error; err != nil {
			return err
		}
		if err := tx.Where("report_id = ?", id).Delete(&models.ReportSequence{}).Error; err != nil {
			return err
		}
		return tx.Delete(&report).Error
	})
}
