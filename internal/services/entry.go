package services

import (
	"errors"
	"fmt"

	"github.com/OmondiJoshua/GLOBAL-GTM/internal/models"
	"gorm.io/gorm"
)

// EntryService owns the entry lifecycle: number assignment, status-derived active
// flag, and the synchronous aggregate recomputation on the parent report.
type EntryService struct {
	db         *gorm.DB
	aggregates *AggregateService
}

func NewEntryService(db *gorm.DB) *EntryService {
	return &EntryService{db: db, aggregates: NewAggregateService(db)}
}

type CreateEntryRequest struct {
	ReportID           uint   `json:"report_id" binding:"required"`
	EntryNumber        string `json:"entry_number"`
	CustomerName       string `json:"customer_name" binding:"required"`
	CustomerPhone      string `json:"customer_phone"`
	Location           string `json:"location"`
	ServiceType        string `json:"service_type" binding:"required"`
	Priority           string `json:"priority" binding:"required"`
	Status             string `json:"status"`
	AgentFeedback      string `json:"agent_feedback"`
	SupervisorFeedback string `json:"supervisor_feedback"`
}

// UpdateEntryRequest carries the mutable entry fields. EntryNumber and IsActive are
// system-derived and cannot be set by callers.
type UpdateEntryRequest struct {
	CustomerName       *string `json:"customer_name"`
	CustomerPhone      *string `json:"customer_phone"`
	Location           *string `json:"location"`
	ServiceType        *string `json:"service_type"`
	Priority           *string `json:"priority"`
	Status             *string `json:"status"`
	AgentFeedback      *string `json:"agent_feedback"`
	SupervisorFeedback *string `json:"supervisor_feedback"`
}

type EntryListRequest struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	ReportID uint   `form:"report_id"`
	Status   string `form:"status"`
}

type EntryListResponse struct {
	Total    int64               `json:"total"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
	Items    []models.ReportData `json:"items"`
}

func (r *CreateEntryRequest) validate() error {
	if !models.ValidServiceType(r.ServiceType) {
		return ErrValidation("invalid service_type: " + r.ServiceType)
	}
	if !models.ValidPriority(r.Priority) {
		return ErrValidation("invalid priority: " + r.Priority)
	}
	if r.Status == "" {
		r.Status = models.EntryStatusPending
	}
	if !models.ValidEntryStatus(r.Status) {
		return ErrValidation("invalid status: " + r.Status)
	}
	return nil
}

// Create inserts a new entry, assigns its number, derives is_active and recomputes
// the parent aggregates, all in one transaction.
func (s *EntryService) Create(req *CreateEntryRequest) (*models.ReportData, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	var entry models.ReportData
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var report models.Report
		if err := tx.First(&report, req.ReportID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound("report not found")
			}
			return err
		}

		number, err := s.resolveEntryNumber(tx, report.ID, req.EntryNumber)
		if err != nil {
			return err
		}

		entry = models.ReportData{
			ReportID:           report.ID,
			EntryNumber:        number,
			CustomerName:       req.CustomerName,
			CustomerPhone:      req.CustomerPhone,
			Location:           req.Location,
			ServiceType:        req.ServiceType,
			Priority:           req.Priority,
			Status:             req.Status,
			IsActive:           models.EntryStatusActive(req.Status),
			AgentFeedback:      req.AgentFeedback,
			SupervisorFeedback: req.SupervisorFeedback,
		}
		if err := tx.Create(&entry).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrValidation("entry_number already exists for this report")
			}
			return err
		}

		return s.aggregates.Recompute(tx, report.ID)
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// BulkCreate inserts several entries for one report atomically. Either every entry
// is created or none is.
func (s *EntryService) BulkCreate(reportID uint, reqs []CreateEntryRequest) ([]models.ReportData, error) {
	if len(reqs) == 0 {
		return nil, ErrValidation("no entries supplied")
	}
	for i := range reqs {
		reqs[i].ReportID = reportID
		if err := reqs[i].validate(); err != nil {
			return nil, err
		}
	}

	var entries []models.ReportData
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var report models.Report
		if err := tx.First(&report, reportID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound("report not found")
			}
			return err
		}

		for i := range reqs {
			req := &reqs[i]
			number, err := s.resolveEntryNumber(tx, report.ID, req.EntryNumber)
			if err != nil {
				return err
			}
			entry := models.ReportData{
				ReportID:           report.ID,
				EntryNumber:        number,
				CustomerName:       req.CustomerName,
				CustomerPhone:      req.CustomerPhone,
				Location:           req.Location,
				ServiceType:        req.ServiceType,
				Priority:           req.Priority,
				Status:             req.Status,
				IsActive:           models.EntryStatusActive(req.Status),
				AgentFeedback:      req.AgentFeedback,
				SupervisorFeedback: req.SupervisorFeedback,
			}
			if err := tx.Create(&entry).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return ErrValidation("entry_number already exists for this report")
				}
				return err
			}
			entries = append(entries, entry)
		}

		return s.aggregates.Recompute(tx, report.ID)
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Update applies the mutable fields, rederives is_active from the resulting status
// and recomputes the parent aggregates in the same transaction.
func (s *EntryService) Update(user *models.User, id uint, req *UpdateEntryRequest) (*models.ReportData, error) {
	var entry models.ReportData
	if err := ScopeEntries(s.db.Model(&models.ReportData{}), user).
		Where("report_data.id = ?", id).
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("entry not found")
		}
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.CustomerName != nil {
		updates["customer_name"] = *req.CustomerName
	}
	if req.CustomerPhone != nil {
		updates["customer_phone"] = *req.CustomerPhone
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.ServiceType != nil {
		if !models.ValidServiceType(*req.ServiceType) {
			return nil, ErrValidation("invalid service_type: " + *req.ServiceType)
		}
		updates["service_type"] = *req.ServiceType
	}
	if req.Priority != nil {
		if !models.ValidPriority(*req.Priority) {
			return nil, ErrValidation("invalid priority: " + *req.Priority)
		}
		updates["priority"] = *req.Priority
	}
	if req.Status != nil {
		if !models.ValidEntryStatus(*req.Status) {
			return nil, ErrValidation("invalid status: " + *req.Status)
		}
		updates["status"] = *req.Status
		updates["is_active"] = models.EntryStatusActive(*req.Status)
	}
	if req.AgentFeedback != nil {
		updates["agent_feedback"] = *req.AgentFeedback
	}
	if req.SupervisorFeedback != nil {
		updates["supervisor_feedback"] = *req.SupervisorFeedback
	}

	if len(updates) == 0 {
		return nil, ErrValidation("no fields to update")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ReportData{}).
			Where("id = ?", entry.ID).
			Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.First(&entry, entry.ID).Error; err != nil {
			return err
		}
		return s.aggregates.Recompute(tx, entry.ReportID)
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// GetByID returns a single entry visible to the user.
func (s *EntryService) GetByID(user *models.User, id uint) (*models.ReportData, error) {
	var entry models.ReportData
	if err := ScopeEntries(s.db.Model(&models.ReportData{}), user).
		Where("report_data.id = ?", id).
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("entry not found")
		}
		return nil, err
	}
	return &entry, nil
}

// List returns paginated entries visible to the user.
func (s *EntryService) List(user *models.User, req *EntryListRequest) (*EntryListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 20
	}

	query := ScopeEntries(s.db.Model(&models.ReportData{}), user)
	if req.ReportID != 0 {
		query = query.Where("report_data.report_id = ?", req.ReportID)
	}
	if req.Status != "" {
		query = query.Where("report_data.status = ?", req.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var entries []models.ReportData
	offset := (req.Page - 1) * req.PageSize
	if err := query.Order("report_data.id ASC").
		Offset(offset).Limit(req.PageSize).
		Find(&entries).Error; err != nil {
		return nil, err
	}

	return &EntryListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    entries,
	}, nil
}

// resolveEntryNumber returns the explicit number after a collision check, or the
// next value from the per-report sequence.
func (s *EntryService) resolveEntryNumber(tx *gorm.DB, reportID uint, explicit string) (string, error) {
	if explicit != "" {
		var count int64
		if err := tx.Model(&models.ReportData{}).
			Where("report_id = ? AND entry_number = ?", reportID, explicit).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count > 0 {
			return "", ErrValidation("entry_number already exists for this report")
		}
		return explicit, nil
	}
	return nextEntryNumber(tx, reportID)
}

// nextEntryNumber increments the report's sequence row and formats the entry number.
// The increment is a single UPDATE so concurrent creates serialize on the row lock
// instead of racing a read-then-write.
func nextEntryNumber(tx *gorm.DB, reportID uint) (string, error) {
	res := tx.Model(&models.ReportSequence{}).
		Where("report_id = ?", reportID).
		UpdateColumn("last_seq", gorm.Expr("last_seq + 1"))
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected == 0 {
		err := tx.Create(&models.ReportSequence{ReportID: reportID, LastSeq: 1}).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				return "", err
			}
			// Another transaction created the row first; increment it instead.
			res = tx.Model(&models.ReportSequence{}).
				Where("report_id = ?", reportID).
				UpdateColumn("last_seq", gorm.Expr("last_seq + 1"))
			if res.Error != nil {
				return "", res.Error
			}
		}
	}

	var seq models.ReportSequence
	if err := tx.First(&seq, "report_id = ?", reportID).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("%d-ENT-%04d", reportID, seq.LastSeq), nil
}
