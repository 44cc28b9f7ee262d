package handlers

import (
	"strconv"

	"github.com/OmondiJoshua/GLOBAL-GTM/internal/middleware"
	"github.com/OmondiJoshua/GLOBAL-GTM/internal/services"
	"github.com/OmondiJoshua/GLOBAL-GTM/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ReportHandler struct {
	db            *gorm.DB
	reportService *services.ReportService
}

func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{
		db:            db,
		reportService: services.NewReportService(db),
	}
}

// List returns the reports visible to the requesting user
// GET /api/reports
func (h *ReportHandler) List(c *gin.Context) {
	user, ok := currentUser(h.db, c)
	if !ok {
		return
	}

	var req services.ReportListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.reportService.List(user, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, resp)
}

// GetByID returns a report with entries and aggregates
// GET /api/reports/:id
func (h *ReportHandler) GetByID(c *gin.Context) {
	user, ok := currentUser(h.db, c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid report id")
		return
	}

	report, err := h.reportService.GetByID(user, uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, report)
}

// Create creates a new report
// POST /api/reports
func (h *ReportHandler) Create(c *gin.Context) {
	var req services.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	report, err := h.reportService.Create(&req, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, report)
}

// Update applies partial changes to a report
// PUT /api/reports/:id
func (h *ReportHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid report id")
		return
	}

	var req services.UpdateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	report, err := h.reportService.Update(uint(id), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, report)
}

// Delete removes a report and its entries
// DELETE /api/reports/:id
func (h *ReportHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid report id")
		return
	}

	if err := h.reportService.Delete(uint(id)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "report deleted"})
}
