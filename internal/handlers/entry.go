package handlers

import (
	"net/http"
	"strconv"

	"github.com/OmondiJoshua/GLOBAL-GTM/internal/services"
	"github.com/OmondiJoshua/GLOBAL-GTM/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type EntryHandler struct {
	db            *gorm.DB
	entryService  *services.EntryService
	exportService *services.ExportService
}

func NewEntryHandler(db *gorm.DB) *EntryHandler {
	return &EntryHandler{
		db:            db,
		entryService:  services.NewEntryService(db),
		exportService: services.NewExportService(db),
	}
}

// List returns the entries visible to the requesting user
// GET /api/entries
func (h *EntryHandler) List(c *gin.Context) {
	user, ok := currentUser(h.db, c)
	if !ok {
		return
	}

	var req services.EntryListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.entryService.List(user, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, resp)
}

// GetByID returns a single entry
// GET /api/entries/:id
func (h *EntryHandler) GetByID(c *gin.Context) {
	user, ok := currentUser(h.db, c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid entry id")
		return
	}

	entry, err := h.entryService.GetByID(user, uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, entry)
}

// Create creates an entry and recomputes the parent report aggregates
// POST /api/entries
func (h *EntryHandler) Create(c *gin.Context) {
	var req services.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	entry, err := h.entryService.Create(&req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, entry)
}

type bulkCreateRequest struct {
	ReportID uint                          `json:"report_id" binding:"required"`
	Entries  []services.CreateEntryRequest `json:"entries" binding:"required"`
}

// BulkCreate creates several entries for one report atomically
// POST /api/entries/bulk
func (h *EntryHandler) BulkCreate(c *gin.Context) {
	var req bulkCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	entries, err := h.entryService.BulkCreate(req.ReportID, req.Entries)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, entries)
}

// Update applies partial changes to an entry
// PUT /api/entries/:id
func (h *EntryHandler) Update(c *gin.Context) {
	user, ok := currentUser(h.db, c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid entry id")
		return
	}

	var req services.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	entry, err := h.entryService.Update(user, uint(id), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, entry)
}

// Export streams the visible entries as an xlsx workbook
// GET /api/entries/export
func (h *EntryHandler) Export(c *gin.Context) {
	user, ok := currentUser(h.db, c)
	if !ok {
		return
	}

	var reportID uint
	if raw := c.Query("report_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.BadRequest(c, "invalid report_id")
			return
		}
		reportID = uint(id)
	}

	f, err := h.exportService.ExportEntries(user, reportID)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="`+services.ExportFilename(reportID)+`"`)
	if err := f.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}
