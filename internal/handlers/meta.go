package handlers

import (
	"github.com/OmondiJoshua/GLOBAL-GTM/internal/models"
	"github.com/OmondiJoshua/GLOBAL-GTM/pkg/response"
	"github.com/gin-gonic/gin"
)

// MetaHandler serves the static dropdown choice lists.
type MetaHandler struct{}

func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

// Counties lists the Kenya county choices
// GET /api/meta/counties
func (h *MetaHandler) Counties(c *gin.Context) {
	response.Success(c, models.Counties)
}

// Sublocations lists the sublocation choices
// GET /api/meta/sublocations
func (h *MetaHandler) Sublocations(c *gin.Context) {
	response.Success(c, models.Sublocations)
}

// ServiceTypes lists the entry service type choices
// GET /api/meta/service-types
func (h *MetaHandler) ServiceTypes(c *gin.Context) {
	response.Success(c, models.ServiceTypes)
}

// Priorities lists the entry priority choices
// GET /api/meta/priorities
func (h *MetaHandler) Priorities(c *gin.Context) {
	response.Success(c, models.Priorities)
}
