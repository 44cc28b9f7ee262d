package handlers

import (
	"strconv"

	"github.com/OmondiJoshua/GLOBAL-GTM/internal/models"
	"github.com/OmondiJoshua/GLOBAL-GTM/internal/services"
	"github.com/OmondiJoshua/GLOBAL-GTM/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{userService: services.NewUserService(db)}
}

// List returns paginated active users
// GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	var req services.UserListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.userService.List(&req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, resp)
}

// Agents returns all active agents
// GET /api/users/agents
func (h *UserHandler) Agents(c *gin.Context) {
	users, err := h.userService.ListByRole(models.RoleAgent)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, users)
}

// Supervisors returns all active supervisors
// GET /api/users/supervisors
func (h *UserHandler) Supervisors(c *gin.Context) {
	users, err := h.userService.ListByRole(models.RoleSupervisor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, users)
}

// Create creates a user; agents and supervisors get a generated employee ID
// POST /api/users
func (h *UserHandler) Create(c *gin.Context) {
	var req services.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.Create(&req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, user)
}

// Update applies partial changes to a user
// PUT /api/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	var req services.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.Update(uint(id), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

// Deactivate disables a user account
// DELETE /api/users/:id
func (h *UserHandler) Deactivate(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	if err := h.userService.Deactivate(uint(id)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "user deactivated"})
}
