package handlers

import (
	"time"

	"github.com/OmondiJoshua/GLOBAL-GTM/internal/config"
	"github.com/OmondiJoshua/GLOBAL-GTM/internal/middleware"
	"github.com/OmondiJoshua/GLOBAL-GTM/internal/models"
	"github.com/OmondiJoshua/GLOBAL-GTM/internal/services"
	"github.com/OmondiJoshua/GLOBAL-GTM/internal/utils"
	"github.com/OmondiJoshua/GLOBAL-GTM/pkg/logger"
	"github.com/OmondiJoshua/GLOBAL-GTM/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthHandler struct {
	db          *gorm.DB
	authService *services.AuthService
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		db:          db,
		authService: services.NewAuthService(db, &cfg.JWT),
	}
}

type loginResponse struct {
	Token              string       `json:"token"`
	RefreshToken       string       `json:"refresh_token"`
	ExpireAt           time.Time    `json:"expire_at"`
	User               *models.User `json:"user"`
	Redirect           string       `json:"redirect"`
	MustChangePassword bool         `json:"must_change_password"`
}

// Login authenticates by username or employee ID
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.authService.Login(&req, c.ClientIP())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, loginResponse{
		Token:              result.AccessToken,
		RefreshToken:       result.RefreshToken,
		ExpireAt:           result.AccessExpireAt,
		User:               result.User,
		Redirect:           result.RedirectPath,
		MustChangePassword: result.MustChangePassword,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Refresh rotates a refresh token
// POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.authService.Refresh(req.RefreshToken, c.ClientIP())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{
		"token":         result.AccessToken,
		"refresh_token": result.RefreshToken,
		"expire_at":     result.AccessExpireAt,
	})
}

type logoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Logout revokes the refresh token
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	var req logoutRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.authService.RevokeRefreshToken(req.RefreshToken); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "logged out successfully"})
}

// GetCurrentUser returns the authenticated user
// GET /api/auth/me
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	user, ok := currentUser(h.db, c)
	if !ok {
		return
	}
	response.Success(c, user)
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ChangePassword rotates the user's credential
// POST /api/auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	userID := middleware.GetUserID(c)
	if err := h.authService.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "password changed"})
}

// CreateManagerIfNotExists seeds a default manager account on first start.
func (h *AuthHandler) CreateManagerIfNotExists() error {
	var count int64
	if err := h.db.Model(&models.User{}).
		Where("role = ?", models.RoleManager).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := utils.HashPassword("manager123")
	if err != nil {
		return err
	}

	manager := models.User{
		Username:    "manager",
		Password:    hash,
		Role:        models.RoleManager,
		County:      "nairobi",
		Sublocation: "central",
		IsActive:    true,
	}
	if err := h.db.Create(&manager).Error; err != nil {
		return err
	}

	logger.Warn().Msg("created default manager account (manager/manager123), change the password immediately")
	return nil
}
