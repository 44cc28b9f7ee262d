package handlers

import (
	"github.com/OmondiJoshua/GLOBAL-GTM/internal/middleware"
	"github.com/OmondiJoshua/GLOBAL-GTM/internal/models"
	"github.com/OmondiJoshua/GLOBAL-GTM/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// currentUser loads the authenticated user for scoping decisions. Aborts with 401
// if the token's user no longer exists or was deactivated.
func currentUser(db *gorm.DB, c *gin.Context) (*models.User, bool) {
	id := middleware.GetUserID(c)
	if id == 0 {
		response.Unauthorized(c, "authentication required")
		return nil, false
	}

	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		response.Unauthorized(c, "user not found")
		return nil, false
	}
	if !user.IsActive {
		response.Unauthorized(c, "user account is disabled")
		return nil, false
	}
	return &user, true
}
