package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/OmondiJoshua/GLOBAL-GTM/internal/config"
	"github.com/OmondiJoshua/GLOBAL-GTM/internal/models"
	"github.com/OmondiJoshua/GLOBAL-GTM/internal/utils"
	"gorm.io/gorm"
)

type AuthService struct {
	db        *gorm.DB
	jwtConfig *config.JWTConfig
}

func NewAuthService(db *gorm.DB, jwtCfg *config.JWTConfig) *AuthService {
	return &AuthService{db: db, jwtConfig: jwtCfg}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"` // username or employee ID
	Password string `json:"password" binding:"required"`
}

type LoginResult struct {
	AccessToken     string
	AccessExpireAt  time.Time
	RefreshToken    string
	RefreshExpireAt time.Time
	User            *models.User
	// MustChangePassword is set while the password still equals the employee ID,
	// the predictable first-login credential.
	MustChangePassword bool
	RedirectPath       string
}

type RefreshResult struct {
	AccessToken     string
	AccessExpireAt  time.Time
	RefreshToken    string
	RefreshExpireAt time.Time
}

const refreshTokenLifetime = 30 * 24 * time.Hour

// Login authenticates by username or employee ID and issues token pair.
func (s *AuthService) Login(req *LoginRequest, clientIP string) (*LoginResult, error) {
	var user models.User
	if err := s.db.Where("username = ? OR employee_id = ?", req.Username, req.Username).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrValidation("invalid username or password")
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrPermission("user account is disabled")
	}
	if !utils.CheckPassword(req.Password, user.Password) {
		return nil, ErrValidation("invalid username or password")
	}

	token, err := utils.GenerateToken(user.ID, user.Username, user.Role, s.jwtConfig.ExpireHour)
	if err != nil {
		return nil, err
	}

	refreshToken, refreshHash, err := generateRefreshToken()
	if err != nil {
		return nil, err
	}

	refreshExpireAt := time.Now().Add(refreshTokenLifetime)
	record := models.RefreshToken{
		UserID:      user.ID,
		TokenHash:   refreshHash,
		ExpiresAt:   refreshExpireAt,
		CreatedByIP: clientIP,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	user.LastLogin = &now
	s.db.Model(&user).Update("last_login", now)

	return &LoginResult{
		AccessToken:        token,
		AccessExpireAt:     now.Add(time.Duration(s.jwtConfig.ExpireHour) * time.Hour),
		RefreshToken:       refreshToken,
		RefreshExpireAt:    refreshExpireAt,
		User:               &user,
		MustChangePassword: user.EmployeeID != "" && utils.CheckPassword(user.EmployeeID, user.Password),
		RedirectPath:       redirectPathForRole(user.Role),
	}, nil
}

// Refresh rotates a refresh token: the old token is revoked and a new pair issued.
func (s *AuthService) Refresh(refreshToken, clientIP string) (*RefreshResult, error) {
	if refreshToken == "" {
		return nil, ErrValidation("refresh token required")
	}

	hash := hashRefreshToken(refreshToken)

	var stored models.RefreshToken
	if err := s.db.Where("token_hash = ?", hash).First(&stored).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrValidation("invalid refresh token")
		}
		return nil, err
	}
	if stored.RevokedAt != nil {
		return nil, ErrValidation("refresh token revoked")
	}
	if time.Now().After(stored.ExpiresAt) {
		return nil, ErrValidation("refresh token expired")
	}

	var user models.User
	if err := s.db.First(&user, stored.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("user not found")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrPermission("user account is disabled")
	}

	newAccessToken, err := utils.GenerateToken(user.ID, user.Username, user.Role, s.jwtConfig.ExpireHour)
	if err != nil {
		return nil, err
	}

	newRefreshToken, newRefreshHash, err := generateRefreshToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	newRecord := models.RefreshToken{
		UserID:      user.ID,
		TokenHash:   newRefreshHash,
		ExpiresAt:   now.Add(refreshTokenLifetime),
		CreatedByIP: clientIP,
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&newRecord).Error; err != nil {
			return err
		}
		return tx.Model(&stored).Update("revoked_at", now).Error
	}); err != nil {
		return nil, err
	}

	return &RefreshResult{
		AccessToken:     newAccessToken,
		AccessExpireAt:  now.Add(time.Duration(s.jwtConfig.ExpireHour) * time.Hour),
		RefreshToken:    newRefreshToken,
		RefreshExpireAt: newRecord.ExpiresAt,
	}, nil
}

// RevokeRefreshToken revokes a refresh token if it is still active.
func (s *AuthService) RevokeRefreshToken(refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	hash := hashRefreshToken(refreshToken)
	return s.db.Model(&models.RefreshToken{}).
		Where("token_hash = ? AND revoked_at IS NULL", hash).
		Update("revoked_at", time.Now()).Error
}

// ChangePassword verifies the old password and stores a new hash.
func (s *AuthService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return ErrValidation("new password must be at least 8 characters")
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound("user not found")
		}
		return err
	}
	if !utils.CheckPassword(oldPassword, user.Password) {
		return ErrValidation("current password is incorrect")
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.db.Model(&user).Update("password", hash).Error
}

func redirectPathForRole(role string) string {
	switch role {
	case models.RoleAgent:
		return "/dashboard/agent"
	case models.RoleSupervisor:
		return "/dashboard/supervisor"
	case models.RoleManager:
		return "/dashboard/manager"
	default:
		return "/"
	}
}

func generateRefreshToken() (token string, tokenHash string, err error) {
	randomBytes := make([]byte, 32)
	if _, err = rand.Read(randomBytes); err != nil {
		return "", "", err
	}
	token = hex.EncodeToString(randomBytes)
	tokenHash = hashRefreshToken(token)
	return token, tokenHash, nil
}

func hashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
