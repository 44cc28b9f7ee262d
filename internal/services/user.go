package services

import (
	"errors"
	"strings"

	"github.com/OmondiJoshua/GLOBAL-GTM/internal/models"
	"github.com/OmondiJoshua/GLOBAL-GTM/internal/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserService owns user management and employee-ID finalization.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

type CreateUserRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Role        string `json:"role" binding:"required"`
	County      string `json:"county" binding:"required"`
	Sublocation string `json:"sublocation" binding:"required"`
}

type UpdateUserRequest struct {
	Email       *string `json:"email"`
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	PhoneNumber *string `json:"phone_number"`
	County      *string `json:"county"`
	Sublocation *string `json:"sublocation"`
	IsActive    *bool   `json:"is_active"`
}

type UserListRequest struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Role     string `form:"role"`
	County   string `form:"county"`
}

type UserListResponse struct {
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
	Items    []models.User `json:"items"`
}

// generateEmployeeID builds "AGT"/"SUP" + 8 uppercase hex chars.
func generateEmployeeID(role string) string {
	prefix := "AGT"
	if role == models.RoleSupervisor {
		prefix = "SUP"
	}
	hexChars := strings.ReplaceAll(uuid.New().String(), "-", "")
	return prefix + strings.ToUpper(hexChars[:8])
}

// FinalizeUser resolves the employee ID and credentials before first persist:
// agents and supervisors without an ID get a generated one, a blank username
// becomes the employee ID, and a missing password defaults to the employee ID so
// first login works with the ID alone. Managers never receive an auto ID.
// The plaintext password is returned for hashing by the caller.
func FinalizeUser(user *models.User, plainPassword string) string {
	if user.EmployeeID == "" && (user.Role == models.RoleAgent || user.Role == models.RoleSupervisor) {
		user.EmployeeID = generateEmployeeID(user.Role)
		if user.Username == "" {
			user.Username = user.EmployeeID
		}
		if plainPassword == "" {
			plainPassword = user.EmployeeID
		}
	}
	return plainPassword
}

// Create creates a user, finalizing employee ID and credentials. A generated ID
// that collides with an existing one is regenerated once before the error is
// surfaced.
func (s *UserService) Create(req *CreateUserRequest) (*models.User, error) {
	if !models.ValidRole(req.Role) {
		return nil, ErrValidation("invalid role: " + req.Role)
	}
	if !models.ValidCounty(req.County) {
		return nil, ErrValidation("invalid county: " + req.County)
	}
	if !models.ValidSublocation(req.Sublocation) {
		return nil, ErrValidation("invalid sublocation: " + req.Sublocation)
	}
	if req.Role == models.RoleManager && req.Username == "" {
		return nil, ErrValidation("username is required for managers")
	}

	user := models.User{
		Username:    req.Username,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Role:        req.Role,
		County:      req.County,
		Sublocation: req.Sublocation,
		IsActive:    true,
	}

	plain := FinalizeUser(&user, req.Password)
	if plain == "" {
		return nil, ErrValidation("password is required")
	}

	hash, err := utils.HashPassword(plain)
	if err != nil {
		return nil, err
	}
	user.Password = hash

	if err := s.db.Create(&user).Error; err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		if req.Username != "" {
			// Collision on a caller-supplied username or ID is not retriable.
			return nil, ErrIntegrity("username or employee_id already exists")
		}
		// Generated employee ID collided; regenerate once and retry.
		user.EmployeeID = ""
		user.Username = ""
		plain = FinalizeUser(&user, req.Password)
		hash, err = utils.HashPassword(plain)
		if err != nil {
			return nil, err
		}
		user.Password = hash
		if err := s.db.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrIntegrity("employee_id collision persisted after retry")
			}
			return nil, err
		}
	}

	return &user, nil
}

// GetByID returns a user by ID.
func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

// List returns paginated active users with optional role/county filters.
func (s *UserService) List(req *UserListRequest) (*UserListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 20
	}

	query := s.db.Model(&models.User{}).Where("is_active = ?", true)
	if req.Role != "" {
		query = query.Where("role = ?", req.Role)
	}
	if req.County != "" {
		query = query.Where("county = ?", req.County)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var users []models.User
	offset := (req.Page - 1) * req.PageSize
	if err := query.Order("id ASC").Offset(offset).Limit(req.PageSize).Find(&users).Error; err != nil {
		return nil, err
	}

	return &UserListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    users,
	}, nil
}

// ListByRole returns all active users with the given role.
func (s *UserService) ListByRole(role string) ([]models.User, error) {
	var users []models.User
	if err := s.db.Where("role = ? AND is_active = ?", role, true).
		Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Update applies partial changes to a user. Role and employee_id are immutable here.
func (s *UserService) Update(id uint, req *UpdateUserRequest) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("user not found")
		}
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = *req.PhoneNumber
	}
	if req.County != nil {
		if !models.ValidCounty(*req.County) {
			return nil, ErrValidation("invalid county: " + *req.County)
		}
		updates["county"] = *req.County
	}
	if req.Sublocation != nil {
		if !models.ValidSublocation(*req.Sublocation) {
			return nil, ErrValidation("invalid sublocation: " + *req.Sublocation)
		}
		updates["sublocation"] = *req.Sublocation
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) == 0 {
		return nil, ErrValidation("no fields to update")
	}

	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Deactivate marks a user inactive without deleting it.
func (s *UserService) Deactivate(id uint) error {
	res := s.db.Model(&models.User{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound("user not found")
	}
	return nil
}
