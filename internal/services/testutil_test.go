package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/OmondiJoshua/GLOBAL-GTM/internal/models"
	"github.com/OmondiJoshua/GLOBAL-GTM/internal/utils"
	"github.com/OmondiJoshua/GLOBAL-GTM/pkg/response"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Report{},
		&models.ReportData{},
		&models.ReportSequence{},
		&models.RefreshToken{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func wantAppError(t *testing.T, err error, httpStatus int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with status %d, got nil", httpStatus)
	}
	var appErr *response.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *response.AppError, got %T: %v", err, err)
	}
	if appErr.HTTPStatus != httpStatus {
		t.Errorf("HTTPStatus = %d, expected %d (message: %s)", appErr.HTTPStatus, httpStatus, appErr.Message)
	}
}

var testUserCounter int

func createTestUser(t *testing.T, db *gorm.DB, role, county string) *models.User {
	t.Helper()

	testUserCounter++
	hash, err := utils.HashPassword("testpass123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username:    fmt.Sprintf("user%d", testUserCounter),
		Password:    hash,
		Role:        role,
		County:      county,
		Sublocation: "central",
		IsActive:    true,
	}
	if role == models.RoleAgent || role == models.RoleSupervisor {
		user.EmployeeID = generateEmployeeID(role)
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func createTestReport(t *testing.T, db *gorm.DB, assignedTo *models.User, county string) *models.Report {
	t.Helper()

	report := &models.Report{
		Title:        "Fiber rollout",
		Description:  "Quarterly installation sweep",
		Status:       models.ReportStatusPending,
		County:       county,
		Sublocation:  "central",
		AssignedToID: assignedTo.ID,
		CreatedByID:  assignedTo.ID,
	}
	if err := db.Create(report).Error; err != nil {
		t.Fatalf("failed to create test report: %v", err)
	}
	return report
}

func createTestEntry(t *testing.T, db *gorm.DB, reportID uint, status string) *models.ReportData {
	t.Helper()

	svc := NewEntryService(db)
	entry, err := svc.Create(&CreateEntryRequest{
		ReportID:     reportID,
		CustomerName: "Wanjiku Kamau",
		ServiceType:  "installation",
		Priority:     "medium",
		Status:       status,
	})
	if err != nil {
		t.Fatalf("failed to create test entry: %v", err)
	}
	return entry
}
