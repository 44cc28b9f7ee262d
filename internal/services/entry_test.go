package services

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/OmondiJoshua/GLOBAL-GTM/internal/models"
)

func TestCreateEntry_NumbersAreSequential(t *testing.T) {
	db := setupTestDB(t)
	agent := createTestUser(t, db, models.RoleAgent, "nairobi")
	report := createTestReport(t, db, agent, "nairobi")

	for i := 1; i <= 3; i++ {
		entry := createTestEntry(t, db, report.ID, models.EntryStatusPending)
		want := fmt.Sprintf("%d-ENT-%04d", report.ID, i)
		if entry.EntryNumber != want {
			t.Errorf("entry %d: EntryNumber = %q, expected %q", i, entry.EntryNumber, want)
		}
	}
}

func TestCreateEntry_SequencesAreIndependentPerReport(t *testing.T) {
	db := setupTestDB(t)
	agent := createTestUser(t, db, models.RoleAgent, "nairobi")
	r1 := createTestReport(t, db, agent, "nairobi")
	r2 := createTestReport(t, db, agent, "nairobi")

	createTestEntry(t, db, r1.ID, models.EntryStatusPending)
	createTestEntry(t, db, r1.ID, models.EntryStatusPending)
	e := createTestEntry(t, db, r2.ID, models.EntryStatusPending)

	want := fmt.Sprintf("%d-ENT-0001", r2.ID)
	if e.EntryNumber != want {
		t.Errorf("EntryNumber = %q, expected %q", e.EntryNumber, want)
	}
}

func TestCreateEntry_ExplicitNumber(t *testing.T) {
	db := setupTestDB(t)
	agent := createTestUser(t, db, models.RoleAgent, "nairobi")
	report := createTestReport(t, db, agent, "nairobi")
	svc := NewEntryService(db)

	entry, err := svc.Create(&CreateEntryRequest{
		ReportID:     report.ID,
		EntryNumber:  "CUSTOM-001",
		CustomerName: "Achieng Odhiambo",
		ServiceType:  "repair",
		Priority:     "high",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if entry.EntryNumber != "CUSTOM-001" {
		t.Errorf("EntryNumber = %q, expected CUSTOM-001", entry.EntryNumber)
	}

	// Reusing the same number on the same report is rejected
	_, err = svc.Create(&CreateEntryRequest{
		ReportID:     report.ID,
		EntryNumber:  "CUSTOM-001",
		CustomerName: "Mutua Kilonzo",
		ServiceType:  "repair",
		Priority:     "high",
	})
	wantAppError(t, err, http.StatusBadRequest)

	// The same number on a different report is fine
	other := createTestReport(t, db, agent, "nairobi")
	if _, err := svc.Create(&CreateEntryRequest{
		ReportID:     other.ID,
		EntryNumber:  "CUSTOM-001",
		CustomerName: "Mutua Kilonzo",
		ServiceType:  "repair",
		Priority:     "high",
	}); err != nil {
		t.Fatalf("Create() on second report error = %v", err)
	}
}

func TestCreateEntry_DefaultsAndDerivedFields(t *testing.T) {
	db := setupTestDB(t)
	agent := createTestUser(t, db, models.RoleAgent, "nairobi")
	report := createTestReport(t, db, agent, "nairobi")
	svc := NewEntryService(db)

	entry, err := svc.Create(&CreateEntryRequest{
		ReportID:     report.ID,
		CustomerName: "Njeri Kariuki",
		ServiceType:  "installation",
		Priority:     "low",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if entry.Status != models.EntryStatusPending {
		t.Errorf("Status = %q, expected pending default", entry.Status)
	}
	if entry.IsActive {
		t.Error("IsActive = true for pending entry, expected false")
	}

	cases := []struct {
		status string
		active bool
	}{
		{models.EntryStatusPending, false},
		{models.EntryStatusInProgress, true},
		{models.EntryStatusCompleted, true},
		{models.EntryStatusCancelled, false},
	}
	for _, tc := range cases {
		e := createTestEntry(t, db, report.ID, tc.status)
		if e.IsActive != tc.active {
			t.Errorf("status %s: IsActive = %v, expected %v", tc.status, e.IsActive, tc.active)
		}
	}
}

func TestCreateEntry_Validation(t *testing.T) {
	db := setupTestDB(t)
	agent := createTestUser(t, db, models.RoleAgent, "nairobi")
	report := createTestReport(t, db, agent, "nairobi")
	svc := NewEntryService(db)

	_, err := svc.Create(&CreateEntryRequest{
		ReportID:     report.ID,
		CustomerName: "Njeri Kariuki",
		ServiceType:  "plumbing",
		Priority:     "low",
	})
	wantAppError(t, err, http.StatusBadRequest)

	_, err = svc.Create(&CreateEntryRequest{
		ReportID:     report.ID,
		CustomerName: "Njeri Kariuki",
		ServiceType:  "installation",
		Priority:     "extreme",
	})
	wantAppError(t, err, http.StatusBadRequest)

	_, err = svc.Create(&CreateEntryRequest{
		ReportID:     report.ID,
		CustomerName: "Njeri Kariuki",
		ServiceType:  "installation",
		Priority:     "low",
		Status:       "done",
	})
	wantAppError(t, err, http.StatusBadRequest)
}

func TestCreateEntry_MissingReport(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEntryService(db)

	_, err := svc.Create(&CreateEntryRequest{
		ReportID:     9999,
		CustomerName: "Njeri Kariuki",
		ServiceType:  "installation",
		Priority:     "low",
	})
	wantAppError(t, err, http.StatusNotFound)
}

func TestUpdateEntry_StatusRederivesIsActive(t *testing.T) {
	db := setupTestDB(t)
	agent := createTestUser(t, db, models.RoleAgent, "nairobi")
	report := createTestReport(t, db, agent, "nairobi")
	svc := NewEntryService(db)

	entry := createTestEntry(t, db, report.ID, models.EntryStatusInProgress)
	if !entry.IsActive {
		t.Fatal("IsActive = false for in_progress entry")
	}

	status := models.EntryStatusCancelled
	updated, err := svc.Update(agent, entry.ID, &UpdateEntryRequest{Status: &status})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Status != models.EntryStatusCancelled {
		t.Errorf("Status = %q, expected cancelled", updated.Status)
	}
	if updated.IsActive {
		t.Error("IsActive = true after cancellation, expected false")
	}
}

func TestUpdateEntry_NumberIsImmutable(t *testing.T) {
	db := setupTestDB(t)
	agent := createTestUser(t, db, models.RoleAgent, "nairobi")
	report := createTestReport(t, db, agent, "nairobi")
	svc := NewEntryService(db)

	entry := createTestEntry(t, db, report.ID, models.EntryStatusPending)
	original := entry.EntryNumber

	name := "Otieno Omondi"
	updated, err := svc.Update(agent, entry.ID, &UpdateEntryRequest{CustomerName: &name})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.EntryNumber != original {
		t.Errorf("EntryNumber changed from %q to %q", original, updated.EntryNumber)
	}
	if updated.CustomerName != name {
		t.Errorf("CustomerName = %q, expected %q", updated.CustomerName, name)
	}
}

func TestUpdateEntry_NoFields(t *testing.T) {
	db := setupTestDB(t)
	agent := createTestUser(t, db, models.RoleAgent, "nairobi")
	report := createTestReport(t, db, agent, "nairobi")
	svc := NewEntryService(db)

	entry := createTestEntry(t, db, report.ID, models.EntryStatusPending)
	_, err := svc.Update(agent, entry.ID, &UpdateEntryRequest{})
	wantAppError(t, err, http.StatusBadRequest)
}

func TestUpdateEntry_OutOfScopeIsNotFound(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, models.RoleAgent, "nairobi")
	stranger := createTestUser(t, db, models.RoleAgent, "nairobi")
	report := createTestReport(t, db, owner, "nairobi")
	svc := NewEntryService(db)

	entry := createTestEntry(t, db, report.ID, models.EntryStatusPending)

	name := "Otieno Omondi"
	_, err := svc.Update(stranger, entry.ID, &UpdateEntryRequest{CustomerName: &name})
	wantAppError(t, err, http.StatusNotFound)
}

func TestBulkCreate_Atomic(t *testing.T) {
	db := setupTestDB(t)
	agent := createTestUser(t, db, models.RoleAgent, "nairobi")
	report := createTestReport(t, db, agent, "nairobi")
	svc := NewEntryService(db)

	// Second request reuses the first request's explicit number, so the whole
	// batch must roll back.
	reqs := []CreateEntryRequest{
		{CustomerName: "Achieng Odhiambo", ServiceType: "installation", Priority: "low", EntryNumber: "BULK-1"},
		{CustomerName: "Mutua Kilonzo", ServiceType: "repair", Priority: "high", EntryNumber: "BULK-1"},
	}
	_, err := svc.BulkCreate(report.ID, reqs)
	wantAppError(t, err, http.StatusBadRequest)

	var count int64
	db.Model(&models.ReportData{}).Where("report_id = ?", report.ID).Count(&count)
	if count != 0 {
		t.Errorf("entry count after failed bulk create = %d, expected 0", count)
	}

	var got models.Report
	db.First(&got, report.ID)
	if got.TotalEntries != 0 {
		t.Errorf("TotalEntries after failed bulk create = %d, expected 0", got.TotalEntries)
	}
}

func TestBulkCreate_Success(t *testing.T) {
	db := setupTestDB(t)
	agent := createTestUser(t, db, models.RoleAgent, "nairobi")
	report := createTestReport(t, db, agent, "nairobi")
	svc := NewEntryService(db)

	reqs := []CreateEntryRequest{
		{CustomerName: "Achieng Odhiambo", ServiceType: "installation", Priority: "low", Status: models.EntryStatusCompleted},
		{CustomerName: "Mutua Kilonzo", ServiceType: "repair", Priority: "high"},
	}
	entries, err := svc.BulkCreate(report.ID, reqs)
	if err != nil {
		t.Fatalf("BulkCreate() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, expected 2", len(entries))
	}
	if entries[0].EntryNumber == entries[1].EntryNumber {
		t.Errorf("both entries got number %q", entries[0].EntryNumber)
	}

	var got models.Report
	db.First(&got, report.ID)
	if got.TotalEntries != 2 {
		t.Errorf("TotalEntries = %d, expected 2", got.TotalEntries)
	}
	wantRate(t, "CompletionRate", got.CompletionRate, 50)
}

func TestBulkCreate_EmptyBatch(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEntryService(db)

	_, err := svc.BulkCreate(1, nil)
	wantAppError(t, err, http.StatusBadRequest)
}

func TestListEntries_FiltersAndPagination(t *testing.T) {
	db := setupTestDB(t)
	manager := createTestUser(t, db, models.RoleManager, "nairobi")
	agent := createTestUser(t, db, models.RoleAgent, "nairobi")
	r1 := createTestReport(t, db, agent, "nairobi")
	r2 := createTestReport(t, db, agent, "nairobi")
	svc := NewEntryService(db)

	for i := 0; i < 3; i++ {
		createTestEntry(t, db, r1.ID, models.EntryStatusPending)
	}
	createTestEntry(t, db, r2.ID, models.EntryStatusCompleted)

	resp, err := svc.List(manager, &EntryListRequest{ReportID: r1.ID})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if resp.Total != 3 {
		t.Errorf("Total = %d, expected 3", resp.Total)
	}

	resp, err = svc.List(manager, &EntryListRequest{Status: models.EntryStatusCompleted})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if resp.Total != 1 {
		t.Errorf("Total = %d, expected 1", resp.Total)
	}

	resp, err = svc.List(manager, &EntryListRequest{Page: 2, PageSize: 3})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if resp.Total != 4 {
		t.Errorf("Total = %d, expected 4", resp.Total)
	}
	if len(resp.Items) != 1 {
		t.Errorf("len(Items) on page 2 = %d, expected 1", len(resp.Items))
	}
}
