package services

import (
	"testing"

	"github.com/OmondiJoshua/GLOBAL-GTM/internal/models"
	"github.com/shopspring/decimal"
)

func getReport(t *testing.T, svc *EntryService, reportID uint) *models.Report {
	t.Helper()
	var report models.Report
	if err := svc.db.First(&report, reportID).Error; err != nil {
		t.Fatalf("failed to reload report: %v", err)
	}
	return &report
}

func wantRate(t *testing.T, name string, got decimal.Decimal, want float64) {
	t.Helper()
	if !got.Equal(decimal.NewFromFloat(want)) {
		t.Errorf("%s = %s, expected %v", name, got, want)
	}
}

func TestAggregates_NewReportDefaults(t *testing.T) {
	db := setupTestDB(t)
	agent := createTestUser(t, db, models.RoleAgent, "nairobi")
	report := createTestReport(t, db, agent, "nairobi")

	if report.TotalEntries != 0 {
		t.Errorf("TotalEntries = %d, expected 0", report.TotalEntries)
	}
	wantRate(t, "ActiveRate", report.ActiveRate, 0)
	wantRate(t, "CompletionRate", report.CompletionRate, 0)
}

func TestAggregates_FollowEntryLifecycle(t *testing.T) {
	db := setupTestDB(t)
	agent := createTestUser(t, db, models.RoleAgent, "nairobi")
	report := createTestReport(t, db, agent, "nairobi")
	svc := NewEntryService(db)

	// One pending entry: counted, but neither active nor complete
	e1 := createTestEntry(t, db, report.ID, models.EntryStatusPending)

	got := getReport(t, svc, report.ID)
	if got.TotalEntries != 1 {
		t.Errorf("TotalEntries = %d, expected 1", got.TotalEntries)
	}
	wantRate(t, "ActiveRate", got.ActiveRate, 0)
	wantRate(t, "CompletionRate", got.CompletionRate, 0)

	// Completing the entry drives both rates to 100
	status := models.EntryStatusCompleted
	if _, err := svc.Update(agent, e1.ID, &UpdateEntryRequest{Status: &status}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got = getReport(t, svc, report.ID)
	if got.TotalEntries != 1 {
		t.Errorf("TotalEntries = %d, expected 1", got.TotalEntries)
	}
	wantRate(t, "ActiveRate", got.ActiveRate, 100)
	wantRate(t, "CompletionRate", got.CompletionRate, 100)

	// A second in-progress entry keeps the active rate at 100 and halves completion
	createTestEntry(t, db, report.ID, models.EntryStatusInProgress)

	got = getReport(t, svc, report.ID)
	if got.TotalEntries != 2 {
		t.Errorf("TotalEntries = %d, expected 2", got.TotalEntries)
	}
	wantRate(t, "ActiveRate", got.ActiveRate, 100)
	wantRate(t, "CompletionRate", got.CompletionRate, 50)
}

func TestAggregates_Rounding(t *testing.T) {
	db := setupTestDB(t)
	agent := createTestUser(t, db, models.RoleAgent, "nairobi")
	report := createTestReport(t, db, agent, "nairobi")
	svc := NewEntryService(db)

	createTestEntry(t, db, report.ID, models.EntryStatusInProgress)
	createTestEntry(t, db, report.ID, models.EntryStatusCompleted)
	createTestEntry(t, db, report.ID, models.EntryStatusPending)

	got := getReport(t, svc, report.ID)
	wantRate(t, "ActiveRate", got.ActiveRate, 66.67)
	wantRate(t, "CompletionRate", got.CompletionRate, 33.33)
}

func TestRecompute_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	agent := createTestUser(t, db, models.RoleAgent, "nairobi")
	report := createTestReport(t, db, agent, "nairobi")

	createTestEntry(t, db, report.ID, models.EntryStatusInProgress)
	createTestEntry(t, db, report.ID, models.EntryStatusCancelled)

	agg := NewAggregateService(db)
	if err := agg.Recompute(db, report.ID); err != nil {
		t.Fatalf("Recompute() error = %v", err)
	}

	var first models.Report
	db.First(&first, report.ID)

	if err := agg.Recompute(db, report.ID); err != nil {
		t.Fatalf("second Recompute() error = %v", err)
	}

	var second models.Report
	db.First(&second, report.ID)

	if first.TotalEntries != second.TotalEntries {
		t.Errorf("TotalEntries changed across recomputes: %d vs %d", first.TotalEntries, second.TotalEntries)
	}
	if !first.ActiveRate.Equal(second.ActiveRate) {
		t.Errorf("ActiveRate changed across recomputes: %s vs %s", first.ActiveRate, second.ActiveRate)
	}
	if !first.CompletionRate.Equal(second.CompletionRate) {
		t.Errorf("CompletionRate changed across recomputes: %s vs %s", first.CompletionRate, second.CompletionRate)
	}
}

func TestRecompute_ZeroEntriesLeavesPriorValues(t *testing.T) {
	db := setupTestDB(t)
	agent := createTestUser(t, db, models.RoleAgent, "nairobi")
	report := createTestReport(t, db, agent, "nairobi")

	// Stale aggregates written out-of-band; with no entries a recompute must not
	// touch them.
	db.Model(&models.Report{}).Where("id = ?", report.ID).Updates(map[string]interface{}{
		"total_entries":   7,
		"active_rate":     decimal.NewFromFloat(42.5),
		"completion_rate": decimal.NewFromFloat(12.25),
	})

	agg := NewAggregateService(db)
	if err := agg.Recompute(db, report.ID); err != nil {
		t.Fatalf("Recompute() error = %v", err)
	}

	var got models.Report
	db.First(&got, report.ID)
	if got.TotalEntries != 7 {
		t.Errorf("TotalEntries = %d, expected 7 (prior value)", got.TotalEntries)
	}
	wantRate(t, "ActiveRate", got.ActiveRate, 42.5)
	wantRate(t, "CompletionRate", got.CompletionRate, 12.25)
}

func TestAggregates_CancelledEntriesCountOnlyTowardsTotal(t *testing.T) {
	db := setupTestDB(t)
	agent := createTestUser(t, db, models.RoleAgent, "nairobi")
	report := createTestReport(t, db, agent, "nairobi")
	svc := NewEntryService(db)

	createTestEntry(t, db, report.ID, models.EntryStatusCancelled)
	createTestEntry(t, db, report.ID, models.EntryStatusCancelled)

	got := getReport(t, svc, report.ID)
	if got.TotalEntries != 2 {
		t.Errorf("TotalEntries = %d, expected 2", got.TotalEntries)
	}
	wantRate(t, "ActiveRate", got.ActiveRate, 0)
	wantRate(t, "CompletionRate", got.CompletionRate, 0)
}
