package services

import (
	"fmt"
	"testing"

	"finanzas/internal/models"
	"finanzas/internal/pagination"
	"finanzas/internal/testutil"
)

func TestAuditLog(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAuditService(db)
	user := testutil.CreateTestUser(t, db)

	svc.Log(user.ID, "CREATE_TRANSACTION", "transaction", "tx-1", "127.0.0.1", map[string]interface{}{"amount": 500})

	var entry models.AuditLog
	if err := db.Where("user_id = ?", user.ID).First(&entry).Error; err != nil {
		t.Fatalf("audit entry not stored: %v", err)
	}
	if entry.Action != "CREATE_TRANSACTION" || entry.ResourceID != "tx-1" {
		t.Errorf("unexpected entry: %+v", entry)
	}
	if entry.Changes != `{"amount":500}` {
		t.Errorf("unexpected changes: %s", entry.Changes)
	}
}

func TestListActivity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAuditService(db)
	user := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)

	for i := 0; i < 5; i++ {
		svc.Log(user.ID, "CREATE_GOAL", "goal", fmt.Sprintf("g-%d", i), "", nil)
	}
	svc.Log(other.ID, "CREATE_GOAL", "goal", "x", "", nil)

	page, err := svc.ListActivity(user.ID, pagination.PageRequest{Page: 1, PageSize: 2})
	testutil.AssertNoError(t, err)

	if page.TotalItems != 5 || page.TotalPages != 3 {
		t.Errorf("expected 5 items over 3 pages, got %d/%d", page.TotalItems, page.TotalPages)
	}
	if len(page.Data) != 2 || page.Data[0].ResourceID != "g-4" {
		t.Errorf("expected newest first, got %+v", page.Data)
	}

	defaults, err := svc.ListActivity(user.ID, pagination.PageRequest{})
	testutil.AssertNoError(t, err)
	if defaults.Page != 1 || defaults.PageSize != 20 || len(defaults.Data) != 5 {
		t.Errorf("unexpected default page: %+v", defaults)
	}
}
