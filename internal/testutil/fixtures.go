package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"finanzas/internal/domain"
	"finanzas/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// TestPassword is the plain-text password of every fixture user.
const TestPassword = "password123"

// CreateTestUser creates a user with a hashed password and unique username.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithUsername(t, db, fmt.Sprintf("user%d", nextID()))
}

// CreateTestUserWithUsername creates a user with the given username.
func CreateTestUserWithUsername(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username: username,
		Password: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestTransaction creates a transaction of the given type and amount dated today.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID string, txType domain.TransactionType, amount int64) *models.Transaction {
	t.Helper()
	return CreateTestTransactionOn(t, db, userID, txType, amount, domain.DateOf(time.Now()))
}

// CreateTestTransactionOn creates a transaction on a specific day.
func CreateTestTransactionOn(t *testing.T, db *gorm.DB, userID string, txType domain.TransactionType, amount int64, date domain.Date) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:      userID,
		Date:        date,
		Type:        string(txType),
		Category:    fmt.Sprintf("Category %d", nextID()),
		Amount:      amount,
		Description: "test transaction",
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestDebt creates a debt whose balance equals its total.
func CreateTestDebt(t *testing.T, db *gorm.DB, userID string, total int64) *models.Debt {
	t.Helper()

	day := 15
	debt := &models.Debt{
		UserID:      userID,
		Name:        fmt.Sprintf("Test Debt %d", nextID()),
		TotalAmount: total,
		Balance:     total,
		Deadline:    domain.DateOf(time.Now()).AddDays(90),
		Category:    "Deudas",
		PaymentDay:  &day,
	}
	if err := db.Create(debt).Error; err != nil {
		t.Fatalf("failed to create test debt: %v", err)
	}
	return debt
}

// CreateTestGoal creates a savings goal with nothing saved yet.
func CreateTestGoal(t *testing.T, db *gorm.DB, userID string, target int64) *models.SavingsGoal {
	t.Helper()

	goal := &models.SavingsGoal{
		UserID:       userID,
		Name:         fmt.Sprintf("Test Goal %d", nextID()),
		TargetAmount: target,
		Deadline:     domain.DateOf(time.Now()).AddDays(180),
		Color:        "#0ea5e9",
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}

// CreateTestTag creates a stored tag.
func CreateTestTag(t *testing.T, db *gorm.DB, userID string, tagType domain.TransactionType, name string) *models.Tag {
	t.Helper()

	tag := &models.Tag{UserID: userID, Type: string(tagType), Name: name}
	if err := db.Create(tag).Error; err != nil {
		t.Fatalf("failed to create test tag: %v", err)
	}
	return tag
}
