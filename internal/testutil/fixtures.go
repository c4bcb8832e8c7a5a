package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"lifeos/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plaintext password of every fixture user.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email. The profile is
// not set up yet.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:         email,
		Password:      string(hash),
		Currency:      models.DefaultCurrency,
		FixedExpenses: models.FixedExpenses{},
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateSetupUser creates a user whose setup is complete, with a fixed
// monthly income and the given fixed expenses.
func CreateSetupUser(t *testing.T, db *gorm.DB, income float64, fixed models.FixedExpenses) *models.User {
	t.Helper()

	user := CreateTestUser(t, db)
	user.FirstName = "Test"
	user.MonthlyIncome = models.FixedIncome(income)
	user.FixedExpenses = fixed
	user.SetupComplete = true
	if err := db.Save(user).Error; err != nil {
		t.Fatalf("failed to complete test user setup: %v", err)
	}
	return user
}

// CreateTestTask creates an open task.
func CreateTestTask(t *testing.T, db *gorm.DB, userID uint, taskType models.TaskType) *models.Task {
	t.Helper()

	task := &models.Task{
		UserID:   userID,
		Title:    fmt.Sprintf("Test Task %d", nextID()),
		Type:     taskType,
		Priority: models.TaskPriorityNormal,
	}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("failed to create test task: %v", err)
	}
	return task
}

// CreateTestFinance creates a finance entry of the given type and amount.
func CreateTestFinance(t *testing.T, db *gorm.DB, userID uint, financeType models.FinanceType, amount float64) *models.FinanceEntry {
	t.Helper()

	entry := &models.FinanceEntry{
		UserID:   userID,
		Type:     financeType,
		Category: fmt.Sprintf("Test Category %d", nextID()),
		Amount:   amount,
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create test finance entry: %v", err)
	}
	return entry
}

// CreateTestResource creates an unread article.
func CreateTestResource(t *testing.T, db *gorm.DB, userID uint) *models.Resource {
	t.Helper()

	n := nextID()
	res := &models.Resource{
		UserID: userID,
		Label:  fmt.Sprintf("Test Resource %d", n),
		Type:   models.ResourceTypeArticle,
		URL:    fmt.Sprintf("https://example.com/%d", n),
		Status: models.ResourceStatusToRead,
	}
	if err := db.Create(res).Error; err != nil {
		t.Fatalf("failed to create test resource: %v", err)
	}
	return res
}

// CreateTestPlan creates a planner entry for day.
func CreateTestPlan(t *testing.T, db *gorm.DB, userID uint, day, note string) *models.Resource {
	t.Helper()

	plan := &models.Resource{
		UserID:   userID,
		Label:    day,
		Type:     models.ResourceTypePlanner,
		Status:   models.ResourceStatusActive,
		Category: day,
		Note:     note,
	}
	if err := db.Create(plan).Error; err != nil {
		t.Fatalf("failed to create test plan: %v", err)
	}
	return plan
}
