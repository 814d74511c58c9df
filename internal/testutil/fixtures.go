package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"finledger/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// NextAccountNumber returns a unique 6-character lowercase account number.
func NextAccountNumber() string {
	return fmt.Sprintf("ac%04d", nextID()%10000)
}

// CreateTestUser creates a user with a hashed password, a unique email, and
// a Main account with the given balance.
func CreateTestUser(t *testing.T, db *gorm.DB, balance decimal.Decimal) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email, balance)
}

// CreateTestUserWithEmail creates a user with the given email and a Main
// account with the given balance.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string, balance decimal.Decimal) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("Password1!"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Name:           fmt.Sprintf("Test User %d", nextID()),
		Email:          email,
		HashedPassword: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	account := CreateTestAccount(t, db, user.ID, models.AccountTypeMain, balance)
	user.MainAccountID = &account.ID
	user.MainAccount = account
	if err := db.Model(user).Update("main_account_id", account.ID).Error; err != nil {
		t.Fatalf("failed to link main account: %v", err)
	}
	return user
}

// CreateTestAccount creates an account of the given type and balance.
func CreateTestAccount(t *testing.T, db *gorm.DB, userID uint, accountType string, balance decimal.Decimal) *models.Account {
	t.Helper()

	account := &models.Account{
		AccountNumber: NextAccountNumber(),
		UserID:        userID,
		AccountType:   accountType,
		Balance:       balance,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestTransfer creates a transfer transaction between two accounts with
// the given status and date.
func CreateTestTransfer(t *testing.T, db *gorm.DB, source, target *models.Account, amount decimal.Decimal, status models.TransactionStatus, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		Amount:          amount,
		Type:            models.TransactionTypeTransfer,
		Status:          status,
		Date:            date,
		SourceAccountID: &source.ID,
		TargetAccountID: &target.ID,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transfer: %v", err)
	}
	return tx
}
