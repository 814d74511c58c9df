package services

import (
	"time"

	"github.com/shopspring/decimal"

	"finledger/internal/models"
	"finledger/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(name, email, password string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}

// AccountServicer defines the contract for account-related business logic.
type AccountServicer interface {
	CreateAccount(email, mainAccountNumber, accountType string) (*models.Account, error)
	GetMainAccount(email string) (*models.Account, error)
	GetAccountByNumber(accountNumber string) (*models.Account, error)
	GetAccountByIndex(email string, index int) (*models.Account, error)
	GetUserAccounts(email string, page pagination.PageRequest) (*pagination.PageResponse[models.Account], error)
}

// TransactionServicer defines the contract for the transaction engine. All
// operations act on the caller's main account, resolved by email.
type TransactionServicer interface {
	Deposit(email string, amount decimal.Decimal) error
	Withdraw(email string, amount decimal.Decimal) error
	Transfer(email, targetAccountNumber string, amount decimal.Decimal) error
	GetHistory() ([]models.Transaction, error)
}

// TokenServicer defines the contract for the issued-token blacklist.
type TokenServicer interface {
	StoreToken(userID uint, token string, expiresAt time.Time) error
	InvalidateToken(token string) error
	IsTokenRevoked(token string) (bool, error)
}

// InvestmentLogServicer defines the contract for the investment account
// audit trail.
type InvestmentLogServicer interface {
	Log(action string, accountID uint)
}
