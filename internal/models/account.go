package models

import "github.com/shopspring/decimal"

// Account types with special behavior. AccountType is a free-form tag;
// anything other than Main and Invest is stored as-is.
const (
	AccountTypeMain   = "Main"
	AccountTypeInvest = "Invest"
)

// Account represents a financial account owned by a user. Its balance is
// mutated only by the transaction engine and the interest accrual job.
type Account struct {
	Base
	// AccountNumber is the human-facing identifier: 6 lowercase
	// alphanumeric characters, globally unique.
	AccountNumber string          `gorm:"uniqueIndex;not null;size:6" json:"account_number"`
	UserID        uint            `gorm:"not null;index" json:"user_id"`
	AccountType   string          `gorm:"not null" json:"account_type"`
	Balance       decimal.Decimal `gorm:"type:decimal(20,6);not null" json:"balance"`
}
