package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "CASH_DEPOSIT"
	TransactionTypeWithdrawal TransactionType = "CASH_WITHDRAWAL"
	TransactionTypeTransfer   TransactionType = "CASH_TRANSFER"
)

// TransactionStatus represents the lifecycle state of a transaction.
// A transaction is created PENDING and transitions exactly once to a
// terminal state. The only exception is the fraud sweep, which may flip
// previously approved transfers to FRAUD.
type TransactionStatus string

const (
	TransactionStatusPending  TransactionStatus = "PENDING"
	TransactionStatusApproved TransactionStatus = "APPROVED"
	TransactionStatusFraud    TransactionStatus = "FRAUD"
)

// Transaction represents a ledger entry. Amount is the originally requested
// amount, not the fee-adjusted settled amount. Deposits have only a target
// account, withdrawals only a source, transfers both.
type Transaction struct {
	Base
	Amount decimal.Decimal   `gorm:"type:decimal(20,6);not null" json:"amount"`
	Type   TransactionType   `gorm:"not null" json:"transaction_type"`
	Status TransactionStatus `gorm:"not null" json:"transaction_status"`

	// Date is the creation timestamp, immutable after creation.
	Date time.Time `gorm:"not null;index" json:"transaction_date"`

	SourceAccountID *uint    `gorm:"index" json:"source_account_id,omitempty"`
	TargetAccountID *uint    `gorm:"index" json:"target_account_id,omitempty"`
	SourceAccount   *Account `gorm:"foreignKey:SourceAccountID" json:"source_account,omitempty"`
	TargetAccount   *Account `gorm:"foreignKey:TargetAccountID" json:"target_account,omitempty"`
}
