package services

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "finledger/internal/errors"
	"finledger/internal/models"
)

const defaultFraudWindow = 5 * time.Second

// fraudAmountThreshold is the single-transfer amount at or above which a
// transfer is flagged regardless of history.
var fraudAmountThreshold = decimal.NewFromInt(80000)

// fraudDetector finds prior transfers between an account pair inside a short
// time window. Any such match makes the whole set, plus the transfer under
// evaluation, jointly fraudulent.
type fraudDetector struct {
	db     *gorm.DB
	window time.Duration
}

func newFraudDetector(db *gorm.DB) *fraudDetector {
	return &fraudDetector{db: db, window: defaultFraudWindow}
}

// Matches returns every stored transaction from sourceNumber to targetNumber
// dated strictly after now minus the window, excluding the transaction under
// evaluation. Repeated transfers between the same pair accumulate matches on
// each attempt.
func (d *fraudDetector) Matches(sourceNumber, targetNumber string, now time.Time, excludeID uint) ([]models.Transaction, error) {
	since := now.Add(-d.window)

	var matches []models.Transaction
	err := d.db.Model(&models.Transaction{}).
		Joins("JOIN accounts AS src ON src.id = transactions.source_account_id").
		Joins("JOIN accounts AS tgt ON tgt.id = transactions.target_account_id").
		Where("src.account_number = ? AND tgt.account_number = ?", sourceNumber, targetNumber).
		Where("transactions.date > ?", since).
		Where("transactions.id <> ?", excludeID).
		Find(&matches).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return matches, nil
}

// isFraudulent applies the flagging policy to a proposed transfer.
func isFraudulent(amount decimal.Decimal, matches []models.Transaction) bool {
	return amount.GreaterThanOrEqual(fraudAmountThreshold) || len(matches) > 0
}
