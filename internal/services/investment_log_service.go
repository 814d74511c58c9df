package services

import (
	"gorm.io/gorm"

	"finledger/internal/logger"
	"finledger/internal/models"
)

// investmentLogService appends entries to the investment account audit trail.
type investmentLogService struct {
	db *gorm.DB
}

// NewInvestmentLogService creates a new InvestmentLogServicer.
func NewInvestmentLogService(db *gorm.DB) InvestmentLogServicer {
	return &investmentLogService{db: db}
}

// Log appends an audit entry for an investment account. Errors are logged but
// never propagate to avoid disrupting the main operation.
func (s *investmentLogService) Log(action string, accountID uint) {
	entry := &models.InvestmentAccountLog{
		Action:    action,
		AccountID: accountID,
	}

	if err := s.db.Create(entry).Error; err != nil {
		logger.Get().Errorw("failed to create investment account log entry",
			"error", err,
			"action", action,
			"account_id", accountID,
		)
	}
}
