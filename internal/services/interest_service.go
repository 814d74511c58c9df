package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "finledger/internal/errors"
	"finledger/internal/logger"
	"finledger/internal/models"
)

// interestMultiplier is the fixed per-run interest rate for Invest accounts.
var interestMultiplier = decimal.NewFromFloat(1.10)

// InterestService periodically accrues interest on every Invest account.
// Each account is an independent unit of work: a failure on one account is
// logged and does not stop the batch.
type InterestService struct {
	db             *gorm.DB
	locker         *AccountLocker
	investmentLogs InvestmentLogServicer
	interval       time.Duration
}

// NewInterestService creates a new InterestService. The locker must be the
// same instance the transaction engine uses so accrual never interleaves
// with a transfer or withdrawal on the same account.
func NewInterestService(db *gorm.DB, locker *AccountLocker, investmentLogs InvestmentLogServicer, interval time.Duration) *InterestService {
	return &InterestService{
		db:             db,
		locker:         locker,
		investmentLogs: investmentLogs,
		interval:       interval,
	}
}

// Start runs the accrual loop until the context is cancelled.
func (s *InterestService) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		logger.Get().Infow("interest accrual job started", "interval", s.interval.String())
		for {
			select {
			case <-ctx.Done():
				logger.Get().Info("interest accrual job stopped")
				return
			case <-ticker.C:
				s.ApplyInterest()
			}
		}
	}()
}

// ApplyInterest performs one accrual pass over all Invest accounts.
func (s *InterestService) ApplyInterest() {
	var accounts []models.Account
	if err := s.db.Where("account_type = ?", models.AccountTypeInvest).Find(&accounts).Error; err != nil {
		logger.Get().Errorw("failed to fetch investment accounts", "error", err)
		return
	}

	for i := range accounts {
		if err := s.applyToAccount(&accounts[i]); err != nil {
			logger.Get().Errorw("failed to apply interest",
				"error", err,
				"account_id", accounts[i].ID,
				"account_number", accounts[i].AccountNumber,
			)
			continue
		}
		logger.Get().Infow("interest applied",
			"account_id", accounts[i].ID,
			"account_number", accounts[i].AccountNumber,
			"balance", accounts[i].Balance.String(),
		)
	}
}

func (s *InterestService) applyToAccount(account *models.Account) error {
	unlock := s.locker.Lock(account.ID)
	defer unlock()

	// Re-read inside the lock; a concurrent transfer may have settled since
	// the batch was fetched.
	if err := s.db.First(account, account.ID).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	account.Balance = account.Balance.Mul(interestMultiplier)
	if err := s.db.Model(account).Update("balance", account.Balance).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.investmentLogs.Log("Interest Applied", account.ID)
	return nil
}
