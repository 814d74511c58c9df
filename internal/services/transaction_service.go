package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "finledger/internal/errors"
	"finledger/internal/models"
)

// transactionService is the transaction engine. It orchestrates deposits,
// withdrawals, and transfers: fund validation, fee settlement, fraud policy,
// and the balance and status mutations that follow.
//
// Each operation persists in three observable steps: the PENDING transaction
// row, the balance update, and the terminal status. The steps are
// deliberately not wrapped in one database transaction so a caller polling
// mid-operation observes the PENDING state. Consistency under concurrency
// comes from the per-account locks instead.
type transactionService struct {
	db             *gorm.DB
	accountService AccountServicer
	locker         *AccountLocker
	fraud          *fraudDetector
}

// NewTransactionService creates a new TransactionServicer. The locker must be
// the same instance the interest accrual job uses.
func NewTransactionService(db *gorm.DB, accountService AccountServicer, locker *AccountLocker) TransactionServicer {
	return &transactionService{
		db:             db,
		accountService: accountService,
		locker:         locker,
		fraud:          newFraudDetector(db),
	}
}

// Deposit credits the caller's main account. Deposits at or above the fee
// threshold settle at 98% of the requested amount; the transaction records
// the requested amount.
func (s *transactionService) Deposit(email string, amount decimal.Decimal) error {
	account, err := s.accountService.GetMainAccount(email)
	if err != nil {
		return err
	}

	unlock := s.locker.Lock(account.ID)
	defer unlock()

	if err := s.reload(account); err != nil {
		return err
	}

	transaction := &models.Transaction{
		Amount:          amount,
		Type:            models.TransactionTypeDeposit,
		Status:          models.TransactionStatusPending,
		Date:            time.Now().UTC(),
		TargetAccountID: &account.ID,
	}
	if err := s.db.Create(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	account.Balance = account.Balance.Add(settleDeposit(amount))
	if err := s.saveBalance(account); err != nil {
		return err
	}

	return s.saveStatus(transaction, models.TransactionStatusApproved)
}

// Withdraw debits the caller's main account. Sufficiency is checked against
// the requested amount; withdrawals at or above the fee threshold settle at
// 101%, which can drive the balance negative on the boundary. That quirk is
// kept for compatibility with the reference behavior.
func (s *transactionService) Withdraw(email string, amount decimal.Decimal) error {
	account, err := s.accountService.GetMainAccount(email)
	if err != nil {
		return err
	}

	unlock := s.locker.Lock(account.ID)
	defer unlock()

	if err := s.reload(account); err != nil {
		return err
	}

	if account.Balance.LessThan(amount) {
		return apperrors.ErrInsufficientFunds
	}

	transaction := &models.Transaction{
		Amount:          amount,
		Type:            models.TransactionTypeWithdrawal,
		Status:          models.TransactionStatusPending,
		Date:            time.Now().UTC(),
		SourceAccountID: &account.ID,
	}
	if err := s.db.Create(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	account.Balance = account.Balance.Sub(settleWithdrawal(amount))
	if err := s.saveBalance(account); err != nil {
		return err
	}

	return s.saveStatus(transaction, models.TransactionStatusApproved)
}

// Transfer moves funds from the caller's main account to the account with the
// given number. The PENDING transaction is persisted before fraud evaluation.
// A flagged transfer sweeps all window matches plus itself to FRAUD, but the
// balance mutation happens regardless of the fraud outcome: flagged transfers
// still settle. That is the reference behavior, preserved as a documented
// flag-for-review model.
func (s *transactionService) Transfer(email, targetAccountNumber string, amount decimal.Decimal) error {
	account, err := s.accountService.GetMainAccount(email)
	if err != nil {
		return err
	}

	// Sufficiency takes precedence over target resolution: an underfunded
	// transfer to an unknown account reports insufficient funds. The check
	// repeats on the reloaded row once the locks are held.
	if account.Balance.LessThan(amount) {
		return apperrors.ErrInsufficientFunds
	}

	target, err := s.accountService.GetAccountByNumber(targetAccountNumber)
	if err != nil {
		return err
	}

	unlock := s.locker.Lock(account.ID, target.ID)
	defer unlock()

	if err := s.reload(account); err != nil {
		return err
	}
	if err := s.reload(target); err != nil {
		return err
	}

	if account.Balance.LessThan(amount) {
		return apperrors.ErrInsufficientFunds
	}

	transaction := &models.Transaction{
		Amount:          amount,
		Type:            models.TransactionTypeTransfer,
		Status:          models.TransactionStatusPending,
		Date:            time.Now().UTC(),
		SourceAccountID: &account.ID,
		TargetAccountID: &target.ID,
	}
	if err := s.db.Create(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	matches, err := s.fraud.Matches(account.AccountNumber, target.AccountNumber, transaction.Date, transaction.ID)
	if err != nil {
		return err
	}

	if isFraudulent(amount, matches) {
		if err := s.markTransactionsAsFraud(matches); err != nil {
			return err
		}
		transaction.Status = models.TransactionStatusFraud
	} else {
		transaction.Status = models.TransactionStatusApproved
	}

	account.Balance = account.Balance.Sub(amount)
	target.Balance = target.Balance.Add(amount)
	if err := s.saveBalance(account); err != nil {
		return err
	}
	if err := s.saveBalance(target); err != nil {
		return err
	}

	return s.saveStatus(transaction, transaction.Status)
}

// GetHistory returns every transaction in the system in creation order, with
// source and target accounts preloaded. The read is system-wide, not scoped
// to the caller; that broad scope matches the reference behavior.
func (s *transactionService) GetHistory() ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := s.db.Preload("SourceAccount").Preload("TargetAccount").
		Order("id ASC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// markTransactionsAsFraud sweeps a snapshot of matched transactions to FRAUD.
// This retroactively flips transfers that were already APPROVED.
func (s *transactionService) markTransactionsAsFraud(matches []models.Transaction) error {
	for i := range matches {
		matches[i].Status = models.TransactionStatusFraud
		if err := s.db.Model(&matches[i]).Update("status", models.TransactionStatusFraud).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return nil
}

// reload refreshes an account row inside the account lock so the balance
// check sees the latest committed state.
func (s *transactionService) reload(account *models.Account) error {
	if err := s.db.First(account, account.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrAccountNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *transactionService) saveBalance(account *models.Account) error {
	if err := s.db.Model(account).Update("balance", account.Balance).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *transactionService) saveStatus(transaction *models.Transaction, status models.TransactionStatus) error {
	transaction.Status = status
	if err := s.db.Model(transaction).Update("status", status).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
