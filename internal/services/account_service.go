package services

import (
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "finledger/internal/errors"
	"finledger/internal/models"
	"finledger/internal/pagination"
)

const (
	accountNumberLength  = 6
	accountNumberCharset = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// accountService handles account-related business logic.
type accountService struct {
	db             *gorm.DB
	investmentLogs InvestmentLogServicer
}

// NewAccountService creates a new AccountServicer.
func NewAccountService(db *gorm.DB, investmentLogs InvestmentLogServicer) AccountServicer {
	return &accountService{db: db, investmentLogs: investmentLogs}
}

// CreateAccount creates a secondary account for the caller. The caller must
// present their own main account number as authorization; a mismatch fails
// with INVALID_ACCOUNT. Invest accounts get a creation entry in the
// investment account log.
func (s *accountService) CreateAccount(email, mainAccountNumber, accountType string) (*models.Account, error) {
	user, err := s.getUserByEmail(email)
	if err != nil {
		return nil, err
	}

	if user.MainAccount == nil || user.MainAccount.AccountNumber != mainAccountNumber {
		return nil, apperrors.ErrInvalidAccount
	}

	number, err := generateAccountNumber(s.db)
	if err != nil {
		return nil, err
	}

	account := &models.Account{
		AccountNumber: number,
		UserID:        user.ID,
		AccountType:   accountType,
		Balance:       decimal.Zero,
	}
	if err := s.db.Create(account).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if accountType == models.AccountTypeInvest {
		s.investmentLogs.Log("Investment Account Created", account.ID)
	}

	return account, nil
}

// GetMainAccount retrieves the main account of the user with the given email.
func (s *accountService) GetMainAccount(email string) (*models.Account, error) {
	user, err := s.getUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if user.MainAccount == nil {
		return nil, apperrors.ErrAccountNotFound
	}
	return user.MainAccount, nil
}

// GetAccountByNumber retrieves an account by its account number.
func (s *accountService) GetAccountByNumber(accountNumber string) (*models.Account, error) {
	var account models.Account
	if err := s.db.Where("account_number = ?", accountNumber).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, nil
}

// GetAccountByIndex retrieves an account by its position in the user's
// account list, in creation order. Index 0 is the main account.
func (s *accountService) GetAccountByIndex(email string, index int) (*models.Account, error) {
	user, err := s.getUserByEmail(email)
	if err != nil {
		return nil, err
	}

	var accounts []models.Account
	if err := s.db.Where("user_id = ?", user.ID).Order("id ASC").Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if index < 0 || index >= len(accounts) {
		return nil, apperrors.WithMessage(apperrors.ErrAccountNotFound,
			fmt.Sprintf("Account not found for the given index: %d", index))
	}
	return &accounts[index], nil
}

// GetUserAccounts retrieves a paginated list of the user's accounts.
func (s *accountService) GetUserAccounts(email string, page pagination.PageRequest) (*pagination.PageResponse[models.Account], error) {
	user, err := s.getUserByEmail(email)
	if err != nil {
		return nil, err
	}

	page.Defaults()

	base := s.db.Model(&models.Account{}).Where("user_id = ?", user.ID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var accounts []models.Account
	if err := base.Scopes(pagination.Paginate(page)).Order("id ASC").Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(accounts, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func (s *accountService) getUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("MainAccount").Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// generateAccountNumber produces a fresh 6-character lowercase alphanumeric
// account number, retrying until it does not collide with a stored one.
func generateAccountNumber(db *gorm.DB) (string, error) {
	for {
		number, err := randomAccountNumber()
		if err != nil {
			return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		var count int64
		if err := db.Model(&models.Account{}).Where("account_number = ?", number).Count(&count).Error; err != nil {
			return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count == 0 {
			return number, nil
		}
	}
}

func randomAccountNumber() (string, error) {
	buf := make([]byte, accountNumberLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = accountNumberCharset[int(b)%len(accountNumberCharset)]
	}
	return string(buf), nil
}
