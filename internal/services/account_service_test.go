package services

import (
	"regexp"
	"testing"

	"github.com/shopspring/decimal"

	"finledger/internal/models"
	"finledger/internal/pagination"
	"finledger/internal/testutil"
)

var accountNumberFormat = regexp.MustCompile(`^[a-z0-9]{6}$`)

func TestCreateAccount(t *testing.T) {
	t.Run("creates_invest_account_with_log_entry", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db, NewInvestmentLogService(db))
		user := testutil.CreateTestUser(t, db, decimal.Zero)

		account, err := svc.CreateAccount(user.Email, user.MainAccount.AccountNumber, models.AccountTypeInvest)
		testutil.AssertNoError(t, err)

		if !accountNumberFormat.MatchString(account.AccountNumber) {
			t.Errorf("expected 6-char lowercase alphanumeric number, got %q", account.AccountNumber)
		}
		if account.AccountNumber == user.MainAccount.AccountNumber {
			t.Error("expected a fresh account number")
		}
		if !account.Balance.Equal(decimal.Zero) {
			t.Errorf("expected zero balance, got %s", account.Balance)
		}

		var logs []models.InvestmentAccountLog
		if err := db.Where("account_id = ?", account.ID).Find(&logs).Error; err != nil {
			t.Fatalf("failed to load investment logs: %v", err)
		}
		if len(logs) != 1 || logs[0].Action != "Investment Account Created" {
			t.Errorf("expected one 'Investment Account Created' entry, got %v", logs)
		}
	})

	t.Run("main_account_gets_no_log_entry", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db, NewInvestmentLogService(db))
		user := testutil.CreateTestUser(t, db, decimal.Zero)

		account, err := svc.CreateAccount(user.Email, user.MainAccount.AccountNumber, models.AccountTypeMain)
		testutil.AssertNoError(t, err)

		var count int64
		db.Model(&models.InvestmentAccountLog{}).Where("account_id = ?", account.ID).Count(&count)
		if count != 0 {
			t.Errorf("expected no log entries, got %d", count)
		}
	})

	t.Run("wrong_main_account_number", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db, NewInvestmentLogService(db))
		user := testutil.CreateTestUser(t, db, decimal.Zero)

		_, err := svc.CreateAccount(user.Email, "zzzzzz", models.AccountTypeInvest)
		testutil.AssertAppError(t, err, "INVALID_ACCOUNT")
	})

	t.Run("other_users_main_account_number", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db, NewInvestmentLogService(db))
		user := testutil.CreateTestUser(t, db, decimal.Zero)
		other := testutil.CreateTestUser(t, db, decimal.Zero)

		_, err := svc.CreateAccount(user.Email, other.MainAccount.AccountNumber, models.AccountTypeInvest)
		testutil.AssertAppError(t, err, "INVALID_ACCOUNT")
	})

	t.Run("unknown_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db, NewInvestmentLogService(db))

		_, err := svc.CreateAccount("nobody@test.com", "abc123", models.AccountTypeInvest)
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}

func TestGetMainAccount(t *testing.T) {
	t.Run("returns_main_account", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db, NewInvestmentLogService(db))
		user := testutil.CreateTestUser(t, db, decimal.NewFromInt(1234))

		account, err := svc.GetMainAccount(user.Email)
		testutil.AssertNoError(t, err)
		if account.ID != *user.MainAccountID {
			t.Errorf("expected account %d, got %d", *user.MainAccountID, account.ID)
		}
	})

	t.Run("unknown_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db, NewInvestmentLogService(db))

		_, err := svc.GetMainAccount("nobody@test.com")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}

func TestGetAccountByNumber(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db, NewInvestmentLogService(db))
		user := testutil.CreateTestUser(t, db, decimal.Zero)

		account, err := svc.GetAccountByNumber(user.MainAccount.AccountNumber)
		testutil.AssertNoError(t, err)
		if account.ID != *user.MainAccountID {
			t.Errorf("expected account %d, got %d", *user.MainAccountID, account.ID)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db, NewInvestmentLogService(db))

		_, err := svc.GetAccountByNumber("zzzzzz")
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
	})
}

func TestGetAccountByIndex(t *testing.T) {
	t.Run("index_zero_is_main_account", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db, NewInvestmentLogService(db))
		user := testutil.CreateTestUser(t, db, decimal.Zero)
		second := testutil.CreateTestAccount(t, db, user.ID, models.AccountTypeInvest, decimal.Zero)

		account, err := svc.GetAccountByIndex(user.Email, 0)
		testutil.AssertNoError(t, err)
		if account.ID != *user.MainAccountID {
			t.Errorf("expected main account at index 0, got %d", account.ID)
		}

		account, err = svc.GetAccountByIndex(user.Email, 1)
		testutil.AssertNoError(t, err)
		if account.ID != second.ID {
			t.Errorf("expected account %d at index 1, got %d", second.ID, account.ID)
		}
	})

	t.Run("index_out_of_range", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db, NewInvestmentLogService(db))
		user := testutil.CreateTestUser(t, db, decimal.Zero)

		_, err := svc.GetAccountByIndex(user.Email, 5)
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
	})

	t.Run("negative_index", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db, NewInvestmentLogService(db))
		user := testutil.CreateTestUser(t, db, decimal.Zero)

		_, err := svc.GetAccountByIndex(user.Email, -1)
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
	})
}

func TestGetUserAccounts(t *testing.T) {
	t.Run("paginates_accounts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db, NewInvestmentLogService(db))
		user := testutil.CreateTestUser(t, db, decimal.Zero)
		testutil.CreateTestAccount(t, db, user.ID, models.AccountTypeInvest, decimal.Zero)
		testutil.CreateTestAccount(t, db, user.ID, models.AccountTypeInvest, decimal.Zero)

		page, err := svc.GetUserAccounts(user.Email, pagination.PageRequest{Page: 1, PageSize: 2})
		testutil.AssertNoError(t, err)

		if len(page.Data) != 2 {
			t.Errorf("expected 2 accounts on page, got %d", len(page.Data))
		}
		if page.TotalItems != 3 {
			t.Errorf("expected 3 total items, got %d", page.TotalItems)
		}
		if page.TotalPages != 2 {
			t.Errorf("expected 2 total pages, got %d", page.TotalPages)
		}
	})

	t.Run("excludes_other_users_accounts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db, NewInvestmentLogService(db))
		user := testutil.CreateTestUser(t, db, decimal.Zero)
		testutil.CreateTestUser(t, db, decimal.Zero)

		page, err := svc.GetUserAccounts(user.Email, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 1 {
			t.Errorf("expected 1 account, got %d", page.TotalItems)
		}
	})
}

func TestGenerateAccountNumber(t *testing.T) {
	t.Run("matches_format", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		number, err := generateAccountNumber(db)
		testutil.AssertNoError(t, err)
		if !accountNumberFormat.MatchString(number) {
			t.Errorf("expected 6-char lowercase alphanumeric number, got %q", number)
		}
	})
}
