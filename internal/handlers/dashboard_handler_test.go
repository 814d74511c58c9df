package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "finledger/internal/errors"
	"finledger/internal/models"
	"finledger/internal/pagination"
)

func setupDashboardRouter(handler *DashboardHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectPrincipal("jane@example.com", "issued-token"))
	auth.GET("/dashboard/user", handler.GetUserProfile)
	auth.GET("/dashboard/account", handler.GetMainAccount)
	auth.GET("/dashboard/account/:index", handler.GetAccountByIndex)
	auth.GET("/dashboard/accounts", handler.GetAccounts)
	return r
}

func TestDashboardHandler_GetUserProfile(t *testing.T) {
	t.Run("returns 200 with main account details", func(t *testing.T) {
		userSvc := &mockUserService{
			getUserByEmailFn: func(email string) (*models.User, error) {
				return &models.User{
					Name:           "Jane Doe",
					Email:          email,
					HashedPassword: "$2a$10$hash",
					MainAccount: &models.Account{
						AccountNumber: "ab12cd",
						AccountType:   models.AccountTypeMain,
					},
				}, nil
			},
		}
		handler := NewDashboardHandler(userSvc, &mockAccountService{})
		r := setupDashboardRouter(handler)

		rec := doRequest(r, "GET", "/dashboard/user", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["name"] != "Jane Doe" {
			t.Errorf("expected name Jane Doe, got %v", result["name"])
		}
		if result["accountNumber"] != "ab12cd" {
			t.Errorf("expected accountNumber ab12cd, got %v", result["accountNumber"])
		}
		if result["hashedPassword"] != "$2a$10$hash" {
			t.Errorf("expected hashedPassword in profile, got %v", result["hashedPassword"])
		}
	})

	t.Run("returns 404 on unknown user", func(t *testing.T) {
		userSvc := &mockUserService{
			getUserByEmailFn: func(_ string) (*models.User, error) {
				return nil, apperrors.ErrUserNotFound
			},
		}
		handler := NewDashboardHandler(userSvc, &mockAccountService{})
		r := setupDashboardRouter(handler)

		rec := doRequest(r, "GET", "/dashboard/user", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestDashboardHandler_GetMainAccount(t *testing.T) {
	t.Run("returns 200 with balance", func(t *testing.T) {
		acctSvc := &mockAccountService{
			getMainAccountFn: func(_ string) (*models.Account, error) {
				return &models.Account{
					AccountNumber: "ab12cd",
					AccountType:   models.AccountTypeMain,
					Balance:       decimal.NewFromFloat(1234.5),
				}, nil
			},
		}
		handler := NewDashboardHandler(&mockUserService{}, acctSvc)
		r := setupDashboardRouter(handler)

		rec := doRequest(r, "GET", "/dashboard/account", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["balance"] != 1234.5 {
			t.Errorf("expected balance 1234.5, got %v", result["balance"])
		}
	})
}

func TestDashboardHandler_GetAccountByIndex(t *testing.T) {
	t.Run("returns 200 and forwards the index", func(t *testing.T) {
		var gotIndex int
		acctSvc := &mockAccountService{
			getAccountByIndexFn: func(_ string, index int) (*models.Account, error) {
				gotIndex = index
				return &models.Account{AccountNumber: "xy98zw", AccountType: models.AccountTypeInvest}, nil
			},
		}
		handler := NewDashboardHandler(&mockUserService{}, acctSvc)
		r := setupDashboardRouter(handler)

		rec := doRequest(r, "GET", "/dashboard/account/1", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotIndex != 1 {
			t.Errorf("expected index 1, got %d", gotIndex)
		}
	})

	t.Run("returns 400 on non-numeric index", func(t *testing.T) {
		handler := NewDashboardHandler(&mockUserService{}, &mockAccountService{})
		r := setupDashboardRouter(handler)

		rec := doRequest(r, "GET", "/dashboard/account/abc", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 404 when index is out of range", func(t *testing.T) {
		acctSvc := &mockAccountService{
			getAccountByIndexFn: func(_ string, _ int) (*models.Account, error) {
				return nil, apperrors.ErrAccountNotFound
			},
		}
		handler := NewDashboardHandler(&mockUserService{}, acctSvc)
		r := setupDashboardRouter(handler)

		rec := doRequest(r, "GET", "/dashboard/account/9", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestDashboardHandler_GetAccounts(t *testing.T) {
	t.Run("returns 200 with page metadata", func(t *testing.T) {
		acctSvc := &mockAccountService{
			getUserAccountsFn: func(_ string, page pagination.PageRequest) (*pagination.PageResponse[models.Account], error) {
				resp := pagination.NewPageResponse([]models.Account{
					{AccountNumber: "ab12cd", AccountType: models.AccountTypeMain, Balance: decimal.NewFromInt(100)},
					{AccountNumber: "xy98zw", AccountType: models.AccountTypeInvest, Balance: decimal.NewFromInt(200)},
				}, 1, 20, 2)
				return &resp, nil
			},
		}
		handler := NewDashboardHandler(&mockUserService{}, acctSvc)
		r := setupDashboardRouter(handler)

		rec := doRequest(r, "GET", "/dashboard/accounts", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		data, ok := result["data"].([]interface{})
		if !ok || len(data) != 2 {
			t.Fatalf("expected 2 accounts in data, got %v", result["data"])
		}
		if result["total_items"] != float64(2) {
			t.Errorf("expected total_items 2, got %v", result["total_items"])
		}
	})

	t.Run("returns 400 on invalid page size", func(t *testing.T) {
		handler := NewDashboardHandler(&mockUserService{}, &mockAccountService{})
		r := setupDashboardRouter(handler)

		rec := doRequest(r, "GET", "/dashboard/accounts?page_size=500", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
