package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "finledger/internal/errors"
	"finledger/internal/models"
	"finledger/internal/pagination"
	"finledger/internal/services"
)

// DashboardHandler serves user and account read models.
type DashboardHandler struct {
	userService    services.UserServicer
	accountService services.AccountServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(userService services.UserServicer, accountService services.AccountServicer) *DashboardHandler {
	return &DashboardHandler{userService: userService, accountService: accountService}
}

// UserProfileResponse represents the authenticated user's profile
type UserProfileResponse struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	AccountNumber  string `json:"accountNumber"`
	AccountType    string `json:"accountType"`
	HashedPassword string `json:"hashedPassword"`
}

// AccountResponse represents an account read model
type AccountResponse struct {
	AccountNumber string  `json:"accountNumber"`
	Balance       float64 `json:"balance"`
	AccountType   string  `json:"accountType"`
}

// GetUserProfile returns the authenticated user's profile
// @Summary     Get user profile
// @Description Get the authenticated user's profile
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} UserProfileResponse "User profile"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /dashboard/user [get]
func (h *DashboardHandler) GetUserProfile(c *gin.Context) {
	email, err := getEmail(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetUserByEmail(email)
	if err != nil {
		respondWithError(c, err)
		return
	}

	response := UserProfileResponse{
		Name:           user.Name,
		Email:          user.Email,
		HashedPassword: user.HashedPassword,
	}
	if user.MainAccount != nil {
		response.AccountNumber = user.MainAccount.AccountNumber
		response.AccountType = user.MainAccount.AccountType
	}

	c.JSON(http.StatusOK, response)
}

// GetMainAccount returns the caller's main account
// @Summary     Get main account
// @Description Get the authenticated user's main account
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} AccountResponse "Main account"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Router      /dashboard/account [get]
func (h *DashboardHandler) GetMainAccount(c *gin.Context) {
	email, err := getEmail(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	account, err := h.accountService.GetMainAccount(email)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toAccountResponse(account))
}

// GetAccountByIndex returns an account by its position in the user's list
// @Summary     Get account by index
// @Description Get an account by its position in the user's account list
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Param       index path int true "Account index (0 is the main account)"
// @Success     200 {object} AccountResponse "Account"
// @Failure     400 {object} ErrorResponse "Invalid index"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Router      /dashboard/account/{index} [get]
func (h *DashboardHandler) GetAccountByIndex(c *gin.Context) {
	email, err := getEmail(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid index"))
		return
	}

	account, err := h.accountService.GetAccountByIndex(email, index)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toAccountResponse(account))
}

// GetAccounts returns a paginated list of the caller's accounts
// @Summary     List accounts
// @Description Get a paginated list of the authenticated user's accounts
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[AccountResponse] "Paginated accounts"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/accounts [get]
func (h *DashboardHandler) GetAccounts(c *gin.Context) {
	email, err := getEmail(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	accounts, err := h.accountService.GetUserAccounts(email, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	responses := make([]AccountResponse, 0, len(accounts.Data))
	for i := range accounts.Data {
		responses = append(responses, toAccountResponse(&accounts.Data[i]))
	}

	result := pagination.NewPageResponse(responses, accounts.Page, accounts.PageSize, accounts.TotalItems)
	c.JSON(http.StatusOK, result)
}

func toAccountResponse(account *models.Account) AccountResponse {
	return AccountResponse{
		AccountNumber: account.AccountNumber,
		Balance:       account.Balance.InexactFloat64(),
		AccountType:   account.AccountType,
	}
}
