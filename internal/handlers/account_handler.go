package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "finledger/internal/errors"
	"finledger/internal/models"
	"finledger/internal/services"
)

// AccountHandler handles account creation and ledger operations.
type AccountHandler struct {
	accountService     services.AccountServicer
	transactionService services.TransactionServicer
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService services.AccountServicer, transactionService services.TransactionServicer) *AccountHandler {
	return &AccountHandler{accountService: accountService, transactionService: transactionService}
}

// CreateAccountRequest represents the request payload for creating an account
type CreateAccountRequest struct {
	AccountNumber string `json:"accountNumber" binding:"required,account_number"`
	AccountType   string `json:"accountType" binding:"required,max=50"`
}

// TransactionRequest represents a deposit or withdrawal request
type TransactionRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// TransferRequest represents a fund transfer request
type TransferRequest struct {
	Amount              float64 `json:"amount" binding:"required,gt=0"`
	TargetAccountNumber string  `json:"targetAccountNumber" binding:"required,account_number"`
}

// TransactionResponse represents a transaction in the history projection.
// Enum fields render as their names, the date as Unix epoch milliseconds,
// and missing counterpart accounts as "N/A".
type TransactionResponse struct {
	ID                  uint    `json:"id"`
	Amount              float64 `json:"amount"`
	TransactionType     string  `json:"transactionType"`
	TransactionStatus   string  `json:"transactionStatus"`
	TransactionDate     int64   `json:"transactionDate"`
	SourceAccountNumber string  `json:"sourceAccountNumber"`
	TargetAccountNumber string  `json:"targetAccountNumber"`
}

// CreateAccount handles the creation of a secondary account
// @Summary     Create an account
// @Description Create a new account; the caller must present their main account number
// @Tags        account
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateAccountRequest true "Account details"
// @Success     200 {object} map[string]string "Account created"
// @Failure     400 {object} ErrorResponse "Invalid input or main account mismatch"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /account/create [post]
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	email, err := getEmail(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if _, err := h.accountService.CreateAccount(email, req.AccountNumber, req.AccountType); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "New account added successfully for user"})
}

// Deposit handles a cash deposit into the caller's main account
// @Summary     Deposit cash
// @Description Deposit cash into the caller's main account
// @Tags        account
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body TransactionRequest true "Deposit amount"
// @Success     200 {object} map[string]string "Cash deposited"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /account/deposit [post]
func (h *AccountHandler) Deposit(c *gin.Context) {
	email, err := getEmail(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.transactionService.Deposit(email, decimal.NewFromFloat(req.Amount)); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Cash deposited successfully"})
}

// Withdraw handles a cash withdrawal from the caller's main account
// @Summary     Withdraw cash
// @Description Withdraw cash from the caller's main account
// @Tags        account
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body TransactionRequest true "Withdrawal amount"
// @Success     200 {object} map[string]string "Cash withdrawn"
// @Failure     400 {object} ErrorResponse "Invalid input or insufficient balance"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /account/withdraw [post]
func (h *AccountHandler) Withdraw(c *gin.Context) {
	email, err := getEmail(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.transactionService.Withdraw(email, decimal.NewFromFloat(req.Amount)); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Cash withdrawn successfully"})
}

// Transfer handles a fund transfer to another account
// @Summary     Transfer funds
// @Description Transfer funds from the caller's main account to another account
// @Tags        account
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body TransferRequest true "Transfer details"
// @Success     200 {object} map[string]string "Fund transferred"
// @Failure     400 {object} ErrorResponse "Invalid input or insufficient balance"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Target account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /account/fund-transfer [post]
func (h *AccountHandler) Transfer(c *gin.Context) {
	email, err := getEmail(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.transactionService.Transfer(email, req.TargetAccountNumber, decimal.NewFromFloat(req.Amount)); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Fund transferred successfully"})
}

// GetTransactions returns the transaction history projection
// @Summary     Get transaction history
// @Description Get the full transaction history as read models
// @Tags        account
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} TransactionResponse "Transaction history"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /account/transactions [get]
func (h *AccountHandler) GetTransactions(c *gin.Context) {
	if _, err := getEmail(c); err != nil {
		respondWithError(c, err)
		return
	}

	transactions, err := h.transactionService.GetHistory()
	if err != nil {
		respondWithError(c, err)
		return
	}

	responses := make([]TransactionResponse, 0, len(transactions))
	for i := range transactions {
		responses = append(responses, toTransactionResponse(&transactions[i]))
	}

	c.JSON(http.StatusOK, responses)
}

// toTransactionResponse maps a stored transaction to its read model.
func toTransactionResponse(t *models.Transaction) TransactionResponse {
	source := "N/A"
	if t.SourceAccount != nil {
		source = t.SourceAccount.AccountNumber
	}
	target := "N/A"
	if t.TargetAccount != nil {
		target = t.TargetAccount.AccountNumber
	}

	return TransactionResponse{
		ID:                  t.ID,
		Amount:              t.Amount.InexactFloat64(),
		TransactionType:     string(t.Type),
		TransactionStatus:   string(t.Status),
		TransactionDate:     t.Date.UTC().UnixMilli(),
		SourceAccountNumber: source,
		TargetAccountNumber: target,
	}
}
