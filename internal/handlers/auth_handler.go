package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"finledger/internal/config"
	apperrors "finledger/internal/errors"
	"finledger/internal/middleware"
	"finledger/internal/services"
)

// AuthHandler handles registration, login, and logout.
type AuthHandler struct {
	userService  services.UserServicer
	tokenService services.TokenServicer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(userService services.UserServicer, tokenService services.TokenServicer) *AuthHandler {
	return &AuthHandler{userService: userService, tokenService: tokenService}
}

// RegisterRequest represents the registration request payload
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=128,password"`
}

// RegisterResponse represents the newly registered user
type RegisterResponse struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	AccountNumber  string `json:"accountNumber"`
	AccountType    string `json:"accountType"`
	HashedPassword string `json:"hashedPassword"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token
type LoginResponse struct {
	Token string `json:"token"`
}

// Register handles user registration
// @Summary     Register a new user
// @Description Register a new user; a Main account is created alongside
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       request body RegisterRequest true "User registration data"
// @Success     200 {object} RegisterResponse "User registered"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Email already exists"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /users/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.CreateUser(req.Name, req.Email, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, RegisterResponse{
		Name:           user.Name,
		Email:          user.Email,
		AccountNumber:  user.MainAccount.AccountNumber,
		AccountType:    user.MainAccount.AccountType,
		HashedPassword: user.HashedPassword,
	})
}

// Login handles user login
// @Summary     Login user
// @Description Authenticate a user and issue a JWT
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "User login credentials"
// @Success     200 {object} LoginResponse "Token issued"
// @Failure     401 {object} ErrorResponse "Bad credentials"
// @Failure     404 {object} ErrorResponse "User not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /users/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.GetUserByEmail(req.Identifier)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if !h.userService.VerifyPassword(user, req.Password) {
		respondWithError(c, apperrors.ErrInvalidCredentials)
		return
	}

	token, err := middleware.GenerateToken(user)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	expiresAt := extractExpiry(token)
	if err := h.tokenService.StoreToken(user.ID, token, expiresAt); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: token})
}

// Logout revokes the presented token
// @Summary     Logout user
// @Description Revoke the presented token so it can no longer authenticate
// @Tags        users
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]string "Logged out"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Token not found"
// @Failure     409 {object} ErrorResponse "Token already revoked"
// @Router      /users/logout [get]
func (h *AuthHandler) Logout(c *gin.Context) {
	token, err := getToken(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.tokenService.InvalidateToken(token); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

// extractExpiry reads the expiry claim back out of a token we just signed.
// Falls back to the configured duration if the claim cannot be parsed.
func extractExpiry(token string) time.Time {
	claims := &middleware.JWTClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err == nil && claims.ExpiresAt != nil {
		return claims.ExpiresAt.Time
	}
	return time.Now().Add(config.Get().JWTExpirationDur)
}
