package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "finledger/internal/errors"
	"finledger/internal/models"
)

// tokenService records issued JWTs and handles the logout blacklist.
type tokenService struct {
	db *gorm.DB
}

// NewTokenService creates a new TokenServicer.
func NewTokenService(db *gorm.DB) TokenServicer {
	return &tokenService{db: db}
}

// StoreToken records a freshly issued token for the given user.
func (s *tokenService) StoreToken(userID uint, token string, expiresAt time.Time) error {
	record := &models.Token{
		Token:     token,
		UserID:    userID,
		Revoked:   false,
		ExpiresAt: expiresAt,
	}
	if err := s.db.Create(record).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// InvalidateToken revokes a previously issued token. Revoking an unknown
// token fails with TOKEN_NOT_FOUND; revoking twice fails with TOKEN_REVOKED.
func (s *tokenService) InvalidateToken(token string) error {
	var record models.Token
	if err := s.db.Where("token = ?", token).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTokenNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if record.Revoked {
		return apperrors.ErrTokenRevoked
	}

	if err := s.db.Model(&record).Update("revoked", true).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// IsTokenRevoked reports whether a token has been revoked. Unknown tokens are
// not considered revoked; signature and expiry checks are the middleware's job.
func (s *tokenService) IsTokenRevoked(token string) (bool, error) {
	var record models.Token
	if err := s.db.Where("token = ?", token).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return record.Revoked, nil
}
