package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/coderr/internal/models"
)

// SessionRepo keeps bearer sessions in the auth_tokens table.
type SessionRepo struct {
	DB *gorm.DB
}

func (s *SessionRepo) Create(ctx context.Context, jti string, userID uint, expiresAt time.Time) error {
	tok := models.AuthToken{
		JTI:       jti,
		UserID:    userID,
		ExpiresAt: expiresAt.UTC(),
	}
	return s.DB.WithContext(ctx).Omit(clause.Associations).Create(&tok).Error
}

func (s *SessionRepo) Active(ctx context.Context, jti string) (bool, error) {
	var tok models.AuthToken
	err := s.DB.WithContext(ctx).Where("jti = ?", jti).First(&tok).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !tok.Revoked && time.Now().UTC().Before(tok.ExpiresAt), nil
}

func (s *SessionRepo) Revoke(ctx context.Context, jti string) error {
	return s.DB.WithContext(ctx).Model(&models.AuthToken{}).
		Where("jti = ?", jti).
		Update("revoked", true).Error
}
