package repo

import (
	"context"
	"time"

	"github.com/spacezone/backend/internal/models"
	"github.com/spacezone/backend/pkg/tokens"
)

func (r *GormRepo) SaveRefreshToken(ctx context.Context, raw, jti string, userID uint, expiresAt time.Time) error {
	row := models.RefreshToken{
		TokenHash: tokens.Sha256Hex(raw),
		JTI:       jti,
		UserID:    userID,
		ExpiresAt: expiresAt.Unix(),
	}
	return r.DB.WithContext(ctx).Create(&row).Error
}

func (r *GormRepo) GetRefreshTokenByJTI(ctx context.Context, jti string) (*models.RefreshToken, error) {
	var row models.RefreshToken
	if err := r.DB.WithContext(ctx).Where("jti = ?", jti).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *GormRepo) RevokeRefreshToken(ctx context.Context, raw string) error {
	return r.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token_hash = ?", tokens.Sha256Hex(raw)).
		Update("revoked", true).Error
}

func (r *GormRepo) RevokeUserRefreshTokens(ctx context.Context, userID uint) error {
	return r.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("user_id = ? AND revoked = ?", userID, false).
		Update("revoked", true).Error
}
