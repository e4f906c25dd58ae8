package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/spacezone/backend/internal/models"
)

// IssueCode creates a verification-code row after checking both throttles
// inside one transaction. The user row is locked for the duration, so two
// concurrent requests cannot both pass the window check even when the user
// has no code rows yet.
func (r *GormRepo) IssueCode(ctx context.Context, userID uint, code string, ttl, minInterval time.Duration, dailyCap int) (*models.VerificationCode, error) {
	now := time.Now().UTC()
	row := &models.VerificationCode{
		UserID:    userID,
		Code:      code,
		ExpiresAt: now.Add(ttl),
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owner models.User
		if err := lockForUpdate(tx).First(&owner, userID).Error; err != nil {
			return err
		}

		var latest models.VerificationCode
		err := tx.
			Where("user_id = ?", userID).
			Order("created_at DESC").
			First(&latest).Error
		switch {
		case err == nil:
			elapsed := now.Sub(latest.CreatedAt)
			if elapsed < minInterval {
				wait := int((minInterval - elapsed).Seconds())
				if wait < 1 {
					wait = 1
				}
				return &ThrottledError{RetryAfterSeconds: wait}
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// first code for this user
		default:
			return err
		}

		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		var issuedToday int64
		if err := tx.Model(&models.VerificationCode{}).
			Where("user_id = ? AND created_at >= ?", userID, dayStart).
			Count(&issuedToday).Error; err != nil {
			return err
		}
		if issuedToday >= int64(dailyCap) {
			nextDay := dayStart.Add(24 * time.Hour)
			return &ThrottledError{RetryAfterSeconds: int(nextDay.Sub(now).Seconds())}
		}

		return tx.Create(row).Error
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

// LatestCode returns the newest code row matching (user, code), used or not.
func (r *GormRepo) LatestCode(ctx context.Context, userID uint, code string) (*models.VerificationCode, error) {
	var row models.VerificationCode
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND code = ?", userID, code).
		Order("created_at DESC").
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *GormRepo) MarkCodeUsed(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Model(&models.VerificationCode{}).
		Where("id = ?", id).
		Update("used", true).Error
}
