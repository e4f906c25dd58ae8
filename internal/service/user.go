package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/spacezone/backend/internal/models"
	"github.com/spacezone/backend/internal/repo"
	"github.com/spacezone/backend/internal/transport"
)

type UserService struct {
	Repo *repo.GormRepo
}

func (s *UserService) Profile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) PatchProfile(ctx context.Context, userID uint, req transport.PatchProfileRequest) (*models.User, error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	applyProfilePatch(user, req)

	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Deactivate is the user-facing soft delete; the row stays behind with
// is_active=false.
func (s *UserService) Deactivate(ctx context.Context, userID uint) error {
	if err := s.Repo.DeactivateUser(ctx, userID); err != nil {
		return err
	}
	return s.Repo.RevokeUserRefreshTokens(ctx, userID)
}

func applyProfilePatch(user *models.User, req transport.PatchProfileRequest) {
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}
	if req.NationalCode != nil {
		user.NationalCode = *req.NationalCode
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = *req.PhoneNumber
	}
}
