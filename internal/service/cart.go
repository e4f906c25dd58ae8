package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/spacezone/backend/internal/models"
	"github.com/spacezone/backend/internal/repo"
)

type CartService struct {
	Repo *repo.GormRepo
}

func (s *CartService) AddItem(ctx context.Context, userID, productID uint) (*models.OrderItem, error) {
	if productID == 0 {
		return nil, fmt.Errorf("%w: product_id is required", ErrValidation)
	}

	item, err := s.Repo.AddItem(ctx, userID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product does not exist", ErrNotFound)
		}
		return nil, err
	}
	return item, nil
}

func (s *CartService) SubItem(ctx context.Context, userID, productID uint) (bool, *models.OrderItem, error) {
	if productID == 0 {
		return false, nil, fmt.Errorf("%w: product_id is required", ErrValidation)
	}

	deleted, item, err := s.Repo.SubItem(ctx, userID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil, fmt.Errorf("%w: item is not in your cart", ErrNotFound)
		}
		return false, nil, err
	}
	return deleted, item, nil
}

func (s *CartService) DeleteItem(ctx context.Context, userID, productID uint) error {
	err := s.Repo.DeleteItem(ctx, userID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: item is not in your cart", ErrNotFound)
		}
		return err
	}
	return nil
}

func (s *CartService) ListOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	return s.Repo.ListOrders(ctx, userID)
}
