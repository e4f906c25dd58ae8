package repo

import (
	"context"

	"github.com/spacezone/backend/internal/models"
)

func (r *GormRepo) ListComments(ctx context.Context, productID uint, offset, limit int) (int64, []models.ProductComment, error) {
	q := r.DB.WithContext(ctx).Model(&models.ProductComment{}).
		Where("product_id = ?", productID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var comments []models.ProductComment
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&comments).Error; err != nil {
		return 0, nil, err
	}
	return total, comments, nil
}

func (r *GormRepo) LatestComments(ctx context.Context, productID uint, n int) ([]models.ProductComment, error) {
	var comments []models.ProductComment
	err := r.DB.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Limit(n).
		Find(&comments).Error
	return comments, err
}

func (r *GormRepo) GetComment(ctx context.Context, id uint) (*models.ProductComment, error) {
	var comment models.ProductComment
	if err := r.DB.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *GormRepo) CreateComment(ctx context.Context, comment *models.ProductComment) error {
	return r.DB.WithContext(ctx).Create(comment).Error
}

func (r *GormRepo) SaveComment(ctx context.Context, comment *models.ProductComment) error {
	return r.DB.WithContext(ctx).Save(comment).Error
}

func (r *GormRepo) DeleteComment(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.ProductComment{}, id).Error
}
