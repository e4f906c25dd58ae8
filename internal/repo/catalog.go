package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/spacezone/backend/internal/models"
)

type ProductFilter struct {
	Search      string
	IDs         []uint
	MinPrice    float64
	MaxPrice    float64
	VisibleOnly bool
	Sort        string
}

func (r *GormRepo) productQuery(ctx context.Context, f ProductFilter) *gorm.DB {
	q := r.DB.WithContext(ctx).Model(&models.Product{}).
		Where("is_active = ?", true).
		Where("price >= ? AND price <= ?", f.MinPrice, f.MaxPrice)

	if f.VisibleOnly {
		q = q.Where("show_item = ?", true)
	}
	if len(f.IDs) > 0 {
		q = q.Where("id IN ?", f.IDs)
	} else if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where(
			r.DB.Where("LOWER(title) LIKE LOWER(?)", like).
				Or("LOWER(description) LIKE LOWER(?)", like),
		)
	}
	return q
}

func sortOrder(sort string) string {
	switch sort {
	case "oldest":
		return "created_at ASC"
	case "cheapest":
		return "price ASC"
	case "expensive":
		return "price DESC"
	default:
		return "created_at DESC"
	}
}

func (r *GormRepo) CountProducts(ctx context.Context, f ProductFilter) (int64, error) {
	var total int64
	err := r.productQuery(ctx, f).Count(&total).Error
	return total, err
}

func (r *GormRepo) FindProducts(ctx context.Context, f ProductFilter, offset, limit int) ([]models.Product, error) {
	var items []models.Product
	err := r.productQuery(ctx, f).
		Preload("Category").
		Order(sortOrder(f.Sort)).
		Offset(offset).
		Limit(limit).
		Find(&items).Error
	return items, err
}

// PriceBounds returns the min/max price over all products, used as filter
// defaults when the caller does not narrow the window.
func (r *GormRepo) PriceBounds(ctx context.Context) (float64, float64, error) {
	var bounds struct {
		Min float64
		Max float64
	}
	err := r.DB.WithContext(ctx).Model(&models.Product{}).
		Select("COALESCE(MIN(price), 0) AS min, COALESCE(MAX(price), 0) AS max").
		Scan(&bounds).Error
	return bounds.Min, bounds.Max, err
}

func (r *GormRepo) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	err := r.DB.WithContext(ctx).
		Preload("Category").
		Where("slug = ?", slug).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) GetActiveProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	err := r.DB.WithContext(ctx).
		Preload("Category").
		Where("slug = ? AND is_active = ? AND show_item = ?", slug, true, true).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, product *models.Product) error {
	return r.DB.WithContext(ctx).Create(product).Error
}

func (r *GormRepo) SaveProduct(ctx context.Context, product *models.Product) error {
	return r.DB.WithContext(ctx).Save(product).Error
}

func (r *GormRepo) DeactivateProductBySlug(ctx context.Context, slug string) error {
	res := r.DB.WithContext(ctx).Model(&models.Product{}).
		Where("slug = ? AND is_active = ?", slug, true).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Categories

func (r *GormRepo) ListActiveCategories(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	err := r.DB.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id ASC").
		Find(&cats).Error
	return cats, err
}

// ListLeafCategories returns active root-less categories for select boxes,
// optionally filtered by title.
func (r *GormRepo) ListLeafCategories(ctx context.Context, search string) ([]models.Category, error) {
	q := r.DB.WithContext(ctx).
		Where("is_active = ? AND parent_id IS NULL", true)
	if search != "" {
		q = q.Where("LOWER(title) LIKE LOWER(?)", "%"+search+"%")
	}

	var cats []models.Category
	err := q.Order("id ASC").Find(&cats).Error
	return cats, err
}

func (r *GormRepo) GetCategoryByID(ctx context.Context, id uint) (*models.Category, error) {
	var cat models.Category
	if err := r.DB.WithContext(ctx).First(&cat, id).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *GormRepo) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var cat models.Category
	err := r.DB.WithContext(ctx).Where("slug = ?", slug).First(&cat).Error
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *GormRepo) CreateCategory(ctx context.Context, cat *models.Category) error {
	return r.DB.WithContext(ctx).Create(cat).Error
}

func (r *GormRepo) SaveCategory(ctx context.Context, cat *models.Category) error {
	return r.DB.WithContext(ctx).Save(cat).Error
}
