package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/elastic/go-elasticsearch/v9"
	"gorm.io/gorm"

	"github.com/spacezone/backend/internal/logging"
	"github.com/spacezone/backend/internal/models"
	"github.com/spacezone/backend/internal/repo"
	"github.com/spacezone/backend/internal/service/search"
	"github.com/spacezone/backend/internal/transport"
	"github.com/spacezone/backend/internal/util"
)

type AdminService struct {
	Repo *repo.GormRepo
	ES   *elasticsearch.Client
}

// Users

func (s *AdminService) ListUsers(ctx context.Context, searchTerm string, page, offset int) (*transport.Page[models.User], error) {
	size := util.ClampSize(offset)

	total, _, err := s.Repo.SearchUsers(ctx, searchTerm, 0, 1)
	if err != nil {
		return nil, err
	}
	pages := util.CountPages(total, size)
	current := util.ClampPage(page, pages)

	_, users, err := s.Repo.SearchUsers(ctx, searchTerm, (current-1)*size, size)
	if err != nil {
		return nil, err
	}

	return &transport.Page[models.User]{
		CountItem:   total,
		CountPage:   pages,
		CurrentPage: current,
		Results:     users,
	}, nil
}

func (s *AdminService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.Repo.GetPlainUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *AdminService) PatchUser(ctx context.Context, id uint, req transport.PatchProfileRequest) (*models.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	applyProfilePatch(user, req)

	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// BulkDeactivateUsers soft-deletes regular accounts only; superuser ids in
// the list are silently skipped by the filter.
func (s *AdminService) BulkDeactivateUsers(ctx context.Context, ids []uint) (int64, error) {
	count, err := s.Repo.BulkDeactivate(ctx, &models.User{}, ids, map[string]any{"is_superuser": false})
	if err != nil {
		if errors.Is(err, repo.ErrNoIDs) {
			return 0, fmt.Errorf("%w: no matching active users", ErrValidation)
		}
		return 0, err
	}
	return count, nil
}

// Products

func (s *AdminService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	if req.Title == "" || req.Price <= 0 || req.CategoryID == 0 {
		return nil, fmt.Errorf("%w: title, price and category_id are required", ErrValidation)
	}

	slug := req.Slug
	if slug == "" {
		slug = util.Slugify(req.Title)
	}

	product := &models.Product{
		Title:       req.Title,
		Slug:        slug,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		Image:       req.Image,
		ExistNumber: req.ExistNumber,
		Status:      req.Status,
		ShowItem:    true,
		IsActive:    true,
	}
	if err := s.Repo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}

	s.indexProduct(ctx, product)
	return product, nil
}

func (s *AdminService) GetProduct(ctx context.Context, slug string) (*models.Product, error) {
	product, err := s.Repo.GetProductBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *AdminService) PatchProduct(ctx context.Context, slug string, req transport.PatchProductRequest) (*models.Product, error) {
	product, err := s.GetProduct(ctx, slug)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		product.Title = *req.Title
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.CategoryID != nil {
		product.CategoryID = *req.CategoryID
	}
	if req.Image != nil {
		product.Image = *req.Image
	}
	if req.ExistNumber != nil {
		product.ExistNumber = *req.ExistNumber
	}
	if req.Status != nil {
		product.Status = *req.Status
	}
	if req.ShowItem != nil {
		product.ShowItem = *req.ShowItem
	}

	// drop the preloaded association so a patched category_id is not
	// overwritten on save
	product.Category = nil

	if err := s.Repo.SaveProduct(ctx, product); err != nil {
		return nil, err
	}

	s.indexProduct(ctx, product)
	return product, nil
}

func (s *AdminService) DeactivateProduct(ctx context.Context, slug string) error {
	product, err := s.GetProduct(ctx, slug)
	if err != nil {
		return err
	}

	if err := s.Repo.DeactivateProductBySlug(ctx, slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product is already deleted", ErrValidation)
		}
		return err
	}

	s.dropFromIndex(ctx, product.ID)
	return nil
}

func (s *AdminService) BulkDeactivateProducts(ctx context.Context, ids []uint) (int64, error) {
	count, err := s.Repo.BulkDeactivate(ctx, &models.Product{}, ids, nil)
	if err != nil {
		if errors.Is(err, repo.ErrNoIDs) {
			return 0, fmt.Errorf("%w: no matching active products", ErrValidation)
		}
		return 0, err
	}
	for _, id := range ids {
		s.dropFromIndex(ctx, id)
	}
	return count, nil
}

// indexProduct mirrors the row into the search index. Index failures only
// degrade search, so they are logged and swallowed.
func (s *AdminService) indexProduct(ctx context.Context, product *models.Product) {
	if s.ES == nil {
		return
	}
	if err := search.IndexProduct(ctx, s.ES, product); err != nil {
		logging.FromContext(ctx).Warn("product index failed", "product_id", product.ID, "error", err)
	}
}

func (s *AdminService) dropFromIndex(ctx context.Context, id uint) {
	if s.ES == nil {
		return
	}
	if err := search.DeleteProduct(ctx, s.ES, id); err != nil {
		logging.FromContext(ctx).Warn("product unindex failed", "product_id", id, "error", err)
	}
}

// Categories

func (s *AdminService) ListRootCategories(ctx context.Context) ([]models.Category, error) {
	return s.Repo.ListLeafCategories(ctx, "")
}

// ListSelectCategories feeds the product form's category picker.
func (s *AdminService) ListSelectCategories(ctx context.Context, searchTerm string) ([]models.Category, error) {
	return s.Repo.ListLeafCategories(ctx, searchTerm)
}

func (s *AdminService) CreateCategory(ctx context.Context, req transport.CreateCategoryRequest) (*models.Category, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}

	slug := req.Slug
	if slug == "" {
		slug = util.Slugify(req.Title)
	}

	cat := &models.Category{
		Title:    req.Title,
		Slug:     slug,
		ParentID: req.ParentID,
		IsActive: true,
	}
	if err := s.Repo.CreateCategory(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *AdminService) GetCategoryAdmin(ctx context.Context, slug string) (*models.Category, error) {
	cat, err := s.Repo.GetCategoryBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return cat, nil
}

func (s *AdminService) PatchCategory(ctx context.Context, slug string, req transport.PatchCategoryRequest) (*models.Category, error) {
	cat, err := s.GetCategoryAdmin(ctx, slug)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		cat.Title = *req.Title
	}
	if req.ParentID != nil {
		if err := s.validateParent(ctx, cat.ID, *req.ParentID); err != nil {
			return nil, err
		}
		cat.ParentID = req.ParentID
	}

	if err := s.Repo.SaveCategory(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// validateParent walks up from the proposed parent and rejects any chain that
// passes through the category itself, which would detach that subtree from
// the roots.
func (s *AdminService) validateParent(ctx context.Context, catID, parentID uint) error {
	const maxDepth = 100

	next := parentID
	for depth := 0; depth < maxDepth; depth++ {
		if next == catID {
			return fmt.Errorf("%w: category cannot be nested under itself", ErrValidation)
		}
		parent, err := s.Repo.GetCategoryByID(ctx, next)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: parent category does not exist", ErrValidation)
			}
			return err
		}
		if parent.ParentID == nil {
			return nil
		}
		next = *parent.ParentID
	}
	return fmt.Errorf("%w: category tree is too deep", ErrValidation)
}

func (s *AdminService) DeactivateCategory(ctx context.Context, slug string) error {
	cat, err := s.GetCategoryAdmin(ctx, slug)
	if err != nil {
		return err
	}
	if !cat.IsActive {
		return fmt.Errorf("%w: category is already deleted", ErrValidation)
	}

	cat.IsActive = false
	return s.Repo.SaveCategory(ctx, cat)
}

func (s *AdminService) BulkDeactivateCategories(ctx context.Context, ids []uint) (int64, error) {
	count, err := s.Repo.BulkDeactivate(ctx, &models.Category{}, ids, nil)
	if err != nil {
		if errors.Is(err, repo.ErrNoIDs) {
			return 0, fmt.Errorf("%w: no matching active categories", ErrValidation)
		}
		return 0, err
	}
	return count, nil
}
