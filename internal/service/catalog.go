package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/spacezone/backend/internal/logging"
	"github.com/spacezone/backend/internal/models"
	"github.com/spacezone/backend/internal/repo"
	"github.com/spacezone/backend/internal/transport"
	"github.com/spacezone/backend/internal/util"
)

const latestCommentCount = 3

// ProductSearcher answers full-text queries with ranked product ids.
type ProductSearcher interface {
	MatchIDs(ctx context.Context, query string, size int) ([]uint, error)
}

type CatalogService struct {
	Repo   *repo.GormRepo
	Search ProductSearcher
}

type ProductQuery struct {
	Search   string
	Sort     string
	MinPrice *float64
	MaxPrice *float64
	Page     int
	Offset   int
}

// ListProducts applies the full public query surface: substring (or index)
// search, price window defaulting to the global bounds, sort order and
// clamped pagination. visibleOnly additionally hides show_item=false rows
// from non-admin callers.
func (s *CatalogService) ListProducts(ctx context.Context, q ProductQuery, visibleOnly bool) (*transport.ProductPage, error) {
	minBound, maxBound, err := s.Repo.PriceBounds(ctx)
	if err != nil {
		return nil, err
	}

	filter := repo.ProductFilter{
		Search:      q.Search,
		MinPrice:    minBound,
		MaxPrice:    maxBound,
		VisibleOnly: visibleOnly,
		Sort:        q.Sort,
	}
	if q.MinPrice != nil {
		filter.MinPrice = *q.MinPrice
	}
	if q.MaxPrice != nil {
		filter.MaxPrice = *q.MaxPrice
	}

	if q.Search != "" && s.Search != nil {
		ids, err := s.Search.MatchIDs(ctx, q.Search, util.MaxPageSize*10)
		switch {
		case err != nil:
			// index unavailable, substring match still answers
			logging.FromContext(ctx).Warn("search index query failed", "error", err)
		case len(ids) == 0:
			// the index answered and found nothing
			return &transport.ProductPage{
				Page: transport.Page[transport.ProductView]{
					CountPage:   1,
					CurrentPage: 1,
					Results:     []transport.ProductView{},
				},
				MinPrice: filter.MinPrice,
				MaxPrice: filter.MaxPrice,
			}, nil
		default:
			filter.IDs = ids
		}
	}

	total, err := s.Repo.CountProducts(ctx, filter)
	if err != nil {
		return nil, err
	}

	size := util.ClampSize(q.Offset)
	pages := util.CountPages(total, size)
	page := util.ClampPage(q.Page, pages)

	items, err := s.Repo.FindProducts(ctx, filter, (page-1)*size, size)
	if err != nil {
		return nil, err
	}

	views := make([]transport.ProductView, 0, len(items))
	for i := range items {
		view, err := s.productView(ctx, &items[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}

	return &transport.ProductPage{
		Page: transport.Page[transport.ProductView]{
			CountItem:   total,
			CountPage:   pages,
			CurrentPage: page,
			Results:     views,
		},
		MinPrice: filter.MinPrice,
		MaxPrice: filter.MaxPrice,
	}, nil
}

func (s *CatalogService) productView(ctx context.Context, p *models.Product) (*transport.ProductView, error) {
	comments, err := s.Repo.LatestComments(ctx, p.ID, latestCommentCount)
	if err != nil {
		return nil, err
	}
	return &transport.ProductView{Product: *p, LatestComments: comments}, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, slug string) (*transport.ProductView, error) {
	product, err := s.Repo.GetActiveProductBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.productView(ctx, product)
}

// CategoryTree nests active categories under their parents, recursively.
func (s *CatalogService) CategoryTree(ctx context.Context) ([]models.Category, error) {
	cats, err := s.Repo.ListActiveCategories(ctx)
	if err != nil {
		return nil, err
	}
	return buildTree(cats, nil), nil
}

func buildTree(cats []models.Category, parentID *uint) []models.Category {
	var out []models.Category
	for _, c := range cats {
		match := (parentID == nil && c.ParentID == nil) ||
			(parentID != nil && c.ParentID != nil && *c.ParentID == *parentID)
		if !match {
			continue
		}
		id := c.ID
		c.Children = buildTree(cats, &id)
		out = append(out, c)
	}
	return out
}

func (s *CatalogService) GetCategory(ctx context.Context, slug string) (*models.Category, error) {
	cat, err := s.Repo.GetCategoryBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !cat.IsActive {
		return nil, ErrNotFound
	}
	return cat, nil
}

func (s *CatalogService) ListComments(ctx context.Context, slug string, page, offset int) (*transport.Page[models.ProductComment], error) {
	product, err := s.Repo.GetActiveProductBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	size := util.ClampSize(offset)

	total, _, err := s.Repo.ListComments(ctx, product.ID, 0, 1)
	if err != nil {
		return nil, err
	}
	pages := util.CountPages(total, size)
	current := util.ClampPage(page, pages)

	_, comments, err := s.Repo.ListComments(ctx, product.ID, (current-1)*size, size)
	if err != nil {
		return nil, err
	}

	return &transport.Page[models.ProductComment]{
		CountItem:   total,
		CountPage:   pages,
		CurrentPage: current,
		Results:     comments,
	}, nil
}

func (s *CatalogService) AddComment(ctx context.Context, userID uint, slug, text string) (*models.ProductComment, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", ErrValidation)
	}
	product, err := s.Repo.GetActiveProductBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	comment := &models.ProductComment{
		ProductID: product.ID,
		UserID:    userID,
		Text:      text,
	}
	if err := s.Repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// UpdateComment allows edits only by the author or a superuser.
func (s *CatalogService) UpdateComment(ctx context.Context, userID uint, superuser bool, commentID uint, text string) (*models.ProductComment, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", ErrValidation)
	}

	comment, err := s.Repo.GetComment(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if comment.UserID != userID && !superuser {
		return nil, ErrForbidden
	}

	comment.Text = text
	if err := s.Repo.SaveComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CatalogService) DeleteComment(ctx context.Context, userID uint, superuser bool, commentID uint) error {
	comment, err := s.Repo.GetComment(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if comment.UserID != userID && !superuser {
		return ErrForbidden
	}
	return s.Repo.DeleteComment(ctx, comment.ID)
}
