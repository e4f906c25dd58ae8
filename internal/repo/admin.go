package repo

import (
	"context"
)

// BulkDeactivate flips is_active to false for the currently-active rows of
// model whose ids match, in one update. It is the single soft-delete path
// shared by users, products and categories; extra narrows the target set
// (e.g. excluding superusers).
func (r *GormRepo) BulkDeactivate(ctx context.Context, model any, ids []uint, extra map[string]any) (int64, error) {
	if len(ids) == 0 {
		return 0, ErrNoIDs
	}

	q := r.DB.WithContext(ctx).Model(model).
		Where("id IN ? AND is_active = ?", ids, true)
	for col, val := range extra {
		q = q.Where(col+" = ?", val)
	}

	res := q.Update("is_active", false)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, ErrNoIDs
	}
	return res.RowsAffected, nil
}
