package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/spacezone/backend/internal/models"
)

// CapacityError rejects a cart increment that would exceed the product's
// stock counter. Ceiling is the quantity already in the cart.
type CapacityError struct {
	Ceiling int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("you can only have %d of this item", e.Ceiling)
}

func (r *GormRepo) openOrder(tx *gorm.DB, userID uint) (*models.Order, error) {
	var order models.Order
	err := tx.Where("user_id = ? AND is_success = ?", userID, false).
		Attrs(models.Order{UserID: userID}).
		FirstOrCreate(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) recomputeTotals(tx *gorm.DB, orderID uint) error {
	var totals struct {
		Items int
		Price float64
	}
	err := tx.Model(&models.OrderItem{}).
		Select("COALESCE(SUM(order_items.quantity), 0) AS items, COALESCE(SUM(order_items.quantity * products.price), 0) AS price").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("order_items.order_id = ?", orderID).
		Scan(&totals).Error
	if err != nil {
		return err
	}
	return tx.Model(&models.Order{}).Where("id = ?", orderID).
		Updates(map[string]any{
			"total_item":  totals.Items,
			"total_price": totals.Price,
		}).Error
}

// AddItem puts one unit of a product into the user's open order. The line
// is locked for the duration of the transaction so two concurrent adds
// cannot both pass the stock check. Two concurrent first adds have no row
// to lock; the unique (order_id, product_id) index fails the slower insert
// and the retry lands on the increment path.
func (r *GormRepo) AddItem(ctx context.Context, userID, productID uint) (*models.OrderItem, error) {
	item, err := r.addItem(ctx, userID, productID)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return r.addItem(ctx, userID, productID)
	}
	return item, err
}

func (r *GormRepo) addItem(ctx context.Context, userID, productID uint) (*models.OrderItem, error) {
	var item models.OrderItem

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := r.openOrder(tx, userID)
		if err != nil {
			return err
		}

		var product models.Product
		if err := tx.Where("id = ? AND is_active = ?", productID, true).First(&product).Error; err != nil {
			return err
		}

		err = lockForUpdate(tx).
			Where("order_id = ? AND product_id = ?", order.ID, productID).
			First(&item).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = models.OrderItem{OrderID: order.ID, ProductID: productID, Quantity: 1}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if product.ExistNumber <= item.Quantity {
				return &CapacityError{Ceiling: item.Quantity}
			}
			if err := tx.Model(&item).Update("quantity", gorm.Expr("quantity + 1")).Error; err != nil {
				return err
			}
			item.Quantity++
		}

		return r.recomputeTotals(tx, order.ID)
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// SubItem removes one unit; the line is deleted once its quantity would
// reach zero. Returns whether the line was removed.
func (r *GormRepo) SubItem(ctx context.Context, userID, productID uint) (bool, *models.OrderItem, error) {
	var item models.OrderItem
	deleted := false

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := r.openOrder(tx, userID)
		if err != nil {
			return err
		}

		if err := lockForUpdate(tx).
			Where("order_id = ? AND product_id = ?", order.ID, productID).
			First(&item).Error; err != nil {
			return err
		}

		if item.Quantity <= 1 {
			if err := tx.Delete(&item).Error; err != nil {
				return err
			}
			deleted = true
		} else {
			if err := tx.Model(&item).Update("quantity", gorm.Expr("quantity - 1")).Error; err != nil {
				return err
			}
			item.Quantity--
		}

		return r.recomputeTotals(tx, order.ID)
	})
	if err != nil {
		return false, nil, err
	}
	return deleted, &item, nil
}

// DeleteItem drops the whole line regardless of quantity.
func (r *GormRepo) DeleteItem(ctx context.Context, userID, productID uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		err := tx.Where("user_id = ? AND is_success = ?", userID, false).First(&order).Error
		if err != nil {
			return err
		}

		res := tx.Where("order_id = ? AND product_id = ?", order.ID, productID).
			Delete(&models.OrderItem{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return r.recomputeTotals(tx, order.ID)
	})
}

func (r *GormRepo) ListOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.DB.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}
