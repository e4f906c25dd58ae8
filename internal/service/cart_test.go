package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spacezone/backend/internal/models"
	"github.com/spacezone/backend/internal/repo"
)

func TestCartAddSubDelete(t *testing.T) {
	store := testStore(t)
	svc := &CartService{Repo: store}
	ctx := context.Background()

	user := models.User{Email: "cart@example.com", PasswordHash: "x", IsActive: true}
	require.NoError(t, store.DB.Create(&user).Error)
	cat := models.Category{Title: "Stuff", Slug: "stuff"}
	require.NoError(t, store.DB.Create(&cat).Error)
	product := models.Product{Title: "Lamp", Slug: "lamp", Price: 12.5, CategoryID: cat.ID, ExistNumber: 2}
	require.NoError(t, store.DB.Create(&product).Error)

	_, err := svc.AddItem(ctx, user.ID, 0)
	require.ErrorIs(t, err, ErrValidation)
	_, err = svc.AddItem(ctx, user.ID, product.ID+999)
	require.ErrorIs(t, err, ErrNotFound)

	item, err := svc.AddItem(ctx, user.ID, product.ID)
	require.NoError(t, err)
	require.Equal(t, 1, item.Quantity)

	item, err = svc.AddItem(ctx, user.ID, product.ID)
	require.NoError(t, err)
	require.Equal(t, 2, item.Quantity)

	// stock ceiling reached
	_, err = svc.AddItem(ctx, user.ID, product.ID)
	var capacity *repo.CapacityError
	require.ErrorAs(t, err, &capacity)
	require.Equal(t, 2, capacity.Ceiling)

	deleted, item, err := svc.SubItem(ctx, user.ID, product.ID)
	require.NoError(t, err)
	require.False(t, deleted)
	require.Equal(t, 1, item.Quantity)

	deleted, _, err = svc.SubItem(ctx, user.ID, product.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	_, _, err = svc.SubItem(ctx, user.ID, product.ID)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.AddItem(ctx, user.ID, product.ID)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteItem(ctx, user.ID, product.ID))
	require.ErrorIs(t, svc.DeleteItem(ctx, user.ID, product.ID), ErrNotFound)
}

func TestCartTotalsFollowMutations(t *testing.T) {
	store := testStore(t)
	svc := &CartService{Repo: store}
	ctx := context.Background()

	user := models.User{Email: "totals@example.com", PasswordHash: "x", IsActive: true}
	require.NoError(t, store.DB.Create(&user).Error)
	cat := models.Category{Title: "Sum", Slug: "sum"}
	require.NoError(t, store.DB.Create(&cat).Error)
	cheap := models.Product{Title: "Pen", Slug: "pen", Price: 2, CategoryID: cat.ID, ExistNumber: 10}
	dear := models.Product{Title: "Ink", Slug: "ink", Price: 7, CategoryID: cat.ID, ExistNumber: 10}
	require.NoError(t, store.DB.Create(&cheap).Error)
	require.NoError(t, store.DB.Create(&dear).Error)

	_, err := svc.AddItem(ctx, user.ID, cheap.ID)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, user.ID, cheap.ID)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, user.ID, dear.ID)
	require.NoError(t, err)

	orders, err := svc.ListOrders(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, 3, orders[0].TotalItem)
	require.InDelta(t, 11, orders[0].TotalPrice, 1e-9)
	require.Len(t, orders[0].Items, 2)

	_, _, err = svc.SubItem(ctx, user.ID, cheap.ID)
	require.NoError(t, err)

	orders, err = svc.ListOrders(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, 2, orders[0].TotalItem)
	require.InDelta(t, 9, orders[0].TotalPrice, 1e-9)
}
