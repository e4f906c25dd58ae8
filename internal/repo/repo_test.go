package repo

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/spacezone/backend/internal/config"
	"github.com/spacezone/backend/internal/models"
)

func testRepo(t *testing.T) *GormRepo {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return New(db)
}

func createUser(t *testing.T, r *GormRepo, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: "x", IsActive: true}
	require.NoError(t, r.CreateUser(context.Background(), user))
	return user
}

func createProduct(t *testing.T, r *GormRepo, title string, price float64, stock int) *models.Product {
	t.Helper()
	cat := models.Category{Title: "cat-" + title, Slug: "cat-" + title}
	require.NoError(t, r.DB.Create(&cat).Error)
	p := &models.Product{
		Title:       title,
		Slug:        title,
		Price:       price,
		CategoryID:  cat.ID,
		ExistNumber: stock,
	}
	require.NoError(t, r.DB.Create(p).Error)
	return p
}

func TestIssueCodeThrottleWindow(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()
	user := createUser(t, r, "a@example.com")

	_, err := r.IssueCode(ctx, user.ID, "000001", 5*time.Minute, 30*time.Second, 5)
	require.NoError(t, err)

	_, err = r.IssueCode(ctx, user.ID, "000002", 5*time.Minute, 30*time.Second, 5)
	var throttled *ThrottledError
	require.ErrorAs(t, err, &throttled)
	require.GreaterOrEqual(t, throttled.RetryAfterSeconds, 1)
	require.LessOrEqual(t, throttled.RetryAfterSeconds, 30)

	// age the first code past the window
	require.NoError(t, r.DB.Model(&models.VerificationCode{}).
		Where("user_id = ?", user.ID).
		Update("created_at", time.Now().UTC().Add(-time.Minute)).Error)

	_, err = r.IssueCode(ctx, user.ID, "000003", 5*time.Minute, 30*time.Second, 5)
	require.NoError(t, err)
}

func TestIssueCodeDailyCap(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()
	user := createUser(t, r, "cap@example.com")

	for i := 0; i < 5; i++ {
		_, err := r.IssueCode(ctx, user.ID, "111111", 5*time.Minute, 0, 5)
		require.NoError(t, err)
	}

	_, err := r.IssueCode(ctx, user.ID, "111111", 5*time.Minute, 0, 5)
	var throttled *ThrottledError
	require.ErrorAs(t, err, &throttled)
	require.Greater(t, throttled.RetryAfterSeconds, 0)
	require.LessOrEqual(t, throttled.RetryAfterSeconds, 24*60*60)
}

func TestIssueCodeRequiresUser(t *testing.T) {
	r := testRepo(t)

	// the throttle check pins the user row, so an unknown user cannot
	// slip a code past it
	_, err := r.IssueCode(context.Background(), 9999, "000001", 5*time.Minute, 30*time.Second, 5)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestLatestCodeAndMarkUsed(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()
	user := createUser(t, r, "code@example.com")

	issued, err := r.IssueCode(ctx, user.ID, "424242", 5*time.Minute, 0, 5)
	require.NoError(t, err)

	row, err := r.LatestCode(ctx, user.ID, "424242")
	require.NoError(t, err)
	require.Equal(t, issued.ID, row.ID)
	require.False(t, row.Used)

	require.NoError(t, r.MarkCodeUsed(ctx, row.ID))
	row, err = r.LatestCode(ctx, user.ID, "424242")
	require.NoError(t, err)
	require.True(t, row.Used)

	_, err = r.LatestCode(ctx, user.ID, "999999")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAddItemCapacity(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()
	user := createUser(t, r, "cart@example.com")
	product := createProduct(t, r, "widget", 9.5, 2)

	item, err := r.AddItem(ctx, user.ID, product.ID)
	require.NoError(t, err)
	require.Equal(t, 1, item.Quantity)

	item, err = r.AddItem(ctx, user.ID, product.ID)
	require.NoError(t, err)
	require.Equal(t, 2, item.Quantity)

	_, err = r.AddItem(ctx, user.ID, product.ID)
	var capacity *CapacityError
	require.ErrorAs(t, err, &capacity)
	require.Equal(t, 2, capacity.Ceiling)
	require.Equal(t, "you can only have 2 of this item", err.Error())

	var order models.Order
	require.NoError(t, r.DB.Where("user_id = ?", user.ID).First(&order).Error)
	require.Equal(t, 2, order.TotalItem)
	require.InDelta(t, 19.0, order.TotalPrice, 1e-9)
}

func TestOrderItemUniquePerProduct(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()
	user := createUser(t, r, "uniq@example.com")
	product := createProduct(t, r, "solo", 4, 5)

	item, err := r.AddItem(ctx, user.ID, product.ID)
	require.NoError(t, err)

	// a lost first-add race would surface as a second row for the same
	// product; the schema refuses it
	dup := models.OrderItem{OrderID: item.OrderID, ProductID: product.ID, Quantity: 1}
	require.ErrorIs(t, r.DB.Create(&dup).Error, gorm.ErrDuplicatedKey)

	var count int64
	require.NoError(t, r.DB.Model(&models.OrderItem{}).
		Where("order_id = ? AND product_id = ?", item.OrderID, product.ID).
		Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestAddItemInactiveProduct(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()
	user := createUser(t, r, "inactive@example.com")
	product := createProduct(t, r, "ghost", 5, 3)
	require.NoError(t, r.DB.Model(product).Update("is_active", false).Error)

	_, err := r.AddItem(ctx, user.ID, product.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSubItem(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()
	user := createUser(t, r, "sub@example.com")
	product := createProduct(t, r, "gadget", 3.25, 10)

	_, err := r.AddItem(ctx, user.ID, product.ID)
	require.NoError(t, err)
	_, err = r.AddItem(ctx, user.ID, product.ID)
	require.NoError(t, err)

	deleted, item, err := r.SubItem(ctx, user.ID, product.ID)
	require.NoError(t, err)
	require.False(t, deleted)
	require.Equal(t, 1, item.Quantity)

	deleted, _, err = r.SubItem(ctx, user.ID, product.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	_, _, err = r.SubItem(ctx, user.ID, product.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var order models.Order
	require.NoError(t, r.DB.Where("user_id = ?", user.ID).First(&order).Error)
	require.Equal(t, 0, order.TotalItem)
	require.Zero(t, order.TotalPrice)
}

func TestDeleteItem(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()
	user := createUser(t, r, "del@example.com")
	product := createProduct(t, r, "thing", 2, 10)

	_, err := r.AddItem(ctx, user.ID, product.ID)
	require.NoError(t, err)
	_, err = r.AddItem(ctx, user.ID, product.ID)
	require.NoError(t, err)

	require.NoError(t, r.DeleteItem(ctx, user.ID, product.ID))
	require.ErrorIs(t, r.DeleteItem(ctx, user.ID, product.ID), gorm.ErrRecordNotFound)
}

func TestBulkDeactivate(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()

	p1 := createProduct(t, r, "p1", 1, 1)
	p2 := createProduct(t, r, "p2", 1, 1)
	p3 := createProduct(t, r, "p3", 1, 1)
	require.NoError(t, r.DB.Model(p3).Update("is_active", false).Error)

	count, err := r.BulkDeactivate(ctx, &models.Product{}, []uint{p1.ID, p2.ID, p3.ID}, nil)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)

	_, err = r.BulkDeactivate(ctx, &models.Product{}, []uint{p1.ID, p2.ID, p3.ID}, nil)
	require.ErrorIs(t, err, ErrNoIDs)

	_, err = r.BulkDeactivate(ctx, &models.Product{}, nil, nil)
	require.ErrorIs(t, err, ErrNoIDs)
}

func TestBulkDeactivateSkipsSuperusers(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()

	regular := createUser(t, r, "plain@example.com")
	admin := &models.User{Email: "root@example.com", PasswordHash: "x", IsActive: true, IsSuperuser: true}
	require.NoError(t, r.CreateUser(ctx, admin))

	count, err := r.BulkDeactivate(ctx, &models.User{}, []uint{regular.ID, admin.ID}, map[string]any{"is_superuser": false})
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	got, err := r.GetUserByID(ctx, admin.ID)
	require.NoError(t, err)
	require.True(t, got.IsActive)
}

func TestRefreshTokenLifecycle(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()
	user := createUser(t, r, "tok@example.com")

	raw := "opaque-refresh-token"
	exp := time.Now().Add(time.Hour)
	require.NoError(t, r.SaveRefreshToken(ctx, raw, "jti-1", user.ID, exp))

	stored, err := r.GetRefreshTokenByJTI(ctx, "jti-1")
	require.NoError(t, err)
	require.Equal(t, user.ID, stored.UserID)
	require.NotEqual(t, raw, stored.TokenHash)
	require.False(t, stored.Revoked)

	require.NoError(t, r.RevokeRefreshToken(ctx, raw))
	stored, err = r.GetRefreshTokenByJTI(ctx, "jti-1")
	require.NoError(t, err)
	require.True(t, stored.Revoked)

	require.NoError(t, r.SaveRefreshToken(ctx, "second", "jti-2", user.ID, exp))
	require.NoError(t, r.RevokeUserRefreshTokens(ctx, user.ID))
	stored, err = r.GetRefreshTokenByJTI(ctx, "jti-2")
	require.NoError(t, err)
	require.True(t, stored.Revoked)
}
