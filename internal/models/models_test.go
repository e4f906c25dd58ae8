package models

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func productDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Category{}, &Product{}))
	return db
}

func TestProductStatusDerivation(t *testing.T) {
	db := productDB(t)

	cat := Category{Title: "C", Slug: "c"}
	require.NoError(t, db.Create(&cat).Error)

	p := Product{Title: "T", Slug: "t", Price: 1, CategoryID: cat.ID, ExistNumber: 0}
	require.NoError(t, db.Create(&p).Error)
	require.Equal(t, StatusUnavailable, p.Status)

	p.ExistNumber = 3
	require.NoError(t, db.Save(&p).Error)
	require.Equal(t, StatusAvailable, p.Status)

	// the pending override survives regardless of stock
	p.Status = StatusPending
	require.NoError(t, db.Save(&p).Error)
	require.Equal(t, StatusPending, p.Status)
}

func TestVerificationCodeExpiry(t *testing.T) {
	now := time.Now().UTC()
	code := VerificationCode{ExpiresAt: now.Add(time.Minute)}
	require.False(t, code.IsExpired(now))
	require.True(t, code.IsExpired(now.Add(2*time.Minute)))
}
