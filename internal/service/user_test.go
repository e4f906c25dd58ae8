package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spacezone/backend/internal/models"
	"github.com/spacezone/backend/internal/transport"
)

func TestProfilePatch(t *testing.T) {
	store := testStore(t)
	svc := &UserService{Repo: store}
	ctx := context.Background()

	user := models.User{Email: "p@example.com", PasswordHash: "x", IsActive: true}
	require.NoError(t, store.DB.Create(&user).Error)

	phone := "+15550001111"
	got, err := svc.PatchProfile(ctx, user.ID, transport.PatchProfileRequest{
		FirstName:   strPtr("Ada"),
		PhoneNumber: &phone,
	})
	require.NoError(t, err)
	require.Equal(t, "Ada", got.FirstName)
	require.Equal(t, phone, got.PhoneNumber)
	// untouched fields keep their values
	require.Equal(t, "p@example.com", got.Email)

	_, err = svc.Profile(ctx, user.ID+99)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeactivateRevokesSessions(t *testing.T) {
	store := testStore(t)
	users := &UserService{Repo: store}
	auth := &AuthService{Repo: store, JWTSecret: []byte("j"), RefreshSecret: []byte("r")}
	ctx := context.Background()

	user := &models.User{Email: "bye@example.com", PasswordHash: "x", IsActive: true, IsVerified: true}
	require.NoError(t, store.CreateUser(ctx, user))
	pair, err := auth.mintSession(ctx, user)
	require.NoError(t, err)

	require.NoError(t, users.Deactivate(ctx, user.ID))

	got, err := store.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.False(t, got.IsActive)

	_, err = auth.Refresh(ctx, pair.Refresh)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
