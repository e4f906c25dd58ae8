package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestAccessTokenRoundTrip(t *testing.T) {
	raw, err := SignAccessToken(42, true, time.Now().Add(time.Minute), secret)
	require.NoError(t, err)

	claims, err := AccessClaimsFromToken(raw, secret)
	require.NoError(t, err)
	require.True(t, claims.Superuser)

	id, err := claims.UserID()
	require.NoError(t, err)
	require.EqualValues(t, 42, id)
}

func TestAccessTokenWrongSecret(t *testing.T) {
	raw, err := SignAccessToken(1, false, time.Now().Add(time.Minute), secret)
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(raw, []byte("other"))
	require.Error(t, err)
}

func TestAccessTokenExpired(t *testing.T) {
	raw, err := SignAccessToken(1, false, time.Now().Add(-time.Minute), secret)
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(raw, secret)
	require.Error(t, err)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	raw, err := SignRefreshToken(7, time.Now().Add(time.Hour), secret)
	require.NoError(t, err)

	claims, err := RefreshClaimsFromToken(raw, secret)
	require.NoError(t, err)
	require.Equal(t, "refresh", claims.Typ)
	require.NotEmpty(t, claims.ID)

	id, err := claims.UserID()
	require.NoError(t, err)
	require.EqualValues(t, 7, id)
}

func TestAccessTokenIsNotARefreshToken(t *testing.T) {
	raw, err := SignAccessToken(7, false, time.Now().Add(time.Hour), secret)
	require.NoError(t, err)

	_, err = RefreshClaimsFromToken(raw, secret)
	require.Error(t, err)
}

func TestSha256HexStable(t *testing.T) {
	require.Equal(t, Sha256Hex("abc"), Sha256Hex("abc"))
	require.NotEqual(t, Sha256Hex("abc"), Sha256Hex("abd"))
	require.Len(t, Sha256Hex("abc"), 64)
}

func TestNewJTIUnique(t *testing.T) {
	require.NotEqual(t, NewJTI(), NewJTI())
}
