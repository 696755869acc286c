package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()

	claims := jwt.RegisteredClaims{
		Subject:   "cashier-1",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	assert.NoError(t, err)
	return signed
}

func TestTokenStore_SetClear(t *testing.T) {
	store := NewTokenStore("initial")
	assert.Equal(t, "initial", store.Token())

	store.Set("replaced")
	assert.Equal(t, "replaced", store.Token())

	store.Clear()
	assert.Equal(t, "", store.Token())
}

func TestTokenStore_Expired(t *testing.T) {
	now := time.Now()

	t.Run("Missing token counts as expired", func(t *testing.T) {
		store := NewTokenStore("")
		assert.True(t, store.Expired(now))
	})

	t.Run("Future expiry is not expired", func(t *testing.T) {
		store := NewTokenStore(signedToken(t, now.Add(time.Hour)))
		assert.False(t, store.Expired(now))
	})

	t.Run("Past expiry is expired", func(t *testing.T) {
		store := NewTokenStore(signedToken(t, now.Add(-time.Hour)))
		assert.True(t, store.Expired(now))
	})

	t.Run("Unparsable token left for the server", func(t *testing.T) {
		store := NewTokenStore("not-a-jwt")
		assert.False(t, store.Expired(now))
	})
}

func TestTokenStore_Authorize(t *testing.T) {
	t.Run("Attaches bearer header", func(t *testing.T) {
		store := NewTokenStore("token-abc")
		req := httptest.NewRequest("GET", "/api/orders", nil)

		err := store.Authorize(req)

		assert.NoError(t, err)
		assert.Equal(t, "Bearer token-abc", req.Header.Get("Authorization"))
	})

	t.Run("Error when no token", func(t *testing.T) {
		store := NewTokenStore("")
		req := httptest.NewRequest("GET", "/api/orders", nil)

		err := store.Authorize(req)

		assert.ErrorIs(t, err, ErrNoToken)
		assert.Empty(t, req.Header.Get("Authorization"))
	})
}
