package auth

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNoToken = errors.New("no auth token set")

// TokenStore holds the cashier's bearer token for the lifetime of the
// terminal process. The signing secret lives server-side, so the store only
// ever inspects the token's registered claims without verifying it.
type TokenStore struct {
	mu    sync.RWMutex
	token string
}

func NewTokenStore(token string) *TokenStore {
	return &TokenStore{token: token}
}

func (s *TokenStore) Set(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

func (s *TokenStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Clear drops the stored token. Called when the backend answers 401/403.
func (s *TokenStore) Clear() {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
}

// Expired reports whether the stored token has a registered expiry in the
// past. A missing token counts as expired; a token that does not parse is
// left for the server to reject.
func (s *TokenStore) Expired(now time.Time) bool {
	tokenStr := s.Token()
	if tokenStr == "" {
		return true
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenStr, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(now)
}

// Authorize attaches the bearer token to an outgoing request.
func (s *TokenStore) Authorize(req *http.Request) error {
	tokenStr := s.Token()
	if tokenStr == "" {
		return ErrNoToken
	}
	req.Header.Set("Authorization", "Bearer "+tokenStr)
	return nil
}
