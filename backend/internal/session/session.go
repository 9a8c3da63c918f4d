// Package session issues and verifies signed session tokens carried in a cookie.
package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"post-spot/backend/internal/graph"
	apperrors "post-spot/backend/pkg/errors"
)

// CookieName is the cookie that carries the session token
const CookieName = "post_spot_session"

const issuer = "post-spot"

// Claims is the token payload: the public identity of the signed-in user
type Claims struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	jwt.RegisteredClaims
}

// Manager signs tokens with the session secret
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager creates a manager issuing tokens valid for ttl
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// TTL is how long issued tokens stay valid
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a token for user and returns it with its expiry
func (m *Manager) Issue(user graph.User) (string, time.Time, error) {
	now := m.now()
	expires := now.Add(m.ttl)

	claims := Claims{
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session: %w", err)
	}
	return signed, expires, nil
}

// Parse verifies a token and returns the identity it carries
func (m *Manager) Parse(token string) (*graph.User, error) {
	if token == "" {
		return nil, apperrors.ErrSessionInvalid
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrSessionInvalid, err)
	}
	if claims.Subject == "" || claims.Email == "" {
		return nil, apperrors.ErrSessionInvalid
	}

	return &graph.User{
		ID:        claims.Subject,
		Email:     claims.Email,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
	}, nil
}
