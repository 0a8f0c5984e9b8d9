package profile

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"storefront/internal/domain"
)

// tokenManager signs and verifies the HS256 bearer tokens handed out at
// sign-in.
type tokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func newTokenManager(secret string, ttl time.Duration) *tokenManager {
	return &tokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (m *tokenManager) Issue(profileID int64, username string) (string, error) {
	now := m.now()
	claims := jwt.MapClaims{
		"sub":      profileID,
		"username": username,
		"iat":      now.Unix(),
		"exp":      now.Add(m.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the profile id the
// token was issued for.
func (m *tokenManager) Verify(token string) (int64, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return m.now() }))
	if err != nil || !parsed.Valid {
		return 0, fmt.Errorf("invalid token: %w", domain.ErrValidation)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("invalid token claims: %w", domain.ErrValidation)
	}
	// JSON numbers decode as float64.
	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return 0, fmt.Errorf("invalid token subject: %w", domain.ErrValidation)
	}
	return int64(sub), nil
}
