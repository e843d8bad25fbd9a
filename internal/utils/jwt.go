package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is fixed; there is no refresh flow.
const TokenTTL = 2 * time.Hour

var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrReservedClaim = errors.New("payload already carries an exp claim")
	ErrTimeClaim     = errors.New("time claim must be a number of seconds")
)

// Claims is the decoded payload of a bearer token: whatever object the
// caller signed in with.
type Claims map[string]any

func (c Claims) Email() (string, bool) {
	email, ok := c["email"].(string)
	return email, ok
}

type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: TokenTTL, now: time.Now}
}

// WithClock returns a copy of the service reading time from now.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	cp := *s
	cp.now = now
	return &cp
}

// Issue signs payload with HS256 and stamps exp. A numeric iat in the
// payload is kept and becomes the base of exp; nbf is passed through.
func (s *TokenService) Issue(payload map[string]any) (string, error) {
	claims := make(jwt.MapClaims, len(payload)+1)
	for k, v := range payload {
		claims[k] = v
	}
	if _, ok := claims["exp"]; ok {
		return "", ErrReservedClaim
	}
	if v, ok := claims["nbf"]; ok {
		if _, ok := seconds(v); !ok {
			return "", fmt.Errorf("%w: nbf", ErrTimeClaim)
		}
	}

	issuedAt := s.now().Unix()
	if v, ok := claims["iat"]; ok {
		iat, ok := seconds(v)
		if !ok {
			return "", fmt.Errorf("%w: iat", ErrTimeClaim)
		}
		issuedAt = iat
	}
	claims["exp"] = issuedAt + int64(s.ttl/time.Second)

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func seconds(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}

// Verify checks signature, expiry and not-before, and returns the signed
// payload without exp. Tokens lacking exp are accepted. Every failure wraps
// ErrUnauthorized.
func (s *TokenService) Verify(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid claims", ErrUnauthorized)
	}

	claims := make(Claims, len(mapClaims))
	for k, v := range mapClaims {
		claims[k] = v
	}
	delete(claims, "exp")
	return claims, nil
}
