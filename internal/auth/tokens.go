package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/cotacao-api/cotacao/internal/shared"
)

// Claims is the fixed claim set carried by issued tokens: the user's email as
// subject plus the registered expiry. A typed struct rather than jwt.MapClaims
// keeps arbitrary claims from sneaking into tokens.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenIssuer mints and validates signed, time-limited access tokens. The
// signing secret is loaded once at startup and never changes.
type TokenIssuer struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer builds a TokenIssuer. An empty secret or an unsupported
// algorithm is a configuration error and should abort startup.
func NewTokenIssuer(secret, algorithm string, ttl time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, errors.New("token issuer: signing secret is empty")
	}
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("token issuer: unknown signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("token issuer: algorithm %q is not an HMAC method", algorithm)
	}
	return &TokenIssuer{
		secret: []byte(secret),
		method: method,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// WithNow overrides the issuer clock for testing.
func (t *TokenIssuer) WithNow(fn func() time.Time) {
	if fn != nil {
		t.now = fn
	}
}

// TTL reports the configured token lifetime.
func (t *TokenIssuer) TTL() time.Duration {
	return t.ttl
}

// Issue returns a signed token whose subject is valid for the configured TTL.
func (t *TokenIssuer) Issue(subject string) (string, error) {
	now := t.now()
	token := jwt.NewWithClaims(t.method, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	})
	return token.SignedString(t.secret)
}

// Validate parses and verifies a token string. Malformed tokens, bad
// signatures, and expired tokens all collapse to ErrInvalidToken; the HMAC
// comparison inside the library is constant-time.
func (t *TokenIssuer) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(tok *jwt.Token) (any, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{t.method.Alg()}), jwt.WithTimeFunc(t.now))
	if err != nil || !token.Valid {
		return nil, shared.ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, shared.ErrInvalidToken
	}
	return claims, nil
}
