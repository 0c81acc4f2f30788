package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTokenTTL is how long an issued token stays valid.
const DefaultTokenTTL = 10 * time.Hour

// exp is carried in whole seconds and the parser rejects now == exp, so it
// is given one second of slack and the inclusive bound is checked in Verify.
const expiryLeeway = time.Second

var (
	// ErrInvalidSignature is returned when a token was not signed with the configured key.
	ErrInvalidSignature = errors.New("token signature is invalid")

	// ErrTokenExpired is returned when a token is past its expiry.
	ErrTokenExpired = errors.New("token has expired")

	// ErrMalformedToken is returned when a token cannot be parsed or carries no identity.
	ErrMalformedToken = errors.New("token is malformed")
)

type tokenClaims struct {
	TeamName string `json:"name"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256-signed identity tokens. It is
// constructed once at startup and is safe for concurrent use.
type TokenService struct {
	key    []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// TokenOption configures a TokenService.
type TokenOption func(*TokenService)

// WithTTL overrides DefaultTokenTTL.
func WithTTL(ttl time.Duration) TokenOption {
	return func(s *TokenService) {
		s.ttl = ttl
	}
}

// WithIssuer sets the iss claim written and required by the service.
func WithIssuer(issuer string) TokenOption {
	return func(s *TokenService) {
		s.issuer = issuer
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) {
		s.now = now
	}
}

// NewTokenService creates a TokenService signing with secretKey.
func NewTokenService(secretKey string, opts ...TokenOption) (*TokenService, error) {
	if secretKey == "" {
		return nil, errors.New("token signing key is required")
	}

	s := &TokenService{
		key: []byte(secretKey),
		ttl: DefaultTokenTTL,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.ttl <= 0 {
		return nil, errors.New("token ttl must be positive")
	}

	return s, nil
}

// Issue signs a token carrying identity. It returns the token and its expiry,
// which is now+ttl rounded up to the next whole second.
func (s *TokenService) Issue(identity Identity) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)
	if t := expiresAt.Truncate(time.Second); t.Before(expiresAt) {
		expiresAt = t.Add(time.Second)
	}
	claims := tokenClaims{
		TeamName: identity.TeamName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.TeamID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}

	return signed, claims.ExpiresAt.Time, nil
}

// Verify checks the signature and expiry of token and returns the embedded
// identity. A token is still valid at its expiry instant.
func (s *TokenService) Verify(token string) (*Identity, error) {
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
		jwt.WithLeeway(expiryLeeway),
	}
	if s.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(s.issuer))
	}

	var claims tokenClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	}, parserOpts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, fmt.Errorf("%w: %w", ErrTokenExpired, err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, fmt.Errorf("%w: %w", ErrInvalidSignature, err)
		default:
			return nil, fmt.Errorf("%w: %w", ErrMalformedToken, err)
		}
	}

	if s.now().After(claims.ExpiresAt.Time) {
		return nil, fmt.Errorf("%w: past %s", ErrTokenExpired, claims.ExpiresAt.Time.Format(time.RFC3339))
	}

	teamID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: subject is not a team id", ErrMalformedToken)
	}

	return &Identity{TeamID: teamID, TeamName: claims.TeamName}, nil
}
