package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failures. Handlers map all three to 401.
var (
	ErrInvalidToken    = errors.New("invalid token")
	ErrTokenExpired    = errors.New("token expired")
	ErrMalformedClaims = errors.New("malformed claims")
)

// Identity is the authenticated principal carried by a verified token.
type Identity struct {
	UserID  int64
	IsAdmin bool
}

// Claims is the token payload. IsAdmin is deliberately untyped: a
// historical producer emitted an empty string instead of a boolean, and
// such tokens must be rejected rather than read as "not admin".
type Claims struct {
	UserID  int64 `json:"user_id"`
	IsAdmin any   `json:"is_admin"`
	jwt.RegisteredClaims
}

// Validate implements jwt.ClaimsValidator. Called by ParseWithClaims
// after the registered claims are checked.
func (c *Claims) Validate() error {
	if _, ok := c.IsAdmin.(bool); !ok {
		return ErrMalformedClaims
	}
	return nil
}

// Service issues and verifies signed, time-limited tokens. Tokens are
// stateless: there is no revocation list, so an access token stays
// valid until its own expiry regardless of logout.
type Service struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewService creates a token service. secret should be a
// cryptographically secure random string shared by all instances.
func NewService(secret string, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// IssueAccessToken creates a short-lived bearer token.
func (s *Service) IssueAccessToken(userID int64, isAdmin bool) (string, error) {
	return s.issue(userID, isAdmin, s.accessTTL)
}

// IssueRefreshToken creates a long-lived token meant to travel only in
// the refresh cookie.
func (s *Service) IssueRefreshToken(userID int64, isAdmin bool) (string, error) {
	return s.issue(userID, isAdmin, s.refreshTTL)
}

// RefreshTTL reports the refresh token lifetime, used for the cookie
// max age.
func (s *Service) RefreshTTL() time.Duration { return s.refreshTTL }

func (s *Service) issue(userID int64, isAdmin bool, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:  userID,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and claims of a token and returns the
// identity it carries.
func (s *Service) Verify(tokenString string) (Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Identity{}, ErrTokenExpired
		case errors.Is(err, ErrMalformedClaims):
			return Identity{}, ErrMalformedClaims
		default:
			return Identity{}, ErrInvalidToken
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Identity{}, ErrInvalidToken
	}
	isAdmin, ok := claims.IsAdmin.(bool)
	if !ok {
		return Identity{}, ErrMalformedClaims
	}
	// Expiry is checked again explicitly even though the parser already
	// enforces it.
	if claims.ExpiresAt == nil || claims.ExpiresAt.Before(time.Now()) {
		return Identity{}, ErrTokenExpired
	}

	return Identity{UserID: claims.UserID, IsAdmin: isAdmin}, nil
}
