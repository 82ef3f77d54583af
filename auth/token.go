package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"storefront-api/apierror"
)

// TokenService issues and verifies the stateless session credentials that gate
// every authenticated route. Tokens are symmetric-key signed and self-contained;
// no server-side session store exists.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue signs a fresh credential for the subject with a fixed expiry.
func (s *TokenService) Issue(userID string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks signature and expiry and returns the subject user id.
// Expired credentials are reported distinctly from malformed ones.
func (s *TokenService) Verify(token string) (string, error) {
	tok, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", apierror.Wrap(apierror.TokenExpired, "Token has expired", err)
		}
		return "", apierror.Wrap(apierror.TokenInvalid, "Invalid token", err)
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid || claims.UserID == "" {
		return "", apierror.New(apierror.TokenInvalid, "Invalid token")
	}
	return claims.UserID, nil
}
