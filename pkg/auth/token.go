package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"go-careers-backend/internal/domain"
)

const tokenIssuer = "go-careers-backend"

var ErrSigningKeyMissing = errors.New("auth: JWT secret not configured")

// Claims is the session token payload
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService signs HS256 session tokens and verifies them, plus RS256
// tokens from an external provider when one is configured.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	jwks   *Provider
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration, jwks *Provider) *TokenService {
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		jwks:   jwks,
		now:    time.Now,
	}
}

func (s *TokenService) Issue(user *domain.AdminUser) (string, time.Time, error) {
	if len(s.secret) == 0 {
		return "", time.Time{}, ErrSigningKeyMissing
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := Claims{
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse validates the signature and expiry and returns the claims
func (s *TokenService) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, s.keyFunc,
		jwt.WithValidMethods([]string{"HS256", "RS256"}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}

	if _, external := token.Method.(*jwt.SigningMethodRSA); external {
		if err := s.jwks.Verify(claims); err != nil {
			return nil, err
		}
	} else if claims.Issuer != tokenIssuer {
		return nil, fmt.Errorf("%w: issuer %q", jwt.ErrTokenInvalidIssuer, claims.Issuer)
	}
	return claims, nil
}

func (s *TokenService) keyFunc(token *jwt.Token) (interface{}, error) {
	switch token.Method.(type) {
	case *jwt.SigningMethodHMAC:
		if len(s.secret) == 0 {
			return nil, ErrSigningKeyMissing
		}
		return s.secret, nil
	case *jwt.SigningMethodRSA:
		if s.jwks == nil {
			return nil, errors.New("RS256 tokens are not accepted")
		}
		return s.jwks.KeyFunc(token)
	}
	return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
}
