package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrMissingToken = errors.New("authorization token is not provided")
)

// UserClaims are the claims issued by the identity provider. Subject carries
// the user id.
type UserClaims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// UserID returns the authenticated user id
func (c *UserClaims) UserID() string {
	return c.Subject
}

type TokenManager interface {
	// GenerateAccessToken signs a session the same way the identity provider
	// does. Used by local tooling and tests.
	GenerateAccessToken(userID, email string, ttl time.Duration) (string, error)
	ValidateToken(tokenString string) (*UserClaims, error)
}

type tokenManager struct {
	secret   []byte
	issuer   string
	audience string
}

// NewTokenManager validates HS256 tokens signed with secret. Empty issuer or
// audience disable the corresponding check.
func NewTokenManager(secret, issuer, audience string) TokenManager {
	return &tokenManager{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
	}
}

func (m *tokenManager) GenerateAccessToken(userID, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := UserClaims{
		Email: email,
		Role:  "authenticated",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    m.issuer,
			ID:        uuid.NewString(),
		},
	}
	if m.audience != "" {
		claims.Audience = jwt.ClaimStrings{m.audience}
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *tokenManager) ValidateToken(tokenString string) (*UserClaims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}
	if m.audience != "" {
		opts = append(opts, jwt.WithAudience(m.audience))
	}

	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	}, opts...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid && claims.Subject != "" {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
