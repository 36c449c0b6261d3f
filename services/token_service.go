package services

import (
	"errors"
	"time"

	"musicweb-api/models"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// ErrInvalidToken covers every verification failure. Callers must not distinguish causes.
var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	UserID      string          `json:"user_id"`
	Username    string          `json:"username"`
	Role        models.UserRole `json:"role"`
	Permissions []string        `json:"permissions"`
	jwt.RegisteredClaims
}

func (c *Claims) Identity() *models.Identity {
	return &models.Identity{
		ID:          c.UserID,
		Role:        c.Role,
		Username:    c.Username,
		Permissions: c.Permissions,
	}
}

type TokenService interface {
	Issue(user *models.User, permissions []string, ttl time.Duration) (string, error)
	Verify(token string) (*Claims, error)
}

type tokenService struct {
	secret []byte
	issuer string
	parser *jwt.Parser
}

func NewTokenService(secret []byte, issuer string) TokenService {
	return &tokenService{
		secret: secret,
		issuer: issuer,
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
	}
}

func (s *tokenService) Issue(user *models.User, permissions []string, ttl time.Duration) (string, error) {
	now := time.Now()
	if permissions == nil {
		permissions = []string{}
	}

	claims := &Claims{
		UserID:      user.ID,
		Username:    user.Username,
		Role:        user.Role,
		Permissions: permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", models.NewInternalError("sign token", err)
	}
	return signed, nil
}

func (s *tokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := s.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if !claims.VerifyIssuer(s.issuer, true) || claims.UserID == "" || claims.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
