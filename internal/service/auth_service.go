package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"rfpflow/internal/config"
	"rfpflow/internal/domain"
)

const accessAudience = "access"

// Claims represents the JWT claims of an admin session.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Token is an issued access token.
type Token struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// TokenInput is the DTO for admin token requests.
type TokenInput struct {
	Password string `json:"password" binding:"required"`
}

// AuthService defines the admin authentication contract.
type AuthService interface {
	IssueToken(ctx context.Context, input TokenInput) (*Token, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	jwtCfg  config.JWTConfig
	authCfg config.AuthConfig
}

// NewAuthService creates a new AuthService implementation.
func NewAuthService(jwtCfg config.JWTConfig, authCfg config.AuthConfig) AuthService {
	return &authService{jwtCfg: jwtCfg, authCfg: authCfg}
}

func (s *authService) IssueToken(_ context.Context, input TokenInput) (*Token, error) {
	// No configured hash means admin login is disabled.
	if s.authCfg.AdminPasswordHash == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.authCfg.AdminPasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now()
	expiry := now.Add(s.jwtCfg.AccessTokenExpiry)
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   domain.RoleAdmin,
			Issuer:    s.jwtCfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
			ID:        uuid.New().String(),
			Audience:  jwt.ClaimStrings{accessAudience},
		},
		Role: domain.RoleAdmin,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtCfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("signing access token: %w", err)
	}
	return &Token{AccessToken: signed, ExpiresAt: expiry}, nil
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtCfg.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	aud, _ := claims.GetAudience()
	if !slices.Contains(aud, accessAudience) {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}
