package services

import (
	"errors"
	"fmt"
	"time"

	"mealvote/config"
	"mealvote/internal/logger"
	"mealvote/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

// AuthService issues and validates the JWTs that identify callers. OAuth
// provider exchange happens outside this service; it only ever sees the
// resulting local user record.
type AuthService struct {
	secret []byte
	log    logger.Logger
}

type TokenClaims struct {
	UserID uuid.UUID
	Role   models.Role
}

func NewAuthService(config config.Config) (*AuthService, error) {
	log := logger.New("authService")

	if config.JWTSecret == "" {
		return nil, log.ErrMsg("JWT secret is required")
	}

	return &AuthService{
		secret: []byte(config.JWTSecret),
		log:    log,
	}, nil
}

// HashPassword hashes a plaintext password for storage.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", s.log.Err("failed to hash password", err)
	}
	return string(hash), nil
}

// CheckPassword compares a plaintext password with a stored hash.
func (s *AuthService) CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// IssueToken creates a signed JWT carrying the user's id and role.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	log := s.log.Function("IssueToken")

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(tokenLifetime).Unix(),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", log.Err("failed to sign token", err, "userID", user.ID)
	}

	return signed, nil
}

// ValidateToken parses and verifies a JWT, returning its identity claims.
func (s *AuthService) ValidateToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, ErrInvalidToken
	}

	roleStr, _ := claims["role"].(string)
	role := models.Role(roleStr)
	if !role.Valid() {
		return nil, ErrInvalidToken
	}

	return &TokenClaims{UserID: userID, Role: role}, nil
}
