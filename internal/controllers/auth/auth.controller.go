package authController

import (
	"context"
	"errors"
	"strings"
	"time"

	"mealvote/config"
	"mealvote/internal/database"
	"mealvote/internal/logger"
	. "mealvote/internal/models"
	"mealvote/internal/repositories"
	"mealvote/internal/services"

	"gorm.io/gorm"
)

var (
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)

type AuthController struct {
	userRepo    repositories.UserRepository
	authService *services.AuthService
	db          database.DB
	Config      config.Config
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type AuthControllerInterface interface {
	Register(ctx context.Context, request *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, request *LoginRequest) (*AuthResponse, error)
	GetUserFromToken(ctx context.Context, token string) (*User, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	config config.Config,
	db database.DB,
) AuthControllerInterface {
	return &AuthController{
		userRepo:    repos.User,
		authService: services.Auth,
		db:          db,
		Config:      config,
	}
}

func (c *AuthController) Register(
	ctx context.Context,
	request *RegisterRequest,
) (*AuthResponse, error) {
	log := logger.NewWithContext(ctx, "authController").Function("Register")

	name := strings.TrimSpace(request.Name)
	email := strings.ToLower(strings.TrimSpace(request.Email))
	if name == "" || email == "" {
		return nil, log.ErrorWithType(ErrValidation, "name and email are required")
	}
	if !strings.Contains(email, "@") {
		return nil, log.ErrorWithType(ErrValidation, "invalid email")
	}
	if len(request.Password) < 8 {
		return nil, log.ErrorWithType(ErrValidation, "password must be at least 8 characters")
	}

	hash, err := c.authService.HashPassword(request.Password)
	if err != nil {
		return nil, log.Err("failed to hash password", err)
	}

	user := &User{
		Name:         name,
		Email:        email,
		PasswordHash: &hash,
		Provider:     ProviderLocal,
		Role:         RoleVoter,
	}

	if err := c.userRepo.Create(ctx, c.db.SQL, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, log.ErrorWithType(ErrConflict, "email is already registered")
		}
		return nil, log.Err("failed to create user", err)
	}

	token, err := c.authService.IssueToken(user)
	if err != nil {
		return nil, log.Err("failed to issue token", err, "userID", user.ID)
	}

	log.Info("User registered", "userID", user.ID)
	return &AuthResponse{Token: token, User: user}, nil
}

func (c *AuthController) Login(ctx context.Context, request *LoginRequest) (*AuthResponse, error) {
	log := logger.NewWithContext(ctx, "authController").Function("Login")

	email := strings.ToLower(strings.TrimSpace(request.Email))
	if email == "" || request.Password == "" {
		return nil, log.ErrorWithType(ErrValidation, "email and password are required")
	}

	user, err := c.userRepo.GetByEmail(ctx, c.db.SQL, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			// Same message as a bad password so login failures do not reveal
			// which emails exist.
			return nil, log.ErrorWithType(ErrUnauthorized, "invalid credentials")
		}
		return nil, log.Err("failed to get user", err)
	}

	if user.PasswordHash == nil ||
		!c.authService.CheckPassword(*user.PasswordHash, request.Password) {
		return nil, log.ErrorWithType(ErrUnauthorized, "invalid credentials")
	}

	token, err := c.authService.IssueToken(user)
	if err != nil {
		return nil, log.Err("failed to issue token", err, "userID", user.ID)
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := c.userRepo.Update(ctx, c.db.SQL, user); err != nil {
		log.Warn("failed to record login time", "userID", user.ID, "error", err)
	}

	log.Info("User logged in", "userID", user.ID)
	return &AuthResponse{Token: token, User: user}, nil
}

func (c *AuthController) GetUserFromToken(ctx context.Context, token string) (*User, error) {
	log := logger.NewWithContext(ctx, "authController").Function("GetUserFromToken")

	claims, err := c.authService.ValidateToken(token)
	if err != nil {
		return nil, log.ErrorWithType(ErrUnauthorized, "invalid token")
	}

	user, err := c.userRepo.GetByID(ctx, c.db.SQL, claims.UserID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, log.ErrorWithType(ErrUnauthorized, "unknown user")
		}
		return nil, log.Err("failed to get user", err, "userID", claims.UserID)
	}

	return user, nil
}
