package service

import (
	"context"

	"github.com/chekhub/chek-api/internal/domain/entity"
	"github.com/chekhub/chek-api/internal/domain/repository"
	"github.com/chekhub/chek-api/pkg/apperror"
	"github.com/chekhub/chek-api/pkg/utils"
)

// AuthService handles registration and authentication
type AuthService struct {
	userRepo   repository.UserRepository
	jwtManager *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
	}
}

// RegisterInput represents the registration input
type RegisterInput struct {
	Name     string
	Username string
	Password string
}

// TokenOutput is the issued credential returned by register and login
type TokenOutput struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register creates a new user account and returns an access token
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*TokenOutput, error) {
	existing, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Username already registered")
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Name:     input.Name,
		Username: input.Username,
		Password: hashedPassword,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, apperror.NewStorageError(err)
	}

	return s.issueToken(user)
}

// Login authenticates a user by username and password
func (s *AuthService) Login(ctx context.Context, username, password string) (*TokenOutput, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	return s.issueToken(user)
}

func (s *AuthService) issueToken(user *entity.User) (*TokenOutput, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Username)
	if err != nil {
		return nil, err
	}
	return &TokenOutput{
		AccessToken: accessToken,
		TokenType:   "bearer",
	}, nil
}
