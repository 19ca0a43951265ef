package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/amanraj069/m-frontend-sub001/internal/auth"
	apperrors "github.com/amanraj069/m-frontend-sub001/internal/errors"
	"github.com/amanraj069/m-frontend-sub001/internal/model"
	"github.com/amanraj069/m-frontend-sub001/internal/repository"
)

const bcryptCost = 10

// LoginResult bundles the issued tokens and the signed-in user.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	User         *model.User
}

// AuthService handles authentication operations.
type AuthService interface {
	Register(ctx context.Context, email, password, name string, role model.Role) (*model.User, error)
	Provision(ctx context.Context, email, password, name string, role model.Role) (*model.User, error)
	Login(ctx context.Context, email, password string, role model.Role) (*LoginResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken, accessToken string) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
	log        *zap.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface, log *zap.Logger) AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
		log:        log,
	}
}

// Register creates a self-service Freelancer or Employer account.
func (s *authService) Register(ctx context.Context, email, password, name string, role model.Role) (*model.User, error) {
	if !role.SelfService() {
		return nil, apperrors.ErrInvalidRole
	}
	return s.create(ctx, email, password, name, role)
}

// Provision creates an account with any marketplace role, Admin included.
// It backs operator tooling and is not exposed over HTTP.
func (s *authService) Provision(ctx context.Context, email, password, name string, role model.Role) (*model.User, error) {
	if !role.Valid() {
		return nil, apperrors.ErrInvalidRole
	}
	return s.create(ctx, email, password, name, role)
}

func (s *authService) create(ctx context.Context, email, password, name string, role model.Role) (*model.User, error) {

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrUserAlreadyExists
	}
	// If error is not "record not found", return it (could be a database error)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		Name:         name,
		PasswordHash: string(hashedPassword),
		Role:         role,
		Active:       true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("user registered", zap.Uint("user_id", user.ID), zap.String("role", string(role)))
	return user, nil
}

// Login authenticates a user for the selected role and returns access and refresh tokens.
func (s *authService) Login(ctx context.Context, email, password string, role model.Role) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	// account state is only reported to callers holding the right password
	if !user.Active {
		return nil, apperrors.ErrAccountInactive
	}
	if user.Role != role {
		s.log.Info("login role mismatch", zap.Uint("user_id", user.ID), zap.String("selected", string(role)))
		return nil, apperrors.ErrRoleMismatch
	}

	_, accessToken, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	record := auth.RefreshRecord{UserID: user.ID, Email: user.Email, Role: user.Role}
	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, record, auth.RefreshTokenExpiry); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// RefreshToken validates a refresh token and returns a new access token.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil || claims.ID == "" || claims.Type != auth.TokenTypeRefresh {
		return "", apperrors.ErrInvalidRefreshToken
	}

	stored, err := s.tokenStore.GetRefreshToken(ctx, claims.ID)
	if err != nil {
		return "", apperrors.ErrInvalidRefreshToken
	}
	if stored.UserID != claims.UserID || stored.Email != claims.Email {
		return "", apperrors.ErrInvalidRefreshToken
	}

	user, err := s.userRepo.FindByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrInvalidRefreshToken
		}
		return "", fmt.Errorf("find user: %w", err)
	}
	if !user.Active {
		return "", apperrors.ErrAccountInactive
	}

	subject := &model.User{ID: user.ID, Email: stored.Email, Role: stored.Role}
	_, accessToken, err := s.jwtService.GenerateAccessToken(subject)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

// Logout invalidates the refresh token and blacklists the access token for its remaining lifetime.
// Either token may be empty.
func (s *authService) Logout(ctx context.Context, refreshToken, accessToken string) error {
	if refreshToken == "" && accessToken == "" {
		return apperrors.ErrInvalidRefreshToken
	}

	if refreshToken != "" {
		tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
		if err != nil {
			return apperrors.ErrInvalidRefreshToken
		}
		if err := s.tokenStore.DeleteRefreshToken(ctx, tokenID); err != nil {
			return fmt.Errorf("delete refresh token: %w", err)
		}
	}

	if accessToken != "" {
		claims, err := s.jwtService.ValidateToken(accessToken)
		if err != nil {
			// already unusable
			return nil
		}
		if err := s.tokenStore.BlacklistAccessToken(ctx, claims.ID, s.jwtService.RemainingTTL(claims)); err != nil {
			return fmt.Errorf("blacklist access token: %w", err)
		}
	}
	return nil
}
