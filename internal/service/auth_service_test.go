package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/amanraj069/m-frontend-sub001/internal/auth"
	apperrors "github.com/amanraj069/m-frontend-sub001/internal/errors"
	"github.com/amanraj069/m-frontend-sub001/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, record auth.RefreshRecord, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, record, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (auth.RefreshRecord, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(auth.RefreshRecord), args.Error(1)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func (m *MockTokenStore) BlacklistAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) IsAccessTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		role          model.Role
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:  "successful registration",
			email: "Test@Example.com",
			role:  model.RoleEmployer,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "Test@Example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:  "user already exists",
			email: "existing@example.com",
			role:  model.RoleFreelancer,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "existing@example.com").Return(&model.User{Email: "existing@example.com"}, nil)
			},
			expectedError: apperrors.ErrUserAlreadyExists,
		},
		{
			name:          "invalid role",
			email:         "new@example.com",
			role:          model.Role("Client"),
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrInvalidRole,
		},
		{
			name:          "admin cannot self register",
			email:         "eve@example.com",
			role:          model.RoleAdmin,
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrInvalidRole,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), new(MockTokenStore), nil)
			user, err := svc.Register(context.Background(), tt.email, "password123", "Test User", tt.role)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "test@example.com", user.Email)
				assert.Equal(t, tt.role, user.Role)
				assert.True(t, user.Active)
				assert.NotEmpty(t, user.PasswordHash)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Provision(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByEmail", mock.Anything, "admin@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	svc := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), new(MockTokenStore), nil)

	user, err := svc.Provision(context.Background(), "admin@example.com", "password123", "Admin", model.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, user.Role)
	mockRepo.AssertExpectations(t)

	_, err = svc.Provision(context.Background(), "x@example.com", "password123", "X", model.Role("Client"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidRole)
}

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name          string
		password      string
		role          model.Role
		setupMock     func(*testing.T, *MockUserRepository, *MockTokenStore)
		expectedError error
	}{
		{
			name:     "successful login",
			password: "secret",
			role:     model.RoleFreelancer,
			setupMock: func(t *testing.T, mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "a@b.com").Return(&model.User{
					ID: 7, Email: "a@b.com", PasswordHash: hashed(t, "secret"), Role: model.RoleFreelancer, Active: true,
				}, nil)
				record := auth.RefreshRecord{UserID: 7, Email: "a@b.com", Role: model.RoleFreelancer}
				mToken.On("StoreRefreshToken", mock.Anything, mock.AnythingOfType("string"), record, auth.RefreshTokenExpiry).Return(nil)
			},
		},
		{
			name:     "unknown email",
			password: "secret",
			role:     model.RoleFreelancer,
			setupMock: func(t *testing.T, mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "a@b.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			password: "nope",
			role:     model.RoleFreelancer,
			setupMock: func(t *testing.T, mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "a@b.com").Return(&model.User{
					ID: 7, Email: "a@b.com", PasswordHash: hashed(t, "secret"), Role: model.RoleFreelancer, Active: true,
				}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "role mismatch",
			password: "secret",
			role:     model.RoleAdmin,
			setupMock: func(t *testing.T, mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "a@b.com").Return(&model.User{
					ID: 7, Email: "a@b.com", PasswordHash: hashed(t, "secret"), Role: model.RoleEmployer, Active: true,
				}, nil)
			},
			expectedError: apperrors.ErrRoleMismatch,
		},
		{
			name:     "inactive account",
			password: "secret",
			role:     model.RoleEmployer,
			setupMock: func(t *testing.T, mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "a@b.com").Return(&model.User{
					ID: 7, Email: "a@b.com", PasswordHash: hashed(t, "secret"), Role: model.RoleEmployer, Active: false,
				}, nil)
			},
			expectedError: apperrors.ErrAccountInactive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockTokenStore := new(MockTokenStore)
			tt.setupMock(t, mockRepo, mockTokenStore)

			jwtService := auth.NewJWTService("test-secret")
			svc := NewAuthService(mockRepo, jwtService, mockTokenStore, nil)

			result, err := svc.Login(context.Background(), "a@b.com", tt.password, tt.role)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, result.AccessToken)
				assert.NotEmpty(t, result.RefreshToken)
				assert.Equal(t, uint(7), result.User.ID)

				claims, err := jwtService.ValidateToken(result.AccessToken)
				require.NoError(t, err)
				assert.Equal(t, model.RoleFreelancer, claims.Role)
			}

			mockRepo.AssertExpectations(t)
			mockTokenStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	user := &model.User{ID: 9, Email: "e@x.com", Role: model.RoleEmployer}
	tokenID, refresh, err := jwtService.GenerateRefreshToken(user)
	require.NoError(t, err)

	record := auth.RefreshRecord{UserID: 9, Email: "e@x.com", Role: model.RoleEmployer}

	t.Run("stored token issues access token", func(t *testing.T) {
		store := new(MockTokenStore)
		store.On("GetRefreshToken", mock.Anything, tokenID).Return(record, nil)
		repo := new(MockUserRepository)
		repo.On("FindByID", mock.Anything, uint(9)).Return(&model.User{ID: 9, Email: "e@x.com", Role: model.RoleEmployer, Active: true}, nil)

		svc := NewAuthService(repo, jwtService, store, nil)
		access, err := svc.RefreshToken(context.Background(), refresh)
		require.NoError(t, err)

		claims, err := jwtService.ValidateToken(access)
		require.NoError(t, err)
		assert.Equal(t, model.RoleEmployer, claims.Role)
		assert.Equal(t, uint(9), claims.UserID)
		store.AssertExpectations(t)
		repo.AssertExpectations(t)
	})

	t.Run("deactivated account rejected", func(t *testing.T) {
		store := new(MockTokenStore)
		store.On("GetRefreshToken", mock.Anything, tokenID).Return(record, nil)
		repo := new(MockUserRepository)
		repo.On("FindByID", mock.Anything, uint(9)).Return(&model.User{ID: 9, Email: "e@x.com", Role: model.RoleEmployer, Active: false}, nil)

		svc := NewAuthService(repo, jwtService, store, nil)
		access, err := svc.RefreshToken(context.Background(), refresh)
		assert.ErrorIs(t, err, apperrors.ErrAccountInactive)
		assert.Empty(t, access)
		repo.AssertExpectations(t)
	})

	t.Run("deleted account rejected", func(t *testing.T) {
		store := new(MockTokenStore)
		store.On("GetRefreshToken", mock.Anything, tokenID).Return(record, nil)
		repo := new(MockUserRepository)
		repo.On("FindByID", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewAuthService(repo, jwtService, store, nil)
		_, err := svc.RefreshToken(context.Background(), refresh)
		assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
	})

	t.Run("revoked token rejected", func(t *testing.T) {
		store := new(MockTokenStore)
		store.On("GetRefreshToken", mock.Anything, tokenID).Return(auth.RefreshRecord{}, assert.AnError)

		svc := NewAuthService(new(MockUserRepository), jwtService, store, nil)
		_, err := svc.RefreshToken(context.Background(), refresh)
		assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
	})

	t.Run("access token rejected", func(t *testing.T) {
		_, access, err := jwtService.GenerateAccessToken(user)
		require.NoError(t, err)

		svc := NewAuthService(new(MockUserRepository), jwtService, new(MockTokenStore), nil)
		_, err = svc.RefreshToken(context.Background(), access)
		assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
	})

	t.Run("garbage rejected", func(t *testing.T) {
		svc := NewAuthService(new(MockUserRepository), jwtService, new(MockTokenStore), nil)
		_, err := svc.RefreshToken(context.Background(), "not-a-jwt")
		assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
	})
}

func TestAuthService_Logout(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	user := &model.User{ID: 9, Email: "e@x.com", Role: model.RoleAdmin}
	refreshID, refresh, err := jwtService.GenerateRefreshToken(user)
	require.NoError(t, err)
	accessID, access, err := jwtService.GenerateAccessToken(user)
	require.NoError(t, err)

	store := new(MockTokenStore)
	store.On("DeleteRefreshToken", mock.Anything, refreshID).Return(nil)
	store.On("BlacklistAccessToken", mock.Anything, accessID, mock.AnythingOfType("time.Duration")).Return(nil)

	svc := NewAuthService(new(MockUserRepository), jwtService, store, nil)
	require.NoError(t, svc.Logout(context.Background(), refresh, access))
	store.AssertExpectations(t)

	assert.ErrorIs(t, svc.Logout(context.Background(), "", ""), apperrors.ErrInvalidRefreshToken)
}
