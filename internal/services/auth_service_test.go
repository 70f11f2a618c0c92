package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"muattrans/internal/apperrors"
	"muattrans/internal/models"
	"muattrans/internal/services"
)

// MockUserRepository is a mock implementation of repositories.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

const testJWTSecret = "test_jwt_secret"

func TestAuthService_RegisterUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret)
	ctx := context.Background()

	user := &models.User{
		Username: "testuser",
		Email:    "test@example.com",
		Password: "password123",
	}

	mockRepo.On("GetByUsername", ctx, user.Username).Return(nil, nil).Once()
	mockRepo.On("GetByEmail", ctx, user.Email).Return(nil, nil).Once()
	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.User")).Return(nil).Once()

	err := authService.RegisterUser(ctx, user)
	require.NoError(t, err)
	// Password must be stored hashed, never in the clear.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	mockRepo.AssertExpectations(t)

	// A taken username is a conflict.
	mockRepo.On("GetByUsername", ctx, "taken").Return(&models.User{Username: "taken"}, nil).Once()
	err = authService.RegisterUser(ctx, &models.User{Username: "taken", Email: "x@example.com", Password: "secret"})
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeDuplicate, appErr.Code)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret)
	ctx := context.Background()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{ID: "user-1", Username: "testuser", Password: string(hashed)}

	// Successful login yields a token the service itself accepts.
	mockRepo.On("GetByUsername", ctx, "testuser").Return(user, nil).Once()
	token, err := authService.LoginUser(ctx, "testuser", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := authService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "testuser", claims["username"])

	// Wrong password and unknown username both yield the same opaque failure.
	mockRepo.On("GetByUsername", ctx, "testuser").Return(user, nil).Once()
	_, err = authService.LoginUser(ctx, "testuser", "wrong")
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeUnauthorized, appErr.Code)

	mockRepo.On("GetByUsername", ctx, "ghost").Return(nil, nil).Once()
	_, err = authService.LoginUser(ctx, "ghost", "password123")
	require.Error(t, err)
	appErr, ok = apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeUnauthorized, appErr.Code)

	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateTokenRejectsGarbage(t *testing.T) {
	authService := services.NewAuthService(nil, testJWTSecret)

	_, err := authService.ValidateToken("not-a-token")
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeUnauthorized, appErr.Code)

	// A token signed with a different secret is rejected too.
	hashed, _ := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.DefaultCost)
	mockRepo := new(MockUserRepository)
	mockRepo.On("GetByUsername", mock.Anything, "u").
		Return(&models.User{ID: "u1", Username: "u", Password: string(hashed)}, nil).Once()
	foreign := services.NewAuthService(mockRepo, "other_secret")

	token, err := foreign.LoginUser(context.Background(), "u", "pw")
	require.NoError(t, err)
	_, err = authService.ValidateToken(token)
	assert.Error(t, err)
}
