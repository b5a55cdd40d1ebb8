package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aamirkhan2478/elite-market-backend/app/models"
	"github.com/aamirkhan2478/elite-market-backend/app/repositories"
	"github.com/aamirkhan2478/elite-market-backend/app/services"
	"github.com/aamirkhan2478/elite-market-backend/pkg/auth"
)

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*models.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func TestSignupHashesPasswordAndIssuesToken(t *testing.T) {
	store := new(mockUserStore)
	store.On("EmailExists", mock.Anything, "jane@example.com").Return(false, nil)
	store.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*models.User).ID = primitive.NewObjectID()
	}).Return(nil)

	svc := services.NewAuthService(store)
	user, token, err := svc.Signup(context.Background(), services.SignupInput{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Password: "Secret@123",
		Address:  "12 Main St",
		Mobile:   "03001234567",
	})

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, "Secret@123", user.Password)
	assert.True(t, auth.CheckPassword(user.Password, "Secret@123"))
	store.AssertExpectations(t)
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	store := new(mockUserStore)
	store.On("EmailExists", mock.Anything, "jane@example.com").Return(true, nil)

	svc := services.NewAuthService(store)
	_, _, err := svc.Signup(context.Background(), services.SignupInput{
		Email:    "jane@example.com",
		Password: "Secret@123",
	})

	assert.ErrorIs(t, err, repositories.ErrDuplicateEmail)
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLoginUnknownEmailAndWrongPasswordLookAlike(t *testing.T) {
	hash, err := auth.HashPassword("Secret@123")
	require.NoError(t, err)

	store := new(mockUserStore)
	store.On("FindByEmail", mock.Anything, "ghost@example.com").
		Return(nil, repositories.ErrNotFound)
	store.On("FindByEmail", mock.Anything, "jane@example.com").
		Return(&models.User{ID: primitive.NewObjectID(), Email: "jane@example.com", Password: hash}, nil)

	svc := services.NewAuthService(store)

	_, _, unknownErr := svc.Login(context.Background(), "ghost@example.com", "whatever1@A")
	_, _, wrongErr := svc.Login(context.Background(), "jane@example.com", "WrongPass@1")

	assert.ErrorIs(t, unknownErr, services.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, services.ErrInvalidCredentials)
}

func TestLoginSuccess(t *testing.T) {
	hash, err := auth.HashPassword("Secret@123")
	require.NoError(t, err)

	store := new(mockUserStore)
	store.On("FindByEmail", mock.Anything, "jane@example.com").
		Return(&models.User{ID: primitive.NewObjectID(), Email: "jane@example.com", Password: hash}, nil)

	svc := services.NewAuthService(store)
	user, token, err := svc.Login(context.Background(), "jane@example.com", "Secret@123")

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEmpty(t, token)
}
