package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"voyago/internal/shared/apperrors"
	"voyago/internal/shared/config"
	"voyago/internal/users"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) CreateUser(ctx context.Context, user *users.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockRepository) GetUserByEmail(ctx context.Context, email string) (*users.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*users.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*users.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*users.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error {
	args := m.Called(ctx, id, hashedPassword)
	return args.Error(0)
}

func (m *mockRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{
		Secret:           "test-secret",
		JWTExpiresIn:     15 * time.Minute,
		RefreshExpiresIn: 24 * time.Hour,
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, testJWTConfig())

	repo.On("EmailExists", mock.Anything, "taken@voyago.test").Return(true, nil)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email: "taken@voyago.test", Password: "password123",
		FirstName: "A", LastName: "B",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	repo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestRegisterHashesPasswordAndIssuesTokens(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, testJWTConfig())

	repo.On("EmailExists", mock.Anything, "new@voyago.test").Return(false, nil)

	var created *users.User
	repo.On("CreateUser", mock.Anything, mock.AnythingOfType("*users.User")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*users.User) }).
		Return(nil)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Email: "new@voyago.test", Password: "password123",
		FirstName: "Asha", LastName: "Nair",
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.NotEqual(t, "password123", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("password123")))
	assert.Equal(t, users.RoleUser, created.Role)
	assert.NotEmpty(t, resp.Tokens.AccessToken)
	assert.NotEmpty(t, resp.Tokens.RefreshToken)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, testJWTConfig())

	hashed, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	require.NoError(t, err)

	repo.On("GetUserByEmail", mock.Anything, "asha@voyago.test").Return(&users.User{
		ID: uuid.New(), Email: "asha@voyago.test",
		Password: string(hashed), Role: users.RoleUser,
	}, nil)

	_, err = svc.Login(context.Background(), LoginRequest{
		Email: "asha@voyago.test", Password: "wrong-password",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuthorization))
}

func TestLoginUnknownEmailLooksLikeWrongPassword(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, testJWTConfig())

	repo.On("GetUserByEmail", mock.Anything, "ghost@voyago.test").Return(nil, ErrUserNotFound)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email: "ghost@voyago.test", Password: "whatever123",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuthorization))
}

func TestTokenPairClaims(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, testJWTConfig()).(*service)

	user := &users.User{
		ID:    uuid.New(),
		Email: "asha@voyago.test",
		Role:  users.RoleAdmin,
	}

	pair, err := svc.generateTokenPair(user)
	require.NoError(t, err)

	access, err := svc.parseToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "access", access.Type)
	assert.Equal(t, user.ID, access.UserID)
	assert.Equal(t, users.RoleAdmin, access.Role)
	assert.Equal(t, "voyago", access.Issuer)

	refresh, err := svc.parseToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "refresh", refresh.Type)

	assert.Greater(t, pair.ExpiresIn, int64(0))
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, testJWTConfig())

	user := &users.User{ID: uuid.New(), Email: "asha@voyago.test", Role: users.RoleUser}
	pair, err := svc.(*service).generateTokenPair(user)
	require.NoError(t, err)

	_, err = svc.RefreshToken(context.Background(), pair.AccessToken)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuthorization))
}

func TestChangePasswordChecksCurrent(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, testJWTConfig())

	userID := uuid.New()
	hashed, err := bcrypt.GenerateFromPassword([]byte("old-password"), bcrypt.MinCost)
	require.NoError(t, err)

	repo.On("GetUserByID", mock.Anything, userID).Return(&users.User{
		ID: userID, Password: string(hashed),
	}, nil)

	err = svc.ChangePassword(context.Background(), userID, ChangePasswordRequest{
		CurrentPassword: "not-the-old-one", NewPassword: "new-password-1",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuthorization))
	repo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
}
