package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	libjwt "github.com/homeworkhub/assignment-tracker/internal/lib/jwt"
	"github.com/homeworkhub/assignment-tracker/internal/models"
	"github.com/homeworkhub/assignment-tracker/internal/storage"
)

type UsersMock struct{ mock.Mock }

func (m *UsersMock) RegisterUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}
func (m *UsersMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *UsersMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newMaker() libjwt.Maker {
	return libjwt.NewJWTMaker("test-secret-key", time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(u *UsersMock)
		wantErr    error
	}{
		{
			name: "success registration",
			setupMocks: func(u *UsersMock) {
				u.On("RegisterUser", mock.Anything, mock.MatchedBy(func(user models.User) bool {
					return user.Username == "student1" &&
						user.Email == "student1@example.com" &&
						user.PasswordHash != "password123" &&
						user.UID != ""
				})).Return("uid-1", nil).Once()
			},
		},
		{
			name: "email already taken",
			setupMocks: func(u *UsersMock) {
				u.On("RegisterUser", mock.Anything, mock.Anything).
					Return("", storage.ErrEmailTaken).Once()
			},
			wantErr: storage.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(UsersMock)
			tt.setupMocks(users)

			svc := NewAuthService(users, newMaker())

			token, user, err := svc.Register(context.Background(), "student1", "student1@example.com", "password123")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, token)
				assert.Equal(t, "uid-1", user.UID)
				// пароль сохранён только как bcrypt-хэш
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
			}
			users.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	stored := &models.User{
		UID:          "uid-1",
		Username:     "student1",
		Email:        "student1@example.com",
		PasswordHash: string(hash),
	}

	tests := []struct {
		name       string
		password   string
		setupMocks func(u *UsersMock)
		wantErr    error
	}{
		{
			name:     "success login",
			password: "password123",
			setupMocks: func(u *UsersMock) {
				u.On("GetUserByEmail", mock.Anything, "student1@example.com").Return(stored, nil).Once()
			},
		},
		{
			name:     "wrong password",
			password: "wrongpass",
			setupMocks: func(u *UsersMock) {
				u.On("GetUserByEmail", mock.Anything, "student1@example.com").Return(stored, nil).Once()
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "unknown email looks like wrong password",
			password: "password123",
			setupMocks: func(u *UsersMock) {
				u.On("GetUserByEmail", mock.Anything, "student1@example.com").
					Return(nil, storage.ErrUserNotFound).Once()
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "storage error",
			password: "password123",
			setupMocks: func(u *UsersMock) {
				u.On("GetUserByEmail", mock.Anything, "student1@example.com").
					Return(nil, errors.New("db error")).Once()
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(UsersMock)
			tt.setupMocks(users)

			svc := NewAuthService(users, newMaker())

			token, user, err := svc.Login(context.Background(), "student1@example.com", tt.password)

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, token)
				assert.Equal(t, stored, user)
			}
			users.AssertExpectations(t)
		})
	}
}

func TestAuthService_ValidateToken(t *testing.T) {
	maker := newMaker()

	stored := &models.User{UID: "uid-1", Username: "student1"}

	t.Run("valid token with existing subject", func(t *testing.T) {
		users := new(UsersMock)
		users.On("GetUser", mock.Anything, "uid-1").Return(stored, nil).Once()

		svc := NewAuthService(users, maker)

		token, err := maker.GenerateToken("uid-1", "student1")
		require.NoError(t, err)

		user, err := svc.ValidateToken(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, stored, user)
		users.AssertExpectations(t)
	})

	t.Run("garbage token", func(t *testing.T) {
		users := new(UsersMock)
		svc := NewAuthService(users, maker)

		user, err := svc.ValidateToken(context.Background(), "not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.Nil(t, user)
	})

	t.Run("token signed with another key", func(t *testing.T) {
		users := new(UsersMock)
		svc := NewAuthService(users, maker)

		other := libjwt.NewJWTMaker("another-secret", time.Hour)
		token, err := other.GenerateToken("uid-1", "student1")
		require.NoError(t, err)

		user, err := svc.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.Nil(t, user)
	})

	t.Run("subject deleted after token issued", func(t *testing.T) {
		users := new(UsersMock)
		users.On("GetUser", mock.Anything, "uid-1").Return(nil, storage.ErrUserNotFound).Once()

		svc := NewAuthService(users, maker)

		token, err := maker.GenerateToken("uid-1", "student1")
		require.NoError(t, err)

		user, err := svc.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrUnknownSubject)
		assert.Nil(t, user)
		users.AssertExpectations(t)
	})
}
