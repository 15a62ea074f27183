package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tabletap/tabletap-backend/internal/app/model"
	"github.com/tabletap/tabletap-backend/internal/app/repository"
	"github.com/tabletap/tabletap-backend/internal/db"
	"github.com/tabletap/tabletap-backend/pkg/util"
)

func setupAuthServiceTest(t *testing.T) AuthService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	userRepo := repository.NewUserRepository(testDB)
	return NewAuthService(userRepo, "test-jwt-secret", 15*time.Minute)
}

func TestAuthService_Register(t *testing.T) {
	authService := setupAuthServiceTest(t)

	tests := []struct {
		name     string
		email    string
		password string
		userName string
		wantErr  error
	}{
		{
			name:     "Valid registration",
			email:    "owner@example.com",
			password: "password123",
			userName: "Store Owner",
			wantErr:  nil,
		},
		{
			name:     "Duplicate email",
			email:    "owner@example.com",
			password: "password456",
			userName: "Another Owner",
			wantErr:  ErrEmailExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := authService.Register(tt.email, tt.password, tt.userName)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
				assert.Equal(t, tt.userName, user.Name)
				assert.Equal(t, model.RoleOwner, user.Role)
				assert.NotEqual(t, tt.password, user.PasswordHash, "password must be hashed")
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	authService := setupAuthServiceTest(t)

	_, err := authService.Register("owner@example.com", "password123", "Store Owner")
	require.NoError(t, err)

	t.Run("Valid credentials", func(t *testing.T) {
		token, user, err := authService.Login("owner@example.com", "password123")
		require.NoError(t, err)
		require.NotNil(t, user)
		require.NotEmpty(t, token)

		claims, err := util.ValidateToken(token, "test-jwt-secret")
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, user.Email, claims.Email)
	})

	t.Run("Wrong password", func(t *testing.T) {
		token, user, err := authService.Login("owner@example.com", "wrong-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Nil(t, user)
		assert.Empty(t, token)
	})

	t.Run("Unknown email", func(t *testing.T) {
		_, _, err := authService.Login("nobody@example.com", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_GetMe(t *testing.T) {
	authService := setupAuthServiceTest(t)

	registered, err := authService.Register("owner@example.com", "password123", "Store Owner")
	require.NoError(t, err)

	user, err := authService.GetMe(registered.ID)
	require.NoError(t, err)
	assert.Equal(t, registered.Email, user.Email)

	_, err = authService.GetMe(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
