// internal/service/auth_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/pkg/apperror"
	"github.com/taskdeck/taskdeck/pkg/auth"
)

func newAuthService(h *TestHelpers) (*AuthService, *auth.TokenManager) {
	tm := auth.NewTokenManager("test-secret", 24*time.Hour)
	return NewAuthService(h.Users, tm, nil), tm
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name      string
		username  string
		mail      string
		password  string
		setupFunc func(h *TestHelpers)
		wantErr   func(error) bool
	}{
		{
			name:     "successful registration",
			username: "alice",
			mail:     "alice@example.com",
			password: "pw",
		},
		{
			name:     "duplicate username",
			username: "alice",
			mail:     "new@example.com",
			password: "pw",
			setupFunc: func(h *TestHelpers) {
				h.CreateTestUser("alice", "alice@example.com", "pw")
			},
			wantErr: apperror.IsValidation,
		},
		{
			name:     "duplicate mail",
			username: "newuser",
			mail:     "alice@example.com",
			password: "pw",
			setupFunc: func(h *TestHelpers) {
				h.CreateTestUser("alice", "alice@example.com", "pw")
			},
			wantErr: apperror.IsValidation,
		},
		{
			name:     "invalid mail format",
			username: "alice",
			mail:     "not-a-mail",
			password: "pw",
			wantErr:  apperror.IsValidation,
		},
		{
			name:     "username too short",
			username: "ab",
			mail:     "ab@example.com",
			password: "pw",
			wantErr:  apperror.IsValidation,
		},
		{
			name:     "missing password",
			username: "alice",
			mail:     "alice@example.com",
			password: "",
			wantErr:  apperror.IsValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewTestHelpers(t)
			if tt.setupFunc != nil {
				tt.setupFunc(h)
			}
			svc, _ := newAuthService(h)

			user, err := svc.Register(context.Background(), tt.username, tt.mail, tt.password)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, tt.wantErr(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.username, user.Username)
			assert.Equal(t, tt.mail, user.Mail)
			assert.NotEqual(t, tt.password, user.PasswordHash)

			stored, err := h.Users.GetByMail(context.Background(), tt.mail)
			require.NoError(t, err)
			assert.Equal(t, user.ID, stored.ID)
		})
	}
}

func TestAuthService_RegisterNormalizesCase(t *testing.T) {
	h := NewTestHelpers(t)
	svc, _ := newAuthService(h)

	user, err := svc.Register(context.Background(), "Alice", "Alice@Example.COM", "pw")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Mail)
}

func TestAuthService_Login(t *testing.T) {
	h := NewTestHelpers(t)
	h.CreateTestUser("alice", "alice@example.com", "pw")
	svc, tm := newAuthService(h)

	t.Run("valid credentials", func(t *testing.T) {
		token, err := svc.Login(context.Background(), "alice@example.com", "pw")
		require.NoError(t, err)

		claims, err := tm.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", claims.Subject)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "alice@example.com", "wrong")
		assert.True(t, apperror.IsUnauthenticated(err))
	})

	t.Run("unknown mail", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "nobody@example.com", "pw")
		assert.True(t, apperror.IsUnauthenticated(err))
	})
}
