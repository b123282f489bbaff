// pkg/auth/password_test.go
package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordManager_HashAndCompare(t *testing.T) {
	pm := NewPasswordManager()

	hash, err := pm.HashPassword("SecurePass123!")
	require.NoError(t, err)
	assert.NotEqual(t, "SecurePass123!", hash)

	assert.NoError(t, pm.ComparePassword(hash, "SecurePass123!"))
	assert.Error(t, pm.ComparePassword(hash, "wrong-password"))
}

func TestPasswordManager_EmptyPassword(t *testing.T) {
	pm := NewPasswordManager()

	_, err := pm.HashPassword("")
	assert.Error(t, err)
}

func TestValidateMail(t *testing.T) {
	tests := []struct {
		name    string
		mail    string
		wantErr bool
	}{
		{name: "valid", mail: "alice@example.com", wantErr: false},
		{name: "short domain", mail: "a@x.com", wantErr: false},
		{name: "missing at", mail: "alice.example.com", wantErr: true},
		{name: "missing tld", mail: "alice@example", wantErr: true},
		{name: "empty", mail: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMail(tt.mail)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{name: "valid", username: "alice", wantErr: false},
		{name: "with underscore and hyphen", username: "alice_b-c", wantErr: false},
		{name: "too short", username: "ab", wantErr: true},
		{name: "invalid characters", username: "alice!", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
