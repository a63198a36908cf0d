package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	params := UserRegistrationParams{
		FullName: "Test User",
		Email:    "test@example.com",
		Password: "Password1",
	}

	user, err := NewUser(params)
	require.NoError(t, err)

	assert.NotEqual(t, user.ID.String(), "00000000-0000-0000-0000-000000000000")
	assert.Equal(t, "Test User", user.FullName)
	assert.Equal(t, RoleUser, user.Role, "role defaults to user")
	assert.NotEqual(t, "Password1", user.HashedPassword)
	assert.True(t, user.CheckPassword("Password1"))
	assert.False(t, user.CheckPassword("wrong"))
}

func TestNewUser_ExplicitRole(t *testing.T) {
	user, err := NewUser(UserRegistrationParams{
		FullName: "Agent",
		Email:    "agent@example.com",
		Password: "Password1",
		Role:     RoleAgent,
	})
	require.NoError(t, err)
	assert.Equal(t, RoleAgent, user.Role)
}

func TestNewUser_Validation(t *testing.T) {
	tests := []struct {
		name   string
		params UserRegistrationParams
	}{
		{
			name:   "missing full name",
			params: UserRegistrationParams{Email: "a@example.com", Password: "Password1"},
		},
		{
			name:   "missing email",
			params: UserRegistrationParams{FullName: "A", Password: "Password1"},
		},
		{
			name:   "invalid email",
			params: UserRegistrationParams{FullName: "A", Email: "not-an-email", Password: "Password1"},
		},
		{
			name:   "unknown role",
			params: UserRegistrationParams{FullName: "A", Email: "a@example.com", Password: "Password1", Role: "superuser"},
		},
		{
			name:   "weak password",
			params: UserRegistrationParams{FullName: "A", Email: "a@example.com", Password: "short"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewUser(tt.params)
			assert.Error(t, err)
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantOK   bool
	}{
		{"valid", "Password1", true},
		{"too short", "Pw1", false},
		{"no uppercase", "password1", false},
		{"no lowercase", "PASSWORD1", false},
		{"no number", "Passwords", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidatePassword(tt.password)
			if tt.wantOK {
				assert.Empty(t, errs)
			} else {
				assert.NotEmpty(t, errs)
			}
		})
	}
}

func TestRoleIsValid(t *testing.T) {
	for _, role := range AllRoles {
		assert.True(t, role.IsValid())
	}
	assert.False(t, Role("superuser").IsValid())
	assert.False(t, Role("").IsValid())
}
