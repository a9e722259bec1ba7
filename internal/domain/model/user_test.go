package model

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@b.com", NormalizeEmail("  A@B.Com "))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestCredentials_Validate(t *testing.T) {
	tests := []struct {
		name    string
		creds   Credentials
		wantErr bool
	}{
		{"valid", Credentials{Email: "a@b.com", Password: "Secret123!"}, false},
		{"missing email", Credentials{Password: "x"}, true},
		{"missing password", Credentials{Email: "a@b.com"}, true},
		{"not an email", Credentials{Email: "nope", Password: "x"}, true},
		{"oversized password", Credentials{Email: "a@b.com", Password: strings.Repeat("x", maxPasswordLen+1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.creds.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCredentials_NormalizeKeepsPassword(t *testing.T) {
	c := Credentials{Email: " User@Example.COM", Password: " Pass "}.Normalize()
	assert.Equal(t, "user@example.com", c.Email)
	assert.Equal(t, " Pass ", c.Password)
}

func TestUser_ResponseOmitsHash(t *testing.T) {
	now := time.Now().UTC()
	u := &User{ID: "id-1", Email: "a@b.com", HashedPassword: "$argon2id$...", CreatedAt: now}

	resp := u.Response()
	require.Equal(t, "id-1", resp.ID)
	assert.Equal(t, "a@b.com", resp.Email)
	assert.Equal(t, now, resp.CreatedAt)
}
