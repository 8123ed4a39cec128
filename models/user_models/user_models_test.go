package user_models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripguide/api/models/shared_models"
)

func TestHashAndVerifyPassword(t *testing.T) {
	password := "S3cure!Passw0rd"

	hash, err := HashPassword(password)
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotContains(t, hash, password)
	assert.Contains(t, hash, "$", "stored hash should be salt$hash")

	t.Run("CorrectPassword", func(t *testing.T) {
		ok, err := VerifyPassword(password, hash)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		ok, err := VerifyPassword("not-the-password", hash)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("MalformedStoredHash", func(t *testing.T) {
		_, err := VerifyPassword(password, "not-a-valid-hash")
		assert.Error(t, err)
	})

	t.Run("SaltsDiffer", func(t *testing.T) {
		other, err := HashPassword(password)
		require.NoError(t, err)
		assert.NotEqual(t, hash, other)
	})
}

func TestPublicProjection(t *testing.T) {
	u := User{
		ID:           uuid.New(),
		FirstName:    "Asha",
		LastName:     "Verma",
		Email:        "asha@example.com",
		Phone:        "+91 99999 11111",
		Country:      "India",
		PasswordHash: "salt$secret",
		Role:         shared_models.RoleUser,
	}

	pub := u.Public()
	assert.Equal(t, u.ID, pub.ID)
	assert.Equal(t, "Asha Verma", pub.Name)

	raw, err := json.Marshal(pub)
	require.NoError(t, err)

	body := string(raw)
	assert.NotContains(t, body, "secret")
	assert.NotContains(t, strings.ToLower(body), "password")
	assert.Contains(t, body, `"email":"asha@example.com"`)
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, (&User{Role: shared_models.RoleAdmin}).IsAdmin())
	assert.False(t, (&User{Role: shared_models.RoleUser}).IsAdmin())
	assert.False(t, (&User{}).IsAdmin())
}

func TestNormalizeEmail(t *testing.T) {
	cases := map[string]string{
		"Asha@Example.COM ":  "asha@example.com",
		"  user@site.org":    "user@site.org",
		"already@normal.com": "already@normal.com",
	}

	for in, want := range cases {
		assert.Equal(t, want, NormalizeEmail(in))
	}
}
