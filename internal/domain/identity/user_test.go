package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates active user", func(t *testing.T) {
		user, err := NewUser("maria", "maria@example.com", "hashed-secret", false)

		require.NoError(t, err)
		assert.Equal(t, "maria", user.Username)
		assert.False(t, user.Superuser)
		assert.True(t, user.Active)
		assert.Nil(t, user.LastLoginAt)
	})

	t.Run("creates superuser", func(t *testing.T) {
		user, err := NewUser("admin", "", "hashed-secret", true)

		require.NoError(t, err)
		assert.True(t, user.Superuser)
	})

	t.Run("rejects empty username", func(t *testing.T) {
		_, err := NewUser("  ", "", "hashed-secret", false)
		assert.Error(t, err)
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		_, err := NewUser("maria", "not-an-email", "hashed-secret", false)
		assert.Error(t, err)
	})

	t.Run("rejects empty password hash", func(t *testing.T) {
		_, err := NewUser("maria", "", "", false)
		assert.Error(t, err)
	})
}

func TestUser_ChangePassword(t *testing.T) {
	user, _ := NewUser("maria", "", "old-hash", false)

	require.NoError(t, user.ChangePassword("new-hash"))
	assert.Equal(t, "new-hash", user.PasswordHash)

	assert.Error(t, user.ChangePassword(""))
}

func TestUser_Lifecycle(t *testing.T) {
	user, _ := NewUser("maria", "", "hash", false)
	assert.True(t, user.CanLogin())

	now := time.Now()
	user.RecordLogin(now)
	require.NotNil(t, user.LastLoginAt)
	assert.Equal(t, now, *user.LastLoginAt)

	user.Deactivate()
	assert.False(t, user.CanLogin())
}
