package google

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestFileTokenStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token.json")
	store := NewFileTokenStore(path)

	assert.False(t, store.HasToken())
	_, err := store.Load()
	assert.True(t, IsNoToken(err))

	expiry := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, store.Save(&oauth2.Token{
		AccessToken:  "access",
		TokenType:    "Bearer",
		RefreshToken: "refresh",
		Expiry:       expiry,
	}))
	assert.True(t, store.HasToken())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "access", got.AccessToken)
	assert.Equal(t, "refresh", got.RefreshToken)
	assert.True(t, expiry.Equal(got.Expiry))
}

func TestFileTokenStore_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")

	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))
	_, err := NewFileTokenStore(path).Load()
	require.Error(t, err)
	assert.False(t, IsNoToken(err))

	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))
	_, err = NewFileTokenStore(path).Load()
	assert.True(t, IsNoToken(err))
}
