package tokenstore_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline/ledgerline-go/tokenstore"
)

func TestMemoryStore(t *testing.T) {
	store := tokenstore.NewMemoryStore()

	_, ok := store.AccessToken()
	require.False(t, ok)

	require.NoError(t, store.SetPair("access-1", "refresh-1"))

	access, ok := store.AccessToken()
	require.True(t, ok)
	require.Equal(t, "access-1", access)
	refresh, ok := store.RefreshToken()
	require.True(t, ok)
	require.Equal(t, "refresh-1", refresh)

	require.NoError(t, store.Clear())
	_, ok = store.AccessToken()
	require.False(t, ok)
	_, ok = store.RefreshToken()
	require.False(t, ok)
}

func TestFileStore(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tokens.json")
		store, err := tokenstore.NewFileStore(path)
		require.NoError(t, err)

		_, ok := store.AccessToken()
		require.False(t, ok)

		require.NoError(t, store.SetPair("access-1", "refresh-1"))

		// A fresh store against the same path sees the persisted pair.
		reopened, err := tokenstore.NewFileStore(path)
		require.NoError(t, err)
		access, ok := reopened.AccessToken()
		require.True(t, ok)
		require.Equal(t, "access-1", access)
		refresh, ok := reopened.RefreshToken()
		require.True(t, ok)
		require.Equal(t, "refresh-1", refresh)
	})

	t.Run("clear removes the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tokens.json")
		store, err := tokenstore.NewFileStore(path)
		require.NoError(t, err)

		require.NoError(t, store.SetPair("access-1", "refresh-1"))
		require.NoError(t, store.Clear())

		_, statErr := os.Stat(path)
		require.True(t, os.IsNotExist(statErr))
		_, ok := store.AccessToken()
		require.False(t, ok)
	})

	t.Run("clear is idempotent", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tokens.json")
		store, err := tokenstore.NewFileStore(path)
		require.NoError(t, err)
		require.NoError(t, store.Clear())
		require.NoError(t, store.Clear())
	})

	t.Run("corrupt file reads as logged out", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tokens.json")
		require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

		store, err := tokenstore.NewFileStore(path)
		require.NoError(t, err)
		_, ok := store.AccessToken()
		require.False(t, ok)
	})

	t.Run("requires a path", func(t *testing.T) {
		_, err := tokenstore.NewFileStore("")
		require.Error(t, err)
	})

	t.Run("file permissions are private", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tokens.json")
		store, err := tokenstore.NewFileStore(path)
		require.NoError(t, err)
		require.NoError(t, store.SetPair("access-1", "refresh-1"))

		info, err := os.Stat(path)
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})
}

func signedToken(t *testing.T, claims jwtlib.MapClaims) string {
	t.Helper()
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	raw, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return raw
}

func TestPeekClaims(t *testing.T) {
	now := time.Now().Truncate(time.Second)

	t.Run("extracts subject and expiry without verification", func(t *testing.T) {
		raw := signedToken(t, jwtlib.MapClaims{
			"sub": "user-1",
			"exp": now.Add(time.Hour).Unix(),
			"iat": now.Unix(),
		})

		claims, err := tokenstore.PeekClaims(raw)
		require.NoError(t, err)
		require.Equal(t, "user-1", claims.Subject)
		require.Equal(t, now.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
		require.Equal(t, now.Unix(), claims.IssuedAt.Unix())
	})

	t.Run("rejects empty and malformed tokens", func(t *testing.T) {
		_, err := tokenstore.PeekClaims("")
		require.Error(t, err)
		_, err = tokenstore.PeekClaims("not-a-jwt")
		require.Error(t, err)
	})
}

func TestExpired(t *testing.T) {
	now := time.Now()

	t.Run("past exp is expired", func(t *testing.T) {
		raw := signedToken(t, jwtlib.MapClaims{"exp": now.Add(-time.Minute).Unix()})
		require.True(t, tokenstore.Expired(raw, now))
	})

	t.Run("future exp is not expired", func(t *testing.T) {
		raw := signedToken(t, jwtlib.MapClaims{"exp": now.Add(time.Hour).Unix()})
		require.False(t, tokenstore.Expired(raw, now))
	})

	t.Run("no exp claim is not expired", func(t *testing.T) {
		raw := signedToken(t, jwtlib.MapClaims{"sub": "user-1"})
		require.False(t, tokenstore.Expired(raw, now))
	})

	t.Run("unparseable token is not expired", func(t *testing.T) {
		require.False(t, tokenstore.Expired("garbage", now))
	})
}
