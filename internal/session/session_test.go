package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HarshalRajendraPatil/wcommerce-client/internal/domain"
)

func testToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestStore_SaveLoadClear(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.json")
	store := NewStore(path)

	// Empty store
	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoSession)
	assert.Empty(t, store.Token())

	sess := &domain.Session{
		Token: "tok-abc",
		User:  domain.User{ID: "u1", Email: "a@b.com", Role: "customer"},
	}
	require.NoError(t, store.Save(sess))
	assert.Equal(t, "tok-abc", store.Token())

	// Fresh store instance reads it back from disk
	reloaded := NewStore(path)
	got, err := reloaded.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", got.Token)
	assert.Equal(t, "u1", got.User.ID)

	require.NoError(t, reloaded.Clear())
	assert.Empty(t, reloaded.Token())
	_, err = NewStore(path).Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestStore_ClearIdempotent(t *testing.T) {
	t.Parallel()

	store := NewStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
}

func TestParseClaims(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := testToken(t, jwt.MapClaims{
		"sub":   "user-42",
		"email": "x@y.com",
		"role":  "admin",
		"exp":   exp.Unix(),
	})

	claims, err := ParseClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.UserID)
	assert.Equal(t, "x@y.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.WithinDuration(t, exp, claims.ExpiresAt, time.Second)
}

func TestParseClaims_Malformed(t *testing.T) {
	t.Parallel()

	_, err := ParseClaims("not-a-jwt")
	assert.Error(t, err)
}

func TestStore_Expired(t *testing.T) {
	t.Parallel()

	now := time.Now()
	store := NewStore(filepath.Join(t.TempDir(), "session.json"))

	// No session at all
	assert.True(t, store.Expired(now))

	fresh := testToken(t, jwt.MapClaims{"sub": "u1", "exp": now.Add(time.Hour).Unix()})
	require.NoError(t, store.Save(&domain.Session{Token: fresh, User: domain.User{ID: "u1"}}))
	assert.False(t, store.Expired(now))

	stale := testToken(t, jwt.MapClaims{"sub": "u1", "exp": now.Add(-time.Hour).Unix()})
	require.NoError(t, store.Save(&domain.Session{Token: stale, User: domain.User{ID: "u1"}}))
	assert.True(t, store.Expired(now))

	// No exp claim: defer to the server
	forever := testToken(t, jwt.MapClaims{"sub": "u1"})
	require.NoError(t, store.Save(&domain.Session{Token: forever, User: domain.User{ID: "u1"}}))
	assert.False(t, store.Expired(now))
}
