package session

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osmansemir/mindvale-cli/internal/api"
	"github.com/osmansemir/mindvale-cli/internal/apitest"
	"github.com/osmansemir/mindvale-cli/internal/logging"
	"github.com/osmansemir/mindvale-cli/internal/models"
	"github.com/osmansemir/mindvale-cli/internal/validator"
)

func testLogger() logging.Logger {
	return logging.NewDevLogger(io.Discard, slog.LevelError)
}

// newTestSession wires a session store to a fresh API double the way the app
// does: the store is the client's token source and 401 hook.
func newTestSession(t *testing.T) (*Store, *apitest.Server) {
	t.Helper()
	fake := apitest.NewServer()
	ts := httptest.NewServer(fake.Handler())
	t.Cleanup(ts.Close)

	store := NewStore(filepath.Join(t.TempDir(), "token"), testLogger())
	client := api.New(ts.URL+"/api",
		api.WithTokenSource(store),
		api.WithUnauthorizedHook(store.HandleUnauthorized),
	)
	store.AttachClient(client)
	return store, fake
}

func TestLoginPersistsToken(t *testing.T) {
	ctx := context.Background()
	store, fake := newTestSession(t)
	fake.SeedUser("Riley", "riley@example.com", "password123", models.RoleUser)

	user, err := store.Login(ctx, "riley@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "Riley", user.Name)
	assert.True(t, store.IsAuthenticated())
	assert.Equal(t, models.RoleUser, store.Role())

	saved, err := store.file.load()
	require.NoError(t, err)
	assert.Equal(t, store.Token(), saved, "token must survive restart via the token file")
}

func TestLoginBadCredentials(t *testing.T) {
	ctx := context.Background()
	store, fake := newTestSession(t)
	fake.SeedUser("Riley", "riley@example.com", "password123", models.RoleUser)

	_, err := store.Login(ctx, "riley@example.com", "wrong")
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrUnauthorized)
	assert.EqualError(t, err, "Invalid email or password")
	assert.False(t, store.IsAuthenticated())
}

func TestLogoutClearsEverything(t *testing.T) {
	ctx := context.Background()
	store, fake := newTestSession(t)
	fake.SeedUser("Riley", "riley@example.com", "password123", models.RoleUser)

	_, err := store.Login(ctx, "riley@example.com", "password123")
	require.NoError(t, err)

	store.Logout(ctx)
	assert.False(t, store.IsAuthenticated())
	assert.Empty(t, store.Token())
	assert.Nil(t, store.User())

	_, err = store.file.load()
	assert.True(t, os.IsNotExist(err), "token file must be removed on logout")
}

func TestRegisterValidatesLocally(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestSession(t)

	tests := []struct {
		name     string
		userName string
		email    string
		password string
		role     models.Role
		field    string
	}{
		{"missing name", "", "a@b.co", "password123", models.RoleUser, "name"},
		{"bad email", "Riley", "not-an-email", "password123", models.RoleUser, "email"},
		{"short password", "Riley", "a@b.co", "short", models.RoleUser, "password"},
		{"admin role refused", "Riley", "a@b.co", "password123", models.RoleAdmin, "role"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.Register(ctx, tt.userName, tt.email, tt.password, tt.role)
			var fieldErr *validator.FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tt.field, fieldErr.Field)
		})
	}
}

func TestRegisterDoesNotAuthenticate(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestSession(t)

	err := store.Register(ctx, "Riley", "riley@example.com", "password123", models.RoleAuthor)
	require.NoError(t, err)
	assert.False(t, store.IsAuthenticated(), "registration must not sign the account in")

	_, err = store.Login(ctx, "riley@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAuthor, store.Role())
}

func TestCheckAuthWithNoToken(t *testing.T) {
	store, _ := newTestSession(t)

	ok, err := store.CheckAuth(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckAuthRestoresSession(t *testing.T) {
	ctx := context.Background()
	store, fake := newTestSession(t)
	user := fake.SeedUser("Riley", "riley@example.com", "password123", models.RoleAuthor)

	store.mu.Lock()
	store.token = fake.IssueToken(user.ID)
	store.mu.Unlock()

	ok, err := store.CheckAuth(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, store.IsAuthenticated())
	assert.Equal(t, "Riley", store.User().Name)
}

func TestCheckAuthExpiredClaimSkipsRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestSession(t)

	claims := jwt.RegisteredClaims{
		Subject:   "someone",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("whatever"))
	require.NoError(t, err)

	store.mu.Lock()
	store.token = expired
	store.mu.Unlock()

	ok, err := store.CheckAuth(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, store.Token(), "a locally expired token is discarded")
}

func TestCheckAuthRejectedTokenBehavesLikeLogout(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestSession(t)

	claims := jwt.RegisteredClaims{
		Subject:   "someone",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("wrong-secret"))
	require.NoError(t, err)

	store.mu.Lock()
	store.token = forged
	store.mu.Unlock()

	ok, err := store.CheckAuth(ctx)
	require.NoError(t, err, "a server refusal is not an error, just a signed-out state")
	assert.False(t, ok)
	assert.Empty(t, store.Token())
}

func TestExpiryCallbackFiresOnlyForLiveSession(t *testing.T) {
	ctx := context.Background()
	store, fake := newTestSession(t)
	fake.SeedUser("Riley", "riley@example.com", "password123", models.RoleUser)

	expired := 0
	store.OnSessionExpired(func() { expired++ })

	// Signed out: a 401 teardown must stay silent.
	store.HandleUnauthorized()
	assert.Equal(t, 0, expired)

	_, err := store.Login(ctx, "riley@example.com", "password123")
	require.NoError(t, err)

	store.HandleUnauthorized()
	assert.Equal(t, 1, expired)
	assert.False(t, store.IsAuthenticated())

	// Already torn down: no second notification.
	store.HandleUnauthorized()
	assert.Equal(t, 1, expired)
}

func TestStoreLoadsPersistedTokenOnConstruction(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "token")
	require.NoError(t, os.WriteFile(path, []byte("persisted-token\n"), 0o600))

	store := NewStore(path, testLogger())
	assert.Equal(t, "persisted-token", store.Token())
	assert.False(t, store.IsAuthenticated(), "a loaded token is not trusted until verified")
}
