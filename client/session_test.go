package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFakeAPI spins up a minimal API that accepts one token/password pair.
func newFakeAPI(t *testing.T, validToken string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, r.ParseForm())
		if r.PostFormValue("username") != "bob" || r.PostFormValue("password") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "invalid username or password"})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": validToken,
			"token_type":   "bearer",
			"user":         map[string]string{"id": "u1", "username": "bob"},
		})
	})

	mux.HandleFunc("/api/v1/users/me", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Header.Get("Authorization") != "Bearer "+validToken {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "Invalid or expired token"})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"user": map[string]string{"id": "u1", "username": "bob"},
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestInitializeWithStoredToken(t *testing.T) {
	server := newFakeAPI(t, "good-token")
	store := NewMemoryStore()
	require.NoError(t, store.Save(&Credentials{AccessToken: "good-token", Username: "bob"}))

	session := NewSession(New(server.URL), store)
	assert.Equal(t, StateLoading, session.State())

	require.NoError(t, session.Initialize(context.Background()))
	assert.Equal(t, StateAuthenticated, session.State())
	require.NotNil(t, session.CurrentUser())
	assert.Equal(t, "bob", session.CurrentUser().Username)
}

func TestInitializeWithoutToken(t *testing.T) {
	server := newFakeAPI(t, "good-token")

	session := NewSession(New(server.URL), NewMemoryStore())
	require.NoError(t, session.Initialize(context.Background()))
	assert.Equal(t, StateUnauthenticated, session.State())
	assert.Nil(t, session.CurrentUser())
}

// 被服务端拒绝的 token 要被清掉，下次启动等同于未登录
func TestInitializeRejectedTokenCleared(t *testing.T) {
	server := newFakeAPI(t, "good-token")
	store := NewMemoryStore()
	require.NoError(t, store.Save(&Credentials{AccessToken: "stale-token", Username: "bob"}))

	client := New(server.URL)
	session := NewSession(client, store)
	require.NoError(t, session.Initialize(context.Background()))

	assert.Equal(t, StateUnauthenticated, session.State())
	assert.Empty(t, client.Token())

	creds, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, creds)
}

func TestLoginAndLogout(t *testing.T) {
	server := newFakeAPI(t, "good-token")
	store := NewMemoryStore()
	client := New(server.URL)
	session := NewSession(client, store)

	user, err := session.Login(context.Background(), "bob", "secret")
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Username)
	assert.Equal(t, StateAuthenticated, session.State())

	// token 已持久化
	creds, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, creds)
	assert.Equal(t, "good-token", creds.AccessToken)

	require.NoError(t, session.Logout())
	assert.Equal(t, StateUnauthenticated, session.State())
	assert.Empty(t, client.Token())

	creds, err = store.Load()
	require.NoError(t, err)
	assert.Nil(t, creds)
}

func TestLoginBadPassword(t *testing.T) {
	server := newFakeAPI(t, "good-token")
	session := NewSession(New(server.URL), NewMemoryStore())

	_, err := session.Login(context.Background(), "bob", "wrong")
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, StateLoading, session.State())
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := NewFileStore(t.TempDir() + "/credentials.json")

	creds, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, creds)

	require.NoError(t, store.Save(&Credentials{AccessToken: "tok", Username: "bob"}))

	creds, err = store.Load()
	require.NoError(t, err)
	require.NotNil(t, creds)
	assert.Equal(t, "tok", creds.AccessToken)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())

	creds, err = store.Load()
	require.NoError(t, err)
	assert.Nil(t, creds)
}
