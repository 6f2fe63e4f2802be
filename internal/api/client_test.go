package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HarshalRajendraPatil/wcommerce-client/config"
	"github.com/HarshalRajendraPatil/wcommerce-client/internal/domain"
	"github.com/HarshalRajendraPatil/wcommerce-client/internal/session"
	"github.com/HarshalRajendraPatil/wcommerce-client/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init("test", "error")
	os.Exit(m.Run())
}

func testConfig(baseURL string, t *testing.T) *config.Config {
	return &config.Config{
		APIBaseURL:     baseURL,
		HTTPTimeout:    5 * time.Second,
		RequestsPerSec: 100,
		RequestBurst:   100,
		SessionFile:    filepath.Join(t.TempDir(), "session.json"),
		MaxImageWidth:  2000,
		ImageQuality:   85,
	}
}

func newTestClient(t *testing.T, handler http.Handler, hooks Hooks) (*Client, *session.Store) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := testConfig(server.URL, t)
	sess := session.NewStore(cfg.SessionFile)
	return New(cfg, sess, hooks), sess
}

func TestClient_AttachesBearerAndRequestID(t *testing.T) {
	t.Parallel()

	var gotAuth, gotRequestID string
	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{"success":true}`))
	}), Hooks{})

	require.NoError(t, sess.Save(&domain.Session{Token: "tok-123", User: domain.User{ID: "u1"}}))

	_, err := client.do(context.Background(), http.MethodGet, "/cart", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestClient_NoBearerWithoutSession(t *testing.T) {
	t.Parallel()

	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"success":true}`))
	}), Hooks{})

	_, err := client.do(context.Background(), http.MethodGet, "/products", nil, nil)
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClient_SessionTeardownOn401(t *testing.T) {
	t.Parallel()

	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"message":"Token expired"}`))
	}), Hooks{})

	expired := 0
	client.hooks.OnSessionExpired = func() { expired++ }

	require.NoError(t, sess.Save(&domain.Session{Token: "stale", User: domain.User{ID: "u1"}}))

	_, err := client.do(context.Background(), http.MethodGet, "/cart", nil, nil)
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, "Token expired", MessageOf(err))
	assert.Equal(t, 1, expired)
	assert.Empty(t, sess.Token(), "session must be cleared after 401")
	_, loadErr := sess.Load()
	assert.ErrorIs(t, loadErr, session.ErrNoSession, "session file must be gone")
}

func TestClient_No401TeardownOnAuthEndpoints(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"/auth/login", "/auth/register"} {
		path := path
		t.Run(path, func(t *testing.T) {
			t.Parallel()

			client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"success":false,"message":"Invalid credentials"}`))
			}), Hooks{})

			expired := 0
			client.hooks.OnSessionExpired = func() { expired++ }

			require.NoError(t, sess.Save(&domain.Session{Token: "tok", User: domain.User{ID: "u1"}}))

			_, err := client.do(context.Background(), http.MethodPost, path, nil, map[string]string{"email": "a@b.com"})
			require.Error(t, err)
			assert.True(t, IsUnauthorized(err))
			assert.Equal(t, "Invalid credentials", MessageOf(err))
			assert.Zero(t, expired, "bad credentials must not tear down the session")
			assert.Equal(t, "tok", sess.Token())
		})
	}
}

func TestClient_ErrorMessageExtraction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "message field", body: `{"success":false,"message":"Product not found"}`, want: "Product not found"},
		{name: "error field", body: `{"error":"validation failed"}`, want: "validation failed"},
		{name: "message wins over error", body: `{"message":"primary","error":"secondary"}`, want: "primary"},
		{name: "empty body", body: ``, want: FallbackMessage},
		{name: "non-JSON body", body: `<html>bad gateway</html>`, want: FallbackMessage},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(tt.body))
			}), Hooks{})

			_, err := client.do(context.Background(), http.MethodGet, "/products/x", nil, nil)
			require.Error(t, err)
			assert.Equal(t, tt.want, MessageOf(err))
		})
	}
}

func TestClient_OnErrorHook(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"boom"}`))
	})

	t.Run("fires by default", func(t *testing.T) {
		t.Parallel()

		var toasts []string
		client, _ := newTestClient(t, handler, Hooks{OnError: func(m string) { toasts = append(toasts, m) }})

		_, err := client.do(context.Background(), http.MethodGet, "/cart", nil, nil)
		require.Error(t, err)
		assert.Equal(t, []string{"boom"}, toasts)
	})

	t.Run("suppressed by Silent", func(t *testing.T) {
		t.Parallel()

		var toasts []string
		client, _ := newTestClient(t, handler, Hooks{OnError: func(m string) { toasts = append(toasts, m) }})

		_, err := client.do(context.Background(), http.MethodGet, "/cart", nil, nil, Silent())
		require.Error(t, err, "error still propagates")
		assert.Empty(t, toasts)
	})
}

func TestClient_DecodesEnvelope(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"message":"ok","data":{"id":"p1","name":"Mug"},"pagination":{"current":2,"total":5,"count":48}}`))
	}), Hooks{})

	resp, err := client.do(context.Background(), http.MethodGet, "/products", nil, nil)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "ok", resp.Message)
	require.NotNil(t, resp.Pagination)
	assert.Equal(t, 2, resp.Pagination.Current)
	assert.Equal(t, 48, resp.Pagination.Count)

	var product domain.Product
	require.NoError(t, decodeData(resp, &product))
	assert.Equal(t, "Mug", product.Name)
}
