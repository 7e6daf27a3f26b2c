package challenge

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProvider(t *testing.T, token string) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /v1/token", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			SiteKey string `json:"site_key"`
			Action  string `json:"action"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-key", req.SiteKey)
		assert.Equal(t, "registration_submit", req.Action)

		json.NewEncoder(w).Encode(map[string]string{"token": token})
	})
	return httptest.NewServer(mux)
}

func TestAcquireTokenBeforeInit(t *testing.T) {
	c := NewClient("http://localhost:0", "test-key", time.Second)

	assert.False(t, c.Ready())
	_, err := c.AcquireToken(context.Background(), "registration_submit")
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestAcquireToken(t *testing.T) {
	srv := newProvider(t, "tok-abc")
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", time.Second)
	require.NoError(t, c.Init(context.Background()))
	assert.True(t, c.Ready())

	token, err := c.AcquireToken(context.Background(), "registration_submit")
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", token)
}

func TestAcquireTokenEmpty(t *testing.T) {
	srv := newProvider(t, "")
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", time.Second)
	require.NoError(t, c.Init(context.Background()))

	_, err := c.AcquireToken(context.Background(), "registration_submit")
	assert.ErrorIs(t, err, ErrEmptyToken)
}

func TestAcquireTokenProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/ready" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", time.Second)
	require.NoError(t, c.Init(context.Background()))

	_, err := c.AcquireToken(context.Background(), "registration_submit")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestInitFailsOnBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", time.Second)
	err := c.Init(context.Background())
	require.Error(t, err)
	assert.False(t, c.Ready())
}

func TestDisabledReplayGuardAcceptsEverything(t *testing.T) {
	guard, err := NewReplayGuard(false, "", "challenge:used:{token}", time.Minute)
	require.NoError(t, err)
	defer guard.Close()

	assert.NoError(t, guard.Consume(context.Background(), "tok-1"))
	assert.NoError(t, guard.Consume(context.Background(), "tok-1"))
}

func TestGuardedSourcePassesTokenThrough(t *testing.T) {
	srv := newProvider(t, "tok-abc")
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", time.Second)
	require.NoError(t, client.Init(context.Background()))

	guard, err := NewReplayGuard(false, "", "challenge:used:{token}", time.Minute)
	require.NoError(t, err)

	src := &GuardedSource{Client: client, Guard: guard}
	assert.True(t, src.Ready())

	token, err := src.AcquireToken(context.Background(), "registration_submit")
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", token)
}
