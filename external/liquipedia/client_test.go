package liquipedia

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/roster-wayback/internal/platform/logging"
	"github.com/riskibarqy/roster-wayback/internal/platform/resilience"
	"github.com/riskibarqy/roster-wayback/internal/usecase"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string, retries int, breaker resilience.CircuitBreakerConfig) *Client {
	return NewClient(ClientConfig{
		BaseURL:        baseURL,
		Email:          "bot@example.com",
		Timeout:        2 * time.Second,
		MaxRetries:     retries,
		Logger:         logging.NewNop(),
		CircuitBreaker: breaker,
	})
}

func TestUserAgent(t *testing.T) {
	if got := UserAgent(""); got != "RosterWaybackBot/0.1.0" {
		t.Fatalf("unexpected user agent: %s", got)
	}
	if got := UserAgent(" bot@example.com "); got != "RosterWaybackBot/0.1.0 (bot@example.com)" {
		t.Fatalf("unexpected user agent: %s", got)
	}
}

func TestClient_FetchPageFollowsRedirect(t *testing.T) {
	var userAgent atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent.Store(r.UserAgent())
		switch r.URL.Path {
		case "/counterstrike/Astralis_old":
			http.Redirect(w, r, "/counterstrike/Astralis", http.StatusMovedPermanently)
		case "/counterstrike/Astralis":
			_, _ = w.Write([]byte("<html>ok</html>"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 0, resilience.CircuitBreakerConfig{})
	page, err := client.FetchPage(context.Background(), "/counterstrike/Astralis_old")
	require.NoError(t, err)
	require.Equal(t, srv.URL+"/counterstrike/Astralis", page.URL)
	require.Equal(t, "<html>ok</html>", string(page.Body))
	require.Equal(t, "RosterWaybackBot/0.1.0 (bot@example.com)", userAgent.Load())
}

func TestClient_RetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 1, resilience.CircuitBreakerConfig{})
	page, err := client.FetchPage(context.Background(), "/counterstrike/Astralis")
	require.NoError(t, err)
	require.Equal(t, "ok", string(page.Body))
	require.Equal(t, int32(2), calls.Load())
}

func TestClient_DoesNotRetryNotFound(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 3, resilience.CircuitBreakerConfig{})
	_, err := client.FetchPage(context.Background(), "/counterstrike/Missing")
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "status=404"))
	require.False(t, isLiquipediaCircuitFailure(err))
	require.Equal(t, int32(1), calls.Load())
}

func TestClient_CircuitBreakerOpens(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 0, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 1,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})

	_, err := client.FetchPage(context.Background(), "/counterstrike/Astralis")
	require.Error(t, err)
	require.True(t, isLiquipediaCircuitFailure(err))

	_, err = client.FetchPage(context.Background(), "/counterstrike/Astralis")
	require.True(t, errors.Is(err, usecase.ErrDependencyUnavailable))
}

func TestClient_DelaySpacesRequests(t *testing.T) {
	client := NewClient(ClientConfig{Delay: 50 * time.Millisecond, Logger: logging.NewNop()})

	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, client.wait(context.Background()))
	}
	require.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, client.wait(ctx), context.Canceled)
}
