package client

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dmitrijs2005/streetsmarts/internal/common"
)

func newTestClient(t *testing.T, h http.Handler) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewStreetSmartsClient(srv.URL, "", 5*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNewStreetSmartsClient_InvalidURL(t *testing.T) {
	for _, u := range []string{"", "localhost:8000", "://bad"} {
		_, err := NewStreetSmartsClient(u, "", time.Second)
		assert.Error(t, err, u)
	}
}

func TestRegister_SendsJSON(t *testing.T) {
	var got map[string]string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/register", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusCreated, map[string]string{"msg": "user created"})
	}))

	require.NoError(t, c.Register(context.Background(), "alice", []byte("password1")))
	assert.Equal(t, map[string]string{"username": "alice", "password": "password1"}, got)
}

func TestRegister_DetailSurfaced(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Username already registered"})
	}))

	err := c.Register(context.Background(), "alice", []byte("password1"))
	require.Error(t, err)
	assert.Equal(t, "Username already registered", err.Error())
	assert.ErrorIs(t, err, common.ErrValidation)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestLogin_StoresTokenAndSendsBearer(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "alice", r.PostForm.Get("username"))
		assert.Equal(t, "password1", r.PostForm.Get("password"))
		writeJSON(w, http.StatusOK, map[string]string{"access_token": "tok", "token_type": "bearer"})
	})
	mux.HandleFunc("/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Not authenticated"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"username": "alice", "total_score": 4200, "rounds_played": 2})
	})
	c := newTestClient(t, mux)
	ctx := context.Background()

	_, err := c.Me(ctx)
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
	assert.Equal(t, "Not authenticated", err.Error())

	require.NoError(t, c.Login(ctx, "alice", []byte("password1")))

	p, err := c.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", p.Username)
	assert.Equal(t, int64(4200), p.TotalScore)
	assert.Equal(t, int64(2), p.RoundsPlayed)

	c.Logout()
	_, err = c.Me(ctx)
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestLogin_BadCredentials(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Incorrect username or password"})
	}))

	err := c.Login(context.Background(), "alice", []byte("nope"))
	require.Error(t, err)
	assert.Equal(t, "Incorrect username or password", err.Error())
	assert.Empty(t, c.token())
}

func TestLogin_EmptyToken(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"token_type": "bearer"})
	}))

	err := c.Login(context.Background(), "alice", []byte("password1"))
	assert.ErrorIs(t, err, common.ErrorInternal)
}

func TestRandomLocationAndSubmitGuess(t *testing.T) {
	var guess map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("/random_location", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"id": 7, "name": "Paris", "lat": 48.8566, "lng": 2.3522,
			"image_url": "/cache/gsv_48_8566_2_3522.jpg",
		})
	})
	mux.HandleFunc("/submit_guess", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&guess))
		writeJSON(w, http.StatusOK, map[string]any{
			"distance_meters": 1234.5, "points_awarded": 4700, "total_score": 4700, "rounds_played": 1,
		})
	})
	c := newTestClient(t, mux)
	ctx := context.Background()

	loc, err := c.RandomLocation(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), loc.ID)
	assert.Equal(t, "Paris", loc.Name)
	assert.Empty(t, loc.ImageError)
	assert.Equal(t, c.BaseURL()+"/cache/gsv_48_8566_2_3522.jpg", loc.ImageLink(c.BaseURL()))

	res, err := c.SubmitGuess(ctx, loc.ID, 48.0, 2.0)
	require.NoError(t, err)
	assert.Equal(t, 4700, res.PointsAwarded)
	assert.InDelta(t, 1234.5, res.DistanceMeters, 1e-9)
	assert.Equal(t, map[string]any{"location_id": float64(7), "guess_lat": 48.0, "guess_lng": 2.0}, guess)
}

func TestRandomLocation_NotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "No locations available"})
	}))

	_, err := c.RandomLocation(context.Background())
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.Equal(t, "No locations available", err.Error())
}

func TestLeaderboard_Limit(t *testing.T) {
	var query string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		writeJSON(w, http.StatusOK, []map[string]any{
			{"username": "bob", "total_score": 9000, "rounds_played": 3},
			{"username": "alice", "total_score": 100, "rounds_played": 1},
		})
	}))

	entries, err := c.Leaderboard(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, "limit=10", query)
	require.Len(t, entries, 2)
	assert.Equal(t, "bob", entries[0].Username)

	_, err = c.Leaderboard(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, query)
}

func TestErrors_NonJSONBodyAndServerError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := c.Me(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrorInternal)
	assert.Equal(t, "Internal Server Error", err.Error())
}

func TestErrors_StructuredDetail(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": []map[string]string{{"msg": "field required"}}})
	}))

	_, err := c.SubmitGuess(context.Background(), 1, 0, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.Contains(t, err.Error(), "field required")
}

func TestErrors_BadJSONOnSuccess(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("not json"))
	}))

	_, err := c.RandomLocation(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	c, err := NewStreetSmartsClient(addr, "", time.Second)
	require.NoError(t, err)

	_, err = c.Leaderboard(context.Background(), 5)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCanceledContext(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []any{})
	}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Leaderboard(ctx, 5)
	assert.ErrorIs(t, err, context.Canceled)
}

func startHealthServer(t *testing.T) (string, *health.Server) {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(s, hs)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)
	return lis.Addr().String(), hs
}

func TestPing(t *testing.T) {
	addr, hs := startHealthServer(t)

	c, err := NewStreetSmartsClient("http://127.0.0.1:1", addr, time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	require.NoError(t, c.Ping(ctx))

	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	assert.ErrorIs(t, c.Ping(ctx), ErrUnavailable)
}

func TestPing_Disabled(t *testing.T) {
	c, err := NewStreetSmartsClient("http://127.0.0.1:1", "", time.Second)
	require.NoError(t, err)
	assert.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)
	assert.NoError(t, c.Close())
}
