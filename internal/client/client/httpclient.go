package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dmitrijs2005/streetsmarts/internal/client/models"
	"github.com/dmitrijs2005/streetsmarts/internal/common"
)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 1 << 20

// HTTPClient talks to the game server's JSON API and polls its gRPC health
// endpoint. The bearer token obtained by Login is attached to every request.
type HTTPClient struct {
	baseURL string
	http    *http.Client

	conn   *grpc.ClientConn
	health healthpb.HealthClient

	mu          sync.RWMutex
	accessToken string
}

// NewStreetSmartsClient returns a client for the server at baseURL. A
// healthAddr of "" disables Ping.
func NewStreetSmartsClient(baseURL, healthAddr string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid server url %q", baseURL)
	}

	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}

	if healthAddr != "" {
		conn, err := grpc.NewClient(healthAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return nil, err
		}
		c.conn = conn
		c.health = healthpb.NewHealthClient(conn)
	}
	return c, nil
}

func (c *HTTPClient) BaseURL() string { return c.baseURL }

func (c *HTTPClient) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

func (c *HTTPClient) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

func (c *HTTPClient) setToken(t string) {
	c.mu.Lock()
	c.accessToken = t
	c.mu.Unlock()
}

func (c *HTTPClient) Register(ctx context.Context, username string, password []byte) error {
	body := map[string]string{"username": username, "password": string(password)}
	return c.doJSON(ctx, http.MethodPost, "/register", body, nil)
}

// Login exchanges credentials for a bearer token using the form-encoded
// password flow.
func (c *HTTPClient) Login(ctx context.Context, username string, password []byte) error {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", string(password))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/token", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := c.do(req, &resp); err != nil {
		return err
	}
	if resp.AccessToken == "" {
		return fmt.Errorf("%w: empty access token", common.ErrorInternal)
	}
	c.setToken(resp.AccessToken)
	return nil
}

func (c *HTTPClient) Logout() { c.setToken("") }

func (c *HTTPClient) RandomLocation(ctx context.Context) (*models.Location, error) {
	var loc models.Location
	if err := c.doJSON(ctx, http.MethodGet, "/random_location", nil, &loc); err != nil {
		return nil, err
	}
	return &loc, nil
}

func (c *HTTPClient) SubmitGuess(ctx context.Context, locationID int64, lat, lng float64) (*models.GuessResult, error) {
	body := map[string]any{"location_id": locationID, "guess_lat": lat, "guess_lng": lng}
	var res models.GuessResult
	if err := c.doJSON(ctx, http.MethodPost, "/submit_guess", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	path := "/leaderboard"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var entries []models.LeaderboardEntry
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *HTTPClient) Me(ctx context.Context) (*models.Profile, error) {
	var p models.Profile
	if err := c.doJSON(ctx, http.MethodGet, "/me", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Ping asks the gRPC health service whether the server is SERVING.
func (c *HTTPClient) Ping(ctx context.Context) error {
	if c.health == nil {
		return ErrUnavailable
	}
	resp, err := c.health.Check(ctx, &healthpb.HealthCheckRequest{})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return fmt.Errorf("%w: %s", ErrUnavailable, resp.GetStatus())
	}
	return nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *HTTPClient) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	if t := c.token(); t != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+t)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Detail: parseDetail(data)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// parseDetail extracts the "detail" field of an error body. Non-string
// details are returned as raw JSON; bodies that are not JSON yield "".
func parseDetail(data []byte) string {
	var e struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(data, &e); err != nil || len(e.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(e.Detail, &s); err == nil {
		return s
	}
	return string(e.Detail)
}
