package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/liftstack/liftlog/internal/models"
	"github.com/liftstack/liftlog/internal/storage"
)

// HTTPClient implements DataSource by calling the LiftLog REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale). The REST
// layer resolves identity from the tailnet connection, so the userID
// arguments are ignored here.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

func getJSON[T any](ctx context.Context, c *HTTPClient, path string) (T, error) {
	var out T
	body, err := c.get(ctx, path)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, fmt.Errorf("httpclient: decode %s: %w", path, err)
	}
	return out, nil
}

func (c *HTTPClient) PersonalRecords(ctx context.Context, _ int) ([]storage.ExerciseRecord, error) {
	return getJSON[[]storage.ExerciseRecord](ctx, c, "/api/v1/records")
}

func (c *HTTPClient) RecoveryStatus(ctx context.Context, _ int) ([]storage.MuscleRecovery, error) {
	return getJSON[[]storage.MuscleRecovery](ctx, c, "/api/v1/recovery")
}

func (c *HTTPClient) StrengthHistory(ctx context.Context, _ int) ([]storage.HistoryRow, error) {
	return getJSON[[]storage.HistoryRow](ctx, c, "/api/v1/history/strength")
}

func (c *HTTPClient) VolumeHistory(ctx context.Context, _ int) ([]storage.HistoryRow, error) {
	return getJSON[[]storage.HistoryRow](ctx, c, "/api/v1/history/volume")
}

func (c *HTTPClient) ListSetTypes(ctx context.Context) ([]models.SetType, error) {
	return getJSON[[]models.SetType](ctx, c, "/api/v1/settypes")
}

func (c *HTTPClient) GetDataStats(ctx context.Context, _ int) (*storage.DataStats, error) {
	return getJSON[*storage.DataStats](ctx, c, "/api/v1/stats")
}
