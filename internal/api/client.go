// Package api implements the MockLingo admin backend client.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/mocklingo/admin-dashboard-tui/internal/logger"
	"github.com/mocklingo/admin-dashboard-tui/internal/models"
)

// TokenProvider returns the current bearer token, or "" when logged out.
type TokenProvider func() string

// Client talks to the admin API. All data endpoints require a token;
// failures are normalized to user-facing messages and never retried.
type Client struct {
	baseURL string
	http    *http.Client
	token   TokenProvider
}

// NewClient creates a client for the given base URL.
func NewClient(baseURL string, timeout time.Duration, token TokenProvider) *Client {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		token:   token,
	}
}

// LoginResult is the successful login response.
type LoginResult struct {
	AccessToken string           `json:"access_token"`
	AdminUser   models.AdminUser `json:"admin_user"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	payload, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/admin/auth/login", bytes.NewReader(payload))
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer closeBody(resp)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, normalizeLoginError(resp.StatusCode, body)
	}

	var result LoginResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("failed to parse login response: %w", err)}
	}
	return &result, nil
}

// TokenUsage returns the raw per-interview usage records.
func (c *Client) TokenUsage(ctx context.Context) ([]models.UsageRecord, error) {
	var out struct {
		UsageRecords []models.UsageRecord `json:"usage_records"`
	}
	if err := c.getJSON(ctx, "/admin/token-usage/", &out); err != nil {
		return nil, err
	}
	return out.UsageRecords, nil
}

// TokenUsageStats returns the all-time token total.
func (c *Client) TokenUsageStats(ctx context.Context) (int64, error) {
	var out struct {
		TotalTokens int64 `json:"total_tokens"`
	}
	if err := c.getJSON(ctx, "/admin/token-usage/stats", &out); err != nil {
		return 0, err
	}
	return out.TotalTokens, nil
}

// TotalUsers returns the registered user count.
func (c *Client) TotalUsers(ctx context.Context) (int64, error) {
	var out struct {
		TotalUsers int64 `json:"total_users"`
	}
	if err := c.getJSON(ctx, "/admin/dashboard/total-users", &out); err != nil {
		return 0, err
	}
	return out.TotalUsers, nil
}

// UserTrends returns daily registration counts for the trailing window.
func (c *Client) UserTrends(ctx context.Context, days int) ([]models.TrendPoint, error) {
	var out struct {
		Trends []models.TrendPoint `json:"trends"`
	}
	path := "/admin/dashboard/trends?days=" + strconv.Itoa(days)
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return out.Trends, nil
}

// UserList returns the per-user activity table.
func (c *Client) UserList(ctx context.Context) ([]models.UserRow, error) {
	var out struct {
		Users []models.UserRow `json:"users"`
	}
	if err := c.getJSON(ctx, "/admin/dashboard/user-list", &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

// ActiveSessions returns the active-session payload verbatim. The
// backend does not commit to a shape here, so the caller interprets it.
func (c *Client) ActiveSessions(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.getJSON(ctx, "/admin/interviews/active-sessions", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TotalFeedbacks returns the feedback count.
func (c *Client) TotalFeedbacks(ctx context.Context) (int64, error) {
	var out struct {
		TotalFeedbacks int64 `json:"total_feedbacks"`
	}
	if err := c.getJSON(ctx, "/admin/feedback/feedbacks/total", &out); err != nil {
		return 0, err
	}
	return out.TotalFeedbacks, nil
}

// InterviewFeedbacks returns individual interview ratings.
func (c *Client) InterviewFeedbacks(ctx context.Context) ([]models.Feedback, error) {
	var out struct {
		Feedbacks []models.Feedback `json:"feedbacks"`
	}
	if err := c.getJSON(ctx, "/admin/feedback/feedbacks/interview", &out); err != nil {
		return nil, err
	}
	return out.Feedbacks, nil
}

// ServiceTrends returns interview counts per service type.
func (c *Client) ServiceTrends(ctx context.Context) ([]models.ServiceUsage, error) {
	var out struct {
		Usages []models.ServiceUsage `json:"usages"`
	}
	if err := c.getJSON(ctx, "/admin/interviews/service-trends", &out); err != nil {
		return nil, err
	}
	return out.Usages, nil
}

// getJSON performs an authenticated GET and decodes the response.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	token := c.token()
	if token == "" {
		return &AuthError{Message: missingTokenMsg}
	}

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path, nil)
	if err != nil {
		return &NetworkError{Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer closeBody(resp)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return normalizeError(resp.StatusCode, body, fetchFallbackMsg)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &NetworkError{Err: fmt.Errorf("failed to parse response from %s: %w", path, err)}
	}
	return nil
}

func closeBody(resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		logger.Error("failed to close response body", "error", err)
	}
}
