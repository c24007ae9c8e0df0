package apiclient

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
	"time"

	"github.com/dmitrijs2005/exercisetracker/internal/client/models"
	"github.com/dmitrijs2005/exercisetracker/internal/common"
	"github.com/google/uuid"
)

const maxResponseBytes = 4 << 20

type Client struct {
	baseURL *url.URL
	http    *http.Client
}

// New validates baseURL and returns a client whose requests time out after
// timeout (no limit when zero).
func New(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", baseURL)
	}
	return &Client{baseURL: u, http: &http.Client{Timeout: timeout}}, nil
}

func (c *Client) CreateUser(ctx context.Context, username string) (*models.User, error) {
	var out models.User
	err := c.do(ctx, http.MethodPost, "/api/users", nil, url.Values{"username": {username}}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var out []models.User
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddExercise appends an entry. An empty date lets the server use "now".
func (c *Client) AddExercise(ctx context.Context, userID, description string, duration float64, date string) (*models.AddedExercise, error) {
	form := url.Values{
		"description": {description},
		"duration":    {strconv.FormatFloat(duration, 'f', -1, 64)},
	}
	if date != "" {
		form.Set("date", date)
	}

	var out models.AddedExercise
	if err := c.do(ctx, http.MethodPost, "/api/users/"+url.PathEscape(userID)+"/exercises", nil, form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetLog(ctx context.Context, userID string, f models.LogFilter) (*models.ExerciseLog, error) {
	q := url.Values{}
	if f.From != "" {
		q.Set("from", f.From)
	}
	if f.To != "" {
		q.Set("to", f.To)
	}
	if f.Limit != nil {
		q.Set("limit", strconv.Itoa(*f.Limit))
	}

	var out models.ExerciseLog
	if err := c.do(ctx, http.MethodGet, "/api/users/"+url.PathEscape(userID)+"/logs", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Ping calls /health and returns nil when the server and its database are up.
func (c *Client) Ping(ctx context.Context) error {
	var out struct {
		Status string `json:"status"`
	}
	return c.do(ctx, http.MethodGet, "/health", nil, nil, &out)
}

func (c *Client) do(ctx context.Context, method, path string, query, form url.Values, out any) error {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if form != nil {
		body = bytes.NewBufferString(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return err
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return err
	}

	// Errors arrive as {"error": "..."}; a 200 can carry the not-found envelope.
	var envelope struct {
		Error *string `json:"error"`
	}
	if len(data) > 0 && data[0] == '{' {
		_ = json.Unmarshal(data, &envelope)
	}

	if envelope.Error != nil {
		if resp.StatusCode == http.StatusOK && *envelope.Error == common.NotFoundMessage {
			return ErrNotFound
		}
		return &APIError{Status: resp.StatusCode, Message: *envelope.Error}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
