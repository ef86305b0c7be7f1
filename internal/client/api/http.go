package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskapp/internal/client/models"
)

// HTTPClient talks to the task service over its REST API.
//
// The access token is written exactly once, on successful Login, and read by
// every subsequent authorized request, so it lives behind a RWMutex rather
// than ambient global state.
type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu          sync.RWMutex
	accessToken string
}

// NewHTTPClient constructs a client for the service at baseURL.
// A non-positive timeout disables the request timeout.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

func (c *HTTPClient) setToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = token
}

// do builds and executes a request, decorating it with a request id and the
// bearer token when one is installed. Network-level failures are mapped to
// ErrUnavailable; the response is returned for status handling by the caller.
func (c *HTTPClient) do(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("X-Request-Id", uuid.NewString())
	if t := c.token(); t != "" {
		req.Header.Set("Authorization", "Bearer "+t)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp, nil
}

// mapStatus converts a non-2xx status into a transport error.
func mapStatus(code int) error {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("%w: status %d", ErrServer, code)
	}
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

type msgResponse struct {
	Msg string `json:"msg"`
}

// Login posts form-encoded credentials. 401 means the credentials were
// rejected; any other non-2xx is a generic server failure.
func (c *HTTPClient) Login(ctx context.Context, username string, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	resp, err := c.do(ctx, http.MethodPost, "/auth/login/", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	if err != nil {
		return "", err
	}
	defer drain(resp)

	if resp.StatusCode == http.StatusUnauthorized {
		return "", ErrInvalidCredentials
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", mapStatus(resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("decode login response: %w", err)
	}
	if tr.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", ErrServer)
	}

	c.setToken(tr.AccessToken)
	return tr.AccessToken, nil
}

// Register posts the registration payload. 409 means the username is taken.
func (c *HTTPClient) Register(ctx context.Context, username string, email string, password string) error {
	payload, err := json.Marshal(map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
	if err != nil {
		return err
	}

	resp, err := c.do(ctx, http.MethodPost, "/auth/registration/", bytes.NewReader(payload), "application/json")
	if err != nil {
		return err
	}
	defer drain(resp)

	if resp.StatusCode == http.StatusConflict {
		return ErrUserAlreadyExists
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return mapStatus(resp.StatusCode)
	}
	return nil
}

func (c *HTTPClient) ListTasks(ctx context.Context) ([]models.Task, error) {
	resp, err := c.do(ctx, http.MethodGet, "/tasks/get/", nil, "")
	if err != nil {
		return nil, err
	}
	defer drain(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, mapStatus(resp.StatusCode)
	}

	var tasks []models.Task
	if err := json.NewDecoder(resp.Body).Decode(&tasks); err != nil {
		return nil, fmt.Errorf("decode task list: %w", err)
	}
	return tasks, nil
}

func (c *HTTPClient) CreateTask(ctx context.Context, title string, description string) error {
	payload, err := json.Marshal(map[string]string{
		"title":       title,
		"description": description,
	})
	if err != nil {
		return err
	}

	resp, err := c.do(ctx, http.MethodPost, "/tasks/create/", bytes.NewReader(payload), "application/json")
	if err != nil {
		return err
	}
	defer drain(resp)

	if resp.StatusCode == http.StatusUnprocessableEntity {
		return fmt.Errorf("%w: task rejected by server", ErrValidation)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return mapStatus(resp.StatusCode)
	}
	return nil
}

func (c *HTTPClient) ToggleTask(ctx context.Context, taskID int64) (string, error) {
	return c.mutateTask(ctx, http.MethodPut, fmt.Sprintf("/tasks/update/%d", taskID))
}

func (c *HTTPClient) DeleteTask(ctx context.Context, taskID int64) (string, error) {
	return c.mutateTask(ctx, http.MethodDelete, fmt.Sprintf("/tasks/delete/%d", taskID))
}

// mutateTask performs a bodyless mutation and returns the server's
// confirmation message.
func (c *HTTPClient) mutateTask(ctx context.Context, method, path string) (string, error) {
	resp, err := c.do(ctx, method, path, nil, "")
	if err != nil {
		return "", err
	}
	defer drain(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", mapStatus(resp.StatusCode)
	}

	var mr msgResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return mr.Msg, nil
}
