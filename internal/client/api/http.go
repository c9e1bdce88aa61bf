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

	"github.com/dmitrijs2005/gksession/internal/client/models"
	"github.com/dmitrijs2005/gksession/internal/logging"
	"github.com/google/uuid"
)

const (
	loginPath         = "/auth/login"
	validateTokenPath = "/auth/validateToken"

	RequestIDHeader = "X-Request-Id"

	// error bodies beyond this are not worth reading
	maxErrorBody = 64 << 10
)

var _ Client = (*HTTPClient)(nil)

type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	logger  logging.Logger

	mu    sync.RWMutex
	token string
}

// NewHTTPClient builds a client for the server at baseURL
// (e.g. "http://127.0.0.1:8080"). timeout bounds each request; zero means none.
func NewHTTPClient(baseURL string, timeout time.Duration, logger logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse server url: unsupported scheme %q", u.Scheme)
	}
	if logger == nil {
		logger = logging.Nop{}
	}

	return &HTTPClient{
		baseURL: u,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}, nil
}

func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *HTTPClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login posts the credentials and decodes the returned user record.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (models.User, error) {
	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return models.User{}, fmt.Errorf("encode login request: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, loginPath, body)
	if err != nil {
		return models.User{}, err
	}
	defer resp.Body.Close()

	var user models.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return models.User{}, fmt.Errorf("%w: %s", ErrBadResponse, err)
	}
	if err := user.Validate(); err != nil {
		return models.User{}, fmt.Errorf("%w: %s", ErrBadResponse, err)
	}
	return user, nil
}

// ValidateToken asks the server whether the current token is still accepted.
func (c *HTTPClient) ValidateToken(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, validateTokenPath, nil)
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

// do sends the request and turns transport failures and non-2xx answers
// into errors. On success the caller owns resp.Body.
func (c *HTTPClient) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.JoinPath(path).String(), reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// a cancelled caller is not an outage
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.logger.Warn(ctx, "request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		serr := statusError(resp)
		c.logger.Warn(ctx, "request rejected", "method", method, "path", path, "request_id", requestID, "status", resp.StatusCode)
		return nil, serr
	}
	return resp, nil
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func statusError(resp *http.Response) *StatusError {
	msg := http.StatusText(resp.StatusCode)

	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var eb errorBody
	if json.Unmarshal(data, &eb) == nil {
		switch {
		case eb.Message != "":
			msg = eb.Message
		case eb.Error != "":
			msg = eb.Error
		}
	}
	if msg == "" {
		msg = fmt.Sprintf("request failed with status %d", resp.StatusCode)
	}
	return &StatusError{Code: resp.StatusCode, Message: msg}
}
