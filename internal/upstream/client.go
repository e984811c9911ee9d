// Package upstream talks to the bakery REST API. Its sub-clients satisfy the
// same store interfaces as the MySQL repositories so either can back the
// services.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	apperrors "bakerydash/internal/errors"
)

const maxErrorBody = 512

type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *Session
	logger     *zap.Logger
}

// New returns a client for baseURL. A nil httpClient gets a default client
// with the given timeout.
func New(baseURL string, httpClient *http.Client, timeout time.Duration, session *Session, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	if session == nil {
		session = NewSession("")
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		session:    session,
		logger:     logger,
	}
}

func (c *Client) Session() *Session {
	return c.session
}

func (c *Client) Orders() *OrderClient {
	return &OrderClient{client: c}
}

func (c *Client) Products() *ProductClient {
	return &ProductClient{client: c}
}

func (c *Client) Announcements() *AnnouncementClient {
	return &AnnouncementClient{client: c}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Login exchanges credentials for a token and stores it in the session.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, loginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, apperrors.NewUnauthorizedError("login response carried no token")
	}

	c.session.set(resp.Token, &resp.User)
	c.logger.Info("logged in to upstream", zap.String("email", resp.User.Email), zap.String("role", string(resp.User.Role)))
	return &resp.User, nil
}

// do sends a JSON request and decodes a JSON response into out when out is
// not nil. Non-2xx answers are mapped to typed errors.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("building %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("upstream call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(method, path, resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return nil
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *Client) statusError(method, path string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	message := strings.TrimSpace(string(raw))

	var parsed errorBody
	if json.Unmarshal(raw, &parsed) == nil {
		if parsed.Message != "" {
			message = parsed.Message
		} else if parsed.Error != "" {
			message = parsed.Error
		}
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	if resp.StatusCode < 500 {
		c.logger.Warn("upstream rejected request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", message),
		)
	}

	switch resp.StatusCode {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return apperrors.NewValidationError(message)
	case http.StatusUnauthorized:
		c.session.Clear()
		return apperrors.NewUnauthorizedError(message)
	case http.StatusForbidden:
		return apperrors.NewForbiddenError(message)
	case http.StatusNotFound:
		return apperrors.NewNotFoundError(message)
	case http.StatusConflict:
		return apperrors.NewConflictError(message)
	}
	return apperrors.NewUpstreamError(resp.StatusCode, message)
}
