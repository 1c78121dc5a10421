// Package upstream implements the typed HTTP client for the remote 가치가게
// REST API. It owns bearer-token attachment, the single refresh-and-retry on
// 401 responses, and the normalization of transport failures into domain
// errors.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gachigage/config"
	domainerrors "gachigage/internal/domain/errors"
	"gachigage/internal/domain/repository"
	"gachigage/internal/domain/service"
	"gachigage/internal/errors"

	"go.uber.org/fx"
)

const (
	defaultTimeout        = 10 * time.Second
	defaultReceiptTimeout = 50 * time.Second

	// errorBodyLimit caps how much of an error response body is read.
	errorBodyLimit = 64 << 10
)

// Params defines the required parameters
type Params struct {
	fx.In

	Config      *config.Config
	SessionRepo repository.SessionRepository
	Logger      *slog.Logger
}

// client talks to the remote backend on behalf of the logged-in user.
type client struct {
	baseURL     string
	httpClient  *http.Client
	receiptHTTP *http.Client
	sessions    repository.SessionRepository
	logger      *slog.Logger
}

// NewClient is the constructor for the backend gateway.
func NewClient(params Params) (service.BackendGateway, error) {
	baseURL := params.Config.Upstream.BaseURL
	if baseURL == "" {
		return nil, errors.New("upstream base url must be provided")
	}

	timeout := params.Config.Upstream.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	receiptTimeout := params.Config.Upstream.ReceiptTimeout
	if receiptTimeout <= 0 {
		receiptTimeout = defaultReceiptTimeout
	}

	return &client{
		baseURL:     baseURL,
		httpClient:  &http.Client{Timeout: timeout},
		receiptHTTP: &http.Client{Timeout: receiptTimeout},
		sessions:    params.SessionRepo,
		logger:      params.Logger,
	}, nil
}

// callOptions tune a single request.
type callOptions struct {
	// authenticated attaches the access token and enables the 401
	// refresh-and-retry.
	authenticated bool

	// httpClient overrides the default client; the receipt verification call
	// uses the long-timeout one.
	httpClient *http.Client

	// query is appended to the request URL.
	query url.Values
}

// doJSON performs one JSON request against the backend. in may be nil for
// body-less requests; out may be nil when the response body is ignored.
func (c *client) doJSON(ctx context.Context, method, path string, in, out any, opts callOptions) error {
	httpClient := opts.httpClient
	if httpClient == nil {
		httpClient = c.httpClient
	}

	var accessToken string
	if opts.authenticated {
		session, err := c.sessions.Find(ctx)
		if err != nil {
			if errors.Is(err, repository.ErrSessionNotFound) {
				return domainerrors.ErrAuthRequired
			}

			return err
		}
		accessToken = session.AccessToken
	}

	resp, body, err := c.send(ctx, httpClient, method, path, in, accessToken, opts.query)
	if err != nil {
		return err
	}

	// A 401 on an authenticated call triggers exactly one refresh-and-retry.
	// A second 401 means the refreshed token was rejected too.
	if opts.authenticated && resp.StatusCode == http.StatusUnauthorized {
		accessToken, err = c.refresh(ctx)
		if err != nil {
			return err
		}

		resp, body, err = c.send(ctx, httpClient, method, path, in, accessToken, opts.query)
		if err != nil {
			return err
		}
		if resp.StatusCode == http.StatusUnauthorized {
			if clearErr := c.sessions.Clear(ctx); clearErr != nil {
				return clearErr
			}

			return domainerrors.ErrSessionExpired
		}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return c.responseError(resp.StatusCode, body)
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return errors.Wrap(err, "failed to decode upstream response")
		}
	}

	return nil
}

// send builds and executes one HTTP request, returning the response and its
// fully read body.
func (c *client) send(ctx context.Context, httpClient *http.Client, method, path string, in any, accessToken string, query url.Values) (*http.Response, []byte, error) {
	target, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to build upstream url")
	}
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reqBody io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to encode upstream request")
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to build upstream request")
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, nil, c.transportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Success bodies are read in full; only error bodies are capped, they are
	// just a {message} to quote back.
	reader := io.Reader(resp.Body)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		reader = io.LimitReader(resp.Body, errorBodyLimit)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to read upstream response")
	}

	return resp, body, nil
}

// refresh exchanges the stored refresh token for a new access token. Only the
// access token rotates; the refresh token stays as issued at login. A failed
// refresh ends the session: the local copy is cleared and the caller gets
// ErrSessionExpired, forcing a fresh login.
func (c *client) refresh(ctx context.Context) (string, error) {
	session, err := c.sessions.Find(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return "", domainerrors.ErrAuthRequired
		}

		return "", err
	}

	resp, body, err := c.send(ctx, c.httpClient, http.MethodGet, "/user/refresh", nil, session.RefreshToken, nil)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.WarnContext(ctx, "token refresh rejected, clearing session",
			slog.Int("status", resp.StatusCode))
		if clearErr := c.sessions.Clear(ctx); clearErr != nil {
			return "", clearErr
		}

		return "", domainerrors.ErrSessionExpired
	}

	var refreshResp refreshResponse
	if err := json.Unmarshal(body, &refreshResp); err != nil {
		return "", errors.Wrap(err, "failed to decode refresh response")
	}
	if refreshResp.AccessToken == "" {
		return "", domainerrors.ErrSessionExpired
	}

	session.AccessToken = refreshResp.AccessToken
	if err := c.sessions.Save(ctx, session); err != nil {
		return "", err
	}

	return refreshResp.AccessToken, nil
}

// transportError maps request execution failures to domain errors.
func (c *client) transportError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return domainerrors.ErrUpstreamTimeout.WithDetails(urlErr.Error())
	}

	return domainerrors.ErrUpstreamUnavailable.WithDetails(err.Error())
}

// responseError maps a non-2xx upstream response to a domain error. The
// upstream message is preserved: the backend signals the region-change
// cooldown only through its message text.
func (c *client) responseError(status int, body []byte) error {
	message := extractMessage(body)

	if strings.Contains(message, domainerrors.RegionChangeCooldownMessage) {
		return domainerrors.ErrRegionChangeCooldown
	}
	if message == "" {
		message = http.StatusText(status)
	}

	return domainerrors.NewUpstreamError(status, message)
}

// extractMessage pulls the human-readable message out of an error body. The
// backend wraps it either as {"message": ...} or {"error": {"message": ...}};
// anything else falls back to the raw text.
func extractMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var envelope struct {
		Message string `json:"message"`
		Error   struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error.Message != "" {
			return envelope.Error.Message
		}
	}

	return strings.TrimSpace(string(body))
}
