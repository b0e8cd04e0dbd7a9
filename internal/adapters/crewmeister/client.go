package crewmeister

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/bnema/crewtime-cli/internal/domain"
	"github.com/bnema/crewtime-cli/internal/ports"
)

const (
	authPath        = "/api/v3/auth/user/"
	stampsPath      = "/api/v3/timetracking/stamps"
	absencesPath    = "/api/v3/absencemanager/absences"
	absenceTypePath = "/api/v3/absencemanager/absence-type-settings/%d"
)

// tokenRefreshMargin is how close to its exp claim a token may get before
// the next request triggers a re-login.
const tokenRefreshMargin = 300 * time.Second

const maxResponseBytes = 1 << 20

// Config wires a Client. BaseURL, Username and Password are required; a
// pre-resolved Identity skips the claim/stamp-based discovery.
type Config struct {
	BaseURL  string
	Username string
	Password string
	Language string
	Identity *domain.Identity

	HTTPClient     *http.Client
	Logger         *slog.Logger
	Clock          ports.Clock
	RequestTimeout time.Duration
}

// Client is the session-scoped Crewmeister API client. It owns the JWT
// lifecycle and the identity cache; token state and the
// ensure-login/request/retry sequence are serialized by an internal mutex
// so concurrent 401s cannot each re-login independently.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	username       string
	password       string
	language       string
	logger         *slog.Logger
	clock          ports.Clock
	requestTimeout time.Duration

	mu        sync.Mutex
	token     string
	claims    map[string]any
	expiresAt time.Time
	identity  *domain.Identity

	typesMu      sync.Mutex
	absenceTypes map[int64]map[string]any
}

var _ ports.TimeClock = (*Client)(nil)

func New(cfg Config) (*Client, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	if cfg.Username == "" {
		return nil, errors.New("username is required")
	}
	if cfg.Password == "" {
		return nil, errors.New("password is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	clock := cfg.Clock
	if clock == nil {
		clock = ports.SystemClock{}
	}
	requestTimeout := cfg.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}

	var identity *domain.Identity
	if cfg.Identity != nil && cfg.Identity.Complete() {
		copied := *cfg.Identity
		identity = &copied
	}

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		username:       cfg.Username,
		password:       cfg.Password,
		language:       cfg.Language,
		logger:         logger,
		clock:          clock,
		requestTimeout: requestTimeout,
		identity:       identity,
		absenceTypes:   map[int64]map[string]any{},
	}, nil
}

// Login authenticates against the auth endpoint and replaces the stored
// token, decoded claims and expiry.
func (c *Client) Login(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loginLocked(ctx)
}

func (c *Client) loginLocked(ctx context.Context) error {
	body, err := json.Marshal(map[string]string{
		"username": c.username,
		"password": c.password,
	})
	if err != nil {
		return fmt.Errorf("encode login payload: %w", err)
	}

	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()
	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.baseURL+authPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrConnection, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		detail := extractErrorMessage(readBody(resp), resp.StatusCode)
		c.logger.Debug("crewmeister login rejected", "status", resp.StatusCode, "detail", detail)
		return fmt.Errorf("%w: %s", domain.ErrAuth, detail)
	}

	var payload struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&payload); err != nil {
		return fmt.Errorf("%w: decode login response: %v", domain.ErrAuth, err)
	}
	if payload.Token == "" {
		return fmt.Errorf("%w: token missing in login response", domain.ErrAuth)
	}

	claims := decodeJWTPayload(payload.Token)
	c.token = payload.Token
	c.claims = claims
	c.expiresAt = claimExpiration(claims)
	return nil
}

// ensureLoggedInLocked re-logs-in when no token is held, the token carries
// no exp claim, or expiry is inside the refresh margin.
func (c *Client) ensureLoggedInLocked(ctx context.Context) error {
	if c.token == "" || c.expiresAt.IsZero() {
		return c.loginLocked(ctx)
	}
	if c.expiresAt.Sub(c.clock.Now()) < tokenRefreshMargin {
		return c.loginLocked(ctx)
	}
	return nil
}

func (c *Client) currentToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ensureLoggedInLocked(ctx); err != nil {
		return "", err
	}
	return c.token, nil
}

// refreshRejectedToken re-logs-in after a 401, unless another caller
// already replaced the rejected token.
func (c *Client) refreshRejectedToken(ctx context.Context, rejected string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != rejected {
		return c.token, nil
	}
	if err := c.loginLocked(ctx); err != nil {
		return "", err
	}
	return c.token, nil
}

// apiRequest performs an authorized request. A single 401 triggers exactly
// one re-login-and-retry; a second 401 propagates to the caller.
func (c *Client) apiRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Response, error) {
	token, err := c.currentToken(ctx)
	if err != nil {
		return nil, err
	}

	const maxUnauthorizedRetries = 1
	for attempt := 0; ; attempt++ {
		resp, err := c.doRequest(ctx, method, path, query, body, token)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusUnauthorized || attempt >= maxUnauthorizedRetries {
			return resp, nil
		}

		_ = resp.Body.Close()
		c.logger.Debug("token rejected, re-authenticating", "method", method, "path", path)
		token, err = c.refreshRejectedToken(ctx, token)
		if err != nil {
			return nil, err
		}
	}
}

func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body any, token string) (*http.Response, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request payload: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()
	req, err := http.NewRequestWithContext(reqCtx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", path, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if c.language != "" {
		req.Header.Set("Accept-Language", c.language)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConnection, err)
	}
	return resp, nil
}

// requestJSON performs an authorized request and decodes the body, turning
// any non-2xx status into an APIError with the extracted detail message.
func (c *Client) requestJSON(ctx context.Context, method, path string, query url.Values, body any) (any, error) {
	resp, err := c.apiRequest(ctx, method, path, query, body)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		detail := extractErrorMessage(readBody(resp), resp.StatusCode)
		c.logger.Debug("crewmeister request failed",
			"method", method, "path", path, "status", resp.StatusCode, "detail", detail)
		return nil, &domain.APIError{StatusCode: resp.StatusCode, Message: detail}
	}

	var decoded any
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", path, err)
	}
	return decoded, nil
}

func (c *Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.requestTimeout)
}

// readBody reads an error response as JSON when possible, raw text
// otherwise.
func readBody(resp *http.Response) any {
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil || len(data) == 0 {
		return nil
	}
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return string(data)
	}
	return decoded
}

func normalizeBaseURL(baseURL string) (string, error) {
	if baseURL == "" {
		return "", errors.New("base url is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("base url host is required")
	}
	parsed.Path = strings.TrimRight(parsed.Path, "/")
	parsed.RawQuery = ""
	parsed.Fragment = ""
	return parsed.String(), nil
}
