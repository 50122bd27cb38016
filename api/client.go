// Package api is the HTTP boundary of the Ledgerline client. It dispatches
// requests against the backend REST API, attaches the stored access token,
// and transparently renews the session once on a 401 before giving up.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/ledgerline/ledgerline-go/internal/config"
	"github.com/ledgerline/ledgerline-go/internal/errors"
	"github.com/ledgerline/ledgerline-go/tokenstore"
)

const (
	contentTypeJSON = "application/json"
	refreshRoute    = "/auth/refresh"
)

// TokenPair is the credential pair minted by login, register and refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthExpiredFunc is invoked after an irrecoverable refresh failure, once the
// stored tokens have been cleared. Embedders use it to send the user back to
// a login screen or prompt.
type AuthExpiredFunc func()

// Client dispatches requests with uniform envelope decoding and single-retry
// session renewal. Resource services hang off it so one adapter serves every
// endpoint group.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	tokens      tokenstore.Store
	authExpired AuthExpiredFunc
	log         zerolog.Logger

	// Concurrent 401s share one in-flight refresh.
	refreshGroup singleflight.Group

	Auth      *AuthService
	Business  *BusinessService
	Customers *CustomersService
	Products  *ProductsService
	Invoices  *InvoicesService
	Dashboard *DashboardService
	Reports   *ReportsService
	Uploads   *UploadsService
	Analytics *AnalyticsService
}

// Option modifies the Client instance.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client (primarily for testing).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the structured logger used by the client.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithAuthExpiredFunc sets the callback fired when the session cannot be
// renewed and the caller has to log in again.
func WithAuthExpiredFunc(fn AuthExpiredFunc) Option {
	return func(c *Client) {
		c.authExpired = fn
	}
}

// New initializes a Client against the configured base URL with required
// dependencies. Optional configuration can be provided via options.
func New(cfg config.APIConfig, tokens tokenstore.Store, options ...Option) (*Client, error) {
	if cfg == nil {
		return nil, errors.Wrapf(errors.ErrInternal, "[api.New] config is required")
	}
	if tokens == nil {
		return nil, errors.Wrapf(errors.ErrInternal, "[api.New] token store is required")
	}

	client := &Client{
		baseURL:    strings.TrimRight(cfg.GetAPIBaseURL(), "/"),
		httpClient: &http.Client{Timeout: cfg.GetRequestTimeout()},
		tokens:     tokens,
		log:        zerolog.Nop(),
	}

	for _, opt := range options {
		opt(client)
	}

	client.Auth = &AuthService{client: client}
	client.Business = &BusinessService{client: client}
	client.Customers = &CustomersService{client: client}
	client.Products = &ProductsService{client: client}
	client.Invoices = &InvoicesService{client: client}
	client.Dashboard = &DashboardService{client: client}
	client.Reports = &ReportsService{client: client}
	client.Uploads = &UploadsService{client: client}
	client.Analytics = &AnalyticsService{client: client}

	return client, nil
}

// response is a resolved HTTP exchange: any status in [200,500) with the body
// read in full. 5xx and transport failures never produce one.
type response struct {
	status int
	body   []byte
}

// do performs one logical request. A 401 on a request that carried an access
// token triggers exactly one refresh-and-replay; the replay's result is
// returned as-is, so a second 401 resolves like any other status.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body []byte, contentType string) (*response, error) {
	token, hasToken := c.tokens.AccessToken()

	resp, err := c.send(ctx, method, c.url(path, query), body, contentType, token)
	if err != nil {
		return nil, err
	}
	if resp.status != http.StatusUnauthorized || !hasToken {
		return resp, nil
	}

	c.log.Debug().Str("method", method).Str("path", path).Msg("access token rejected, attempting refresh")

	newToken, err := c.refresh(ctx)
	if err != nil {
		if clearErr := c.tokens.Clear(); clearErr != nil {
			c.log.Warn().Err(clearErr).Msg("failed to clear tokens after refresh failure")
		}
		if c.authExpired != nil {
			c.authExpired()
		}
		return nil, errors.Wrapf(errors.ErrSessionExpired, "[api.do] token refresh failed (%v)", err)
	}

	return c.send(ctx, method, c.url(path, query), body, contentType, newToken)
}

// refresh exchanges the stored refresh token for a new pair. Concurrent
// callers are collapsed into a single upstream call; everyone gets the same
// new access token or the same failure.
func (c *Client) refresh(ctx context.Context) (string, error) {
	v, err, _ := c.refreshGroup.Do("refresh", func() (interface{}, error) {
		refreshToken, ok := c.tokens.RefreshToken()
		if !ok {
			return nil, errors.ErrNoRefreshToken
		}

		body, err := json.Marshal(map[string]string{"refreshToken": refreshToken})
		if err != nil {
			return nil, errors.Wrapf(err, "[api.refresh] marshal")
		}

		// Straight to the refresh endpoint, bypassing the 401 handling.
		resp, err := c.send(ctx, http.MethodPost, c.url(refreshRoute, nil), body, contentTypeJSON, "")
		if err != nil {
			return nil, errors.Wrapf(err, "[api.refresh] request")
		}

		var payload struct {
			Tokens TokenPair `json:"tokens"`
		}
		if err := decodeInto(resp.status, resp.body, &payload); err != nil {
			return nil, errors.Wrapf(err, "[api.refresh] decode")
		}
		if payload.Tokens.AccessToken == "" || payload.Tokens.RefreshToken == "" {
			return nil, errors.Wrapf(errors.ErrInvalidToken, "[api.refresh] incomplete token pair")
		}

		if err := c.tokens.SetPair(payload.Tokens.AccessToken, payload.Tokens.RefreshToken); err != nil {
			return nil, errors.Wrapf(err, "[api.refresh] persist tokens")
		}

		c.log.Debug().Msg("access token refreshed")
		return payload.Tokens.AccessToken, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// send performs a single HTTP exchange. Statuses in [200,500) resolve so the
// envelope can be inspected; 5xx raises a transport-level failure and network
// errors propagate untouched.
func (c *Client) send(ctx context.Context, method, rawURL string, body []byte, contentType, bearerToken string) (*response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, errors.Wrapf(err, "[api.send] build request")
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", contentTypeJSON)
	req.Header.Set("X-Request-ID", uuid.New().String())
	if bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+bearerToken)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "[api.send] read body")
	}

	c.log.Debug().
		Str("method", method).
		Str("url", rawURL).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request complete")

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, errors.Wrapf(errors.ErrServerFailure, "[api.send] status %d", resp.StatusCode)
	}

	return &response{status: resp.StatusCode, body: data}, nil
}

func (c *Client) url(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// getJSON issues a GET and decodes the envelope's data object into T.
func getJSON[T any](ctx context.Context, c *Client, path string, query url.Values) (T, error) {
	return roundTripJSON[T](ctx, c, http.MethodGet, path, query, nil)
}

// sendJSON issues a request with a JSON body and decodes the data object into T.
func sendJSON[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var out T
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return out, errors.Wrapf(err, "[api.sendJSON] marshal")
		}
	}
	return roundTripJSON[T](ctx, c, method, path, nil, payload)
}

func roundTripJSON[T any](ctx context.Context, c *Client, method, path string, query url.Values, payload []byte) (T, error) {
	var out T
	contentType := ""
	if payload != nil {
		contentType = contentTypeJSON
	}
	resp, err := c.do(ctx, method, path, query, payload, contentType)
	if err != nil {
		return out, err
	}
	if err := decodeInto(resp.status, resp.body, &out); err != nil {
		return out, err
	}
	return out, nil
}
