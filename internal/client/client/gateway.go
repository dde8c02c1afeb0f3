package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lustless/lustless-client/internal/client/models"
	"github.com/lustless/lustless-client/internal/logging"
	"github.com/lustless/lustless-client/internal/netx"
)

const (
	HeaderLanguage  = "x-custom-lang"
	HeaderRequestID = "X-Request-Id"

	DefaultRefreshPath = "/api/v1/auth/refresh"
	DefaultRefreshSkew = 60 * time.Second
)

// TokenStore is the credential storage the Gateway reads and rotates.
type TokenStore interface {
	Get(ctx context.Context) *models.Tokens
	Set(ctx context.Context, t *models.Tokens)
}

type GatewayConfig struct {
	BaseURL     string
	Language    string
	RefreshPath string
	RefreshSkew time.Duration
}

// Gateway sends requests as the current session.
//
// Before each request it checks the stored access token and, when the token
// expires within RefreshSkew, performs exactly one blocking refresh. A failed
// refresh clears the token store and the request still goes out with the old
// bearer; the resulting 401 is the caller's signal to log out. The underlying
// request is never retried.
//
// Two concurrent requests near expiry may both refresh with the same refresh
// token. Only one can succeed server-side; the store keeps whichever result is
// written last and a later 401 settles the session. This race is accepted.
type Gateway struct {
	hc          *http.Client
	baseURL     string
	lang        string
	refreshPath string
	skew        time.Duration
	tokens      TokenStore
	now         func() time.Time
	log         logging.Logger
}

func NewGateway(hc *http.Client, cfg GatewayConfig, tokens TokenStore, now func() time.Time, log logging.Logger) *Gateway {
	if hc == nil {
		hc = http.DefaultClient
	}
	if now == nil {
		now = time.Now
	}
	if cfg.RefreshPath == "" {
		cfg.RefreshPath = DefaultRefreshPath
	}
	if cfg.RefreshSkew <= 0 {
		cfg.RefreshSkew = DefaultRefreshSkew
	}
	if cfg.Language == "" {
		cfg.Language = "en"
	}
	return &Gateway{
		hc:          hc,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		lang:        cfg.Language,
		refreshPath: cfg.RefreshPath,
		skew:        cfg.RefreshSkew,
		tokens:      tokens,
		now:         now,
		log:         log.With("component", "gateway"),
	}
}

// URL resolves an API path against the base URL.
func (g *Gateway) URL(path string) string {
	return g.baseURL + path
}

// NewRequest builds a request for an API path.
func (g *Gateway) NewRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	return http.NewRequestWithContext(ctx, method, g.URL(path), body)
}

// Do sends req with the session's default headers. Headers already set on
// req take precedence. A transport failure is returned wrapping
// ErrUnavailable.
func (g *Gateway) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	req = req.Clone(ctx)

	reqID := req.Header.Get(HeaderRequestID)
	if reqID == "" {
		reqID = uuid.NewString()
	}

	headers := http.Header{}
	headers.Set(HeaderLanguage, g.lang)
	headers.Set(HeaderRequestID, reqID)
	if !netx.IsMultipart(req.Header.Get("Content-Type")) {
		headers.Set("Content-Type", "application/json")
	}

	log := g.log.With("request_id", reqID, "method", req.Method, "path", req.URL.Path)

	if t := g.tokens.Get(ctx); t != nil {
		headers.Set("Authorization", "Bearer "+t.AccessToken)

		if t.ExpiresWithin(g.now(), g.skew) {
			log.Info(ctx, "access token expiring, refreshing", "expires_at", t.ExpiresAt())

			fresh, err := g.refresh(ctx, t.RefreshToken, reqID)
			if err != nil {
				log.Warn(ctx, "token refresh failed, clearing session", "error", err)
				g.tokens.Set(ctx, nil)
			} else {
				log.Info(ctx, "token refreshed", "token", logging.RedactToken(fresh.AccessToken))
				g.tokens.Set(ctx, fresh)
				headers.Set("Authorization", "Bearer "+fresh.AccessToken)
			}
		}
	}

	for k, v := range req.Header {
		headers[k] = v
	}
	req.Header = headers

	resp, err := g.hc.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	log.Debug(ctx, "request done", "status", resp.StatusCode)
	return resp, nil
}

// refresh exchanges refreshToken for a new credential triple.
func (g *Gateway) refresh(ctx context.Context, refreshToken, reqID string) (*models.Tokens, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.URL(g.refreshPath), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+refreshToken)
	req.Header.Set(HeaderRequestID, reqID)

	resp, err := g.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if !netx.IsSuccess(resp.StatusCode) {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("refresh returned status %d", resp.StatusCode)
	}

	var t models.Tokens
	if err := json.NewDecoder(resp.Body).Decode(&t); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if !t.Complete() {
		return nil, fmt.Errorf("%w: refresh response missing fields", ErrMalformedResponse)
	}
	return &t, nil
}
