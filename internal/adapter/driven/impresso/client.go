// Package impresso implements the ArchiveClient port against the Impresso
// news-archive HTTP API.
package impresso

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gregjones/httpcache"

	"github.com/ericfisherdev/agencysampler/internal/domain/model"
	"github.com/ericfisherdev/agencysampler/internal/domain/port/driven"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultPageLimit = 20

	loginPath  = "/authentication"
	searchPath = "/search"
)

// Compile-time interface satisfaction check.
var _ driven.ArchiveClient = (*Client)(nil)

// Client implements the driven.ArchiveClient port against the archive's HTTP
// API.
type Client struct {
	http       *http.Client
	baseURL    string
	primary    model.Credentials
	secondary  model.Credentials
	tokens     *TokenSource
	maxRetries int
}

// NewClient creates a new archive API client with the following transport
// stack:
//  1. httpcache (ETag-based conditional request caching for repeated searches)
//  2. net/http with a request timeout
//
// maxRetries bounds the retry attempts per search page on transient failures.
func NewClient(baseURL string, primary, secondary model.Credentials, maxRetries int) *Client {
	cacheTransport := httpcache.NewMemoryCacheTransport()

	return &Client{
		http: &http.Client{
			Transport: cacheTransport,
			Timeout:   defaultTimeout,
		},
		baseURL:    strings.TrimRight(baseURL, "/"),
		primary:    primary,
		secondary:  secondary,
		tokens:     NewTokenSource(),
		maxRetries: maxRetries,
	}
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base
// URL. This constructor is intended for testing, allowing injection of an
// httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string, primary, secondary model.Credentials, maxRetries int) *Client {
	return &Client{
		http:       httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		primary:    primary,
		secondary:  secondary,
		tokens:     NewTokenSource(),
		maxRetries: maxRetries,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Strategy string `json:"strategy"`
}

type loginResponse struct {
	AccessToken string `json:"accessToken"`
}

type searchResponse struct {
	Data   []model.Article `json:"data"`
	Total  int             `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

// Authenticate exchanges the configured credentials for bearer tokens and
// installs them as the client's active tokens. The primary login is mandatory;
// the secondary login is performed only when secondary credentials exist, and
// its failure is also fatal since the caller explicitly configured it.
func (c *Client) Authenticate(ctx context.Context) (model.TokenPair, error) {
	if c.primary.Email == "" || c.primary.Password == "" {
		return model.TokenPair{}, fmt.Errorf("primary credentials are empty: %w", driven.ErrAuthenticationFailed)
	}

	primaryToken, err := c.login(ctx, c.primary)
	if err != nil {
		return model.TokenPair{}, err
	}

	pair := model.TokenPair{Primary: primaryToken}

	if !c.secondary.IsZero() {
		secondaryToken, err := c.login(ctx, c.secondary)
		if err != nil {
			return model.TokenPair{}, err
		}
		pair.Secondary = secondaryToken
	}

	c.tokens.Replace(pair)
	return pair, nil
}

// login performs a single token exchange for one credential pair.
func (c *Client) login(ctx context.Context, creds model.Credentials) (string, error) {
	body, err := json.Marshal(loginRequest{
		Email:    creds.Email,
		Password: creds.Password,
		Strategy: "local",
	})
	if err != nil {
		return "", fmt.Errorf("encoding login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+loginPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("login request for %s: %w: %w", creds.Email, driven.ErrAuthenticationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("login for %s: unexpected status %d: %w", creds.Email, resp.StatusCode, driven.ErrAuthenticationFailed)
	}

	var lr loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return "", fmt.Errorf("decoding login response for %s: %w: %w", creds.Email, driven.ErrAuthenticationFailed, err)
	}
	if lr.AccessToken == "" {
		return "", fmt.Errorf("login for %s: response contained no access token: %w", creds.Email, driven.ErrAuthenticationFailed)
	}

	return lr.AccessToken, nil
}

// SearchArticles retrieves every article matching the term, paginating with
// offset/limit until the result set is exhausted or opts.MaxHits is reached.
// Payloads are passed through exactly as the API returned them.
func (c *Client) SearchArticles(ctx context.Context, term string, opts driven.SearchOptions) ([]model.Article, error) {
	limit := opts.PageLimit
	if limit <= 0 {
		limit = defaultPageLimit
	}

	var all []model.Article
	offset := 0

	for {
		page, err := c.searchPage(ctx, term, offset, limit, opts)
		if err != nil {
			return nil, fmt.Errorf("searching %q (offset %d): %w", term, offset, err)
		}

		all = append(all, page.Data...)

		if opts.MaxHits > 0 && len(all) >= opts.MaxHits {
			all = all[:opts.MaxHits]
			break
		}

		offset += limit
		if len(page.Data) == 0 || offset >= page.Total {
			break
		}
	}

	if all == nil {
		all = []model.Article{}
	}

	return all, nil
}

// searchPage fetches one page, retrying transient failures with exponential
// backoff and handling token expiry with a single refresh-and-replay.
func (c *Client) searchPage(ctx context.Context, term string, offset, limit int, opts driven.SearchOptions) (*searchResponse, error) {
	var refreshed bool

	op := func() (*searchResponse, error) {
		page, status, err := c.doSearch(ctx, term, offset, limit, opts)

		// An expired token gets one refresh and an immediate replay. The
		// replay happens inside the same attempt so it works even with a zero
		// retry budget.
		if status == http.StatusUnauthorized && !refreshed {
			refreshed = true
			if refreshErr := c.refreshToken(ctx); refreshErr != nil {
				return nil, backoff.Permanent(refreshErr)
			}
			page, status, err = c.doSearch(ctx, term, offset, limit, opts)
		}

		switch {
		case err != nil && status == 0:
			// Request never produced a response; retryable.
			return nil, err
		case status == http.StatusUnauthorized:
			return nil, backoff.Permanent(fmt.Errorf("token rejected after refresh: %w", driven.ErrAuthenticationFailed))
		case status == http.StatusTooManyRequests || status >= 500:
			return nil, fmt.Errorf("transient status %d", status)
		case err != nil:
			return nil, backoff.Permanent(err)
		}

		return page, nil
	}

	bo := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(c.maxRetries)),
		ctx,
	)

	return backoff.RetryWithData(op, bo)
}

// doSearch performs one search request. The returned status is zero when no
// HTTP response was received.
func (c *Client) doSearch(ctx context.Context, term string, offset, limit int, opts driven.SearchOptions) (*searchResponse, int, error) {
	q := url.Values{}
	q.Set("term", term)
	q.Set("offset", strconv.Itoa(offset))
	q.Set("limit", strconv.Itoa(limit))
	if opts.DateFrom != "" {
		q.Set("date_from", opts.DateFrom)
	}
	if opts.DateTo != "" {
		q.Set("date_to", opts.DateTo)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+searchPath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, 0, fmt.Errorf("building search request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.tokens.Current())
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var page searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("decoding search response: %w", err)
	}

	return &page, resp.StatusCode, nil
}

// refreshToken handles an expired or rejected bearer token. The secondary
// token is tried first when present, since it was acquired for exactly this
// case; otherwise a fresh login is performed.
func (c *Client) refreshToken(ctx context.Context) error {
	if c.tokens.Fallback() {
		slog.Info("primary token rejected, switching to secondary token")
		return nil
	}

	slog.Info("bearer token rejected, re-authenticating")
	if _, err := c.Authenticate(ctx); err != nil {
		return err
	}
	return nil
}
