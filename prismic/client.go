// Package prismic is a small client for the Prismic REST API v2. It is the
// content fetcher behind the listing, post and build paths.
package prismic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/eringen/spacetraveling/content"
)

const defaultTimeout = 10 * time.Second

var (
	// ErrForeignCursor is returned when a continuation cursor does not point
	// at the configured repository.
	ErrForeignCursor = errors.New("prismic: cursor does not belong to this repository")
	// ErrNoMasterRef is returned when the API lists no master ref.
	ErrNoMasterRef = errors.New("prismic: no master ref")
)

// StatusError reports a non-200 response from the API.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("prismic: unexpected status %d from %s", e.Code, e.URL)
}

// Client queries one Prismic repository.
type Client struct {
	endpoint    *url.URL
	accessToken string
	ref         string
	httpClient  *http.Client
	log         *zap.SugaredLogger
}

// Option configures a Client.
type Option func(*Client)

// WithAccessToken sets the token sent with every request.
func WithAccessToken(token string) Option {
	return func(c *Client) {
		c.accessToken = token
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRef pins queries to a ref (a release or preview) instead of master.
func WithRef(ref string) Option {
	return func(c *Client) {
		c.ref = ref
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// New creates a Client for the API endpoint, e.g.
// https://<repo>.cdn.prismic.io/api/v2.
func New(endpoint string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSuffix(endpoint, "/"))
	if err != nil {
		return nil, fmt.Errorf("prismic: parse endpoint: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("prismic: endpoint must be an absolute http(s) URL: %q", endpoint)
	}
	c := &Client{
		endpoint:   u,
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Ref returns the ref queries run against: the pinned ref if one was
// configured, otherwise the repository's current master ref.
func (c *Client) Ref(ctx context.Context) (string, error) {
	if c.ref != "" {
		return c.ref, nil
	}
	var api apiResponse
	if err := c.getJSON(ctx, c.withToken(*c.endpoint), &api); err != nil {
		return "", fmt.Errorf("prismic: fetch api: %w", err)
	}
	for _, r := range api.Refs {
		if r.IsMasterRef {
			return r.Ref, nil
		}
	}
	return "", ErrNoMasterRef
}

// QueryByType returns one page of documents of docType, newest first.
func (c *Client) QueryByType(ctx context.Context, docType string, opts content.QueryOptions) (content.Feed, error) {
	ref, err := c.Ref(ctx)
	if err != nil {
		return content.Feed{}, err
	}
	params := url.Values{}
	params.Set("ref", ref)
	params.Set("q", fmt.Sprintf(`[[at(document.type,"%s")]]`, docType))
	params.Set("orderings", "[document.first_publication_date desc]")
	if opts.PageSize > 0 {
		params.Set("pageSize", strconv.Itoa(opts.PageSize))
	}
	if opts.Page > 1 {
		params.Set("page", strconv.Itoa(opts.Page))
	}
	res, err := c.search(ctx, params)
	if err != nil {
		return content.Feed{}, err
	}
	return res.feed(), nil
}

// FetchPage follows a next_page URL returned by an earlier query.
func (c *Client) FetchPage(ctx context.Context, cursor string) (content.Feed, error) {
	u, err := url.Parse(strings.TrimSpace(cursor))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || !strings.EqualFold(u.Host, c.endpoint.Host) {
		return content.Feed{}, ErrForeignCursor
	}
	var res searchResponse
	if err := c.getJSON(ctx, c.withToken(*u), &res); err != nil {
		return content.Feed{}, err
	}
	return res.feed(), nil
}

// GetByUID returns the document of docType with the given uid, or
// content.ErrNotFound.
func (c *Client) GetByUID(ctx context.Context, docType, uid string) (content.Post, error) {
	ref, err := c.Ref(ctx)
	if err != nil {
		return content.Post{}, err
	}
	params := url.Values{}
	params.Set("ref", ref)
	params.Set("q", fmt.Sprintf(`[[at(my.%s.uid,"%s")]]`, docType, strings.ReplaceAll(uid, `"`, "")))
	params.Set("pageSize", "1")
	res, err := c.search(ctx, params)
	if err != nil {
		return content.Post{}, err
	}
	if len(res.Results) == 0 {
		return content.Post{}, content.ErrNotFound
	}
	return res.Results[0].post(), nil
}

func (c *Client) search(ctx context.Context, params url.Values) (searchResponse, error) {
	u := *c.endpoint
	u.Path = strings.TrimSuffix(u.Path, "/") + "/documents/search"
	u.RawQuery = params.Encode()
	var res searchResponse
	if err := c.getJSON(ctx, c.withToken(u), &res); err != nil {
		return searchResponse{}, err
	}
	return res, nil
}

func (c *Client) withToken(u url.URL) url.URL {
	if c.accessToken == "" {
		return u
	}
	q := u.Query()
	if q.Get("access_token") == "" {
		q.Set("access_token", c.accessToken)
		u.RawQuery = q.Encode()
	}
	return u
}

func (c *Client) getJSON(ctx context.Context, u url.URL, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("prismic: request %s: %w", redact(u), err)
	}
	defer resp.Body.Close()
	c.log.Debugw("prismic request", "url", redact(u), "status", resp.StatusCode, "latency", time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Code: resp.StatusCode, URL: redact(u)}
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("prismic: decode %s: %w", redact(u), err)
	}
	return nil
}

// redact strips the access token so URLs are safe to log.
func redact(u url.URL) string {
	q := u.Query()
	if q.Get("access_token") != "" {
		q.Set("access_token", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}
