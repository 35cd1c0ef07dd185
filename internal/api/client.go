package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultUserAgent = "voltaview/0.1"
	requestTimeout   = 15 * time.Second
)

// Client talks to the Voltaserve console HTTP API. It is safe for
// concurrent use.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	log       zerolog.Logger

	mu        sync.RWMutex
	accessKey string
}

// Config configures a Client.
type Config struct {
	// BaseURL is the API root, e.g. "https://console.example.com" or a bare
	// host:port which defaults to http.
	BaseURL string
	// AccessKey is the bearer credential. It may be rotated later via
	// SetAccessKey.
	AccessKey string
	// Logger receives request-level debug logging. Nil disables it.
	Logger *zerolog.Logger
}

// NewClient builds a Client from the given configuration.
func NewClient(cfg Config) (*Client, error) {
	base, err := parseBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
		log:       zerolog.Nop(),
		accessKey: cfg.AccessKey,
	}
	if cfg.Logger != nil {
		c.log = *cfg.Logger
	}
	return c, nil
}

// SetAccessKey installs a new credential. The auth collaborator calls this
// on rotation; everything else treats the credential as read-only.
func (c *Client) SetAccessKey(key string) {
	c.mu.Lock()
	c.accessKey = key
	c.mu.Unlock()
}

// List is the server's pagination envelope shared by every list endpoint.
type List[T any] struct {
	Data          []T `json:"data"`
	TotalPages    int `json:"totalPages"`
	TotalElements int `json:"totalElements"`
	Page          int `json:"page"`
	Size          int `json:"size"`
}

// ProbeResult carries refreshed totals without entity payloads.
type ProbeResult struct {
	TotalPages    int `json:"totalPages"`
	TotalElements int `json:"totalElements"`
}

// ListOptions are the pagination and ordering parameters shared by list
// endpoints.
type ListOptions struct {
	Page      int
	Size      int
	SortBy    string
	SortOrder string
}

// Sort field and order values accepted by the console API.
const (
	SortByName         = "name"
	SortByKind         = "kind"
	SortByEmail        = "email"
	SortByStatus       = "status"
	SortByDateCreated  = "date_created"
	SortByDateModified = "date_modified"

	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

func (o ListOptions) values() url.Values {
	values := url.Values{}
	if o.Page > 0 {
		values.Set("page", strconv.Itoa(o.Page))
	}
	if o.Size > 0 {
		values.Set("size", strconv.Itoa(o.Size))
	}
	if o.SortBy != "" {
		values.Set("sort_by", o.SortBy)
	}
	if o.SortOrder != "" {
		values.Set("sort_order", o.SortOrder)
	}
	return values
}

// encodeStructuredQuery marshals a structured filter and base64url-encodes
// it for the query parameter.
func encodeStructuredQuery(query any) (string, error) {
	data, err := json.Marshal(query)
	if err != nil {
		return "", fmt.Errorf("marshal query: %w", err)
	}
	return base64.URLEncoding.EncodeToString(data), nil
}

func (c *Client) get(ctx context.Context, path string, values url.Values, dest any) error {
	rel := &url.URL{Path: path, RawQuery: values.Encode()}
	return c.do(ctx, http.MethodGet, rel, nil, dest)
}

func (c *Client) send(ctx context.Context, method, path string, body, dest any) error {
	rel := &url.URL{Path: path}
	return c.do(ctx, method, rel, body, dest)
}

func (c *Client) do(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindValidation, Message: "encode request body", Err: err}
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), payload)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: "create request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.mu.RLock()
	if c.accessKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessKey)
	}
	c.mu.RUnlock()

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: "execute request", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return c.responseError(rel, resp)
	}
	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &Error{Kind: KindServer, Status: resp.StatusCode, Message: "decode response", Err: err}
	}
	return nil
}

func (c *Client) responseError(rel *url.URL, resp *http.Response) error {
	kind := KindServer
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		kind = KindAuth
	}

	apiErr := &Error{Kind: kind, Status: resp.StatusCode}
	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Code = body.Code
		apiErr.Message = body.UserMessage
		if apiErr.Message == "" {
			apiErr.Message = body.Message
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("%s returned status %d", rel.Path, resp.StatusCode)
	}
	c.log.Debug().
		Str("path", rel.Path).
		Int("status", resp.StatusCode).
		Str("code", apiErr.Code).
		Msg("request rejected")
	return apiErr
}

// fetchList retrieves one page from a list endpoint.
func fetchList[T any](ctx context.Context, c *Client, path string, values url.Values) (List[T], error) {
	var payload List[T]
	if err := c.get(ctx, path, values, &payload); err != nil {
		return List[T]{}, err
	}
	return payload, nil
}

func (c *Client) fetchProbe(ctx context.Context, path string, values url.Values, size int) (ProbeResult, error) {
	if size > 0 {
		values.Set("size", strconv.Itoa(size))
	}
	var payload ProbeResult
	if err := c.get(ctx, path, values, &payload); err != nil {
		return ProbeResult{}, err
	}
	return payload, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, &Error{Kind: KindValidation, Message: "api base URL is required"}
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, &Error{Kind: KindValidation, Message: fmt.Sprintf("parse base URL %q", raw), Err: err}
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
