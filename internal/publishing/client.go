package publishing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"maslow/pkg/types"

	"github.com/sirupsen/logrus"
)

const (
	defaultTimeout = 30 * time.Second
	maxRetries     = 3
	initialBackoff = 500 * time.Millisecond
)

// Payload is a JSON-shaped document as returned by the Publishing API.
type Payload = map[string]any

type ContentItemsOptions struct {
	DocumentType string
	Fields       []string
	Order        string
	Locale       string
	Q            string
	PerPage      int
	Page         int
}

type ContentItemsPage struct {
	Total       int       `json:"total"`
	Pages       int       `json:"pages"`
	CurrentPage int       `json:"current_page"`
	Results     []Payload `json:"results"`
}

// API is the slice of the Publishing API this application consumes.
// The store depends on this interface so tests can substitute a fake.
type API interface {
	GetContentItems(ctx context.Context, opts ContentItemsOptions) (*ContentItemsPage, error)
	GetContent(ctx context.Context, contentID string) (Payload, error)
	GetContentVersion(ctx context.Context, contentID string, version int) (Payload, error)
	GetLinks(ctx context.Context, contentID string) (Payload, error)
	GetLinkedItems(ctx context.Context, contentID, linkType string, fields []string) ([]Payload, error)
	PutContent(ctx context.Context, contentID string, payload Payload) error
	PatchLinks(ctx context.Context, contentID string, links Payload) error
	Publish(ctx context.Context, contentID, updateType string) error
	DiscardDraft(ctx context.Context, contentID string) error
	Unpublish(ctx context.Context, contentID string, payload Payload) error
}

// Client talks to the Publishing API v2 content endpoints.
type Client struct {
	baseURL     string
	bearerToken string
	client      *http.Client
	logger      *logrus.Logger
}

var _ API = (*Client)(nil)

func NewClient(baseURL, bearerToken string, logger *logrus.Logger) *Client {
	return &Client{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		bearerToken: bearerToken,
		logger:      logger,
		client: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

func (c *Client) GetContentItems(ctx context.Context, opts ContentItemsOptions) (*ContentItemsPage, error) {
	query := url.Values{}
	if opts.DocumentType != "" {
		query.Set("document_type", opts.DocumentType)
	}
	for _, f := range opts.Fields {
		query.Add("fields[]", f)
	}
	if opts.Order != "" {
		query.Set("order", opts.Order)
	}
	if opts.Locale != "" {
		query.Set("locale", opts.Locale)
	}
	if opts.Q != "" {
		query.Set("q", opts.Q)
	}
	if opts.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(opts.PerPage))
	}
	if opts.Page > 0 {
		query.Set("page", strconv.Itoa(opts.Page))
	}

	body, err := c.getWithRetry(ctx, "/v2/content", query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content items: %w", err)
	}

	var page ContentItemsPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("failed to parse content items response: %w", err)
	}

	return &page, nil
}

func (c *Client) GetContent(ctx context.Context, contentID string) (Payload, error) {
	return c.getPayload(ctx, "/v2/content/"+contentID, nil)
}

// GetContentVersion fetches a specific historical revision of a content
// item, identified by its user-facing version number.
func (c *Client) GetContentVersion(ctx context.Context, contentID string, version int) (Payload, error) {
	query := url.Values{}
	query.Set("version", strconv.Itoa(version))
	return c.getPayload(ctx, "/v2/content/"+contentID, query)
}

func (c *Client) GetLinks(ctx context.Context, contentID string) (Payload, error) {
	return c.getPayload(ctx, "/v2/links/"+contentID, nil)
}

func (c *Client) GetLinkedItems(ctx context.Context, contentID, linkType string, fields []string) ([]Payload, error) {
	query := url.Values{}
	query.Set("link_type", linkType)
	for _, f := range fields {
		query.Add("fields[]", f)
	}

	body, err := c.getWithRetry(ctx, "/v2/linked/"+contentID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch linked items for %s: %w", contentID, err)
	}

	var items []Payload
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("failed to parse linked items response: %w", err)
	}

	return items, nil
}

func (c *Client) PutContent(ctx context.Context, contentID string, payload Payload) error {
	return c.send(ctx, http.MethodPut, "/v2/content/"+contentID, payload)
}

func (c *Client) PatchLinks(ctx context.Context, contentID string, links Payload) error {
	return c.send(ctx, http.MethodPatch, "/v2/links/"+contentID, links)
}

func (c *Client) Publish(ctx context.Context, contentID, updateType string) error {
	return c.send(ctx, http.MethodPost, "/v2/content/"+contentID+"/publish", Payload{
		"update_type": updateType,
	})
}

func (c *Client) DiscardDraft(ctx context.Context, contentID string) error {
	return c.send(ctx, http.MethodPost, "/v2/content/"+contentID+"/discard-draft", nil)
}

func (c *Client) Unpublish(ctx context.Context, contentID string, payload Payload) error {
	return c.send(ctx, http.MethodPost, "/v2/content/"+contentID+"/unpublish", payload)
}

func (c *Client) getPayload(ctx context.Context, path string, query url.Values) (Payload, error) {
	body, err := c.getWithRetry(ctx, path, query)
	if err != nil {
		return nil, err
	}

	var payload Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse response for %s: %w", path, err)
	}

	return payload, nil
}

// getWithRetry performs an HTTP GET with exponential backoff. Mutating
// requests never retry; the Publishing API does not guarantee they are
// idempotent across lock versions.
func (c *Client) getWithRetry(ctx context.Context, path string, query url.Values) ([]byte, error) {
	var lastErr error
	backoff := initialBackoff

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
				backoff *= 2
			}
		}

		body, err := c.do(ctx, http.MethodGet, path, query, nil)
		if err == nil {
			return body, nil
		}

		// 4xx responses are answers, not transient faults.
		var httpErr *HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode < http.StatusInternalServerError &&
			httpErr.StatusCode != http.StatusTooManyRequests {
			return nil, err
		}
		if errors.Is(err, types.ErrNeedNotFound) {
			return nil, err
		}

		lastErr = err
	}

	return nil, fmt.Errorf("failed after %d attempts: %w", maxRetries, lastErr)
}

func (c *Client) send(ctx context.Context, method, path string, payload Payload) error {
	_, err := c.do(ctx, method, path, nil, payload)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload Payload) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.bearerToken)
	}

	started := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w", method, path, err)
	}

	c.logger.WithFields(logrus.Fields{
		"method":      method,
		"path":        path,
		"status":      resp.StatusCode,
		"duration_ms": time.Since(started).Milliseconds(),
	}).Debug("publishing api request")

	if resp.StatusCode == http.StatusNotFound {
		return nil, types.ErrNeedNotFound
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, newHTTPError(resp.StatusCode, body)
	}

	return body, nil
}
