// Package fixmate provides an HTTP client for the external FixMate
// maintenance/AI service. Every dashboard view that reads or mutates issues,
// assignments, or analytics goes through this client.
package fixmate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/propmate/propmate/internal/resilience"
)

// APIError is any non-2xx response from the FixMate service. Transport
// failures and rejections share this surface; the status code is zero when
// the request never completed.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("fixmate API error %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("fixmate API error %d: %s", e.StatusCode, e.Status)
}

// Client talks to the FixMate service API.
type Client struct {
	baseURL    string
	orgID      string
	httpClient *http.Client
	breaker    *resilience.Breaker
}

// NewClient creates a FixMate client. baseURL may omit the scheme (http://
// is assumed) and any trailing slash is stripped. orgID is sent as X-Org-ID
// on organization-scoped calls; pass it explicitly rather than reading
// ambient session state so the client stays testable without an auth
// provider.
func NewClient(baseURL, orgID string) *Client {
	return &Client{
		baseURL: normalizeBaseURL(baseURL),
		orgID:   orgID,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// SetBreaker attaches a circuit breaker to all outgoing HTTP calls.
func (c *Client) SetBreaker(b *resilience.Breaker) {
	c.breaker = b
}

// WithOrg returns a shallow copy of the client bound to a different
// organization identity. Connection state is shared.
func (c *Client) WithOrg(orgID string) *Client {
	cp := *c
	cp.orgID = orgID
	return &cp
}

func normalizeBaseURL(raw string) string {
	if raw != "" && !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	return strings.TrimRight(raw, "/")
}

// doRequest performs one HTTP round trip. Any non-2xx status is converted
// into an *APIError; there is no retry, no backoff, and no timeout beyond
// what the transport provides.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, reqBody any, orgScoped bool) ([]byte, error) {
	var result []byte
	call := func() error {
		var bodyReader io.Reader
		if reqBody != nil {
			data, err := json.Marshal(reqBody)
			if err != nil {
				return fmt.Errorf("marshal request: %w", err)
			}
			bodyReader = bytes.NewReader(data)
		}

		u := c.baseURL + path
		if len(query) > 0 {
			u += "?" + query.Encode()
		}

		req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}

		req.Header.Set("Content-Type", "application/json")
		if orgScoped && c.orgID != "" {
			req.Header.Set("X-Org-ID", c.orgID)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("http request: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return &APIError{
				StatusCode: resp.StatusCode,
				Status:     resp.Status,
				Body:       strings.TrimSpace(string(data)),
			}
		}

		result = data
		return nil
	}

	if c.breaker != nil {
		err := c.breaker.Execute(func() error {
			err := call()
			// A 4xx answer (other than 429) means the upstream is healthy
			// and rejected this one request. Counting those would let a
			// handful of bad lookups open the circuit and take the queue
			// poll down with them.
			var apiErr *APIError
			if errors.As(err, &apiErr) &&
				apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 &&
				apiErr.StatusCode != http.StatusTooManyRequests {
				return resilience.Expected(err)
			}
			return err
		})
		if err != nil {
			return nil, err
		}
		return result, nil
	}

	if err := call(); err != nil {
		return nil, err
	}
	return result, nil
}

// get unmarshals a GET response into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, orgScoped bool, out any) error {
	data, err := c.doRequest(ctx, http.MethodGet, path, query, nil, orgScoped)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("unmarshal %s: %w", path, err)
	}
	return nil
}
