package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lmops/lmctl/pkg/auth"
	"github.com/lmops/lmctl/pkg/log"
	"github.com/lmops/lmctl/pkg/metrics"
	"github.com/lmops/lmctl/pkg/types"
)

const (
	// DefaultAPIVersion is sent in the X-Version header unless a request
	// overrides it.
	DefaultAPIVersion = "3"

	defaultTimeout = 30 * time.Second

	// localDevCompany is the account name used against local test portals,
	// which serve self-signed certificates.
	localDevCompany = "localdev"
)

// Client issues signed REST requests against one account's portal.
type Client struct {
	baseURL    string
	signer     *auth.Signer
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the portal URL derived from the company name.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(u, "/")
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.httpClient = h
	}
}

// NewClient creates a client for the given credential. The portal URL is
// https://{company}.logicmonitor.com/santaba/rest with the company name
// lowercased.
func NewClient(cred types.Credential, opts ...Option) *Client {
	c := &Client{
		baseURL:    fmt.Sprintf("https://%s.logicmonitor.com/santaba/rest", strings.ToLower(cred.Company)),
		signer:     auth.NewSigner(cred),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	if strings.EqualFold(cred.Company, localDevCompany) {
		c.httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Request describes one REST call. Path is the endpoint (for example
// "/device/devices") and PathSuffix an optional record selector appended to
// it (for example "/42"). Both are part of the signed resource path; Query
// is not.
type Request struct {
	Method     string
	Path       string
	PathSuffix string
	Query      url.Values
	Body       any
	// XVersion overrides the X-Version header, empty means DefaultAPIVersion.
	XVersion string
}

// Do executes the request and decodes the JSON response. A call succeeds
// only when the HTTP status is 200 and the body carries no errorCode; any
// other outcome returns an *APIError. The decoded body is returned even on
// API errors so callers can inspect failed lookups.
func (c *Client) Do(ctx context.Context, req Request) (types.Record, error) {
	resourcePath := req.Path + req.PathSuffix

	var payload []byte
	if req.Body != nil {
		var err error
		payload, err = json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
	}

	u := c.baseURL + resourcePath
	if len(req.Query) > 0 {
		u += "?" + req.Query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	version := req.XVersion
	if version == "" {
		version = DefaultAPIVersion
	}
	httpReq.Header.Set("Authorization", c.signer.Sign(req.Method, resourcePath, payload))
	httpReq.Header.Set("X-Version", version)
	httpReq.Header.Set("Content-Type", "application/json")

	logger := log.WithComponent("api")
	logger.Debug().
		Str("method", req.Method).
		Str("path", resourcePath).
		Msg("issuing request")

	timer := metrics.NewTimer()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(req.Method, "transport_error").Inc()
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	metrics.APIRequestsTotal.WithLabelValues(req.Method, fmt.Sprintf("%d", resp.StatusCode)).Inc()
	timer.ObserveDuration(metrics.APIRequestDuration.WithLabelValues(req.Method))

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	var body types.Record
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &body); err != nil {
			// Non-JSON bodies only accompany failures.
			if resp.StatusCode != http.StatusOK {
				return nil, &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
			}
			return nil, fmt.Errorf("decoding response body %q: %w", strings.TrimSpace(string(raw)), err)
		}
	}

	errCode := body.Int("errorCode")
	if resp.StatusCode == http.StatusOK && errCode == 0 {
		return body, nil
	}

	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Code:       errCode,
		Message:    body.String("errorMessage"),
		Body:       body,
	}
	logger.Debug().
		Str("method", req.Method).
		Str("path", resourcePath).
		Int("status", resp.StatusCode).
		Int("code", errCode).
		Msg("request failed")
	return body, apiErr
}
