// Package onefs implements the provisioning backend against the Isilon OneFS
// platform and namespace APIs. A Client is bound to one access zone at
// construction; every identity and filesystem call is scoped to it.
package onefs

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/marmos91/hdfsprep/pkg/provision"
)

const platformPrefix = "/platform/11"

// Config holds the connection settings for a OneFS cluster.
type Config struct {
	// Address is the API endpoint, host[:port]. Port defaults to 8080.
	Address  string
	Username string
	Password string

	// Zone is the access zone all calls are scoped to.
	Zone string

	// VerifySSL controls TLS certificate verification. Clusters commonly run
	// with self-signed certificates.
	VerifySSL bool

	// Timeout bounds each API call. Zero means 30s.
	Timeout time.Duration
}

// Client talks to one OneFS cluster, scoped to one access zone. It implements
// provision.Store.
type Client struct {
	baseURL    string
	address    string
	zone       string
	username   string
	password   string
	httpClient *http.Client
}

// New creates a client for the given cluster.
func New(cfg Config) *Client {
	// Address is host[:port] by convention; a full URL (as in tests) is
	// accepted as-is.
	address := cfg.Address
	baseURL := address
	if !strings.Contains(address, "://") {
		if !strings.Contains(address, ":") {
			address += ":8080"
		}
		baseURL = "https://" + address
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: !cfg.VerifySSL}

	return &Client{
		baseURL:  baseURL,
		address:  address,
		zone:     cfg.Zone,
		username: cfg.Username,
		password: cfg.Password,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// Zone returns the access zone the client is bound to.
func (c *Client) Zone() string {
	return c.zone
}

// Address returns the cluster API address.
func (c *Client) Address() string {
	return c.address
}

// zoned appends the client's access zone to a platform API path.
func (c *Client) zoned(path string, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	if c.zone != "" {
		params.Set("zone", c.zone)
	}
	if len(params) == 0 {
		return path
	}
	return path + "?" + params.Encode()
}

// do performs an HTTP request and decodes the response, translating HTTP
// failures into the provisioning error taxonomy: transport failures become
// ConnectivityError, 401/403 PermissionError, 404 ErrNotFound, 409 ErrExists.
func (c *Client) do(method, path string, headers map[string]string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &provision.ConnectivityError{Endpoint: c.address, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &provision.ConnectivityError{Endpoint: c.address, Err: err}
	}

	if resp.StatusCode >= 400 {
		apiErr := decodeAPIError(resp.StatusCode, respBody)
		switch {
		case apiErr.IsAuthError():
			return &provision.PermissionError{Op: method + " " + requestPath(path), Err: apiErr}
		case apiErr.IsNotFound():
			return fmt.Errorf("%s %s: %s: %w", method, requestPath(path), apiErr.Message, provision.ErrNotFound)
		case apiErr.IsConflict():
			return fmt.Errorf("%s %s: %s: %w", method, requestPath(path), apiErr.Message, provision.ErrExists)
		default:
			return apiErr
		}
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// decodeAPIError parses an error body, falling back to the raw body when the
// envelope is absent.
func decodeAPIError(status int, body []byte) *APIError {
	var envelope errorsEnvelope
	if json.Unmarshal(body, &envelope) == nil && len(envelope.Errors) > 0 {
		apiErr := envelope.Errors[0]
		apiErr.StatusCode = status
		return &apiErr
	}
	return &APIError{
		StatusCode: status,
		Message:    strings.TrimSpace(string(body)),
	}
}

// requestPath strips the query string for error messages, keeping credentials
// and zone names out of wrapped errors where possible.
func requestPath(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		return path[:i]
	}
	return path
}

// get performs a GET request.
func (c *Client) get(path string, result any) error {
	return c.do(http.MethodGet, path, nil, nil, result)
}

// post performs a POST request.
func (c *Client) post(path string, body, result any) error {
	return c.do(http.MethodPost, path, nil, body, result)
}

// put performs a PUT request.
func (c *Client) put(path string, headers map[string]string, body any) error {
	return c.do(http.MethodPut, path, headers, body, nil)
}

// delete performs a DELETE request.
func (c *Client) delete(path string) error {
	return c.do(http.MethodDelete, path, nil, nil, nil)
}
