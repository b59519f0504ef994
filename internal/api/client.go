package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/parkspot/parkspot/internal/models"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "parkspot/1.0"
)

// Client is an HTTP client for the hosted backend (PostgREST table access,
// storage buckets and the auth identity endpoint share one project URL).
type Client struct {
	baseURL     string
	anonKey     string
	accessToken string
	httpClient  *http.Client
	log         *logrus.Logger
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithBaseURL sets a custom base URL.
func WithBaseURL(url string) ClientOption {
	return func(client *Client) {
		client.baseURL = strings.TrimRight(url, "/")
	}
}

// WithLogger sets the logger used for swallowed read failures.
func WithLogger(log *logrus.Logger) ClientOption {
	return func(client *Client) {
		client.log = log
	}
}

// NewClient creates a new backend client.
func NewClient(projectURL, anonKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(projectURL, "/"),
		anonKey: anonKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		log: logrus.StandardLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// NewClientFromCredentials creates a client from a Credentials struct.
func NewClientFromCredentials(creds models.Credentials, opts ...ClientOption) *Client {
	c := NewClient(creds.ProjectURL, creds.AnonKey, opts...)
	c.accessToken = creds.AccessToken
	return c
}

// bearerToken returns the token used for the Authorization header. The anon
// key doubles as the bearer token when no user token is configured.
func (c *Client) bearerToken() string {
	if c.accessToken != "" {
		return c.accessToken
	}
	return c.anonKey
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+c.bearerToken())
	req.Header.Set("User-Agent", userAgent)
}

// request performs an HTTP request with a JSON body and returns the response
// body.
func (c *Client) request(ctx context.Context, method, path string, body interface{}, headers map[string]string) ([]byte, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return c.do(req)
}

// requestRaw performs an HTTP request with an opaque byte body, used for
// blob uploads.
func (c *Client) requestRaw(ctx context.Context, method, path string, body []byte, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.setHeaders(req)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Message string `json:"message"`
			Msg     string `json:"msg"`
			Error   string `json:"error"`
			Code    string `json:"code"`
		}
		_ = json.Unmarshal(respBody, &errResp)

		msg := errResp.Message
		if msg == "" {
			msg = errResp.Msg
		}
		if msg == "" {
			msg = errResp.Error
		}

		return nil, &BackendError{
			StatusCode: resp.StatusCode,
			Message:    msg,
			Code:       errResp.Code,
		}
	}

	return respBody, nil
}

// get performs a GET request.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	return c.request(ctx, http.MethodGet, path, nil, nil)
}

// post performs a POST request with a JSON body.
func (c *Client) post(ctx context.Context, path string, body interface{}, headers map[string]string) ([]byte, error) {
	return c.request(ctx, http.MethodPost, path, body, headers)
}
