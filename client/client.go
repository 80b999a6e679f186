package client

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultTimeout = 15 * time.Second

// Client is an HTTP client for the twitter-clone API.
type Client struct {
	http  *resty.Client
	token string
}

type Option func(*Client)

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.http.SetTimeout(timeout)
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{http: resty.New()}

	c.http.SetBaseURL(baseURL)
	c.http.SetTimeout(defaultTimeout)
	c.http.SetHeader("User-Agent", "TwitterClone-Client/1.0")

	c.http.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}
		return nil
	})

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SetToken sets the bearer token attached to subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// ClearToken removes the bearer token.
func (c *Client) ClearToken() {
	c.token = ""
}

// Token returns the current bearer token, empty if unauthenticated.
func (c *Client) Token() string {
	return c.token
}

// APIError represents an error response from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("[%d] %s", e.StatusCode, e.Message)
}

// IsUnauthorized checks if error is due to missing/invalid authentication.
func IsUnauthorized(err error) bool {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.StatusCode == 401
	}
	return false
}

// IsNotFound checks if error is due to resource not found.
func IsNotFound(err error) bool {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.StatusCode == 404
	}
	return false
}

func parseError(resp *resty.Response) error {
	var errResp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(resp.Body(), &errResp); err == nil && errResp.Error != "" {
		return &APIError{StatusCode: resp.StatusCode(), Message: errResp.Error}
	}

	return &APIError{StatusCode: resp.StatusCode(), Message: string(resp.Body())}
}

// checkResponse turns non-2xx responses into *APIError.
func checkResponse(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if !resp.IsSuccess() {
		return parseError(resp)
	}
	return nil
}
