package users

import (
	"fmt"
	"net/http"

	"resty.dev/v3"
)

// Client looks up operators in the auth service over HTTP.
type Client struct {
	baseURL string
	http    *resty.Client
}

// NewClient creates a Client against the given users endpoint,
// e.g. "http://localhost:8080/users".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    resty.New(),
	}
}

// Exists reports whether the named operator exists in the auth service.
// A 200 response means the operator exists, a 404 means it does not; any
// other status is an error.
func (c *Client) Exists(username string) (bool, error) {
	res, err := c.http.R().Get(fmt.Sprintf("%s/%s", c.baseURL, username))
	if err != nil {
		return false, fmt.Errorf("error making request to user API: %w", err)
	}

	switch res.StatusCode() {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("user API returned unexpected status: %d", res.StatusCode())
	}
}

// Close releases the underlying HTTP client resources.
func (c *Client) Close() error {
	return c.http.Close()
}
