package httpclient

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client wraps resty for JSON calls against *arr HTTP APIs.
type Client struct {
	r *resty.Client
}

// New creates a new HTTP client with sensible defaults.
func New() *Client {
	r := resty.New().
		SetTimeout(30 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second)

	return &Client{r: r}
}

// WithTimeout sets a custom timeout.
func (c *Client) WithTimeout(d time.Duration) *Client {
	c.r.SetTimeout(d)
	return c
}

// WithInsecureSkipVerify disables TLS verification, for instances behind
// self-signed reverse proxies.
func (c *Client) WithInsecureSkipVerify() *Client {
	c.r.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	return c
}

// GetJSON sends a GET request and decodes the JSON response into out.
func (c *Client) GetJSON(ctx context.Context, url string, headers map[string]string, out interface{}) error {
	resp, err := c.r.R().
		SetContext(ctx).
		SetHeaders(headers).
		SetHeader("Accept", "application/json").
		SetResult(out).
		Get(url)
	if err != nil {
		return err
	}
	return checkStatus(resp)
}

// PostJSON sends a POST request with a JSON body; out may be nil.
func (c *Client) PostJSON(ctx context.Context, url string, headers map[string]string, body, out interface{}) error {
	req := c.r.R().
		SetContext(ctx).
		SetHeaders(headers).
		SetHeader("Content-Type", "application/json").
		SetBody(body)
	if out != nil {
		req.SetResult(out)
	}
	resp, err := req.Post(url)
	if err != nil {
		return err
	}
	return checkStatus(resp)
}

// PutJSON sends a PUT request with a JSON body.
func (c *Client) PutJSON(ctx context.Context, url string, headers map[string]string, body interface{}) error {
	resp, err := c.r.R().
		SetContext(ctx).
		SetHeaders(headers).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Put(url)
	if err != nil {
		return err
	}
	return checkStatus(resp)
}

// Raw returns the underlying resty client for advanced usage.
func (c *Client) Raw() *resty.Client {
	return c.r
}

func checkStatus(resp *resty.Response) error {
	if resp.IsError() {
		return fmt.Errorf("%s %s: unexpected status %d", resp.Request.Method, resp.Request.URL, resp.StatusCode())
	}
	return nil
}
