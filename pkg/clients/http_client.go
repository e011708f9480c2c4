package clients

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultTimeout = time.Second * 15
	userAgent      = "squadhelp-webhook/1.0"
)

var ErrFailedCloseResponseBody = errors.New("failed close response body")

// Doer is satisfied by *http.Client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Option func(*HTTPClient)

// WithDoer replaces the underlying transport, mostly for tests.
func WithDoer(doer Doer) Option {
	return func(c *HTTPClient) {
		c.doer = doer
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *HTTPClient) {
		c.doer = &http.Client{Timeout: timeout}
	}
}

type HTTPClient struct {
	doer Doer
}

func NewHTTPClient(opts ...Option) *HTTPClient {
	c := &HTTPClient{doer: &http.Client{Timeout: defaultTimeout}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Post sends body and returns the status code and the whole response body.
// The request is aborted as soon as ctx is done.
func (c *HTTPClient) Post(ctx context.Context, url string, headers http.Header, body []byte) (statusCode int, respBody []byte, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	for key, values := range headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer func() {
		if e := resp.Body.Close(); e != nil {
			err = errors.Join(err, ErrFailedCloseResponseBody)
		}
	}()

	respBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, respBody, nil
}
