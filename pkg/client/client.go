package client

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/zfogg/blogfront/pkg/logger"
)

const UserAgent = "blogfront/0.1.0"

// TokenSource supplies the bearer token for each request. An empty token
// means the request goes out unauthenticated.
type TokenSource interface {
	AccessToken() string
}

// ResponseObserver is called once per completed request.
type ResponseObserver func(method string, status int, elapsed time.Duration)

// Options configures a Client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	Tokens     TokenSource
	OnResponse ResponseObserver
}

// Client wraps a resty client with the API's header conventions.
type Client struct {
	http   *resty.Client
	tokens TokenSource
}

// New creates a Client.
func New(opts Options) *Client {
	c := &Client{
		http:   resty.New(),
		tokens: opts.Tokens,
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	c.http.SetBaseURL(opts.BaseURL)
	c.http.SetTimeout(timeout)
	c.http.SetHeader("User-Agent", UserAgent)
	c.http.SetHeader("Accept", "application/json")

	c.http.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		logger.Debug("HTTP Request", "method", req.Method, "url", req.URL)

		if c.tokens != nil {
			if token := c.tokens.AccessToken(); token != "" {
				req.SetAuthToken(token)
			}
		}
		return nil
	})

	c.http.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		logger.Debug("HTTP Response", "status", resp.StatusCode(), "elapsed", resp.Time())
		if opts.OnResponse != nil {
			opts.OnResponse(resp.Request.Method, resp.StatusCode(), resp.Time())
		}
		return nil
	})

	return c
}

// R starts a request bound to ctx.
func (c *Client) R(ctx context.Context) *resty.Request {
	if ctx == nil {
		ctx = context.Background()
	}
	return c.http.R().SetContext(ctx)
}
