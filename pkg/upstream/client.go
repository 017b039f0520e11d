package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultTimeout = 15 * time.Second

type Config struct {
	BaseURL string
	Timeout time.Duration

	// Headers are sent on every request, e.g. the RapidAPI key and host.
	Headers map[string]string
	// QueryAuth parameters are appended to every request, e.g. an open-data api-key.
	QueryAuth map[string]string

	Transport http.RoundTripper
}

// Client performs single-attempt GET requests against one upstream API. It never retries and
// every failure is returned as a *Failure.
type Client struct {
	baseURL    string
	headers    map[string]string
	queryAuth  map[string]string
	httpClient *http.Client
}

func NewClient(config Config) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL:   strings.TrimRight(config.BaseURL, "/"),
		headers:   config.Headers,
		queryAuth: config.QueryAuth,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: config.Transport,
		},
	}
}

// NewRapidAPIClient sets up the X-RapidAPI-Key / X-RapidAPI-Host headers RapidAPI requires.
func NewRapidAPIClient(baseURL string, key string, host string, timeout time.Duration) *Client {
	return NewClient(Config{
		BaseURL: baseURL,
		Timeout: timeout,
		Headers: map[string]string{
			"X-RapidAPI-Key":  key,
			"X-RapidAPI-Host": host,
		},
	})
}

type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// Get fetches endpoint (relative to the base URL, or the base URL itself when empty) and only
// returns a Response for HTTP 200.
func (c *Client) Get(ctx context.Context, endpoint string, params map[string]string) (*Response, error) {
	requestURL, err := c.buildURL(endpoint, params)
	if err != nil {
		return nil, &Failure{Kind: FailureConnection, Endpoint: endpoint, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, &Failure{Kind: FailureConnection, Endpoint: endpoint, Err: err}
	}
	for header, value := range c.headers {
		req.Header.Set(header, value)
	}
	req.Header.Set("User-Agent", "ecocitty/1.0")

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		failure := classifyTransportError(endpoint, err)
		log.Debug().Str("endpoint", endpoint).Str("kind", string(failure.Kind)).Err(err).Msg("Upstream request failed")
		return nil, failure
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransportError(endpoint, err)
	}

	log.Debug().
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Str("latency", time.Since(startTime).String()).
		Msg("Upstream request")

	if resp.StatusCode != http.StatusOK {
		return nil, &Failure{
			Kind:       FailureStatus,
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	return &Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

// GetJSON decodes a 200 response body into out.
func (c *Client) GetJSON(ctx context.Context, endpoint string, params map[string]string, out any) error {
	resp, err := c.Get(ctx, endpoint, params)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(resp.Body, out); err != nil {
		return &Failure{Kind: FailureDecode, Endpoint: endpoint, StatusCode: resp.StatusCode, Body: string(resp.Body), Err: err}
	}

	return nil
}

func (c *Client) buildURL(endpoint string, params map[string]string) (string, error) {
	base := c.baseURL
	if endpoint != "" {
		base = base + "/" + strings.TrimLeft(endpoint, "/")
	}

	parsed, err := url.Parse(base)
	if err != nil {
		return "", err
	}

	query := parsed.Query()
	for key, value := range c.queryAuth {
		query.Set(key, value)
	}
	for key, value := range params {
		query.Set(key, value)
	}
	parsed.RawQuery = query.Encode()

	return parsed.String(), nil
}

func classifyTransportError(endpoint string, err error) *Failure {
	var netErr net.Error

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &Failure{Kind: FailureTimeout, Endpoint: endpoint, Err: err}
	case errors.As(err, &netErr) && netErr.Timeout():
		return &Failure{Kind: FailureTimeout, Endpoint: endpoint, Err: err}
	default:
		return &Failure{Kind: FailureConnection, Endpoint: endpoint, Err: err}
	}
}

// KindOf returns the failure kind of err, or "" when err did not come from this package.
func KindOf(err error) FailureKind {
	var failure *Failure
	if errors.As(err, &failure) {
		return failure.Kind
	}

	return ""
}
