package jenkins

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/rs/zerolog"
)

const apiJSONSuffix = "/api/json"

// Client represents a Jenkins API client
type Client struct {
	baseURL    string
	origin     *url.URL
	authHeader string
	userAgent  string
	httpClient *http.Client
	logger     zerolog.Logger
}

// Response is a successful Jenkins response
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// NewClient creates a new Jenkins client. Unlike the connectivity check,
// construction never touches the network.
func NewClient(baseURL, username, password string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("%w: jenkins URL is required", ErrInvalidConfig)
	}

	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: jenkins URL must be absolute: %q", ErrInvalidConfig, baseURL)
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	httpClient := options.httpClient
	if httpClient == nil {
		transport := cleanhttp.DefaultPooledTransport()
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: options.insecureSkipVerify} //nolint:gosec
		httpClient = &http.Client{
			Transport: transport,
			Timeout:   options.timeout,
		}
	}

	token := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))

	return &Client{
		baseURL:    baseURL,
		origin:     u,
		authHeader: "Basic " + token,
		userAgent:  options.userAgent,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// BaseURL returns the Jenkins root URL without a trailing slash
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do performs a single authenticated request. Parameters are sent in the
// query string regardless of the verb, which is what Jenkins expects for
// buildWithParameters and most form endpoints.
func (c *Client) Do(ctx context.Context, method, rawURL string, params map[string]string) (*Response, error) {
	method = strings.ToUpper(method)
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidMethod, method)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}
	if !c.sameOrigin(u) {
		return nil, fmt.Errorf("%w: %s", ErrForeignHost, u.Host)
	}
	requestURL := rawURL
	if len(params) > 0 {
		requestURL = withQuery(u, params)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Debug().
		Str("method", method).
		Str("url", requestURL).
		Int("params", len(params)).
		Msg("Making Jenkins API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			URL:        requestURL,
			Body:       string(body),
		}
	}

	c.logger.Debug().
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Msg("Jenkins API response")

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// Get performs a GET request
func (c *Client) Get(ctx context.Context, rawURL string, params map[string]string) (*Response, error) {
	return c.Do(ctx, http.MethodGet, rawURL, params)
}

// GetJSON fetches the JSON API view of a Jenkins object, appending /api/json
// unless the URL already ends with it.
func (c *Client) GetJSON(ctx context.Context, rawURL string) (*Response, error) {
	return c.Get(ctx, JSONURL(rawURL), nil)
}

// Ping requests the Jenkins root page
func (c *Client) Ping(ctx context.Context) (*Response, error) {
	return c.Get(ctx, c.baseURL, nil)
}

// WhoAmI returns the identity Jenkins associates with the configured credentials
func (c *Client) WhoAmI(ctx context.Context) (*WhoAmI, error) {
	resp, err := c.GetJSON(ctx, c.baseURL+"/whoAmI")
	if err != nil {
		return nil, err
	}

	var who WhoAmI
	if err := resp.Decode(&who); err != nil {
		return nil, err
	}
	return &who, nil
}

// Decode unmarshals the response body into v. A body that is not valid
// JSON yields ErrNotJSON; the decoder's message is kept out of the chain.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return fmt.Errorf("failed to parse response: %w", err)
		}
		return fmt.Errorf("%w (content type %q)", ErrNotJSON, r.Header.Get("Content-Type"))
	}
	return nil
}

// Data returns the decoded JSON body, or the body as a string when it is
// not JSON. Numbers are kept as json.Number so re-encoding is lossless.
func (r *Response) Data() any {
	trimmed := bytes.TrimSpace(r.Body)
	if len(trimmed) == 0 {
		return string(r.Body)
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil || dec.More() {
		return string(r.Body)
	}
	return v
}

// Location returns the Location header, which Jenkins sets to the queue item
// URL when a build is scheduled.
func (r *Response) Location() string {
	if r.Header == nil {
		return ""
	}
	return r.Header.Get("Location")
}

// JSONURL appends /api/json to rawURL unless it is already present
func JSONURL(rawURL string) string {
	if strings.HasSuffix(rawURL, apiJSONSuffix) {
		return rawURL
	}
	return strings.TrimRight(rawURL, "/") + apiJSONSuffix
}

func withQuery(u *url.URL, params map[string]string) string {
	withParams := *u
	q := withParams.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	withParams.RawQuery = q.Encode()
	return withParams.String()
}
