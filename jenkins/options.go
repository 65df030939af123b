package jenkins

import (
	"net/http"
	"time"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	timeout            time.Duration
	userAgent          string
	insecureSkipVerify bool
	httpClient         *http.Client
}

func defaultOptions() clientOptions {
	return clientOptions{
		userAgent:          "jenkins-mcp",
		insecureSkipVerify: true,
	}
}

// WithTimeout sets the HTTP client timeout. Zero means no timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout >= 0 {
			o.timeout = timeout
		}
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		if userAgent != "" {
			o.userAgent = userAgent
		}
	}
}

// WithInsecureSkipVerify toggles certificate verification.
// Jenkins instances behind self-signed certificates are common, so the
// client skips verification unless told otherwise.
func WithInsecureSkipVerify(skip bool) Option {
	return func(o *clientOptions) {
		o.insecureSkipVerify = skip
	}
}

// WithHTTPClient replaces the underlying HTTP client. Timeout and TLS
// options are ignored when a custom client is supplied.
func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = c
	}
}
