package jenkins

import (
	"fmt"
	"net/url"
	"strings"
)

// JobURL builds the URL of a nested job from its path segments.
// Each segment is escaped on its own; empty segments are dropped.
func (c *Client) JobURL(segments ...string) string {
	return c.baseURL + JobPath(segments...)
}

// JobPathURL builds a job URL from a slash separated full name such as
// "Folder/Repo/main".
func (c *Client) JobPathURL(fullname string) string {
	return c.JobURL(strings.Split(fullname, "/")...)
}

// JobPath returns the "/job/a/job/b" path for the given segments
func JobPath(segments ...string) string {
	var sb strings.Builder
	for _, s := range segments {
		if s == "" {
			continue
		}
		sb.WriteString("/job/")
		sb.WriteString(url.PathEscape(s))
	}
	return sb.String()
}

// Resolve turns a path or URL supplied by a caller into an absolute URL on
// the Jenkins server. Paths are joined to the base URL. Absolute URLs are
// accepted only when their scheme and host match the base URL; anything else
// yields ErrForeignHost.
func (c *Client) Resolve(pathOrURL string) (string, error) {
	u, err := url.Parse(pathOrURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL %q: %w", pathOrURL, err)
	}

	if u.Scheme != "" || u.Host != "" {
		if !c.sameOrigin(u) {
			return "", fmt.Errorf("%w: %s", ErrForeignHost, u.Host)
		}
		return pathOrURL, nil
	}

	if !strings.HasPrefix(pathOrURL, "/") {
		pathOrURL = "/" + pathOrURL
	}
	return c.baseURL + pathOrURL, nil
}

// sameOrigin reports whether u points at the configured Jenkins scheme and host
func (c *Client) sameOrigin(u *url.URL) bool {
	return strings.EqualFold(u.Scheme, c.origin.Scheme) &&
		strings.EqualFold(u.Host, c.origin.Host)
}
