// Package diagnose turns failed Jenkins calls into user facing
// troubleshooting output.
package diagnose

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"syscall"

	"github.com/s0up4200/jenkins-mcp/jenkins"
)

// Kind categorizes a failure
type Kind string

const (
	KindConnection     Kind = "CONNECTION"
	KindAuthentication Kind = "AUTHENTICATION"
	KindNotFound       Kind = "NOT_FOUND"
	KindPermission     Kind = "PERMISSION"
	KindInvalidParams  Kind = "INVALID_PARAMS"
	KindUnknown        Kind = "UNKNOWN"
)

// Label returns the lower-cased name used in rendered output,
// e.g. "not found" for KindNotFound.
func (k Kind) Label() string {
	return strings.ToLower(strings.Replace(string(k), "_", " ", 1))
}

// Diagnosis is a classified error together with remediation hints
type Diagnosis struct {
	Kind        Kind
	Message     string
	Suggestions []string
	Cause       error
}

// Error implements the error interface
func (d *Diagnosis) Error() string {
	if d.Cause == nil {
		return d.Message
	}
	return fmt.Sprintf("%s: %v", d.Message, d.Cause)
}

// Unwrap returns the underlying error
func (d *Diagnosis) Unwrap() error {
	return d.Cause
}

// Prepend puts call specific hints in front of the canned suggestions
func (d *Diagnosis) Prepend(suggestions ...string) *Diagnosis {
	d.Suggestions = append(append([]string{}, suggestions...), d.Suggestions...)
	return d
}

// Append adds hints after the canned suggestions
func (d *Diagnosis) Append(suggestions ...string) *Diagnosis {
	d.Suggestions = append(d.Suggestions, suggestions...)
	return d
}

type rule struct {
	message     string
	suggestions []string
}

var rules = map[Kind]rule{
	KindConnection: {
		message: "Cannot connect to Jenkins server",
		suggestions: []string{
			"Verify JENKINS_URL environment variable is correct",
			"Check if Jenkins server is running",
			"Confirm network connectivity to Jenkins server",
			"Check if firewall is blocking the connection",
		},
	},
	KindAuthentication: {
		message: "Authentication failed",
		suggestions: []string{
			"Verify JENKINS_USERNAME and JENKINS_PASSWORD environment variables",
			"Check if the Jenkins user account is active",
			"Ensure the user has necessary permissions",
			"Try generating a new API token if using token-based auth",
		},
	},
	KindNotFound: {
		message: "Jenkins job or resource not found",
		suggestions: []string{
			"Verify the folder name, repository name, and branch name are correct",
			"Check if the job exists in Jenkins",
			"Ensure proper case sensitivity in job names",
			"Use the search-jobs tool to find available jobs",
		},
	},
	KindPermission: {
		message: "Insufficient permissions",
		suggestions: []string{
			"Check if the user has permission to access this job",
			"Verify build permissions for this project",
			"Contact Jenkins admin to grant necessary permissions",
			"Ensure the user is in the correct Jenkins groups",
		},
	},
	KindInvalidParams: {
		message: "Invalid parameters provided",
		suggestions: []string{
			"Check parameter names and values",
			"Verify required parameters are provided",
			"Ensure parameter values match expected formats",
			"Use the get-job-info tool to see available parameters",
		},
	},
	KindUnknown: {
		message: "An unexpected error occurred",
		suggestions: []string{
			"Check Jenkins server logs for more details",
			"Verify Jenkins server is functioning properly",
			"Try the sanity-check tool to test basic connectivity",
			"Contact Jenkins administrator if the issue persists",
		},
	},
}

// New returns a fresh diagnosis of the given kind
func New(kind Kind, cause error) *Diagnosis {
	r, ok := rules[kind]
	if !ok {
		kind = KindUnknown
		r = rules[KindUnknown]
	}
	return &Diagnosis{
		Kind:        kind,
		Message:     r.message,
		Suggestions: append([]string{}, r.suggestions...),
		Cause:       cause,
	}
}

// Classify maps an error to a Diagnosis. Status codes are checked before
// message substrings and the first matching kind wins.
func Classify(err error) *Diagnosis {
	if err == nil {
		return New(KindUnknown, nil)
	}

	var d *Diagnosis
	if errors.As(err, &d) {
		return New(d.Kind, d.Cause)
	}

	return New(kindOf(err), err)
}

func kindOf(err error) Kind {
	// Transport errors embed the request URL, which must not influence
	// substring matching.
	msg := err.Error()
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		msg = urlErr.Err.Error()
	}
	msg = strings.ToLower(msg)
	status := jenkins.StatusCode(err)

	// Client sentinels take precedence over message matching
	switch {
	case errors.Is(err, jenkins.ErrNotJSON):
		return KindUnknown
	case errors.Is(err, jenkins.ErrForeignHost), errors.Is(err, jenkins.ErrInvalidMethod):
		return KindInvalidParams
	}

	switch {
	case errors.Is(err, syscall.ECONNREFUSED),
		strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "connect econnrefused"):
		return KindConnection
	case status == http.StatusUnauthorized, strings.Contains(msg, "unauthorized"):
		return KindAuthentication
	case status == http.StatusNotFound, strings.Contains(msg, "not found"):
		return KindNotFound
	case status == http.StatusForbidden, strings.Contains(msg, "forbidden"):
		return KindPermission
	case status == http.StatusBadRequest,
		strings.Contains(msg, "invalid"),
		strings.Contains(msg, "bad request"):
		return KindInvalidParams
	default:
		return KindUnknown
	}
}
