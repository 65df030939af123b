// Package jenkins provides a thin client for the Jenkins remote access API.
//
// The client carries a static Basic-Auth header built from a username and
// password (or API token) and issues exactly one HTTP request per call.
// There is no retry, pagination or caching layer; callers decide how to
// present failures.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := jenkins.NewClient(
//		"https://jenkins.example.com",
//		"user",
//		"api-token",
//		logger,
//		jenkins.WithInsecureSkipVerify(true),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Builds of a multibranch pipeline branch
//	resp, err := client.GetJSON(ctx, client.JobURL("platform", "api", "feature/login"))
//
// # URL building
//
// Job URLs are built from path segments, each escaped on its own, so a
// branch named "feature/login" becomes "job/feature%2Flogin" rather than two
// nested jobs.
//
// # Errors
//
// Non-2xx responses are returned as *APIError, which exposes the status
// code and body together with classification helpers:
//
//	var apiErr *jenkins.APIError
//	if errors.As(err, &apiErr) && apiErr.IsNotFound() {
//		// Handle missing job
//	}
package jenkins
