// Package constants provides shared constants used throughout the orgmap
// codebase: timeouts, batching limits, and file permissions that should stay
// consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application.
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to
	// collaborator endpoints.
	DefaultHTTPTimeout = 30 * time.Second

	// LookupTimeout is the default timeout for one full lookup request.
	LookupTimeout = 2 * time.Minute
)

// Batching limits.
const (
	// MaxEntityBatch is the maximum number of entity ids per knowledge
	// graph fetch, matching the upstream API's per-request cap.
	MaxEntityBatch = 50
)

// File permission constants define standard Unix file permissions.
const (
	// FilePermissions is the default permission for created files (rw-r--r--).
	FilePermissions = 0644
)

// UserAgent identifies orgmap to collaborator endpoints that require a
// descriptive agent string.
const UserAgent = "orgmap/1.0 (+https://github.com/agentstation/orgmap)"
