package constants

import "time"

// Context keys shared between middleware and handlers
const (
	ContextKeyUserID    = "user_id"
	ContextKeyEmail     = "email"
	ContextKeyClaims    = "token_claims"
	ContextKeyRequestID = "request_id"
	ContextKeyLogger    = "logger"
)

const (
	HeaderRequestID = "X-Request-ID"
	BearerPrefix    = "Bearer "
)

// DefaultTokenTTL is the lifetime of tokens issued at registration and login.
const DefaultTokenTTL = 12 * time.Hour

// DeadlineLayout is the date format produced by <input type="date">.
const DeadlineLayout = "2006-01-02"

// MaxGeneratedTaskDrafts caps how many AI task drafts are returned per request.
const MaxGeneratedTaskDrafts = 20

// MongoDB collection names
const (
	CollectionUsers    = "users"
	CollectionProjects = "projects"
	CollectionTasks    = "tasks"
)
