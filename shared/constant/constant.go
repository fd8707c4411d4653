package constant

import "time"

// contextKey keeps values set by this module apart from other packages.
type contextKey string

const (
	ContextKeyUserID contextKey = "user_id"

	// ContextGuest is recorded as the actor when a request carries no user.
	ContextGuest = "guest"
)

const (
	RequestParamID     = "id"
	RequestParamSearch = "search"
)

// Audit columns shared by every table.
const (
	FieldModifiedAt = "modified_at"
	FieldModifiedBy = "modified_by"
)

// Postgres SQLSTATE codes the services translate into client errors.
const (
	PqErrorCodeUniqueViolation = "23505"
	PqErrorCodeCheckViolation  = "23514"
)

const (
	DateFormat     = time.RFC3339
	CalendarFormat = time.DateOnly
)

const (
	OtelHandlerScopeName    = "handler"
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelEventScopeName      = "event"

	OtelQueryAttributeKey = "query"
)

const (
	RequestHeaderAccept             = "Accept"
	RequestHeaderContentType        = "Content-Type"
	RequestHeaderUserAgent          = "User-Agent"
	RequestHeaderRequestID          = "X-Request-ID"
	RequestHeaderForwardedFor       = "X-Forwarded-For"
	RequestHeaderRealIP             = "X-Real-IP"
	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-RateLimit-Window"

	ContentTypeJSON = "application/json"
)

const (
	ResponseStatusHealthy             = "all good"
	ResponseErrorUnhealthy            = "SERVER UNHEALTHY"
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
	ResponseErrorInternal             = "internal server error"
)

// NonFieldErrors keys validation messages that concern the whole payload.
const NonFieldErrors = "non_field_errors"

const (
	ServerEnvDevelopment = "development"

	Asterix = "*"
)
