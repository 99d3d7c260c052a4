package constants

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Gin context keys set by the auth middleware.
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"
)

const HeaderRequestID = "X-Request-ID"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	TableSubscriptions          = "subscriptions"
	TableUsageLogs              = "usage_logs"
	TableFeatureCosts           = "feature_costs"
	TableBrandProfiles          = "brand_profiles"
	TableGeneratedContents      = "generated_contents"
	TableProcessedBillingEvents = "processed_billing_events"
)

// Public id prefixes.
const (
	PrefixBrandProfile = "bp"
	PrefixContent      = "gc"
)
