package constants

// Context keys
const (
	ContextKeyUserID = "user_id"
)

// Validation limits
const (
	MinPasswordLength = 8
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// MaxClaimsPerTick bounds a single reminder drain so a pathological
// backlog cannot stall the tick indefinitely; the remainder is picked
// up on the next tick.
const MaxClaimsPerTick = 500
