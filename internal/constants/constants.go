package constants

// Context keys
const (
	ContextKeyUserID = "user_id"
	ContextKeyUser   = "user"
	ContextKeyID     = "resource_id"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Field limits
const (
	MaxTitleLength    = 255
	MaxUsernameLength = 150
	MaxPasswordBytes  = 72
)

const MaxAIGeneratedTasks = 20
