package handlers

const (
	// PlayerTokenHeader carries a freshly issued token for non-browser clients
	PlayerTokenHeader = "X-Player-Token"
	// AdminKeyHeader carries the operator key for admin routes
	AdminKeyHeader = "X-Admin-Key"

	maxBodyBytes        = 1 << 20
	maxCatalogBodyBytes = 32 << 20
	defaultLeaderboard  = 10
	maxLeaderboard      = 100

	ErrInvalidRequestBody  = "Invalid request body"
	ErrUnauthorized        = "Unauthorized"
	ErrTooManyRequests     = "Too many requests"
	ErrInternalServerError = "Internal server error"
)
