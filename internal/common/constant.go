// Package common contains shared constants and sentinel errors used across
// Recetario components.
package common

const (
	// AuthorizationHeader carries the bearer credential on API requests.
	AuthorizationHeader = "Authorization"
	// BearerPrefix precedes the token inside AuthorizationHeader.
	BearerPrefix = "Bearer "
	// RequestIDHeader correlates client requests with server log lines.
	RequestIDHeader = "X-Request-ID"
)

// BearerValue formats token as an Authorization header value.
func BearerValue(token string) string {
	return BearerPrefix + token
}
