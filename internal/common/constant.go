// Package common contains shared constants and sentinel errors used across
// Street Smarts components.
package common

// AuthorizationHeaderName carries the bearer token on authenticated requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token in the Authorization header value.
const BearerPrefix = "Bearer "

// RequestIDHeaderName is echoed back on every HTTP response.
const RequestIDHeaderName = "X-Request-ID"

// TokenType is reported to clients alongside the access token.
const TokenType = "bearer"
