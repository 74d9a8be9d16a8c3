// Package client contains the transport side of the Street Smarts terminal
// client.
//
// # Overview
//
//  1. The Client interface: Register, Login, Logout, RandomLocation,
//     SubmitGuess, Leaderboard, Me and Ping.
//  2. HTTPClient, its implementation over the server's JSON API. Login
//     stores the bearer token and every later call sends it. Ping uses the
//     server's gRPC health service.
//  3. InitDatabase and RunMigrations, which open the local SQLite game
//     history and apply its embedded goose migrations.
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable. Non-2xx answers are *APIError,
// whose message is the server's "detail" and which unwraps to the matching
// sentinel from internal/common (401 → ErrorUnauthorized, 404 →
// ErrorNotFound, 400/422 → ErrValidation, 5xx → ErrorInternal).
package client
