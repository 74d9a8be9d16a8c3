// Package cli provides the interactive Street Smarts terminal client.
//
// It wires configuration, the HTTP API client, the local game history and an
// interactive REPL. A background watcher polls the server's health endpoint
// and shows whether the server is reachable in the prompt.
//
// Key features:
//   - Register / Login / Logout
//   - Play a game of N rounds: each round prints a Street View link, reads a
//     "lat,lng" guess and shows the distance and points
//   - Final tally, top 10 leaderboard, own profile and local game history
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
