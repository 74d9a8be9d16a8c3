// Package config loads runtime configuration for the Street Smarts client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. BACKEND_URL environment variable.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   server base URL
//	-r int      rounds per game
//	-t int      request timeout (seconds)
//	-g string   gRPC health endpoint address
//	-i int      online status check interval (seconds)
//	-h string   local history database path
//
// # JSON schema
//
//	{
//	  "server_url": "http://localhost:8000",
//	  "rounds_per_game": 5,
//	  "request_timeout": "30s",
//	  "health_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "history_dsn": "streetsmarts.db"
//	}
package config
