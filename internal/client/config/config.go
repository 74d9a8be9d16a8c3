package config

import "time"

// Config holds runtime settings for the Street Smarts terminal client.
//
// Fields:
//   - ServerURL: base URL of the game server, e.g. "http://localhost:8000".
//   - RoundsPerGame: rounds in one game before the tally is shown.
//   - RequestTimeout: bound on a single API call.
//   - HealthAddr: host:port of the server's gRPC health endpoint.
//   - OnlineCheckInterval: how often the health endpoint is polled.
//   - HistoryDSN: path of the local SQLite game history.
type Config struct {
	ServerURL           string
	RoundsPerGame       int
	RequestTimeout      time.Duration
	HealthAddr          string
	OnlineCheckInterval time.Duration
	HistoryDSN          string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:8000"
	c.RoundsPerGame = 5
	c.RequestTimeout = 30 * time.Second
	c.HealthAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.HistoryDSN = "streetsmarts.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), BACKEND_URL and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
