package config

import "os"

var lookupEnv = os.LookupEnv

// parseEnv reads BACKEND_URL, the server base URL.
func parseEnv(cfg *Config) {
	if v, ok := lookupEnv("BACKEND_URL"); ok && v != "" {
		cfg.ServerURL = v
	}
}
