package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// dotenvFile is loaded, if present, before the environment is read.
// Variables already set in the process environment win.
var dotenvFile = ".env"

// lookupEnv is a seam for tests.
var lookupEnv = os.LookupEnv

// parseEnv overlays config with environment variables:
//
//	JWT_SECRET, GOOGLE_STREETVIEW_KEY, DATABASE_DSN, HTTP_ADDR, GRPC_ADDR,
//	IMAGE_BACKEND, CACHE_DIR, LOG_LEVEL, SEED_LOCATIONS
func parseEnv(config *Config) {
	if err := godotenv.Load(dotenvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	envString(&config.SecretKey, "JWT_SECRET")
	envString(&config.StreetViewAPIKey, "GOOGLE_STREETVIEW_KEY")
	envString(&config.DatabaseDSN, "DATABASE_DSN")
	envString(&config.EndpointAddrHTTP, "HTTP_ADDR")
	envString(&config.EndpointAddrGRPC, "GRPC_ADDR")
	envString(&config.ImageBackend, "IMAGE_BACKEND")
	envString(&config.CacheDir, "CACHE_DIR")
	envString(&config.LogLevel, "LOG_LEVEL")

	if v, ok := lookupEnv("SEED_LOCATIONS"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(err)
		}
		config.SeedLocations = b
	}
}

func envString(dst *string, key string) {
	if v, ok := lookupEnv(key); ok && v != "" {
		*dst = v
	}
}
