package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/streetsmarts/internal/flagx"
	"github.com/dmitrijs2005/streetsmarts/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations accept
// "10s"-style strings or integer nanoseconds. Pointer fields distinguish
// "absent" from the zero value so a partial file only overrides what it sets.
type JsonConfig struct {
	EndpointAddrHTTP            *string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC            *string         `json:"endpoint_addr_grpc"`
	DatabaseDSN                 *string         `json:"database_dsn"`
	SecretKey                   *string         `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	StreetViewAPIKey            *string         `json:"streetview_api_key"`
	StreetViewBaseURL           *string         `json:"streetview_base_url"`
	StreetViewImageSize         *string         `json:"streetview_image_size"`
	ImageFetchTimeout           *timex.Duration `json:"image_fetch_timeout"`
	ImageBackend                *string         `json:"image_backend"`
	CacheDir                    *string         `json:"cache_dir"`
	S3RootUser                  *string         `json:"s3_root_user"`
	S3RootPassword              *string         `json:"s3_root_password"`
	S3Bucket                    *string         `json:"s3_bucket"`
	S3Region                    *string         `json:"s3_region"`
	S3BaseEndpoint              *string         `json:"s3_base_endpoint"`
	LogLevel                    *string         `json:"log_level"`
	SeedLocations               *bool           `json:"seed_locations"`
}

// parseJson overlays config with the file named by -c/-config, if any.
// Unreadable or invalid files panic; the caller is main.
func parseJson(config *Config) {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var c JsonConfig
	if err := json.Unmarshal(data, &c); err != nil {
		panic(err)
	}
	c.apply(config)
}

func (c *JsonConfig) apply(config *Config) {
	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	setString(&config.StreetViewAPIKey, c.StreetViewAPIKey)
	setString(&config.StreetViewBaseURL, c.StreetViewBaseURL)
	setString(&config.StreetViewImageSize, c.StreetViewImageSize)
	if c.ImageFetchTimeout != nil {
		config.ImageFetchTimeout = c.ImageFetchTimeout.Duration
	}
	setString(&config.ImageBackend, c.ImageBackend)
	setString(&config.CacheDir, c.CacheDir)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.LogLevel, c.LogLevel)
	if c.SeedLocations != nil {
		config.SeedLocations = *c.SeedLocations
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
