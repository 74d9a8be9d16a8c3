package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/streetsmarts/internal/flagx"
	"github.com/dmitrijs2005/streetsmarts/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent
// fields leave the current value alone.
type JsonConfig struct {
	ServerURL      *string         `json:"server_url"`
	RoundsPerGame  *int            `json:"rounds_per_game"`
	RequestTimeout *timex.Duration `json:"request_timeout"`

	HealthAddr          *string         `json:"health_addr"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	HistoryDSN          *string         `json:"history_dsn"`
}

// parseJson overlays cfg with the file named by -c/-config, if any. It
// panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != nil {
		cfg.ServerURL = *jc.ServerURL
	}
	if jc.RoundsPerGame != nil {
		cfg.RoundsPerGame = *jc.RoundsPerGame
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.HealthAddr != nil {
		cfg.HealthAddr = *jc.HealthAddr
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.HistoryDSN != nil {
		cfg.HistoryDSN = *jc.HistoryDSN
	}
}
