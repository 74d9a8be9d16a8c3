package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/streetsmarts/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   server base URL
//	-r int      rounds per game
//	-t int      request timeout in seconds
//	-g string   gRPC health endpoint address
//	-i int      online status check interval in seconds
//	-h string   local history database path
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-r", "-t", "-g", "-i", "-h"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "server base URL")
	fs.IntVar(&cfg.RoundsPerGame, "r", cfg.RoundsPerGame, "rounds per game")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.HealthAddr, "g", cfg.HealthAddr, "address:port of the gRPC health endpoint")
	interval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online status check interval (in seconds)")
	fs.StringVar(&cfg.HistoryDSN, "h", cfg.HistoryDSN, "local game history database")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	cfg.OnlineCheckInterval = time.Duration(*interval) * time.Second
}
