package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/accountsvc/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-d string   primary store PostgreSQL DSN
//	-f string   legacy store PostgreSQL DSN
//	-r string   redis address (host:port)
//	-w string   redis password
//	-n int      redis database number
//	-s string   JWT HMAC secret key
//	-t int      cache entry TTL, seconds
//	-m bool     open the legacy-store migration window
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes using
//     flagx.FilterArgs, avoiding collisions with other components.
//   - The TTL flag is accepted as an integer in seconds and then converted
//     to a time.Duration value.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-f", "-r", "-w", "-n", "-s", "-t", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "primary database DSN")
	fs.StringVar(&config.FallbackDatabaseDSN, "f", config.FallbackDatabaseDSN, "legacy database DSN")
	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "redis address")
	fs.StringVar(&config.RedisPassword, "w", config.RedisPassword, "redis password")
	fs.IntVar(&config.RedisDB, "n", config.RedisDB, "redis database number")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	cacheTTL := fs.Int("t", int(config.CacheTTL.Seconds()), "cache_ttl (in seconds)")

	fs.BoolVar(&config.UseFallback, "m", config.UseFallback, "enable legacy store fallback")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.CacheTTL = time.Duration(*cacheTTL) * time.Second
}
