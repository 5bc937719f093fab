package config

import (
	"flag"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/giftkeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-s string   storage driver
//	-d string   storage DSN
//	-i int      expiration check interval in seconds
//	-l string   log level
//	-f string   log file
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, so the config-file flag does not trip it.
func parseFlags(cfg *Config) error {
	args := flagx.FilterArgs(os.Args[1:], []string{"-s", "-d", "-i", "-l", "-f"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.StorageDriver, "s", cfg.StorageDriver, "storage driver (sqlite, postgres, redis, memory)")
	fs.StringVar(&cfg.StorageDSN, "d", cfg.StorageDSN, "storage DSN")
	interval := fs.Int("i", int(cfg.ExpirationCheckInterval.Seconds()), "expiration check interval (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFile, "f", cfg.LogFile, "log file (empty for stderr)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// only an explicit -i overrides; the default would truncate sub-second values
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "i" {
			cfg.ExpirationCheckInterval = time.Duration(*interval) * time.Second
		}
	})
	return nil
}
