// Package flagx holds small helpers for sharing os.Args between independent
// flag sets.
package flagx

import (
	"flag"
	"io"
	"os"
	"strings"
)

// FilterArgs keeps only the allowed flags (and their values) from args,
// preserving order. A flag may carry its value inline (-d=wallet.db) or as
// the next argument (-d wallet.db); the next argument is taken as a value
// only when it does not start with a dash.
//
// The result is never nil.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, inline := strings.Cut(arg, "="); inline && strings.HasPrefix(arg, "-") {
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; !ok {
			continue
		}
		filtered = append(filtered, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			i++
			filtered = append(filtered, args[i])
		}
	}

	return filtered
}

// ConfigEnv names the environment variable consulted when no config flag is
// given on the command line.
const ConfigEnv = "GIFTKEEPER_CONFIG"

// ConfigFileFlag extracts the config file path provided via the -c or
// -config flags. The file may be JSON or YAML; the caller decides by
// extension.
//
// Only these flags are parsed; other arguments are ignored, so the function
// can run before the application parses its own flags.
//
// If neither flag is present, the value of GIFTKEEPER_CONFIG is returned
// (possibly empty).
func ConfigFileFlag() string {
	var config string

	args := FilterArgs(os.Args[1:], []string{"-c", "-config"})

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&config, "config", "", "Path to config file (JSON or YAML)")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(args)

	if config == "" {
		config = os.Getenv(ConfigEnv)
	}
	return config
}
