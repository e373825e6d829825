package config

import (
	"errors"
	"flag"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/storykeeper/internal/flagx"
)

var knownFlags = map[string]bool{
	"-a": true,
	"-d": true,
	"-t": true,
	"-i": true,
	"-g": false,
	"-l": true,
	"-k": true,
}

// parseFlags populates selected Config fields from command-line flags.
// Only flags listed in knownFlags are looked at, so the config file flags and
// anything else on the command line are ignored here.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, knownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the story API")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local database")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "timeout of one API request")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.BoolVar(&cfg.GuestSubmissions, "g", cfg.GuestSubmissions, "allow guest submissions")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.Func("k", "comma-separated response keys holding the story list", func(v string) error {
		keys := splitList(v)
		if len(keys) == 0 {
			return errors.New("no story list keys given")
		}
		cfg.StoryListKeys = keys
		return nil
	})

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
