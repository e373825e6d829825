// Package flagx helps several independent flag sets share one command line.
// Each loader picks only the flags it knows about and parses them with its
// own flag.FlagSet, so unknown flags never abort another component.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// ConfigEnvVar names the environment variable consulted when no -c/-config
// flag is present.
const ConfigEnvVar = "STORYKEEPER_CONFIG"

// FilterArgs returns the subset of args that belongs to the flags listed in
// allowed. The map value tells whether the flag takes a value: value flags
// keep the following argument when it does not look like a flag, boolean
// flags never consume the next argument.
//
// Supported formats:
//
//	-c conf.json
//	--config=conf.json
//	-g            (boolean)
func FilterArgs(args []string, allowed map[string]bool) []string {
	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		takesValue, ok := allowed[arg]
		if !ok {
			continue
		}
		filtered = append(filtered, arg)
		if takesValue && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// ConfigPath extracts the JSON config path from -c / -config in args. When
// neither flag is present it falls back to $STORYKEEPER_CONFIG; an empty
// result means no file should be loaded.
func ConfigPath(args []string) string {
	var path string

	filtered := FilterArgs(args, map[string]bool{"-c": true, "-config": true, "--config": true})

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "Path to config file")
	fs.StringVar(&path, "c", "", "Path to config file (short)")
	_ = fs.Parse(filtered)

	if path == "" {
		path = os.Getenv(ConfigEnvVar)
	}
	return path
}
