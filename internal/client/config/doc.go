// Package config loads runtime configuration for the story client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c / -config, or $STORYKEEPER_CONFIG.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string     base URL of the story API
//	-d string     path of the local SQLite database
//	-t duration   timeout of one API request (e.g. 15s)
//	-i int        online status check interval (seconds)
//	-g            allow guest submissions when signed out
//	-l string     log level: debug, info, warn or error
//	-k string     comma-separated response keys holding the story list
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "3s" or
// integer nanoseconds:
//
//	{
//	  "api_base_url": "https://story-api.dicoding.dev/v1",
//	  "database_path": "stories.db",
//	  "request_timeout": "15s",
//	  "probe_timeout": "2s",
//	  "online_check_interval": "3s",
//	  "story_list_keys": ["listStory", "stories"],
//	  "guest_submissions": false,
//	  "log_level": "info"
//	}
//
// The resulting Config is validated before it is returned.
package config
