package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/storykeeper/internal/flagx"
	"github.com/dmitrijs2005/storykeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer and
// zero values mean "not set" and leave the current value alone.
type JsonConfig struct {
	APIBaseURL          string         `json:"api_base_url"`
	DatabasePath        string         `json:"database_path"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	ProbeTimeout        timex.Duration `json:"probe_timeout"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	StoryListKeys       []string       `json:"story_list_keys"`
	GuestSubmissions    *bool          `json:"guest_submissions"`
	LogLevel            string         `json:"log_level"`
}

// parseJson overlays cfg with the JSON file named by -c / -config (or the
// environment). No file means nothing to do.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	jc.apply(cfg)
	return nil
}

func (jc JsonConfig) apply(cfg *Config) {
	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.ProbeTimeout.Duration != 0 {
		cfg.ProbeTimeout = jc.ProbeTimeout.Duration
	}
	if jc.OnlineCheckInterval.Duration != 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if len(jc.StoryListKeys) > 0 {
		cfg.StoryListKeys = jc.StoryListKeys
	}
	if jc.GuestSubmissions != nil {
		cfg.GuestSubmissions = *jc.GuestSubmissions
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
