package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds runtime settings for the story CLI.
type Config struct {
	APIBaseURL          string        `validate:"required,url"`
	DatabasePath        string        `validate:"required"`
	RequestTimeout      time.Duration `validate:"gt=0"`
	ProbeTimeout        time.Duration `validate:"gt=0"`
	OnlineCheckInterval time.Duration `validate:"gt=0"`
	StoryListKeys       []string      `validate:"min=1,dive,required"`
	GuestSubmissions    bool
	LogLevel            string `validate:"oneof=debug info warn error"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "https://story-api.dicoding.dev/v1"
	c.DatabasePath = "stories.db"
	c.RequestTimeout = 15 * time.Second
	c.ProbeTimeout = 2 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
	c.StoryListKeys = []string{"listStory", "stories"}
	c.GuestSubmissions = false
	c.LogLevel = "info"
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LoadConfig builds a Config from defaults, then the JSON file (if any), then
// flags found in args. Later sources take precedence over earlier ones.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
