package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Skill    SkillConfig    `yaml:"skill"`
	Menu     MenuConfig     `yaml:"menu"`
	Locale   LocaleConfig   `yaml:"locale"`
	Pushover PushoverConfig `yaml:"pushover"`
	Events   EventsConfig   `yaml:"events"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
}

type SkillConfig struct {
	HTTPAddr  string `yaml:"http_addr"`
	AppID     string `yaml:"app_id"`
	AuthToken string `yaml:"auth_token"`
}

type MenuConfig struct {
	BaseURL   string `yaml:"base_url"`
	AuthToken string `yaml:"auth_token"`
	Timeout   string `yaml:"timeout"`
}

type LocaleConfig struct {
	Default string `yaml:"default"`
	Dir     string `yaml:"dir"`
}

type PushoverConfig struct {
	Token   string `yaml:"token"`
	UserKey string `yaml:"user_key"`
	Enabled bool   `yaml:"enabled"`
}

type EventsConfig struct {
	URL      string `yaml:"url"`
	Exchange string `yaml:"exchange"`
	Enabled  bool   `yaml:"enabled"`
}

type DatabaseConfig struct {
	URL     string `yaml:"url"`
	Enabled bool   `yaml:"enabled"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads the YAML file at path. Variables from a .env file next to the
// process, if any, are loaded first so the file can reference them.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.setDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// MenuTimeout is the parsed menu.timeout.
func (c *Config) MenuTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Menu.Timeout)
	return d
}

func (c *Config) setDefaults() {
	if c.Skill.HTTPAddr == "" {
		c.Skill.HTTPAddr = ":8080"
	}
	if c.Menu.BaseURL == "" {
		c.Menu.BaseURL = "https://api.studentenfutter-os.de"
	}
	if c.Menu.Timeout == "" {
		c.Menu.Timeout = "8s"
	}
	if c.Locale.Default == "" {
		c.Locale.Default = "en-US"
	}
	if c.Events.Exchange == "" {
		c.Events.Exchange = "studentenfutter.events"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

func (c *Config) validate() error {
	d, err := time.ParseDuration(c.Menu.Timeout)
	if err != nil {
		return fmt.Errorf("invalid menu.timeout %q: %w", c.Menu.Timeout, err)
	}
	if d <= 0 {
		return fmt.Errorf("menu.timeout must be positive, got %s", c.Menu.Timeout)
	}
	if c.Events.Enabled && c.Events.URL == "" {
		return fmt.Errorf("events.url is required when events are enabled")
	}
	if c.Database.Enabled && c.Database.URL == "" {
		return fmt.Errorf("database.url is required when the database is enabled")
	}
	return nil
}
