package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "configs/config.yaml"

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr         string        `yaml:"addr" env:"SERVER_ADDR"`
		ReadTimeout  time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
		WriteTimeout time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
		IdleTimeout  time.Duration `yaml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT"`
	} `yaml:"server"`
	RateLimit struct {
		Capacity    int           `yaml:"capacity" env:"RATE_LIMIT_CAPACITY"`
		Refill      time.Duration `yaml:"refill" env:"RATE_LIMIT_REFILL"`
		CleanupCron string        `yaml:"cleanup_cron" env:"RATE_LIMIT_CLEANUP_CRON"`
	} `yaml:"rate_limit"`
	Log struct {
		Level    string `yaml:"level" env:"LOG_LEVEL"`
		Encoding string `yaml:"encoding" env:"LOG_ENCODING"`
	} `yaml:"log"`
	Cache struct {
		RedisAddr     string        `yaml:"redis_addr" env:"REDIS_ADDR"`
		RedisPassword string        `yaml:"redis_password" env:"REDIS_PASSWORD"`
		RedisDB       int           `yaml:"redis_db" env:"REDIS_DB"`
		TTL           time.Duration `yaml:"ttl" env:"CACHE_TTL"`
		SweepCron     string        `yaml:"sweep_cron" env:"CACHE_SWEEP_CRON"`
	} `yaml:"cache"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path" env:"SQLITE_PATH"`
	} `yaml:"database"`
	AMQP struct {
		URL        string `yaml:"url" env:"AMQP_URL"`
		Exchange   string `yaml:"exchange" env:"AMQP_EXCHANGE"`
		RoutingKey string `yaml:"routing_key" env:"AMQP_ROUTING_KEY"`
	} `yaml:"amqp"`
	Formatter struct {
		Locale   string `yaml:"locale" env:"FORMAT_LOCALE"`
		Currency string `yaml:"currency" env:"FORMAT_CURRENCY"`
	} `yaml:"formatter"`
	Scenarios struct {
		Workers int `yaml:"workers" env:"SCENARIO_WORKERS"`
	} `yaml:"scenarios"`
	AI struct {
		APIKey string `yaml:"-" env:"OPENAI_API_KEY"`
		APIURL string `yaml:"api_url" env:"OPENAI_API_URL"`
		Model  string `yaml:"model" env:"OPENAI_MODEL"`
	} `yaml:"ai"`
}

// Load reads a .env file if present, then the YAML file at path, then
// environment overrides, and finally fills defaults. A missing YAML file is
// not an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60 * time.Second
	}
	if c.RateLimit.Capacity == 0 {
		c.RateLimit.Capacity = 30
	}
	if c.RateLimit.Refill == 0 {
		c.RateLimit.Refill = time.Minute
	}
	if c.RateLimit.CleanupCron == "" {
		c.RateLimit.CleanupCron = "@every 30m"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Encoding == "" {
		c.Log.Encoding = "json"
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = time.Hour
	}
	if c.Cache.SweepCron == "" {
		c.Cache.SweepCron = "@every 10m"
	}
	if c.AMQP.Exchange == "" {
		c.AMQP.Exchange = "investment"
	}
	if c.AMQP.RoutingKey == "" {
		c.AMQP.RoutingKey = "projection.computed"
	}
	if c.Formatter.Locale == "" {
		c.Formatter.Locale = "en-US"
	}
	if c.Formatter.Currency == "" {
		c.Formatter.Currency = "USD"
	}
	if c.Scenarios.Workers == 0 {
		c.Scenarios.Workers = 4
	}
	if c.AI.APIURL == "" {
		c.AI.APIURL = "https://api.openai.com/v1/chat/completions"
	}
	if c.AI.Model == "" {
		c.AI.Model = "gpt-4o-mini"
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var problems []string

	if c.Server.Addr == "" {
		problems = append(problems, "server.addr is required")
	}
	if c.RateLimit.Capacity < 1 {
		problems = append(problems, fmt.Sprintf("rate_limit.capacity %d: must be at least 1", c.RateLimit.Capacity))
	}
	if c.RateLimit.Refill < time.Second {
		problems = append(problems, fmt.Sprintf("rate_limit.refill %v: must be at least 1s", c.RateLimit.Refill))
	}
	if c.Cache.TTL < 0 {
		problems = append(problems, "cache.ttl must not be negative")
	}
	if c.AMQP.URL != "" {
		if u, err := url.Parse(c.AMQP.URL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid amqp.url: %v", err))
		} else if u.Scheme != "amqp" && u.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf("invalid amqp.url scheme %q: must be amqp or amqps", u.Scheme))
		}
	}
	if c.Scenarios.Workers < 1 || c.Scenarios.Workers > 64 {
		problems = append(problems, fmt.Sprintf("scenarios.workers %d: must be between 1 and 64", c.Scenarios.Workers))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}
