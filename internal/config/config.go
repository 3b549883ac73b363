package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	pkglogger "github.com/evigdia/evigdia-backend/pkg/logger"
)

// Config is the full application configuration
type Config struct {
	Server struct {
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Site struct {
		// BaseURL is used to build permalinks in notifications
		BaseURL string `yaml:"base_url"`
	} `yaml:"site"`

	Database struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		Params   string `yaml:"params"`
	} `yaml:"database"`

	Redis struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		PoolSize int    `yaml:"pool_size"`
	} `yaml:"redis"`

	Elasticsearch struct {
		Enabled   bool     `yaml:"enabled"`
		Addresses []string `yaml:"addresses"`
		Username  string   `yaml:"username"`
		Password  string   `yaml:"password"`
	} `yaml:"elasticsearch"`

	JWT struct {
		Secret    string `yaml:"secret"`
		ExpiresIn int    `yaml:"expires_in"` // minutes
		RefreshIn int    `yaml:"refresh_in"` // minutes
	} `yaml:"jwt"`

	Desktop struct {
		// APIKey authenticates desktop app management endpoints
		APIKey string `yaml:"api_key"`
	} `yaml:"desktop"`

	CORS struct {
		AllowOrigins string `yaml:"allow_origins"`
	} `yaml:"cors"`

	Scheduler struct {
		Enabled bool `yaml:"enabled"`
		// PublishSpec is the cron spec for the scheduled-post sweep
		PublishSpec string `yaml:"publish_spec"`
	} `yaml:"scheduler"`
}

// Load reads a YAML config file, expanding ${ENV_VAR} references
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	expanded := os.ExpandEnv(string(raw))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Env == "" {
		c.Server.Env = os.Getenv("APP_ENV")
	}
	if c.Server.Env == "" {
		c.Server.Env = "local"
	}
	if c.Site.BaseURL == "" {
		c.Site.BaseURL = "https://evigdia.com"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 3306
	}
	if c.Database.Params == "" {
		c.Database.Params = "charset=utf8mb4&parseTime=True&loc=Local"
	}
	if c.Redis.Port == 0 {
		c.Redis.Port = 6379
	}
	if c.Redis.PoolSize == 0 {
		c.Redis.PoolSize = 10
	}
	if c.JWT.ExpiresIn == 0 {
		c.JWT.ExpiresIn = 30
	}
	if c.JWT.RefreshIn == 0 {
		c.JWT.RefreshIn = 60 * 24 * 14
	}
	if c.Scheduler.PublishSpec == "" {
		c.Scheduler.PublishSpec = "@every 1m"
	}
}

// IsDevelopment reports whether the server runs in a development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "local" || c.Server.Env == "development" || c.Server.Env == "dev"
}

// DSN builds the MySQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		c.Database.User, c.Database.Password,
		c.Database.Host, c.Database.Port,
		c.Database.Name, c.Database.Params,
	)
}

// LogResolved logs the effective configuration without secrets
func LogResolved(c *Config) {
	pkglogger.Info("config: env=%s port=%d db=%s@%s:%d/%s redis=%s:%d es=%v",
		c.Server.Env, c.Server.Port,
		c.Database.User, c.Database.Host, c.Database.Port, c.Database.Name,
		c.Redis.Host, c.Redis.Port,
		c.Elasticsearch.Enabled,
	)
}
