package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	NATS     NATSConfig     `yaml:"nats"`
	Redis    RedisConfig    `yaml:"redis"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Engine   EngineConfig   `yaml:"engine"`
	Stats    StatsConfig    `yaml:"stats"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port        int    `yaml:"port"`
	MetricsPort int    `yaml:"metrics_port"`
	AdminToken  string `yaml:"admin_token"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type NATSConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	URL string `yaml:"url"`
}

type CatalogConfig struct {
	Path string `yaml:"path"` // optional YAML overlay for spec definitions
}

type EngineConfig struct {
	MaxAdvantages       int     `yaml:"max_advantages"`
	AdvantagePercentile float64 `yaml:"advantage_percentile"`
	WeaknessPercentile  float64 `yaml:"weakness_percentile"`
	AverageThreshold    float64 `yaml:"average_threshold"`
	MinBracketSize      int     `yaml:"min_bracket_size"`
}

type StatsConfig struct {
	RefreshIntervalMs int `yaml:"refresh_interval_ms"`
	CacheTTLMs        int `yaml:"cache_ttl_ms"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.Stats.RefreshIntervalMs) * time.Millisecond
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Stats.CacheTTLMs) * time.Millisecond
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        8700,
			MetricsPort: 8701,
		},
		NATS: NATSConfig{
			URL: "nats://localhost:4222",
		},
		Engine: EngineConfig{
			MaxAdvantages:       4,
			AdvantagePercentile: 20,
			WeaknessPercentile:  20,
			AverageThreshold:    15,
			MinBracketSize:      5,
		},
		Stats: StatsConfig{
			RefreshIntervalMs: 900000,  // 15 min
			CacheTTLMs:        3600000, // 1 hour
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("ERIDEHERO_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("ERIDEHERO_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("ERIDEHERO_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("ERIDEHERO_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("ERIDEHERO_NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("ERIDEHERO_REDIS_URL"); v != "" {
		cfg.Redis.URL = v
	}
	if v := os.Getenv("ERIDEHERO_CATALOG_PATH"); v != "" {
		cfg.Catalog.Path = v
	}
	if v := os.Getenv("ERIDEHERO_MAX_ADVANTAGES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Engine.MaxAdvantages = n
		}
	}
	if v := os.Getenv("ERIDEHERO_STATS_REFRESH_INTERVAL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Stats.RefreshIntervalMs = n
		}
	}
	if v := os.Getenv("ERIDEHERO_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
