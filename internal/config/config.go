package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server  ServerConfig
	Worker  WorkerConfig
	NeoWs   NeoWsConfig
	DB      DatabaseConfig
	API     APIConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type WorkerConfig struct {
	Count      int
	BufferSize int
}

type NeoWsConfig struct {
	Enabled      bool
	URL          string
	APIKey       string
	PollInterval time.Duration
}

type DatabaseConfig struct {
	Path string
}

type APIConfig struct {
	RateLimitRPS   int
	BatchMaxInputs int
}

type LoggingConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "localhost"),
			Port: getEnvInt("SERVER_PORT", 8080),
		},
		Worker: WorkerConfig{
			Count:      getEnvInt("WORKER_COUNT", 2),
			BufferSize: getEnvInt("WORKER_BUFFER_SIZE", 20),
		},
		NeoWs: NeoWsConfig{
			Enabled:      getEnvBool("NEOWS_ENABLED", false),
			URL:          getEnv("NEOWS_URL", "https://api.nasa.gov/neo/rest/v1/feed"),
			APIKey:       getEnv("NEOWS_API_KEY", "DEMO_KEY"),
			PollInterval: getEnvDuration("NEOWS_POLL_INTERVAL", 6*time.Hour),
		},
		DB: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/impact-sim.db"),
		},
		API: APIConfig{
			RateLimitRPS:   getEnvInt("RATE_LIMIT_RPS", 10),
			BatchMaxInputs: getEnvInt("BATCH_MAX_INPUTS", 50),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	if c.Worker.Count < 1 {
		return fmt.Errorf("worker count must be at least 1")
	}
	if c.API.RateLimitRPS < 1 {
		return fmt.Errorf("rate limit must be at least 1 req/s")
	}
	if c.API.BatchMaxInputs < 1 {
		return fmt.Errorf("batch max inputs must be at least 1")
	}
	if c.NeoWs.Enabled && c.NeoWs.PollInterval < time.Minute {
		return fmt.Errorf("NeoWs poll interval must be at least 1 minute")
	}

	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
