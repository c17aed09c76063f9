package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	ServerAddress   string        `env:"SERVER_ADDRESS"`
	Port            string        `env:"PORT"`
	SecretKey       string        `env:"SECRET_KEY"`
	DatabaseDSN     string        `env:"DATABASE_DSN"`
	FileStoragePath string        `env:"FILE_STORAGE_PATH"`
	RedisAddr       string        `env:"REDIS_ADDR"`
	RedisPassword   string        `env:"REDIS_PASSWORD"`
	CodeTTL         time.Duration `env:"CODE_TTL" envDefault:"5m"`
	SendCodeRPS     float64       `env:"SEND_CODE_RPS" envDefault:"0.2"`
	SendCodeBurst   int           `env:"SEND_CODE_BURST" envDefault:"3"`
	Mail            MailConfig
}

type MailConfig struct {
	Username string `env:"QQ_EMAIL"`
	Password string `env:"QQ_PASSWORD"`
	Host     string `env:"SMTP_HOST" envDefault:"smtp.qq.com"`
	Port     int    `env:"SMTP_PORT" envDefault:"465"`
}

// Enabled reports whether SMTP credentials are configured.
func (m MailConfig) Enabled() bool {
	return m.Username != "" && m.Password != ""
}

type ClientConfig struct {
	BaseURL string `env:"BASE_URL"`
}

func ParseFlags() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	envServerAddress := cfg.ServerAddress
	envSecretKey := cfg.SecretKey
	envDatabaseDSN := cfg.DatabaseDSN
	envFileStoragePath := cfg.FileStoragePath
	envRedisAddr := cfg.RedisAddr

	flag.StringVar(&cfg.ServerAddress, "a", "", "Address of the server")
	flag.StringVar(&cfg.SecretKey, "s", "", "Secret used to sign session cookies")
	flag.StringVar(&cfg.DatabaseDSN, "d", "", "PostgreSQL DSN for submissions")
	flag.StringVar(&cfg.FileStoragePath, "f", "", "JSON file for submissions when no database is set")
	flag.StringVar(&cfg.RedisAddr, "r", "", "Redis address for sessions")

	flag.Parse()

	if envServerAddress != "" {
		cfg.ServerAddress = envServerAddress
	}
	if envSecretKey != "" {
		cfg.SecretKey = envSecretKey
	}
	if envDatabaseDSN != "" {
		cfg.DatabaseDSN = envDatabaseDSN
	}
	if envFileStoragePath != "" {
		cfg.FileStoragePath = envFileStoragePath
	}
	if envRedisAddr != "" {
		cfg.RedisAddr = envRedisAddr
	}

	cfg.applyDefaultValues()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.ServerAddress == "" {
		return fmt.Errorf("server address cannot be empty")
	}
	if c.SecretKey == "" {
		return fmt.Errorf("secret key cannot be empty")
	}
	if c.CodeTTL <= 0 {
		return fmt.Errorf("code ttl must be positive")
	}
	if c.SendCodeRPS <= 0 || c.SendCodeBurst <= 0 {
		return fmt.Errorf("send code rate limit must be positive")
	}
	return nil
}

func (c *Config) applyDefaultValues() {
	if c.ServerAddress == "" {
		c.ServerAddress = getDefaultServerAddress(c.Port)
	}

	if c.SecretKey == "" {
		c.SecretKey = getDefaultSecretKey()
	}
}

func ParseClientFlags() (*ClientConfig, error) {
	cfg := &ClientConfig{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	envBaseURL := cfg.BaseURL

	flag.StringVar(&cfg.BaseURL, "b", "", "Base URL of the collector server")

	flag.Parse()

	if envBaseURL != "" {
		cfg.BaseURL = envBaseURL
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = getDefaultBaseURL()
	}

	return cfg, nil
}

// EnvStatus reports, without values, which deployment variables are set.
func EnvStatus() map[string]string {
	status := make(map[string]string)
	for _, name := range []string{"QQ_EMAIL", "QQ_PASSWORD", "SECRET_KEY", "DATABASE_DSN", "REDIS_ADDR"} {
		if os.Getenv(name) != "" {
			status[name] = "Present"
		} else {
			status[name] = "Missing"
		}
	}
	return status
}

func getDefaultServerAddress(port string) string {
	if port != "" {
		return "0.0.0.0:" + port
	}
	return "localhost:8080"
}

func getDefaultSecretKey() string {
	return "your-default-secret-key"
}

func getDefaultBaseURL() string {
	return "http://localhost:8080"
}
