package config

import (
	"os"
	"time"
)

type Config struct {
	Server   ServerConfig
	Backend  BackendConfig
	RabbitMQ RabbitMQConfig
	JWT      JWTConfig
}

type ServerConfig struct {
	Port string
}

type BackendConfig struct {
	// BaseURL of the externally-owned REST API that holds all state.
	BaseURL string
	// ServiceToken authenticates server-initiated calls (audit forwarding)
	// that happen outside any user request.
	ServiceToken string
	Timeout      time.Duration
}

type RabbitMQConfig struct {
	// URL is empty when the audit pipeline is disabled.
	URL string
}

type JWTConfig struct {
	SecretKey string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Backend: BackendConfig{
			BaseURL:      getEnv("BACKEND_URL", "http://localhost:8000"),
			ServiceToken: os.Getenv("BACKEND_SERVICE_TOKEN"),
			Timeout:      getEnvDuration("BACKEND_TIMEOUT", 15*time.Second),
		},
		RabbitMQ: RabbitMQConfig{
			URL: os.Getenv("RABBITMQ_URL"),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET_KEY", "your-secret-key-change-in-production"),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
