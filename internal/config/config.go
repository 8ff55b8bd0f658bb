package config

import (
	"os"
	"strconv"
)

// Data provider modes. In local mode the service owns its database; in remote
// mode data operations are proxied to an upstream API exposing the same
// resource paths.
const (
	ProviderLocal  = "local"
	ProviderRemote = "remote"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort  string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	JWTSecret   string
	SwaggerHost string

	// DataProvider selects where data operations execute, once at startup.
	DataProvider   string
	RemoteAPIBase  string
	RemoteAPIToken string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		MySQLDSN:       getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/practicas?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		RedisPass:      os.Getenv("REDIS_PASSWORD"),
		JWTSecret:      getEnv("JWT_SECRET", "change-me"),
		SwaggerHost:    os.Getenv("SWAGGER_HOST"),
		DataProvider:   getEnv("DATA_PROVIDER", ProviderLocal),
		RemoteAPIBase:  getEnv("REMOTE_API_BASE", "http://localhost:8000/api"),
		RemoteAPIToken: os.Getenv("REMOTE_API_TOKEN"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
