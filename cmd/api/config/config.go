package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	ConfigDir       string
	DockerDataFile  string
	ContainersFile  string
	WorkersFile     string
	JwtSecret       string
	CollectInterval time.Duration
	OtelEnabled     bool
	OtelEndpoint    string
	OtelServiceName string
	OtelInsecure    bool
}

// Load loads configuration from environment variables
// Automatically loads .env file if present
func Load() *Config {
	// Try to load .env file (fail silently if not present)
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		ConfigDir:       getEnv("CONFIG_DIR", "/usr/local/submitty/config"),
		DockerDataFile:  getEnv("DOCKER_DATA_FILE", "docker_data.json"),
		ContainersFile:  getEnv("CONTAINERS_FILE", "autograding_containers.json"),
		WorkersFile:     getEnv("WORKERS_FILE", "autograding_workers.json"),
		JwtSecret:       getEnv("JWT_SECRET", ""),
		CollectInterval: getEnvDuration("COLLECT_INTERVAL", 5*time.Minute),
		OtelEnabled:     getEnvBool("OTEL_ENABLED", false),
		OtelEndpoint:    getEnv("OTEL_ENDPOINT", "127.0.0.1:4317"),
		OtelServiceName: getEnv("OTEL_SERVICE_NAME", "dockerdash"),
		OtelInsecure:    getEnvBool("OTEL_INSECURE", true),
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
