// Package config resolves the client's runtime settings from the
// environment, with an optional .env file for local development.
package config

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything main needs to wire the client together.
type Config struct {
	// BaseURL is the marketplace API root, without a trailing slash.
	BaseURL string

	// StateFile is where the file-backed store keeps local state. Ignored
	// when RedisAddr is set.
	StateFile string

	// RedisAddr switches local state to a redis backend when non-empty.
	RedisAddr     string
	RedisPassword string

	// CallbackAddr is the bind address for the payment callback listener.
	CallbackAddr string

	// HTTPTimeout bounds every API round trip, including the retried one.
	HTTPTimeout time.Duration
}

// Load reads configuration from the environment. A .env file in the
// working directory is honored when present.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Could not load .env file: %v", err)
		}
	}

	return Config{
		BaseURL:       getEnv("MARKETHUB_BASE_URL", "https://mmustmkt-hub.onrender.com/api"),
		StateFile:     getEnv("MARKETHUB_STATE_FILE", defaultStateFile()),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		CallbackAddr:  getEnv("MARKETHUB_CALLBACK_ADDR", "127.0.0.1:0"),
		HTTPTimeout:   getDuration("MARKETHUB_HTTP_TIMEOUT", 30*time.Second),
	}
}

func defaultStateFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "markethub-state.json"
	}
	return filepath.Join(home, ".markethub", "state.json")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Invalid %s value %q, using %s", key, v, defaultValue)
		return defaultValue
	}
	return d
}
