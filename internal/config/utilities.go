package config

import (
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
)

// GetEnvOrDefault returns the value of an environment variable or a default value
func GetEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// ParseEnvInt returns an integer environment variable or a default value
func ParseEnvInt(key string, defaultValue int) int {
	val := GetEnvOrDefault(key, "")
	if val == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		log.Warn().Str("key", key).Str("value", val).Int("default", defaultValue).
			Msg("Invalid integer environment variable, using default")
		return defaultValue
	}

	return parsed
}

// ParseEnvFloat returns a float environment variable or a default value
func ParseEnvFloat(key string, defaultValue float64) float64 {
	val := GetEnvOrDefault(key, "")
	if val == "" {
		return defaultValue
	}

	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		log.Warn().Str("key", key).Str("value", val).Float64("default", defaultValue).
			Msg("Invalid float environment variable, using default")
		return defaultValue
	}

	return parsed
}

// ParseEnvBool returns a boolean environment variable or a default value
func ParseEnvBool(key string, defaultValue bool) bool {
	val := GetEnvOrDefault(key, "")
	if val == "" {
		return defaultValue
	}
	return val == "true" || val == "1"
}
