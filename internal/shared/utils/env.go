package utils

import (
	"os"
	"strconv"
	"time"
)

// GetEnv returns the value of the environment variable or the fallback when unset or empty
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

// GetEnvInt parses an integer variable, falling back on missing or malformed values
func GetEnvInt(key string, fallback int) int {
	value, err := strconv.Atoi(GetEnv(key, ""))
	if err != nil {
		return fallback
	}
	return value
}

func GetEnvFloat(key string, fallback float64) float64 {
	value, err := strconv.ParseFloat(GetEnv(key, ""), 64)
	if err != nil {
		return fallback
	}
	return value
}

func GetEnvBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(GetEnv(key, ""))
	if err != nil {
		return fallback
	}
	return value
}

// GetEnvSeconds reads a whole number of seconds as a duration
func GetEnvSeconds(key string, fallback time.Duration) time.Duration {
	seconds, err := strconv.Atoi(GetEnv(key, ""))
	if err != nil {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}
