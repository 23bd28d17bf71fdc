package config

import (
	"os"
	"strings"
	"time"
)

// Get returns the trimmed environment value for key, or fallback when
// unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// GetDuration parses the environment value for key as a time.Duration
// (e.g. "3s", "500ms"), returning fallback when unset or unparseable.
func GetDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
