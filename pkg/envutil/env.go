package envutil

import (
	"os"
	"strings"
)

// GetOrDefault returns the trimmed value of the environment variable
// or the fallback when the variable is unset or blank
func GetOrDefault(key string, fallback string) string {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	return val
}

// LookupOrDefault returns the trimmed value of the environment variable
// or the fallback when the variable is unset
//
// Note: Unlike GetOrDefault a variable that is set to blank is
// returned as blank
func LookupOrDefault(key string, fallback string) string {
	val, found := os.LookupEnv(key)
	if !found {
		return fallback
	}
	return strings.TrimSpace(val)
}
