package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Duration is time.Duration under a shorter name for Config fields.
type Duration = time.Duration

// lookup returns the trimmed value of key and whether it is non-empty.
func lookup(key string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	return raw, raw != ""
}

func envOrDefault(key, defaultValue string) string {
	if raw, ok := lookup(key); ok {
		return raw
	}
	return defaultValue
}

// parsedEnvOrDefault parses key with parse and keeps the result only when it parses and is positive.
func parsedEnvOrDefault[T int | time.Duration](key string, defaultValue T, parse func(string) (T, error)) T {
	raw, ok := lookup(key)
	if !ok {
		return defaultValue
	}
	val, err := parse(raw)
	if err != nil || val <= 0 {
		return defaultValue
	}
	return val
}

func durationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	return parsedEnvOrDefault(key, defaultValue, time.ParseDuration)
}

func intEnvOrDefault(key string, defaultValue int) int {
	return parsedEnvOrDefault(key, defaultValue, strconv.Atoi)
}

func boolEnvOrDefault(key string, defaultValue bool) bool {
	raw, ok := lookup(key)
	if !ok {
		return defaultValue
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return defaultValue
	}
}

// listEnvOrDefault splits a comma-separated value, dropping blank entries.
func listEnvOrDefault(key string, defaultValue []string) []string {
	raw, ok := lookup(key)
	if !ok {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
