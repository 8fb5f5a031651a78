package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// envOr returns the parsed POLYAREA_* variable, or fallback when it is
// unset, empty, or malformed. Flags pick these up as their defaults so
// an explicit flag always wins.
func envOr[T any](name string, fallback T) T {
	v, found := os.LookupEnv(name)
	if !found || strings.TrimSpace(v) == "" {
		return fallback
	}

	parsed, err := parseEnvVar[T](v)
	if err != nil {
		log.Warnf("%s: %v", name, err)
		return fallback
	}
	return parsed
}

// parseEnvVar parses an environment variable value to the desired type
func parseEnvVar[T any](v string) (T, error) {
	var zero T

	switch any(zero).(type) {
	case string:
		return any(v).(T), nil
	case bool:
		val, err := strconv.ParseBool(v)
		if err != nil {
			return zero, fmt.Errorf("failed to parse %q as bool: %v", v, err)
		}

		return any(val).(T), nil
	case int:
		val, err := strconv.Atoi(v)
		if err != nil {
			return zero, fmt.Errorf("failed to parse %q as int: %v", v, err)
		}

		return any(val).(T), nil
	case int64:
		val, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return zero, fmt.Errorf("failed to parse %q as int64: %v", v, err)
		}

		return any(val).(T), nil
	case float64:
		val, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return zero, fmt.Errorf("failed to parse %q as float64: %v", v, err)
		}

		return any(val).(T), nil
	case time.Duration:
		val, err := time.ParseDuration(v)
		if err != nil {
			return zero, fmt.Errorf("failed to parse %q as duration: %v", v, err)
		}

		return any(val).(T), nil
	}

	return zero, fmt.Errorf("unsupported environment variable type %T", zero)
}
