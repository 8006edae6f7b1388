package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/locktivity/config-rule-root-no-access/internal/rule"
)

// lookupFunc matches os.LookupEnv.
type lookupFunc func(key string) (string, bool)

// loadConfig overlays environment variables on the default rule config.
func loadConfig(lookup lookupFunc) (rule.Config, error) {
	cfg := rule.DefaultConfig()

	if v, ok := getString(lookup, "POLL_MAX_ATTEMPTS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("POLL_MAX_ATTEMPTS: %w", err)
		}
		cfg.PollPolicy.MaxAttempts = n
	}
	if err := getDuration(lookup, "POLL_INTERVAL", &cfg.PollPolicy.Interval); err != nil {
		return cfg, err
	}
	if v, ok := getString(lookup, "ROLE_SESSION_NAME"); ok {
		cfg.SessionName = v
	}
	if err := getDuration(lookup, "SESSION_DURATION", &cfg.SessionDuration); err != nil {
		return cfg, err
	}
	if v, ok := getString(lookup, "RESOURCE_ID"); ok {
		cfg.ResourceID = v
	}

	return cfg, cfg.Validate()
}

// getString returns a trimmed, non-empty environment value.
func getString(lookup lookupFunc, key string) (string, bool) {
	v, ok := lookup(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func getDuration(lookup lookupFunc, key string, dst *time.Duration) error {
	v, ok := getString(lookup, key)
	if !ok {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return level, nil
}
