// Package config loads server settings from the environment with
// sane defaults.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/sheikah-slate/relay-server/internal/history"
)

type Config struct {
	Port           string
	AllowedOrigins []string
	HistoryLimit   int
}

func Default() Config {
	return Config{
		Port:         ":3000",
		HistoryLimit: history.DefaultLimit,
	}
}

// FromEnv reads SERVER_PORT, ALLOWED_ORIGINS (comma-separated origin
// patterns), and HISTORY_LIMIT, falling back to defaults for anything
// unset or unparseable.
func FromEnv() Config {
	cfg := Default()

	if port := os.Getenv("SERVER_PORT"); port != "" {
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		cfg.Port = port
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	if limit := os.Getenv("HISTORY_LIMIT"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil && n > 0 {
			cfg.HistoryLimit = n
		}
	}

	return cfg
}
