package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env             string        // dev, prod
	HTTPPort        string        // default 8080
	SeedFile        string        // optional JSON dataset from cmd/seed; empty = built-in demo data
	SessionTTL      time.Duration // how long an idle session survives
	SweepInterval   time.Duration // how often idle sessions are purged
	ShutdownTimeout time.Duration // graceful shutdown timeout
	CORSOrigins     []string      // allowed browser origins
	PrettyLog       bool          // console-writer logging in dev
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Env:             getEnv("APP_ENV", "dev"),
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		SeedFile:        os.Getenv("SEED_FILE"),
		SessionTTL:      getDuration("SESSION_TTL", 30*time.Minute),
		SweepInterval:   getDuration("SWEEP_INTERVAL", time.Minute),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		CORSOrigins:     splitList(getEnv("CORS_ORIGINS", "*")),
		PrettyLog:       getBool("PRETTY_LOG", true),
	}

	if cfg.Env == "prod" && !wasSet("PRETTY_LOG") {
		cfg.PrettyLog = false
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func wasSet(key string) bool {
	_, ok := os.LookupEnv(key)
	return ok
}

func getBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		fmt.Fprintf(os.Stderr, "invalid bool for %s=%q, using default %t\n", key, v, def)
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return time.Duration(n) * time.Second
		}
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		fmt.Fprintf(os.Stderr, "invalid duration for %s=%q, using default %s\n", key, v, def)
	}
	return def
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
