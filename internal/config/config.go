package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backends accepted by STORE_BACKEND.
const (
	BackendCSV   = "csv"
	BackendMongo = "mongo"
)

// DefaultMaxBodyBytes bounds POST /submit bodies.
const DefaultMaxBodyBytes int64 = 2 << 20

// DefaultAllowedOrigins are the local dev-server origins of the form UI.
var DefaultAllowedOrigins = []string{
	"http://localhost:5173",
	"http://localhost:5174",
	"http://127.0.0.1:5173",
	"http://127.0.0.1:5174",
}

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr                 string
	AllowedOrigins       []string
	StoreBackend         string
	CSVPath              string
	MaxBodyBytes         int64
	MongoURI             string
	MongoDatabase        string
	SubmissionCollection string
	Timeout              time.Duration
	ServerLog            *log.Logger
}

// Load reads environment variables and returns a fully populated Config.
func Load() Config {
	timeout := 10 * time.Second
	if v := os.Getenv("MONGO_CONNECT_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			timeout = parsed
		}
	}

	maxBody := DefaultMaxBodyBytes
	if raw := strings.TrimSpace(os.Getenv("MAX_BODY_BYTES")); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 {
			maxBody = parsed
		}
	}

	backend := strings.ToLower(strings.TrimSpace(envOrDefault("STORE_BACKEND", BackendCSV)))
	if backend != BackendCSV && backend != BackendMongo {
		log.Fatalf("STORE_BACKEND must be %q or %q, got %q", BackendCSV, BackendMongo, backend)
	}

	cfg := Config{
		Addr:                 envOrDefault("HTTP_ADDR", ":5001"),
		AllowedOrigins:       parseList("API_ALLOWED_ORIGINS", DefaultAllowedOrigins),
		StoreBackend:         backend,
		CSVPath:              envOrDefault("CSV_PATH", "data/matches.csv"),
		MaxBodyBytes:         maxBody,
		MongoURI:             envOrDefault("MONGO_URI", "mongodb://mongo:27017"),
		MongoDatabase:        envOrDefault("MONGO_DB", "match-intake"),
		SubmissionCollection: envOrDefault("SUBMISSION_COLLECTION", "submissions"),
		Timeout:              timeout,
		ServerLog:            log.New(os.Stdout, "[match-intake-api] ", log.LstdFlags|log.Lshortfile),
	}

	cfg.ServerLog.Printf("loaded config: addr=%q backend=%q origins=%q", cfg.Addr, cfg.StoreBackend, cfg.AllowedOrigins)

	return cfg
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
