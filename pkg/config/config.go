package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenAddr    string
	GRPCAddr      string
	// PoWDifficulty overrides the catalog's hashcash complexity when positive.
	PoWDifficulty int
	PoWTTL        time.Duration
	LogLevel      string
	ShutdownWait  time.Duration
	CatalogPath   string
	// Challenges lists the enabled kinds; empty enables all of them.
	Challenges []string
}

type ClientConfig struct {
	ServerAddr   string
	Transport    string
	Challenge    string
	SolveTimeout time.Duration
	LogLevel     string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoi(s string, def int) int {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

func list(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func Parse() Config {
	ttl, _ := time.ParseDuration(getenv("POW_TTL", "60s"))
	wait, _ := time.ParseDuration(getenv("SHUTDOWN_WAIT", "5s"))
	return Config{
		ListenAddr:    getenv("LISTEN_ADDR", ":8080"),
		GRPCAddr:      os.Getenv("GRPC_ADDR"),
		PoWDifficulty: atoi(os.Getenv("POW_DIFFICULTY"), 0),
		PoWTTL:        ttl,
		LogLevel:      getenv("LOG_LEVEL", "info"),
		ShutdownWait:  wait,
		CatalogPath:   os.Getenv("CATALOG_PATH"),
		Challenges:    list(os.Getenv("CHALLENGES")),
	}
}

// ParseClient reads the client settings. TRANSPORT is "tcp" or "grpc";
// CHALLENGE picks a kind over gRPC and is ignored over TCP.
func ParseClient() ClientConfig {
	timeout, _ := time.ParseDuration(getenv("SOLVE_TIMEOUT", "30s"))
	return ClientConfig{
		ServerAddr:   getenv("SERVER_ADDR", "localhost:8080"),
		Transport:    strings.ToLower(getenv("TRANSPORT", "tcp")),
		Challenge:    os.Getenv("CHALLENGE"),
		SolveTimeout: timeout,
		LogLevel:     getenv("LOG_LEVEL", "info"),
	}
}
