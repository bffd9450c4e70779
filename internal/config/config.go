// Package config resolves CLI settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime options shared by the CLI commands.
type Config struct {
	LogLevel    string
	TickPeriod  time.Duration
	Iterations  int
	MetricsAddr string
	NoColor     bool
	// SnapshotDir and RedisAddr select where tick snapshots are recorded.
	// RedisAddr wins when both are set.
	SnapshotDir string
	RedisAddr   string
}

const (
	defaultLogLevel   = "info"
	defaultTickPeriod = 500 * time.Millisecond
	defaultIterations = -1
)

// Environment variable names.
const (
	EnvLogLevel    = "ARBOR_LOG_LEVEL"
	EnvTickPeriod  = "ARBOR_TICK_PERIOD"
	EnvIterations  = "ARBOR_ITERATIONS"
	EnvMetricsAddr = "ARBOR_METRICS_ADDR"
	EnvNoColor     = "ARBOR_NO_COLOR"
	EnvSnapshotDir = "ARBOR_SNAPSHOT_DIR"
	EnvRedisAddr   = "ARBOR_REDIS_ADDR"
)

func getEnvString(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	val, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal, nil
	}
	i, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return i, nil
}

func getEnvBool(key string, defaultVal bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		lower := strings.ToLower(strings.TrimSpace(val))
		return lower == "true" || lower == "1" || lower == "yes"
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(val))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

// Load reads the optional env files (".env" when none are given) and then the
// ARBOR_* variables. Variables already set in the process win over the files.
// Command-line flags are applied on top by the caller.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// Missing files are fine; everything has a default.
		_ = godotenv.Load(f)
	}

	cfg := &Config{
		LogLevel:    getEnvString(EnvLogLevel, defaultLogLevel),
		MetricsAddr: getEnvString(EnvMetricsAddr, ""),
		NoColor:     getEnvBool(EnvNoColor, false),
		SnapshotDir: getEnvString(EnvSnapshotDir, ""),
		RedisAddr:   getEnvString(EnvRedisAddr, ""),
	}

	var err error
	if cfg.TickPeriod, err = getEnvDuration(EnvTickPeriod, defaultTickPeriod); err != nil {
		return nil, fmt.Errorf("invalid tick period: %w", err)
	}
	if cfg.Iterations, err = getEnvInt(EnvIterations, defaultIterations); err != nil {
		return nil, fmt.Errorf("invalid iterations: %w", err)
	}
	if cfg.TickPeriod < 0 {
		return nil, fmt.Errorf("invalid tick period: %s is negative", cfg.TickPeriod)
	}
	return cfg, nil
}
