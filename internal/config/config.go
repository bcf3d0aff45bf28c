// Package config provides centralized configuration management.
// This is the SINGLE SOURCE OF TRUTH for the simulation's tick rate,
// rollback parameters, and the netplay demo's listen address.
//
// IMPORTANT: When changing values, only modify this file.
// All other parts of the codebase should reference these values.
package config

import (
	"os"
	"strconv"
)

// =============================================================================
// SIMULATION CONFIGURATION
// =============================================================================

// SimConfig holds the deterministic tick's run parameters.
type SimConfig struct {
	TickRate       int // logical ticks per second; the simulation itself is rate-independent
	RollbackWindow int // MAX_ROLLBACK_FRAMES; fixed by the ring buffer size, exposed for validation
	HashPeriod     int // 1 = strict mode (hash every tick), 10 = production
}

// DefaultSim returns the default simulation configuration.
func DefaultSim() SimConfig {
	return SimConfig{
		TickRate:       60,
		RollbackWindow: 120,
		HashPeriod:     10,
	}
}

// SimFromEnv returns simulation configuration with environment
// variable overrides.
func SimFromEnv() SimConfig {
	cfg := DefaultSim()

	if tr := getEnvInt("SIM_TICK_RATE", 0); tr > 0 {
		cfg.TickRate = tr
	}
	if hp := getEnvInt("SIM_HASH_PERIOD", 0); hp > 0 {
		cfg.HashPeriod = hp
	}

	return cfg
}

// =============================================================================
// NETPLAY SERVER CONFIGURATION
// =============================================================================

// NetplayConfig holds the demo relay's HTTP server settings.
type NetplayConfig struct {
	ListenAddr       string
	AllowedOrigins   []string
	MetricsNamespace string
}

// DefaultNetplay returns the default netplay server configuration.
func DefaultNetplay() NetplayConfig {
	return NetplayConfig{
		ListenAddr:       ":8090",
		AllowedOrigins:   []string{"*"},
		MetricsNamespace: "rollback_core",
	}
}

// NetplayFromEnv returns netplay configuration with environment
// variable overrides.
func NetplayFromEnv() NetplayConfig {
	cfg := DefaultNetplay()

	if addr := os.Getenv("NETPLAY_LISTEN_ADDR"); addr != "" {
		cfg.ListenAddr = addr
	}
	if origin := os.Getenv("NETPLAY_ALLOWED_ORIGIN"); origin != "" {
		cfg.AllowedOrigins = []string{origin}
	}

	return cfg
}

// =============================================================================
// COMPLETE APP CONFIGURATION
// =============================================================================

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Sim     SimConfig
	Netplay NetplayConfig
}

// Load returns the complete configuration with environment overrides.
func Load() AppConfig {
	return AppConfig{
		Sim:     SimFromEnv(),
		Netplay: NetplayFromEnv(),
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
