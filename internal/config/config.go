// Package config is the planner's configuration layer (§6): a defaulted
// struct overridable by environment variables and, optionally, a YAML file,
// following the netex-validator's DefaultConfig()+LoadConfig(path) pattern.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable named in §6.
type Config struct {
	RoutingServiceBaseURL   string `yaml:"routingServiceBaseUrl"`
	RoutingServiceTimeoutMs int    `yaml:"routingServiceTimeoutMs"`
	RoutingCacheTTLSeconds  int    `yaml:"routingCacheTtlSeconds"`
	DefaultMaxTransfers     int    `yaml:"defaultMaxTransfers"`
	DefaultPriority         string `yaml:"defaultPriority"`
	MaxBFSIterations        int    `yaml:"maxBfsIterations"`
	MaxBFSDepth             int    `yaml:"maxBfsDepth"`
	MaxIntermediateCities   int    `yaml:"maxIntermediateCities"`

	DatabaseURL string `yaml:"databaseUrl"`
	ListenAddr  string `yaml:"listenAddr"`
}

// Default returns the §6-documented defaults.
func Default() *Config {
	return &Config{
		RoutingServiceTimeoutMs: 10000,
		RoutingCacheTTLSeconds:  86400,
		DefaultMaxTransfers:     3,
		DefaultPriority:         "fastest",
		MaxBFSIterations:        1000,
		MaxBFSDepth:             5,
		MaxIntermediateCities:   30,
		ListenAddr:              ":8080",
	}
}

// FromEnv starts from Default and overrides any field whose environment
// variable is set.
func FromEnv() *Config {
	c := Default()

	if v := os.Getenv("ROUTING_SERVICE_BASE_URL"); v != "" {
		c.RoutingServiceBaseURL = v
	}
	if v := os.Getenv("ROUTING_SERVICE_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RoutingServiceTimeoutMs = n
		}
	}
	if v := os.Getenv("ROUTING_CACHE_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RoutingCacheTTLSeconds = n
		}
	}
	if v := os.Getenv("DEFAULT_MAX_TRANSFERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.DefaultMaxTransfers = n
		}
	}
	if v := os.Getenv("DEFAULT_PRIORITY"); v != "" {
		c.DefaultPriority = v
	}
	if v := os.Getenv("MAX_BFS_ITERATIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxBFSIterations = n
		}
	}
	if v := os.Getenv("MAX_BFS_DEPTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxBFSDepth = n
		}
	}
	if v := os.Getenv("MAX_INTERMEDIATE_CITIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxIntermediateCities = n
		}
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}

	return c
}

// LoadYAMLOverlay reads path and unmarshals it on top of c, letting a config
// file override select fields without needing to repeat every default.
func LoadYAMLOverlay(c *Config, path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read overlay %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parse overlay %s: %w", path, err)
	}
	return nil
}
