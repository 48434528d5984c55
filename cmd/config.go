package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/nasa/vsm/adapters/hostnames"
	"github.com/nasa/vsm/adapters/mdns"

	"gopkg.in/yaml.v3"
)

// Env variable names.
const (
	envHTTPPort   = "SERVICE_PORT_HTTP"
	envGRPCPort   = "SERVICE_PORT_GRPC"
	envConfigPath = "CONFIG_PATH"
	envRedisAddr  = "REDIS_ADDR"
)

const (
	defaultHTTPPort          = 12345
	defaultCommandTimeout    = 5 * time.Second
	defaultDiscoveryInterval = 2 * time.Second
	defaultDiscoveryWindow   = 3 * time.Second
	defaultLostAfterRounds   = 3
	defaultStatusInterval    = 5 * time.Second
	defaultStatusTTL         = 30 * time.Second
)

// Config holds the manager configuration loaded by LoadConfig from environment variables and the
// optional YAML file. GRPCPort 0 disables the health server; empty RedisAddr disables the status mirror.
// Exactly one of AllowList and DenyList is non-nil.
type Config struct {
	HTTPPort  int
	GRPCPort  int
	RedisAddr string

	AllowList  []string
	DenyList   []string
	Interfaces []string

	ServiceType       string
	CommandTimeout    time.Duration
	DiscoveryInterval time.Duration
	DiscoveryWindow   time.Duration
	LostAfterRounds   int
	StatusInterval    time.Duration
	StatusTTL         time.Duration
}

// stringList accepts either a single scalar or a sequence of scalars.
type stringList []string

func (l *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		*l = stringList{s}
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		*l = items
		return nil
	default:
		return fmt.Errorf("line %d: expected a string or a list of strings", value.Line)
	}
}

// yamlConfig is the root struct for YAML unmarshalling. Pointer fields tell "absent" from "zero".
type yamlConfig struct {
	AllowList           *stringList `yaml:"allow_list"`
	DenyList            *stringList `yaml:"deny_list"`
	Interfaces          stringList  `yaml:"interfaces"`
	ServiceType         string      `yaml:"service_type"`
	CommandTimeoutMs    *int        `yaml:"command_timeout_ms"`
	DiscoveryIntervalMs *int        `yaml:"discovery_interval_ms"`
	DiscoveryWindowMs   *int        `yaml:"discovery_window_ms"`
	LostAfterRounds     *int        `yaml:"lost_after_rounds"`
	StatusIntervalMs    *int        `yaml:"status_interval_ms"`
	StatusTTLMs         *int        `yaml:"status_ttl_ms"`
}

// loadYAMLConfig reads and unmarshals the file at path.
//
// Called only from LoadConfig.
func loadYAMLConfig(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out yamlConfig
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LoadConfig builds the configuration from SERVICE_PORT_HTTP (default 12345), SERVICE_PORT_GRPC (optional),
// REDIS_ADDR (optional) and the YAML file at CONFIG_PATH (optional, converted to absolute).
// Without allow_list and deny_list the allow list is "localhost". When both are given the allow list wins.
//
// Called only from main at startup.
func LoadConfig() (*Config, error) {
	httpPort, err := portFromEnv(envHTTPPort, defaultHTTPPort, false)
	if err != nil {
		return nil, err
	}
	grpcPort, err := portFromEnv(envGRPCPort, 0, true)
	if err != nil {
		return nil, err
	}
	if grpcPort != 0 && grpcPort == httpPort {
		return nil, fmt.Errorf("%s and %s must differ, both are %d", envHTTPPort, envGRPCPort, httpPort)
	}

	raw := &yamlConfig{}
	configPath := strings.TrimSpace(os.Getenv(envConfigPath))
	if configPath != "" {
		if !filepath.IsAbs(configPath) {
			abs, absErr := filepath.Abs(configPath)
			if absErr != nil {
				return nil, absErr
			}
			configPath = abs
		}
		raw, err = loadYAMLConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", configPath, err)
		}
	}

	cfg := &Config{
		HTTPPort:    httpPort,
		GRPCPort:    grpcPort,
		RedisAddr:   strings.TrimSpace(os.Getenv(envRedisAddr)),
		Interfaces:  trimAll(raw.Interfaces),
		ServiceType: strings.TrimSpace(raw.ServiceType),
	}
	if cfg.ServiceType == "" {
		cfg.ServiceType = mdns.DefaultServiceType
	}

	switch {
	case raw.AllowList != nil:
		cfg.AllowList = trimAll(*raw.AllowList)
	case raw.DenyList != nil:
		cfg.DenyList = trimAll(*raw.DenyList)
	default:
		cfg.AllowList = []string{hostnames.Localhost}
	}
	for _, name := range append(append([]string{}, cfg.AllowList...), cfg.DenyList...) {
		if name == "" {
			return nil, fmt.Errorf("allow_list and deny_list must not contain empty entries")
		}
	}

	durations := []struct {
		name string
		raw  *int
		def  time.Duration
		dst  *time.Duration
	}{
		{"command_timeout_ms", raw.CommandTimeoutMs, defaultCommandTimeout, &cfg.CommandTimeout},
		{"discovery_interval_ms", raw.DiscoveryIntervalMs, defaultDiscoveryInterval, &cfg.DiscoveryInterval},
		{"discovery_window_ms", raw.DiscoveryWindowMs, defaultDiscoveryWindow, &cfg.DiscoveryWindow},
		{"status_interval_ms", raw.StatusIntervalMs, defaultStatusInterval, &cfg.StatusInterval},
		{"status_ttl_ms", raw.StatusTTLMs, defaultStatusTTL, &cfg.StatusTTL},
	}
	for _, d := range durations {
		if d.raw == nil {
			*d.dst = d.def
			continue
		}
		if *d.raw <= 0 {
			return nil, fmt.Errorf("%s must be a positive integer (ms), got %d", d.name, *d.raw)
		}
		*d.dst = time.Duration(*d.raw) * time.Millisecond
	}

	cfg.LostAfterRounds = defaultLostAfterRounds
	if raw.LostAfterRounds != nil {
		if *raw.LostAfterRounds < 1 {
			return nil, fmt.Errorf("lost_after_rounds must be at least 1, got %d", *raw.LostAfterRounds)
		}
		cfg.LostAfterRounds = *raw.LostAfterRounds
	}
	if cfg.StatusTTL <= cfg.StatusInterval {
		return nil, fmt.Errorf("status_ttl_ms (%s) must exceed status_interval_ms (%s)", cfg.StatusTTL, cfg.StatusInterval)
	}
	return cfg, nil
}

// portFromEnv reads a port from name. Empty uses def; 0 is accepted only when allowZero is set.
func portFromEnv(name string, def int, allowZero bool) (int, error) {
	s := strings.TrimSpace(os.Getenv(name))
	if s == "" {
		return def, nil
	}
	port, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid port (1-65535), got %q", name, s)
	}
	if port == 0 && allowZero {
		return 0, nil
	}
	if port <= 0 || port > 65535 {
		return 0, fmt.Errorf("%s must be 1-65535, got %d", name, port)
	}
	return port, nil
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.TrimSpace(s))
	}
	return out
}
