package main

import (
	"context"
	"errors"
	"net"
	"net/netip"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nasa/vsm/adapters/hostnames"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{envHTTPPort, envGRPCPort, envConfigPath, envRedisAddr} {
		t.Setenv(name, "")
	}
}

func writeConfig(t *testing.T, content string) {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "vsm.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o644))
	t.Setenv(envConfigPath, cfgPath)
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 12345, cfg.HTTPPort)
	assert.Equal(t, 0, cfg.GRPCPort)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, []string{"localhost"}, cfg.AllowList)
	assert.Nil(t, cfg.DenyList)
	assert.Equal(t, "_doug_wcs._tcp", cfg.ServiceType)
	assert.Equal(t, 5*time.Second, cfg.CommandTimeout)
	assert.Equal(t, 3, cfg.LostAfterRounds)
	assert.Empty(t, cfg.Interfaces)
}

func TestLoadConfig_YAML(t *testing.T) {
	clearEnv(t)
	t.Setenv(envHTTPPort, "8080")
	t.Setenv(envGRPCPort, "50051")
	t.Setenv(envRedisAddr, "redis://redis:6379/0")
	writeConfig(t, `
allow_list:
  - render-1.lab
  - " 10.0.0.7 "
interfaces: eth0
service_type: _custom._tcp
command_timeout_ms: 1500
discovery_interval_ms: 1000
discovery_window_ms: 2000
lost_after_rounds: 5
status_interval_ms: 1000
status_ttl_ms: 4000
`)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, 50051, cfg.GRPCPort)
	assert.Equal(t, "redis://redis:6379/0", cfg.RedisAddr)
	assert.Equal(t, []string{"render-1.lab", "10.0.0.7"}, cfg.AllowList)
	assert.Equal(t, []string{"eth0"}, cfg.Interfaces)
	assert.Equal(t, "_custom._tcp", cfg.ServiceType)
	assert.Equal(t, 1500*time.Millisecond, cfg.CommandTimeout)
	assert.Equal(t, time.Second, cfg.DiscoveryInterval)
	assert.Equal(t, 2*time.Second, cfg.DiscoveryWindow)
	assert.Equal(t, 5, cfg.LostAfterRounds)
	assert.Equal(t, time.Second, cfg.StatusInterval)
	assert.Equal(t, 4*time.Second, cfg.StatusTTL)
}

func TestLoadConfig_Lists(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantAllow []string
		wantDeny  []string
	}{
		{
			name:     "deny list as a single string",
			content:  "deny_list: render-9.lab\n",
			wantDeny: []string{"render-9.lab"},
		},
		{
			name:      "allow list wins over deny list",
			content:   "allow_list: [a]\ndeny_list: [b]\n",
			wantAllow: []string{"a"},
		},
		{
			name:      "empty allow list rejects everything",
			content:   "allow_list: []\n",
			wantAllow: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			writeConfig(t, tt.content)

			cfg, err := LoadConfig()
			require.NoError(t, err)
			assert.Equal(t, tt.wantAllow, cfg.AllowList)
			assert.Equal(t, tt.wantDeny, cfg.DenyList)
		})
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		content string
		wantErr string
	}{
		{name: "bad http port", env: map[string]string{envHTTPPort: "http"}, wantErr: envHTTPPort},
		{name: "http port out of range", env: map[string]string{envHTTPPort: "70000"}, wantErr: envHTTPPort},
		{name: "http port zero", env: map[string]string{envHTTPPort: "0"}, wantErr: envHTTPPort},
		{name: "same ports", env: map[string]string{envHTTPPort: "9000", envGRPCPort: "9000"}, wantErr: "must differ"},
		{name: "list of maps", content: "allow_list:\n  a: b\n", wantErr: "expected a string or a list"},
		{name: "empty entry", content: "deny_list: [\"\"]\n", wantErr: "empty entries"},
		{name: "negative timeout", content: "command_timeout_ms: -1\n", wantErr: "command_timeout_ms"},
		{name: "zero rounds", content: "lost_after_rounds: 0\n", wantErr: "lost_after_rounds"},
		{name: "ttl below interval", content: "status_interval_ms: 5000\nstatus_ttl_ms: 5000\n", wantErr: "status_ttl_ms"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if tt.content != "" {
				writeConfig(t, tt.content)
			}

			_, err := LoadConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(envConfigPath, filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}

func TestAccessPolicyFromConfig(t *testing.T) {
	resolver := hostnames.NewResolver(
		hostnames.WithLookupHost(func(_ context.Context, host string) ([]string, error) {
			if host == "render-1.lab" {
				return []string{"10.0.0.5"}, nil
			}
			return nil, errors.New("no such host")
		}),
		hostnames.WithInterfaceAddrs(func() ([]net.Addr, error) {
			return []net.Addr{&net.IPNet{IP: net.ParseIP("192.168.1.2"), Mask: net.CIDRMask(24, 32)}}, nil
		}),
	)
	addr := netip.MustParseAddr

	t.Run("allow list", func(t *testing.T) {
		policy, err := accessPolicy(context.Background(), &Config{AllowList: []string{"render-1.lab", "localhost"}}, resolver)
		require.NoError(t, err)
		assert.False(t, policy.IsBlacklisted([]netip.Addr{addr("10.0.0.5")}))
		assert.False(t, policy.IsBlacklisted([]netip.Addr{addr("192.168.1.2")}))
		assert.True(t, policy.IsBlacklisted([]netip.Addr{addr("10.0.0.6")}))
	})
	t.Run("empty allow list", func(t *testing.T) {
		policy, err := accessPolicy(context.Background(), &Config{AllowList: []string{}}, resolver)
		require.NoError(t, err)
		assert.True(t, policy.IsBlacklisted([]netip.Addr{addr("10.0.0.5")}))
	})
	t.Run("deny list", func(t *testing.T) {
		policy, err := accessPolicy(context.Background(), &Config{DenyList: []string{"render-1.lab"}}, resolver)
		require.NoError(t, err)
		assert.True(t, policy.IsBlacklisted([]netip.Addr{addr("10.0.0.5")}))
		assert.False(t, policy.IsBlacklisted([]netip.Addr{addr("10.0.0.6")}))
	})
	t.Run("unresolvable", func(t *testing.T) {
		_, err := accessPolicy(context.Background(), &Config{DenyList: []string{"ghost.lab"}}, resolver)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ghost.lab")
	})
}
