package medauth

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestDefaultConfigCallbackShape(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.DeepLink.Scheme != "com.bitacora.medica" {
		t.Errorf("unexpected scheme %q", cfg.DeepLink.Scheme)
	}
	if cfg.DeepLink.Host != "google-auth" {
		t.Errorf("unexpected host %q", cfg.DeepLink.Host)
	}
	if cfg.DeepLink.LandingRoute != "/dashboard" {
		t.Errorf("unexpected landing route %q", cfg.DeepLink.LandingRoute)
	}
	if cfg.Storage.Key != "bitacora-auth-storage" {
		t.Errorf("unexpected storage key %q", cfg.Storage.Key)
	}
}

func TestValidateRejectsBadConfigs(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{
			name:    "zero backend timeout",
			mutate:  func(c *Config) { c.Backend.Timeout = 0 },
			wantMsg: "Backend Timeout",
		},
		{
			name:    "negative leeway",
			mutate:  func(c *Config) { c.Identity.Leeway = -time.Second },
			wantMsg: "Identity Leeway",
		},
		{
			name:    "empty scheme",
			mutate:  func(c *Config) { c.DeepLink.Scheme = "" },
			wantMsg: "Scheme is required",
		},
		{
			name:    "scheme with separator",
			mutate:  func(c *Config) { c.DeepLink.Scheme = "com.bitacora.medica://" },
			wantMsg: "must not include",
		},
		{
			name:    "empty host",
			mutate:  func(c *Config) { c.DeepLink.Host = "" },
			wantMsg: "Host is required",
		},
		{
			name:    "relative landing route",
			mutate:  func(c *Config) { c.DeepLink.LandingRoute = "dashboard" },
			wantMsg: "absolute route",
		},
		{
			name:    "empty storage key",
			mutate:  func(c *Config) { c.Storage.Key = "" },
			wantMsg: "Storage Key",
		},
		{
			name:    "zero sync timeout",
			mutate:  func(c *Config) { c.Sync.Timeout = 0 },
			wantMsg: "Sync Timeout",
		},
		{
			name:    "negative dedup window",
			mutate:  func(c *Config) { c.Sync.DedupWindow = -time.Second },
			wantMsg: "DedupWindow",
		},
		{
			name: "audit enabled without buffer",
			mutate: func(c *Config) {
				c.Audit.Enabled = true
				c.Audit.BufferSize = 0
			},
			wantMsg: "Audit BufferSize",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Fatalf("expected error containing %q, got %q", tc.wantMsg, err)
			}
		})
	}
}

func TestCloneConfigIsIndependent(t *testing.T) {
	cfg := defaultConfig()
	clone := cloneConfig(cfg)
	clone.DeepLink.Scheme = "other.scheme"

	if cfg.DeepLink.Scheme == clone.DeepLink.Scheme {
		t.Fatal("mutating the clone must not affect the original")
	}
}
