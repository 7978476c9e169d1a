package medauth

import (
	"errors"
	"strings"
	"time"
)

// Config defines a public type used by medauth APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Backend  BackendConfig
	Identity IdentityConfig
	DeepLink DeepLinkConfig
	Storage  StorageConfig
	Sync     SyncConfig
	Audit    AuditConfig
	Metrics  MetricsConfig
}

/*
====================================
BACKEND CONFIG
====================================
*/

// BackendConfig defines a public type used by medauth APIs.
//
// BackendConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

/*
====================================
IDENTITY CONFIG
====================================
*/

// IdentityConfig defines a public type used by medauth APIs.
//
// IdentityConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type IdentityConfig struct {
	BaseURL string
	APIKey  string
	Leeway  time.Duration
}

/*
====================================
DEEP LINK CONFIG
====================================
*/

// DeepLinkConfig defines a public type used by medauth APIs.
//
// DeepLinkConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type DeepLinkConfig struct {
	Scheme       string
	Host         string
	LandingRoute string
}

/*
====================================
STORAGE CONFIG
====================================
*/

// StorageConfig defines a public type used by medauth APIs.
//
// StorageConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type StorageConfig struct {
	// Key names the persisted session record in whatever backend carries it
	// (file name, redis key).
	Key string
	// FilePath, when set and no explicit persistence backend is supplied,
	// selects a file-backed store at this path.
	FilePath string
}

/*
====================================
SYNC CONFIG
====================================
*/

// SyncConfig defines a public type used by medauth APIs.
//
// SyncConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SyncConfig struct {
	// Timeout bounds a single /auth/me round-trip.
	Timeout time.Duration
	// DedupWindow is reserved for future rate control of repeated identical
	// session events; the token-based dedup itself is always active.
	DedupWindow time.Duration
}

// AuditConfig defines a public type used by medauth APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig defines a public type used by medauth APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

/*
====================================
DEFAULT CONFIG
====================================
*/

// DefaultConfig returns the baseline configuration used by [New].
//
// Callers typically start from DefaultConfig, override the endpoint and
// storage fields, and pass the result to [Builder.WithConfig].
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		Backend: BackendConfig{
			Timeout: 15 * time.Second,
		},
		Identity: IdentityConfig{
			Leeway: 30 * time.Second,
		},
		DeepLink: DeepLinkConfig{
			Scheme:       "com.bitacora.medica",
			Host:         "google-auth",
			LandingRoute: "/dashboard",
		},
		Storage: StorageConfig{
			Key: "bitacora-auth-storage",
		},
		Sync: SyncConfig{
			Timeout: 15 * time.Second,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

func cloneConfig(cfg Config) Config {
	return cfg
}

/*
====================================
VALIDATION
====================================
*/

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	// Backend
	if c.Backend.Timeout <= 0 {
		return errors.New("Backend Timeout must be > 0")
	}

	// Identity
	if c.Identity.Leeway < 0 {
		return errors.New("Identity Leeway must be >= 0")
	}

	// Deep link
	if c.DeepLink.Scheme == "" {
		return errors.New("DeepLink Scheme is required")
	}
	if strings.Contains(c.DeepLink.Scheme, "://") {
		return errors.New("DeepLink Scheme must not include '://'")
	}
	if c.DeepLink.Host == "" {
		return errors.New("DeepLink Host is required")
	}
	if c.DeepLink.LandingRoute == "" || !strings.HasPrefix(c.DeepLink.LandingRoute, "/") {
		return errors.New("DeepLink LandingRoute must be an absolute route")
	}

	// Storage
	if c.Storage.Key == "" {
		return errors.New("Storage Key is required")
	}

	// Sync
	if c.Sync.Timeout <= 0 {
		return errors.New("Sync Timeout must be > 0")
	}
	if c.Sync.DedupWindow < 0 {
		return errors.New("Sync DedupWindow must be >= 0")
	}

	// Audit
	if c.Audit.Enabled {
		if c.Audit.BufferSize <= 0 {
			return errors.New("Audit BufferSize must be > 0 when audit is enabled")
		}
	}

	return nil
}
