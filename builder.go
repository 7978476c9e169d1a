package medauth

import (
	"errors"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/bitacora-medica/medauth/api"
	"github.com/bitacora-medica/medauth/identity"
	internalaudit "github.com/bitacora-medica/medauth/internal/audit"
	"github.com/bitacora-medica/medauth/session"
)

// Builder defines a public type used by medauth APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config
	redis  *redis.Client

	persistence session.Persistence
	provider    IdentityProvider
	httpClient  *http.Client
	navigate    Navigator
	auditSink   AuditSink

	built bool
}

// New describes the new operation and its observable behavior.
//
// New may return an error when input validation, dependency calls, or security checks fail.
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig may return an error when input validation, dependency calls, or security checks fail.
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis selects a redis-backed session persistence keyed by
// [StorageConfig].Key.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithPersistence supplies an explicit persistence backend. It takes
// precedence over WithRedis and [StorageConfig].FilePath.
func (b *Builder) WithPersistence(p session.Persistence) *Builder {
	b.persistence = p
	return b
}

// WithIdentityProvider describes the withidentityprovider operation and its observable behavior.
//
// WithIdentityProvider may return an error when input validation, dependency calls, or security checks fail.
// WithIdentityProvider does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithIdentityProvider(p IdentityProvider) *Builder {
	b.provider = p
	return b
}

// WithHTTPClient describes the withhttpclient operation and its observable behavior.
//
// WithHTTPClient may return an error when input validation, dependency calls, or security checks fail.
// WithHTTPClient does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithHTTPClient(c *http.Client) *Builder {
	b.httpClient = c
	return b
}

// WithNavigator describes the withnavigator operation and its observable behavior.
//
// WithNavigator may return an error when input validation, dependency calls, or security checks fail.
// WithNavigator does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithNavigator(n Navigator) *Builder {
	b.navigate = n
	return b
}

// WithAuditSink describes the withauditsink operation and its observable behavior.
//
// WithAuditSink may return an error when input validation, dependency calls, or security checks fail.
// WithAuditSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
//
// WithMetricsEnabled may return an error when input validation, dependency calls, or security checks fail.
// WithMetricsEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms describes the withlatencyhistograms operation and its observable behavior.
//
// WithLatencyHistograms may return an error when input validation, dependency calls, or security checks fail.
// WithLatencyHistograms does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) Build() (*Client, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// -------- PERSISTENCE --------
	persistence := b.persistence
	if persistence == nil && b.redis != nil {
		persistence = session.NewRedisStore(b.redis, cfg.Storage.Key)
	}
	if persistence == nil && cfg.Storage.FilePath != "" {
		persistence = session.NewFileStore(cfg.Storage.FilePath)
	}

	store := session.NewStore(persistence)

	// -------- IDENTITY PROVIDER --------
	provider := b.provider
	var ownBridge *identity.Bridge
	if provider == nil {
		ownBridge = identity.New(identity.Config{
			BaseURL: cfg.Identity.BaseURL,
			APIKey:  cfg.Identity.APIKey,
			Leeway:  cfg.Identity.Leeway,
		})
		provider = ownBridge
	}

	// -------- BACKEND CLIENT --------
	httpClient := b.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Backend.Timeout}
	}
	authed := &http.Client{
		Timeout: httpClient.Timeout,
		Transport: &api.Transport{
			Base:           httpClient.Transport,
			Tokens:         store,
			OnUnauthorized: store.Logout,
		},
	}

	client := &Client{
		cfg:       cfg,
		store:     store,
		provider:  provider,
		ownBridge: ownBridge,
		api:       api.NewClient(cfg.Backend.BaseURL, authed),
		navigate:  b.navigate,
		audit: internalaudit.NewDispatcher(internalaudit.Config{
			Enabled:    cfg.Audit.Enabled,
			BufferSize: cfg.Audit.BufferSize,
			DropIfFull: cfg.Audit.DropIfFull,
		}, b.auditSink),
		metrics: NewMetrics(cfg.Metrics),
		readyCh: make(chan struct{}),
	}

	b.built = true

	return client, nil
}
