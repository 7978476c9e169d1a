package medauth

import (
	"fmt"
	"strings"
	"time"
)

// LintSeverity ranks configuration lint findings.
type LintSeverity int

const (
	// LintLow is an exported constant or variable used by the session client.
	LintLow LintSeverity = iota
	// LintMedium is an exported constant or variable used by the session client.
	LintMedium
	// LintHigh is an exported constant or variable used by the session client.
	LintHigh
)

// String describes the string operation and its observable behavior.
//
// String returns a stable name suitable for logs and CLI output.
func (s LintSeverity) String() string {
	switch s {
	case LintLow:
		return "LOW"
	case LintMedium:
		return "MEDIUM"
	case LintHigh:
		return "HIGH"
	default:
		return "UNKNOWN"
	}
}

// LintWarning defines a public type used by medauth APIs.
//
// LintWarning instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type LintWarning struct {
	Code     string
	Severity LintSeverity
	Message  string
}

// LintWarnings defines a public type used by medauth APIs.
type LintWarnings []LintWarning

// Codes describes the codes operation and its observable behavior.
//
// Codes returns the warning codes in lint order.
// Codes does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (ws LintWarnings) Codes() []string {
	codes := make([]string, 0, len(ws))
	for _, w := range ws {
		codes = append(codes, w.Code)
	}
	return codes
}

// BySeverity describes the bySeverity operation and its observable behavior.
//
// BySeverity returns the warnings at or above the given severity.
// BySeverity does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (ws LintWarnings) BySeverity(min LintSeverity) LintWarnings {
	var out LintWarnings
	for _, w := range ws {
		if w.Severity >= min {
			out = append(out, w)
		}
	}
	return out
}

// AsError describes the asError operation and its observable behavior.
//
// AsError may return an error when input validation, dependency calls, or security checks fail.
func (ws LintWarnings) AsError(min LintSeverity) error {
	filtered := ws.BySeverity(min)
	if len(filtered) == 0 {
		return nil
	}
	return fmt.Errorf("config lint: %s", strings.Join(filtered.Codes(), ", "))
}

// Lint inspects the configuration for settings that validate but are likely
// mistakes in a clinical deployment. Unlike Validate, Lint never blocks
// construction; callers decide what to do with the findings.
func (c *Config) Lint() LintWarnings {
	var ws LintWarnings

	warn := func(code string, severity LintSeverity, format string, args ...any) {
		ws = append(ws, LintWarning{
			Code:     code,
			Severity: severity,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	// Endpoints
	if c.Backend.BaseURL == "" {
		warn("backend_url_missing", LintHigh, "Backend.BaseURL is empty; session synchronization cannot reach the clinical backend")
	}
	if c.Identity.BaseURL == "" {
		warn("identity_url_missing", LintHigh, "Identity.BaseURL is empty; token refresh and sign-out revocation are disabled")
	}
	if c.Identity.BaseURL != "" && c.Identity.APIKey == "" {
		warn("identity_apikey_missing", LintMedium, "Identity.APIKey is empty; the identity provider will reject refresh grants")
	}
	if strings.HasPrefix(c.Backend.BaseURL, "http://") {
		warn("backend_plaintext", LintHigh, "Backend.BaseURL uses http; tokens for clinical data would travel unencrypted")
	}
	if strings.HasPrefix(c.Identity.BaseURL, "http://") {
		warn("identity_plaintext", LintHigh, "Identity.BaseURL uses http; refresh tokens would travel unencrypted")
	}

	// Token handling
	if c.Identity.Leeway > time.Minute {
		warn("leeway_large", LintMedium, "Identity.Leeway %s exceeds one minute; near-expired tokens will be refreshed far too eagerly", c.Identity.Leeway)
	}

	// Sync behavior
	if c.Sync.Timeout > time.Minute {
		warn("sync_timeout_long", LintLow, "Sync.Timeout %s is longer than a user will wait on the launch screen", c.Sync.Timeout)
	}

	// Persistence
	if c.Storage.Key == "" {
		warn("storage_key_missing", LintMedium, "Storage.Key is empty; the persisted session would collide with other applications")
	}

	// Audit
	if !c.Audit.Enabled {
		warn("audit_disabled", LintLow, "Audit.Enabled is false; session lifecycle events will not be recorded")
	}
	if c.Audit.Enabled && c.Audit.BufferSize < 64 {
		warn("audit_buffer_small", LintLow, "Audit.BufferSize %d is small; events will be dropped under burst load", c.Audit.BufferSize)
	}

	return ws
}
