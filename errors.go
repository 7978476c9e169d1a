package medauth

import "errors"

var (
	// ErrBridgeRejected is an exported constant or variable used by the session client.
	ErrBridgeRejected = errors.New("identity bridge rejected token pair")
	// ErrNormalization is an exported constant or variable used by the session client.
	ErrNormalization = errors.New("backend identity payload unusable")
	// ErrApprovalPending is an exported constant or variable used by the session client.
	ErrApprovalPending = errors.New("account approval pending")
	// ErrSyncFailed is an exported constant or variable used by the session client.
	ErrSyncFailed = errors.New("backend identity sync failed")
	// ErrNotAuthenticated is an exported constant or variable used by the session client.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrClientNotReady is an exported constant or variable used by the session client.
	ErrClientNotReady = errors.New("client not initialized")
	// ErrDeepLinkForeign is an exported constant or variable used by the session client.
	ErrDeepLinkForeign = errors.New("deep link does not match configured scheme")
	// ErrDeepLinkNoTokens is an exported constant or variable used by the session client.
	ErrDeepLinkNoTokens = errors.New("deep link carries no token pair")
)
