package guard

import (
	"github.com/bitacora-medica/medauth/session"
)

const (
	// RouteLogin is an exported constant or variable used by route gating.
	RouteLogin = "/auth/login"
	// RoutePendingApproval is an exported constant or variable used by route gating.
	RoutePendingApproval = "/pending-approval"
	// RouteDashboard is an exported constant or variable used by route gating.
	RouteDashboard = "/dashboard"
)

// Phase is the coarse position of a session in the access state machine.
type Phase int

const (
	// PhaseAnonymous is an exported constant or variable used by route gating.
	PhaseAnonymous Phase = iota
	// PhasePendingApproval is an exported constant or variable used by route gating.
	PhasePendingApproval
	// PhaseActive is an exported constant or variable used by route gating.
	PhaseActive
)

// String describes the string operation and its observable behavior.
//
// String returns a stable name suitable for logs and CLI output.
func (p Phase) String() string {
	switch p {
	case PhaseAnonymous:
		return "ANONYMOUS"
	case PhasePendingApproval:
		return "PENDING_APPROVAL"
	case PhaseActive:
		return "ACTIVE"
	default:
		return "UNKNOWN"
	}
}

// PhaseOf classifies a session snapshot. Only an explicit ACTIVE status
// reaches PhaseActive; a missing profile counts as pending.
func PhaseOf(st session.State) Phase {
	if !st.Authenticated {
		return PhaseAnonymous
	}
	if st.Profile != nil && st.Profile.Status == session.StatusActive {
		return PhaseActive
	}
	return PhasePendingApproval
}

// Decision is the outcome of a guard evaluation. When Allow is false,
// RedirectTo names the route the user belongs on instead.
type Decision struct {
	Allow      bool
	RedirectTo string
}

// Protected gates the main application. Anonymous users go to login and
// unapproved users to the pending-approval screen.
func Protected(st session.State) Decision {
	if !st.Authenticated {
		return Decision{RedirectTo: RouteLogin}
	}
	if st.Profile != nil && st.Profile.Status == session.StatusInactive {
		return Decision{RedirectTo: RoutePendingApproval}
	}
	return Decision{Allow: true}
}

// PreAuth gates the login and pending-approval screens. A fully active user
// has no business there and is sent to the dashboard; a pending user stays,
// since both screens are part of the pending flow.
func PreAuth(st session.State) Decision {
	if st.Authenticated && st.Profile != nil && st.Profile.Status == session.StatusActive {
		return Decision{RedirectTo: RouteDashboard}
	}
	return Decision{Allow: true}
}
