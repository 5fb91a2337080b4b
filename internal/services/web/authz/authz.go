// Package authz decides whether a request path may proceed given the
// caller's authentication state.
package authz

import (
	"strings"

	"github.com/louisbranch/invoicing/internal/services/web/routepath"
)

// Outcome is the kind of routing decision.
type Outcome int

const (
	// Allow lets the request through.
	Allow Outcome = iota
	// Deny rejects the request; callers send it to the login page.
	Deny
	// Redirect sends the caller to Decision.Location.
	Redirect
)

// Decision is the result of Decide.
type Decision struct {
	Outcome  Outcome
	Location string
}

// RedirectTo returns a Redirect decision for location.
func RedirectTo(location string) Decision {
	return Decision{Outcome: Redirect, Location: location}
}

// Decide applies the session gate: dashboard paths require authentication,
// and authenticated callers elsewhere are sent to the dashboard home.
func Decide(isAuthenticated bool, path string) Decision {
	if IsProtected(path) {
		if isAuthenticated {
			return Decision{Outcome: Allow}
		}
		return Decision{Outcome: Deny}
	}
	if isAuthenticated {
		return RedirectTo(routepath.Dashboard)
	}
	return Decision{Outcome: Allow}
}

// IsProtected reports whether path is under the dashboard.
func IsProtected(path string) bool {
	return path == routepath.Dashboard || strings.HasPrefix(path, routepath.DashboardPrefix)
}
