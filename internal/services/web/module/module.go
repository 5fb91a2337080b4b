// Package module defines the feature contract used by web composition.
package module

import (
	"context"
	"net/http"
)

// Viewer contains user-facing chrome data for authenticated pages.
type Viewer struct {
	UserID      string
	SessionID   string
	DisplayName string
	Email       string
}

// SignedIn reports whether the viewer belongs to an authenticated session.
func (v Viewer) SignedIn() bool {
	return v.UserID != ""
}

// ResolveViewer resolves the viewer for a request; the zero Viewer means
// anonymous.
type ResolveViewer func(*http.Request) Viewer

// HealthCheck reports an error when a dependency is not usable.
type HealthCheck func(context.Context) error

// Mount describes a module route mount.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Module declares the minimum contract required by web composition.
type Module interface {
	ID() string
	Mount() (Mount, error)
}
