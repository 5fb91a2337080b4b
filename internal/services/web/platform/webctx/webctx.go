// Package webctx provides shared web request context helpers.
package webctx

import (
	"context"
	"net/http"

	"github.com/louisbranch/invoicing/internal/platform/requestctx"
	module "github.com/louisbranch/invoicing/internal/services/web/module"
)

type viewerContextKey struct{}

// WithViewer returns ctx carrying viewer and its user and session ids.
func WithViewer(ctx context.Context, viewer module.Viewer) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, viewerContextKey{}, viewer)
	if viewer.UserID != "" {
		ctx = requestctx.WithUserID(ctx, viewer.UserID)
	}
	if viewer.SessionID != "" {
		ctx = requestctx.WithSessionID(ctx, viewer.SessionID)
	}
	return ctx
}

// Viewer returns the viewer stored on the request, or the anonymous viewer.
func Viewer(r *http.Request) module.Viewer {
	if r == nil {
		return module.Viewer{}
	}
	viewer, _ := r.Context().Value(viewerContextKey{}).(module.Viewer)
	return viewer
}
