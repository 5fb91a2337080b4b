// Package modulehandler provides a composable base for web module handlers.
//
// Modules embed Base to share page rendering, flash notices and error pages.
package modulehandler

import (
	"context"
	"net/http"

	"github.com/a-h/templ"

	module "github.com/louisbranch/invoicing/internal/services/web/module"
	apperrors "github.com/louisbranch/invoicing/internal/services/web/platform/errors"
	"github.com/louisbranch/invoicing/internal/services/web/platform/flash"
	"github.com/louisbranch/invoicing/internal/services/web/platform/httpx"
	"github.com/louisbranch/invoicing/internal/services/web/platform/pagerender"
	"github.com/louisbranch/invoicing/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/invoicing/internal/services/web/platform/webctx"
)

// Base carries the shared request-scoped helpers used by module handlers.
type Base struct {
	policy   requestmeta.SchemePolicy
	renderer pagerender.Renderer
}

// NewBase builds a handler base whose cookies follow policy.
func NewBase(policy requestmeta.SchemePolicy) Base {
	return Base{policy: policy, renderer: pagerender.New(policy)}
}

// Policy returns the scheme policy used for cookies.
func (b Base) Policy() requestmeta.SchemePolicy {
	return b.policy
}

// Viewer returns the authenticated viewer for the request.
func (b Base) Viewer(r *http.Request) module.Viewer {
	return webctx.Viewer(r)
}

// RequestContext returns the request context with a nil-safe fallback.
func (b Base) RequestContext(r *http.Request) context.Context {
	return httpx.RequestContext(r)
}

// WritePage renders a module page (HTMX-aware) with the given title and body.
func (b Base) WritePage(w http.ResponseWriter, r *http.Request, title string, statusCode int, body templ.Component) {
	b.renderer.Write(w, r, pagerender.Page{Title: title, StatusCode: statusCode, Body: body})
}

// WriteError renders an error page with a link back to backPath.
func (b Base) WriteError(w http.ResponseWriter, r *http.Request, err error, backPath string) {
	b.renderer.WriteError(w, r, err, backPath)
}

// WriteNotFound renders a 404 error page.
func (b Base) WriteNotFound(w http.ResponseWriter, r *http.Request, message string, backPath string) {
	b.renderer.WriteError(w, r, apperrors.E(apperrors.KindNotFound, message), backPath)
}

// Flash stores a one-time notice for the next page.
func (b Base) Flash(w http.ResponseWriter, r *http.Request, notice flash.Notice) {
	flash.Write(w, r, notice, b.policy)
}

// Redirect writes an HTMX-aware redirect; the handler must return after it.
func (b Base) Redirect(w http.ResponseWriter, r *http.Request, location string) {
	httpx.WriteRedirect(w, r, location)
}
