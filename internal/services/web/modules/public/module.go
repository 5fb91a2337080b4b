// Package public serves the unauthenticated landing page and the health probe.
package public

import (
	"net/http"

	module "github.com/louisbranch/invoicing/internal/services/web/module"
	"github.com/louisbranch/invoicing/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/invoicing/internal/services/web/routepath"
)

// Module provides the root routes.
type Module struct {
	health module.HealthCheck
	base   modulehandler.Base
}

// New returns a public module. A nil health check always reports ok.
func New(health module.HealthCheck, base modulehandler.Base) Module {
	return Module{health: health, base: base}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string { return "public" }

// Mount wires public routes under the root prefix.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, handlers{Base: m.base, health: m.health})
	return module.Mount{Prefix: routepath.Root, Handler: mux}, nil
}

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Root+"{$}", h.handleRoot)
	mux.HandleFunc(http.MethodGet+" "+routepath.Health, h.handleHealth)
	mux.HandleFunc(http.MethodGet+" "+routepath.Favicon, h.handleFavicon)
	mux.HandleFunc(routepath.Root+"{rest...}", h.handleNotFound)
}
