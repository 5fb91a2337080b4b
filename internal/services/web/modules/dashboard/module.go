package dashboard

import (
	"net/http"

	module "github.com/louisbranch/invoicing/internal/services/web/module"
	"github.com/louisbranch/invoicing/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/invoicing/internal/services/web/routepath"
)

// Module provides the authenticated overview page.
type Module struct {
	gateway Gateway
	base    modulehandler.Base
}

// New returns a dashboard module reading from gateway.
func New(gateway Gateway, base modulehandler.Base) Module {
	return Module{gateway: gateway, base: base}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "dashboard" }

// Mount wires dashboard route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(newService(m.gateway), m.base))
	return module.Mount{Prefix: routepath.DashboardPrefix, Handler: mux}, nil
}
