package invoices

import (
	"net/http"

	module "github.com/louisbranch/invoicing/internal/services/web/module"
	"github.com/louisbranch/invoicing/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/invoicing/internal/services/web/routepath"
)

// Module provides the invoice listing and the create, edit, and delete flows.
type Module struct {
	gateway Gateway
	mutator Mutator
	cache   ListingCache
	base    modulehandler.Base
}

// New returns an invoices module. A nil cache disables listing caching.
func New(gateway Gateway, mutator Mutator, cache ListingCache, base modulehandler.Base) Module {
	return Module{gateway: gateway, mutator: mutator, cache: cache, base: base}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "invoices" }

// Mount wires invoice route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(newService(m.gateway, m.mutator, m.cache), m.base))
	return module.Mount{Prefix: routepath.InvoicesPrefix, Handler: mux}, nil
}
