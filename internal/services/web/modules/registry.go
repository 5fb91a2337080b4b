// Package modules composes the web modules served by the dashboard.
package modules

import (
	module "github.com/louisbranch/invoicing/internal/services/web/module"
	"github.com/louisbranch/invoicing/internal/services/web/modules/assets"
	"github.com/louisbranch/invoicing/internal/services/web/modules/customers"
	"github.com/louisbranch/invoicing/internal/services/web/modules/dashboard"
	"github.com/louisbranch/invoicing/internal/services/web/modules/invoices"
	"github.com/louisbranch/invoicing/internal/services/web/modules/public"
	"github.com/louisbranch/invoicing/internal/services/web/modules/publicauth"
	"github.com/louisbranch/invoicing/internal/services/web/platform/modulehandler"
)

// Module aliases the module interface contract.
type Module = module.Module

// Dependencies carries the backends each module reads from. Each field is
// typed as the narrow interface defined by the consuming module, so modules
// cannot reach backends they were not given. Nil fields render the module as
// unavailable.
type Dependencies struct {
	Base   modulehandler.Base
	Health module.HealthCheck

	Authenticator publicauth.Authenticator
	Sessions      publicauth.SessionRevoker

	Dashboard dashboard.Gateway

	Invoices        invoices.Gateway
	InvoiceMutator  invoices.Mutator
	InvoicesListing invoices.ListingCache

	Customers customers.Gateway
}

// DefaultPublicModules returns modules reachable without a session.
func DefaultPublicModules(deps Dependencies) []Module {
	return []Module{
		public.New(deps.Health, deps.Base),
		publicauth.New(deps.Authenticator, deps.Base),
		assets.New(),
	}
}

// DefaultProtectedModules returns modules mounted behind the session gate.
func DefaultProtectedModules(deps Dependencies) []Module {
	return []Module{
		dashboard.New(deps.Dashboard, deps.Base),
		invoices.New(deps.Invoices, deps.InvoiceMutator, deps.InvoicesListing, deps.Base),
		customers.New(deps.Customers, deps.Base),
		publicauth.NewSignOut(deps.Sessions, deps.Base),
	}
}
