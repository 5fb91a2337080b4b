// Package composition builds the application handler from the default module
// sets.
package composition

import (
	"net/http"

	webapp "github.com/louisbranch/invoicing/internal/services/web/app"
	module "github.com/louisbranch/invoicing/internal/services/web/module"
	"github.com/louisbranch/invoicing/internal/services/web/modules"
	"github.com/louisbranch/invoicing/internal/services/web/platform/requestmeta"
)

// ComposeInput describes the contracts needed to compose the application mux.
type ComposeInput struct {
	ResolveViewer       module.ResolveViewer
	ModuleDependencies  modules.Dependencies
	RequestSchemePolicy requestmeta.SchemePolicy
}

// ComposeAppHandler builds the web app handler with the default module sets.
func ComposeAppHandler(input ComposeInput) (http.Handler, error) {
	return webapp.Compose(webapp.ComposeInput{
		ResolveViewer:       input.ResolveViewer,
		PublicModules:       modules.DefaultPublicModules(input.ModuleDependencies),
		ProtectedModules:    modules.DefaultProtectedModules(input.ModuleDependencies),
		RequestSchemePolicy: input.RequestSchemePolicy,
	})
}
