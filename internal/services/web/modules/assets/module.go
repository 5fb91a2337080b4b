// Package assets serves the embedded stylesheet and other static files.
package assets

import (
	"io/fs"
	"net/http"

	module "github.com/louisbranch/invoicing/internal/services/web/module"
	"github.com/louisbranch/invoicing/internal/services/web/routepath"
	"github.com/louisbranch/invoicing/internal/services/web/static"
)

// cacheControl applies to every static response.
const cacheControl = "public, max-age=3600"

// Module serves files from an fs.FS under the static prefix.
type Module struct {
	files fs.FS
}

// New returns an assets module over the embedded static files.
func New() Module {
	return NewWithFS(static.FS)
}

// NewWithFS returns an assets module over files.
func NewWithFS(files fs.FS) Module {
	return Module{files: files}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string { return "assets" }

// Mount wires the static file server.
func (m Module) Mount() (module.Mount, error) {
	files := http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(m.files)))
	mux := http.NewServeMux()
	mux.Handle(http.MethodGet+" "+routepath.StaticPrefix, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", cacheControl)
		files.ServeHTTP(w, r)
	}))
	return module.Mount{Prefix: routepath.StaticPrefix, Handler: mux}, nil
}
