// Package app composes web modules into the root HTTP handler.
package app

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/louisbranch/invoicing/internal/services/web/authz"
	module "github.com/louisbranch/invoicing/internal/services/web/module"
	"github.com/louisbranch/invoicing/internal/services/web/platform/httpx"
	"github.com/louisbranch/invoicing/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/invoicing/internal/services/web/platform/sessioncookie"
	"github.com/louisbranch/invoicing/internal/services/web/platform/webctx"
	"github.com/louisbranch/invoicing/internal/services/web/routepath"
)

// DefaultExemptPaths never reach the session gate. Entries ending in "/"
// match by prefix.
var DefaultExemptPaths = []string{routepath.Health, routepath.StaticPrefix, routepath.Favicon}

// ComposeInput carries module groups and shared composition contracts.
type ComposeInput struct {
	ResolveViewer       module.ResolveViewer
	PublicModules       []module.Module
	ProtectedModules    []module.Module
	RequestSchemePolicy requestmeta.SchemePolicy
	ExemptPaths         []string
}

// Compose builds a root HTTP handler from module groups. Every request not
// exempt passes the session gate before reaching a module.
func Compose(input ComposeInput) (http.Handler, error) {
	root := http.NewServeMux()
	if input.ResolveViewer == nil {
		input.ResolveViewer = func(*http.Request) module.Viewer { return module.Viewer{} }
	}
	if input.ExemptPaths == nil {
		input.ExemptPaths = DefaultExemptPaths
	}
	seen := make(map[string]string)

	for _, feature := range input.PublicModules {
		if feature == nil {
			return nil, fmt.Errorf("public module is nil")
		}
		if err := mountPublicModule(root, feature, seen); err != nil {
			return nil, err
		}
	}

	protectedWrap := wrapProtectedModule(input.RequestSchemePolicy)
	for _, feature := range input.ProtectedModules {
		if feature == nil {
			return nil, fmt.Errorf("protected module is nil")
		}
		if err := mountProtectedModule(root, feature, seen, protectedWrap); err != nil {
			return nil, err
		}
	}

	return sessionGate(input.ResolveViewer, input.ExemptPaths)(root), nil
}

func mountModule(
	root *http.ServeMux,
	feature module.Module,
	handler http.Handler,
	prefix string,
	seen map[string]string,
) error {
	if previous, ok := seen[prefix]; ok {
		return fmt.Errorf("module %q duplicates prefix %q owned by module %q", feature.ID(), prefix, previous)
	}
	seen[prefix] = feature.ID()
	root.Handle(prefix, handler)
	return nil
}

// mountWithAlias registers prefix and its slashless form so "/login" does not
// bounce through the mux's trailing-slash redirect.
func mountWithAlias(root *http.ServeMux, feature module.Module, handler http.Handler, prefix string, seen map[string]string) error {
	if err := mountModule(root, feature, handler, prefix, seen); err != nil {
		return err
	}
	if alias := slashlessPrefixAlias(prefix); alias != "" {
		return mountModule(root, feature, handler, alias, seen)
	}
	return nil
}

func mountPublicModule(root *http.ServeMux, feature module.Module, seen map[string]string) error {
	mount, prefix, err := resolveMount(feature)
	if err != nil {
		return err
	}
	if isProtectedPrefix(prefix) {
		return fmt.Errorf("module %q has protected prefix %q in public group", feature.ID(), prefix)
	}
	return mountWithAlias(root, feature, mount.Handler, prefix, seen)
}

func mountProtectedModule(root *http.ServeMux, feature module.Module, seen map[string]string, wrap httpx.Middleware) error {
	mount, prefix, err := resolveMount(feature)
	if err != nil {
		return err
	}
	if !isProtectedPrefix(prefix) {
		return fmt.Errorf("module %q must mount under %s, got %q", feature.ID(), routepath.DashboardPrefix, prefix)
	}
	return mountWithAlias(root, feature, wrap(mount.Handler), prefix, seen)
}

func isProtectedPrefix(prefix string) bool {
	return strings.HasPrefix(prefix, routepath.DashboardPrefix)
}

func resolveMount(feature module.Module) (module.Mount, string, error) {
	mount, err := feature.Mount()
	if err != nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q: %w", feature.ID(), err)
	}
	if err := validatePrefix(mount.Prefix); err != nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q has invalid prefix %q: %w", feature.ID(), mount.Prefix, err)
	}
	if mount.Handler == nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q: handler is required", feature.ID())
	}
	return mount, mount.Prefix, nil
}

func validatePrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("prefix is required")
	}
	if strings.TrimSpace(prefix) != prefix {
		return fmt.Errorf("prefix must not include surrounding whitespace")
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("prefix must begin with /")
	}
	if !strings.HasSuffix(prefix, "/") {
		return fmt.Errorf("prefix must end with /")
	}
	return nil
}

func slashlessPrefixAlias(prefix string) string {
	if prefix == "/" || !strings.HasSuffix(prefix, "/") {
		return ""
	}
	return strings.TrimSuffix(prefix, "/")
}

func isExempt(path string, exempt []string) bool {
	for _, candidate := range exempt {
		if strings.HasSuffix(candidate, "/") {
			if strings.HasPrefix(path, candidate) {
				return true
			}
			continue
		}
		if path == candidate {
			return true
		}
	}
	return false
}

// sessionGate resolves the viewer once per request and applies authz.Decide.
func sessionGate(resolve module.ResolveViewer, exempt []string) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isExempt(r.URL.Path, exempt) {
				next.ServeHTTP(w, r)
				return
			}
			viewer := resolve(r)
			if viewer.SignedIn() {
				r = r.WithContext(webctx.WithViewer(r.Context(), viewer))
			}
			decision := authz.Decide(viewer.SignedIn(), r.URL.Path)
			switch decision.Outcome {
			case authz.Allow:
				next.ServeHTTP(w, r)
			case authz.Deny:
				httpx.WriteRedirect(w, r, routepath.LoginWithCallback(r.URL.RequestURI()))
			default:
				httpx.WriteRedirect(w, r, decision.Location)
			}
		})
	}
}

// requireAuth rejects protected requests that arrive without a resolved viewer.
func requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !webctx.Viewer(r).SignedIn() {
			httpx.WriteRedirect(w, r, routepath.LoginWithCallback(r.URL.RequestURI()))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func wrapProtectedModule(policy requestmeta.SchemePolicy) httpx.Middleware {
	csrfWrap := requireCookieSessionSameOrigin(policy)
	return func(next http.Handler) http.Handler {
		return requireAuth(csrfWrap(next))
	}
}

func requireCookieSessionSameOrigin(policy requestmeta.SchemePolicy) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isMutationMethod(r) || !hasSessionCookie(r) {
				next.ServeHTTP(w, r)
				return
			}
			if !requestmeta.HasSameOriginProof(r, policy) {
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isMutationMethod(r *http.Request) bool {
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}

func hasSessionCookie(r *http.Request) bool {
	_, ok := sessioncookie.Read(r)
	return ok
}
