package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/invoicing/internal/platform/timeouts"
	invoicesstorage "github.com/louisbranch/invoicing/internal/services/invoices/storage"
	"github.com/louisbranch/invoicing/internal/services/web/composition"
	module "github.com/louisbranch/invoicing/internal/services/web/module"
	"github.com/louisbranch/invoicing/internal/services/web/modules"
	"github.com/louisbranch/invoicing/internal/services/web/modules/invoices"
	"github.com/louisbranch/invoicing/internal/services/web/modules/publicauth"
	"github.com/louisbranch/invoicing/internal/services/web/platform/httpx"
	"github.com/louisbranch/invoicing/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/invoicing/internal/services/web/platform/observability"
	"github.com/louisbranch/invoicing/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/invoicing/internal/services/web/viewcache"
)

// Config defines the inputs for the dashboard HTTP server.
type Config struct {
	HTTPAddr            string
	TrustForwardedProto bool
	// RequestTimeout caps a single request; zero uses timeouts.Request.
	RequestTimeout time.Duration
	// Logger receives request logs; nil uses the standard logger.
	Logger *log.Logger
}

// Dependencies carries the backends the server composes into modules.
type Dependencies struct {
	Sessions      SessionResolver
	Users         UserReader
	Authenticator publicauth.Authenticator
	Invoices      invoicesstorage.Store
	Mutator       invoices.Mutator
	// Cache may be nil, which disables listing caching.
	Cache  *viewcache.Cache
	Health module.HealthCheck
}

// Server hosts the dashboard HTTP server.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	cache      *viewcache.Cache
}

// NewHandler builds the full request pipeline without binding a listener.
func NewHandler(config Config, deps Dependencies) (http.Handler, error) {
	policy := requestmeta.SchemePolicy{TrustForwardedProto: config.TrustForwardedProto}

	moduleDeps := modules.Dependencies{
		Base:           modulehandler.NewBase(policy),
		Health:         deps.Health,
		Authenticator:  deps.Authenticator,
		Sessions:       deps.Sessions,
		Dashboard:      deps.Invoices,
		Invoices:       deps.Invoices,
		InvoiceMutator: deps.Mutator,
		Customers:      deps.Invoices,
	}
	// A nil *viewcache.Cache must stay a nil interface.
	if deps.Cache != nil {
		moduleDeps.InvoicesListing = deps.Cache
	}

	app, err := composition.ComposeAppHandler(composition.ComposeInput{
		ResolveViewer:       newViewerResolver(deps.Sessions, deps.Users),
		ModuleDependencies:  moduleDeps,
		RequestSchemePolicy: policy,
	})
	if err != nil {
		return nil, fmt.Errorf("compose app handler: %w", err)
	}

	requestTimeout := config.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = timeouts.Request
	}
	return httpx.Chain(app,
		httpx.RequestID(),
		httpx.RecoverPanic(),
		observability.RequestLogger(config.Logger),
		observability.Trace(nil),
		httpx.Timeout(requestTimeout),
	), nil
}

// NewServer builds a configured dashboard server.
func NewServer(config Config, deps Dependencies) (*Server, error) {
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(config, deps)
	if err != nil {
		return nil, err
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
			IdleTimeout:       timeouts.Idle,
		},
		cache: deps.Cache,
	}, nil
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}
	s.cache.Sweep(ctx)

	serveErr := make(chan error, 1)
	log.Printf("web listening on %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}
