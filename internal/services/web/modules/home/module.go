// Package home serves the landing page.
package home

import (
	"errors"

	"github.com/go-chi/chi/v5"
	module "github.com/louisbranch/storyfront/internal/services/web/module"
	"github.com/louisbranch/storyfront/internal/services/web/routepath"
)

// Module provides the root landing route.
type Module struct {
	deps module.Dependencies
}

// New returns the home module.
func New(deps module.Dependencies) Module {
	return Module{deps: deps}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string {
	return "home"
}

// Mount wires the landing page at the exact root path.
func (m Module) Mount() (module.Mount, error) {
	if m.deps.Content == nil || m.deps.Pages == nil {
		return module.Mount{}, errors.New("home module requires content and pages")
	}
	r := chi.NewRouter()
	registerRoutes(r, newHandlers(newService(m.deps.Content), m.deps))
	return module.Mount{Prefix: routepath.HomeExact, Handler: r}, nil
}
