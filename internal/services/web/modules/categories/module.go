// Package categories serves per-category post listings.
package categories

import (
	"errors"

	"github.com/go-chi/chi/v5"
	module "github.com/louisbranch/storyfront/internal/services/web/module"
	"github.com/louisbranch/storyfront/internal/services/web/routepath"
)

// Module provides the /categories/ routes.
type Module struct {
	deps module.Dependencies
}

// New returns the categories module.
func New(deps module.Dependencies) Module {
	return Module{deps: deps}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string {
	return "categories"
}

// Mount wires category routes under /categories/.
func (m Module) Mount() (module.Mount, error) {
	if m.deps.Content == nil || m.deps.Pages == nil {
		return module.Mount{}, errors.New("categories module requires content and pages")
	}
	r := chi.NewRouter()
	registerRoutes(r, newHandlers(newService(m.deps.Content), m.deps))
	return module.Mount{Prefix: routepath.CategoriesPrefix, Handler: r}, nil
}
