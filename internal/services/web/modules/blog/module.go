// Package blog serves the post index and post detail pages.
package blog

import (
	"errors"

	"github.com/go-chi/chi/v5"
	module "github.com/louisbranch/storyfront/internal/services/web/module"
	"github.com/louisbranch/storyfront/internal/services/web/routepath"
)

// Module provides the /blog/ routes.
type Module struct {
	deps module.Dependencies
}

// New returns the blog module.
func New(deps module.Dependencies) Module {
	return Module{deps: deps}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string {
	return "blog"
}

// Mount wires blog routes under /blog/.
func (m Module) Mount() (module.Mount, error) {
	if m.deps.Content == nil || m.deps.Pages == nil {
		return module.Mount{}, errors.New("blog module requires content and pages")
	}
	r := chi.NewRouter()
	registerRoutes(r, newHandlers(newService(m.deps.Content), m.deps))
	return module.Mount{Prefix: routepath.BlogPrefix, Handler: r}, nil
}
