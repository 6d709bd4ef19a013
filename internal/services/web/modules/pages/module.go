// Package pages serves standalone CMS pages and the site-wide not-found
// fallback.
package pages

import (
	"errors"

	"github.com/go-chi/chi/v5"
	module "github.com/louisbranch/storyfront/internal/services/web/module"
	"github.com/louisbranch/storyfront/internal/services/web/routepath"
)

// Module owns the root subtree. Every path no other module claims lands
// here.
type Module struct {
	deps module.Dependencies
}

// New returns the pages module.
func New(deps module.Dependencies) Module {
	return Module{deps: deps}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string {
	return "pages"
}

// Mount wires CMS pages at /{slug}.
func (m Module) Mount() (module.Mount, error) {
	if m.deps.Content == nil || m.deps.Pages == nil {
		return module.Mount{}, errors.New("pages module requires content and pages")
	}
	r := chi.NewRouter()
	registerRoutes(r, newHandlers(newService(m.deps.Content), m.deps))
	return module.Mount{Prefix: routepath.Root, Handler: r}, nil
}
