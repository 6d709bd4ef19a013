// Package authors serves author profile pages.
package authors

import (
	"errors"

	"github.com/go-chi/chi/v5"
	module "github.com/louisbranch/storyfront/internal/services/web/module"
	"github.com/louisbranch/storyfront/internal/services/web/routepath"
)

// Module provides the /authors/ routes.
type Module struct {
	deps module.Dependencies
}

// New returns the authors module.
func New(deps module.Dependencies) Module {
	return Module{deps: deps}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string {
	return "authors"
}

// Mount wires author routes under /authors/.
func (m Module) Mount() (module.Mount, error) {
	if m.deps.Content == nil || m.deps.Pages == nil {
		return module.Mount{}, errors.New("authors module requires content and pages")
	}
	r := chi.NewRouter()
	registerRoutes(r, newHandlers(newService(m.deps.Content), m.deps))
	return module.Mount{Prefix: routepath.AuthorsPrefix, Handler: r}, nil
}
