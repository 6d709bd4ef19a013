// Package consent serves the consent decision endpoints and the event
// stream that keeps open views in sync.
package consent

import (
	"errors"

	"github.com/go-chi/chi/v5"
	module "github.com/louisbranch/storyfront/internal/services/web/module"
	"github.com/louisbranch/storyfront/internal/services/web/routepath"
)

// Module provides the /consent/ routes.
type Module struct {
	deps module.Dependencies
}

// New returns the consent module.
func New(deps module.Dependencies) Module {
	return Module{deps: deps}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string {
	return "consent"
}

// Mount wires consent routes under /consent/.
func (m Module) Mount() (module.Mount, error) {
	if m.deps.Gate == nil || m.deps.Pages == nil {
		return module.Mount{}, errors.New("consent module requires a gate and pages")
	}
	r := chi.NewRouter()
	registerRoutes(r, newHandlers(m.deps))
	return module.Mount{Prefix: routepath.ConsentPrefix, Handler: r}, nil
}
