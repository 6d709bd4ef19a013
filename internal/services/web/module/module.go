// Package module defines the feature contract used by web composition.
package module

import (
	"log/slog"
	"net/http"

	"github.com/louisbranch/storyfront/internal/services/web/content"
	"github.com/louisbranch/storyfront/internal/services/web/platform/consentgate"
	"github.com/louisbranch/storyfront/internal/services/web/platform/observability"
	"github.com/louisbranch/storyfront/internal/services/web/platform/pagerender"
	"github.com/louisbranch/storyfront/internal/services/web/platform/requestmeta"
)

// Mount describes a module route mount.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Module declares the minimum contract required by web composition.
type Module interface {
	ID() string
	Mount() (Mount, error)
}

// Dependencies carries the collaborators shared by feature modules.
type Dependencies struct {
	Content      content.Source
	Pages        *pagerender.Renderer
	Gate         *consentgate.Gate
	Metrics      *observability.Metrics
	Logger       *slog.Logger
	SchemePolicy requestmeta.SchemePolicy
	// Shutdown is closed when the server begins a graceful shutdown.
	// Long-lived responses return once it closes. Nil never closes.
	Shutdown <-chan struct{}
}

// LoggerOrDiscard returns deps.Logger or a discarding logger.
func (deps Dependencies) LoggerOrDiscard() *slog.Logger {
	if deps.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return deps.Logger
}
