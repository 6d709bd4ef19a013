// Package weberror maps content lookup failures to error pages.
package weberror

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/louisbranch/storyfront/internal/services/web/content"
	"github.com/louisbranch/storyfront/internal/services/web/platform/pagerender"
	webtemplates "github.com/louisbranch/storyfront/internal/services/web/templates"
)

// HTTPStatus returns the response status for a content error.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, content.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// WriteContentError renders the not-found view of kind for missing records
// and the server-error view for every other failure, which is logged.
func WriteContentError(w http.ResponseWriter, r *http.Request, pages *pagerender.Renderer, view pagerender.View, logger *slog.Logger, kind webtemplates.NotFoundKind, err error) {
	if HTTPStatus(err) == http.StatusNotFound {
		pages.NotFound(w, r, view, kind)
		return
	}
	if logger != nil {
		logger.Error("load content", "error", err, "kind", string(kind), "path", r.URL.Path)
	}
	pages.ServerError(w, r, view)
}
