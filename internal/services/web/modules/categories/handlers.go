package categories

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	module "github.com/louisbranch/storyfront/internal/services/web/module"
	"github.com/louisbranch/storyfront/internal/services/web/platform/pagerender"
	"github.com/louisbranch/storyfront/internal/services/web/platform/weberror"
	webtemplates "github.com/louisbranch/storyfront/internal/services/web/templates"
)

type handlers struct {
	svc    service
	pages  *pagerender.Renderer
	logger *slog.Logger
}

func newHandlers(svc service, deps module.Dependencies) handlers {
	return handlers{svc: svc, pages: deps.Pages, logger: deps.LoggerOrDiscard()}
}

func (h handlers) handleCategory(w http.ResponseWriter, r *http.Request) {
	view := h.pages.Begin(w, r)
	category, err := h.svc.category(r.Context(), chi.URLParam(r, "slug"), view.Locale)
	if err != nil {
		weberror.WriteContentError(w, r, h.pages, view, h.logger, webtemplates.NotFoundCategory, err)
		return
	}
	h.pages.Write(w, r, view, pagerender.Page{
		Title:       category.Title,
		Description: category.Description,
		Body:        webtemplates.CategoryListing(view.Loc, view.Locale, category),
	})
}
