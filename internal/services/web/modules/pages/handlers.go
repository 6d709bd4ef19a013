package pages

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

func (h handlers) handlePage(w http.ResponseWriter, r *http.Request) {
	view := h.pages.Begin(w, r)
	page, err := h.svc.page(r.Context(), chi.URLParam(r, "slug"), view.Locale)
	if err != nil {
		weberror.WriteContentError(w, r, h.pages, view, h.logger, webtemplates.NotFoundPage, err)
		return
	}
	h.pages.Write(w, r, view, pagerender.Page{
		Title:       page.view.Title,
		Description: page.description,
		Body:        webtemplates.CMSPage(page.view),
	})
}
