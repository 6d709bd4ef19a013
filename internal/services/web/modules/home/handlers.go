package home

import (
	"log/slog"
	"net/http"

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

func (h handlers) handleHome(w http.ResponseWriter, r *http.Request) {
	view := h.pages.Begin(w, r)
	data, err := h.svc.home(r.Context(), view.Locale)
	if err != nil {
		weberror.WriteContentError(w, r, h.pages, view, h.logger, webtemplates.NotFoundPage, err)
		return
	}
	h.pages.Write(w, r, view, pagerender.Page{
		Title:       webtemplates.T(view.Loc, "site.name"),
		Description: webtemplates.T(view.Loc, "site.tagline"),
		Body:        webtemplates.Home(view.Loc, view.Locale, data),
	})
}
