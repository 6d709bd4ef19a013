package authors

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

func (h handlers) handleAuthor(w http.ResponseWriter, r *http.Request) {
	view := h.pages.Begin(w, r)
	author, err := h.svc.author(r.Context(), chi.URLParam(r, "slug"), view.Locale)
	if err != nil {
		weberror.WriteContentError(w, r, h.pages, view, h.logger, webtemplates.NotFoundAuthor, err)
		return
	}
	h.pages.Write(w, r, view, pagerender.Page{
		Title:       author.Name,
		Description: author.Bio,
		Body:        webtemplates.AuthorProfile(view.Loc, view.Locale, author),
	})
}
