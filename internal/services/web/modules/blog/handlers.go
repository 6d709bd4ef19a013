package blog

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

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	view := h.pages.Begin(w, r)
	posts, err := h.svc.index(r.Context(), view.Locale)
	if err != nil {
		weberror.WriteContentError(w, r, h.pages, view, h.logger, webtemplates.NotFoundPage, err)
		return
	}
	h.pages.Write(w, r, view, pagerender.Page{
		Title: webtemplates.T(view.Loc, "site.blog.title"),
		Body:  webtemplates.PostList(view.Loc, view.Locale, posts),
	})
}

func (h handlers) handlePost(w http.ResponseWriter, r *http.Request) {
	view := h.pages.Begin(w, r)
	post, err := h.svc.post(r.Context(), chi.URLParam(r, "slug"), view.Locale)
	if err != nil {
		weberror.WriteContentError(w, r, h.pages, view, h.logger, webtemplates.NotFoundPost, err)
		return
	}
	h.pages.Write(w, r, view, pagerender.Page{
		Title:       post.Title,
		Description: post.Excerpt,
		Body:        webtemplates.PostDetail(view.Loc, view.Locale, post),
	})
}
