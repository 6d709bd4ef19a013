package pages

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/louisbranch/storyfront/internal/services/web/platform/httpx"
	"github.com/louisbranch/storyfront/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/storyfront/internal/services/web/templates"
)

func registerRoutes(r chi.Router, h handlers) {
	r.Use(middleware.GetHead)
	r.Get(routepath.PagePattern, h.handlePage)
	r.NotFound(h.pages.NotFoundHandler(webtemplates.NotFoundPage))
	r.MethodNotAllowed(httpx.MethodNotAllowed("GET, HEAD"))
}
