package categories

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/louisbranch/storyfront/internal/services/web/platform/httpx"
	"github.com/louisbranch/storyfront/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/storyfront/internal/services/web/templates"
)

func registerRoutes(r chi.Router, h handlers) {
	r.Use(middleware.GetHead)
	r.Get(routepath.CategoryPattern, h.handleCategory)
	r.NotFound(h.pages.NotFoundHandler(webtemplates.NotFoundCategory))
	r.MethodNotAllowed(httpx.MethodNotAllowed("GET, HEAD"))
}
