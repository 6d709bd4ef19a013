package home

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/louisbranch/storyfront/internal/services/web/platform/httpx"
	"github.com/louisbranch/storyfront/internal/services/web/routepath"
)

func registerRoutes(r chi.Router, h handlers) {
	r.Use(middleware.GetHead)
	r.Get(routepath.Root, h.handleHome)
	r.MethodNotAllowed(httpx.MethodNotAllowed("GET, HEAD"))
}
