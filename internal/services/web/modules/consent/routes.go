package consent

import (
	"github.com/go-chi/chi/v5"
	platformconsent "github.com/louisbranch/storyfront/internal/platform/consent"
	"github.com/louisbranch/storyfront/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/storyfront/internal/services/web/templates"
)

func registerRoutes(r chi.Router, h handlers) {
	r.Post(routepath.ConsentAccept, h.handleDecision(platformconsent.Accepted))
	r.Post(routepath.ConsentReject, h.handleDecision(platformconsent.Rejected))
	r.Get(routepath.ConsentEvents, h.handleEvents)
	r.NotFound(h.pages.NotFoundHandler(webtemplates.NotFoundPage))
}
