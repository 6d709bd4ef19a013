package consent

import (
	"log/slog"
	"net/http"
	"net/url"

	platformconsent "github.com/louisbranch/storyfront/internal/platform/consent"
	module "github.com/louisbranch/storyfront/internal/services/web/module"
	"github.com/louisbranch/storyfront/internal/services/web/platform/consentgate"
	"github.com/louisbranch/storyfront/internal/services/web/platform/httpx"
	"github.com/louisbranch/storyfront/internal/services/web/platform/observability"
	"github.com/louisbranch/storyfront/internal/services/web/platform/pagerender"
	"github.com/louisbranch/storyfront/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/storyfront/internal/services/web/routepath"
)

const (
	returnToField   = "return_to"
	maxFormBodySize = 4 << 10
)

type handlers struct {
	gate     *consentgate.Gate
	pages    *pagerender.Renderer
	metrics  *observability.Metrics
	policy   requestmeta.SchemePolicy
	logger   *slog.Logger
	shutdown <-chan struct{}
}

func newHandlers(deps module.Dependencies) handlers {
	return handlers{
		gate:     deps.Gate,
		pages:    deps.Pages,
		metrics:  deps.Metrics,
		policy:   deps.SchemePolicy,
		logger:   deps.LoggerOrDiscard(),
		shutdown: deps.Shutdown,
	}
}

type decisionResponse struct {
	Choice string                 `json:"choice"`
	Signal platformconsent.Signal `json:"signal"`
}

func (h handlers) handleDecision(choice platformconsent.Choice) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requestmeta.HasSameOriginProof(r, h.policy) {
			h.writeError(w, r, http.StatusForbidden)
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxFormBodySize)

		session, err := h.gate.Open(w, r, consentgate.Hooks{})
		if err != nil {
			h.logger.Error("open consent session", "error", err)
			h.writeError(w, r, http.StatusInternalServerError)
			return
		}
		defer session.Close()

		decide := session.Bootstrap.Reject
		if choice == platformconsent.Accepted {
			decide = session.Bootstrap.Accept
		}
		if err := decide(r.Context()); err != nil {
			h.logger.Error("record consent decision", "error", err, "choice", choice.String(), "visitor_id", session.VisitorID)
			h.writeError(w, r, http.StatusInternalServerError)
			return
		}
		h.metrics.IncrementConsentDecision(choice.String())

		signal, ok := session.Signal()
		if !ok {
			signal = platformconsent.SignalFor(choice)
		}
		if httpx.WantsJSON(r) {
			_ = httpx.WriteJSON(w, http.StatusOK, decisionResponse{Choice: choice.String(), Signal: signal})
			return
		}
		httpx.WriteRedirect(w, r, returnTo(r))
	}
}

func (h handlers) writeError(w http.ResponseWriter, r *http.Request, status int) {
	if httpx.WantsJSON(r) {
		_ = httpx.WriteJSONError(w, status, http.StatusText(status))
		return
	}
	http.Error(w, http.StatusText(status), status)
}

// returnTo picks the local redirect target of a form post: the return_to
// field, then the referring path on this host, then the root.
func returnTo(r *http.Request) string {
	if target := r.PostFormValue(returnToField); routepath.IsLocalRedirect(target) {
		return target
	}
	if referer, err := url.Parse(r.Referer()); err == nil && referer.Host == r.Host && referer.Path != "" {
		target := referer.RequestURI()
		if routepath.IsLocalRedirect(target) {
			return target
		}
	}
	return routepath.Root
}
