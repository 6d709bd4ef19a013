// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/louisbranch/storyfront/internal/platform/consent"
	"github.com/louisbranch/storyfront/internal/platform/i18n"
	"github.com/louisbranch/storyfront/internal/platform/i18n/catalog"
	"github.com/louisbranch/storyfront/internal/services/web/platform/consentgate"
	"github.com/louisbranch/storyfront/internal/services/web/platform/httpx"
	"github.com/louisbranch/storyfront/internal/services/web/platform/langpref"
	"github.com/louisbranch/storyfront/internal/services/web/platform/observability"
	webtemplates "github.com/louisbranch/storyfront/internal/services/web/templates"
)

// Config wires a Renderer. Only Gate is required.
type Config struct {
	Catalog     *catalog.Bundle
	Gate        *consentgate.Gate
	Metrics     *observability.Metrics
	Logger      *slog.Logger
	GoogleTagID string
	Now         func() time.Time
}

// Renderer writes full HTML pages and records their page views.
type Renderer struct {
	catalog     *catalog.Bundle
	gate        *consentgate.Gate
	metrics     *observability.Metrics
	logger      *slog.Logger
	googleTagID string
	now         func() time.Time
}

// New returns a Renderer.
func New(cfg Config) *Renderer {
	r := &Renderer{
		catalog:     cfg.Catalog,
		gate:        cfg.Gate,
		metrics:     cfg.Metrics,
		logger:      cfg.Logger,
		googleTagID: cfg.GoogleTagID,
		now:         cfg.Now,
	}
	if r.catalog == nil {
		r.catalog = catalog.Default()
	}
	if r.gate == nil {
		r.gate = consentgate.New(consentgate.Config{Logger: cfg.Logger})
	}
	if r.logger == nil {
		r.logger = slog.New(slog.DiscardHandler)
	}
	if r.now == nil {
		r.now = time.Now
	}
	return r
}

// View is the language state of one request.
type View struct {
	Locale i18n.Locale
	Loc    webtemplates.Localizer
}

// Page describes one HTML response.
type Page struct {
	Title       string
	Description string
	StatusCode  int
	Body        templ.Component
}

type emptyComponent struct{}

func (emptyComponent) Render(context.Context, io.Writer) error {
	return nil
}

// Begin resolves the request locale, persisting an explicit selection.
func (rr *Renderer) Begin(w http.ResponseWriter, r *http.Request) View {
	locale := langpref.ResolveAndPersist(w, r)
	return View{Locale: locale, Loc: catalog.NewPrinter(locale)}
}

// NotFoundHandler answers every request with the not-found view of kind.
func (rr *Renderer) NotFoundHandler(kind webtemplates.NotFoundKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rr.NotFound(w, r, rr.Begin(w, r), kind)
	}
}

const varyHeader = "Accept-Language, Cookie"

// Write renders page inside the site layout. A successful GET records a
// page view for the request URL.
func (rr *Renderer) Write(w http.ResponseWriter, r *http.Request, view View, page Page) {
	if w == nil {
		return
	}
	// Rendered pages depend on the negotiated locale and the consent cookies.
	w.Header().Set("Vary", varyHeader)
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	body := page.Body
	if body == nil {
		body = emptyComponent{}
	}

	session, err := rr.gate.Open(w, r, consentgate.Hooks{})
	if err != nil {
		rr.logger.Error("open consent session", "error", err, "path", r.URL.Path)
	}
	defer session.Close()

	ctx := httpx.RequestContext(r)
	var buf bytes.Buffer
	layout := webtemplates.Layout(rr.pageContext(r, view, page, session))
	if err := layout.Render(templ.WithChildren(ctx, body), &buf); err != nil {
		rr.logger.Error("render page", "error", err, "path", r.URL.Path)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(buf.Bytes())

	if statusCode == http.StatusOK && session != nil {
		session.Navigate(r)
		rr.metrics.IncrementPageView(session.Bootstrap.Capturing())
	}
}

// NotFound writes the not-found view of kind with status 404.
func (rr *Renderer) NotFound(w http.ResponseWriter, r *http.Request, view View, kind webtemplates.NotFoundKind) {
	cfg := webtemplates.NotFoundFor(kind, rr.catalog)
	rr.Write(w, r, view, Page{
		Title:      cfg.Heading(view.Locale),
		StatusCode: http.StatusNotFound,
		Body:       webtemplates.NotFound(cfg, view.Locale),
	})
}

// ServerError writes the shared failure view with status 500.
func (rr *Renderer) ServerError(w http.ResponseWriter, r *http.Request, view View) {
	rr.Write(w, r, view, Page{
		Title:      webtemplates.T(view.Loc, "error.server.title"),
		StatusCode: http.StatusInternalServerError,
		Body:       webtemplates.ServerError(view.Loc),
	})
}

func (rr *Renderer) pageContext(r *http.Request, view View, page Page, session *consentgate.Session) webtemplates.PageContext {
	path, query := "", ""
	if r.URL != nil {
		path, query = r.URL.Path, r.URL.RawQuery
	}
	choice := consent.Unset
	if session != nil {
		choice = session.Bootstrap.Choice()
	}
	options := langpref.Options(view.Locale, path, query, func(locale i18n.Locale) string {
		return webtemplates.T(view.Loc, "site.lang."+locale.String())
	})
	languageOptions := make([]webtemplates.LanguageOption, 0, len(options))
	for _, option := range options {
		languageOptions = append(languageOptions, webtemplates.LanguageOption{
			Code:   option.Locale.String(),
			Label:  option.Label,
			URL:    option.URL,
			Active: option.Active,
		})
	}
	return webtemplates.PageContext{
		Locale:          view.Locale,
		Loc:             view.Loc,
		Title:           page.Title,
		Description:     page.Description,
		CurrentPath:     path,
		CurrentQuery:    query,
		GoogleTagID:     rr.googleTagID,
		Year:            rr.now().Year(),
		LanguageOptions: languageOptions,
		Consent: webtemplates.ConsentView{
			Prompt:      choice == consent.Unset,
			PromptDelay: rr.gate.PromptDelay(),
			Signal:      consent.SignalFor(choice),
		},
	}
}
