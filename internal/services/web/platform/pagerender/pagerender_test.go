package pagerender

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/louisbranch/storyfront/internal/platform/analytics/analyticstest"
	"github.com/louisbranch/storyfront/internal/platform/consent"
	"github.com/louisbranch/storyfront/internal/platform/kvstore"
	"github.com/louisbranch/storyfront/internal/services/web/platform/consentgate"
	"github.com/louisbranch/storyfront/internal/services/web/platform/langpref"
	"github.com/louisbranch/storyfront/internal/services/web/platform/visitor"
	webtemplates "github.com/louisbranch/storyfront/internal/services/web/templates"
)

const visitorID = "6f1c8d4e-3a1b-4b7a-9d2e-1f0a2b3c4d5e"

func fixedNow() time.Time {
	return time.Date(2026, time.October, 14, 12, 0, 0, 0, time.UTC)
}

func body(html string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, html)
		return err
	})
}

func TestWriteRendersLayoutWithStatusAndCookies(t *testing.T) {
	t.Parallel()

	renderer := New(Config{Now: fixedNow})
	req := httptest.NewRequest(http.MethodGet, "/blog/?lang=pt_BR", nil)
	rr := httptest.NewRecorder()

	view := renderer.Begin(rr, req)
	renderer.Write(rr, req, view, Page{Title: "Blog", StatusCode: http.StatusTeapot, Body: body(`<p id="b">ok</p>`)})

	if rr.Code != http.StatusTeapot {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusTeapot)
	}
	if got := rr.Header().Get("Content-Type"); got != "text/html; charset=utf-8" {
		t.Fatalf("content-type = %q", got)
	}
	if got := rr.Header().Get("Vary"); got != "Accept-Language, Cookie" {
		t.Fatalf("vary = %q, want %q", got, "Accept-Language, Cookie")
	}
	got := rr.Body.String()
	for _, want := range []string{`<html lang="pt-BR">`, `<p id="b">ok</p>`, "© 2026", "consent-banner"} {
		if !strings.Contains(got, want) {
			t.Fatalf("body missing %q in %q", want, got)
		}
	}

	names := map[string]bool{}
	for _, cookie := range rr.Result().Cookies() {
		names[cookie.Name] = true
	}
	if !names[langpref.LangCookieName] || !names[visitor.CookieName] {
		t.Fatalf("cookies = %v, want language and visitor cookies", names)
	}
}

func TestWriteCapturesPageViewOnceAccepted(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	origin := kvstore.NewOrigin(nil)
	seed := origin.View(visitorID)
	if err := seed.Set(ctx, consent.StorageKey, string(consent.Accepted)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	seed.Close()

	client, srv := analyticstest.NewClient(t)
	renderer := New(Config{
		Gate:        consentgate.New(consentgate.Config{Origin: origin, Analytics: client, SiteURL: "https://storyfront.test"}),
		GoogleTagID: "G-TEST",
		Now:         fixedNow,
	})
	req := httptest.NewRequest(http.MethodGet, "/blog/calm-defaults?ref=home", nil)
	req.AddCookie(&http.Cookie{Name: visitor.CookieName, Value: visitorID})
	rr := httptest.NewRecorder()

	renderer.Write(rr, req, renderer.Begin(rr, req), Page{Title: "Calm Defaults"})

	got := rr.Body.String()
	if strings.Contains(got, "consent-banner") {
		t.Fatalf("body = %q, want no banner after a decision", got)
	}
	if !strings.Contains(got, `"analytics_storage":"granted"`) {
		t.Fatalf("body = %q, want granted tag default", got)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	captures := srv.Captures()
	if len(captures) != 1 {
		t.Fatalf("captures = %d, want 1", len(captures))
	}
	ev := captures[0]
	if ev.Event != consent.PageViewEvent || ev.DistinctID != visitorID {
		t.Fatalf("event = %+v", ev)
	}
	if url := ev.Properties[consent.CurrentURLProperty]; url != "https://storyfront.test/blog/calm-defaults?ref=home" {
		t.Fatalf("current url = %v", url)
	}
}

func TestWriteSkipsPageViewForErrorsAndHead(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	origin := kvstore.NewOrigin(nil)
	seed := origin.View(visitorID)
	if err := seed.Set(ctx, consent.StorageKey, string(consent.Accepted)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	seed.Close()
	client, srv := analyticstest.NewClient(t)
	renderer := New(Config{Gate: consentgate.New(consentgate.Config{Origin: origin, Analytics: client})})

	missing := httptest.NewRequest(http.MethodGet, "/nope", nil)
	missing.AddCookie(&http.Cookie{Name: visitor.CookieName, Value: visitorID})
	rr := httptest.NewRecorder()
	renderer.NotFoundHandler(webtemplates.NotFoundPage).ServeHTTP(rr, missing)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
	if got := rr.Header().Get("Vary"); got != "Accept-Language, Cookie" {
		t.Fatalf("404 vary = %q, want %q", got, "Accept-Language, Cookie")
	}

	head := httptest.NewRequest(http.MethodHead, "/", nil)
	head.AddCookie(&http.Cookie{Name: visitor.CookieName, Value: visitorID})
	rr = httptest.NewRecorder()
	renderer.Write(rr, head, renderer.Begin(rr, head), Page{Body: body("x")})
	if rr.Body.Len() != 0 {
		t.Fatalf("HEAD body = %q, want empty", rr.Body.String())
	}

	if err := client.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if captures := srv.Captures(); len(captures) != 0 {
		t.Fatalf("unexpected captures %+v", captures)
	}
}

func TestNotFoundUsesKindCopy(t *testing.T) {
	t.Parallel()

	renderer := New(Config{})
	req := httptest.NewRequest(http.MethodGet, "/authors/ghost", nil)
	req.Header.Set("Accept-Language", "pt-BR,en;q=0.8")
	rr := httptest.NewRecorder()

	renderer.NotFound(rr, req, renderer.Begin(rr, req), webtemplates.NotFoundAuthor)

	got := rr.Body.String()
	if !strings.Contains(got, "<h1>Autor Não Encontrado</h1>") {
		t.Fatalf("body = %q, want localized author heading", got)
	}
	if !strings.Contains(got, `href="/blog/"`) {
		t.Fatalf("body = %q, want blog link", got)
	}
}

func TestServerErrorWritesFailureView(t *testing.T) {
	t.Parallel()

	renderer := New(Config{})
	req := httptest.NewRequest(http.MethodGet, "/blog/", nil)
	rr := httptest.NewRecorder()
	renderer.ServerError(rr, req, renderer.Begin(rr, req))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Something Went Wrong") {
		t.Fatalf("body = %q, want failure copy", rr.Body.String())
	}
}
