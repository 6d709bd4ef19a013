package pages

import (
	"net/http"
	"strings"
	"testing"

	"github.com/louisbranch/storyfront/internal/services/web/platform/webtest"
)

func TestPageRendersLocalizedBody(t *testing.T) {
	t.Parallel()

	h := webtest.Mount(t, New(webtest.Dependencies(t, webtest.Options{})))
	rr := webtest.Get(h, "/about", "Accept-Language", "pt-BR,en;q=0.8")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{
		"<h1>Sobre</h1>",
		`<meta name="description" content="Quem somos.">`,
		"Storyfront é um pequeno estúdio",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q", want)
		}
	}
}

func TestUnknownPathsRenderPageNotFound(t *testing.T) {
	t.Parallel()

	h := webtest.Mount(t, New(webtest.Dependencies(t, webtest.Options{})))
	for _, target := range []string{"/ghost", "/a/b/c", "/about/"} {
		rr := webtest.Get(h, target)
		if rr.Code != http.StatusNotFound {
			t.Fatalf("GET %s status = %d, want 404", target, rr.Code)
		}
		body := rr.Body.String()
		if !strings.Contains(body, "<h1>Page Not Found</h1>") || !strings.Contains(body, `class="notice-link" href="/"`) {
			t.Fatalf("GET %s body = %q", target, body)
		}
	}
}

func TestLanguageQueryIsPersisted(t *testing.T) {
	t.Parallel()

	h := webtest.Mount(t, New(webtest.Dependencies(t, webtest.Options{})))
	rr := webtest.Get(h, "/privacy?lang=pt_BR")
	if !strings.Contains(rr.Body.String(), "<h1>Privacidade</h1>") {
		t.Fatalf("body = %q, want pt_BR page", rr.Body.String())
	}
	var found bool
	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == "sf_lang" && cookie.Value == "pt_BR" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected language cookie")
	}
}
