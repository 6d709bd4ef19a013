package blog

import (
	"net/http"
	"strings"
	"testing"

	"github.com/louisbranch/storyfront/internal/services/web/platform/webtest"
)

func newHandler(t *testing.T) http.Handler {
	t.Helper()
	return webtest.Mount(t, New(webtest.Dependencies(t, webtest.Options{})))
}

func TestIndexListsPostsNewestFirst(t *testing.T) {
	t.Parallel()

	rr := webtest.Get(newHandler(t), "/blog/")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	newest := strings.Index(body, "Translating Content Without a Second Site")
	oldest := strings.Index(body, "Calm Defaults")
	if newest < 0 || oldest < 0 || newest > oldest {
		t.Fatalf("posts out of order in %q", body)
	}
}

func TestPostRendersLocalizedMarkdown(t *testing.T) {
	t.Parallel()

	rr := webtest.Get(newHandler(t), "/blog/calm-defaults?lang=pt_BR")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{
		"<title>Padrões Tranquilos · Storyfront</title>",
		"<strong>respeito</strong>",
		"<li>Pergunte tarde.</li>",
		"Por Ana Lima",
		"Arquivado em",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q", want)
		}
	}
}

func TestMissingPostRendersPostNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		target  string
		headers []string
		heading string
	}{
		{target: "/blog/ghost", heading: "<h1>Post Not Found</h1>"},
		{target: "/blog/ghost", headers: []string{"Accept-Language", "pt-BR"}, heading: "<h1>Post Não Encontrado</h1>"},
		{target: "/blog/a/b", heading: "<h1>Post Not Found</h1>"},
	}
	for _, tc := range tests {
		rr := webtest.Get(newHandler(t), tc.target, tc.headers...)
		if rr.Code != http.StatusNotFound {
			t.Fatalf("GET %s status = %d, want 404", tc.target, rr.Code)
		}
		if !strings.Contains(rr.Body.String(), tc.heading) {
			t.Fatalf("GET %s body missing %q", tc.target, tc.heading)
		}
	}
}
