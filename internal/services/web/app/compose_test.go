package app

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	module "github.com/louisbranch/storyfront/internal/services/web/module"
)

type stubModule struct {
	id    string
	mount module.Mount
	err   error
}

func (s stubModule) ID() string { return s.id }

func (s stubModule) Mount() (module.Mount, error) { return s.mount, s.err }

func writes(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, body)
	})
}

func TestComposeRejectsDuplicateModulePrefix(t *testing.T) {
	t.Parallel()

	_, err := Compose(ComposeInput{
		Modules: []module.Module{
			stubModule{id: "one", mount: module.Mount{Prefix: "/blog/", Handler: writes("one")}},
			stubModule{id: "two", mount: module.Mount{Prefix: "/blog/", Handler: writes("two")}},
		},
	})
	if err == nil || !strings.Contains(err.Error(), `owned by module "one"`) {
		t.Fatalf("Compose() error = %v, want duplicate prefix error", err)
	}
}

func TestComposeRejectsInvalidPrefixes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
	}{
		{name: "empty", prefix: ""},
		{name: "missing leading slash", prefix: "blog/"},
		{name: "missing trailing slash", prefix: "/blog"},
		{name: "contains surrounding whitespace", prefix: "/blog/ "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Compose(ComposeInput{
				Modules: []module.Module{stubModule{id: "bad", mount: module.Mount{Prefix: tc.prefix, Handler: writes("x")}}},
			})
			if err == nil {
				t.Fatalf("expected invalid prefix error")
			}
			if got := err.Error(); !strings.Contains(got, "invalid prefix") || !strings.Contains(got, "bad") {
				t.Fatalf("unexpected error = %q", got)
			}
		})
	}
}

func TestComposeRejectsNilModuleAndHandler(t *testing.T) {
	t.Parallel()

	if _, err := Compose(ComposeInput{Modules: []module.Module{nil}}); err == nil {
		t.Fatal("expected nil module error")
	}
	if _, err := Compose(ComposeInput{Modules: []module.Module{stubModule{id: "x", mount: module.Mount{Prefix: "/x/"}}}}); err == nil {
		t.Fatal("expected missing handler error")
	}
	if _, err := Compose(ComposeInput{Modules: []module.Module{stubModule{id: "x", err: io.EOF}}}); err == nil || !strings.Contains(err.Error(), `mount module "x"`) {
		t.Fatalf("expected wrapped mount error, got %v", err)
	}
}

func TestComposeRoutesExactRootApartFromCatchAll(t *testing.T) {
	t.Parallel()

	handler, err := Compose(ComposeInput{
		Modules: []module.Module{
			stubModule{id: "home", mount: module.Mount{Prefix: "/{$}", Handler: writes("home")}},
			stubModule{id: "pages", mount: module.Mount{Prefix: "/", Handler: writes("pages")}},
			stubModule{id: "blog", mount: module.Mount{Prefix: "/blog/", Handler: writes("blog")}},
		},
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	tests := map[string]string{
		"/":          "home",
		"/about":     "pages",
		"/blog/":     "blog",
		"/blog/post": "blog",
	}
	for path, want := range tests {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if got := rr.Body.String(); got != want {
			t.Fatalf("GET %s = %q, want %q", path, got, want)
		}
	}
}
