// Package webtest builds module dependencies over the sample content for
// handler tests.
package webtest

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/louisbranch/storyfront/internal/platform/analytics"
	"github.com/louisbranch/storyfront/internal/platform/kvstore"
	"github.com/louisbranch/storyfront/internal/services/web/content"
	module "github.com/louisbranch/storyfront/internal/services/web/module"
	"github.com/louisbranch/storyfront/internal/services/web/platform/consentgate"
	"github.com/louisbranch/storyfront/internal/services/web/platform/observability"
	"github.com/louisbranch/storyfront/internal/services/web/platform/pagerender"
)

// VisitorID is a valid visitor cookie value for tests.
const VisitorID = "6f1c8d4e-3a1b-4b7a-9d2e-1f0a2b3c4d5e"

// Options adjust the dependencies built by Dependencies.
type Options struct {
	Source    content.Source
	Origin    *kvstore.Origin
	Analytics *analytics.Client
	Metrics   *observability.Metrics
}

// Dependencies returns module dependencies backed by the sample fixtures
// and in-memory consent storage.
func Dependencies(t testing.TB, opts Options) module.Dependencies {
	t.Helper()

	source := opts.Source
	if source == nil {
		fixtures, err := content.SampleFixtures()
		if err != nil {
			t.Fatalf("SampleFixtures() error = %v", err)
		}
		source = content.NewMemorySource(fixtures)
	}
	origin := opts.Origin
	if origin == nil {
		origin = kvstore.NewOrigin(nil)
	}
	gate := consentgate.New(consentgate.Config{
		Origin:      origin,
		Analytics:   opts.Analytics,
		SiteURL:     "https://storyfront.test",
		PromptDelay: 10 * time.Millisecond,
	})
	return module.Dependencies{
		Content: source,
		Gate:    gate,
		Metrics: opts.Metrics,
		Pages: pagerender.New(pagerender.Config{
			Gate:    gate,
			Metrics: opts.Metrics,
			Now:     func() time.Time { return time.Date(2026, time.October, 14, 0, 0, 0, 0, time.UTC) },
		}),
	}
}

// Mount returns the handler of m, failing the test on error.
func Mount(t testing.TB, m module.Module) http.Handler {
	t.Helper()

	mount, err := m.Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	return mount.Handler
}

// Get serves a GET for target. headers alternates names and values.
func Get(h http.Handler, target string, headers ...string) *httptest.ResponseRecorder {
	return Do(h, httptest.NewRequest(http.MethodGet, target, nil), headers...)
}

// Do serves req. headers alternates names and values.
func Do(h http.Handler, req *http.Request, headers ...string) *httptest.ResponseRecorder {
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}
