package consent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	platformconsent "github.com/louisbranch/storyfront/internal/platform/consent"
	"github.com/louisbranch/storyfront/internal/platform/kvstore"
	"github.com/louisbranch/storyfront/internal/services/web/platform/observability"
	"github.com/louisbranch/storyfront/internal/services/web/platform/visitor"
	"github.com/louisbranch/storyfront/internal/services/web/platform/webtest"
)

func postDecision(h http.Handler, path string, form url.Values, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: visitor.CookieName, Value: webtest.VisitorID})
	return webtest.Do(h, req, headers...)
}

func storedChoice(t *testing.T, origin *kvstore.Origin) string {
	t.Helper()
	view := origin.View(webtest.VisitorID)
	defer view.Close()
	value, _, err := view.Get(context.Background(), platformconsent.StorageKey)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	return value
}

func TestAcceptReturnsJSONSignal(t *testing.T) {
	t.Parallel()

	origin := kvstore.NewOrigin(nil)
	metrics := observability.NewMetrics()
	h := webtest.Mount(t, New(webtest.Dependencies(t, webtest.Options{Origin: origin, Metrics: metrics})))

	rr := postDecision(h, "/consent/accept", nil, "Origin", "http://example.com", "Accept", "application/json")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}
	var got decisionResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Choice != "accepted" || got.Signal.AnalyticsStorage != platformconsent.Granted || got.Signal.AdStorage != platformconsent.Granted {
		t.Fatalf("response = %+v", got)
	}
	if stored := storedChoice(t, origin); stored != "accepted" {
		t.Fatalf("stored choice = %q, want accepted", stored)
	}

	scrape := webtest.Get(metrics.Handler(), "/metrics")
	if !strings.Contains(scrape.Body.String(), `storyfront_consent_decisions_total{choice="accepted"} 1`) {
		t.Fatalf("metrics missing decision counter: %s", scrape.Body.String())
	}
}

func TestRejectFormRedirectsToLocalReturnTo(t *testing.T) {
	t.Parallel()

	origin := kvstore.NewOrigin(nil)
	h := webtest.Mount(t, New(webtest.Dependencies(t, webtest.Options{Origin: origin})))

	tests := []struct {
		name     string
		form     url.Values
		headers  []string
		location string
	}{
		{name: "return_to", form: url.Values{"return_to": {"/blog/?lang=pt_BR"}}, headers: []string{"Origin", "http://example.com"}, location: "/blog/?lang=pt_BR"},
		{name: "external return_to", form: url.Values{"return_to": {"//evil.test/"}}, headers: []string{"Origin", "http://example.com"}, location: "/"},
		{name: "referer", headers: []string{"Referer", "http://example.com/about?x=1"}, location: "/about?x=1"},
	}
	for _, tc := range tests {
		rr := postDecision(h, "/consent/reject", tc.form, tc.headers...)
		if rr.Code != http.StatusSeeOther {
			t.Fatalf("%s: status = %d, want 303", tc.name, rr.Code)
		}
		if got := rr.Header().Get("Location"); got != tc.location {
			t.Fatalf("%s: Location = %q, want %q", tc.name, got, tc.location)
		}
	}
	if stored := storedChoice(t, origin); stored != "rejected" {
		t.Fatalf("stored choice = %q, want rejected", stored)
	}
}

func TestDecisionRequiresSameOriginProof(t *testing.T) {
	t.Parallel()

	origin := kvstore.NewOrigin(nil)
	h := webtest.Mount(t, New(webtest.Dependencies(t, webtest.Options{Origin: origin})))

	for _, headers := range [][]string{nil, {"Origin", "https://evil.test"}} {
		rr := postDecision(h, "/consent/accept", nil, headers...)
		if rr.Code != http.StatusForbidden {
			t.Fatalf("headers %v: status = %d, want 403", headers, rr.Code)
		}
	}
	if stored := storedChoice(t, origin); stored != "" {
		t.Fatalf("stored choice = %q, want none", stored)
	}
}

func TestUnknownConsentPathRendersNotFound(t *testing.T) {
	t.Parallel()

	h := webtest.Mount(t, New(webtest.Dependencies(t, webtest.Options{})))
	rr := webtest.Get(h, "/consent/other")
	if rr.Code != http.StatusNotFound || !strings.Contains(rr.Body.String(), "Page Not Found") {
		t.Fatalf("GET /consent/other = %d %q", rr.Code, rr.Body.String())
	}
}
