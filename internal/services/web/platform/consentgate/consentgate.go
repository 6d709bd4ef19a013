// Package consentgate opens a consent bootstrap for each browser view served
// by the web service: one per rendered page or open event stream.
package consentgate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/louisbranch/storyfront/internal/platform/analytics"
	"github.com/louisbranch/storyfront/internal/platform/consent"
	"github.com/louisbranch/storyfront/internal/platform/kvstore"
	"github.com/louisbranch/storyfront/internal/platform/timeouts"
	"github.com/louisbranch/storyfront/internal/services/web/platform/httpx"
	"github.com/louisbranch/storyfront/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/storyfront/internal/services/web/platform/visitor"
)

// Config wires a Gate.
type Config struct {
	Origin *kvstore.Origin
	// Analytics delivers captures. Nil or keyless disables telemetry.
	Analytics    *analytics.Client
	SiteURL      string
	SchemePolicy requestmeta.SchemePolicy
	PromptDelay  time.Duration
	Development  bool
	Logger       *slog.Logger
}

// Gate opens consent sessions for requests.
type Gate struct {
	cfg    Config
	logger *slog.Logger
}

// New returns a Gate. A nil Origin falls back to in-memory storage.
func New(cfg Config) *Gate {
	if cfg.Origin == nil {
		cfg.Origin = kvstore.NewOrigin(nil)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Gate{cfg: cfg, logger: logger}
}

// PromptDelay returns the configured delay before the consent prompt.
func (g *Gate) PromptDelay() time.Duration {
	if g == nil || g.cfg.PromptDelay <= 0 {
		return timeouts.ConsentPrompt
	}
	return g.cfg.PromptDelay
}

// Hooks observe a session. Both are optional.
type Hooks struct {
	OnChange func(consent.State)
	OnPrompt func()
}

// Session is one started bootstrap bound to a visitor view.
type Session struct {
	VisitorID string
	Bootstrap *consent.Bootstrap

	gate *Gate
	view *kvstore.View

	mu      sync.Mutex
	signal  consent.Signal
	decided bool
}

// Open identifies the visitor, opens a view of their storage and starts a
// bootstrap on it. Callers must Close the session.
func (g *Gate) Open(w http.ResponseWriter, r *http.Request, hooks Hooks) (*Session, error) {
	if g == nil {
		return nil, errors.New("consent gate is not configured")
	}
	id := visitor.Ensure(w, r, g.cfg.SchemePolicy)
	s := &Session{VisitorID: id, gate: g, view: g.cfg.Origin.View(id)}

	var tracker consent.Tracker
	apiKey := ""
	if g.cfg.Analytics != nil {
		apiKey = g.cfg.Analytics.APIKey()
		tracker = g.cfg.Analytics.Session(id)
	}
	s.Bootstrap = consent.New(consent.Config{
		APIKey:      apiKey,
		Store:       s.view,
		Tracker:     tracker,
		Propagate:   s.record,
		OnChange:    hooks.OnChange,
		OnPrompt:    hooks.OnPrompt,
		PromptDelay: g.cfg.PromptDelay,
		Development: g.cfg.Development,
		Logger:      g.logger.With("visitor_id", id),
	})
	if err := s.Bootstrap.Start(httpx.RequestContext(r)); err != nil {
		s.view.Close()
		return nil, fmt.Errorf("start consent bootstrap: %w", err)
	}
	return s, nil
}

// Navigate records a page view for r's full URL.
func (s *Session) Navigate(r *http.Request) {
	if s == nil || s.Bootstrap == nil {
		return
	}
	s.Bootstrap.Navigate(httpx.RequestContext(r), requestmeta.CurrentURL(r, s.gate.cfg.SchemePolicy, s.gate.cfg.SiteURL))
}

// Signal returns the signal propagated by the last decision in this session.
func (s *Session) Signal() (consent.Signal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.signal, s.decided
}

// Close stops the bootstrap and releases the view.
func (s *Session) Close() {
	if s == nil {
		return
	}
	if s.Bootstrap != nil {
		s.Bootstrap.Stop()
	}
	if s.view != nil {
		s.view.Close()
	}
}

func (s *Session) record(_ context.Context, signal consent.Signal) {
	s.mu.Lock()
	s.signal = signal
	s.decided = true
	s.mu.Unlock()
}
