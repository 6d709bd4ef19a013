// Package analyticstest runs an in-process PostHog endpoint for tests.
package analyticstest

import (
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/louisbranch/storyfront/internal/platform/analytics"
)

// APIKey is the key configured on clients returned by NewClient.
const APIKey = "phc_test"

// Capture is one event received by a Server.
type Capture struct {
	Event      string         `json:"event"`
	DistinctID string         `json:"distinct_id"`
	Properties map[string]any `json:"properties"`
}

// Server records batches posted by the PostHog SDK.
type Server struct {
	URL string

	mu       sync.Mutex
	captures []Capture
	requests int
	status   int
}

// NewServer starts a Server answering every upload with status.
func NewServer(t testing.TB, status int) *Server {
	t.Helper()

	s := &Server{status: status}
	srv := httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(srv.Close)
	s.URL = srv.URL
	return s
}

// NewClient returns a client flushing every event to a new Server. Call
// Close on the client before reading Captures to flush pending batches.
func NewClient(t testing.TB) (*analytics.Client, *Server) {
	t.Helper()

	s := NewServer(t, http.StatusOK)
	client, err := analytics.NewClient(analytics.Config{
		APIKey:    APIKey,
		Host:      s.URL,
		BatchSize: 1,
		Interval:  10 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client, s
}

// Captures returns the events received so far.
func (s *Server) Captures() []Capture {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Capture, len(s.captures))
	copy(out, s.captures)
	return out
}

// Requests returns the number of uploads received.
func (s *Server) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	var body io.Reader = r.Body
	if r.Header.Get("Content-Encoding") == "gzip" {
		zr, err := gzip.NewReader(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer zr.Close()
		body = zr
	}
	var payload struct {
		Batch []Capture `json:"batch"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.requests++
	if s.status == http.StatusOK {
		s.captures = append(s.captures, payload.Batch...)
	}
	status := s.status
	s.mu.Unlock()
	w.WriteHeader(status)
}
