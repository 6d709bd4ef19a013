package analytics

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/louisbranch/storyfront/internal/platform/timeouts"
)

// bestEffortTransport reports every batch upload as accepted so the SDK
// never retries. Failures are logged and the batch is dropped.
type bestEffortTransport struct {
	next    http.RoundTripper
	logger  *slog.Logger
	timeout time.Duration
}

func newBestEffortTransport(logger *slog.Logger) *bestEffortTransport {
	return &bestEffortTransport{
		next:    http.DefaultTransport,
		logger:  logger,
		timeout: timeouts.AnalyticsCapture,
	}
}

func (t *bestEffortTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx, cancel := context.WithTimeout(req.Context(), t.timeout)
	defer cancel()

	resp, err := t.next.RoundTrip(req.WithContext(ctx))
	if err != nil {
		t.logger.Warn("deliver analytics batch", "error", err)
		return accepted(req), nil
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		t.logger.Warn("deliver analytics batch", "status", resp.StatusCode)
	}
	return accepted(req), nil
}

func accepted(req *http.Request) *http.Response {
	return &http.Response{
		Status:     "200 OK",
		StatusCode: http.StatusOK,
		Proto:      "HTTP/1.1",
		ProtoMajor: 1,
		ProtoMinor: 1,
		Header:     http.Header{},
		Body:       http.NoBody,
		Request:    req,
	}
}

// sdkLogger routes SDK diagnostics into slog.
type sdkLogger struct {
	logger *slog.Logger
}

func (l sdkLogger) Debugf(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...), "component", "posthog")
}

func (l sdkLogger) Logf(format string, args ...any) {
	l.logger.Info(fmt.Sprintf(format, args...), "component", "posthog")
}

func (l sdkLogger) Warnf(format string, args ...any) {
	l.logger.Warn(fmt.Sprintf(format, args...), "component", "posthog")
}

func (l sdkLogger) Errorf(format string, args ...any) {
	l.logger.Error(fmt.Sprintf(format, args...), "component", "posthog")
}
