package consent

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	platformconsent "github.com/louisbranch/storyfront/internal/platform/consent"
	"github.com/louisbranch/storyfront/internal/platform/timeouts"
	"github.com/louisbranch/storyfront/internal/services/web/platform/consentgate"
)

const (
	consentEvent = "consent"
	promptEvent  = "prompt"

	// eventBuffer bounds events queued for a slow stream. Storage changes
	// arrive on the writing request's goroutine; a full buffer drops them.
	eventBuffer = 8
)

type streamEvent struct {
	name string
	data any
}

type consentPayload struct {
	Choice    string                 `json:"choice"`
	Capturing bool                   `json:"capturing"`
	Signal    platformconsent.Signal `json:"signal"`
}

type promptPayload struct {
	DelayMS int64 `json:"delay_ms"`
}

func payloadFor(state platformconsent.State) consentPayload {
	return consentPayload{
		Choice:    state.Choice.String(),
		Capturing: state.Capturing,
		Signal:    platformconsent.SignalFor(state.Choice),
	}
}

func (h handlers) handleEvents(w http.ResponseWriter, r *http.Request) {
	events := make(chan streamEvent, eventBuffer)
	send := func(ev streamEvent) {
		select {
		case events <- ev:
		default:
		}
	}
	delay := h.gate.PromptDelay()
	session, err := h.gate.Open(w, r, consentgate.Hooks{
		OnChange: func(state platformconsent.State) {
			send(streamEvent{name: consentEvent, data: payloadFor(state)})
		},
		OnPrompt: func() {
			send(streamEvent{name: promptEvent, data: promptPayload{DelayMS: delay.Milliseconds()}})
		},
	})
	if err != nil {
		h.logger.Error("open consent stream", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	defer session.Close()

	header := w.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	header.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	rc := http.NewResponseController(w)
	flush := func() bool {
		if err := rc.Flush(); err != nil {
			h.logger.Warn("flush consent stream", "error", err)
			return false
		}
		return true
	}

	if err := writeEvent(w, streamEvent{name: consentEvent, data: payloadFor(session.Bootstrap.State())}); err != nil || !flush() {
		return
	}

	heartbeat := time.NewTicker(timeouts.EventStreamHeartbeat)
	defer heartbeat.Stop()
	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-h.shutdown:
			return
		case ev := <-events:
			if err := writeEvent(w, ev); err != nil || !flush() {
				return
			}
		case <-heartbeat.C:
			if _, err := io.WriteString(w, ": ping\n\n"); err != nil || !flush() {
				return
			}
		}
	}
}

func writeEvent(w io.Writer, ev streamEvent) error {
	data, err := json.Marshal(ev.data)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", ev.name, err)
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.name, data)
	return err
}
