package server

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// sseStream frames Server-Sent Events onto a response. Progress streaming
// needs a flushable writer; plain buffered writers are rejected up front.
type sseStream struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

func newSSEStream(w http.ResponseWriter) (*sseStream, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")

	return &sseStream{w: w, flusher: flusher}, nil
}

// send frames one event and flushes it so the client sees progress live.
func (s *sseStream) send(event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

func (s *sseStream) sendError(message string) {
	_ = s.send("error", map[string]string{"error": message})
}

func (s *sseStream) sendComplete(domain, status string) {
	_ = s.send("complete", map[string]string{"domain": domain, "status": status})
}
