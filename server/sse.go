package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/morningdesk/morningdesk/pkg/domain"
)

// eventBuffer is the per-client queue, events beyond it are dropped for that client
const eventBuffer = 64

// eventsHandler streams bus events as server-sent events until the client disconnects
func (s *Server) eventsHandler(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)
	if err := rc.SetWriteDeadline(time.Time{}); err != nil {
		log.Printf("[DEBUG] can't clear write deadline for event stream: %v", err)
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache, no-transform")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	queue := make(chan domain.Event, eventBuffer)
	unsubscribe := s.events.Subscribe(func(ev domain.Event) {
		select {
		case queue <- ev:
		default:
			log.Printf("[WARN] event stream client too slow, %s event dropped", ev.Type)
		}
	})
	defer unsubscribe()
	defer s.metrics.SSEConnected()()

	if _, err := fmt.Fprint(w, "data: {\"type\":\"connected\"}\n\n"); err != nil {
		return
	}
	if err := rc.Flush(); err != nil {
		log.Printf("[WARN] event stream not flushable: %v", err)
		return
	}

	keepalive := time.NewTicker(s.params.KeepAlive)
	defer keepalive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-keepalive.C:
			if _, err := fmt.Fprint(w, ": keepalive\n\n"); err != nil {
				return
			}
		case ev := <-queue:
			data, err := json.Marshal(ev.Data)
			if err != nil {
				log.Printf("[WARN] can't encode %s event: %v", ev.Type, err)
				continue
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, data); err != nil {
				return
			}
		}
		if err := rc.Flush(); err != nil {
			return
		}
	}
}
