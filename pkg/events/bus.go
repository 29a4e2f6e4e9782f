// Package events is an in-process publish/subscribe hub for article and briefing notifications.
// Delivery is synchronous and best effort, nothing is persisted or replayed.
package events

import (
	"runtime/debug"
	"strings"
	"sync"

	log "github.com/go-pkgz/lgr"

	"github.com/morningdesk/morningdesk/pkg/domain"
)

// breakingMarkers upgrade an article event to breaking, matched case-insensitively in the title
var breakingMarkers = []string{"속보", "긴급", "단독", "breaking", "flash"}

// Listener receives emitted events
type Listener func(domain.Event)

type subscription struct {
	id int64
	fn Listener
}

// Bus delivers every emitted event to the listeners registered at emit time
type Bus struct {
	mu     sync.RWMutex
	nextID int64
	subs   []subscription
}

// NewBus makes an empty bus
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a listener and returns the function removing it. Calling it twice is safe.
func (b *Bus) Subscribe(fn Listener) (unsubscribe func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Bus) remove(id int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			// copy so snapshots taken by in-flight emits stay intact
			subs := make([]subscription, 0, len(b.subs)-1)
			subs = append(subs, b.subs[:i]...)
			b.subs = append(subs, b.subs[i+1:]...)
			return
		}
	}
}

// Emit calls every current listener in registration order. A panicking listener is logged and
// does not affect the others or the caller.
func (b *Bus) Emit(ev domain.Event) {
	b.mu.RLock()
	snapshot := b.subs
	b.mu.RUnlock()

	for _, s := range snapshot {
		b.deliver(s, ev)
	}
}

func (b *Bus) deliver(s subscription, ev domain.Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[WARN] event listener %d panicked on %s: %v\n%s", s.id, ev.Type, r, debug.Stack())
		}
	}()
	s.fn(ev)
}

// ListenerCount returns the number of registered listeners
func (b *Bus) ListenerCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// IsBreaking reports whether a title carries an urgency marker
func IsBreaking(title string) bool {
	t := strings.ToLower(title)
	for _, m := range breakingMarkers {
		if strings.Contains(t, m) {
			return true
		}
	}
	return false
}

// ArticleEvent builds the event announcing a newly stored article
func ArticleEvent(a domain.Article) domain.Event {
	typ := domain.EventNewArticle
	if IsBreaking(a.Title) {
		typ = domain.EventBreaking
	}
	data := map[string]any{
		"id":         a.ID,
		"title":      a.Title,
		"url":        a.URL,
		"region":     string(a.Region),
		"sourceName": a.SourceName,
	}
	if a.SectorID != nil {
		data["sectorId"] = *a.SectorID
	}
	return domain.Event{Type: typ, Data: data}
}

// BriefingEvent builds the event announcing a generated briefing
func BriefingEvent(b domain.Briefing, sectorLabel string) domain.Event {
	return domain.Event{Type: domain.EventNewBriefing, Data: map[string]any{
		"id":          b.ID,
		"sectorId":    b.SectorID,
		"sectorLabel": sectorLabel,
		"slot":        string(b.Slot),
		"headline":    b.Headline,
		"trend":       string(b.Trend),
	}}
}
