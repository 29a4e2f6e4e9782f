package domain

// EventType is the tag of an event published on the bus
type EventType string

const (
	EventNewArticle  EventType = "new_article"
	EventBreaking    EventType = "breaking"
	EventNewBriefing EventType = "new_briefing"
)

// Event is an in-process notification, never persisted
type Event struct {
	Type EventType      `json:"type"`
	Data map[string]any `json:"data"`
}
