package domain

import "time"

// BriefingSlot is the time slot a briefing was generated for
type BriefingSlot string

const (
	SlotMorning BriefingSlot = "MORNING"
	SlotNight   BriefingSlot = "NIGHT"
)

// BriefingTrend is the direction of a sector story
type BriefingTrend string

const (
	TrendEscalating BriefingTrend = "ESCALATING"
	TrendStable     BriefingTrend = "STABLE"
	TrendCooling    BriefingTrend = "COOLING"
)

// Briefing is a narrative summary of recent articles in one sector
type Briefing struct {
	ID           int64
	SectorID     int64
	Slot         BriefingSlot
	Headline     string
	Summary      string
	Trend        BriefingTrend
	TrendNote    string
	MarketImpact string
	ReportingTip string
	KeyFigures   []string
	Sentiment    float64
	ArticleCount int
	GeneratedAt  time.Time
}
