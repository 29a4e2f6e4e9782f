package server

import (
	"time"

	"github.com/morningdesk/morningdesk/pkg/domain"
)

type articleView struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	URL         string     `json:"url"`
	Summary     string     `json:"summary,omitempty"`
	Thumbnail   string     `json:"thumbnail,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	SourceName  string     `json:"sourceName"`
	Region      string     `json:"region"`
	SectorID    *int64     `json:"sectorId,omitempty"`
	SectorLabel string     `json:"sectorLabel,omitempty"`
	Confidence  float64    `json:"confidence"`
	CollectedAt time.Time  `json:"collectedAt"`
	ClusterID   *string    `json:"clusterId"`
}

type articlesResponse struct {
	Articles []articleView `json:"articles"`
	Query    string        `json:"query,omitempty"`
	Limit    int           `json:"limit"`
	Offset   int           `json:"offset"`
}

type sourceView struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	FeedURL  string `json:"feedUrl,omitempty"`
	APIType  string `json:"apiType"`
	Region   string `json:"region"`
	Priority int    `json:"priority"`
	Active   bool   `json:"active"`
}

type sectorView struct {
	ID              int64        `json:"id"`
	Label           string       `json:"label"`
	Summary         string       `json:"summary,omitempty"`
	Keywords        []string     `json:"keywords"`
	SearchQueriesKR []string     `json:"searchQueriesKR"`
	SearchQueriesUS []string     `json:"searchQueriesUS"`
	Active          bool         `json:"active"`
	SortOrder       int          `json:"sortOrder"`
	Sources         []sourceView `json:"sources"`
}

type briefingView struct {
	ID           int64     `json:"id"`
	SectorID     int64     `json:"sectorId"`
	SectorLabel  string    `json:"sectorLabel,omitempty"`
	Slot         string    `json:"slot"`
	Headline     string    `json:"headline"`
	Summary      string    `json:"summary"`
	Trend        string    `json:"trend"`
	TrendNote    string    `json:"trendNote,omitempty"`
	MarketImpact string    `json:"marketImpact,omitempty"`
	ReportingTip string    `json:"reportingTip,omitempty"`
	KeyFigures   []string  `json:"keyFigures"`
	Sentiment    float64   `json:"sentiment"`
	ArticleCount int       `json:"articleCount"`
	GeneratedAt  time.Time `json:"generatedAt"`
}

func toArticleView(a domain.Article, labels map[int64]string) articleView {
	v := articleView{
		ID:          a.ID,
		Title:       a.Title,
		URL:         a.URL,
		Summary:     a.Summary,
		Thumbnail:   a.Thumbnail,
		PublishedAt: a.PublishedAt,
		SourceName:  a.SourceName,
		Region:      string(a.Region),
		SectorID:    a.SectorID,
		Confidence:  a.Confidence,
		CollectedAt: a.CollectedAt,
	}
	if a.SectorID != nil {
		v.SectorLabel = labels[*a.SectorID]
	}
	if a.ClusterID != "" {
		id := a.ClusterID
		v.ClusterID = &id
	}
	return v
}

func toSectorView(s domain.Sector) sectorView {
	v := sectorView{
		ID:              s.ID,
		Label:           s.Label,
		Summary:         s.Summary,
		Keywords:        nonNil(s.Keywords),
		SearchQueriesKR: nonNil(s.SearchQueriesKR),
		SearchQueriesUS: nonNil(s.SearchQueriesUS),
		Active:          s.Active,
		SortOrder:       s.SortOrder,
		Sources:         make([]sourceView, 0, len(s.Sources)),
	}
	for _, src := range s.Sources {
		v.Sources = append(v.Sources, sourceView{ID: src.ID, Name: src.Name, FeedURL: src.FeedURL,
			APIType: string(src.APIType), Region: string(src.Region), Priority: src.Priority, Active: src.Active})
	}
	return v
}

func toBriefingView(b domain.Briefing, labels map[int64]string) briefingView {
	return briefingView{
		ID:           b.ID,
		SectorID:     b.SectorID,
		SectorLabel:  labels[b.SectorID],
		Slot:         string(b.Slot),
		Headline:     b.Headline,
		Summary:      b.Summary,
		Trend:        string(b.Trend),
		TrendNote:    b.TrendNote,
		MarketImpact: b.MarketImpact,
		ReportingTip: b.ReportingTip,
		KeyFigures:   nonNil(b.KeyFigures),
		Sentiment:    b.Sentiment,
		ArticleCount: b.ArticleCount,
		GeneratedAt:  b.GeneratedAt,
	}
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
