package domain

import "time"

// RawArticle is a collected article before classification and persistence
type RawArticle struct {
	Title       string
	URL         string
	Summary     string
	Thumbnail   string
	PublishedAt *time.Time
	SourceName  string
	Region      Region
}

// Article is a persisted, classified article. URL is the natural key.
type Article struct {
	ID          int64
	Title       string
	URL         string
	Summary     string
	Thumbnail   string
	PublishedAt *time.Time
	SourceName  string
	Region      Region
	SectorID    *int64
	SourceID    *int64
	Confidence  float64
	CollectedAt time.Time
	ClusterID   string
}

// ArticleFilter represents query criteria for articles, zero values mean "any"
type ArticleFilter struct {
	SectorID      int64
	Region        Region
	Query         string    // every whitespace separated term is in the title or summary
	Since         time.Time // collected_at > Since
	Until         time.Time // collected_at < Until
	MaxConfidence float64   // confidence < MaxConfidence when > 0
	Unclustered   bool
	Limit         int
	Offset        int
}
