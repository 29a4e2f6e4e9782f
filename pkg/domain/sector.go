package domain

import "time"

// Region identifies the market a source covers
type Region string

const (
	RegionKR  Region = "KR"
	RegionUS  Region = "US"
	RegionAll Region = "ALL" // trigger-only value, never stored on a source or article
)

// ParseRegion converts a user supplied string into a Region, defaulting to RegionAll
func ParseRegion(s string) (Region, bool) {
	switch Region(s) {
	case RegionKR, RegionUS, RegionAll:
		return Region(s), true
	case "":
		return RegionAll, true
	}
	return "", false
}

// Includes reports whether a trigger region covers the given source region
func (r Region) Includes(other Region) bool {
	return r == RegionAll || r == other
}

// APIType tells how a source is collected
type APIType string

const (
	APITypeRSS    APIType = "rss"
	APITypeSearch APIType = "search-api"
)

// Source represents an external feed or search API attached to a sector
type Source struct {
	ID       int64
	SectorID int64
	Name     string
	FeedURL  string
	APIType  APIType
	Region   Region
	Priority int
	Active   bool
}

// Sector is an editorial topic bucket, the classification target
type Sector struct {
	ID              int64
	Label           string
	Summary         string
	Keywords        []string
	SearchQueriesKR []string
	SearchQueriesUS []string
	Active          bool
	SortOrder       int
	Sources         []Source
	CreatedAt       time.Time
}
