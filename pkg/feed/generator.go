// Package feed renders stored articles as RSS 2.0 and the sector feed list as OPML
package feed

import (
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/morningdesk/morningdesk/pkg/domain"
	"github.com/morningdesk/morningdesk/pkg/events"
)

// Generator creates RSS feeds from stored articles
type Generator struct {
	baseURL string
	now     func() time.Time
}

// NewGenerator creates a new feed generator
func NewGenerator(baseURL string) *Generator {
	return &Generator{
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

// GenerateRSS creates an RSS 2.0 feed of the articles. A nil sector means all sectors,
// labels maps sector ids to labels for item categories.
func (g *Generator) GenerateRSS(sector *domain.Sector, articles []domain.Article, labels map[int64]string) (string, error) {
	title := "MorningDesk - 전체"
	description := "모든 섹터의 최근 기사"
	selfLink := g.baseURL + "/rss"
	if sector != nil {
		title = "MorningDesk - " + sector.Label
		description = sector.Label + " 섹터의 최근 기사"
		if sector.Summary != "" {
			description = sector.Summary
		}
		selfLink = g.SectorFeedURL(sector.Label)
	}

	rssItems := make([]*RSSItem, 0, len(articles))
	for _, a := range articles {
		rssItems = append(rssItems, g.convertToRSSItem(a, labels))
	}

	feed := &RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &RSSChannel{
			Title:         title,
			Link:          g.baseURL + "/",
			Description:   description,
			Language:      "ko",
			AtomLink:      &AtomLink{Href: selfLink, Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: g.now().Format(time.RFC1123Z),
			Items:         rssItems,
		},
	}

	output, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}
	return xml.Header + string(output), nil
}

// SectorFeedURL returns the public feed url of a sector
func (g *Generator) SectorFeedURL(label string) string {
	return fmt.Sprintf("%s/rss/%s", g.baseURL, url.PathEscape(label))
}

func (g *Generator) convertToRSSItem(a domain.Article, labels map[int64]string) *RSSItem {
	desc := a.Summary
	if a.SourceName != "" {
		desc = strings.TrimSpace(fmt.Sprintf("[%s] %s", a.SourceName, a.Summary))
	}

	var categories []string
	if a.SectorID != nil {
		if label, ok := labels[*a.SectorID]; ok {
			categories = append(categories, label)
		}
	}
	if events.IsBreaking(a.Title) {
		categories = append(categories, "breaking")
	}
	if a.ClusterID != "" {
		categories = append(categories, a.ClusterID)
	}

	published := a.CollectedAt
	if a.PublishedAt != nil {
		published = *a.PublishedAt
	}

	return &RSSItem{
		Title:       a.Title,
		Link:        a.URL,
		GUID:        a.URL,
		Description: desc,
		PubDate:     published.Format(time.RFC1123Z),
		Categories:  categories,
	}
}

// GenerateOPML creates an OPML file listing the per-sector feeds of this service
func (g *Generator) GenerateOPML(sectors []domain.Sector) (string, error) {
	type outline struct {
		XMLName xml.Name `xml:"outline"`
		Text    string   `xml:"text,attr"`
		Title   string   `xml:"title,attr"`
		Type    string   `xml:"type,attr"`
		XMLUrl  string   `xml:"xmlUrl,attr"`
		HTMLUrl string   `xml:"htmlUrl,attr,omitempty"`
	}

	type body struct {
		XMLName  xml.Name  `xml:"body"`
		Outlines []outline `xml:"outline"`
	}

	type head struct {
		XMLName     xml.Name `xml:"head"`
		Title       string   `xml:"title"`
		DateCreated string   `xml:"dateCreated"`
	}

	type opml struct {
		XMLName xml.Name `xml:"opml"`
		Version string   `xml:"version,attr"`
		Head    head     `xml:"head"`
		Body    body     `xml:"body"`
	}

	outlines := make([]outline, 0, len(sectors))
	for _, s := range sectors {
		if !s.Active {
			continue
		}
		outlines = append(outlines, outline{
			Text:    s.Label,
			Title:   s.Label,
			Type:    "rss",
			XMLUrl:  g.SectorFeedURL(s.Label),
			HTMLUrl: g.baseURL + "/",
		})
	}

	doc := opml{
		Version: "2.0",
		Head: head{
			Title:       "MorningDesk Sector Feeds",
			DateCreated: g.now().Format(time.RFC1123Z),
		},
		Body: body{
			Outlines: outlines,
		},
	}

	output, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal OPML: %w", err)
	}
	return xml.Header + string(output), nil
}
