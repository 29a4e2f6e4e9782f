package collector

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"

	"github.com/morningdesk/morningdesk/pkg/browser"
	"github.com/morningdesk/morningdesk/pkg/domain"
)

// FeedCollector fetches and normalizes RSS/Atom feeds
type FeedCollector struct {
	client    *http.Client
	userAgent string
	timeout   time.Duration
	policy    *bluemonday.Policy
}

// NewFeedCollector creates a feed collector with a bounded per-feed timeout
func NewFeedCollector(timeout time.Duration, userAgent string) *FeedCollector {
	return &FeedCollector{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: userAgent,
		timeout:   timeout,
		policy:    bluemonday.StrictPolicy(),
	}
}

// Collect fetches the source feed and returns its entries in feed order.
// Entries without a link are skipped.
func (c *FeedCollector) Collect(ctx context.Context, src domain.Source) ([]domain.RawArticle, error) {
	if src.FeedURL == "" {
		return nil, fmt.Errorf("source %q has no feed url", src.Name)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.FeedURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	browser.SetHeaders(req, browser.AcceptFeed)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src.FeedURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status code: %d", src.FeedURL, resp.StatusCode)
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", src.FeedURL, err)
	}

	articles := make([]domain.RawArticle, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil || strings.TrimSpace(item.Link) == "" {
			continue
		}
		articles = append(articles, c.toRawArticle(item, src))
	}
	return articles, nil
}

func (c *FeedCollector) toRawArticle(item *gofeed.Item, src domain.Source) domain.RawArticle {
	summary := item.Description
	if strings.TrimSpace(summary) == "" {
		summary = item.Content
	}

	res := domain.RawArticle{
		Title:      c.cleanText(item.Title),
		URL:        strings.TrimSpace(item.Link),
		Summary:    c.cleanText(summary),
		Thumbnail:  extractThumbnail(item),
		SourceName: src.Name,
		Region:     src.Region,
	}

	switch {
	case item.PublishedParsed != nil:
		t := item.PublishedParsed.UTC()
		res.PublishedAt = &t
	case item.UpdatedParsed != nil:
		t := item.UpdatedParsed.UTC()
		res.PublishedAt = &t
	}
	return res
}

// cleanText strips markup, decodes entities and collapses whitespace
func (c *FeedCollector) cleanText(s string) string {
	return cleanText(c.policy, s)
}

func cleanText(policy *bluemonday.Policy, s string) string {
	if s == "" {
		return ""
	}
	stripped := html.UnescapeString(policy.Sanitize(s))
	return strings.Join(strings.Fields(stripped), " ")
}

// extractThumbnail returns the first of media:content url, media:thumbnail url,
// image enclosure and the first <img> in the body. Empty if none.
func extractThumbnail(item *gofeed.Item) string {
	if media, ok := item.Extensions["media"]; ok {
		for _, name := range []string{"content", "thumbnail"} {
			for _, ext := range media[name] {
				if u := ext.Attrs["url"]; u != "" {
					return u
				}
			}
		}
	}

	for _, enc := range item.Enclosures {
		if enc != nil && enc.URL != "" && strings.HasPrefix(enc.Type, "image/") {
			return enc.URL
		}
	}

	for _, body := range []string{item.Content, item.Description} {
		if src := firstImage(body); src != "" {
			return src
		}
	}
	return ""
}

// firstImage finds the src of the first <img> element in an html fragment
func firstImage(fragment string) string {
	if !strings.Contains(fragment, "<img") {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ""
	}
	src, _ := doc.Find("img[src]").First().Attr("src")
	return strings.TrimSpace(src)
}
