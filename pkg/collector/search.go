package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/microcosm-cc/bluemonday"

	"github.com/morningdesk/morningdesk/pkg/domain"
)

const (
	maxDisplay = 100  // provider cap on results per page
	maxStart   = 1000 // provider cap on pagination offset
)

// SearchParams configures the keyword search collector
type SearchParams struct {
	Endpoint     string
	ClientID     string
	ClientSecret string
	SourceName   string
	Display      int
	MaxPages     int
	Delay        time.Duration
	Timeout      time.Duration
}

// SearchCollector queries a keyword news search API
type SearchCollector struct {
	params SearchParams
	client *http.Client
	policy *bluemonday.Policy
}

type searchResponse struct {
	Total int          `json:"total"`
	Start int          `json:"start"`
	Items []searchItem `json:"items"`
}

type searchItem struct {
	Title        string `json:"title"`
	OriginalLink string `json:"originallink"`
	Link         string `json:"link"`
	Description  string `json:"description"`
	PubDate      string `json:"pubDate"`
}

// NewSearchCollector creates a search collector, display is capped at the provider limit
func NewSearchCollector(params SearchParams) *SearchCollector {
	if params.Display <= 0 || params.Display > maxDisplay {
		params.Display = maxDisplay
	}
	if params.MaxPages <= 0 {
		params.MaxPages = 1
	}
	if params.Timeout <= 0 {
		params.Timeout = 10 * time.Second
	}
	return &SearchCollector{
		params: params,
		client: &http.Client{Timeout: params.Timeout},
		policy: bluemonday.StrictPolicy(),
	}
}

// Enabled reports whether credentials are configured
func (c *SearchCollector) Enabled() bool {
	return c.params.ClientID != "" && c.params.ClientSecret != ""
}

// Collect runs every distinct query in order, one Result per query.
// Articles are deduplicated by URL across the whole run and consecutive calls are throttled.
// A failed query ends with its error, the rest continue.
func (c *SearchCollector) Collect(ctx context.Context, queries []string) []Result {
	if !c.Enabled() {
		return nil
	}

	seenQuery := make(map[string]bool, len(queries))
	seenURL := make(map[string]bool)
	results := make([]Result, 0, len(queries))
	calls := 0

	for _, q := range queries {
		q = strings.TrimSpace(q)
		if q == "" || seenQuery[q] {
			continue
		}
		seenQuery[q] = true

		res := Result{Source: "search:" + q}
		for page := 0; page < c.params.MaxPages; page++ {
			start := 1 + page*c.params.Display
			if start > maxStart {
				break
			}
			if calls > 0 {
				if err := sleepCtx(ctx, c.params.Delay); err != nil {
					res.Err = err
					break
				}
			}
			calls++

			items, err := c.query(ctx, q, start)
			if err != nil {
				lgr.Printf("[WARN] search query %q failed: %v", q, err)
				res.Err = err
				break
			}
			for _, it := range items {
				link := it.OriginalLink
				if link == "" {
					link = it.Link
				}
				if link == "" || seenURL[link] {
					continue
				}
				seenURL[link] = true
				res.Articles = append(res.Articles, c.toRawArticle(it, link))
			}
			if len(items) < c.params.Display {
				break // last page
			}
		}
		results = append(results, res)
	}
	return results
}

func (c *SearchCollector) query(ctx context.Context, q string, start int) ([]searchItem, error) {
	params := url.Values{}
	params.Set("query", q)
	params.Set("display", strconv.Itoa(c.params.Display))
	params.Set("start", strconv.Itoa(start))
	params.Set("sort", "date")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.params.Endpoint+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Naver-Client-Id", c.params.ClientID)
	req.Header.Set("X-Naver-Client-Secret", c.params.ClientSecret)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("search api status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return sr.Items, nil
}

func (c *SearchCollector) toRawArticle(it searchItem, link string) domain.RawArticle {
	res := domain.RawArticle{
		Title:      cleanText(c.policy, it.Title),
		URL:        link,
		Summary:    cleanText(c.policy, it.Description),
		SourceName: c.params.SourceName,
		Region:     domain.RegionKR,
	}
	if t, err := time.Parse(time.RFC1123Z, it.PubDate); err == nil {
		t = t.UTC()
		res.PublishedAt = &t
	}
	return res
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
