package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/morningdesk/morningdesk/pkg/domain"
)

//go:generate moq -out mocks/feed_fetcher.go -pkg mocks -skip-ensure -fmt goimports . FeedFetcher
//go:generate moq -out mocks/query_searcher.go -pkg mocks -skip-ensure -fmt goimports . QuerySearcher

// FeedFetcher collects one feed source
type FeedFetcher interface {
	Collect(ctx context.Context, src domain.Source) ([]domain.RawArticle, error)
}

// QuerySearcher collects keyword search results, one Result per query
type QuerySearcher interface {
	Enabled() bool
	Collect(ctx context.Context, queries []string) []Result
}

// Result is the outcome of one unit of collection work, a feed or a search query.
// Err set means the unit failed and Articles holds whatever was collected before the failure.
type Result struct {
	Source   string
	Articles []domain.RawArticle
	Err      error
	Duration time.Duration
}

// Plan lists what a collection run covers
type Plan struct {
	Feeds   []domain.Source
	Queries []string
}

// Report is the merged outcome of a collection run
type Report struct {
	Results []Result
}

// Articles returns all collected articles, per-source order preserved
func (r Report) Articles() []domain.RawArticle {
	var total int
	for _, res := range r.Results {
		total += len(res.Articles)
	}
	articles := make([]domain.RawArticle, 0, total)
	for _, res := range r.Results {
		articles = append(articles, res.Articles...)
	}
	return articles
}

// Failed returns the number of failed units
func (r Report) Failed() int {
	var n int
	for _, res := range r.Results {
		if res.Err != nil {
			n++
		}
	}
	return n
}

// Manager runs feed and search collectors concurrently
type Manager struct {
	feeds      FeedFetcher
	search     QuerySearcher
	maxWorkers int
}

// NewManager creates a collector manager, search may be nil
func NewManager(feeds FeedFetcher, search QuerySearcher, maxWorkers int) *Manager {
	if maxWorkers <= 0 {
		maxWorkers = 10
	}
	return &Manager{feeds: feeds, search: search, maxWorkers: maxWorkers}
}

// Collect runs every feed of the plan (deduplicated by URL) and the search queries concurrently.
// It waits for all of them to settle, failures are recorded in the report and never abort the run.
func (m *Manager) Collect(ctx context.Context, plan Plan) Report {
	feeds := DedupFeeds(plan.Feeds)
	runSearch := m.search != nil && m.search.Enabled() && len(plan.Queries) > 0

	feedResults := make([]Result, len(feeds))
	var searchResults []Result

	g := &errgroup.Group{} // tasks never return errors, so no derived context cancels the others
	g.SetLimit(m.maxWorkers)

	if runSearch {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					lgr.Printf("[ERROR] search collector panic: %v", r)
					searchResults = []Result{{Source: "search", Err: fmt.Errorf("panic: %v", r)}}
				}
			}()
			st := time.Now()
			searchResults = m.search.Collect(ctx, plan.Queries)
			lgr.Printf("[DEBUG] search collected %d queries in %v", len(searchResults), time.Since(st))
			return nil
		})
	}

	for i, src := range feeds {
		g.Go(func() error {
			feedResults[i] = m.collectFeed(ctx, src)
			return nil
		})
	}

	_ = g.Wait()

	report := Report{Results: make([]Result, 0, len(feedResults)+len(searchResults))}
	report.Results = append(report.Results, feedResults...)
	report.Results = append(report.Results, searchResults...)
	return report
}

func (m *Manager) collectFeed(ctx context.Context, src domain.Source) (res Result) {
	res.Source = src.Name
	st := time.Now()
	defer func() {
		if r := recover(); r != nil {
			res.Articles, res.Err = nil, fmt.Errorf("panic: %v", r)
		}
		res.Duration = time.Since(st)
		if res.Err != nil {
			lgr.Printf("[WARN] failed to collect %s: %v", src.Name, res.Err)
			return
		}
		lgr.Printf("[DEBUG] collected %d articles from %s in %v", len(res.Articles), src.Name, res.Duration)
	}()

	articles, err := m.feeds.Collect(ctx, src)
	if err != nil {
		res.Err = err
		return res
	}
	res.Articles = articles
	return res
}

// DedupFeeds keeps the first rss source for each feed URL, non-rss sources and
// sources without a URL are dropped
func DedupFeeds(sources []domain.Source) []domain.Source {
	seen := make(map[string]bool, len(sources))
	res := make([]domain.Source, 0, len(sources))
	for _, src := range sources {
		if src.APIType != "" && src.APIType != domain.APITypeRSS {
			continue
		}
		if src.FeedURL == "" || seen[src.FeedURL] {
			continue
		}
		seen[src.FeedURL] = true
		res = append(res, src)
	}
	return res
}
