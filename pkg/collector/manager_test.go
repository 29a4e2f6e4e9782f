package collector_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morningdesk/morningdesk/pkg/collector"
	"github.com/morningdesk/morningdesk/pkg/collector/mocks"
	"github.com/morningdesk/morningdesk/pkg/domain"
)

func TestManager_Collect(t *testing.T) {
	t.Run("all sources settle, failures isolated", func(t *testing.T) {
		fetcher := &mocks.FeedFetcherMock{
			CollectFunc: func(ctx context.Context, src domain.Source) ([]domain.RawArticle, error) {
				switch src.FeedURL {
				case "https://feed1.com":
					return []domain.RawArticle{{Title: "a1", URL: "u1"}, {Title: "a2", URL: "u2"}}, nil
				case "https://feed2.com":
					return nil, errors.New("timeout")
				case "https://feed3.com":
					time.Sleep(20 * time.Millisecond)
					return []domain.RawArticle{{Title: "a3", URL: "u3"}}, nil
				}
				return nil, errors.New("unexpected feed URL")
			},
		}

		m := collector.NewManager(fetcher, nil, 4)
		report := m.Collect(context.Background(), collector.Plan{Feeds: []domain.Source{
			{Name: "f1", FeedURL: "https://feed1.com"},
			{Name: "f2", FeedURL: "https://feed2.com"},
			{Name: "f3", FeedURL: "https://feed3.com"},
		}})

		assert.Len(t, fetcher.CollectCalls(), 3)
		require.Len(t, report.Results, 3)
		assert.Equal(t, 1, report.Failed())
		assert.Equal(t, "f2", report.Results[1].Source)
		require.Error(t, report.Results[1].Err)

		articles := report.Articles()
		require.Len(t, articles, 3)
		assert.Equal(t, "u1", articles[0].URL, "order within a source preserved")
		assert.Equal(t, "u2", articles[1].URL)
		assert.Equal(t, "u3", articles[2].URL)
	})

	t.Run("feeds shared by sectors fetched once", func(t *testing.T) {
		fetcher := &mocks.FeedFetcherMock{
			CollectFunc: func(ctx context.Context, src domain.Source) ([]domain.RawArticle, error) {
				return []domain.RawArticle{{Title: src.Name, URL: src.FeedURL + "/1"}}, nil
			},
		}
		m := collector.NewManager(fetcher, nil, 2)
		report := m.Collect(context.Background(), collector.Plan{Feeds: []domain.Source{
			{Name: "semi", SectorID: 1, FeedURL: "https://shared.com"},
			{Name: "stocks", SectorID: 2, FeedURL: "https://shared.com"},
			{Name: "other", SectorID: 2, FeedURL: "https://other.com"},
		}})
		assert.Len(t, fetcher.CollectCalls(), 2)
		assert.Len(t, report.Articles(), 2)
		assert.Equal(t, "semi", report.Results[0].Source, "first source wins")
	})

	t.Run("search runs alongside feeds", func(t *testing.T) {
		fetcher := &mocks.FeedFetcherMock{
			CollectFunc: func(ctx context.Context, src domain.Source) ([]domain.RawArticle, error) {
				return []domain.RawArticle{{URL: "feed"}}, nil
			},
		}
		searcher := &mocks.QuerySearcherMock{
			EnabledFunc: func() bool { return true },
			CollectFunc: func(ctx context.Context, queries []string) []collector.Result {
				return []collector.Result{
					{Source: "search:" + queries[0], Articles: []domain.RawArticle{{URL: "s1"}}},
					{Source: "search:" + queries[1], Err: errors.New("api error")},
				}
			},
		}
		m := collector.NewManager(fetcher, searcher, 2)
		report := m.Collect(context.Background(), collector.Plan{
			Feeds:   []domain.Source{{Name: "f", FeedURL: "https://f.com"}},
			Queries: []string{"반도체", "증시"},
		})
		require.Len(t, searcher.CollectCalls(), 1)
		assert.Equal(t, []string{"반도체", "증시"}, searcher.CollectCalls()[0].Queries)
		require.Len(t, report.Results, 3)
		assert.Equal(t, 1, report.Failed())
		assert.Len(t, report.Articles(), 2)
	})

	t.Run("search skipped when disabled or no queries", func(t *testing.T) {
		searcher := &mocks.QuerySearcherMock{
			EnabledFunc: func() bool { return false },
			CollectFunc: func(ctx context.Context, queries []string) []collector.Result { return nil },
		}
		m := collector.NewManager(&mocks.FeedFetcherMock{}, searcher, 2)
		report := m.Collect(context.Background(), collector.Plan{Queries: []string{"q"}})
		assert.Empty(t, report.Results)
		assert.Empty(t, searcher.CollectCalls())

		searcher.EnabledFunc = func() bool { return true }
		report = m.Collect(context.Background(), collector.Plan{})
		assert.Empty(t, report.Results)
		assert.Empty(t, searcher.CollectCalls())
	})

	t.Run("panicking collector is isolated", func(t *testing.T) {
		fetcher := &mocks.FeedFetcherMock{
			CollectFunc: func(ctx context.Context, src domain.Source) ([]domain.RawArticle, error) {
				if src.Name == "bad" {
					panic("boom")
				}
				return []domain.RawArticle{{URL: "ok"}}, nil
			},
		}
		m := collector.NewManager(fetcher, nil, 2)
		report := m.Collect(context.Background(), collector.Plan{Feeds: []domain.Source{
			{Name: "bad", FeedURL: "https://bad.com"},
			{Name: "good", FeedURL: "https://good.com"},
		}})
		assert.Equal(t, 1, report.Failed())
		assert.Len(t, report.Articles(), 1)
	})

	t.Run("concurrency bounded by max workers", func(t *testing.T) {
		var inFlight, peak int32
		fetcher := &mocks.FeedFetcherMock{
			CollectFunc: func(ctx context.Context, src domain.Source) ([]domain.RawArticle, error) {
				n := atomic.AddInt32(&inFlight, 1)
				defer atomic.AddInt32(&inFlight, -1)
				for {
					p := atomic.LoadInt32(&peak)
					if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
						break
					}
				}
				time.Sleep(10 * time.Millisecond)
				return nil, nil
			},
		}
		var feeds []domain.Source
		for _, u := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
			feeds = append(feeds, domain.Source{Name: u, FeedURL: "https://" + u})
		}
		m := collector.NewManager(fetcher, nil, 3)
		report := m.Collect(context.Background(), collector.Plan{Feeds: feeds})
		assert.Len(t, report.Results, 8)
		assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(3))
		assert.Zero(t, report.Failed())
	})
}

func TestDedupFeeds(t *testing.T) {
	res := collector.DedupFeeds([]domain.Source{
		{Name: "a", FeedURL: "https://a"},
		{Name: "search", APIType: domain.APITypeSearch},
		{Name: "empty"},
		{Name: "a-dup", FeedURL: "https://a", APIType: domain.APITypeRSS},
		{Name: "b", FeedURL: "https://b", APIType: domain.APITypeRSS},
	})
	require.Len(t, res, 2)
	assert.Equal(t, "a", res[0].Name)
	assert.Equal(t, "b", res[1].Name)
}
