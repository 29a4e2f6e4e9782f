package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morningdesk/morningdesk/pkg/cluster"
	"github.com/morningdesk/morningdesk/pkg/collector"
	"github.com/morningdesk/morningdesk/pkg/domain"
	"github.com/morningdesk/morningdesk/pkg/events"
	"github.com/morningdesk/morningdesk/pkg/pipeline/mocks"
	"github.com/morningdesk/morningdesk/pkg/repository"
	"github.com/morningdesk/morningdesk/pkg/service"
)

func testSectors() []domain.Sector {
	return []domain.Sector{
		{ID: 1, Label: "반도체", Keywords: []string{"삼성전자", "SK하이닉스", "HBM", "파운드리"},
			SearchQueriesKR: []string{"반도체 수출"}, SearchQueriesUS: []string{"semiconductor"},
			Sources: []domain.Source{
				{ID: 11, SectorID: 1, Name: "연합뉴스", FeedURL: "http://kr/feed", APIType: domain.APITypeRSS, Region: domain.RegionKR, Active: true},
				{ID: 12, SectorID: 1, Name: "Reuters", FeedURL: "http://us/feed", APIType: domain.APITypeRSS, Region: domain.RegionUS, Active: true},
				{ID: 13, SectorID: 1, Name: "네이버", APIType: domain.APITypeSearch, Region: domain.RegionKR, Active: true},
			}},
		{ID: 2, Label: "증시", Keywords: []string{"코스피", "코스닥"},
			SearchQueriesKR: []string{"코스피", "반도체 수출"},
			Sources: []domain.Source{
				{ID: 21, SectorID: 2, Name: "연합뉴스 증시", FeedURL: "http://kr/feed", APIType: domain.APITypeRSS, Region: domain.RegionKR, Active: true},
			}},
	}
}

func TestBuildPlan(t *testing.T) {
	sectors := testSectors()

	tbl := []struct {
		name       string
		region     domain.Region
		withSearch bool
		feeds      []string
		queries    []string
	}{
		{name: "kr with search", region: domain.RegionKR, withSearch: true,
			feeds: []string{"http://kr/feed"}, queries: []string{"반도체 수출", "코스피"}},
		{name: "kr without search", region: domain.RegionKR, feeds: []string{"http://kr/feed"}},
		{name: "us never searches", region: domain.RegionUS, withSearch: true, feeds: []string{"http://us/feed"}},
		{name: "all", region: domain.RegionAll, withSearch: true,
			feeds: []string{"http://kr/feed", "http://us/feed"}, queries: []string{"반도체 수출", "코스피"}},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			plan := BuildPlan(sectors, tt.region, tt.withSearch)
			urls := make([]string, 0, len(plan.Feeds))
			for _, f := range plan.Feeds {
				urls = append(urls, f.FeedURL)
			}
			assert.ElementsMatch(t, tt.feeds, urls)
			assert.Equal(t, tt.queries, plan.Queries)
		})
	}
}

func TestPipeline_RunCycle(t *testing.T) {
	store := &mocks.StoreMock{
		FindSectorsFunc: func(ctx context.Context, activeOnly bool) ([]domain.Sector, error) {
			return testSectors(), nil
		},
		UpsertArticleIfAbsentFunc: func(ctx context.Context, article *domain.Article) (int64, bool, error) {
			switch article.URL {
			case "u-dup":
				return 5, false, nil
			case "u-err":
				return 0, false, errors.New("disk full")
			}
			return 100, true, nil
		},
	}
	coll := &mocks.CollectorMock{
		CollectFunc: func(ctx context.Context, plan collector.Plan) collector.Report {
			return collector.Report{Results: []collector.Result{
				{Source: "연합뉴스", Articles: []domain.RawArticle{
					{Title: "삼성전자 속보: 실적 발표", URL: "u1", SourceName: "연합뉴스", Region: domain.RegionKR},
					{Title: "코스피 상승 마감", URL: "u-dup", SourceName: "연합뉴스", Region: domain.RegionKR},
					{Title: "날씨 맑음", URL: "u-none", SourceName: "연합뉴스", Region: domain.RegionKR},
					{Title: "HBM 증설", URL: "u-err", SourceName: "연합뉴스", Region: domain.RegionKR},
					{Title: "no url HBM", SourceName: "연합뉴스", Region: domain.RegionKR},
				}},
				{Source: "http://us/feed", Err: errors.New("timeout")},
			}}
		},
	}
	bus := events.NewBus()
	var got []domain.Event
	bus.Subscribe(func(ev domain.Event) { got = append(got, ev) })

	p := New(Deps{Store: store, Collector: coll, Publisher: bus}, Params{SearchEnabled: true})
	res, err := p.RunCycle(context.Background(), domain.RegionKR, true)
	require.NoError(t, err)
	assert.Equal(t, domain.CycleResult{Total: 5, Saved: 1, Duplicates: 1, Unclassified: 1, Failed: 1, FailedSources: 1}, res)

	require.Len(t, coll.CollectCalls(), 1)
	plan := coll.CollectCalls()[0].Plan
	assert.Equal(t, []string{"반도체 수출", "코스피"}, plan.Queries)

	upserts := store.UpsertArticleIfAbsentCalls()
	require.Len(t, upserts, 3)
	first := upserts[0].Article
	assert.Equal(t, "u1", first.URL)
	require.NotNil(t, first.SectorID)
	assert.Equal(t, int64(1), *first.SectorID)
	assert.InDelta(t, 0.5, first.Confidence, 0.0001)
	require.NotNil(t, first.SourceID)
	assert.Equal(t, int64(11), *first.SourceID)
	assert.Empty(t, first.ClusterID)

	require.Len(t, got, 1)
	assert.Equal(t, domain.EventBreaking, got[0].Type)
	assert.Equal(t, int64(100), got[0].Data["id"])

	st := p.Status()
	require.NotNil(t, st.LastCycle)
	assert.Equal(t, domain.RegionKR, st.LastCycle.Region)
	assert.Equal(t, 1, st.LastCycle.Result.Saved)
	assert.False(t, st.Collecting)
	assert.False(t, st.JudgeActive)
}

func TestPipeline_RunCycleSearchDisabled(t *testing.T) {
	store := &mocks.StoreMock{
		FindSectorsFunc: func(ctx context.Context, activeOnly bool) ([]domain.Sector, error) {
			return testSectors(), nil
		},
	}
	coll := &mocks.CollectorMock{
		CollectFunc: func(ctx context.Context, plan collector.Plan) collector.Report { return collector.Report{} },
	}
	p := New(Deps{Store: store, Collector: coll}, Params{SearchEnabled: false})
	res, err := p.RunCycle(context.Background(), domain.RegionAll, true)
	require.NoError(t, err)
	assert.Equal(t, domain.CycleResult{}, res)
	assert.Empty(t, coll.CollectCalls()[0].Plan.Queries)
}

func TestPipeline_RunCycleSectorsError(t *testing.T) {
	store := &mocks.StoreMock{
		FindSectorsFunc: func(ctx context.Context, activeOnly bool) ([]domain.Sector, error) {
			return nil, errors.New("db closed")
		},
	}
	coll := &mocks.CollectorMock{}
	p := New(Deps{Store: store, Collector: coll}, Params{})
	_, err := p.RunCycle(context.Background(), domain.RegionKR, false)
	require.Error(t, err)
	assert.Empty(t, coll.CollectCalls())
	assert.Nil(t, p.Status().LastCycle)

	// the lock is released after a failure
	_, err = p.RunCycle(context.Background(), domain.RegionKR, false)
	require.Error(t, err)
	assert.Len(t, store.FindSectorsCalls(), 2)
}

func TestPipeline_RunCycleConcurrentSkip(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	store := &mocks.StoreMock{
		FindSectorsFunc: func(ctx context.Context, activeOnly bool) ([]domain.Sector, error) {
			return testSectors(), nil
		},
	}
	coll := &mocks.CollectorMock{
		CollectFunc: func(ctx context.Context, plan collector.Plan) collector.Report {
			close(entered)
			<-release
			return collector.Report{}
		},
	}
	p := New(Deps{Store: store, Collector: coll}, Params{})

	var wg sync.WaitGroup
	var first domain.CycleResult
	wg.Add(1)
	go func() {
		defer wg.Done()
		first, _ = p.RunCycle(context.Background(), domain.RegionKR, false)
	}()

	<-entered
	assert.True(t, p.Status().Collecting)
	second, err := p.RunCycle(context.Background(), domain.RegionKR, false)
	require.NoError(t, err)
	assert.True(t, second.Skipped)

	close(release)
	wg.Wait()
	assert.False(t, first.Skipped)
	assert.Len(t, coll.CollectCalls(), 1)
	assert.Len(t, store.FindSectorsCalls(), 1)
	assert.False(t, p.Status().Collecting)
}

func TestPipeline_Passes(t *testing.T) {
	t.Run("nil judge makes reclassify and briefings no-ops", func(t *testing.T) {
		p := New(Deps{}, Params{})
		rr, err := p.Reclassify(context.Background())
		require.NoError(t, err)
		assert.Equal(t, domain.ReclassifyResult{}, rr)
		br, err := p.Briefings(context.Background(), domain.SlotMorning)
		require.NoError(t, err)
		assert.Equal(t, domain.BriefingResult{}, br)
	})

	t.Run("delegates", func(t *testing.T) {
		recl := &mocks.ReclassifierMock{
			RunFunc: func(ctx context.Context) (domain.ReclassifyResult, error) {
				return domain.ReclassifyResult{Classified: 3}, nil
			},
		}
		cl := &mocks.ClustererMock{
			RunFunc: func(ctx context.Context, opts cluster.Options) (domain.ClusterResult, error) {
				return domain.ClusterResult{ClustersFormed: 1, ArticlesUpdated: 2}, nil
			},
		}
		br := &mocks.BrieferMock{
			GenerateFunc: func(ctx context.Context, slot domain.BriefingSlot) (domain.BriefingResult, error) {
				return domain.BriefingResult{Generated: 2}, nil
			},
		}
		p := New(Deps{Reclassifier: recl, Clusterer: cl, Briefer: br}, Params{})
		assert.True(t, p.Status().JudgeActive)

		rr, err := p.Reclassify(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 3, rr.Classified)

		cr, err := p.Cluster(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, 1, cr.ClustersFormed)
		assert.Equal(t, int64(7), cl.RunCalls()[0].Opts.SectorID)

		bres, err := p.Briefings(context.Background(), domain.SlotNight)
		require.NoError(t, err)
		assert.Equal(t, 2, bres.Generated)
		assert.Equal(t, domain.SlotNight, br.GenerateCalls()[0].Slot)
	})

	t.Run("busy while running", func(t *testing.T) {
		p := New(Deps{Reclassifier: &mocks.ReclassifierMock{}, Clusterer: &mocks.ClustererMock{},
			Briefer: &mocks.BrieferMock{}}, Params{})
		require.True(t, p.classifying.TryLock())
		require.True(t, p.clustering.TryLock())
		require.True(t, p.briefing.TryLock())

		rr, err := p.Reclassify(context.Background())
		require.NoError(t, err)
		assert.True(t, rr.Busy)
		cr, err := p.Cluster(context.Background(), 0)
		require.NoError(t, err)
		assert.True(t, cr.Busy)
		br, err := p.Briefings(context.Background(), domain.SlotMorning)
		require.NoError(t, err)
		assert.True(t, br.Busy)
	})
}

func TestPipeline_FullBatch(t *testing.T) {
	store := &mocks.StoreMock{
		FindSectorsFunc: func(ctx context.Context, activeOnly bool) ([]domain.Sector, error) {
			return testSectors(), nil
		},
	}
	coll := &mocks.CollectorMock{
		CollectFunc: func(ctx context.Context, plan collector.Plan) collector.Report { return collector.Report{} },
	}
	recl := &mocks.ReclassifierMock{
		RunFunc: func(ctx context.Context) (domain.ReclassifyResult, error) {
			return domain.ReclassifyResult{}, errors.New("judge down")
		},
	}
	cl := &mocks.ClustererMock{
		RunFunc: func(ctx context.Context, opts cluster.Options) (domain.ClusterResult, error) {
			return domain.ClusterResult{ClustersFormed: 2}, nil
		},
	}
	p := New(Deps{Store: store, Collector: coll, Reclassifier: recl, Clusterer: cl}, Params{SearchEnabled: true})

	res, err := p.FullBatch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "judge down")
	assert.Equal(t, 2, res.Cluster.ClustersFormed, "clustering runs after a failed escalation")

	plan := coll.CollectCalls()[0].Plan
	assert.Len(t, plan.Feeds, 2, "all regions")
	assert.NotEmpty(t, plan.Queries)
}

func TestPipeline_Housekeeping(t *testing.T) {
	store := &mocks.StoreMock{
		DeleteArticlesBeforeFunc:  func(ctx context.Context, cutoff time.Time) (int64, error) { return 4, nil },
		DeleteBriefingsBeforeFunc: func(ctx context.Context, cutoff time.Time) (int64, error) { return 1, nil },
	}
	p := New(Deps{Store: store}, Params{})

	require.NoError(t, p.Housekeeping(context.Background(), 0))
	assert.Empty(t, store.DeleteArticlesBeforeCalls())

	require.NoError(t, p.Housekeeping(context.Background(), 30*24*time.Hour))
	require.Len(t, store.DeleteArticlesBeforeCalls(), 1)
	cutoff := store.DeleteArticlesBeforeCalls()[0].Cutoff
	assert.WithinDuration(t, time.Now().Add(-30*24*time.Hour), cutoff, time.Minute)
	assert.Equal(t, cutoff, store.DeleteBriefingsBeforeCalls()[0].Cutoff)

	store.DeleteArticlesBeforeFunc = func(ctx context.Context, cutoff time.Time) (int64, error) {
		return 0, errors.New("locked")
	}
	require.Error(t, p.Housekeeping(context.Background(), time.Hour))
}

func TestPipeline_EndToEnd(t *testing.T) {
	ctx := context.Background()
	repos, err := repository.NewRepositories(ctx, repository.Config{DSN: ":memory:", MaxOpenConns: 1, MaxIdleConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })

	store := service.NewStore(repos)
	require.NoError(t, store.SyncSectors(ctx, []domain.Sector{
		{Label: "반도체", Keywords: []string{"삼성전자", "SK하이닉스", "HBM", "파운드리"}, Active: true, SortOrder: 1,
			Sources: []domain.Source{
				{Name: "A", FeedURL: "http://a/rss", APIType: domain.APITypeRSS, Region: domain.RegionKR, Active: true},
			}},
		{Label: "증시", Keywords: []string{"코스피"}, Active: true, SortOrder: 2},
		{Label: "사모펀드", Keywords: []string{"블루아울"}, Active: true, SortOrder: 3,
			Sources: []domain.Source{
				{Name: "B", FeedURL: "http://b/rss", APIType: domain.APITypeRSS, Region: domain.RegionKR, Active: true},
				{Name: "C", FeedURL: "http://c/rss", APIType: domain.APITypeRSS, Region: domain.RegionKR, Active: true},
			}},
	}))

	coll := &mocks.CollectorMock{
		CollectFunc: func(ctx context.Context, plan collector.Plan) collector.Report {
			return collector.Report{Results: []collector.Result{
				{Source: "A", Articles: []domain.RawArticle{
					{Title: "삼성전자 속보: 실적 발표", URL: "u1", SourceName: "A", Region: domain.RegionKR}}},
				{Source: "B", Articles: []domain.RawArticle{
					{Title: "블루아울 환매 중단 발표", URL: "u2", SourceName: "B", Region: domain.RegionKR}}},
				{Source: "C", Articles: []domain.RawArticle{
					{Title: "사모펀드 블루아울, 환매중단 결정", URL: "u3", SourceName: "C", Region: domain.RegionKR}}},
			}}
		},
	}
	bus := events.NewBus()
	var got []domain.Event
	bus.Subscribe(func(ev domain.Event) { got = append(got, ev) })

	p := New(Deps{Store: store, Collector: coll, Publisher: bus,
		Clusterer: cluster.NewEngine(store, cluster.Options{})}, Params{})

	res, err := p.RunCycle(ctx, domain.RegionKR, false)
	require.NoError(t, err)
	assert.Equal(t, domain.CycleResult{Total: 3, Saved: 3}, res)

	semi, err := store.GetSectorByLabel(ctx, "반도체")
	require.NoError(t, err)
	articles, err := store.FindArticles(ctx, domain.ArticleFilter{SectorID: semi.ID})
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "u1", articles[0].URL)
	assert.InDelta(t, 0.5, articles[0].Confidence, 0.0001)
	assert.Empty(t, articles[0].ClusterID)
	require.NotNil(t, articles[0].SourceID)

	require.Len(t, got, 3)
	assert.Equal(t, domain.EventBreaking, got[0].Type)
	assert.Equal(t, domain.EventNewArticle, got[1].Type)

	// second cycle only finds duplicates
	res, err = p.RunCycle(ctx, domain.RegionKR, false)
	require.NoError(t, err)
	assert.Equal(t, domain.CycleResult{Total: 3, Duplicates: 3}, res)
	assert.Len(t, got, 3)

	cres, err := p.Cluster(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, cres.ClustersFormed)
	assert.Equal(t, 2, cres.ArticlesUpdated)

	pe, err := store.GetSectorByLabel(ctx, "사모펀드")
	require.NoError(t, err)
	clustered, err := store.FindArticles(ctx, domain.ArticleFilter{SectorID: pe.ID})
	require.NoError(t, err)
	require.Len(t, clustered, 2)
	assert.NotEmpty(t, clustered[0].ClusterID)
	assert.Equal(t, clustered[0].ClusterID, clustered[1].ClusterID)
}

func TestPipeline_RunCycleCallerGone(t *testing.T) {
	repos, err := repository.NewRepositories(context.Background(), repository.Config{DSN: ":memory:", MaxOpenConns: 1, MaxIdleConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })

	store := service.NewStore(repos)
	require.NoError(t, store.SyncSectors(context.Background(), []domain.Sector{
		{Label: "반도체", Keywords: []string{"삼성전자", "HBM"}, Active: true, SortOrder: 1,
			Sources: []domain.Source{
				{Name: "A", FeedURL: "http://a/rss", APIType: domain.APITypeRSS, Region: domain.RegionKR, Active: true},
			}},
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	coll := &mocks.CollectorMock{
		CollectFunc: func(_ context.Context, plan collector.Plan) collector.Report {
			cancel() // client disconnects once collection is done
			return collector.Report{Results: []collector.Result{
				{Source: "A", Articles: []domain.RawArticle{
					{Title: "삼성전자 실적 발표", URL: "u1", SourceName: "A", Region: domain.RegionKR},
					{Title: "HBM 증설", URL: "u2", SourceName: "A", Region: domain.RegionKR},
				}},
			}}
		},
	}

	p := New(Deps{Store: store, Collector: coll}, Params{})
	res, err := p.RunCycle(ctx, domain.RegionKR, false)
	require.NoError(t, err)
	assert.Equal(t, domain.CycleResult{Total: 2, Saved: 2}, res)

	articles, err := store.FindArticles(context.Background(), domain.ArticleFilter{})
	require.NoError(t, err)
	assert.Len(t, articles, 2)
}

func TestPipeline_RunCycleSaveFailures(t *testing.T) {
	store := &mocks.StoreMock{
		FindSectorsFunc: func(ctx context.Context, activeOnly bool) ([]domain.Sector, error) {
			return testSectors(), nil
		},
		UpsertArticleIfAbsentFunc: func(ctx context.Context, article *domain.Article) (int64, bool, error) {
			return 0, false, errors.New("database is locked")
		},
	}
	coll := &mocks.CollectorMock{
		CollectFunc: func(ctx context.Context, plan collector.Plan) collector.Report {
			return collector.Report{Results: []collector.Result{
				{Source: "연합뉴스", Articles: []domain.RawArticle{
					{Title: "삼성전자 실적", URL: "u1", SourceName: "연합뉴스", Region: domain.RegionKR},
					{Title: "코스피 마감", URL: "u2", SourceName: "연합뉴스", Region: domain.RegionKR},
					{Title: "날씨 맑음", URL: "u3", SourceName: "연합뉴스", Region: domain.RegionKR},
				}},
			}}
		},
	}

	p := New(Deps{Store: store, Collector: coll}, Params{})
	res, err := p.RunCycle(context.Background(), domain.RegionKR, false)
	require.NoError(t, err)
	assert.Equal(t, domain.CycleResult{Total: 3, Unclassified: 1, Failed: 2}, res)
	assert.Equal(t, res.Total, res.Saved+res.Duplicates+res.Unclassified+res.Failed)
}
