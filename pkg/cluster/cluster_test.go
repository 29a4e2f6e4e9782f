package cluster

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morningdesk/morningdesk/pkg/cluster/mocks"
	"github.com/morningdesk/morningdesk/pkg/domain"
)

func sector(id int64) *int64 { return &id }

func TestGroup(t *testing.T) {
	t.Run("similar titles in one sector share a group", func(t *testing.T) {
		groups := Group([]domain.Article{
			{ID: 7, Title: "블루아울 환매 중단 발표", SectorID: sector(1)},
			{ID: 3, Title: "사모펀드 블루아울, 환매중단 결정", SectorID: sector(1)},
			{ID: 5, Title: "코스피 하락 마감", SectorID: sector(1)},
		}, 0.4)
		assert.Equal(t, [][]int64{{3, 7}}, groups)
	})

	t.Run("transitive merge", func(t *testing.T) {
		a := domain.Article{ID: 1, Title: "블루아울 환매 중단 발표", SectorID: sector(1)}
		b := domain.Article{ID: 2, Title: "사모펀드 블루아울, 환매중단 결정", SectorID: sector(1)}
		c := domain.Article{ID: 3, Title: "사모펀드 블루아울 환매중단 결정 파장 확산", SectorID: sector(1)}
		require.Less(t, Jaccard(Tokenize(a.Title), Tokenize(c.Title)), 0.4)
		require.GreaterOrEqual(t, Jaccard(Tokenize(a.Title), Tokenize(b.Title)), 0.4)
		require.GreaterOrEqual(t, Jaccard(Tokenize(b.Title), Tokenize(c.Title)), 0.4)

		groups := Group([]domain.Article{c, a, b}, 0.4)
		assert.Equal(t, [][]int64{{1, 2, 3}}, groups)
	})

	t.Run("different sectors never merged", func(t *testing.T) {
		groups := Group([]domain.Article{
			{ID: 1, Title: "삼성전자 실적 발표", SectorID: sector(1)},
			{ID: 2, Title: "삼성전자 실적 발표", SectorID: sector(2)},
			{ID: 3, Title: "삼성전자 실적 발표"},
		}, 0.4)
		assert.Empty(t, groups)
	})

	t.Run("below threshold stays singleton", func(t *testing.T) {
		groups := Group([]domain.Article{
			{ID: 1, Title: "코스피 하락 마감", SectorID: sector(1)},
			{ID: 2, Title: "환율 급등 우려", SectorID: sector(1)},
		}, 0.4)
		assert.Empty(t, groups)
	})

	t.Run("several groups ordered by smallest id", func(t *testing.T) {
		groups := Group([]domain.Article{
			{ID: 20, Title: "코스피 외국인 순매수 확대", SectorID: sector(2)},
			{ID: 12, Title: "블루아울 환매 중단 발표", SectorID: sector(1)},
			{ID: 30, Title: "코스피 외국인 순매수 확대 지속", SectorID: sector(2)},
			{ID: 11, Title: "블루아울 환매 중단 발표 파장", SectorID: sector(1)},
		}, 0.4)
		assert.Equal(t, [][]int64{{11, 12}, {20, 30}}, groups)
	})
}

func TestID(t *testing.T) {
	assert.Equal(t, "cl_3", ID([]int64{9, 3, 5}))
}

func TestEngine_Run(t *testing.T) {
	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	t.Run("stamps groups", func(t *testing.T) {
		store := &mocks.StoreMock{
			FindArticlesFunc: func(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error) {
				return []domain.Article{
					{ID: 4, Title: "블루아울 환매 중단 발표", SectorID: sector(1)},
					{ID: 2, Title: "사모펀드 블루아울, 환매중단 결정", SectorID: sector(1)},
					{ID: 1, Title: "코스피 하락 마감", SectorID: sector(1)},
				}, nil
			},
			StampClusterIDFunc: func(ctx context.Context, ids []int64, clusterID string) (int64, error) {
				return int64(len(ids)), nil
			},
		}
		e := NewEngine(store, Options{})
		e.now = func() time.Time { return now }

		res, err := e.Run(context.Background(), Options{})
		require.NoError(t, err)
		assert.Equal(t, domain.ClusterResult{ClustersFormed: 1, ArticlesUpdated: 2}, res)

		require.Len(t, store.FindArticlesCalls(), 1)
		filter := store.FindArticlesCalls()[0].Filter
		assert.True(t, filter.Unclustered)
		assert.Equal(t, 200, filter.Limit)
		assert.Equal(t, now.Add(-12*time.Hour), filter.Since)
		assert.Zero(t, filter.SectorID)

		require.Len(t, store.StampClusterIDCalls(), 1)
		assert.Equal(t, []int64{2, 4}, store.StampClusterIDCalls()[0].Ids)
		assert.Equal(t, "cl_2", store.StampClusterIDCalls()[0].ClusterID)
	})

	t.Run("options override defaults", func(t *testing.T) {
		store := &mocks.StoreMock{
			FindArticlesFunc: func(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error) {
				return nil, nil
			},
		}
		e := NewEngine(store, Options{Lookback: 6 * time.Hour, MaxCandidates: 50})
		e.now = func() time.Time { return now }

		res, err := e.Run(context.Background(), Options{SectorID: 3, Lookback: time.Hour})
		require.NoError(t, err)
		assert.Equal(t, domain.ClusterResult{}, res)
		filter := store.FindArticlesCalls()[0].Filter
		assert.Equal(t, int64(3), filter.SectorID)
		assert.Equal(t, 50, filter.Limit)
		assert.Equal(t, now.Add(-time.Hour), filter.Since)
	})

	t.Run("already stamped group not counted", func(t *testing.T) {
		store := &mocks.StoreMock{
			FindArticlesFunc: func(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error) {
				return []domain.Article{
					{ID: 1, Title: "삼성전자 실적 발표", SectorID: sector(1)},
					{ID: 2, Title: "삼성전자 실적 발표", SectorID: sector(1)},
				}, nil
			},
			StampClusterIDFunc: func(ctx context.Context, ids []int64, clusterID string) (int64, error) {
				return 0, nil
			},
		}
		res, err := NewEngine(store, Options{}).Run(context.Background(), Options{})
		require.NoError(t, err)
		assert.Equal(t, domain.ClusterResult{}, res)
	})

	t.Run("store errors", func(t *testing.T) {
		store := &mocks.StoreMock{
			FindArticlesFunc: func(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error) {
				return nil, errors.New("db closed")
			},
		}
		_, err := NewEngine(store, Options{}).Run(context.Background(), Options{})
		require.Error(t, err)

		store = &mocks.StoreMock{
			FindArticlesFunc: func(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error) {
				return []domain.Article{{ID: 1, Title: "같은 제목"}, {ID: 2, Title: "같은 제목"}}, nil
			},
			StampClusterIDFunc: func(ctx context.Context, ids []int64, clusterID string) (int64, error) {
				return 0, errors.New("locked")
			},
		}
		_, err = NewEngine(store, Options{}).Run(context.Background(), Options{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cl_1")
	})
}
