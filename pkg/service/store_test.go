package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morningdesk/morningdesk/pkg/domain"
	"github.com/morningdesk/morningdesk/pkg/repository"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	repos, err := repository.NewRepositories(ctx, repository.Config{DSN: ":memory:", MaxOpenConns: 1, MaxIdleConns: 1})
	require.NoError(t, err)
	defer repos.Close()

	s := NewStore(repos)
	require.NoError(t, s.SyncSectors(ctx, []domain.Sector{{Label: "반도체", Keywords: []string{"삼성전자"}, Active: true}}))

	sectors, err := s.FindSectors(ctx, true)
	require.NoError(t, err)
	require.Len(t, sectors, 1)
	sector, err := s.GetSectorByLabel(ctx, "반도체")
	require.NoError(t, err)
	assert.Equal(t, sectors[0].ID, sector.ID)

	sectorID := sector.ID
	id, wasNew, err := s.UpsertArticleIfAbsent(ctx, &domain.Article{Title: "삼성전자 실적", URL: "u1",
		Region: domain.RegionKR, SectorID: &sectorID, Confidence: 0.1})
	require.NoError(t, err)
	assert.True(t, wasNew)

	require.NoError(t, s.UpdateArticleSummary(ctx, id, "요약"))
	require.NoError(t, s.UpdateArticleSectorAndConfidence(ctx, id, sectorID, 0.9))
	n, err := s.StampClusterID(ctx, []int64{id}, "cl_1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	articles, err := s.FindArticles(ctx, domain.ArticleFilter{SectorID: sectorID})
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "요약", articles[0].Summary)
	assert.InDelta(t, 0.9, articles[0].Confidence, 0.0001)
	assert.Equal(t, "cl_1", articles[0].ClusterID)

	require.NoError(t, s.CreateBriefing(ctx, &domain.Briefing{SectorID: sectorID, Slot: domain.SlotMorning,
		Headline: "h", Trend: domain.TrendStable}))
	latest, err := s.LatestBriefing(ctx, sectorID)
	require.NoError(t, err)
	require.NotNil(t, latest)
	briefings, err := s.FindBriefings(ctx, 0, 10)
	require.NoError(t, err)
	assert.Len(t, briefings, 1)

	future := time.Now().Add(time.Hour)
	deleted, err := s.DeleteArticlesBefore(ctx, future)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
	deleted, err = s.DeleteBriefingsBefore(ctx, future)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
	count, err := s.CountArticles(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
