package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morningdesk/morningdesk/pkg/domain"
)

func TestBriefingRepository(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	sectors := seedSectors(t, repos)
	sectorID := sectors[0].ID

	latest, err := repos.Briefing.LatestBriefing(ctx, sectorID)
	require.NoError(t, err)
	assert.Nil(t, latest)

	now := time.Now().UTC()
	older := &domain.Briefing{SectorID: sectorID, Slot: domain.SlotNight, Headline: "older", Trend: domain.TrendCooling,
		GeneratedAt: now.Add(-10 * time.Hour)}
	newer := &domain.Briefing{SectorID: sectorID, Slot: domain.SlotMorning, Headline: "newer", Summary: "sum",
		Trend: domain.TrendEscalating, TrendNote: "note", MarketImpact: "impact", ReportingTip: "tip",
		KeyFigures: []string{"매출 79조"}, Sentiment: -0.4, ArticleCount: 12, GeneratedAt: now}
	ancient := &domain.Briefing{SectorID: sectors[1].ID, Slot: domain.SlotMorning, Headline: "ancient",
		GeneratedAt: now.AddDate(0, 0, -120)}
	for _, b := range []*domain.Briefing{older, newer, ancient} {
		require.NoError(t, repos.Briefing.CreateBriefing(ctx, b))
		assert.NotZero(t, b.ID)
	}

	latest, err = repos.Briefing.LatestBriefing(ctx, sectorID)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "newer", latest.Headline)
	assert.Equal(t, domain.TrendEscalating, latest.Trend)
	assert.Equal(t, []string{"매출 79조"}, latest.KeyFigures)
	assert.InDelta(t, -0.4, latest.Sentiment, 0.0001)
	assert.Equal(t, 12, latest.ArticleCount)
	assert.WithinDuration(t, now, latest.GeneratedAt, time.Second)

	list, err := repos.Briefing.FindBriefings(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "newer", list[0].Headline)

	list, err = repos.Briefing.FindBriefings(ctx, sectorID, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)

	n, err := repos.Briefing.DeleteBriefingsBefore(ctx, now.AddDate(0, 0, -90))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
