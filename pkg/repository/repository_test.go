package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morningdesk/morningdesk/pkg/domain"
)

// setupTestDB creates an in-memory database with the full schema
func setupTestDB(t *testing.T) *Repositories {
	t.Helper()
	cfg := Config{
		DSN:             ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: 30 * time.Second,
	}
	repos, err := NewRepositories(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, repos.Close()) })
	return repos
}

// seedSectors creates two sectors with one rss source each
func seedSectors(t *testing.T, repos *Repositories) []domain.Sector {
	t.Helper()
	seed := []domain.Sector{
		{Label: "반도체", Keywords: []string{"삼성전자", "반도체"}, SearchQueriesKR: []string{"반도체 수출"}, Active: true, SortOrder: 1,
			Sources: []domain.Source{{Name: "feed-a", FeedURL: "http://example.com/a.xml", Active: true}}},
		{Label: "증시", Keywords: []string{"코스피"}, Active: true, SortOrder: 2,
			Sources: []domain.Source{{Name: "feed-b", FeedURL: "http://example.com/b.xml", Region: domain.RegionUS, Active: true}}},
	}
	require.NoError(t, repos.Sector.SyncSectors(context.Background(), seed))
	sectors, err := repos.Sector.FindSectors(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, sectors, 2)
	return sectors
}

func TestRepositories_Integration(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repos.Ping(ctx))
	sectors := seedSectors(t, repos)

	sectorID := sectors[0].ID
	article := &domain.Article{
		Title:      "삼성전자 속보: 실적 발표",
		URL:        "http://example.com/u1",
		SourceName: "feed-a",
		Region:     domain.RegionKR,
		SectorID:   &sectorID,
		Confidence: 1,
	}
	id, wasNew, err := repos.Article.UpsertArticleIfAbsent(ctx, article)
	require.NoError(t, err)
	assert.True(t, wasNew)

	got, err := repos.Article.GetArticle(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, article.Title, got.Title)
	require.NotNil(t, got.SectorID)
	assert.Equal(t, sectorID, *got.SectorID)
	assert.Empty(t, got.ClusterID)

	b := &domain.Briefing{SectorID: sectorID, Slot: domain.SlotMorning, Headline: "h", Trend: domain.TrendStable, ArticleCount: 1}
	require.NoError(t, repos.Briefing.CreateBriefing(ctx, b))
	latest, err := repos.Briefing.LatestBriefing(ctx, sectorID)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, b.ID, latest.ID)
}

func TestNewRepositories_Reopen(t *testing.T) {
	dsn := "file:" + t.TempDir() + "/test.db?mode=rwc"
	ctx := context.Background()

	repos, err := NewRepositories(ctx, Config{DSN: dsn, MaxOpenConns: 1})
	require.NoError(t, err)
	_, _, err = repos.Article.UpsertArticleIfAbsent(ctx, &domain.Article{Title: "t", URL: "http://example.com/1", Region: domain.RegionKR})
	require.NoError(t, err)
	require.NoError(t, repos.Close())

	// schema and migrations are idempotent on an existing database
	repos, err = NewRepositories(ctx, Config{DSN: dsn, MaxOpenConns: 1})
	require.NoError(t, err)
	defer repos.Close()
	count, err := repos.Article.CountArticles(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestIsLockError(t *testing.T) {
	assert.False(t, isLockError(nil))
	assert.False(t, isLockError(assert.AnError))
	assert.True(t, isLockError(&criticalError{err: errString("database is locked (5) (SQLITE_BUSY)")}))
	assert.True(t, isLockError(errString("database table is locked")))
}

type errString string

func (e errString) Error() string { return string(e) }
