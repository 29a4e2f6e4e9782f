package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morningdesk/morningdesk/pkg/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "test-config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))
	return configPath
}

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		configContent := `
server:
  listen: ":9090"
  timeout: 45s

schedule:
  time_zone: Asia/Seoul
  urgent_interval: 3m
  retention_days: 30

sectors:
  - label: 반도체
    keywords: [삼성전자, SK하이닉스, 반도체]
    search_queries_kr: [반도체 수출]
    sources:
      - name: 연합뉴스 경제
        url: https://example.com/economy.xml
      - name: Reuters Tech
        url: https://example.com/tech.xml
        region: US
  - label: 증시
    keywords: [코스피, 코스닥]
`
		cfg, err := Load(writeConfig(t, configContent))
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, ":9090", cfg.Server.Listen)
		assert.Equal(t, 45*time.Second, cfg.Server.Timeout)
		assert.Equal(t, 3*time.Minute, cfg.Schedule.UrgentInterval)
		assert.Equal(t, 30, cfg.Schedule.RetentionDays)

		require.Len(t, cfg.Sectors, 2)
		assert.Equal(t, "반도체", cfg.Sectors[0].Label)
		assert.Equal(t, []string{"삼성전자", "SK하이닉스", "반도체"}, cfg.Sectors[0].Keywords)
		require.Len(t, cfg.Sectors[0].Sources, 2)
		assert.Equal(t, "rss", cfg.Sectors[0].Sources[0].APIType)
		assert.Equal(t, "KR", cfg.Sectors[0].Sources[0].Region)
		assert.Equal(t, "US", cfg.Sectors[0].Sources[1].Region)
		assert.Equal(t, "증시", cfg.Sectors[1].Label)
	})

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "server:\n  listen: \":8080\"\n"))
		require.NoError(t, err)

		assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
		assert.Equal(t, "Asia/Seoul", cfg.Schedule.TimeZone)
		assert.Equal(t, 2*time.Minute, cfg.Schedule.UrgentInterval)
		assert.Equal(t, 10*time.Minute, cfg.Schedule.PreMarketInterval)
		assert.Equal(t, 15*time.Minute, cfg.Schedule.BusinessInterval)
		assert.Equal(t, 10*time.Minute, cfg.Schedule.OvernightInterval)
		assert.False(t, cfg.Schedule.Disabled)

		assert.Equal(t, 10*time.Second, cfg.Collector.Timeout)
		assert.Equal(t, 10, cfg.Collector.MaxWorkers)

		assert.Equal(t, "https://openapi.naver.com/v1/search/news.json", cfg.Search.Endpoint)
		assert.Equal(t, 100, cfg.Search.Display)
		assert.Equal(t, 100*time.Millisecond, cfg.Search.Delay)
		assert.False(t, cfg.Search.Enabled())

		assert.InDelta(t, 0.3, cfg.LLM.Classification.LowConfidence, 0.0001)
		assert.InDelta(t, 0.5, cfg.LLM.Classification.AcceptConfidence, 0.0001)
		assert.Equal(t, 20, cfg.LLM.Classification.BatchSize)
		assert.Equal(t, 1, cfg.LLM.Classification.MaxBatches)
		assert.Equal(t, 30, cfg.LLM.Briefing.MaxArticles)
		assert.Equal(t, 12*time.Hour, cfg.LLM.Briefing.Lookback)
		assert.False(t, cfg.LLM.Enabled())

		assert.Equal(t, 12*time.Hour, cfg.Clustering.Lookback)
		assert.InDelta(t, 0.4, cfg.Clustering.Threshold, 0.0001)
		assert.Equal(t, 200, cfg.Clustering.MaxCandidates)
	})

	t.Run("env expansion", func(t *testing.T) {
		t.Setenv("TEST_SEARCH_ID", "client-id")
		t.Setenv("TEST_SEARCH_SECRET", "client-secret")
		t.Setenv("TEST_LLM_KEY", "sk-test")
		configContent := `
search:
  client_id: ${TEST_SEARCH_ID}
  client_secret: ${TEST_SEARCH_SECRET}
llm:
  api_key: ${TEST_LLM_KEY}
  model: gpt-4o-mini
`
		cfg, err := Load(writeConfig(t, configContent))
		require.NoError(t, err)
		assert.Equal(t, "client-id", cfg.Search.ClientID)
		assert.True(t, cfg.Search.Enabled())
		assert.Equal(t, "sk-test", cfg.LLM.APIKey)
		assert.True(t, cfg.LLM.Enabled())
	})

	t.Run("file not found", func(t *testing.T) {
		cfg, err := Load("/non/existent/file.yml")
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "server: [unclosed"))
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "parse config")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{name: "bad time zone", content: "schedule:\n  time_zone: Mars/Olympus\n", errMsg: "schedule.time_zone"},
		{name: "negative retention", content: "schedule:\n  retention_days: -1\n", errMsg: "retention_days"},
		{name: "sub-minute interval", content: "schedule:\n  urgent_interval: 30s\n", errMsg: "schedule.urgent_interval"},
		{name: "hour interval", content: "schedule:\n  business_interval: 1h\n", errMsg: "schedule.business_interval"},
		{name: "display too large", content: "search:\n  display: 500\n", errMsg: "search.display"},
		{name: "batch too large", content: "llm:\n  classification:\n    batch_size: 51\n", errMsg: "batch_size"},
		{name: "low confidence out of range", content: "llm:\n  classification:\n    low_confidence: 1.5\n", errMsg: "low_confidence"},
		{name: "cluster threshold out of range", content: "clustering:\n  threshold: 2\n", errMsg: "clustering.threshold"},
		{name: "sector without label", content: "sectors:\n  - keywords: [a]\n", errMsg: "sector label is required"},
		{name: "duplicate sector", content: "sectors:\n  - label: a\n  - label: a\n", errMsg: "duplicate sector label"},
		{
			name:    "rss source without url",
			content: "sectors:\n  - label: a\n    sources:\n      - name: feed\n",
			errMsg:  "requires url",
		},
		{
			name:    "unknown api type",
			content: "sectors:\n  - label: a\n    sources:\n      - name: feed\n        url: http://x\n        api_type: soap\n",
			errMsg:  "unknown api_type",
		},
		{
			name:    "unknown region",
			content: "sectors:\n  - label: a\n    sources:\n      - name: feed\n        url: http://x\n        region: JP\n",
			errMsg:  "unknown region",
		},
		{name: "short server timeout", content: "server:\n  timeout: 100ms\n", errMsg: "server timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	t.Run("search source needs no url", func(t *testing.T) {
		content := "sectors:\n  - label: a\n    sources:\n      - name: 네이버뉴스\n        api_type: search-api\n"
		cfg, err := Load(writeConfig(t, content))
		require.NoError(t, err)
		assert.Equal(t, "search-api", cfg.Sectors[0].Sources[0].APIType)
	})
}

func TestConfig_Location(t *testing.T) {
	cfg := &Config{}
	cfg.Schedule.TimeZone = "Asia/Seoul"
	loc := cfg.Location()
	ts := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC).In(loc)
	_, offset := ts.Zone()
	assert.Equal(t, 9*60*60, offset)

	cfg.Schedule.TimeZone = "Nowhere/Invalid"
	_, offset = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC).In(cfg.Location()).Zone()
	assert.Equal(t, 9*60*60, offset, "falls back to fixed KST")
}

func TestConfig_GetServerConfig(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Listen = ":7070"
	cfg.Server.Timeout = 5 * time.Second
	listen, timeout := cfg.GetServerConfig()
	assert.Equal(t, ":7070", listen)
	assert.Equal(t, 5*time.Second, timeout)
	assert.Same(t, cfg, cfg.GetFullConfig())
}

func TestConfig_SeedSectors(t *testing.T) {
	cfg := &Config{Sectors: []SectorConfig{
		{Label: "반도체", Keywords: []string{"HBM"}, SearchQueriesKR: []string{"반도체 수출"}, SortOrder: 1,
			Sources: []SourceConfig{{Name: "연합", URL: "http://kr/feed", APIType: "rss", Region: "KR", Priority: 2}}},
		{Label: "증시", Disabled: true, Sources: []SourceConfig{{Name: "검색", APIType: "search-api", Region: "KR"}}},
	}}

	seed := cfg.SeedSectors()
	require.Len(t, seed, 2)
	assert.Equal(t, "반도체", seed[0].Label)
	assert.True(t, seed[0].Active)
	assert.Equal(t, []string{"반도체 수출"}, seed[0].SearchQueriesKR)
	assert.Equal(t, []domain.Source{{Name: "연합", FeedURL: "http://kr/feed", APIType: domain.APITypeRSS,
		Region: domain.RegionKR, Priority: 2, Active: true}}, seed[0].Sources)

	assert.False(t, seed[1].Active)
	require.Len(t, seed[1].Sources, 1)
	assert.Equal(t, domain.APITypeSearch, seed[1].Sources[0].APIType)
	assert.False(t, seed[1].Sources[0].Active)
}
