package config

import (
	"fmt"
	"os"
	"time"
	_ "time/tzdata" // cadence windows need Asia/Seoul on hosts without zoneinfo

	"gopkg.in/yaml.v3"

	"github.com/morningdesk/morningdesk/pkg/domain"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
		BaseURL string        `yaml:"base_url" json:"base_url" jsonschema:"default=http://localhost:8080,description=Public base URL used in generated RSS"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:morningdesk.db?cache=shared&mode=rwc,description=Database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Schedule   ScheduleConfig   `yaml:"schedule" json:"schedule" jsonschema:"description=Scheduler configuration"`
	Collector  CollectorConfig  `yaml:"collector" json:"collector" jsonschema:"description=Feed collector configuration"`
	Search     SearchConfig     `yaml:"search" json:"search" jsonschema:"description=Keyword search API configuration"`
	LLM        LLMConfig        `yaml:"llm" json:"llm" jsonschema:"description=LLM configuration for escalated classification and briefings"`
	Clustering ClusteringConfig `yaml:"clustering" json:"clustering" jsonschema:"description=Near-duplicate clustering configuration"`
	Extraction ExtractionConfig `yaml:"extraction" json:"extraction" jsonschema:"description=Content extraction configuration"`

	Sectors []SectorConfig `yaml:"sectors" json:"sectors" jsonschema:"description=Sector seed list synced into the database on startup"`
}

// ScheduleConfig holds cadence settings, windows are evaluated in TimeZone
type ScheduleConfig struct {
	Disabled          bool          `yaml:"disabled" json:"disabled" jsonschema:"default=false,description=Turn off the built-in scheduler, triggers stay available"`
	TimeZone          string        `yaml:"time_zone" json:"time_zone" jsonschema:"default=Asia/Seoul,description=Civil time zone used for cadence windows"`
	UrgentInterval    time.Duration `yaml:"urgent_interval" json:"urgent_interval" jsonschema:"default=2m,description=Always-on regional urgent poll interval"`
	PreMarketInterval time.Duration `yaml:"pre_market_interval" json:"pre_market_interval" jsonschema:"default=10m,description=Interval inside the pre-market window (05-09)"`
	BusinessInterval  time.Duration `yaml:"business_interval" json:"business_interval" jsonschema:"default=15m,description=Interval during business hours (09-18)"`
	OvernightInterval time.Duration `yaml:"overnight_interval" json:"overnight_interval" jsonschema:"default=10m,description=Interval during the foreign market overnight window (22-02)"`
	RetentionDays     int           `yaml:"retention_days" json:"retention_days" jsonschema:"default=90,description=Delete articles and briefings older than this, 0 disables"`
}

// CollectorConfig holds feed fetching settings
type CollectorConfig struct {
	Timeout    time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=10s,description=Per-feed fetch timeout"`
	UserAgent  string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=MorningDesk/1.0 (news-aggregator),description=User agent for feed requests"`
	MaxWorkers int           `yaml:"max_workers" json:"max_workers" jsonschema:"default=10,description=Maximum concurrent source collectors"`
}

// SearchConfig holds keyword search API settings
type SearchConfig struct {
	Endpoint     string        `yaml:"endpoint" json:"endpoint" jsonschema:"default=https://openapi.naver.com/v1/search/news.json,description=News search endpoint"`
	ClientID     string        `yaml:"client_id" json:"client_id" jsonschema:"description=Search API client id (can use environment variable)"`
	ClientSecret string        `yaml:"client_secret" json:"client_secret" jsonschema:"description=Search API client secret (can use environment variable)"`
	SourceName   string        `yaml:"source_name" json:"source_name" jsonschema:"default=네이버뉴스,description=Source name stamped on search results"`
	Display      int           `yaml:"display" json:"display" jsonschema:"default=100,minimum=1,maximum=100,description=Results per page"`
	MaxPages     int           `yaml:"max_pages" json:"max_pages" jsonschema:"default=1,minimum=1,description=Pages per query"`
	Delay        time.Duration `yaml:"delay" json:"delay" jsonschema:"default=100ms,description=Delay between consecutive API calls"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=10s,description=Per-request timeout"`
}

// Enabled reports whether search credentials are configured
func (s SearchConfig) Enabled() bool {
	return s.ClientID != "" && s.ClientSecret != ""
}

// ClassificationConfig holds escalation settings
type ClassificationConfig struct {
	LowConfidence         float64 `yaml:"low_confidence" json:"low_confidence" jsonschema:"default=0.3,minimum=0,maximum=1,description=Articles below this confidence are escalated"`
	AcceptConfidence      float64 `yaml:"accept_confidence" json:"accept_confidence" jsonschema:"default=0.5,minimum=0,maximum=1,description=Judge assignments must exceed this confidence"`
	BatchSize             int     `yaml:"batch_size" json:"batch_size" jsonschema:"default=20,minimum=1,maximum=50,description=Number of articles per judge request"`
	MaxBatches            int     `yaml:"max_batches" json:"max_batches" jsonschema:"default=1,minimum=1,maximum=10,description=Judge requests per escalation pass"`
	ExtractMissingSummary bool    `yaml:"extract_missing_summary" json:"extract_missing_summary" jsonschema:"default=false,description=Extract page text for escalated articles without summary"`
}

// BriefingConfig holds narrative briefing settings
type BriefingConfig struct {
	MaxArticles int           `yaml:"max_articles" json:"max_articles" jsonschema:"default=30,description=Articles per sector briefing"`
	Lookback    time.Duration `yaml:"lookback" json:"lookback" jsonschema:"default=12h,description=Window used when a sector has no previous briefing"`
	MaxTokens   int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=1024,description=Maximum tokens in briefing response"`
}

// LLMConfig holds LLM configuration for the judge
type LLMConfig struct {
	Endpoint       string               `yaml:"endpoint" json:"endpoint" jsonschema:"description=OpenAI-compatible API endpoint"`
	APIKey         string               `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model          string               `yaml:"model" json:"model" jsonschema:"description=Model name (e.g. gpt-4o-mini)"`
	Temperature    float64              `yaml:"temperature" json:"temperature" jsonschema:"default=0.2,description=Temperature for response generation"`
	MaxTokens      int                  `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=2048,description=Maximum tokens in response"`
	Timeout        time.Duration        `yaml:"timeout" json:"timeout" jsonschema:"default=60s,description=Request timeout"`
	Classification ClassificationConfig `yaml:"classification" json:"classification" jsonschema:"description=Escalated classification settings"`
	Briefing       BriefingConfig       `yaml:"briefing" json:"briefing" jsonschema:"description=Briefing generation settings"`
}

// Enabled reports whether the judge can be called
func (l LLMConfig) Enabled() bool {
	return l.APIKey != "" && l.Model != ""
}

// ClusteringConfig holds clustering settings
type ClusteringConfig struct {
	Lookback      time.Duration `yaml:"lookback" json:"lookback" jsonschema:"default=12h,description=Only articles collected within this window are clustered"`
	Threshold     float64       `yaml:"threshold" json:"threshold" jsonschema:"default=0.4,minimum=0,maximum=1,description=Minimum Jaccard similarity of title tokens"`
	MaxCandidates int           `yaml:"max_candidates" json:"max_candidates" jsonschema:"default=200,description=Maximum articles compared per run"`
}

// ExtractionConfig holds content extraction settings
type ExtractionConfig struct {
	Timeout       time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Extraction timeout per article"`
	UserAgent     string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=MorningDesk/1.0,description=User agent for HTTP requests"`
	MinTextLength int           `yaml:"min_text_length" json:"min_text_length" jsonschema:"default=100,description=Minimum text length to consider valid"`
}

// SectorConfig is a sector seed entry
type SectorConfig struct {
	Label           string         `yaml:"label" json:"label" jsonschema:"required,description=Sector label"`
	Summary         string         `yaml:"summary" json:"summary" jsonschema:"description=Short sector description"`
	Keywords        []string       `yaml:"keywords" json:"keywords" jsonschema:"description=Ordered classification keywords"`
	SearchQueriesKR []string       `yaml:"search_queries_kr" json:"search_queries_kr" jsonschema:"description=Search API queries for the KR region"`
	SearchQueriesUS []string       `yaml:"search_queries_us" json:"search_queries_us" jsonschema:"description=Search queries for the US region"`
	SortOrder       int            `yaml:"sort_order" json:"sort_order" jsonschema:"description=Snapshot order, lower first"`
	Disabled        bool           `yaml:"disabled" json:"disabled" jsonschema:"default=false,description=Mark sector inactive"`
	Sources         []SourceConfig `yaml:"sources" json:"sources" jsonschema:"description=Sources attached to the sector"`
}

// SourceConfig is a source seed entry
type SourceConfig struct {
	Name     string `yaml:"name" json:"name" jsonschema:"required,description=Source name"`
	URL      string `yaml:"url" json:"url" jsonschema:"description=Feed URL"`
	APIType  string `yaml:"api_type" json:"api_type" jsonschema:"default=rss,enum=rss,enum=search-api,description=Collection method"`
	Region   string `yaml:"region" json:"region" jsonschema:"default=KR,enum=KR,enum=US,description=Source region"`
	Priority int    `yaml:"priority" json:"priority" jsonschema:"description=Source priority, lower first"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaults(&cfg)

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

func setDefaults(cfg *Config) {
	// server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = "http://localhost:8080"
	}

	// database
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:morningdesk.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}

	// schedule
	if cfg.Schedule.TimeZone == "" {
		cfg.Schedule.TimeZone = "Asia/Seoul"
	}
	if cfg.Schedule.UrgentInterval == 0 {
		cfg.Schedule.UrgentInterval = 2 * time.Minute
	}
	if cfg.Schedule.PreMarketInterval == 0 {
		cfg.Schedule.PreMarketInterval = 10 * time.Minute
	}
	if cfg.Schedule.BusinessInterval == 0 {
		cfg.Schedule.BusinessInterval = 15 * time.Minute
	}
	if cfg.Schedule.OvernightInterval == 0 {
		cfg.Schedule.OvernightInterval = 10 * time.Minute
	}

	// collector
	if cfg.Collector.Timeout == 0 {
		cfg.Collector.Timeout = 10 * time.Second
	}
	if cfg.Collector.UserAgent == "" {
		cfg.Collector.UserAgent = "MorningDesk/1.0 (news-aggregator)"
	}
	if cfg.Collector.MaxWorkers == 0 {
		cfg.Collector.MaxWorkers = 10
	}

	// search
	if cfg.Search.Endpoint == "" {
		cfg.Search.Endpoint = "https://openapi.naver.com/v1/search/news.json"
	}
	if cfg.Search.SourceName == "" {
		cfg.Search.SourceName = "네이버뉴스"
	}
	if cfg.Search.Display == 0 {
		cfg.Search.Display = 100
	}
	if cfg.Search.MaxPages == 0 {
		cfg.Search.MaxPages = 1
	}
	if cfg.Search.Delay == 0 {
		cfg.Search.Delay = 100 * time.Millisecond
	}
	if cfg.Search.Timeout == 0 {
		cfg.Search.Timeout = 10 * time.Second
	}

	// llm
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = 0.2
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = 2048
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = 60 * time.Second
	}
	if cfg.LLM.Classification.LowConfidence == 0 {
		cfg.LLM.Classification.LowConfidence = 0.3
	}
	if cfg.LLM.Classification.AcceptConfidence == 0 {
		cfg.LLM.Classification.AcceptConfidence = 0.5
	}
	if cfg.LLM.Classification.BatchSize == 0 {
		cfg.LLM.Classification.BatchSize = 20
	}
	if cfg.LLM.Classification.MaxBatches == 0 {
		cfg.LLM.Classification.MaxBatches = 1
	}
	if cfg.LLM.Briefing.MaxArticles == 0 {
		cfg.LLM.Briefing.MaxArticles = 30
	}
	if cfg.LLM.Briefing.Lookback == 0 {
		cfg.LLM.Briefing.Lookback = 12 * time.Hour
	}
	if cfg.LLM.Briefing.MaxTokens == 0 {
		cfg.LLM.Briefing.MaxTokens = 1024
	}

	// clustering
	if cfg.Clustering.Lookback == 0 {
		cfg.Clustering.Lookback = 12 * time.Hour
	}
	if cfg.Clustering.Threshold == 0 {
		cfg.Clustering.Threshold = 0.4
	}
	if cfg.Clustering.MaxCandidates == 0 {
		cfg.Clustering.MaxCandidates = 200
	}

	// extraction
	if cfg.Extraction.Timeout == 0 {
		cfg.Extraction.Timeout = 30 * time.Second
	}
	if cfg.Extraction.UserAgent == "" {
		cfg.Extraction.UserAgent = "MorningDesk/1.0"
	}
	if cfg.Extraction.MinTextLength == 0 {
		cfg.Extraction.MinTextLength = 100
	}

	// sources
	for i := range cfg.Sectors {
		for j := range cfg.Sectors[i].Sources {
			src := &cfg.Sectors[i].Sources[j]
			if src.APIType == "" {
				src.APIType = "rss"
			}
			if src.Region == "" {
				src.Region = "KR"
			}
		}
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if _, err := time.LoadLocation(cfg.Schedule.TimeZone); err != nil {
		return fmt.Errorf("schedule.time_zone %q: %w", cfg.Schedule.TimeZone, err)
	}
	if cfg.Schedule.RetentionDays < 0 {
		return fmt.Errorf("schedule.retention_days must be non-negative")
	}
	intervals := map[string]time.Duration{
		"urgent_interval":     cfg.Schedule.UrgentInterval,
		"pre_market_interval": cfg.Schedule.PreMarketInterval,
		"business_interval":   cfg.Schedule.BusinessInterval,
		"overnight_interval":  cfg.Schedule.OvernightInterval,
	}
	for name, d := range intervals {
		if d < time.Minute || d >= time.Hour || d%time.Minute != 0 {
			return fmt.Errorf("schedule.%s must be whole minutes between 1m and 59m, got %v", name, d)
		}
	}

	if cfg.Search.Display < 1 || cfg.Search.Display > 100 {
		return fmt.Errorf("search.display must be between 1 and 100")
	}

	// validate LLM config
	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}
	cls := cfg.LLM.Classification
	if cls.LowConfidence <= 0 || cls.LowConfidence > 1 {
		return fmt.Errorf("llm.classification.low_confidence must be in (0, 1]")
	}
	if cls.AcceptConfidence <= 0 || cls.AcceptConfidence > 1 {
		return fmt.Errorf("llm.classification.accept_confidence must be in (0, 1]")
	}
	if cls.BatchSize < 1 || cls.BatchSize > 50 {
		return fmt.Errorf("llm.classification.batch_size must be between 1 and 50")
	}
	if cls.MaxBatches < 1 || cls.MaxBatches > 10 {
		return fmt.Errorf("llm.classification.max_batches must be between 1 and 10")
	}

	if cfg.Clustering.Threshold <= 0 || cfg.Clustering.Threshold > 1 {
		return fmt.Errorf("clustering.threshold must be in (0, 1]")
	}
	if cfg.Clustering.MaxCandidates < 2 {
		return fmt.Errorf("clustering.max_candidates must be at least 2")
	}

	// validate sector seeds
	labels := make(map[string]bool, len(cfg.Sectors))
	for _, s := range cfg.Sectors {
		if s.Label == "" {
			return fmt.Errorf("sector label is required")
		}
		if labels[s.Label] {
			return fmt.Errorf("duplicate sector label %q", s.Label)
		}
		labels[s.Label] = true
		for _, src := range s.Sources {
			if src.Name == "" {
				return fmt.Errorf("sector %q: source name is required", s.Label)
			}
			if src.APIType != "rss" && src.APIType != "search-api" {
				return fmt.Errorf("sector %q: source %q has unknown api_type %q", s.Label, src.Name, src.APIType)
			}
			if src.APIType == "rss" && src.URL == "" {
				return fmt.Errorf("sector %q: rss source %q requires url", s.Label, src.Name)
			}
			if src.Region != "KR" && src.Region != "US" {
				return fmt.Errorf("sector %q: source %q has unknown region %q", s.Label, src.Name, src.Region)
			}
		}
	}

	// validate server config
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	return nil
}

// Location returns the configured civil time zone
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Schedule.TimeZone)
	if err != nil {
		return time.FixedZone("KST", 9*60*60)
	}
	return loc
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// SeedSectors converts the configured sector list into domain sectors for syncing into the store
func (c *Config) SeedSectors() []domain.Sector {
	res := make([]domain.Sector, 0, len(c.Sectors))
	for _, sc := range c.Sectors {
		sector := domain.Sector{
			Label:           sc.Label,
			Summary:         sc.Summary,
			Keywords:        sc.Keywords,
			SearchQueriesKR: sc.SearchQueriesKR,
			SearchQueriesUS: sc.SearchQueriesUS,
			Active:          !sc.Disabled,
			SortOrder:       sc.SortOrder,
		}
		for _, src := range sc.Sources {
			sector.Sources = append(sector.Sources, domain.Source{
				Name:     src.Name,
				FeedURL:  src.URL,
				APIType:  domain.APIType(src.APIType),
				Region:   domain.Region(src.Region),
				Priority: src.Priority,
				Active:   !sc.Disabled,
			})
		}
		res = append(res, sector)
	}
	return res
}

// GetFullConfig returns the full configuration
func (c *Config) GetFullConfig() *Config {
	return c
}
