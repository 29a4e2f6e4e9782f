// Package pipeline orchestrates collection cycles and the follow-up passes. Every operation
// holds its own try-lock, a trigger arriving while the same operation runs is skipped, not queued.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/morningdesk/morningdesk/pkg/classifier"
	"github.com/morningdesk/morningdesk/pkg/cluster"
	"github.com/morningdesk/morningdesk/pkg/collector"
	"github.com/morningdesk/morningdesk/pkg/domain"
	"github.com/morningdesk/morningdesk/pkg/events"
	"github.com/morningdesk/morningdesk/pkg/metrics"
)

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store
//go:generate moq -out mocks/collector.go -pkg mocks -skip-ensure -fmt goimports . Collector
//go:generate moq -out mocks/reclassifier.go -pkg mocks -skip-ensure -fmt goimports . Reclassifier
//go:generate moq -out mocks/clusterer.go -pkg mocks -skip-ensure -fmt goimports . Clusterer
//go:generate moq -out mocks/briefer.go -pkg mocks -skip-ensure -fmt goimports . Briefer

// Store is the ingest store used by cycles and housekeeping
type Store interface {
	FindSectors(ctx context.Context, activeOnly bool) ([]domain.Sector, error)
	UpsertArticleIfAbsent(ctx context.Context, article *domain.Article) (id int64, wasNew bool, err error)
	DeleteArticlesBefore(ctx context.Context, cutoff time.Time) (int64, error)
	DeleteBriefingsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Collector runs the source collectors of a plan
type Collector interface {
	Collect(ctx context.Context, plan collector.Plan) collector.Report
}

// Publisher receives article events
type Publisher interface {
	Emit(ev domain.Event)
}

// Reclassifier is the escalation pass
type Reclassifier interface {
	Run(ctx context.Context) (domain.ReclassifyResult, error)
}

// Clusterer is the clustering pass
type Clusterer interface {
	Run(ctx context.Context, opts cluster.Options) (domain.ClusterResult, error)
}

// Briefer is the briefing pass
type Briefer interface {
	Generate(ctx context.Context, slot domain.BriefingSlot) (domain.BriefingResult, error)
}

// Deps are the collaborators of a pipeline. Reclassifier and Briefer are nil when the judge is not
// configured, Publisher and Metrics are optional.
type Deps struct {
	Store        Store
	Collector    Collector
	Publisher    Publisher
	Reclassifier Reclassifier
	Clusterer    Clusterer
	Briefer      Briefer
	Metrics      *metrics.Recorder
}

// Params configure the pipeline
type Params struct {
	SearchEnabled bool // search credentials are configured
}

// Pipeline runs collection cycles and follow-up passes
type Pipeline struct {
	Deps
	params Params

	collecting  tryLock
	classifying tryLock
	clustering  tryLock
	briefing    tryLock

	mu        sync.Mutex
	lastCycle *CycleStatus
}

// CycleStatus is the last finished cycle
type CycleStatus struct {
	Region     domain.Region      `json:"region"`
	Result     domain.CycleResult `json:"result"`
	FinishedAt time.Time          `json:"finished_at"`
	Duration   time.Duration      `json:"duration"`
}

// Status reports which operations are running and the last cycle
type Status struct {
	Collecting  bool         `json:"collecting"`
	Classifying bool         `json:"classifying"`
	Clustering  bool         `json:"clustering"`
	Briefing    bool         `json:"briefing"`
	JudgeActive bool         `json:"judge_active"`
	LastCycle   *CycleStatus `json:"last_cycle,omitempty"`
}

// FullBatchResult combines the results of a full batch
type FullBatchResult struct {
	Cycle      domain.CycleResult      `json:"cycle"`
	Reclassify domain.ReclassifyResult `json:"reclassify"`
	Cluster    domain.ClusterResult    `json:"cluster"`
}

// New makes a pipeline
func New(deps Deps, params Params) *Pipeline {
	return &Pipeline{Deps: deps, params: params}
}

// RunCycle collects from every active source of the region, classifies by keywords and stores new articles.
// Returns a skipped result with no side effects when another cycle is in progress.
func (p *Pipeline) RunCycle(ctx context.Context, region domain.Region, includeSearch bool) (domain.CycleResult, error) {
	if !p.collecting.TryLock() {
		log.Printf("[INFO] collection cycle %s skipped, previous run in progress", region)
		res := domain.CycleResult{Skipped: true}
		p.Metrics.ObserveCycle(region, res, 0)
		return res, nil
	}
	defer p.collecting.Unlock()

	st := time.Now()
	res, err := p.runCycle(ctx, region, includeSearch)
	if err != nil {
		return res, err
	}
	dur := time.Since(st)
	log.Printf("[INFO] cycle %s done in %v: total=%d saved=%d duplicates=%d unclassified=%d failed=%d failed_sources=%d",
		region, dur.Round(time.Millisecond), res.Total, res.Saved, res.Duplicates, res.Unclassified, res.Failed, res.FailedSources)
	p.Metrics.ObserveCycle(region, res, dur)

	p.mu.Lock()
	p.lastCycle = &CycleStatus{Region: region, Result: res, FinishedAt: time.Now(), Duration: dur}
	p.mu.Unlock()
	return res, nil
}

func (p *Pipeline) runCycle(ctx context.Context, region domain.Region, includeSearch bool) (domain.CycleResult, error) {
	res := domain.CycleResult{}

	sectors, err := p.Store.FindSectors(ctx, true)
	if err != nil {
		return res, fmt.Errorf("load sectors: %w", err)
	}

	plan := BuildPlan(sectors, region, includeSearch && p.params.SearchEnabled)
	log.Printf("[DEBUG] cycle %s: %d feeds, %d search queries", region, len(plan.Feeds), len(plan.Queries))

	report := p.Collector.Collect(ctx, plan)
	res.FailedSources = report.Failed()
	articles := report.Articles()
	res.Total = len(articles)

	// collected articles are saved even if the caller goes away mid-cycle
	saveCtx := context.WithoutCancel(ctx)
	sourceIDs := sourceIndex(sectors)
	for _, raw := range articles {
		if raw.URL == "" {
			continue
		}
		match, ok := classifier.MatchSector(raw, sectors)
		if !ok {
			log.Printf("[DEBUG] unclassified article dropped: %s", raw.URL)
			res.Unclassified++
			continue
		}

		article := &domain.Article{
			Title:       raw.Title,
			URL:         raw.URL,
			Summary:     raw.Summary,
			Thumbnail:   raw.Thumbnail,
			PublishedAt: raw.PublishedAt,
			SourceName:  raw.SourceName,
			Region:      raw.Region,
			SectorID:    &match.SectorID,
			Confidence:  match.Confidence,
		}
		if id, found := sourceIDs[raw.SourceName]; found {
			article.SourceID = &id
		}

		id, wasNew, err := p.Store.UpsertArticleIfAbsent(saveCtx, article)
		if err != nil {
			log.Printf("[ERROR] failed to save article %s: %v", raw.URL, err)
			res.Failed++
			continue
		}
		if !wasNew {
			res.Duplicates++
			continue
		}
		res.Saved++
		article.ID = id
		p.emit(events.ArticleEvent(*article))
	}
	return res, nil
}

func (p *Pipeline) emit(ev domain.Event) {
	if p.Publisher != nil {
		p.Publisher.Emit(ev)
	}
}

// BuildPlan makes the collection plan for a region from a sector snapshot. Feeds are active rss sources
// of the region deduplicated by URL, queries are the KR search queries when search is on and KR is covered.
func BuildPlan(sectors []domain.Sector, region domain.Region, withSearch bool) collector.Plan {
	var feeds []domain.Source
	for _, s := range sectors {
		for _, src := range s.Sources {
			if src.APIType != domain.APITypeRSS || src.FeedURL == "" || !region.Includes(src.Region) {
				continue
			}
			feeds = append(feeds, src)
		}
	}
	plan := collector.Plan{Feeds: collector.DedupFeeds(feeds)}

	if !withSearch || !region.Includes(domain.RegionKR) {
		return plan
	}
	for _, s := range sectors {
		for _, q := range s.SearchQueriesKR {
			if q != "" && !slices.Contains(plan.Queries, q) {
				plan.Queries = append(plan.Queries, q)
			}
		}
	}
	return plan
}

// sourceIndex maps source names to ids, the first source with a name wins
func sourceIndex(sectors []domain.Sector) map[string]int64 {
	res := make(map[string]int64)
	for _, s := range sectors {
		for _, src := range s.Sources {
			if _, ok := res[src.Name]; !ok {
				res[src.Name] = src.ID
			}
		}
	}
	return res
}

// Reclassify runs the escalation pass, a no-op when the judge is not configured
func (p *Pipeline) Reclassify(ctx context.Context) (domain.ReclassifyResult, error) {
	if p.Reclassifier == nil {
		log.Printf("[DEBUG] escalation disabled, no llm configured")
		return domain.ReclassifyResult{}, nil
	}
	if !p.classifying.TryLock() {
		log.Printf("[INFO] escalation skipped, previous run in progress")
		res := domain.ReclassifyResult{Busy: true}
		p.Metrics.ObserveReclassify(res)
		return res, nil
	}
	defer p.classifying.Unlock()

	res, err := p.Reclassifier.Run(ctx)
	if err != nil {
		return res, fmt.Errorf("escalation: %w", err)
	}
	p.Metrics.ObserveReclassify(res)
	return res, nil
}

// Cluster runs the clustering pass, sectorID 0 covers all sectors
func (p *Pipeline) Cluster(ctx context.Context, sectorID int64) (domain.ClusterResult, error) {
	if !p.clustering.TryLock() {
		log.Printf("[INFO] clustering skipped, previous run in progress")
		res := domain.ClusterResult{Busy: true}
		p.Metrics.ObserveCluster(res)
		return res, nil
	}
	defer p.clustering.Unlock()

	res, err := p.Clusterer.Run(ctx, cluster.Options{SectorID: sectorID})
	if err != nil {
		return res, fmt.Errorf("clustering: %w", err)
	}
	p.Metrics.ObserveCluster(res)
	return res, nil
}

// Briefings runs the briefing pass for a slot, a no-op when the judge is not configured
func (p *Pipeline) Briefings(ctx context.Context, slot domain.BriefingSlot) (domain.BriefingResult, error) {
	if p.Briefer == nil {
		log.Printf("[DEBUG] briefings disabled, no llm configured")
		return domain.BriefingResult{}, nil
	}
	if !p.briefing.TryLock() {
		log.Printf("[INFO] %s briefings skipped, previous run in progress", slot)
		res := domain.BriefingResult{Busy: true}
		p.Metrics.ObserveBriefings(slot, res)
		return res, nil
	}
	defer p.briefing.Unlock()

	res, err := p.Briefer.Generate(ctx, slot)
	if err != nil {
		return res, fmt.Errorf("briefings: %w", err)
	}
	p.Metrics.ObserveBriefings(slot, res)
	return res, nil
}

// FullBatch collects everything with search, then escalates and clusters. A failing step is
// logged and reported, later steps still run.
func (p *Pipeline) FullBatch(ctx context.Context) (FullBatchResult, error) {
	log.Printf("[INFO] full batch started")
	var res FullBatchResult
	var errs []error

	var err error
	if res.Cycle, err = p.RunCycle(ctx, domain.RegionAll, true); err != nil {
		log.Printf("[WARN] full batch collection failed: %v", err)
		errs = append(errs, err)
	}
	if res.Reclassify, err = p.Reclassify(ctx); err != nil {
		log.Printf("[WARN] full batch escalation failed: %v", err)
		errs = append(errs, err)
	}
	if res.Cluster, err = p.Cluster(ctx, 0); err != nil {
		log.Printf("[WARN] full batch clustering failed: %v", err)
		errs = append(errs, err)
	}
	log.Printf("[INFO] full batch done: saved=%d classified=%d clusters=%d",
		res.Cycle.Saved, res.Reclassify.Classified, res.Cluster.ClustersFormed)
	return res, errors.Join(errs...)
}

// Housekeeping deletes articles and briefings older than the retention period
func (p *Pipeline) Housekeeping(ctx context.Context, retention time.Duration) error {
	if retention <= 0 {
		return nil
	}
	cutoff := time.Now().Add(-retention)
	articles, err := p.Store.DeleteArticlesBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("delete old articles: %w", err)
	}
	briefings, err := p.Store.DeleteBriefingsBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("delete old briefings: %w", err)
	}
	log.Printf("[INFO] housekeeping removed %d articles and %d briefings older than %s",
		articles, briefings, cutoff.Format(time.DateTime))
	return nil
}

// Status returns the current run flags and the last cycle
func (p *Pipeline) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Status{
		Collecting:  p.collecting.Held(),
		Classifying: p.classifying.Held(),
		Clustering:  p.clustering.Held(),
		Briefing:    p.briefing.Held(),
		JudgeActive: p.Reclassifier != nil,
		LastCycle:   p.lastCycle,
	}
}

// tryLock is a non-blocking mutex
type tryLock struct {
	held atomic.Bool
}

func (l *tryLock) TryLock() bool { return l.held.CompareAndSwap(false, true) }
func (l *tryLock) Unlock()       { l.held.Store(false) }
func (l *tryLock) Held() bool    { return l.held.Load() }
