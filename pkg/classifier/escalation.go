package classifier

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	log "github.com/go-pkgz/lgr"

	"github.com/morningdesk/morningdesk/pkg/domain"
	"github.com/morningdesk/morningdesk/pkg/llm"
)

//go:generate moq -out mocks/article_store.go -pkg mocks -skip-ensure -fmt goimports . ArticleStore
//go:generate moq -out mocks/sector_store.go -pkg mocks -skip-ensure -fmt goimports . SectorStore
//go:generate moq -out mocks/judge.go -pkg mocks -skip-ensure -fmt goimports . Judge
//go:generate moq -out mocks/extractor.go -pkg mocks -skip-ensure -fmt goimports . Extractor

// maxBatchSize caps the number of articles sent in one judge request
const maxBatchSize = 50

// backfillSummaryLen is how much extracted text is kept as a summary
const backfillSummaryLen = 300

// ArticleStore provides access to persisted articles
type ArticleStore interface {
	FindArticles(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error)
	UpdateArticleSectorAndConfidence(ctx context.Context, id, sectorID int64, confidence float64) error
	UpdateArticleSummary(ctx context.Context, id int64, summary string) error
}

// SectorStore provides the sector snapshot
type SectorStore interface {
	FindSectors(ctx context.Context, activeOnly bool) ([]domain.Sector, error)
}

// Judge classifies a batch of articles
type Judge interface {
	ClassifyBatch(ctx context.Context, req llm.ClassifyRequest) ([]llm.Assignment, error)
}

// Extractor fetches page text for articles without a summary
type Extractor interface {
	Extract(ctx context.Context, url string) (string, error)
}

// EscalatorParams configures an escalation pass
type EscalatorParams struct {
	LowConfidence    float64 // articles below it are candidates
	AcceptConfidence float64 // assignments must exceed it
	BatchSize        int
	MaxBatches       int
}

// BatchResult is the outcome of one judge request
type BatchResult struct {
	Batch      int
	Size       int
	Classified int
	Skipped    int
	Err        error
	Duration   time.Duration
}

// Escalator re-classifies low confidence articles with the judge
type Escalator struct {
	articles  ArticleStore
	sectors   SectorStore
	judge     Judge
	extractor Extractor
	params    EscalatorParams
}

// NewEscalator makes an escalator, extractor is optional and used to backfill empty summaries
func NewEscalator(articles ArticleStore, sectors SectorStore, judge Judge, extractor Extractor, params EscalatorParams) *Escalator {
	if params.LowConfidence <= 0 {
		params.LowConfidence = 0.3
	}
	if params.AcceptConfidence <= 0 {
		params.AcceptConfidence = 0.5
	}
	if params.BatchSize <= 0 {
		params.BatchSize = 20
	}
	params.BatchSize = min(params.BatchSize, maxBatchSize)
	if params.MaxBatches <= 0 {
		params.MaxBatches = 1
	}
	return &Escalator{articles: articles, sectors: sectors, judge: judge, extractor: extractor, params: params}
}

// Run loads the newest low confidence articles and sends them to the judge batch by batch.
// A failed batch leaves its articles untouched and is counted, the pass continues with the next one.
func (e *Escalator) Run(ctx context.Context) (domain.ReclassifyResult, error) {
	res := domain.ReclassifyResult{}

	found, err := e.articles.FindArticles(ctx, domain.ArticleFilter{
		MaxConfidence: e.params.LowConfidence,
		Limit:         e.params.BatchSize * e.params.MaxBatches,
	})
	if err != nil {
		return res, fmt.Errorf("find low confidence articles: %w", err)
	}
	candidates := make([]domain.Article, 0, len(found))
	for _, a := range found {
		if a.Confidence < e.params.LowConfidence {
			candidates = append(candidates, a)
		}
	}
	if len(candidates) == 0 {
		log.Printf("[DEBUG] no low confidence articles to escalate")
		return res, nil
	}

	sectors, err := e.sectors.FindSectors(ctx, true)
	if err != nil {
		return res, fmt.Errorf("find sectors: %w", err)
	}
	if len(sectors) == 0 {
		log.Printf("[WARN] no active sectors, skip escalation of %d articles", len(candidates))
		return res, nil
	}

	catalog := make([]llm.SectorInput, 0, len(sectors))
	known := make(map[int64]bool, len(sectors))
	for _, s := range sectors {
		catalog = append(catalog, llm.SectorInput{ID: s.ID, Label: s.Label, Keywords: s.Keywords})
		known[s.ID] = true
	}

	for i, n := 0, 0; i < len(candidates); i, n = i+e.params.BatchSize, n+1 {
		batch := candidates[i:min(i+e.params.BatchSize, len(candidates))]
		br := e.runBatch(ctx, n, batch, catalog, known)
		if br.Err != nil {
			log.Printf("[WARN] escalation batch %d (%d articles) failed: %v", br.Batch, br.Size, br.Err)
			res.FailedBatches++
			continue
		}
		log.Printf("[DEBUG] escalation batch %d: %d classified, %d skipped in %v",
			br.Batch, br.Classified, br.Skipped, br.Duration)
		res.Classified += br.Classified
		res.Skipped += br.Skipped
	}

	log.Printf("[INFO] escalation done: %d classified, %d skipped, %d failed batches",
		res.Classified, res.Skipped, res.FailedBatches)
	return res, nil
}

func (e *Escalator) runBatch(ctx context.Context, n int, batch []domain.Article, catalog []llm.SectorInput,
	known map[int64]bool) BatchResult {
	st := time.Now()
	br := BatchResult{Batch: n, Size: len(batch)}

	req := llm.ClassifyRequest{Articles: make([]llm.ArticleInput, 0, len(batch)), Sectors: catalog}
	backfilled := make(map[int64]string)
	for _, a := range batch {
		summary := a.Summary
		if summary == "" {
			if summary = e.extractSummary(ctx, a); summary != "" {
				backfilled[a.ID] = summary
			}
		}
		req.Articles = append(req.Articles, llm.ArticleInput{ID: a.ID, Title: a.Title, Summary: summary})
	}

	assignments, err := e.judge.ClassifyBatch(ctx, req)
	if err != nil {
		br.Err = err
		br.Duration = time.Since(st)
		return br
	}

	// a failed batch leaves its articles untouched, summaries are stored only now
	for id, summary := range backfilled {
		if err := e.articles.UpdateArticleSummary(ctx, id, summary); err != nil {
			log.Printf("[WARN] failed to store summary for article %d: %v", id, err)
		}
	}

	applied := make(map[int64]bool, len(assignments))
	for _, as := range assignments {
		if applied[as.ArticleID] {
			continue
		}
		if as.SectorID == nil || !known[*as.SectorID] || as.Confidence <= e.params.AcceptConfidence {
			continue
		}
		if err := e.articles.UpdateArticleSectorAndConfidence(ctx, as.ArticleID, *as.SectorID, as.Confidence); err != nil {
			log.Printf("[WARN] failed to apply assignment for article %d: %v", as.ArticleID, err)
			continue
		}
		applied[as.ArticleID] = true
		br.Classified++
	}
	br.Skipped = len(batch) - br.Classified
	br.Duration = time.Since(st)
	return br
}

// extractSummary extracts page text for an article without summary and returns a prefix of it
func (e *Escalator) extractSummary(ctx context.Context, a domain.Article) string {
	if e.extractor == nil || a.URL == "" {
		return ""
	}
	text, err := e.extractor.Extract(ctx, a.URL)
	if err != nil {
		log.Printf("[DEBUG] can't extract summary for article %d: %v", a.ID, err)
		return ""
	}
	if utf8.RuneCountInString(text) > backfillSummaryLen {
		text = string([]rune(text)[:backfillSummaryLen])
	}
	return text
}
