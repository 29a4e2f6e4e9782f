// Package briefing writes per-sector narrative briefings from recent coverage.
package briefing

import (
	"context"
	"fmt"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/morningdesk/morningdesk/pkg/domain"
	"github.com/morningdesk/morningdesk/pkg/events"
	"github.com/morningdesk/morningdesk/pkg/llm"
)

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store
//go:generate moq -out mocks/writer.go -pkg mocks -skip-ensure -fmt goimports . Writer

// Store gives access to sectors, articles and briefings
type Store interface {
	FindSectors(ctx context.Context, activeOnly bool) ([]domain.Sector, error)
	FindArticles(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error)
	LatestBriefing(ctx context.Context, sectorID int64) (*domain.Briefing, error)
	CreateBriefing(ctx context.Context, b *domain.Briefing) error
}

// Writer produces the narrative for a set of articles
type Writer interface {
	GenerateBriefing(ctx context.Context, req llm.BriefingRequest) (*llm.BriefingOutput, error)
}

// Publisher receives new_briefing events
type Publisher interface {
	Emit(ev domain.Event)
}

// Params configure the generator
type Params struct {
	MaxArticles int
	Lookback    time.Duration // used when a sector has no earlier briefing
}

// Generator makes briefings for every active sector
type Generator struct {
	store     Store
	writer    Writer
	publisher Publisher
	params    Params
	now       func() time.Time
}

// NewGenerator makes a briefing generator, publisher is optional
func NewGenerator(store Store, writer Writer, publisher Publisher, params Params) *Generator {
	if params.MaxArticles <= 0 {
		params.MaxArticles = 30
	}
	if params.Lookback <= 0 {
		params.Lookback = 12 * time.Hour
	}
	return &Generator{store: store, writer: writer, publisher: publisher, params: params, now: time.Now}
}

// Generate writes one briefing per active sector with new articles. Sectors without new
// articles are skipped, a failed sector is counted and the rest continue.
func (g *Generator) Generate(ctx context.Context, slot domain.BriefingSlot) (domain.BriefingResult, error) {
	res := domain.BriefingResult{}
	sectors, err := g.store.FindSectors(ctx, true)
	if err != nil {
		return res, fmt.Errorf("find sectors: %w", err)
	}

	for _, s := range sectors {
		b, err := g.generateSector(ctx, s, slot)
		switch {
		case err != nil:
			log.Printf("[WARN] briefing for %s failed: %v", s.Label, err)
			res.Failed++
		case b == nil:
			log.Printf("[DEBUG] briefing for %s skipped, no new articles", s.Label)
			res.Skipped++
		default:
			log.Printf("[INFO] briefing for %s: %q (%d articles)", s.Label, b.Headline, b.ArticleCount)
			res.Generated++
		}
	}

	log.Printf("[INFO] %s briefings: %d generated, %d skipped, %d failed", slot, res.Generated, res.Skipped, res.Failed)
	return res, nil
}

// generateSector returns nil briefing when the sector has nothing new
func (g *Generator) generateSector(ctx context.Context, s domain.Sector, slot domain.BriefingSlot) (*domain.Briefing, error) {
	since := g.now().Add(-g.params.Lookback)
	last, err := g.store.LatestBriefing(ctx, s.ID)
	if err != nil {
		return nil, fmt.Errorf("latest briefing: %w", err)
	}
	if last != nil {
		since = last.GeneratedAt
	}

	articles, err := g.store.FindArticles(ctx, domain.ArticleFilter{SectorID: s.ID, Since: since, Limit: g.params.MaxArticles})
	if err != nil {
		return nil, fmt.Errorf("find articles: %w", err)
	}
	if len(articles) == 0 {
		return nil, nil
	}

	req := llm.BriefingRequest{SectorLabel: s.Label, SectorSummary: s.Summary, Slot: slot,
		Articles: make([]llm.BriefingArticle, 0, len(articles))}
	for _, a := range articles {
		req.Articles = append(req.Articles, llm.BriefingArticle{Title: a.Title, Summary: a.Summary, SourceName: a.SourceName})
	}

	out, err := g.writer.GenerateBriefing(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	b := &domain.Briefing{
		SectorID:     s.ID,
		Slot:         slot,
		Headline:     out.Headline,
		Summary:      out.Summary,
		Trend:        out.Trend,
		TrendNote:    out.TrendNote,
		MarketImpact: out.MarketImpact,
		ReportingTip: out.ReportingTip,
		KeyFigures:   out.KeyFigures,
		Sentiment:    out.Sentiment,
		ArticleCount: len(articles),
		GeneratedAt:  g.now(),
	}
	if err := g.store.CreateBriefing(ctx, b); err != nil {
		return nil, fmt.Errorf("save briefing: %w", err)
	}

	if g.publisher != nil {
		g.publisher.Emit(events.BriefingEvent(*b, s.Label))
	}
	return b, nil
}
