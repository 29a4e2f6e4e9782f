package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/morningdesk/morningdesk/pkg/domain"
)

// BriefingRepository handles briefing persistence
type BriefingRepository struct {
	db *sqlx.DB
}

// NewBriefingRepository creates a new briefing repository
func NewBriefingRepository(db *sqlx.DB) *BriefingRepository {
	return &BriefingRepository{db: db}
}

type briefingRow struct {
	ID           int64     `db:"id"`
	SectorID     int64     `db:"sector_id"`
	Slot         string    `db:"slot"`
	Headline     string    `db:"headline"`
	Summary      string    `db:"summary"`
	Trend        string    `db:"trend"`
	TrendNote    string    `db:"trend_note"`
	MarketImpact string    `db:"market_impact"`
	ReportingTip string    `db:"reporting_tip"`
	KeyFigures   string    `db:"key_figures"`
	Sentiment    float64   `db:"sentiment"`
	ArticleCount int       `db:"article_count"`
	GeneratedAt  time.Time `db:"generated_at"`
}

// CreateBriefing stores a briefing and sets its id
func (r *BriefingRepository) CreateBriefing(ctx context.Context, b *domain.Briefing) error {
	if b.GeneratedAt.IsZero() {
		b.GeneratedAt = time.Now().UTC()
	}
	figures, err := marshalStrings(b.KeyFigures)
	if err != nil {
		return fmt.Errorf("marshal key figures: %w", err)
	}
	row := briefingRow{
		SectorID:     b.SectorID,
		Slot:         string(b.Slot),
		Headline:     b.Headline,
		Summary:      b.Summary,
		Trend:        string(b.Trend),
		TrendNote:    b.TrendNote,
		MarketImpact: b.MarketImpact,
		ReportingTip: b.ReportingTip,
		KeyFigures:   figures,
		Sentiment:    b.Sentiment,
		ArticleCount: b.ArticleCount,
		GeneratedAt:  b.GeneratedAt.UTC(),
	}
	query := `
		INSERT INTO briefings (sector_id, slot, headline, summary, trend, trend_note, market_impact,
			reporting_tip, key_figures, sentiment, article_count, generated_at)
		VALUES (:sector_id, :slot, :headline, :summary, :trend, :trend_note, :market_impact,
			:reporting_tip, :key_figures, :sentiment, :article_count, :generated_at)
	`
	return withRetry(ctx, "create briefing", func() error {
		res, execErr := r.db.NamedExecContext(ctx, query, row)
		if execErr != nil {
			return execErr
		}
		b.ID, execErr = res.LastInsertId()
		return execErr
	})
}

// LatestBriefing returns the most recent briefing of a sector, nil if there is none
func (r *BriefingRepository) LatestBriefing(ctx context.Context, sectorID int64) (*domain.Briefing, error) {
	var row briefingRow
	err := r.db.GetContext(ctx, &row,
		"SELECT * FROM briefings WHERE sector_id = ? ORDER BY generated_at DESC, id DESC LIMIT 1", sectorID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest briefing for sector %d: %w", sectorID, err)
	}
	return row.toDomain()
}

// FindBriefings returns the newest briefings, optionally limited to one sector
func (r *BriefingRepository) FindBriefings(ctx context.Context, sectorID int64, limit int) ([]domain.Briefing, error) {
	qb := psql.Select("*").From("briefings").OrderBy("generated_at DESC", "id DESC")
	if sectorID > 0 {
		qb = qb.Where(sq.Eq{"sector_id": sectorID})
	}
	if limit > 0 {
		qb = qb.Limit(uint64(limit))
	}
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build briefings query: %w", err)
	}
	var rows []briefingRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("find briefings: %w", err)
	}
	res := make([]domain.Briefing, 0, len(rows))
	for i := range rows {
		b, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		res = append(res, *b)
	}
	return res, nil
}

// DeleteBriefingsBefore removes briefings generated before the cutoff
func (r *BriefingRepository) DeleteBriefingsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	err := withRetry(ctx, "delete old briefings", func() error {
		res, execErr := r.db.ExecContext(ctx, "DELETE FROM briefings WHERE generated_at < ?", cutoff.UTC())
		if execErr != nil {
			return execErr
		}
		deleted, execErr = res.RowsAffected()
		return execErr
	})
	return deleted, err
}

func (r *briefingRow) toDomain() (*domain.Briefing, error) {
	figures, err := unmarshalStrings(r.KeyFigures)
	if err != nil {
		return nil, fmt.Errorf("briefing %d key figures: %w", r.ID, err)
	}
	return &domain.Briefing{
		ID:           r.ID,
		SectorID:     r.SectorID,
		Slot:         domain.BriefingSlot(r.Slot),
		Headline:     r.Headline,
		Summary:      r.Summary,
		Trend:        domain.BriefingTrend(r.Trend),
		TrendNote:    r.TrendNote,
		MarketImpact: r.MarketImpact,
		ReportingTip: r.ReportingTip,
		KeyFigures:   figures,
		Sentiment:    r.Sentiment,
		ArticleCount: r.ArticleCount,
		GeneratedAt:  r.GeneratedAt,
	}, nil
}
