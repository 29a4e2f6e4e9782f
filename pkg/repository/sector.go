package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/morningdesk/morningdesk/pkg/domain"
)

// SectorRepository handles sector and source database operations
type SectorRepository struct {
	db *sqlx.DB
}

// NewSectorRepository creates a new sector repository
func NewSectorRepository(db *sqlx.DB) *SectorRepository {
	return &SectorRepository{db: db}
}

type sectorRow struct {
	ID              int64     `db:"id"`
	Label           string    `db:"label"`
	Summary         string    `db:"summary"`
	Keywords        string    `db:"keywords"`
	SearchQueriesKR string    `db:"search_queries_kr"`
	SearchQueriesUS string    `db:"search_queries_us"`
	Active          bool      `db:"active"`
	SortOrder       int       `db:"sort_order"`
	CreatedAt       time.Time `db:"created_at"`
}

type sourceRow struct {
	ID       int64  `db:"id"`
	SectorID int64  `db:"sector_id"`
	Name     string `db:"name"`
	FeedURL  string `db:"feed_url"`
	APIType  string `db:"api_type"`
	Region   string `db:"region"`
	Priority int    `db:"priority"`
	Active   bool   `db:"active"`
}

// FindSectors returns sectors ordered by sort order then id, each with its sources.
// With activeOnly set both inactive sectors and inactive sources are left out.
func (r *SectorRepository) FindSectors(ctx context.Context, activeOnly bool) ([]domain.Sector, error) {
	qb := psql.Select("id", "label", "summary", "keywords", "search_queries_kr", "search_queries_us",
		"active", "sort_order", "created_at").From("sectors").OrderBy("sort_order", "id")
	if activeOnly {
		qb = qb.Where(sq.Eq{"active": true})
	}
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sectors query: %w", err)
	}

	var rows []sectorRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("find sectors: %w", err)
	}
	if len(rows) == 0 {
		return []domain.Sector{}, nil
	}

	ids := make([]int64, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	sqb := psql.Select("id", "sector_id", "name", "feed_url", "api_type", "region", "priority", "active").
		From("sources").Where(sq.Eq{"sector_id": ids}).OrderBy("priority", "id")
	if activeOnly {
		sqb = sqb.Where(sq.Eq{"active": true})
	}
	query, args, err = sqb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sources query: %w", err)
	}
	var srcRows []sourceRow
	if err := r.db.SelectContext(ctx, &srcRows, query, args...); err != nil {
		return nil, fmt.Errorf("find sources: %w", err)
	}
	bySector := make(map[int64][]domain.Source, len(rows))
	for _, s := range srcRows {
		bySector[s.SectorID] = append(bySector[s.SectorID], s.toDomain())
	}

	sectors := make([]domain.Sector, 0, len(rows))
	for _, row := range rows {
		sector, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		sector.Sources = bySector[row.ID]
		sectors = append(sectors, sector)
	}
	return sectors, nil
}

// GetSectorByLabel retrieves one sector by its label, sources not included
func (r *SectorRepository) GetSectorByLabel(ctx context.Context, label string) (*domain.Sector, error) {
	var row sectorRow
	err := r.db.GetContext(ctx, &row, "SELECT * FROM sectors WHERE label = ?", label)
	if err != nil {
		return nil, fmt.Errorf("get sector %q: %w", label, err)
	}
	sector, err := row.toDomain()
	if err != nil {
		return nil, err
	}
	return &sector, nil
}

// CreateSector inserts a new sector and sets its id
func (r *SectorRepository) CreateSector(ctx context.Context, sector *domain.Sector) error {
	row, err := toSectorRow(sector)
	if err != nil {
		return err
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	query := `
		INSERT INTO sectors (label, summary, keywords, search_queries_kr, search_queries_us, active, sort_order, created_at)
		VALUES (:label, :summary, :keywords, :search_queries_kr, :search_queries_us, :active, :sort_order, :created_at)
	`
	return withRetry(ctx, "create sector", func() error {
		res, execErr := r.db.NamedExecContext(ctx, query, row)
		if execErr != nil {
			return execErr
		}
		sector.ID, execErr = res.LastInsertId()
		sector.CreatedAt = row.CreatedAt
		return execErr
	})
}

// CreateSource inserts a new source and sets its id
func (r *SectorRepository) CreateSource(ctx context.Context, src *domain.Source) error {
	row := toSourceRow(src)
	query := `
		INSERT INTO sources (sector_id, name, feed_url, api_type, region, priority, active)
		VALUES (:sector_id, :name, :feed_url, :api_type, :region, :priority, :active)
	`
	return withRetry(ctx, "create source", func() error {
		res, execErr := r.db.NamedExecContext(ctx, query, row)
		if execErr != nil {
			return execErr
		}
		src.ID, execErr = res.LastInsertId()
		return execErr
	})
}

// SyncSectors makes the stored sectors and sources match the given seed list.
// Sectors are matched by label and sources by (sector, name). Existing rows are updated,
// missing rows are created, stored rows absent from the seed are left untouched.
func (r *SectorRepository) SyncSectors(ctx context.Context, seed []domain.Sector) error {
	return withRetry(ctx, "sync sectors", func() error {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

		for i := range seed {
			row, err := toSectorRow(&seed[i])
			if err != nil {
				return err
			}
			row.CreatedAt = time.Now().UTC()
			_, err = tx.NamedExecContext(ctx, `
				INSERT INTO sectors (label, summary, keywords, search_queries_kr, search_queries_us, active, sort_order, created_at)
				VALUES (:label, :summary, :keywords, :search_queries_kr, :search_queries_us, :active, :sort_order, :created_at)
				ON CONFLICT(label) DO UPDATE SET
					summary = excluded.summary,
					keywords = excluded.keywords,
					search_queries_kr = excluded.search_queries_kr,
					search_queries_us = excluded.search_queries_us,
					active = excluded.active,
					sort_order = excluded.sort_order
			`, row)
			if err != nil {
				return err
			}

			var sectorID int64
			if err := tx.GetContext(ctx, &sectorID, "SELECT id FROM sectors WHERE label = ?", row.Label); err != nil {
				return err
			}

			for j := range seed[i].Sources {
				src := toSourceRow(&seed[i].Sources[j])
				src.SectorID = sectorID
				_, err := tx.NamedExecContext(ctx, `
					INSERT INTO sources (sector_id, name, feed_url, api_type, region, priority, active)
					VALUES (:sector_id, :name, :feed_url, :api_type, :region, :priority, :active)
					ON CONFLICT(sector_id, name) DO UPDATE SET
						feed_url = excluded.feed_url,
						api_type = excluded.api_type,
						region = excluded.region,
						priority = excluded.priority,
						active = excluded.active
				`, src)
				if err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	})
}

// SetSectorActive toggles a sector, deactivating a sector also deactivates its sources
func (r *SectorRepository) SetSectorActive(ctx context.Context, id int64, active bool) error {
	return withRetry(ctx, "set sector active", func() error {
		_, err := r.db.ExecContext(ctx, "UPDATE sectors SET active = ? WHERE id = ?", active, id)
		return err
	})
}

func toSectorRow(s *domain.Sector) (sectorRow, error) {
	keywords, err := marshalStrings(s.Keywords)
	if err != nil {
		return sectorRow{}, fmt.Errorf("marshal keywords: %w", err)
	}
	queriesKR, err := marshalStrings(s.SearchQueriesKR)
	if err != nil {
		return sectorRow{}, fmt.Errorf("marshal kr queries: %w", err)
	}
	queriesUS, err := marshalStrings(s.SearchQueriesUS)
	if err != nil {
		return sectorRow{}, fmt.Errorf("marshal us queries: %w", err)
	}
	return sectorRow{
		ID:              s.ID,
		Label:           s.Label,
		Summary:         s.Summary,
		Keywords:        keywords,
		SearchQueriesKR: queriesKR,
		SearchQueriesUS: queriesUS,
		Active:          s.Active,
		SortOrder:       s.SortOrder,
		CreatedAt:       s.CreatedAt.UTC(),
	}, nil
}

func (r *sectorRow) toDomain() (domain.Sector, error) {
	sector := domain.Sector{
		ID:        r.ID,
		Label:     r.Label,
		Summary:   r.Summary,
		Active:    r.Active,
		SortOrder: r.SortOrder,
		CreatedAt: r.CreatedAt,
	}
	var err error
	if sector.Keywords, err = unmarshalStrings(r.Keywords); err != nil {
		return domain.Sector{}, fmt.Errorf("sector %d keywords: %w", r.ID, err)
	}
	if sector.SearchQueriesKR, err = unmarshalStrings(r.SearchQueriesKR); err != nil {
		return domain.Sector{}, fmt.Errorf("sector %d kr queries: %w", r.ID, err)
	}
	if sector.SearchQueriesUS, err = unmarshalStrings(r.SearchQueriesUS); err != nil {
		return domain.Sector{}, fmt.Errorf("sector %d us queries: %w", r.ID, err)
	}
	return sector, nil
}

func toSourceRow(s *domain.Source) sourceRow {
	apiType := s.APIType
	if apiType == "" {
		apiType = domain.APITypeRSS
	}
	region := s.Region
	if region == "" {
		region = domain.RegionKR
	}
	return sourceRow{
		ID:       s.ID,
		SectorID: s.SectorID,
		Name:     s.Name,
		FeedURL:  s.FeedURL,
		APIType:  string(apiType),
		Region:   string(region),
		Priority: s.Priority,
		Active:   s.Active,
	}
}

func (r *sourceRow) toDomain() domain.Source {
	return domain.Source{
		ID:       r.ID,
		SectorID: r.SectorID,
		Name:     r.Name,
		FeedURL:  r.FeedURL,
		APIType:  domain.APIType(r.APIType),
		Region:   domain.Region(r.Region),
		Priority: r.Priority,
		Active:   r.Active,
	}
}

func marshalStrings(v []string) (string, error) {
	if v == nil {
		v = []string{}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func unmarshalStrings(s string) ([]string, error) {
	if s == "" {
		return []string{}, nil
	}
	var res []string
	if err := json.Unmarshal([]byte(s), &res); err != nil {
		return nil, err
	}
	return res, nil
}
