package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/morningdesk/morningdesk/pkg/domain"
)

// ArticleRepository handles article-related database operations
type ArticleRepository struct {
	db *sqlx.DB
}

// NewArticleRepository creates a new article repository
func NewArticleRepository(db *sqlx.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

type articleRow struct {
	ID          int64          `db:"id"`
	Title       string         `db:"title"`
	URL         string         `db:"url"`
	Summary     string         `db:"summary"`
	Thumbnail   string         `db:"thumbnail"`
	PublishedAt sql.NullTime   `db:"published_at"`
	SourceName  string         `db:"source_name"`
	Region      string         `db:"region"`
	SectorID    sql.NullInt64  `db:"sector_id"`
	SourceID    sql.NullInt64  `db:"source_id"`
	Confidence  float64        `db:"confidence"`
	CollectedAt time.Time      `db:"collected_at"`
	ClusterID   sql.NullString `db:"cluster_id"`
}

var articleColumns = []string{"id", "title", "url", "summary", "thumbnail", "published_at", "source_name",
	"region", "sector_id", "source_id", "confidence", "collected_at", "cluster_id"}

// UpsertArticleIfAbsent inserts the article unless one with the same URL exists.
// Returns the id of the stored article and whether this call created it.
// The insert is a single INSERT ... ON CONFLICT DO NOTHING, safe under concurrent duplicates.
func (r *ArticleRepository) UpsertArticleIfAbsent(ctx context.Context, article *domain.Article) (id int64, wasNew bool, err error) {
	if article.CollectedAt.IsZero() {
		article.CollectedAt = time.Now().UTC()
	}
	row := toArticleRow(article)

	err = withRetry(ctx, "upsert article", func() error {
		query := `
			INSERT INTO articles (title, url, summary, thumbnail, published_at, source_name, region,
				sector_id, source_id, confidence, collected_at, cluster_id)
			VALUES (:title, :url, :summary, :thumbnail, :published_at, :source_name, :region,
				:sector_id, :source_id, :confidence, :collected_at, :cluster_id)
			ON CONFLICT(url) DO NOTHING
		`
		res, execErr := r.db.NamedExecContext(ctx, query, row)
		if execErr != nil {
			return execErr
		}
		affected, execErr := res.RowsAffected()
		if execErr != nil {
			return execErr
		}
		if affected == 1 {
			id, execErr = res.LastInsertId()
			wasNew = true
			return execErr
		}
		wasNew = false
		return r.db.GetContext(ctx, &id, "SELECT id FROM articles WHERE url = ?", article.URL)
	})
	if err != nil {
		return 0, false, err
	}

	article.ID = id
	return id, wasNew, nil
}

// GetArticle retrieves an article by id
func (r *ArticleRepository) GetArticle(ctx context.Context, id int64) (*domain.Article, error) {
	query, args, err := psql.Select(articleColumns...).From("articles").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build article query: %w", err)
	}
	var row articleRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return nil, fmt.Errorf("get article %d: %w", id, err)
	}
	return row.toDomain(), nil
}

// FindArticles returns articles matching the filter, newest collected first
func (r *ArticleRepository) FindArticles(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error) {
	qb := psql.Select(articleColumns...).From("articles")

	if filter.SectorID > 0 {
		qb = qb.Where(sq.Eq{"sector_id": filter.SectorID})
	}
	if filter.Region != "" && filter.Region != domain.RegionAll {
		qb = qb.Where(sq.Eq{"region": string(filter.Region)})
	}
	if cond := searchCondition(filter.Query); cond != nil {
		qb = qb.Where(cond)
	}
	if !filter.Since.IsZero() {
		qb = qb.Where(sq.Gt{"collected_at": filter.Since.UTC()})
	}
	if !filter.Until.IsZero() {
		qb = qb.Where(sq.Lt{"collected_at": filter.Until.UTC()})
	}
	if filter.MaxConfidence > 0 {
		qb = qb.Where(sq.Lt{"confidence": filter.MaxConfidence})
	}
	if filter.Unclustered {
		qb = qb.Where(sq.Eq{"cluster_id": nil})
	}

	qb = qb.OrderBy("collected_at DESC", "id DESC")
	if filter.Limit > 0 {
		qb = qb.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		qb = qb.Offset(uint64(filter.Offset))
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build articles query: %w", err)
	}

	var rows []articleRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("find articles: %w", err)
	}

	articles := make([]domain.Article, 0, len(rows))
	for i := range rows {
		articles = append(articles, *rows[i].toDomain())
	}
	return articles, nil
}

// searchCondition matches articles containing every term of q in the title or summary.
// The trigram index answers terms of three runes or more, shorter terms fall back to LIKE
// over the same index table.
func searchCondition(q string) sq.Sqlizer {
	terms := strings.Fields(q)
	if len(terms) == 0 {
		return nil
	}

	var phrases []string
	cond := sq.And{}
	for _, term := range terms {
		if utf8.RuneCountInString(term) >= 3 {
			phrases = append(phrases, `"`+strings.ReplaceAll(term, `"`, `""`)+`"`)
			continue
		}
		pattern := "%" + likeEscaper.Replace(term) + "%"
		cond = append(cond, sq.Expr(`id IN (SELECT rowid FROM articles_fts WHERE title LIKE ? ESCAPE '\' OR summary LIKE ? ESCAPE '\')`,
			pattern, pattern))
	}
	if len(phrases) > 0 {
		cond = append(cond, sq.Expr("id IN (SELECT rowid FROM articles_fts WHERE articles_fts MATCH ?)", strings.Join(phrases, " ")))
	}
	return cond
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// UpdateArticleSectorAndConfidence assigns a sector and confidence to an article
func (r *ArticleRepository) UpdateArticleSectorAndConfidence(ctx context.Context, id, sectorID int64, confidence float64) error {
	return withRetry(ctx, "update article sector", func() error {
		_, err := r.db.ExecContext(ctx, "UPDATE articles SET sector_id = ?, confidence = ? WHERE id = ?",
			sectorID, confidence, id)
		return err
	})
}

// UpdateArticleSummary stores a summary for an article without one
func (r *ArticleRepository) UpdateArticleSummary(ctx context.Context, id int64, summary string) error {
	return withRetry(ctx, "update article summary", func() error {
		_, err := r.db.ExecContext(ctx, "UPDATE articles SET summary = ? WHERE id = ? AND summary = ''", summary, id)
		return err
	})
}

// StampClusterID sets the cluster id on all given articles in one statement.
// Already clustered articles keep their id.
func (r *ArticleRepository) StampClusterID(ctx context.Context, ids []int64, clusterID string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query, args, err := psql.Update("articles").
		Set("cluster_id", clusterID).
		Where(sq.Eq{"id": ids}).
		Where(sq.Eq{"cluster_id": nil}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build stamp query: %w", err)
	}

	var updated int64
	err = withRetry(ctx, "stamp cluster id", func() error {
		res, execErr := r.db.ExecContext(ctx, query, args...)
		if execErr != nil {
			return execErr
		}
		updated, execErr = res.RowsAffected()
		return execErr
	})
	return updated, err
}

// DeleteArticlesBefore removes articles collected before the cutoff, returns the number deleted
func (r *ArticleRepository) DeleteArticlesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := psql.Delete("articles").Where(sq.Lt{"collected_at": cutoff.UTC()}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete query: %w", err)
	}

	var deleted int64
	err = withRetry(ctx, "delete old articles", func() error {
		res, execErr := r.db.ExecContext(ctx, query, args...)
		if execErr != nil {
			return execErr
		}
		deleted, execErr = res.RowsAffected()
		return execErr
	})
	return deleted, err
}

// CountArticles returns the total number of stored articles
func (r *ArticleRepository) CountArticles(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM articles"); err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return count, nil
}

func toArticleRow(a *domain.Article) articleRow {
	row := articleRow{
		ID:          a.ID,
		Title:       a.Title,
		URL:         a.URL,
		Summary:     a.Summary,
		Thumbnail:   a.Thumbnail,
		SourceName:  a.SourceName,
		Region:      string(a.Region),
		Confidence:  a.Confidence,
		CollectedAt: a.CollectedAt.UTC(),
	}
	if a.PublishedAt != nil {
		row.PublishedAt = sql.NullTime{Time: a.PublishedAt.UTC(), Valid: true}
	}
	if a.SectorID != nil {
		row.SectorID = sql.NullInt64{Int64: *a.SectorID, Valid: true}
	}
	if a.SourceID != nil {
		row.SourceID = sql.NullInt64{Int64: *a.SourceID, Valid: true}
	}
	if a.ClusterID != "" {
		row.ClusterID = sql.NullString{String: a.ClusterID, Valid: true}
	}
	return row
}

func (r *articleRow) toDomain() *domain.Article {
	a := &domain.Article{
		ID:          r.ID,
		Title:       r.Title,
		URL:         r.URL,
		Summary:     r.Summary,
		Thumbnail:   r.Thumbnail,
		SourceName:  r.SourceName,
		Region:      domain.Region(r.Region),
		Confidence:  r.Confidence,
		CollectedAt: r.CollectedAt,
		ClusterID:   r.ClusterID.String,
	}
	if r.PublishedAt.Valid {
		t := r.PublishedAt.Time
		a.PublishedAt = &t
	}
	if r.SectorID.Valid {
		id := r.SectorID.Int64
		a.SectorID = &id
	}
	if r.SourceID.Valid {
		id := r.SourceID.Int64
		a.SourceID = &id
	}
	return a
}
