package service

import (
	"context"
	"time"

	"github.com/morningdesk/morningdesk/pkg/domain"
	"github.com/morningdesk/morningdesk/pkg/repository"
)

// Store provides unified access to repositories for the pipeline and its passes
type Store struct {
	articleRepo  *repository.ArticleRepository
	sectorRepo   *repository.SectorRepository
	briefingRepo *repository.BriefingRepository
}

// NewStore creates a new store over the given repositories
func NewStore(repos *repository.Repositories) *Store {
	return &Store{
		articleRepo:  repos.Article,
		sectorRepo:   repos.Sector,
		briefingRepo: repos.Briefing,
	}
}

// Sector methods

func (s *Store) FindSectors(ctx context.Context, activeOnly bool) ([]domain.Sector, error) {
	return s.sectorRepo.FindSectors(ctx, activeOnly)
}

func (s *Store) GetSectorByLabel(ctx context.Context, label string) (*domain.Sector, error) {
	return s.sectorRepo.GetSectorByLabel(ctx, label)
}

func (s *Store) SyncSectors(ctx context.Context, seed []domain.Sector) error {
	return s.sectorRepo.SyncSectors(ctx, seed)
}

// Article methods

func (s *Store) UpsertArticleIfAbsent(ctx context.Context, article *domain.Article) (int64, bool, error) {
	return s.articleRepo.UpsertArticleIfAbsent(ctx, article)
}

func (s *Store) FindArticles(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error) {
	return s.articleRepo.FindArticles(ctx, filter)
}

func (s *Store) UpdateArticleSectorAndConfidence(ctx context.Context, id, sectorID int64, confidence float64) error {
	return s.articleRepo.UpdateArticleSectorAndConfidence(ctx, id, sectorID, confidence)
}

func (s *Store) UpdateArticleSummary(ctx context.Context, id int64, summary string) error {
	return s.articleRepo.UpdateArticleSummary(ctx, id, summary)
}

func (s *Store) StampClusterID(ctx context.Context, ids []int64, clusterID string) (int64, error) {
	return s.articleRepo.StampClusterID(ctx, ids, clusterID)
}

func (s *Store) CountArticles(ctx context.Context) (int64, error) {
	return s.articleRepo.CountArticles(ctx)
}

func (s *Store) DeleteArticlesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return s.articleRepo.DeleteArticlesBefore(ctx, cutoff)
}

// Briefing methods

func (s *Store) CreateBriefing(ctx context.Context, b *domain.Briefing) error {
	return s.briefingRepo.CreateBriefing(ctx, b)
}

func (s *Store) LatestBriefing(ctx context.Context, sectorID int64) (*domain.Briefing, error) {
	return s.briefingRepo.LatestBriefing(ctx, sectorID)
}

func (s *Store) FindBriefings(ctx context.Context, sectorID int64, limit int) ([]domain.Briefing, error) {
	return s.briefingRepo.FindBriefings(ctx, sectorID, limit)
}

func (s *Store) DeleteBriefingsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return s.briefingRepo.DeleteBriefingsBefore(ctx, cutoff)
}
