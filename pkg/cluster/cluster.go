// Package cluster groups articles reporting the same event by title similarity.
package cluster

import (
	"context"
	"fmt"
	"slices"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/morningdesk/morningdesk/pkg/domain"
)

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store

// Store provides unclustered articles and persists cluster ids
type Store interface {
	FindArticles(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error)
	StampClusterID(ctx context.Context, ids []int64, clusterID string) (int64, error)
}

// Options define a clustering run, zero values take defaults
type Options struct {
	SectorID      int64 // 0 means all sectors
	Lookback      time.Duration
	Threshold     float64
	MaxCandidates int
}

// Engine clusters recent unclustered articles
type Engine struct {
	store    Store
	defaults Options
	now      func() time.Time
}

// NewEngine makes a clustering engine with default options applied to every run
func NewEngine(store Store, defaults Options) *Engine {
	if defaults.Lookback <= 0 {
		defaults.Lookback = 12 * time.Hour
	}
	if defaults.Threshold <= 0 {
		defaults.Threshold = 0.4
	}
	if defaults.MaxCandidates <= 0 {
		defaults.MaxCandidates = 200
	}
	return &Engine{store: store, defaults: defaults, now: time.Now}
}

// Run selects unclustered articles in the lookback window, newest first and capped, compares titles of
// articles in the same sector and stamps every connected group of two or more with a shared cluster id.
func (e *Engine) Run(ctx context.Context, opts Options) (domain.ClusterResult, error) {
	opts = e.withDefaults(opts)
	res := domain.ClusterResult{}

	articles, err := e.store.FindArticles(ctx, domain.ArticleFilter{
		SectorID:    opts.SectorID,
		Since:       e.now().Add(-opts.Lookback),
		Unclustered: true,
		Limit:       opts.MaxCandidates,
	})
	if err != nil {
		return res, fmt.Errorf("find cluster candidates: %w", err)
	}
	if len(articles) < 2 {
		return res, nil
	}

	groups := Group(articles, opts.Threshold)
	for _, ids := range groups {
		clusterID := ID(ids)
		n, err := e.store.StampClusterID(ctx, ids, clusterID)
		if err != nil {
			return res, fmt.Errorf("stamp cluster %s: %w", clusterID, err)
		}
		if n == 0 {
			continue
		}
		res.ClustersFormed++
		res.ArticlesUpdated += int(n)
	}

	log.Printf("[INFO] clustering done: %d candidates, %d clusters, %d articles updated",
		len(articles), res.ClustersFormed, res.ArticlesUpdated)
	return res, nil
}

func (e *Engine) withDefaults(opts Options) Options {
	if opts.Lookback <= 0 {
		opts.Lookback = e.defaults.Lookback
	}
	if opts.Threshold <= 0 {
		opts.Threshold = e.defaults.Threshold
	}
	if opts.MaxCandidates <= 0 {
		opts.MaxCandidates = e.defaults.MaxCandidates
	}
	if opts.SectorID == 0 {
		opts.SectorID = e.defaults.SectorID
	}
	return opts
}

// Group returns the article id groups of size two or more, merging any same-sector pair with
// title similarity at or above the threshold. Ids within a group are sorted, groups are ordered
// by their smallest id.
func Group(articles []domain.Article, threshold float64) [][]int64 {
	tokens := make([]map[string]struct{}, len(articles))
	for i, a := range articles {
		tokens[i] = Tokenize(a.Title)
	}

	uf := newUnionFind(len(articles))
	for i := 0; i < len(articles); i++ {
		for j := i + 1; j < len(articles); j++ {
			if !sameSector(articles[i], articles[j]) {
				continue
			}
			if Jaccard(tokens[i], tokens[j]) >= threshold {
				uf.union(i, j)
			}
		}
	}

	members := make(map[int][]int64)
	for i, a := range articles {
		root := uf.find(i)
		members[root] = append(members[root], a.ID)
	}

	groups := make([][]int64, 0, len(members))
	for _, ids := range members {
		if len(ids) < 2 {
			continue
		}
		slices.Sort(ids)
		groups = append(groups, ids)
	}
	slices.SortFunc(groups, func(a, b []int64) int {
		switch {
		case a[0] < b[0]:
			return -1
		case a[0] > b[0]:
			return 1
		}
		return 0
	})
	return groups
}

// ID derives a cluster id from the smallest article id of the group
func ID(ids []int64) string {
	return fmt.Sprintf("cl_%d", slices.Min(ids))
}

func sameSector(a, b domain.Article) bool {
	if a.SectorID == nil || b.SectorID == nil {
		return a.SectorID == nil && b.SectorID == nil
	}
	return *a.SectorID == *b.SectorID
}

// unionFind is a disjoint set over indices with iterative path compression
type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n), rank: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (u *unionFind) find(x int) int {
	root := x
	for u.parent[root] != root {
		root = u.parent[root]
	}
	for u.parent[x] != root {
		next := u.parent[x]
		u.parent[x] = root
		x = next
	}
	return root
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	switch {
	case u.rank[ra] < u.rank[rb]:
		u.parent[ra] = rb
	case u.rank[ra] > u.rank[rb]:
		u.parent[rb] = ra
	default:
		u.parent[rb] = ra
		u.rank[ra]++
	}
}
