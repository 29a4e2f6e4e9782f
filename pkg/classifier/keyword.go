// Package classifier assigns articles to sectors. Tier 1 is a keyword match done at ingestion,
// Tier 2 escalates low confidence articles to an LLM judge in batches.
package classifier

import (
	"strings"

	"github.com/morningdesk/morningdesk/pkg/domain"
)

// Match is the outcome of a keyword classification
type Match struct {
	SectorID    int64
	SectorLabel string
	Score       int
	Confidence  float64
}

// MatchSector scores the article against every sector by counting keywords found in title and summary.
// The strictly highest nonzero score wins, ties go to the sector met first. Returns false when nothing matched.
func MatchSector(article domain.RawArticle, sectors []domain.Sector) (Match, bool) {
	text := strings.ToLower(article.Title + " " + article.Summary)

	var best Match
	found := false
	maxKeywords := 0
	for _, s := range sectors {
		maxKeywords = max(maxKeywords, len(s.Keywords))

		score := 0
		for _, kw := range s.Keywords {
			if kw == "" {
				continue
			}
			if strings.Contains(text, strings.ToLower(kw)) {
				score++
			}
		}
		if score > 0 && (!found || score > best.Score) {
			best = Match{SectorID: s.ID, SectorLabel: s.Label, Score: score}
			found = true
		}
	}
	if !found {
		return Match{}, false
	}

	best.Confidence = Confidence(best.Score, maxKeywords)
	return best, true
}

// Confidence normalizes a keyword score by half of the largest keyword list, capped at 1
func Confidence(score, maxKeywords int) float64 {
	return min(float64(score)/max(float64(maxKeywords)/2, 1), 1)
}
