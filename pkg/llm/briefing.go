package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/morningdesk/morningdesk/pkg/domain"
)

// headlineMaxLen is the maximum headline length in runes
const headlineMaxLen = 50

// BriefingArticle is one recent article fed into a briefing
type BriefingArticle struct {
	Title      string
	Summary    string
	SourceName string
}

// BriefingRequest carries a sector and its recent coverage
type BriefingRequest struct {
	SectorLabel   string
	SectorSummary string
	Slot          domain.BriefingSlot
	Articles      []BriefingArticle
}

// BriefingOutput is the narrative object returned by the judge
type BriefingOutput struct {
	Headline     string               `json:"headline"`
	Summary      string               `json:"summary"`
	Trend        domain.BriefingTrend `json:"-"`
	RawTrend     string               `json:"trend"`
	TrendNote    string               `json:"trendNote"`
	MarketImpact string               `json:"marketImpact"`
	ReportingTip string               `json:"reportingTip"`
	KeyFigures   []string             `json:"keyFigures"`
	Sentiment    float64              `json:"sentiment"`
}

const briefingSystemPrompt = `You are a senior economics editor writing a short desk briefing for reporters.
Write in Korean. Respond only with a JSON object with the fields:
headline (max 50 characters), summary (3-4 sentences), trend (escalating, stable or cooling),
trendNote, marketImpact, reportingTip, keyFigures (array of short strings), sentiment (-1..1).`

// GenerateBriefing asks the judge for a narrative briefing of the given articles.
// Unparsable responses are retried up to 3 times like classification.
func (j *Judge) GenerateBriefing(ctx context.Context, req BriefingRequest) (*BriefingOutput, error) {
	if len(req.Articles) == 0 {
		return nil, fmt.Errorf("no articles for briefing")
	}

	prompt := buildBriefingPrompt(req)
	maxTokens := j.config.Briefing.MaxTokens
	if maxTokens == 0 {
		maxTokens = j.config.MaxTokens
	}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		content, err := j.complete(ctx, briefingSystemPrompt, prompt, maxTokens)
		if err != nil {
			return nil, err
		}
		out, err := parseBriefing(content)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if errors.Is(err, errNoJSON) || errors.Is(err, errBadJSON) {
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("failed after 3 attempts: %w", lastErr)
}

func buildBriefingPrompt(req BriefingRequest) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Sector: %s\n", req.SectorLabel)
	if req.SectorSummary != "" {
		fmt.Fprintf(&sb, "Sector description: %s\n", req.SectorSummary)
	}
	if req.Slot != "" {
		fmt.Fprintf(&sb, "Briefing slot: %s\n", req.Slot)
	}
	sb.WriteString("\nRecent articles:\n")
	for i, a := range req.Articles {
		fmt.Fprintf(&sb, "%d. %s", i+1, a.Title)
		if a.SourceName != "" {
			fmt.Fprintf(&sb, " [%s]", a.SourceName)
		}
		sb.WriteString("\n")
		if a.Summary != "" {
			fmt.Fprintf(&sb, "   %s\n", truncateRunes(a.Summary, 200))
		}
	}
	return sb.String()
}

func parseBriefing(content string) (*BriefingOutput, error) {
	jsonStr, err := extractJSONObject(content)
	if err != nil {
		return nil, err
	}
	var out BriefingOutput
	if err := json.Unmarshal([]byte(jsonStr), &out); err != nil {
		return nil, fmt.Errorf("%w: %w", errBadJSON, err)
	}
	if strings.TrimSpace(out.Headline) == "" {
		return nil, fmt.Errorf("%w: empty headline", errBadJSON)
	}

	out.Headline = truncateRunes(strings.TrimSpace(out.Headline), headlineMaxLen)
	out.Trend = ParseTrend(out.RawTrend)
	out.Sentiment = max(-1, min(out.Sentiment, 1))
	if out.KeyFigures == nil {
		out.KeyFigures = []string{}
	}
	return &out, nil
}

// ParseTrend maps a free-form trend word to a BriefingTrend, unknown values are stable
func ParseTrend(s string) domain.BriefingTrend {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(domain.TrendEscalating):
		return domain.TrendEscalating
	case string(domain.TrendCooling):
		return domain.TrendCooling
	default:
		return domain.TrendStable
	}
}
