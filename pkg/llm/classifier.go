package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sashabaranov/go-openai"

	"github.com/morningdesk/morningdesk/pkg/config"
)

// summaryPrefixLen is how much of an article summary goes into a classification prompt
const summaryPrefixLen = 100

// errNoJSON and errBadJSON mark responses worth asking again for
var (
	errNoJSON  = errors.New("no json object found in response")
	errBadJSON = errors.New("failed to parse json")
)

// Judge asks an OpenAI-compatible model to classify articles and write briefings
type Judge struct {
	client *openai.Client
	config config.LLMConfig
}

// NewJudge creates a new judge
func NewJudge(cfg config.LLMConfig) *Judge {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}
	return &Judge{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
	}
}

// ArticleInput is one article of a classification batch
type ArticleInput struct {
	ID      int64
	Title   string
	Summary string
}

// SectorInput is one entry of the sector catalog
type SectorInput struct {
	ID       int64
	Label    string
	Keywords []string
}

// ClassifyRequest is a batch of articles and the catalog to classify them into
type ClassifyRequest struct {
	Articles []ArticleInput
	Sectors  []SectorInput
}

// Assignment is the judge's verdict for one article, SectorID nil means no sector fits
type Assignment struct {
	ArticleID  int64   `json:"articleId"`
	SectorID   *int64  `json:"sectorId"`
	Confidence float64 `json:"confidence"`
}

const classifySystemPrompt = `You are a news desk editor sorting Korean and international business news into editorial sectors.
For every article pick the single best matching sector from the catalog, or null when none fits.
Confidence is a number between 0 and 1 describing how sure you are.
Respond only with a JSON object of the form:
{"assignments":[{"articleId":<id>,"sectorId":<sector id or null>,"confidence":<0..1>}]}`

// ClassifyBatch classifies a batch of articles. A response that can't be parsed is retried
// up to 3 times, after that the whole batch fails. Assignments for unknown article ids are dropped.
func (j *Judge) ClassifyBatch(ctx context.Context, req ClassifyRequest) ([]Assignment, error) {
	if len(req.Articles) == 0 {
		return []Assignment{}, nil
	}

	prompt := buildClassifyPrompt(req)

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		content, err := j.complete(ctx, classifySystemPrompt, prompt, j.config.MaxTokens)
		if err != nil {
			return nil, err
		}

		assignments, err := parseAssignments(content, req.Articles)
		if err == nil {
			return assignments, nil
		}
		lastErr = err
		if errors.Is(err, errNoJSON) || errors.Is(err, errBadJSON) {
			continue
		}
		return nil, err
	}

	return nil, fmt.Errorf("failed after 3 attempts: %w", lastErr)
}

// complete sends one chat completion and returns the first choice
func (j *Judge) complete(ctx context.Context, system, prompt string, maxTokens int) (string, error) {
	if j.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.config.Timeout)
		defer cancel()
	}

	resp, err := j.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       j.config.Model,
		Temperature: float32(j.config.Temperature),
		MaxTokens:   maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("llm request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from llm")
	}
	return resp.Choices[0].Message.Content, nil
}

func buildClassifyPrompt(req ClassifyRequest) string {
	var sb strings.Builder

	sb.WriteString("Sector catalog:\n")
	for _, s := range req.Sectors {
		fmt.Fprintf(&sb, "- id %d: %s", s.ID, s.Label)
		if len(s.Keywords) > 0 {
			fmt.Fprintf(&sb, " (keywords: %s)", strings.Join(s.Keywords, ", "))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\nClassify these articles:\n\n")
	for _, a := range req.Articles {
		fmt.Fprintf(&sb, "articleId %d\n", a.ID)
		fmt.Fprintf(&sb, "   Title: %s\n", a.Title)
		if a.Summary != "" {
			fmt.Fprintf(&sb, "   Summary: %s\n", truncateRunes(a.Summary, summaryPrefixLen))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(`Respond with a JSON object containing an "assignments" array, one entry per article.`)
	return sb.String()
}

// extractJSONObject returns the content of a ```json fenced block, or the outermost {...} span
func extractJSONObject(content string) (string, error) {
	if start := strings.Index(content, "```json"); start != -1 {
		rest := content[start+len("```json"):]
		if end := strings.Index(rest, "```"); end != -1 {
			return strings.TrimSpace(rest[:end]), nil
		}
	}
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || start >= end {
		return "", errNoJSON
	}
	return content[start : end+1], nil
}

func parseAssignments(content string, articles []ArticleInput) ([]Assignment, error) {
	jsonStr, err := extractJSONObject(content)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Assignments []Assignment `json:"assignments"`
	}
	if err := json.Unmarshal([]byte(jsonStr), &resp); err != nil {
		return nil, fmt.Errorf("%w: %w", errBadJSON, err)
	}
	if resp.Assignments == nil {
		return nil, fmt.Errorf("%w: missing assignments array", errBadJSON)
	}

	known := make(map[int64]bool, len(articles))
	for _, a := range articles {
		known[a.ID] = true
	}

	valid := make([]Assignment, 0, len(resp.Assignments))
	for _, as := range resp.Assignments {
		if !known[as.ArticleID] {
			continue
		}
		// ensure confidence is in valid range
		as.Confidence = max(0, min(as.Confidence, 1))
		valid = append(valid, as)
	}
	return valid, nil
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
