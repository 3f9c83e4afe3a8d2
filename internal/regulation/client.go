package regulation

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/mithunb9/RealRisk/internal/risk"
)

// Client scores regulatory and zoning difficulty 1-10 for a locality. It
// chains three completions around one web search: generate a search query,
// summarize the relevant documents, then score the difficulty.
type Client struct {
	ai     *openai.Client
	search Searcher
	model  string
	logger *zap.Logger
}

// NewClient creates a regulatory scorer.
func NewClient(apiKey, model string, search Searcher, logger *zap.Logger) *Client {
	if model == "" {
		model = openai.GPT4oMini
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		ai:     openai.NewClient(apiKey),
		search: search,
		model:  model,
		logger: logger.Named("regulation-client"),
	}
}

type queryResponse struct {
	Query string `json:"query"`
}

type scoreResponse struct {
	Score int `json:"score"`
}

// ScoreRegulatoryDifficulty implements risk.RegulatoryScorer.
func (c *Client) ScoreRegulatoryDifficulty(ctx context.Context, city, county string) (risk.RegulatoryAssessment, error) {
	var q queryResponse
	prompt := fmt.Sprintf(
		"Given the following city and county: %s, %s. Provide one web search query that will surface the regulatory documents, zoning ordinances, and other information a builder needs. Respond as JSON: {\"query\": \"...\"}.",
		city, county)
	if err := c.completeJSON(ctx, prompt, &q); err != nil {
		return risk.RegulatoryAssessment{}, fmt.Errorf("generate query: %w", err)
	}

	results, err := c.search.Search(ctx, q.Query)
	if err != nil {
		return risk.RegulatoryAssessment{}, fmt.Errorf("search: %w", err)
	}

	narrative, err := c.complete(ctx, fmt.Sprintf(
		"Given the following search results, list the regulatory documents, zoning ordinances, and other information most relevant to building in %s, %s: %s",
		city, county, results))
	if err != nil {
		return risk.RegulatoryAssessment{}, fmt.Errorf("summarize documents: %w", err)
	}

	var s scoreResponse
	if err := c.completeJSON(ctx, fmt.Sprintf(
		"Given the following summary and search results, score the locality 1 to 10 for how difficult its regulatory documents and zoning ordinances are to navigate as a builder. Respond as JSON: {\"score\": n}. Summary: %s Search results: %s",
		narrative, results), &s); err != nil {
		return risk.RegulatoryAssessment{}, fmt.Errorf("score difficulty: %w", err)
	}

	if s.Score < 1 {
		s.Score = 1
	}
	if s.Score > 10 {
		s.Score = 10
	}

	c.logger.Debug("regulatory assessment complete",
		zap.String("city", city),
		zap.Int("score", s.Score))

	return risk.RegulatoryAssessment{
		Score:     s.Score,
		Narrative: narrative,
	}, nil
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.ai.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *Client) completeJSON(ctx context.Context, prompt string, dest any) error {
	resp, err := c.ai.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return fmt.Errorf("chat completion returned no choices")
	}
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), dest); err != nil {
		return fmt.Errorf("decode structured response: %w", err)
	}
	return nil
}
