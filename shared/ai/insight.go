package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"analyst-stack/internal/models"
	"analyst-stack/shared/config"

	"google.golang.org/genai"
)

// InsightGenerator produces an optional natural-language commentary over a
// finished analysis report. All numbers in the report come from the analytics
// engine; the model only narrates them.
type InsightGenerator struct {
	client *genai.Client
	model  string
}

func NewInsightGenerator(cfg *config.Config) (*InsightGenerator, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.AI.GeminiAPIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &InsightGenerator{
		client: client,
		model:  cfg.AI.Model,
	}, nil
}

// GenerateInsight asks the model for a short analysis and action plan based
// on the report. The report itself is serialized into the prompt.
func (g *InsightGenerator) GenerateInsight(ctx context.Context, report *models.AnalysisReport) (*models.ChannelInsight, error) {
	if report == nil {
		return nil, fmt.Errorf("report cannot be nil")
	}

	prompt, err := g.buildInsightPrompt(report)
	if err != nil {
		return nil, fmt.Errorf("failed to build insight prompt: %w", err)
	}

	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate channel insight: %w", err)
	}

	responseText := result.Text()
	if responseText == "" {
		return nil, fmt.Errorf("no insight response received")
	}

	insight, err := parseInsightResponse(responseText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse insight response: %w", err)
	}

	if result.UsageMetadata != nil {
		insight.Tokens = int(result.UsageMetadata.TotalTokenCount)
	}

	return insight, nil
}

func (g *InsightGenerator) buildInsightPrompt(report *models.AnalysisReport) (string, error) {
	reportJSON, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`You are an analyst reviewing the performance report of a YouTube Shorts channel that publishes kanji quiz videos.

The report below was computed from the channel's tracking sheet. Do not recompute or second-guess any number; interpret them.

REPORT:
%s

Please provide your commentary in the following JSON format:
{
  "analysis": "3-5 sentences interpreting the channel's current performance, naming the strongest and weakest signals in the report",
  "plan": "3-5 concrete next actions for the coming week, ordered by expected impact"
}`, string(reportJSON)), nil
}

func parseInsightResponse(response string) (*models.ChannelInsight, error) {
	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")

	if startIdx == -1 || endIdx < startIdx {
		return nil, fmt.Errorf("no JSON found in response: %s", response)
	}

	jsonStr := response[startIdx : endIdx+1]

	var result struct {
		Analysis string `json:"analysis"`
		Plan     string `json:"plan"`
	}
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON '%s': %w", jsonStr, err)
	}

	if result.Analysis == "" {
		return nil, fmt.Errorf("insight analysis is required but was empty")
	}

	return &models.ChannelInsight{
		Analysis: result.Analysis,
		Plan:     result.Plan,
	}, nil
}
