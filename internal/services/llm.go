package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"resumatch/resume-matcher/internal/config"
	"resumatch/resume-matcher/internal/errs"
	"resumatch/resume-matcher/internal/models"
)

type MatchClient interface {
	Match(ctx context.Context, req CompletionRequest) (*models.MatchResult, error)
}

type openAIMatchClient struct {
	client *openai.Client
	model  string
}

func NewMatchClient(cfg config.LLMConfig) MatchClient {
	opts := []option.RequestOption{
		option.WithBaseURL(cfg.BaseURL),
		option.WithAPIKey(cfg.APIKey),
	}
	if cfg.RequestTimeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.RequestTimeout))
	}

	return &openAIMatchClient{
		client: openai.NewClient(opts...),
		model:  cfg.Model,
	}
}

// Match sends the completion request and turns the raw reply into a validated
// MatchResult. No retries happen here; a failed call is surfaced to the
// caller as one of the typed error kinds.
func (m *openAIMatchClient) Match(ctx context.Context, req CompletionRequest) (*models.MatchResult, error) {
	resp, err := m.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.User),
		}),
		Model: openai.F(m.model),
		ResponseFormat: openai.F[openai.ChatCompletionNewParamsResponseFormatUnion](
			openai.ResponseFormatJSONObjectParam{
				Type: openai.F(openai.ResponseFormatJSONObjectTypeJSONObject),
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrTransport, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: completion has no choices", errs.ErrMalformedResponse)
	}

	return parseMatchResult(resp.Choices[0].Message.Content)
}

// parseMatchResult strips any markdown fences the model added despite
// instructions, parses the JSON payload, and enforces the match contract.
func parseMatchResult(content string) (*models.MatchResult, error) {
	var raw struct {
		Score           *float64 `json:"score"`
		Explanation     *string  `json:"explanation"`
		EditSuggestions []string `json:"edit_suggestions"`
		CandidateName   string   `json:"candidate_name"`
		JobTitle        string   `json:"job_title"`
	}

	if err := json.Unmarshal([]byte(extractJSON(content)), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrMalformedResponse, err)
	}

	// score, explanation and edit_suggestions have no sane defaults; a
	// reply without them is rejected rather than persisted half-empty.
	if raw.Score == nil {
		return nil, fmt.Errorf("%w: missing score", errs.ErrModelContract)
	}
	if *raw.Score < 0 || *raw.Score > 100 {
		return nil, fmt.Errorf("%w: score %v out of range", errs.ErrModelContract, *raw.Score)
	}
	if raw.Explanation == nil || strings.TrimSpace(*raw.Explanation) == "" {
		return nil, fmt.Errorf("%w: missing explanation", errs.ErrModelContract)
	}
	if len(raw.EditSuggestions) == 0 {
		return nil, fmt.Errorf("%w: missing edit_suggestions", errs.ErrModelContract)
	}

	result := &models.MatchResult{
		Score:           int(math.Round(*raw.Score)),
		Explanation:     *raw.Explanation,
		EditSuggestions: raw.EditSuggestions,
		CandidateName:   raw.CandidateName,
		JobTitle:        raw.JobTitle,
	}

	if strings.TrimSpace(result.CandidateName) == "" {
		result.CandidateName = "Unknown"
	}
	if strings.TrimSpace(result.JobTitle) == "" {
		result.JobTitle = "Position"
	}

	return result, nil
}

// extractJSON drops fenced code-block markers and slices out the outermost
// JSON object from text that may carry stray formatting around it.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end != -1 && end > start {
		return text[start : end+1]
	}

	return strings.TrimSpace(text)
}
