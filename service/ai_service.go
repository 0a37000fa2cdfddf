package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"investment-calculator/domain"
)

// AIService writes short plain-language explanations of projection results.
// Without an API key it falls back to templated text.
type AIService struct {
	apiKey     string
	apiURL     string
	model      string
	enabled    bool
	httpClient *http.Client
	logger     *zap.Logger
}

type OpenAIRequest struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type OpenAIResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

const systemPrompt = "You are a financial educator. You explain long-term investment projections " +
	"clearly and accurately in plain English, without giving personalised advice. " +
	"You always mention that projections assume a constant return and are not guaranteed."

func NewAIService(apiKey, apiURL, model string, logger *zap.Logger) *AIService {
	return &AIService{
		apiKey:  apiKey,
		apiURL:  apiURL,
		model:   model,
		enabled: apiKey != "",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// ExplainGoal describes whether and when a projection reaches its target.
func (s *AIService) ExplainGoal(
	ctx context.Context,
	input domain.GoalInput,
	result domain.GoalResult,
) string {
	if !s.enabled {
		return s.fallbackGoalExplanation(input, result)
	}

	cfg := input.Config
	outcome := fmt.Sprintf("The target is NOT reached within %d years; the final value is %.2f.", cfg.Duration, result.FinalValue)
	if result.Reached {
		outcome = fmt.Sprintf("The target is reached in year %d with a value of %.2f.", result.Year, result.Snapshot.ValueEndOfYear)
	}

	prompt := fmt.Sprintf(`Explain this investment projection in 3 sentences.

INPUTS:
- Initial investment: %.2f
- Annual contribution (added at the end of each year): %.2f
- Expected annual return: %.2f%%
- Duration: %d years
- Target value: %.2f

OUTCOME:
%s

Explain how compounding and the yearly contributions each contribute to the result.`,
		cfg.InitialInvestment, cfg.AnnualInvestment, cfg.ExpectedReturn, cfg.Duration,
		input.TargetValue, outcome)

	explanation, err := s.callLLM(ctx, prompt)
	if err != nil {
		s.logger.Warn("AI explanation failed, using fallback", zap.Error(err))
		return s.fallbackGoalExplanation(input, result)
	}
	return explanation
}

func (s *AIService) callLLM(ctx context.Context, prompt string) (string, error) {
	reqBody := OpenAIRequest{
		Model: s.model,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens: 300,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var openAIResp OpenAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&openAIResp); err != nil {
		return "", err
	}
	if len(openAIResp.Choices) == 0 {
		return "", fmt.Errorf("no response from AI")
	}
	return openAIResp.Choices[0].Message.Content, nil
}

func (s *AIService) fallbackGoalExplanation(input domain.GoalInput, result domain.GoalResult) string {
	cfg := input.Config
	if result.Reached {
		return fmt.Sprintf("Starting from %.2f and adding %.2f every year at %.2f%%, the investment reaches %.2f in year %d (value %.2f). "+
			"Interest is earned on the balance held at the start of each year, so each contribution starts compounding the year after it is made. "+
			"This assumes a constant return, which real markets do not guarantee.",
			cfg.InitialInvestment, cfg.AnnualInvestment, cfg.ExpectedReturn,
			input.TargetValue, result.Year, result.Snapshot.ValueEndOfYear)
	}
	return fmt.Sprintf("Starting from %.2f and adding %.2f every year at %.2f%%, the investment grows to %.2f after %d years, short of the %.2f target. "+
		"A longer duration, higher contributions or a higher return would be needed to reach it. "+
		"This assumes a constant return, which real markets do not guarantee.",
		cfg.InitialInvestment, cfg.AnnualInvestment, cfg.ExpectedReturn,
		result.FinalValue, cfg.Duration, input.TargetValue)
}
