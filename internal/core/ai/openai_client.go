package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/ainexus/translation-service/config"
	"github.com/ainexus/translation-service/pkg/telemetry"
)

type openAIClient struct {
	config     config.ModelConfig
	httpClient *http.Client
	logger     *slog.Logger
	limiter    *RateLimiter
}

type ChatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionResponse struct {
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

type Choice struct {
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

func NewOpenAIClient(cfg config.ModelConfig, logger *slog.Logger) Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 2000
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.3 // low temperature for faithful translations
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = 45 * time.Second
	}

	return &openAIClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		logger:  logger,
		limiter: NewRateLimiter(cfg.RateLimitQPS),
	}
}

func (c *openAIClient) Complete(ctx context.Context, systemPrompt, userText string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}

	reqBody := ChatCompletionRequest{
		Model: c.config.Model,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userText},
		},
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.config.BaseURL+"/chat/completions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make chat completion request: %w", err)
	}
	defer resp.Body.Close()

	if telemetry.ModelCallsTotal != nil {
		telemetry.ModelCallsTotal.Add(ctx, 1)
	}
	if telemetry.ModelCallDuration != nil {
		telemetry.ModelCallDuration.Record(ctx, float64(time.Since(start).Milliseconds()))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read chat completion response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Model gateway returned non-OK status",
			"status_code", resp.StatusCode,
			"model", c.config.Model,
			"response", string(body))
		if telemetry.ModelErrorsTotal != nil {
			telemetry.ModelErrorsTotal.Add(ctx, 1)
		}
		return "", &StatusError{Status: resp.StatusCode, Body: string(body)}
	}

	var chatResp ChatCompletionResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal chat completion response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices in chat completion response")
	}

	c.logger.Debug("Chat completion successful",
		"model", c.config.Model,
		"tokens_used", chatResp.Usage.TotalTokens)

	return chatResp.Choices[0].Message.Content, nil
}
