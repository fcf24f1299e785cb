package ai

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/hnguyen/codeassist/internal/model"
)

// Request carries everything needed for one suggestion call. It is built
// fresh per submission and never mutated afterwards.
type Request struct {
	Code        string
	Language    string
	FileName    string
	Prompt      string
	Context     string
	Temperature float64
}

// Response is the assistant's answer to a single Request.
type Response struct {
	Suggestion  string  `json:"suggestion"`
	Explanation string  `json:"explanation"`
	Confidence  float64 `json:"confidence"`
}

// Suggester is the inference collaborator the assistant dialog depends on.
type Suggester interface {
	Suggest(ctx context.Context, req Request) (*Response, error)
}

// Assistant implements Suggester on top of the OpenAI chat-completions API.
type Assistant struct {
	client    *openai.Client
	model     string
	maxTokens int
	limiter   *rate.Limiter
}

// New creates an assistant with the given API key and configuration.
// An empty BaseURL uses the default OpenAI endpoint.
func New(apiKey string, cfg model.AIConfig) *Assistant {
	clientConfig := openai.DefaultConfig(apiKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 2048
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = "gpt-4o-mini"
	}

	return &Assistant{
		client:    openai.NewClientWithConfig(clientConfig),
		model:     modelName,
		maxTokens: maxTokens,
		// One request per second with a small burst; the dialog issues
		// at most one request at a time anyway.
		limiter: rate.NewLimiter(rate.Every(time.Second), 3),
	}
}

// Suggest sends one suggestion request and returns the parsed response.
func (a *Assistant) Suggest(ctx context.Context, req Request) (*Response, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		MaxTokens:   a.maxTokens,
		Temperature: float32(req.Temperature),
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt(),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userPrompt(req),
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("AI request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("AI request returned no choices")
	}

	return parseResponse(resp.Choices[0].Message.Content), nil
}
