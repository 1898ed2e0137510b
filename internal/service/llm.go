package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// ErrEmptyCompletion is returned when the service answers without any choice
var ErrEmptyCompletion = errors.New("no response from API")

const defaultLLMModel = "gpt-4-turbo"

// LLMConfig configures the generative text service client
type LLMConfig struct {
	APIKey string
	// APIURL is the base URL of an OpenAI-compatible API. Empty means OpenAI.
	APIURL  string
	Model   string
	Timeout time.Duration
}

// LLMService sends single-prompt chat completions to an OpenAI-compatible API
type LLMService struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewLLMService creates a new LLMService instance
func NewLLMService(cfg LLMConfig) (*LLMService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("LLM_API_KEY or LLM_API_KEY_FILE must be set")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.APIURL != "" {
		clientCfg.BaseURL = cfg.APIURL
	}

	model := cfg.Model
	if model == "" {
		model = defaultLLMModel
	}

	return &LLMService{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   model,
		timeout: cfg.Timeout,
	}, nil
}

// Complete sends prompt as a single user message and returns the reply text.
// No retries are attempted; callers decide how to degrade.
func (s *LLMService) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	return resp.Choices[0].Message.Content, nil
}
