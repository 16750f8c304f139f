package core

import (
	"context"
	"fmt"
	"log"

	"github.com/sashabaranov/go-openai"

	"github.com/fkalogeros/stream-ai-chat/internal/config"
)

// fallbackReply is returned when the completion service responds without
// any usable content.
const fallbackReply = "No message from AI"

// LLMService wraps the OpenAI-protocol completion API behind the
// Completer interface.
type LLMService struct {
	client *openai.Client
	model  string
}

func NewLLMService() *LLMService {
	cfg := openai.DefaultConfig(config.AppConfig.OpenAIAPIKey)
	if config.AppConfig.OpenAIBaseURL != "" {
		cfg.BaseURL = config.AppConfig.OpenAIBaseURL
	}
	return &LLMService{
		client: openai.NewClientWithConfig(cfg),
		model:  config.AppConfig.OpenAIModel,
	}
}

func (s *LLMService) Complete(ctx context.Context, turns []Turn) (string, error) {
	if len(turns) == 0 {
		return "", fmt.Errorf("%w: empty prompt for chat completion", ErrUpstream)
	}

	messages := make([]openai.ChatCompletionMessage, len(turns))
	for i, t := range turns {
		messages[i] = openai.ChatCompletionMessage{Role: t.Role, Content: t.Content}
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    s.model,
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("%w: chat completion failed: %v", ErrUpstream, err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		log.Println("Completion service returned no content, using fallback reply")
		return fallbackReply, nil
	}
	return resp.Choices[0].Message.Content, nil
}
