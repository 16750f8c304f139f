package core

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fkalogeros/stream-ai-chat/internal/config"
)

// newTestLLMService points the OpenAI client at a local server speaking
// the chat completion wire format.
func newTestLLMService(t *testing.T, handler http.HandlerFunc) *LLMService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	saved := config.AppConfig
	t.Cleanup(func() { config.AppConfig = saved })
	config.AppConfig.OpenAIAPIKey = "test-key"
	config.AppConfig.OpenAIBaseURL = srv.URL + "/v1"
	config.AppConfig.OpenAIModel = "gpt-4o-mini"

	return NewLLMService()
}

func completionResponse(content string) map[string]interface{} {
	choices := []map[string]interface{}{}
	if content != "" {
		choices = append(choices, map[string]interface{}{
			"index": 0,
			"message": map[string]interface{}{
				"role":    "assistant",
				"content": content,
			},
			"finish_reason": "stop",
		})
	}
	return map[string]interface{}{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"model":   "gpt-4o-mini",
		"choices": choices,
	}
}

func TestCompleteReturnsFirstChoice(t *testing.T) {
	var gotBody struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	svc := newTestLLMService(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode completion request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(completionResponse("generated reply"))
	})

	reply, err := svc.Complete(context.Background(), []Turn{
		{Role: RoleUser, Content: "stored question"},
		{Role: RoleAssistant, Content: "stored answer"},
		{Role: RoleUser, Content: "new question"},
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if reply != "generated reply" {
		t.Errorf("unexpected reply: %s", reply)
	}

	if gotBody.Model != "gpt-4o-mini" {
		t.Errorf("unexpected model: %s", gotBody.Model)
	}
	if len(gotBody.Messages) != 3 {
		t.Fatalf("expected 3 wire messages, got %d", len(gotBody.Messages))
	}
	if gotBody.Messages[2].Role != "user" || gotBody.Messages[2].Content != "new question" {
		t.Errorf("unexpected final wire message: %+v", gotBody.Messages[2])
	}
}

func TestCompleteFallbackOnEmptyChoices(t *testing.T) {
	svc := newTestLLMService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(completionResponse(""))
	})

	reply, err := svc.Complete(context.Background(), []Turn{{Role: RoleUser, Content: "hi"}})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if reply != fallbackReply {
		t.Errorf("expected fallback reply %q, got %q", fallbackReply, reply)
	}
}

func TestCompleteUpstreamError(t *testing.T) {
	svc := newTestLLMService(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"boom"}}`, http.StatusInternalServerError)
	})

	_, err := svc.Complete(context.Background(), []Turn{{Role: RoleUser, Content: "hi"}})
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}
