package testhelpers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// FakeLLM is an OpenAI-compatible chat completions server for tests. Replies
// are served in order and the last one repeats once the list is exhausted.
type FakeLLM struct {
	*httptest.Server

	mu        sync.Mutex
	replies   []string
	status    int
	prompts   []string
	maxTokens []int
}

// NewFakeLLM starts a fake completion server that answers with replies
func NewFakeLLM(t *testing.T, replies ...string) *FakeLLM {
	t.Helper()
	f := &FakeLLM{replies: replies, status: http.StatusOK}
	f.Server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.Close)
	return f
}

// BaseURL is the value to configure as the client's API URL
func (f *FakeLLM) BaseURL() string {
	return f.URL + "/v1"
}

// FailWith makes every following request answer with the given status
func (f *FakeLLM) FailWith(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = status
}

// Prompts returns the user prompts received so far
func (f *FakeLLM) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prompts...)
}

// MaxTokens returns the max_tokens values received so far
func (f *FakeLLM) MaxTokens() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.maxTokens...)
}

func (f *FakeLLM) handle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
		MaxTokens int `json:"max_tokens"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	f.mu.Lock()
	for _, m := range req.Messages {
		if m.Role == "user" {
			f.prompts = append(f.prompts, m.Content)
		}
	}
	f.maxTokens = append(f.maxTokens, req.MaxTokens)
	status := f.status
	reply := ""
	if len(f.replies) > 0 {
		reply = f.replies[0]
		if len(f.replies) > 1 {
			f.replies = f.replies[1:]
		}
	}
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if status != http.StatusOK {
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "upstream unavailable", "type": "server_error"},
		})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 0,
		"model":   "test-model",
		"choices": []map[string]any{
			{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": reply},
				"finish_reason": "stop",
			},
		},
	})
}
