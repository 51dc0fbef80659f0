package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/blu-networking/blu-backend/pkg/config"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient(config.OpenAIConfig{}); err == nil {
		t.Fatal("expected error without api key")
	}
}

func TestCompleteReturnsFirstChoice(t *testing.T) {
	var captured chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer oa-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": `{"tips":["follow up"]}`}},
			},
		})
	}))
	defer server.Close()

	client, err := NewClient(config.OpenAIConfig{APIKey: "oa-key", Model: "gpt-4o-mini"}, WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	content, err := client.Complete(context.Background(), "You are a coach.", "Give one tip.")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if content != `{"tips":["follow up"]}` {
		t.Fatalf("unexpected content %q", content)
	}

	if captured.Model != "gpt-4o-mini" {
		t.Fatalf("unexpected model %q", captured.Model)
	}
	if captured.ResponseFormat == nil || captured.ResponseFormat.Type != "json_object" {
		t.Fatalf("expected json_object response format, got %+v", captured.ResponseFormat)
	}
	if len(captured.Messages) != 2 || captured.Messages[0].Role != "system" {
		t.Fatalf("unexpected messages %+v", captured.Messages)
	}
}

func TestCompleteSurfacesAPIFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client, err := NewClient(config.OpenAIConfig{APIKey: "oa-key"}, WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if _, err := client.Complete(context.Background(), "", "Give one tip."); err == nil {
		t.Fatal("expected error from failed completion")
	}
}
