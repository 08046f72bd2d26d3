package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mpcbarbosa/SeniorCare/config"
)

func TestCanned_GreetsByName(t *testing.T) {
	c := NewCanned(func(int) int { return 0 })
	got, err := c.Reply(context.Background(), Request{UserName: "Maria"})
	if err != nil {
		t.Fatal(err)
	}
	if got != "Hello Maria! How can I help?" {
		t.Errorf("unexpected reply %q", got)
	}
}

func TestNew_UnknownProvider(t *testing.T) {
	if _, err := New(&config.AssistantConfig{Provider: "eliza"}, zap.NewNop()); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func testConfig(url string) *config.AssistantConfig {
	return &config.AssistantConfig{
		Provider:       ProviderOpenAI,
		BaseURL:        url,
		APIKey:         "sk-test",
		Model:          "gpt-4o-mini",
		MaxTokens:      100,
		Timeout:        time.Second,
		RequestsPerMin: 600,
	}
}

func TestOpenAI_Reply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			t.Errorf("missing bearer token")
		}
		var req chatRequest
		json.NewDecoder(r.Body).Decode(&req)
		if len(req.Messages) != 3 || req.Messages[0].Role != "system" {
			t.Errorf("expected system + history + message, got %+v", req.Messages)
		}
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  Good morning!  "}}]}`))
	}))
	defer srv.Close()

	o := NewOpenAI(testConfig(srv.URL), srv.Client(), zap.NewNop())
	got, err := o.Reply(context.Background(), Request{
		UserName: "Maria",
		History:  []Turn{{Role: "assistant", Content: "Hi"}},
		Message:  "Good morning",
	})
	if err != nil {
		t.Fatalf("Reply: %v", err)
	}
	if got != "Good morning!" {
		t.Errorf("unexpected reply %q", got)
	}
}

func TestOpenAI_BreakerOpensAfterFailures(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	o := NewOpenAI(testConfig(srv.URL), srv.Client(), zap.NewNop())
	for i := 0; i < 3; i++ {
		_, err := o.Reply(context.Background(), Request{Message: "hi"})
		if err == nil || !strings.Contains(err.Error(), "502") {
			t.Fatalf("call %d: expected upstream error, got %v", i, err)
		}
	}

	_, err := o.Reply(context.Background(), Request{Message: "hi"})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable once open, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 upstream calls, got %d", calls)
	}
}
