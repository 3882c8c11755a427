package openai_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/joho/godotenv"

	"studymate-backend/config"
	openaipkg "studymate-backend/openai"
)

type capturedRequest struct {
	Model    string `json:"model"`
	User     string `json:"user"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func fakeServer(t *testing.T, got *capturedRequest, reply string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer sk-test" {
			t.Errorf("authorization=%q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCompleteSendsSystemAndUserMessages(t *testing.T) {
	var got capturedRequest
	srv := fakeServer(t, &got, `{"id":"c1","object":"chat.completion","model":"gpt-test","choices":[{"index":0,"message":{"role":"assistant","content":"{\"ok\":true}"},"finish_reason":"stop"}],"usage":{"prompt_tokens":3,"completion_tokens":2,"total_tokens":5}}`)

	c := openaipkg.NewClient(config.OpenAI{APIKey: "sk-test", Model: "gpt-test", BaseURL: srv.URL + "/v1/", Timeout: 5 * time.Second}, nil)
	out, err := c.Complete(context.Background(), "studymate_abc", "be json", "explain go")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if out != `{"ok":true}` {
		t.Fatalf("out=%q", out)
	}
	if got.Model != "gpt-test" || got.User != "studymate_abc" {
		t.Fatalf("request=%+v", got)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Role != "user" {
		t.Fatalf("messages=%+v", got.Messages)
	}
	if got.Messages[0].Content != "be json" || got.Messages[1].Content != "explain go" {
		t.Fatalf("messages=%+v", got.Messages)
	}
}

func TestCompleteNoChoices(t *testing.T) {
	var got capturedRequest
	srv := fakeServer(t, &got, `{"id":"c1","object":"chat.completion","choices":[]}`)
	c := openaipkg.NewClient(config.OpenAI{APIKey: "sk-test", BaseURL: srv.URL + "/v1", Timeout: 5 * time.Second}, nil)
	if _, err := c.Complete(context.Background(), "s", "sys", "usr"); !errors.Is(err, openaipkg.ErrEmptyReply) {
		t.Fatalf("err=%v want ErrEmptyReply", err)
	}
}

func TestCompleteAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()
	c := openaipkg.NewClient(config.OpenAI{APIKey: "sk-test", BaseURL: srv.URL + "/v1", Timeout: 5 * time.Second}, nil)
	_, err := c.Complete(context.Background(), "s", "sys", "usr")
	if err == nil || !strings.Contains(err.Error(), "bad key") {
		t.Fatalf("err=%v", err)
	}
}

// TestComplete_RealEnv talks to the real API when a key is configured.
func TestComplete_RealEnv(t *testing.T) {
	for _, p := range []string{".env", "../.env"} {
		if err := godotenv.Load(p); err == nil {
			t.Logf("loaded env from %s", p)
			break
		}
	}
	if os.Getenv("OPENAI_API_KEY") == "" {
		t.Skip("OPENAI_API_KEY not set")
	}
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	c := openaipkg.NewClient(cfg.OpenAI, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	out, err := c.Complete(ctx, "studymate_test", "Reply with the single word: pong", "ping")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if strings.TrimSpace(out) == "" {
		t.Fatal("empty reply")
	}
}
