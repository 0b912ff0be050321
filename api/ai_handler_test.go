package api

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/tmc/langchaingo/llms"
)

// stubModel answers every prompt with a fixed reply and records the last
// prompt it saw.
type stubModel struct {
	reply      string
	lastPrompt string
}

func (m *stubModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	for _, msg := range messages {
		for _, part := range msg.Parts {
			if text, ok := part.(llms.TextContent); ok {
				m.lastPrompt = text.Text
			}
		}
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: m.reply}},
	}, nil
}

func (m *stubModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	m.lastPrompt = prompt
	return m.reply, nil
}

func TestAIEndpoints_Unconfigured(t *testing.T) {
	s := newTestServer(t, nil)
	token, _ := s.registerUser(t, "Ann", "ann@x.com", "secret1")

	endpoints := []struct {
		path string
		body map[string]any
	}{
		{"/api/ai/generate-post", map[string]any{"topic": "Go"}},
		{"/api/ai/improve-section", map[string]any{"content": "draft text"}},
		{"/api/ai/generate-outline", map[string]any{"topic": "Go"}},
		{"/api/ai/continue-writing", map[string]any{"content": "so far"}},
		{"/api/ai/generate-tags", map[string]any{"content": "draft text"}},
	}
	for _, ep := range endpoints {
		rec := s.do(t, http.MethodPost, ep.path, token, ep.body)
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("%s: status = %d, want 500", ep.path, rec.Code)
			continue
		}
		if msg, _ := decodeBody(t, rec)["message"].(string); !strings.Contains(msg, "AI service not configured") {
			t.Errorf("%s: message = %q", ep.path, msg)
		}
	}
}

func TestAIGeneratePost(t *testing.T) {
	model := &stubModel{reply: "# Generated\n\nbody"}
	s := newTestServer(t, model)
	token, _ := s.registerUser(t, "Ann", "ann@x.com", "secret1")

	rec := s.do(t, http.MethodPost, "/api/ai/generate-post", token, map[string]any{
		"topic":    "Testing in Go",
		"keywords": "httptest, tables",
		"tone":     "casual",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d body %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["content"] != "# Generated\n\nbody" {
		t.Fatalf("content = %v", body["content"])
	}
	for _, want := range []string{"Testing in Go", "httptest, tables", "casual"} {
		if !strings.Contains(model.lastPrompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, model.lastPrompt)
		}
	}

	rec = s.do(t, http.MethodPost, "/api/ai/generate-post", token, map[string]any{"keywords": "no topic"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing topic: status = %d, want 400", rec.Code)
	}
	if decodeBody(t, rec)["message"] != "Topic is required" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAIGenerateTags_TrimsReply(t *testing.T) {
	model := &stubModel{reply: "  go, testing, web  \n"}
	s := newTestServer(t, model)
	token, _ := s.registerUser(t, "Ann", "ann@x.com", "secret1")

	rec := s.do(t, http.MethodPost, "/api/ai/generate-tags", token, map[string]any{"content": "a post about go"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d body %s", rec.Code, rec.Body.String())
	}
	if tags := decodeBody(t, rec)["tags"]; tags != "go, testing, web" {
		t.Fatalf("tags = %q", tags)
	}
}

func TestAIEndpoints_RequireAuth(t *testing.T) {
	s := newTestServer(t, &stubModel{reply: "x"})

	rec := s.do(t, http.MethodPost, "/api/ai/generate-post", "", map[string]any{"topic": "Go"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAIContinueWriting_Validation(t *testing.T) {
	s := newTestServer(t, &stubModel{reply: "more words"})
	token, _ := s.registerUser(t, "Ann", "ann@x.com", "secret1")

	rec := s.do(t, http.MethodPost, "/api/ai/continue-writing", token, map[string]any{"direction": "wrap up"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if decodeBody(t, rec)["message"] != "Existing content is required" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}

	rec = s.do(t, http.MethodPost, "/api/ai/continue-writing", token, map[string]any{
		"content":   "the story so far",
		"direction": "wrap up",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d body %s", rec.Code, rec.Body.String())
	}
	if decodeBody(t, rec)["content"] != "more words" {
		t.Fatalf("unexpected content: %s", rec.Body.String())
	}
}
