package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestOllamaPartialFailureKeepsEveryLanguage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Fatalf("unexpected message shape: %+v", req.Messages)
		}
		// The Thai request fails; English succeeds.
		if strings.Contains(req.Messages[0].Content, "Thai") {
			http.Error(w, "model overloaded", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(chatResponse{Message: chatMessage{Role: "assistant", Content: "  hello there \n"}})
	}))
	defer srv.Close()

	o := NewOllama(srv.URL, "gemma3-translator:1b", time.Second)
	result, err := o.Translate(context.Background(), "안녕하세요", "ko", []string{"en", "th"})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got := result.Translations["en"]; got != "hello there" {
		t.Fatalf("en translation = %q", got)
	}
	th, ok := result.Translations["th"]
	if !ok {
		t.Fatalf("th entry missing; every requested language must appear")
	}
	if !strings.HasPrefix(th, "[Translation Error:") {
		t.Fatalf("th should carry an error marker, got %q", th)
	}
}

func TestOllamaPromptUsesLanguageNames(t *testing.T) {
	var system string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		system = req.Messages[0].Content
		_ = json.NewEncoder(w).Encode(chatResponse{Message: chatMessage{Content: "ok"}})
	}))
	defer srv.Close()

	o := NewOllama(srv.URL, "m", time.Second)
	if _, err := o.Translate(context.Background(), "hi", "ko", []string{"zh-CN"}); err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if !strings.Contains(system, "Korean") || !strings.Contains(system, "Simplified Chinese") {
		t.Fatalf("system prompt = %q", system)
	}
}
