package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Ollama translates against a local chat-completion endpoint, one request per
// target language. The model's reply content, trimmed, is the translation.
type Ollama struct {
	url     string
	model   string
	client  *http.Client
	timeout time.Duration
}

// NewOllama builds the local-model backend.
func NewOllama(url, model string, timeout time.Duration) *Ollama {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Ollama{
		url:     url,
		model:   model,
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

// Name identifies the backend in logs.
func (o *Ollama) Name() string { return "ollama" }

// Close is a no-op; the HTTP client holds no long-lived connections worth
// tearing down explicitly.
func (o *Ollama) Close() error { return nil }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
}

// Translate fans out one request per target language. A per-language failure
// is captured into the map as a visible error marker rather than aborting the
// whole call, so callers always get an entry for every requested language.
func (o *Ollama) Translate(ctx context.Context, text, sourceLang string, targetLangs []string) (*Result, error) {
	result := newResult()
	for _, lang := range targetLangs {
		translation, err := o.translateOne(ctx, text, sourceLang, lang)
		if err != nil {
			result.Translations[lang] = errorMarker(err)
			continue
		}
		result.Translations[lang] = translation
	}
	return result, nil
}

func (o *Ollama) translateOne(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	payload := chatRequest{
		Model: o.model,
		Messages: []chatMessage{
			{
				Role: "system",
				Content: fmt.Sprintf("Translate from %s to %s. Only output the translated text, nothing else.",
					languageName(sourceLang), languageName(targetLang)),
			},
			{Role: "user", Content: text},
		},
		Stream: false,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("chat endpoint status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode chat reply: %w", err)
	}
	return strings.TrimSpace(decoded.Message.Content), nil
}
