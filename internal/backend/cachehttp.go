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

// CacheHTTP talks to the cache-augmented translation service over its
// request/response protocol. Fan-out is per target language, matching the
// service's per-language cache granularity.
type CacheHTTP struct {
	url    string
	client *http.Client
}

// NewCacheHTTP builds the HTTP cache backend.
func NewCacheHTTP(url string, timeout time.Duration) *CacheHTTP {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &CacheHTTP{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Name identifies the backend in logs.
func (c *CacheHTTP) Name() string { return "cache-http" }

// Close is a no-op for the HTTP transport.
func (c *CacheHTTP) Close() error { return nil }

type cacheRequest struct {
	CacheStrategy string   `json:"cache_strategy"`
	SourceLang    string   `json:"source_lang"`
	TargetLangs   []string `json:"target_langs"`
	Text          string   `json:"text"`
	UseCache      bool     `json:"use_cache"`
}

type cacheResponse struct {
	Success           bool               `json:"success"`
	Translations      map[string]string  `json:"translations"`
	ProcessingTimeMs  float64            `json:"processing_time_ms"`
	CacheLookupTimeMs float64            `json:"cache_lookup_time_ms"`
	LLMResponseTimeMs map[string]float64 `json:"llm_response_time_ms"`
	ErrorMessage      string             `json:"error_message"`
}

// Translate fans out one call per target language. Per-language failures land
// in the map as error markers; timing metrics reflect the last successful
// call, mirroring the service's reporting granularity.
func (c *CacheHTTP) Translate(ctx context.Context, text, sourceLang string, targetLangs []string) (*Result, error) {
	result := newResult()
	for _, lang := range targetLangs {
		translation, timings, err := c.translateOne(ctx, text, sourceLang, lang)
		if err != nil {
			result.Translations[lang] = errorMarker(err)
			continue
		}
		result.Translations[lang] = translation
		result.ProcessingTimeMs = timings.processing
		result.LLMTimeMs = timings.llm
		result.CacheHitTimeMs = timings.cacheLookup
	}
	return result, nil
}

type cacheTimings struct {
	processing  float64
	llm         float64
	cacheLookup float64
}

func (c *CacheHTTP) translateOne(ctx context.Context, text, sourceLang, targetLang string) (string, cacheTimings, error) {
	var timings cacheTimings
	payload := cacheRequest{
		CacheStrategy: "hybrid",
		SourceLang:    sourceLang,
		TargetLangs:   []string{targetLang},
		Text:          text,
		UseCache:      true,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", timings, fmt.Errorf("marshal translate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"?translator=vllm", bytes.NewReader(body))
	if err != nil {
		return "", timings, fmt.Errorf("build translate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", timings, fmt.Errorf("translate request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", timings, fmt.Errorf("translate endpoint status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var decoded cacheResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", timings, fmt.Errorf("decode translate reply: %w", err)
	}
	// An inner failure flag is an error even under HTTP 200.
	if !decoded.Success {
		msg := decoded.ErrorMessage
		if msg == "" {
			msg = "unknown server error"
		}
		return "", timings, fmt.Errorf("translate service error: %s", msg)
	}

	translation, ok := decoded.Translations[targetLang]
	if !ok {
		return "", timings, fmt.Errorf("reply missing translation for %s", targetLang)
	}
	timings.processing = decoded.ProcessingTimeMs
	timings.cacheLookup = decoded.CacheLookupTimeMs
	timings.llm = decoded.LLMResponseTimeMs[targetLang]
	return strings.TrimSpace(translation), timings, nil
}
