// Package backend defines the translation backend contract and its three
// interchangeable implementations: a local model endpoint, a cache-augmented
// service over HTTP, and the same service over gRPC. The implementation is
// picked once at worker startup, never per job.
package backend

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

// ErrAllTargetsFailed reports that every requested target language failed.
// This is the one backend outcome the worker treats as a job failure instead
// of a completed job with degraded output.
var ErrAllTargetsFailed = errors.New("all target languages failed")

// Result carries the per-language translations plus the timing metrics the
// cache-augmented backends report. Timings are -1 when a backend does not
// measure them.
type Result struct {
	Translations     map[string]string
	ProcessingTimeMs float64
	LLMTimeMs        float64
	CacheHitTimeMs   float64
}

func newResult() *Result {
	return &Result{
		Translations:     make(map[string]string),
		ProcessingTimeMs: -1,
		LLMTimeMs:        -1,
		CacheHitTimeMs:   -1,
	}
}

// Translator is the backend client contract. Translate must return an entry
// for every requested target language: per-language failures are embedded as
// visible error markers, and only a total failure is an error.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang string, targetLangs []string) (*Result, error)
	Name() string
	Close() error
}

// Config selects and parameterizes the backend at startup.
type Config struct {
	UseOllama bool
	UseGRPC   bool

	OllamaURL     string
	OllamaModel   string
	OllamaTimeout time.Duration

	CacheURL      string
	CacheGRPCAddr string
	CacheTimeout  time.Duration
}

// New resolves the backend in a fixed order: the local model when explicitly
// requested, otherwise the gRPC cache client, falling back to the HTTP cache
// client when the gRPC channel cannot be established. It returns an error
// only when no implementation can be constructed: a fatal startup condition.
func New(ctx context.Context, cfg Config) (Translator, error) {
	if cfg.UseOllama {
		if cfg.OllamaURL == "" {
			return nil, errors.New("ollama backend selected but no URL configured")
		}
		return NewOllama(cfg.OllamaURL, cfg.OllamaModel, cfg.OllamaTimeout), nil
	}
	if cfg.UseGRPC && cfg.CacheGRPCAddr != "" {
		client, err := NewCacheGRPC(ctx, cfg.CacheGRPCAddr, cfg.CacheTimeout)
		if err == nil {
			return client, nil
		}
		log.Printf("grpc backend unavailable at %s, falling back to http: %v", cfg.CacheGRPCAddr, err)
	}
	if cfg.CacheURL == "" {
		return nil, errors.New("no translation backend could be constructed")
	}
	return NewCacheHTTP(cfg.CacheURL, cfg.CacheTimeout), nil
}

// errorMarker is the visible per-language placeholder for a failed target.
func errorMarker(err error) string {
	return fmt.Sprintf("[Translation Error: %v]", err)
}

// languageNames maps queue language codes to the English names the
// chat-completion prompt uses.
var languageNames = map[string]string{
	"ko":    "Korean",
	"en":    "English",
	"th":    "Thai",
	"zh-CN": "Simplified Chinese",
	"zh-TW": "Traditional Chinese",
	"ja":    "Japanese",
	"es":    "Spanish",
	"fr":    "French",
	"de":    "German",
	"ru":    "Russian",
}

func languageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return code
}
