package backend

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"transpipe/internal/translationpb"
)

// healthCheckTimeout bounds the startup probe so a dead endpoint fails fast
// into the HTTP fallback.
const healthCheckTimeout = 5 * time.Second

// CacheGRPC talks to the cache-augmented translation service over its binary
// RPC protocol. Semantics match the HTTP client; the transport is the only
// difference.
type CacheGRPC struct {
	conn    *grpc.ClientConn
	client  translationpb.TranslationServiceClient
	timeout time.Duration
}

// NewCacheGRPC dials the service and probes it with a small request so a
// broken channel is detected at startup, when the caller can still fall back.
func NewCacheGRPC(ctx context.Context, addr string, timeout time.Duration) (*CacheGRPC, error) {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	conn, err := grpc.Dial(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	c := &CacheGRPC{
		conn:    conn,
		client:  translationpb.NewTranslationServiceClient(conn),
		timeout: timeout,
	}
	if err := c.healthCheck(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("health check %s: %w", addr, err)
	}
	return c, nil
}

func (c *CacheGRPC) healthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()
	resp, err := c.client.Translate(ctx, &translationpb.TranslateRequest{
		Text:           "Hello",
		SourceLang:     "en",
		TargetLangs:    []string{"ko"},
		UseCache:       true,
		CacheStrategy:  "hybrid",
		TranslatorName: "vllm",
	})
	if err != nil {
		return err
	}
	if !resp.GetSuccess() {
		return fmt.Errorf("service reported failure: %s", resp.GetErrorMessage())
	}
	return nil
}

// Name identifies the backend in logs.
func (c *CacheGRPC) Name() string { return "cache-grpc" }

// Close tears down the channel.
func (c *CacheGRPC) Close() error {
	return c.conn.Close()
}

// Translate fans out one RPC per target language. A transport error for one
// target is recorded as a marker and iteration continues; only when every
// requested language fails does the whole call return an error.
func (c *CacheGRPC) Translate(ctx context.Context, text, sourceLang string, targetLangs []string) (*Result, error) {
	result := newResult()
	var failures []string
	for _, lang := range targetLangs {
		translation, timings, err := c.translateOne(ctx, text, sourceLang, lang)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", lang, err))
			if st, ok := status.FromError(err); ok && st.Code() != 0 {
				result.Translations[lang] = fmt.Sprintf("[gRPC Error: %s]", st.Code())
			} else {
				result.Translations[lang] = errorMarker(err)
			}
			log.Printf("grpc translation failed for %s: %v", lang, err)
			continue
		}
		result.Translations[lang] = translation
		result.ProcessingTimeMs = timings.processing
		result.LLMTimeMs = timings.llm
		result.CacheHitTimeMs = timings.cacheLookup
	}
	if len(failures) == len(targetLangs) && len(targetLangs) > 0 {
		return result, fmt.Errorf("%w: %s", ErrAllTargetsFailed, strings.Join(failures, "; "))
	}
	return result, nil
}

func (c *CacheGRPC) translateOne(ctx context.Context, text, sourceLang, targetLang string) (string, cacheTimings, error) {
	var timings cacheTimings
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Translate(ctx, &translationpb.TranslateRequest{
		Text:           text,
		SourceLang:     sourceLang,
		TargetLangs:    []string{targetLang},
		UseCache:       true,
		CacheStrategy:  "hybrid",
		TranslatorName: "vllm",
	})
	if err != nil {
		return "", timings, err
	}
	if !resp.GetSuccess() {
		msg := resp.GetErrorMessage()
		if msg == "" {
			msg = "unknown server error"
		}
		return "", timings, errors.New(msg)
	}

	translation := resp.GetTranslations()[targetLang]
	if translation == "" {
		log.Printf("grpc returned empty translation for %s", targetLang)
	}

	// Derive the HTTP-compatible timing split from the cache-hit flag.
	timings.processing = resp.GetProcessingTimeMs()
	if resp.GetCacheHits()[targetLang] {
		timings.cacheLookup = 0.1
		timings.llm = 0
	} else {
		timings.cacheLookup = 0
		timings.llm = resp.GetProcessingTimeMs()
	}
	return strings.TrimSpace(translation), timings, nil
}
