// Package worker contains the worker loops and the pool that supervises
// them. Each loop owns one queue connection and one backend client and cycles
// through claim, preprocess, translate, resolve until the context ends.
package worker

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"transpipe/internal/audit"
	"transpipe/internal/backend"
	"transpipe/internal/langdetect"
	"transpipe/internal/metrics"
	"transpipe/internal/model"
	"transpipe/internal/preprocess"
)

// defaultSourceLanguage is assumed when detection comes up empty; the queue
// carries Korean chat.
const defaultSourceLanguage = "ko"

// JobSource is the queue contract the loop drives. *queue.Source implements
// it; tests inject fakes.
type JobSource interface {
	Claim(ctx context.Context, timeout time.Duration) (string, bool, error)
	Fetch(ctx context.Context, id string) (*model.Job, error)
	ResolveOk(ctx context.Context, id string, result *model.TranslationResult) error
	ResolveFail(ctx context.Context, id, reason string, partial *model.TranslationResult) error
	Close() error
}

// Loop processes jobs one at a time. It is not safe for concurrent use; the
// pool starts one goroutine per Loop.
type Loop struct {
	id           int
	source       JobSource
	translator   backend.Translator
	pipeline     *preprocess.Pipeline
	counters     *metrics.Counters
	auditLog     *audit.Logger
	claimTimeout time.Duration
}

// NewLoop wires one worker loop. auditLog may be nil.
func NewLoop(id int, source JobSource, translator backend.Translator, pipeline *preprocess.Pipeline, counters *metrics.Counters, auditLog *audit.Logger, claimTimeout time.Duration) *Loop {
	return &Loop{
		id:           id,
		source:       source,
		translator:   translator,
		pipeline:     pipeline,
		counters:     counters,
		auditLog:     auditLog,
		claimTimeout: claimTimeout,
	}
}

// Run claims and processes jobs until ctx is cancelled. Claim timeouts retry
// immediately; transient queue errors are logged and retried; nothing thrown
// by one job ever escapes the loop.
func (l *Loop) Run(ctx context.Context) {
	defer func() {
		if err := l.source.Close(); err != nil {
			log.Printf("worker-%d close source: %v", l.id, err)
		}
		if err := l.translator.Close(); err != nil {
			log.Printf("worker-%d close backend: %v", l.id, err)
		}
		log.Printf("worker-%d stopped", l.id)
	}()
	log.Printf("worker-%d started (backend=%s)", l.id, l.translator.Name())
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		id, ok, err := l.source.Claim(ctx, l.claimTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("worker-%d claim: %v", l.id, err)
			continue
		}
		if !ok {
			continue
		}
		l.handle(ctx, id)
	}
}

// handle is the single resolution path: every claimed id reaches exactly one
// of ResolveOk/ResolveFail here, so the active list cannot leak.
func (l *Loop) handle(ctx context.Context, id string) {
	l.counters.JobStarted()
	defer l.counters.JobCompleted()

	result, err := l.process(ctx, id)
	if err != nil {
		log.Printf("worker-%d job %s failed: %v", l.id, id, err)
		if rerr := l.source.ResolveFail(ctx, id, err.Error(), result); rerr != nil {
			log.Printf("worker-%d resolve fail %s: %v", l.id, id, rerr)
		}
		return
	}
	if rerr := l.source.ResolveOk(ctx, id, result); rerr != nil {
		log.Printf("worker-%d resolve ok %s: %v", l.id, id, rerr)
	}
}

// process runs one job through the pipeline and backend. A non-nil error
// means the job failed; the returned result may still carry partial output
// for the failure event.
func (l *Loop) process(ctx context.Context, id string) (*model.TranslationResult, error) {
	start := time.Now()

	job, err := l.source.Fetch(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch payload: %w", err)
	}
	opts := job.EffectiveOptions()

	outcome := l.pipeline.Run(ctx, job.Text, opts)
	if outcome.Filtered {
		// Filtered jobs complete with empty translations. Processing time
		// includes the filter check itself, measured from the claim.
		result := &model.TranslationResult{
			ID:               id,
			OriginalText:     job.Text,
			PreprocessedText: outcome.Text,
			Translations:     map[string]string{},
			DetectedLanguage: "unknown",
			ProcessingTime:   time.Since(start).Seconds(),
			Filtered:         true,
			FilterReason:     outcome.FilterReason,
		}
		l.recordAudit(job, result, nil)
		return result, nil
	}

	detected := langdetect.Detect(strings.ReplaceAll(outcome.Text, preprocess.SentenceSeparator, " "))
	if detected == "" {
		detected = defaultSourceLanguage
	}

	translated, err := l.translator.Translate(ctx, outcome.Text, detected, job.TargetLanguages)
	if err != nil {
		partial := &model.TranslationResult{
			ID:               id,
			OriginalText:     job.Text,
			PreprocessedText: outcome.Text,
			Translations:     translationsOrEmpty(translated),
			DetectedLanguage: detected,
			ProcessingTime:   time.Since(start).Seconds(),
		}
		return partial, fmt.Errorf("translate: %w", err)
	}

	result := &model.TranslationResult{
		ID:               id,
		OriginalText:     job.Text,
		PreprocessedText: outcome.Text,
		Translations:     translated.Translations,
		DetectedLanguage: detected,
		ProcessingTime:   time.Since(start).Seconds(),
	}
	l.recordAudit(job, result, translated)
	return result, nil
}

func (l *Loop) recordAudit(job *model.Job, result *model.TranslationResult, backendResult *backend.Result) {
	if l.auditLog == nil {
		return
	}
	now := time.Now()
	if result.Filtered {
		l.auditLog.Log(audit.Record{
			Timestamp:        now,
			OriginalText:     job.Text,
			PreprocessedText: result.PreprocessedText,
			ProcessingTimeMs: result.ProcessingTime * 1000,
			Filtered:         true,
			FilterReason:     result.FilterReason,
		})
		return
	}
	for lang, translation := range result.Translations {
		rec := audit.Record{
			Timestamp:        now,
			OriginalText:     job.Text,
			TranslatedText:   translation,
			PreprocessedText: result.PreprocessedText,
			ProcessingTimeMs: result.ProcessingTime * 1000,
			SourceLanguage:   result.DetectedLanguage,
			TargetLanguage:   lang,
		}
		if backendResult != nil {
			rec.TranslateProcessingTimeMs = backendResult.ProcessingTimeMs
			rec.TranslateLLMTimeMs = backendResult.LLMTimeMs
			rec.TranslateCacheHitTimeMs = backendResult.CacheHitTimeMs
		}
		l.auditLog.Log(rec)
	}
}

func translationsOrEmpty(r *backend.Result) map[string]string {
	if r == nil || r.Translations == nil {
		return map[string]string{}
	}
	return r.Translations
}
