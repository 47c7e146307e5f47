package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"transpipe/internal/backend"
	"transpipe/internal/metrics"
	"transpipe/internal/model"
	"transpipe/internal/preprocess"
)

// fakeSource feeds a fixed sequence of claims and records every resolution.
type fakeSource struct {
	ids  []string
	jobs map[string]*model.Job

	claims   int
	resolved []resolution
	closed   bool
}

type resolution struct {
	id     string
	status string
	reason string
	result *model.TranslationResult
}

func (f *fakeSource) Claim(ctx context.Context, timeout time.Duration) (string, bool, error) {
	if f.claims >= len(f.ids) {
		return "", false, nil
	}
	id := f.ids[f.claims]
	f.claims++
	if id == "" {
		// empty slot models a claim timeout
		return "", false, nil
	}
	return id, true, nil
}

func (f *fakeSource) Fetch(ctx context.Context, id string) (*model.Job, error) {
	job, ok := f.jobs[id]
	if !ok {
		return nil, errors.New("job data missing")
	}
	return job, nil
}

func (f *fakeSource) ResolveOk(ctx context.Context, id string, result *model.TranslationResult) error {
	f.resolved = append(f.resolved, resolution{id: id, status: "completed", result: result})
	return nil
}

func (f *fakeSource) ResolveFail(ctx context.Context, id, reason string, partial *model.TranslationResult) error {
	f.resolved = append(f.resolved, resolution{id: id, status: "failed", reason: reason, result: partial})
	return nil
}

func (f *fakeSource) Close() error {
	f.closed = true
	return nil
}

// fakeBackend counts calls and answers from a fixed script.
type fakeBackend struct {
	calls     int
	result    *backend.Result
	err       error
	lastLangs []string
	lastText  string
	lastSrc   string
}

func (f *fakeBackend) Translate(ctx context.Context, text, sourceLang string, targetLangs []string) (*backend.Result, error) {
	f.calls++
	f.lastText = text
	f.lastSrc = sourceLang
	f.lastLangs = targetLangs
	return f.result, f.err
}

func (f *fakeBackend) Name() string { return "fake" }
func (f *fakeBackend) Close() error { return nil }

func newTestLoop(source *fakeSource, be *fakeBackend) *Loop {
	pipeline := preprocess.New(nil, 0, nil)
	return NewLoop(1, source, be, pipeline, metrics.NewCounters(), nil, time.Millisecond)
}

func runLoop(t *testing.T, loop *Loop) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	done := make(chan struct{})
	go func() {
		loop.Run(ctx)
		close(done)
	}()
	// let the loop drain its script, then stop it
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("loop did not stop after cancel")
	}
}

func TestSuccessfulJobResolvesCompletedOnce(t *testing.T) {
	source := &fakeSource{
		ids: []string{"42"},
		jobs: map[string]*model.Job{
			"42": {ID: "42", Text: "안녕하세요 좋은 아침입니다", TargetLanguages: []string{"en"}},
		},
	}
	be := &fakeBackend{result: &backend.Result{Translations: map[string]string{"en": "Hello, good morning"}}}
	runLoop(t, newTestLoop(source, be))

	if len(source.resolved) != 1 {
		t.Fatalf("resolved %d times, want exactly 1", len(source.resolved))
	}
	res := source.resolved[0]
	if res.status != "completed" || res.id != "42" {
		t.Fatalf("got %s/%s, want completed/42", res.status, res.id)
	}
	if got := res.result.Translations["en"]; got != "Hello, good morning" {
		t.Fatalf("translations[en] = %q", got)
	}
	if res.result.DetectedLanguage != "ko" {
		t.Fatalf("detected language = %q, want ko", res.result.DetectedLanguage)
	}
	if be.calls != 1 {
		t.Fatalf("backend called %d times, want 1", be.calls)
	}
	if !source.closed {
		t.Fatal("source not closed on shutdown")
	}
}

func TestFilteredJobSkipsBackend(t *testing.T) {
	source := &fakeSource{
		ids: []string{"7"},
		jobs: map[string]*model.Job{
			"7": {ID: "7", Text: "ㅋㅋㅋㅋㅋㅋ", TargetLanguages: []string{"en"}},
		},
	}
	be := &fakeBackend{}
	runLoop(t, newTestLoop(source, be))

	if be.calls != 0 {
		t.Fatalf("backend called %d times for a filtered job", be.calls)
	}
	if len(source.resolved) != 1 {
		t.Fatalf("resolved %d times, want 1", len(source.resolved))
	}
	res := source.resolved[0]
	if res.status != "completed" {
		t.Fatalf("filtered job resolved %s, want completed", res.status)
	}
	if !res.result.Filtered || res.result.FilterReason != "Only consonants/vowels" {
		t.Fatalf("filtered=%v reason=%q", res.result.Filtered, res.result.FilterReason)
	}
	if len(res.result.Translations) != 0 {
		t.Fatalf("filtered job has translations: %v", res.result.Translations)
	}
	if res.result.DetectedLanguage != "unknown" {
		t.Fatalf("detected language = %q, want unknown", res.result.DetectedLanguage)
	}
}

func TestBackendTotalFailureResolvesFailed(t *testing.T) {
	source := &fakeSource{
		ids: []string{"9"},
		jobs: map[string]*model.Job{
			"9": {ID: "9", Text: "오늘 날씨가 정말 좋네요", TargetLanguages: []string{"en", "ja"}},
		},
	}
	be := &fakeBackend{err: backend.ErrAllTargetsFailed}
	runLoop(t, newTestLoop(source, be))

	if len(source.resolved) != 1 {
		t.Fatalf("resolved %d times, want 1", len(source.resolved))
	}
	res := source.resolved[0]
	if res.status != "failed" {
		t.Fatalf("resolved %s, want failed", res.status)
	}
	if res.reason == "" {
		t.Fatal("failure event carries no reason")
	}
}

func TestMissingJobDataResolvesFailed(t *testing.T) {
	source := &fakeSource{ids: []string{"gone"}, jobs: map[string]*model.Job{}}
	be := &fakeBackend{}
	runLoop(t, newTestLoop(source, be))

	if be.calls != 0 {
		t.Fatal("backend called for a job with no payload")
	}
	if len(source.resolved) != 1 || source.resolved[0].status != "failed" {
		t.Fatalf("resolved = %+v, want one failed resolution", source.resolved)
	}
}

func TestClaimTimeoutHasNoSideEffects(t *testing.T) {
	// three empty claim slots, then one real job
	source := &fakeSource{
		ids: []string{"", "", "", "5"},
		jobs: map[string]*model.Job{
			"5": {ID: "5", Text: "밥 먹었어요?", TargetLanguages: []string{"en"}},
		},
	}
	be := &fakeBackend{result: &backend.Result{Translations: map[string]string{"en": "Have you eaten?"}}}
	runLoop(t, newTestLoop(source, be))

	if len(source.resolved) != 1 {
		t.Fatalf("resolved %d times, want 1 (timeouts must not resolve)", len(source.resolved))
	}
	if source.resolved[0].id != "5" || source.resolved[0].status != "completed" {
		t.Fatalf("resolved = %+v", source.resolved[0])
	}
}

func TestSentenceSeparatorStrippedBeforeDetection(t *testing.T) {
	source := &fakeSource{
		ids: []string{"11"},
		jobs: map[string]*model.Job{
			"11": {ID: "11", Text: "오늘 날씨가 좋네요", TargetLanguages: []string{"en"}},
		},
	}
	be := &fakeBackend{result: &backend.Result{Translations: map[string]string{"en": "ok"}}}
	runLoop(t, newTestLoop(source, be))

	if be.lastSrc != "ko" {
		t.Fatalf("source language passed to backend = %q, want ko", be.lastSrc)
	}
	if len(be.lastLangs) != 1 || be.lastLangs[0] != "en" {
		t.Fatalf("target languages = %v", be.lastLangs)
	}
}
