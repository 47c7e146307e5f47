// Package queue implements the job source over the shared Redis queue. The
// key layout is compatible with the Bull job-queue format: job ids wait in a
// per-queue list, move atomically to an active list on claim, and the payload
// lives under the per-job hash key's data field.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"transpipe/internal/model"
)

// Statuses of the two terminal events published on the results channel.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// ErrJobDataMissing reports a claimed id whose payload hash is absent. The
// caller must treat this as a job failure, not as "no job".
var ErrJobDataMissing = errors.New("job data missing")

// Source wraps one Redis connection and exposes atomic claim, payload fetch,
// and the two resolution operations. Each worker loop owns its own Source.
type Source struct {
	client  *redis.Client
	queue   string
	channel string
}

// Options carries the connection parameters for Open.
type Options struct {
	Addr     string
	Password string
	DB       int
	Queue    string
	Channel  string
}

// Open connects to Redis and returns a Source bound to one queue.
func Open(opts Options) *Source {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	return New(client, opts.Queue, opts.Channel)
}

// New wraps an existing client; used by Open and by the dev CLI.
func New(client *redis.Client, queue, channel string) *Source {
	return &Source{client: client, queue: queue, channel: channel}
}

// WaitKey returns the list of job ids waiting to be claimed.
func (s *Source) WaitKey() string { return fmt.Sprintf("bull:%s:wait", s.queue) }

// ActiveKey returns the list of in-flight claims.
func (s *Source) ActiveKey() string { return fmt.Sprintf("bull:%s:active", s.queue) }

// JobKey returns the hash key holding one job's payload.
func (s *Source) JobKey(id string) string { return fmt.Sprintf("bull:%s:%s", s.queue, id) }

// Claim blocks up to timeout for a job id and atomically moves it from the
// wait list to the active list. A timeout is normal flow control: it returns
// ok=false with a nil error and no side effects.
func (s *Source) Claim(ctx context.Context, timeout time.Duration) (string, bool, error) {
	id, err := s.client.BRPopLPush(ctx, s.WaitKey(), s.ActiveKey(), timeout).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("claim: %w", err)
	}
	return id, true, nil
}

// Fetch reads and decodes the claimed job's payload.
func (s *Source) Fetch(ctx context.Context, id string) (*model.Job, error) {
	data, err := s.client.HGet(ctx, s.JobKey(id), "data").Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrJobDataMissing, s.JobKey(id))
	}
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", id, err)
	}
	return DecodeJob(id, []byte(data))
}

// DecodeJob parses a payload as stored in the queue hash. The stored document
// may omit the id (Bull keys the hash by id), so the claimed id wins.
func DecodeJob(id string, data []byte) (*model.Job, error) {
	var job model.Job
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("decode job %s: %w", id, err)
	}
	job.ID = id
	if job.Text == "" {
		return nil, fmt.Errorf("decode job %s: empty text", id)
	}
	if len(job.TargetLanguages) == 0 {
		return nil, fmt.Errorf("decode job %s: no target languages", id)
	}
	return &job, nil
}

// resultEnvelope is the JSON message consumers of the results channel see.
type resultEnvelope struct {
	JobID  string                   `json:"jobId"`
	Result *model.TranslationResult `json:"result"`
	Status string                   `json:"status"`
}

// ResolveOk removes the id from the active list and publishes the completion
// event. Removal is idempotent: LREM of an absent id is a no-op.
func (s *Source) ResolveOk(ctx context.Context, id string, result *model.TranslationResult) error {
	return s.resolve(ctx, resultEnvelope{JobID: id, Result: result, Status: StatusCompleted})
}

// ResolveFail removes the id from the active list and publishes the failure
// event, carrying whatever partial result exists.
func (s *Source) ResolveFail(ctx context.Context, id, reason string, partial *model.TranslationResult) error {
	if partial == nil {
		partial = &model.TranslationResult{ID: id, Filtered: false, FilterReason: reason}
	} else if partial.FilterReason == "" {
		partial.FilterReason = reason
	}
	return s.resolve(ctx, resultEnvelope{JobID: id, Result: partial, Status: StatusFailed})
}

// resolve is the single resolution path: the active-list removal lives here
// and only here, so no caller can forget it and leak the claim.
func (s *Source) resolve(ctx context.Context, env resultEnvelope) error {
	if err := s.client.LRem(ctx, s.ActiveKey(), 0, env.JobID).Err(); err != nil {
		return fmt.Errorf("remove %s from active: %w", env.JobID, err)
	}
	payload, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal result for %s: %w", env.JobID, err)
	}
	if err := s.client.Publish(ctx, s.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish result for %s: %w", env.JobID, err)
	}
	return nil
}

// Enqueue writes the job hash and pushes the id onto the wait list, in the
// shape the producers use. Intended for tooling and tests.
func (s *Source) Enqueue(ctx context.Context, job *model.Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job %s: %w", job.ID, err)
	}
	if err := s.client.HSet(ctx, s.JobKey(job.ID), "data", data).Err(); err != nil {
		return fmt.Errorf("store job %s: %w", job.ID, err)
	}
	if err := s.client.LPush(ctx, s.WaitKey(), job.ID).Err(); err != nil {
		return fmt.Errorf("push job %s to wait: %w", job.ID, err)
	}
	return nil
}

// Depths reports the wait and active list lengths.
func (s *Source) Depths(ctx context.Context) (wait, active int64, err error) {
	wait, err = s.client.LLen(ctx, s.WaitKey()).Result()
	if err != nil {
		return 0, 0, err
	}
	active, err = s.client.LLen(ctx, s.ActiveKey()).Result()
	if err != nil {
		return 0, 0, err
	}
	return wait, active, nil
}

// RequeueActive moves every id on the active list back onto the wait list
// and reports how many it moved. Used by tooling to recover claims leaked by
// crashed workers.
func (s *Source) RequeueActive(ctx context.Context) (int, error) {
	moved := 0
	for {
		_, err := s.client.RPopLPush(ctx, s.ActiveKey(), s.WaitKey()).Result()
		if err == redis.Nil {
			return moved, nil
		}
		if err != nil {
			return moved, err
		}
		moved++
	}
}

// Subscribe opens a pub/sub subscription on the results channel. The caller
// owns the returned subscription.
func (s *Source) Subscribe(ctx context.Context) *redis.PubSub {
	return s.client.Subscribe(ctx, s.channel)
}

// Close releases the connection.
func (s *Source) Close() error {
	return s.client.Close()
}
