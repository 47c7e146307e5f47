package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"transpipe/internal/audit"
	"transpipe/internal/backend"
	"transpipe/internal/config"
	"transpipe/internal/metrics"
	"transpipe/internal/preprocess"
	"transpipe/internal/queue"
)

// Pool runs the configured number of worker loops, each with its own Redis
// connection and backend client so a slow backend call never stalls a
// sibling.
type Pool struct {
	cfg      *config.Config
	pipeline *preprocess.Pipeline
	auditLog *audit.Logger
}

// NewPool builds a pool. auditLog may be nil when auditing is disabled.
func NewPool(cfg *config.Config, pipeline *preprocess.Pipeline, auditLog *audit.Logger) *Pool {
	return &Pool{cfg: cfg, pipeline: pipeline, auditLog: auditLog}
}

// Run constructs every loop up front, then blocks until ctx is cancelled and
// all loops have drained. A backend that cannot be constructed at startup is
// a fatal error; already-built loops are torn down before returning it.
func (p *Pool) Run(ctx context.Context) error {
	counters := metrics.NewCounters()

	loops := make([]*Loop, 0, p.cfg.Workers)
	for i := 1; i <= p.cfg.Workers; i++ {
		translator, err := backend.New(ctx, backend.Config{
			UseOllama:     p.cfg.UseOllama,
			UseGRPC:       p.cfg.UseGRPC,
			OllamaURL:     p.cfg.OllamaURL,
			OllamaModel:   p.cfg.OllamaModel,
			OllamaTimeout: p.cfg.OllamaTimeout,
			CacheURL:      p.cfg.CacheURL,
			CacheGRPCAddr: p.cfg.CacheGRPCAddr,
			CacheTimeout:  p.cfg.CacheTimeout,
		})
		if err != nil {
			for _, l := range loops {
				_ = l.source.Close()
				_ = l.translator.Close()
			}
			return fmt.Errorf("worker-%d backend: %w", i, err)
		}
		source := queue.Open(queue.Options{
			Addr:     p.cfg.RedisAddr,
			Password: p.cfg.RedisPassword,
			DB:       p.cfg.RedisDB,
			Queue:    p.cfg.Queue,
			Channel:  p.cfg.ResultsChannel,
		})
		loops = append(loops, NewLoop(i, source, translator, p.pipeline, counters, p.auditLog, p.cfg.ClaimTimeout))
	}

	reporter := metrics.NewReporter(counters, time.Second)
	go reporter.Run(ctx)

	var wg sync.WaitGroup
	for _, l := range loops {
		wg.Add(1)
		go func(l *Loop) {
			defer wg.Done()
			l.Run(ctx)
		}(l)
	}
	wg.Wait()
	return nil
}
