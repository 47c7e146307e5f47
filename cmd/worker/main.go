package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"transpipe/internal/audit"
	"transpipe/internal/config"
	"transpipe/internal/normalizer"
	"transpipe/internal/preprocess"
	"transpipe/internal/worker"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	var norm normalizer.Normalizer = normalizer.Noop{}
	if cfg.NormalizerURL != "" {
		norm = normalizer.NewClient(cfg.NormalizerURL, cfg.NormalizerTimeout)
	} else {
		log.Printf("no normalizer configured, spelling/spacing/segmentation pass through")
	}
	pipeline := preprocess.New(norm, cfg.MaxTextLength, cfg.ProtectRules)

	var auditLog *audit.Logger
	if cfg.AuditEnabled {
		auditLog = audit.New(cfg.AuditDir)
		auditLog.Start()
		defer auditLog.Close()
	}

	pool := worker.NewPool(cfg, pipeline, auditLog)
	log.Printf("starting %d workers on queue %q", cfg.Workers, cfg.Queue)
	if err := pool.Run(ctx); err != nil {
		log.Printf("worker pool stopped: %v", err)
		os.Exit(1)
	}
}
