package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Queue != "translation-jobs" {
		t.Fatalf("queue = %q", cfg.Queue)
	}
	if cfg.Workers != 8 {
		t.Fatalf("workers = %d", cfg.Workers)
	}
	if cfg.ClaimTimeout != 100*time.Millisecond {
		t.Fatalf("claim timeout = %v", cfg.ClaimTimeout)
	}
	if !cfg.UseGRPC || cfg.UseOllama {
		t.Fatalf("backend defaults: grpc=%v ollama=%v", cfg.UseGRPC, cfg.UseOllama)
	}
	if cfg.AuditEnabled {
		t.Fatalf("audit should default off")
	}
	if len(cfg.ProtectRules) == 0 {
		t.Fatalf("expected default protect rules")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TRANSPIPE_WORKERS", "3")
	t.Setenv("TRANSPIPE_CLAIM_TIMEOUT", "250ms")
	t.Setenv("TRANSPIPE_USE_GRPC", "false")
	t.Setenv("TRANSPIPE_SPACING_PROTECT", "내일 날씨=내일날씨")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Workers != 3 {
		t.Fatalf("workers = %d", cfg.Workers)
	}
	if cfg.ClaimTimeout != 250*time.Millisecond {
		t.Fatalf("claim timeout = %v", cfg.ClaimTimeout)
	}
	if cfg.UseGRPC {
		t.Fatalf("use_grpc override lost")
	}
	if len(cfg.ProtectRules) != 1 || cfg.ProtectRules[0].Joined != "내일날씨" {
		t.Fatalf("protect rules = %+v", cfg.ProtectRules)
	}
}

func TestLoadRejectsNonsense(t *testing.T) {
	t.Setenv("TRANSPIPE_WORKERS", "-2")
	t.Setenv("TRANSPIPE_MAX_TEXT_LEN", "bogus")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Workers <= 0 {
		t.Fatalf("workers not clamped: %d", cfg.Workers)
	}
	if cfg.MaxTextLength <= 0 {
		t.Fatalf("max length not defaulted: %d", cfg.MaxTextLength)
	}
}
