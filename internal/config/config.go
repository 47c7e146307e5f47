// Package config centralizes how the worker reads environment variables and
// exposes them as strongly typed values. A .env file in the working directory
// is honored when present, matching how the rest of the deployment configures
// its services.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"transpipe/internal/preprocess"
)

// Config represents the full runtime configuration surface.
type Config struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	Queue          string
	ResultsChannel string
	Workers        int
	ClaimTimeout   time.Duration

	MaxTextLength     int
	ProtectRules      []preprocess.ProtectRule
	NormalizerURL     string
	NormalizerTimeout time.Duration

	UseOllama     bool
	UseGRPC       bool
	OllamaURL     string
	OllamaModel   string
	OllamaTimeout time.Duration
	CacheURL      string
	CacheGRPCAddr string
	CacheTimeout  time.Duration

	AuditEnabled bool
	AuditDir     string
}

const (
	defaultRedisAddr      = "localhost:6379"
	defaultQueue          = "translation-jobs"
	defaultResultsChannel = "bull:translation-results:jobId"
	defaultWorkers        = 8
	defaultClaimTimeout   = 100 * time.Millisecond
	defaultOllamaURL      = "http://localhost:11434/api/chat"
	defaultOllamaModel    = "zongwei/gemma3-translator:1b"
	defaultAuditDir       = "logs/translations"
	defaultNetTimeout     = 30 * time.Second
)

// Load reads configuration from the environment, falling back to defaults.
func Load() (*Config, error) {
	// Missing .env is fine; explicit environment always wins.
	_ = godotenv.Load()

	cfg := &Config{
		RedisAddr:     readEnv("TRANSPIPE_REDIS_ADDR", defaultRedisAddr),
		RedisPassword: readEnv("TRANSPIPE_REDIS_PASSWORD", ""),
		RedisDB:       parseInt("TRANSPIPE_REDIS_DB", 0),

		Queue:          readEnv("TRANSPIPE_QUEUE", defaultQueue),
		ResultsChannel: readEnv("TRANSPIPE_RESULTS_CHANNEL", defaultResultsChannel),
		Workers:        parseInt("TRANSPIPE_WORKERS", defaultWorkers),
		ClaimTimeout:   parseDuration("TRANSPIPE_CLAIM_TIMEOUT", defaultClaimTimeout),

		MaxTextLength:     parseInt("TRANSPIPE_MAX_TEXT_LEN", preprocess.DefaultMaxLength),
		ProtectRules:      parseProtectRules("TRANSPIPE_SPACING_PROTECT"),
		NormalizerURL:     readEnv("TRANSPIPE_NORMALIZER_URL", ""),
		NormalizerTimeout: parseDuration("TRANSPIPE_NORMALIZER_TIMEOUT", 10*time.Second),

		UseOllama:     parseBool("TRANSPIPE_USE_OLLAMA", false),
		UseGRPC:       parseBool("TRANSPIPE_USE_GRPC", true),
		OllamaURL:     readEnv("TRANSPIPE_OLLAMA_URL", defaultOllamaURL),
		OllamaModel:   readEnv("TRANSPIPE_OLLAMA_MODEL", defaultOllamaModel),
		OllamaTimeout: parseDuration("TRANSPIPE_OLLAMA_TIMEOUT", defaultNetTimeout),
		CacheURL:      readEnv("TRANSPIPE_CACHE_URL", ""),
		CacheGRPCAddr: readEnv("TRANSPIPE_CACHE_GRPC_ADDR", ""),
		CacheTimeout:  parseDuration("TRANSPIPE_CACHE_TIMEOUT", defaultNetTimeout),

		AuditEnabled: parseBool("TRANSPIPE_AUDIT_ENABLED", false),
		AuditDir:     readEnv("TRANSPIPE_AUDIT_DIR", defaultAuditDir),
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	if cfg.ClaimTimeout <= 0 {
		cfg.ClaimTimeout = defaultClaimTimeout
	}
	if cfg.MaxTextLength <= 0 {
		cfg.MaxTextLength = preprocess.DefaultMaxLength
	}
	return cfg, nil
}

func readEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func parseInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func parseBool(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func parseDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}

// parseProtectRules reads a comma list of spaced=joined pairs, e.g.
// "오늘 날씨=오늘날씨,어제 날씨=어제날씨". Absent or malformed input keeps the
// built-in defaults.
func parseProtectRules(key string) []preprocess.ProtectRule {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return preprocess.DefaultProtectRules()
	}
	var rules []preprocess.ProtectRule
	for _, pair := range strings.Split(v, ",") {
		spaced, joined, found := strings.Cut(pair, "=")
		spaced = strings.TrimSpace(spaced)
		joined = strings.TrimSpace(joined)
		if !found || spaced == "" || joined == "" {
			continue
		}
		rules = append(rules, preprocess.ProtectRule{Spaced: spaced, Joined: joined})
	}
	if len(rules) == 0 {
		return preprocess.DefaultProtectRules()
	}
	return rules
}
