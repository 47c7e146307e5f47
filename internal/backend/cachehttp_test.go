package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestCacheHTTPSuccessCarriesTimings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("translator"); got != "vllm" {
			t.Fatalf("translator query = %q", got)
		}
		var req cacheRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if !req.UseCache || req.CacheStrategy != "hybrid" || len(req.TargetLangs) != 1 {
			t.Fatalf("unexpected request: %+v", req)
		}
		_ = json.NewEncoder(w).Encode(cacheResponse{
			Success:           true,
			Translations:      map[string]string{req.TargetLangs[0]: "hello"},
			ProcessingTimeMs:  12.5,
			CacheLookupTimeMs: 0.2,
			LLMResponseTimeMs: map[string]float64{req.TargetLangs[0]: 11.1},
		})
	}))
	defer srv.Close()

	c := NewCacheHTTP(srv.URL, time.Second)
	result, err := c.Translate(context.Background(), "안녕", "ko", []string{"en"})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if result.Translations["en"] != "hello" {
		t.Fatalf("translation = %q", result.Translations["en"])
	}
	if result.ProcessingTimeMs != 12.5 || result.CacheHitTimeMs != 0.2 || result.LLMTimeMs != 11.1 {
		t.Fatalf("timings = %+v", result)
	}
}

func TestCacheHTTPInnerFailureFlagRaises(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// HTTP 200, but the body reports a failure: must become an error
		// marker, not a silent bogus translation.
		_ = json.NewEncoder(w).Encode(cacheResponse{Success: false, ErrorMessage: "cache backend down"})
	}))
	defer srv.Close()

	c := NewCacheHTTP(srv.URL, time.Second)
	result, err := c.Translate(context.Background(), "안녕", "ko", []string{"en"})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	marker := result.Translations["en"]
	if !strings.Contains(marker, "cache backend down") || !strings.HasPrefix(marker, "[Translation Error:") {
		t.Fatalf("marker = %q", marker)
	}
}

func TestCacheHTTPMissingLanguageEntry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(cacheResponse{Success: true, Translations: map[string]string{}})
	}))
	defer srv.Close()

	c := NewCacheHTTP(srv.URL, time.Second)
	result, err := c.Translate(context.Background(), "안녕", "ko", []string{"th"})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if _, ok := result.Translations["th"]; !ok {
		t.Fatalf("th entry missing; every requested language must appear")
	}
}
