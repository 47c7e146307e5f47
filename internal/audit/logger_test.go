package audit

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoggerWritesRows(t *testing.T) {
	dir := t.TempDir()
	l := New(dir)
	l.Start()

	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	l.Log(Record{
		Timestamp:      ts,
		OriginalText:   "안녕",
		TranslatedText: "hello",
		SourceLanguage: "ko",
		TargetLanguage: "en",
	})
	l.Log(Record{
		Timestamp:    ts,
		OriginalText: "ㅋㅋㅋ",
		Filtered:     true,
		FilterReason: "Only consonants/vowels",
	})
	l.Close()

	path := filepath.Join(dir, "translations_2025-03-01_all.csv")
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 3 { // header + 2 records
		t.Fatalf("row count = %d, want 3", len(rows))
	}
	if rows[0][0] != "timestamp" {
		t.Fatalf("header = %v", rows[0])
	}
	if rows[1][1] != "안녕" || rows[1][2] != "hello" {
		t.Fatalf("first record = %v", rows[1])
	}
	if rows[2][10] != "true" || rows[2][11] != "Only consonants/vowels" {
		t.Fatalf("filtered record = %v", rows[2])
	}
}

func TestLoggerNeverBlocksWhenFull(t *testing.T) {
	l := New(t.TempDir())
	// Writer not started: the buffer fills, then Log must keep returning.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < bufferSize*2; i++ {
			l.Log(Record{Timestamp: time.Now(), OriginalText: "x"})
		}
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("Log blocked on a full buffer")
	}
}
