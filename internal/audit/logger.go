// Package audit writes a best-effort CSV trail of every translation. It is a
// side channel: a full buffer drops the record rather than ever blocking a
// worker loop, and write errors are logged and forgotten.
package audit

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

// recordsPerFile caps each split file so downstream spreadsheet tooling stays
// responsive; a daily _all file keeps the full trail.
const recordsPerFile = 100

const bufferSize = 1000

var header = []string{
	"timestamp",
	"original_text",
	"translated_text",
	"processing_time_ms",
	"preprocessed_text",
	"source_language",
	"target_language",
	"translate_processing_time_ms",
	"translate_llm_time_ms",
	"translate_cache_hit_time_ms",
	"filtered",
	"filter_reason",
}

// Record is one audit row; one row per (job, target language).
type Record struct {
	Timestamp                 time.Time
	OriginalText              string
	TranslatedText            string
	ProcessingTimeMs          float64
	PreprocessedText          string
	SourceLanguage            string
	TargetLanguage            string
	TranslateProcessingTimeMs float64
	TranslateLLMTimeMs        float64
	TranslateCacheHitTimeMs   float64
	Filtered                  bool
	FilterReason              string
}

// Logger buffers records through a channel into a background writer.
type Logger struct {
	dir     string
	ch      chan Record
	done    chan struct{}
	started sync.Once
	stopped sync.Once

	splitCount int // records already in the current split file
	splitSeq   int
}

// New builds a Logger writing under dir.
func New(dir string) *Logger {
	return &Logger{
		dir:      dir,
		ch:       make(chan Record, bufferSize),
		done:     make(chan struct{}),
		splitSeq: 1,
	}
}

// Start launches the background writer once.
func (l *Logger) Start() {
	l.started.Do(func() {
		go l.writeLoop()
	})
}

// Log enqueues a record; when the buffer is full the record is dropped.
func (l *Logger) Log(rec Record) {
	select {
	case l.ch <- rec:
	default:
		log.Printf("audit buffer full, dropping record for %q", rec.OriginalText)
	}
}

// Close drains the buffer and stops the writer.
func (l *Logger) Close() {
	l.stopped.Do(func() {
		close(l.ch)
		<-l.done
	})
}

func (l *Logger) writeLoop() {
	defer close(l.done)
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		log.Printf("audit dir: %v", err)
		for range l.ch {
			// Drain so producers never stall on a dead sink.
		}
		return
	}
	for rec := range l.ch {
		row := rec.row()
		day := rec.Timestamp.Format("2006-01-02")
		if err := l.appendRow(l.allFile(day), row); err != nil {
			log.Printf("audit write: %v", err)
		}
		if err := l.appendRow(l.splitFile(day), row); err != nil {
			log.Printf("audit write: %v", err)
		} else if l.splitCount++; l.splitCount >= recordsPerFile {
			l.splitCount = 0
			l.splitSeq++
		}
	}
}

func (l *Logger) allFile(day string) string {
	return filepath.Join(l.dir, fmt.Sprintf("translations_%s_all.csv", day))
}

func (l *Logger) splitFile(day string) string {
	return filepath.Join(l.dir, fmt.Sprintf("translations_%s_%03d.csv", day, l.splitSeq))
}

func (l *Logger) appendRow(path string, row []string) error {
	_, statErr := os.Stat(path)
	fresh := os.IsNotExist(statErr)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if fresh {
		if err := w.Write(header); err != nil {
			return err
		}
	}
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func (r Record) row() []string {
	return []string{
		r.Timestamp.Format(time.RFC3339),
		r.OriginalText,
		r.TranslatedText,
		formatMs(r.ProcessingTimeMs),
		r.PreprocessedText,
		r.SourceLanguage,
		r.TargetLanguage,
		formatMs(r.TranslateProcessingTimeMs),
		formatMs(r.TranslateLLMTimeMs),
		formatMs(r.TranslateCacheHitTimeMs),
		strconv.FormatBool(r.Filtered),
		r.FilterReason,
	}
}

func formatMs(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
