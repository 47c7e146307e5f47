// Package normalizer defines the contract for the external linguistic
// normalization capability (spell correction, spacing correction, sentence
// segmentation). The statistical models behind it run elsewhere; the pipeline
// only ever talks to this interface.
package normalizer

import "context"

// Normalizer is the fixed contract the preprocessing pipeline consumes.
// Implementations must be safe for concurrent use.
type Normalizer interface {
	// CorrectSpelling returns the corrected form of a single word. May
	// under- or over-correct; callers apply their own safety nets.
	CorrectSpelling(ctx context.Context, word string) (string, error)
	// CorrectSpacing returns the text with spacing corrected.
	CorrectSpacing(ctx context.Context, text string) (string, error)
	// SplitSentences segments the text into sentence units.
	SplitSentences(ctx context.Context, text string) ([]string, error)
}

// Noop passes text through unchanged. It is used when no normalizer service
// is configured; the pipeline's fixed-table corrections still apply.
type Noop struct{}

// CorrectSpelling returns the word unchanged.
func (Noop) CorrectSpelling(_ context.Context, word string) (string, error) { return word, nil }

// CorrectSpacing returns the text unchanged.
func (Noop) CorrectSpacing(_ context.Context, text string) (string, error) { return text, nil }

// SplitSentences returns the whole text as a single sentence.
func (Noop) SplitSentences(_ context.Context, text string) ([]string, error) {
	return []string{text}, nil
}
