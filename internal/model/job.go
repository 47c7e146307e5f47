// Package model contains the job and result types shared across packages.
package model

import "encoding/json"

// PreprocessOptions is the set of per-job pipeline switches. The JSON field
// names are camelCase because the producer (the Node.js gateway) writes them
// that way into the queue payload. Options are never mutated after decode.
type PreprocessOptions struct {
	ExpandAbbreviations bool `json:"expandAbbreviations"`
	FilterProfanity     bool `json:"filterProfanity"`
	NormalizeRepeats    bool `json:"normalizeRepeats"`
	RemoveEmoticons     bool `json:"removeEmoticons"`
	FixTypos            bool `json:"fixTypos"`
	AddSpacing          bool `json:"addSpacing"`
}

// DefaultPreprocessOptions returns the option set applied when a job carries
// no explicit options.
func DefaultPreprocessOptions() PreprocessOptions {
	return PreprocessOptions{
		ExpandAbbreviations: true,
		FilterProfanity:     false,
		NormalizeRepeats:    true,
		RemoveEmoticons:     true,
		FixTypos:            true,
		AddSpacing:          true,
	}
}

// UnmarshalJSON fills in defaults first so a payload that sets only some of
// the switches keeps the documented defaults for the rest.
func (o *PreprocessOptions) UnmarshalJSON(data []byte) error {
	type alias PreprocessOptions
	tmp := alias(DefaultPreprocessOptions())
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*o = PreprocessOptions(tmp)
	return nil
}

// Job is one translation request unit pulled off the queue. Identity is the
// queue-assigned id; the struct is immutable once claimed and owned by the
// worker loop that claimed it until resolution.
type Job struct {
	ID              string             `json:"id"`
	Text            string             `json:"text"`
	TargetLanguages []string           `json:"targetLanguages"`
	Options         *PreprocessOptions `json:"options,omitempty"`
	CreatedAt       int64              `json:"createdAt"`
}

// EffectiveOptions returns the job's options, or the defaults when absent.
func (j *Job) EffectiveOptions() PreprocessOptions {
	if j.Options == nil {
		return DefaultPreprocessOptions()
	}
	return *j.Options
}

// PipelineOutcome is the verdict of the preprocessing pipeline for one text.
// When Filtered is true, Text holds the partially-processed pre-filter string
// and no translation call may be made for the job.
type PipelineOutcome struct {
	Text         string
	Filtered     bool
	FilterReason string
}

// TranslationResult is produced exactly once per job and becomes the payload
// of the completion event. Translations is empty for filtered jobs.
type TranslationResult struct {
	ID               string            `json:"id"`
	OriginalText     string            `json:"original_text"`
	PreprocessedText string            `json:"preprocessed_text"`
	Translations     map[string]string `json:"translations"`
	DetectedLanguage string            `json:"detected_language"`
	ProcessingTime   float64           `json:"processing_time"`
	Filtered         bool              `json:"filtered"`
	FilterReason     string            `json:"filter_reason,omitempty"`
}
