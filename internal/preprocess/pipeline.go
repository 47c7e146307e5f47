// Package preprocess implements the ordered normalization and filtering
// pipeline applied to each job's text before translation. The pipeline is a
// pure function of (text, options); the only external calls go through the
// normalizer contract, and every one of them degrades gracefully.
package preprocess

import (
	"context"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"transpipe/internal/model"
	"transpipe/internal/normalizer"
)

// SentenceSeparator joins segmented sentences so the backend can resplit
// without ambiguity; it never occurs in chat text.
const SentenceSeparator = "|||"

// DefaultMaxLength is the rune cap above which a text is not worth translating.
const DefaultMaxLength = 200

var (
	markupRe      = regexp.MustCompile(`<[^>]+>`)
	nickSuffixRe  = regexp.MustCompile(`\(\d+\)`)
	bracketTagRe  = regexp.MustCompile(`\[[^\]]+\]`)
	emoticonRe    = regexp.MustCompile(`/[^/]+/`)
	onlySpecialRe = regexp.MustCompile(`^[^\p{L}\p{N}_]+$`)
	onlyJamoRe    = regexp.MustCompile(`^[ㄱ-ㅎㅏ-ㅣ\s]+$`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
	profanityRe   = regexp.MustCompile(`시발|씨발|병신|ㅈ같|ㅆ발|ㅂ신`)
)

// ProtectRule re-joins a pair the spacing normalizer should not have split.
type ProtectRule struct {
	Spaced string
	Joined string
}

// Pipeline holds the per-process pipeline configuration. It is stateless per
// call and safe for concurrent use by all worker loops.
type Pipeline struct {
	norm      normalizer.Normalizer
	maxLength int
	protect   []ProtectRule
}

// New builds a Pipeline. A nil normalizer degrades to the pass-through Noop.
func New(norm normalizer.Normalizer, maxLength int, protect []ProtectRule) *Pipeline {
	if norm == nil {
		norm = normalizer.Noop{}
	}
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	if protect == nil {
		protect = DefaultProtectRules()
	}
	return &Pipeline{norm: norm, maxLength: maxLength, protect: protect}
}

// Run executes every stage in order and returns the outcome. When the text is
// filtered out, the returned outcome carries the partially-processed text and
// the caller must not translate it.
func (p *Pipeline) Run(ctx context.Context, text string, opts model.PreprocessOptions) model.PipelineOutcome {
	text = markupRe.ReplaceAllString(text, "")

	if reason, filtered := filterCheck(text, p.maxLength); filtered {
		return model.PipelineOutcome{Text: text, Filtered: true, FilterReason: reason}
	}

	text = strings.TrimSpace(bracketTagRe.ReplaceAllString(nickSuffixRe.ReplaceAllString(text, ""), ""))

	if opts.NormalizeRepeats {
		text = NormalizeRepeats(text)
	}
	if opts.RemoveEmoticons {
		text = emoticonRe.ReplaceAllString(text, "")
	}
	if opts.ExpandAbbreviations {
		text = replaceTokens(text, consonantAbbr)
		text = strings.TrimSpace(replaceTokens(text, slangDict))
	}
	if opts.FixTypos {
		text = p.fixTypos(ctx, text)
	}
	if opts.AddSpacing {
		text = p.addSpacing(ctx, text)
	}
	if opts.FilterProfanity {
		// Redacts only; profanity never rejects a message by itself.
		text = maskProfanity(text)
	}

	text = strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
	if text == "" {
		return model.PipelineOutcome{Text: text, Filtered: true, FilterReason: "Too short after preprocessing"}
	}

	if joined, err := p.segment(ctx, text); err == nil {
		text = joined
	}
	// Segmentation failure falls back to the unsegmented text; it never
	// fails the job.

	return model.PipelineOutcome{Text: text}
}

func filterCheck(text string, maxLength int) (string, bool) {
	trimmed := strings.TrimSpace(text)
	switch n := utf8.RuneCountInString(trimmed); {
	case n <= 1:
		return "Too short", true
	case n > maxLength:
		return "Too long", true
	}
	if onlySpecialRe.MatchString(trimmed) {
		return "Only special characters", true
	}
	if onlyJamoRe.MatchString(trimmed) {
		return "Only consonants/vowels", true
	}
	return "", false
}

func (p *Pipeline) fixTypos(ctx context.Context, text string) string {
	fields := strings.Fields(text)
	for i, f := range fields {
		if !containsHangulSyllable(f) {
			continue
		}
		if corrected, err := p.norm.CorrectSpelling(ctx, f); err == nil && corrected != "" {
			fields[i] = corrected
		}
	}
	// The fixed table always runs last within this stage as the safety net
	// for anything the normalizer under- or over-corrected.
	return replaceTokens(strings.Join(fields, " "), typoTable)
}

func (p *Pipeline) addSpacing(ctx context.Context, text string) string {
	spaced, err := p.norm.CorrectSpacing(ctx, text)
	if err != nil || spaced == "" {
		return text
	}
	for _, rule := range p.protect {
		spaced = strings.ReplaceAll(spaced, rule.Spaced, rule.Joined)
	}
	return spaced
}

func (p *Pipeline) segment(ctx context.Context, text string) (string, error) {
	sentences, err := p.norm.SplitSentences(ctx, text)
	if err != nil {
		return "", err
	}
	kept := sentences[:0]
	for _, s := range sentences {
		if s = strings.TrimSpace(s); s != "" {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return text, nil
	}
	return strings.Join(kept, SentenceSeparator), nil
}

func maskProfanity(text string) string {
	text = profanityRe.ReplaceAllString(text, "***")
	return replaceTokens(text, profanityTokens)
}

// replaceTokens rewrites whitespace-separated tokens found in dict, ignoring
// leading and trailing punctuation so "ㅋㅋ!" still matches "ㅋㅋ".
func replaceTokens(text string, dict map[string]string) string {
	fields := strings.Fields(text)
	for i, f := range fields {
		prefix, core, suffix := splitToken(f)
		if repl, ok := dict[core]; ok {
			fields[i] = prefix + repl + suffix
		}
	}
	return strings.Join(fields, " ")
}

func splitToken(tok string) (prefix, core, suffix string) {
	runes := []rune(tok)
	start, end := 0, len(runes)
	for start < end && !isWordRune(runes[start]) {
		start++
	}
	for end > start && !isWordRune(runes[end-1]) {
		end--
	}
	return string(runes[:start]), string(runes[start:end]), string(runes[end:])
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func containsHangulSyllable(s string) bool {
	for _, r := range s {
		if r >= '가' && r <= '힣' {
			return true
		}
	}
	return false
}
