// Package langdetect wraps statistical language detection for the short,
// noisy chat texts the workers see. Detection is best-effort; callers fall
// back to the queue's default source language when it comes up empty.
package langdetect

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/abadojack/whatlanggo"
)

// minDetectableRunes is the floor below which detection is meaningless noise.
const minDetectableRunes = 3

var nonWordRe = regexp.MustCompile(`[^\p{L}\p{N}\s]`)

// Detect returns the ISO 639-1 code of the text's language, or "" when the
// text is too short or the detector is not confident.
func Detect(text string) string {
	clean := strings.TrimSpace(nonWordRe.ReplaceAllString(text, ""))
	if utf8.RuneCountInString(clean) < minDetectableRunes {
		return ""
	}
	info := whatlanggo.Detect(clean)
	if !info.IsReliable() {
		return ""
	}
	return info.Lang.Iso6391()
}
