package preprocess

import "regexp"

// Repeat normalization for chat spam. RE2 has no backreferences, so the run
// and token collapses are rune scans rather than regexes.

// Oscillating laughter patterns collapse to a canonical doubled form. This
// runs before the single-rune collapse so the collapse cannot partially undo
// it (ㅋㅌㅋㅌ must become ㅋㅋ, not ㅋㅌㅋ).
var oscillations = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`(?:ㅋㅌ)+`), "ㅋㅋ"},
	{regexp.MustCompile(`(?:ㅎㅌ)+`), "ㅎㅎ"},
	{regexp.MustCompile(`(?:ㅋㅎ)+`), "ㅋㅋ"},
}

// runRule caps a run of one repeated rune: runs of at least threshold
// repetitions are rewritten to keep copies.
type runRule struct {
	threshold int
	keep      int
}

func ruleFor(r rune) (runRule, bool) {
	switch {
	case r >= 'ㄱ' && r <= 'ㅎ', r >= 'ㅏ' && r <= 'ㅣ':
		return runRule{threshold: 3, keep: 2}, true
	case r == '!' || r == '?' || r == '~':
		return runRule{threshold: 3, keep: 2}, true
	case r == '.':
		return runRule{threshold: 4, keep: 3}, true
	case r >= '가' && r <= '힣':
		return runRule{threshold: 4, keep: 2}, true
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return runRule{threshold: 4, keep: 2}, true
	case r >= '0' && r <= '9':
		return runRule{threshold: 4, keep: 2}, true
	}
	return runRule{}, false
}

// NormalizeRepeats applies the full repeat-collapse sequence: oscillating
// pairs, repeated multi-character Hangul tokens, then single-rune runs.
func NormalizeRepeats(text string) string {
	for _, o := range oscillations {
		text = o.re.ReplaceAllString(text, o.repl)
	}
	text = collapseRepeatedTokens(text)
	return collapseRuns(text)
}

func collapseRuns(text string) string {
	runes := []rune(text)
	out := make([]rune, 0, len(runes))
	for i := 0; i < len(runes); {
		j := i
		for j < len(runes) && runes[j] == runes[i] {
			j++
		}
		n := j - i
		if rule, ok := ruleFor(runes[i]); ok && n >= rule.threshold {
			n = rule.keep
		}
		for k := 0; k < n; k++ {
			out = append(out, runes[i])
		}
		i = j
	}
	return string(out)
}

// maxTokenLen bounds the repeated-group search; chat spam groups are short.
const maxTokenLen = 10

// collapseRepeatedTokens reduces a Hangul token of two or more syllables
// repeated three or more times in a row to exactly two repetitions
// (노래해노래해노래해 → 노래해노래해). Longer groups win over shorter ones.
func collapseRepeatedTokens(text string) string {
	runes := []rune(text)
	out := make([]rune, 0, len(runes))
	for i := 0; i < len(runes); {
		collapsed := false
		limit := (len(runes) - i) / 3
		if limit > maxTokenLen {
			limit = maxTokenLen
		}
		for l := limit; l >= 2 && !collapsed; l-- {
			if !allHangulSyllables(runes[i : i+l]) {
				continue
			}
			reps := 1
			for i+(reps+1)*l <= len(runes) && equalRunes(runes[i+reps*l:i+(reps+1)*l], runes[i:i+l]) {
				reps++
			}
			if reps >= 3 {
				out = append(out, runes[i:i+l]...)
				out = append(out, runes[i:i+l]...)
				i += reps * l
				collapsed = true
			}
		}
		if !collapsed {
			out = append(out, runes[i])
			i++
		}
	}
	return string(out)
}

func allHangulSyllables(rs []rune) bool {
	for _, r := range rs {
		if r < '가' || r > '힣' {
			return false
		}
	}
	return len(rs) > 0
}

func equalRunes(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
