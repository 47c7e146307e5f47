package langdetect

import "testing"

func TestDetectKorean(t *testing.T) {
	if got := Detect("안녕하세요 오늘 날씨가 정말 좋네요"); got != "ko" {
		t.Fatalf("Detect = %q, want ko", got)
	}
}

func TestDetectTooShort(t *testing.T) {
	cases := []string{"", "!!", "ㅋ?", "  . "}
	for _, text := range cases {
		if got := Detect(text); got != "" {
			t.Fatalf("Detect(%q) = %q, want empty", text, got)
		}
	}
}

func TestDetectStripsSeparators(t *testing.T) {
	// The sentence separator and punctuation must not confuse detection.
	if got := Detect("안녕하세요 반갑습니다 좋은 하루"); got != "ko" {
		t.Fatalf("Detect = %q, want ko", got)
	}
}
