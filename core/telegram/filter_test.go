package telegram

import (
	"regexp"
	"testing"

	tele "gopkg.in/telebot.v4"
)

func TestTextOnly(t *testing.T) {
	f := TextOnly()
	cases := []struct {
		text string
		want bool
	}{
		{"hello", true},
		{"  padded  ", true},
		{"/ping", false},
		{"  /ping", false},
		{"", false},
		{"   ", false},
	}
	for _, tc := range cases {
		if got := f.Match(&tele.Message{Text: tc.text}); got != tc.want {
			t.Errorf("TextOnly(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
	if f.Match(nil) {
		t.Error("TextOnly matched nil message")
	}
}

func TestRegexFilter(t *testing.T) {
	f := Regex(regexp.MustCompile(`^\d+$`))
	if !f.Match(&tele.Message{Text: "12345"}) {
		t.Error("regex filter missed matching text")
	}
	if f.Match(&tele.Message{Text: "12a45"}) {
		t.Error("regex filter matched non-matching text")
	}
	if f.Match(nil) {
		t.Error("regex filter matched nil message")
	}
}
