package telegram

import (
	"regexp"
	"strings"

	tele "gopkg.in/telebot.v4"
)

// Filter decides whether an incoming message should reach a handler.
// Implementations must be safe to call from the dispatch goroutine.
type Filter interface {
	Match(m *tele.Message) bool
}

// FilterFunc adapts a bare predicate to the Filter interface.
type FilterFunc func(m *tele.Message) bool

// Match executes the underlying predicate.
func (f FilterFunc) Match(m *tele.Message) bool {
	return f(m)
}

// TextOnly matches messages carrying non-empty text that is not a command.
func TextOnly() Filter {
	return FilterFunc(func(m *tele.Message) bool {
		if m == nil {
			return false
		}
		text := strings.TrimSpace(m.Text)
		return text != "" && !strings.HasPrefix(text, "/")
	})
}

// Regex matches message text against the compiled pattern.
func Regex(re *regexp.Regexp) Filter {
	return FilterFunc(func(m *tele.Message) bool {
		return m != nil && re.MatchString(m.Text)
	})
}
