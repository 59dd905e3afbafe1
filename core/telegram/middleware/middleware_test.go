package middleware

import (
	"errors"
	"strings"
	"testing"

	tele "gopkg.in/telebot.v4"
)

// stubContext implements the methods the middlewares touch; everything else
// panics via the embedded nil interface.
type stubContext struct {
	tele.Context
	kv map[string]any
}

func (s *stubContext) Update() tele.Update { return tele.Update{ID: 7} }
func (s *stubContext) Chat() *tele.Chat    { return nil }
func (s *stubContext) Sender() *tele.User  { return nil }
func (s *stubContext) Text() string        { return "" }

func (s *stubContext) Set(key string, val interface{}) {
	if s.kv == nil {
		s.kv = make(map[string]any)
	}
	s.kv[key] = val
}

func TestRecoverConvertsPanicToError(t *testing.T) {
	h := Recover(func(tele.Context) error {
		panic("boom")
	})

	err := h(&stubContext{})
	if err == nil {
		t.Fatal("expected error from panicking handler")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Fatalf("err = %v, want panic value included", err)
	}
}

func TestRecoverPassesThrough(t *testing.T) {
	want := errors.New("handler failed")
	h := Recover(func(tele.Context) error { return want })
	if err := h(&stubContext{}); !errors.Is(err, want) {
		t.Fatalf("err = %v, want %v", err, want)
	}
}

func TestLoggerPropagatesAndSetsRID(t *testing.T) {
	want := errors.New("downstream")
	called := false
	h := Logger(func(tele.Context) error {
		called = true
		return want
	})

	c := &stubContext{}
	if err := h(c); !errors.Is(err, want) {
		t.Fatalf("err = %v, want %v", err, want)
	}
	if !called {
		t.Fatal("next handler not invoked")
	}
	if _, ok := c.kv["rid"]; !ok {
		t.Fatal("rid not stored on context")
	}
}
