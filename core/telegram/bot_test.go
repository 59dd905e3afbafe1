package telegram

import (
	"errors"
	"strings"
	"testing"

	coreconfig "github.com/samedamci/telegrask/core/config"
	"github.com/samedamci/telegrask/core/telegram/help"

	tele "gopkg.in/telebot.v4"
)

// stubContext implements the handful of tele.Context methods dispatch and
// handlers touch; everything else panics via the embedded nil interface.
type stubContext struct {
	tele.Context
	msg   *tele.Message
	query *tele.Query
	sent  []string
}

func (s *stubContext) Message() *tele.Message { return s.msg }

func (s *stubContext) Text() string {
	if s.msg == nil {
		return ""
	}
	return s.msg.Text
}

func (s *stubContext) Query() *tele.Query { return s.query }

func (s *stubContext) Send(what interface{}, _ ...interface{}) error {
	if text, ok := what.(string); ok {
		s.sent = append(s.sent, text)
	}
	return nil
}

func textContext(text string) *stubContext {
	return &stubContext{msg: &tele.Message{Text: text}}
}

func noopHandler(tele.Context) error { return nil }

func TestCommandRequiresHelpText(t *testing.T) {
	bot := New(Settings{})

	err := bot.Command(Command{Name: "ping", Handler: noopHandler})
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("err = %v, want *ConfigError", err)
	}
	if !strings.Contains(cfgErr.Error(), "help text required") {
		t.Fatalf("unexpected message: %v", cfgErr)
	}
	if len(bot.commands) != 0 || len(bot.textRoutes) != 0 {
		t.Fatal("failed registration must install nothing")
	}
	if len(bot.Help()) != 0 {
		t.Fatal("failed registration must not touch the catalog")
	}
}

func TestCommandHelpOptionalWhenDisabled(t *testing.T) {
	bot := New(Settings{})
	bot.Config.HelpMessage = false

	if err := bot.Command(Command{Name: "ping", Handler: noopHandler}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bot.Help()) != 0 {
		t.Fatal("catalog must stay empty when help generation is disabled")
	}
}

func TestHelpCatalogFollowsRegistrationOrder(t *testing.T) {
	bot := New(Settings{})
	cmds := []Command{
		{Name: "ping", Help: "replies pong", Handler: noopHandler},
		{Name: "echo", Help: "repeats the message", Handler: noopHandler},
		{Name: "ping", Help: "registered again", Handler: noopHandler},
	}
	for _, cmd := range cmds {
		if err := bot.Command(cmd); err != nil {
			t.Fatalf("register %s: %v", cmd.Name, err)
		}
	}

	entries := bot.Help()
	if len(entries) != len(cmds) {
		t.Fatalf("catalog has %d entries, want %d", len(entries), len(cmds))
	}
	for i, cmd := range cmds {
		if entries[i].Name != cmd.Name || entries[i].Text != cmd.Help {
			t.Fatalf("entry %d = %+v, want %s/%s", i, entries[i], cmd.Name, cmd.Help)
		}
	}
}

func TestAllowBareTextRoutesToSameHandler(t *testing.T) {
	bot := New(Settings{})
	calls := 0
	err := bot.Command(Command{
		Name: "ping",
		Help: "replies pong",
		Handler: func(tele.Context) error {
			calls++
			return nil
		},
		AllowBareText: true,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	// Command trigger path.
	if err := bot.commands[0].Handler(textContext("/ping")); err != nil {
		t.Fatalf("command handler: %v", err)
	}
	// Plain text path goes through the text router.
	if err := bot.dispatchText(textContext("anything")); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if calls != 2 {
		t.Fatalf("handler called %d times, want 2", calls)
	}

	// Command-shaped text must not hit the bare-text route.
	if err := bot.dispatchText(textContext("/other")); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if calls != 2 {
		t.Fatalf("bare-text route matched a command, calls = %d", calls)
	}
}

func TestMessageFirstMatchWins(t *testing.T) {
	bot := New(Settings{})
	var got string
	record := func(name string) tele.HandlerFunc {
		return func(tele.Context) error {
			got = name
			return nil
		}
	}
	if err := bot.Message(TextOnly(), record("first")); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := bot.Message(TextOnly(), record("second")); err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := bot.dispatchText(textContext("hello")); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if got != "first" {
		t.Fatalf("dispatched to %q, want first", got)
	}
}

func TestMessageRegex(t *testing.T) {
	bot := New(Settings{})
	matched := false
	err := bot.MessageRegex(`^hi\b`, func(tele.Context) error {
		matched = true
		return nil
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := bot.dispatchText(textContext("hi there")); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if !matched {
		t.Fatal("regex route did not match")
	}

	matched = false
	if err := bot.dispatchText(textContext("say hi")); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if matched {
		t.Fatal("regex route matched unanchored text")
	}
}

func TestMessageRegexRejectsBadPattern(t *testing.T) {
	bot := New(Settings{})
	err := bot.MessageRegex(`(`, noopHandler)
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("err = %v, want *ConfigError", err)
	}
	if len(bot.textRoutes) != 0 {
		t.Fatal("bad pattern must install nothing")
	}
}

func TestDefaultHelpRendersCatalog(t *testing.T) {
	bot := New(Settings{})
	if err := bot.Command(Command{Name: "ping", Help: "replies pong", Handler: noopHandler}); err != nil {
		t.Fatalf("register: %v", err)
	}
	bot.finalizeHelp()

	c := textContext("/help")
	if err := bot.helpHandler()(c); err != nil {
		t.Fatalf("help handler: %v", err)
	}
	if len(c.sent) != 1 {
		t.Fatalf("help sent %d messages, want 1", len(c.sent))
	}
	body := c.sent[0]
	if !strings.Contains(body, "ping") || !strings.Contains(body, "replies pong") {
		t.Fatalf("help body missing ping entry: %q", body)
	}
	if !strings.Contains(body, "help") {
		t.Fatalf("help body missing default help entry: %q", body)
	}
	if strings.Index(body, "ping") > strings.Index(body, "replies pong") {
		t.Fatalf("entry order broken: %q", body)
	}
}

func TestHelpDisabledInstallsNoDefault(t *testing.T) {
	bot := New(Settings{})
	bot.Config.HelpMessage = false
	bot.finalizeHelp()

	if bot.helpHandler() != nil {
		t.Fatal("help handler installed despite HelpMessage=false")
	}
	if len(bot.Help()) != 0 {
		t.Fatal("catalog gained entries despite HelpMessage=false")
	}
}

func TestCustomHelpSuppressesDefaultRenderer(t *testing.T) {
	bot := New(Settings{})
	var received []help.Entry
	err := bot.CustomHelp(func(c tele.Context, commands []help.Entry) error {
		received = commands
		return nil
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	bot.finalizeHelp()

	c := textContext("/help")
	if err := bot.helpHandler()(c); err != nil {
		t.Fatalf("help handler: %v", err)
	}
	if len(c.sent) != 0 {
		t.Fatalf("default renderer ran despite custom help: %v", c.sent)
	}

	// Both the custom registration and the run-time default add a help
	// entry; duplicates are kept by design.
	if len(received) != 2 {
		t.Fatalf("snapshot has %d entries, want 2", len(received))
	}
	for i, e := range received {
		if e.Name != "help" {
			t.Fatalf("entry %d = %+v, want name help", i, e)
		}
	}
}

func TestNewFromConfigMapsSettings(t *testing.T) {
	cfg := &coreconfig.Config{
		Telegram: coreconfig.TelegramConfig{
			Token:                  "123:abc",
			RunMode:                coreconfig.RunModeWebhook,
			LongPollTimeoutSeconds: 20,
		},
		Webhook: coreconfig.WebhookConfig{URL: "https://bot.example", Listen: "0.0.0.0", Port: 8443},
	}

	bot := NewFromConfig(cfg)
	if !bot.Config.HelpMessage {
		t.Fatal("help message must default to enabled")
	}
	s := bot.settings
	if s.Token != "123:abc" || s.RunMode != coreconfig.RunModeWebhook || s.LongPollTimeoutSeconds != 20 {
		t.Fatalf("transport settings not mapped: %+v", s)
	}
	if s.Webhook.URL != "https://bot.example" || s.Webhook.Listen != "0.0.0.0" || s.Webhook.Port != 8443 {
		t.Fatalf("webhook settings not mapped: %+v", s.Webhook)
	}
}

func TestNewFromConfigHonoursHelpMessageSwitch(t *testing.T) {
	disabled := false
	cfg := &coreconfig.Config{
		Telegram: coreconfig.TelegramConfig{Token: "123:abc"},
		Bot:      coreconfig.BotConfig{HelpMessage: &disabled},
	}

	bot := NewFromConfig(cfg)
	if bot.Config.HelpMessage {
		t.Fatal("help_message: false not applied to the bot")
	}

	// With the switch off, registration without help text must succeed
	// and the catalog must stay empty.
	if err := bot.Command(Command{Name: "ping", Handler: noopHandler}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bot.Help()) != 0 {
		t.Fatal("catalog gained entries despite help_message: false")
	}
}

func TestInlineQueryDispatch(t *testing.T) {
	bot := New(Settings{})
	var got string
	err := bot.InlineQuery(func(q Query) error {
		got = q.Text()
		return nil
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	c := &stubContext{query: &tele.Query{Text: "search me"}}
	if err := bot.dispatchQuery(c); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if got != "search me" {
		t.Fatalf("inline handler got %q", got)
	}
}
