// Package telegram is a thin ergonomic layer over telebot: explicit handler
// registration on a Bot facade, an ordered help catalog behind the default
// /help command, and a blocking Run that owns the polling loop. The network
// loop, update dispatch and retrying stay entirely inside telebot.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	coreconfig "github.com/samedamci/telegrask/core/config"
	"github.com/samedamci/telegrask/core/logger"
	"github.com/samedamci/telegrask/core/telegram/help"
	tghelpers "github.com/samedamci/telegrask/core/telegram/helpers"
	"github.com/samedamci/telegrask/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

const defaultHelpText = "display this message"

// Settings configures the transport side of a Bot.
type Settings struct {
	Token string

	// RunMode selects longpoll (default) or webhook delivery.
	RunMode                string
	LongPollTimeoutSeconds int
	Webhook                WebhookOptions

	// ParseMode is applied to outbound messages that do not set their own.
	ParseMode string

	// Offline skips the initial getMe call, so construction never touches
	// the network.
	Offline bool
}

// Config carries per-instance behaviour switches. Every Bot gets its own
// copy, constructed fresh in New; instances never share configuration.
type Config struct {
	// HelpMessage controls whether the auto-generated help command is
	// installed and whether command registration requires help text.
	HelpMessage bool
}

// Command declares a command registration. Name is the canonical command
// (without the slash); Aliases trigger the same handler and do not appear in
// the help catalog.
type Command struct {
	Name    string
	Aliases []string
	Help    string
	Handler tele.HandlerFunc

	// AllowBareText additionally routes plain non-command text to Handler.
	AllowBareText bool
}

type textRoute struct {
	filter  Filter
	handler tele.HandlerFunc
}

// HelpFunc renders a custom help reply from the current catalog snapshot.
type HelpFunc func(c tele.Context, commands []help.Entry) error

// Bot accumulates handler registrations and forwards them to telebot when
// Run is called. All registration must complete before Run; the facade
// provides no synchronization for registering handlers after dispatch start.
type Bot struct {
	// Config may be adjusted by user code before the first registration.
	Config Config

	settings Settings
	help     help.Catalog

	commands   []Command
	textRoutes []textRoute
	inline     func(Query) error
	customHelp HelpFunc
}

// New creates a Bot that is not yet connected; nothing touches the network
// until Run.
func New(settings Settings) *Bot {
	return &Bot{
		Config:   Config{HelpMessage: true},
		settings: settings,
	}
}

// NewFromConfig builds a Bot from file configuration, mapping the transport
// settings and the bot.help_message switch. It must be called before any
// registration, since the switch decides whether help text is required.
func NewFromConfig(cfg *coreconfig.Config) *Bot {
	bot := New(Settings{
		Token:                  cfg.Telegram.Token,
		RunMode:                cfg.Telegram.RunMode,
		LongPollTimeoutSeconds: cfg.Telegram.LongPollTimeoutSeconds,
		Webhook: WebhookOptions{
			Listen: cfg.Webhook.Listen,
			Port:   cfg.Webhook.Port,
			URL:    cfg.Webhook.URL,
		},
	})
	bot.Config.HelpMessage = cfg.Bot.HelpEnabled()
	return bot
}

// Command registers a command handler for cmd.Name and every alias. When
// help generation is enabled the command must carry help text; otherwise
// registration fails with *ConfigError and installs nothing.
func (b *Bot) Command(cmd Command) error {
	if strings.TrimSpace(cmd.Name) == "" {
		return configErrorf("command name is required")
	}
	if cmd.Handler == nil {
		return configErrorf("nil handler for command %q", cmd.Name)
	}
	if b.Config.HelpMessage && strings.TrimSpace(cmd.Help) == "" {
		return configErrorf("help text required for command %q", cmd.Name)
	}

	b.commands = append(b.commands, cmd)
	if b.Config.HelpMessage {
		b.help.Add(cmd.Name, cmd.Help)
	}
	if cmd.AllowBareText {
		b.textRoutes = append(b.textRoutes, textRoute{filter: TextOnly(), handler: cmd.Handler})
	}

	logger.Wire.Debug("register.command",
		slog.String("name", cmd.Name),
		slog.Int("aliases", len(cmd.Aliases)),
		slog.Bool("bare_text", cmd.AllowBareText),
	)
	return nil
}

// Message registers a handler for incoming text messages matching the
// filter. Routes are consulted in registration order; the first match wins.
// No help bookkeeping happens here.
func (b *Bot) Message(f Filter, handler tele.HandlerFunc) error {
	if f == nil {
		return configErrorf("nil message filter")
	}
	if handler == nil {
		return configErrorf("nil message handler")
	}
	b.textRoutes = append(b.textRoutes, textRoute{filter: f, handler: handler})
	logger.Wire.Debug("register.message", slog.Int("routes", len(b.textRoutes)))
	return nil
}

// MessageRegex registers a handler for text messages matching the pattern.
func (b *Bot) MessageRegex(pattern string, handler tele.HandlerFunc) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return configErrorf("invalid message pattern %q: %v", pattern, err)
	}
	return b.Message(Regex(re), handler)
}

// InlineQuery registers the handler invoked for inline queries. The callback
// receives a unified Query wrapper. Re-registration replaces the handler.
func (b *Bot) InlineQuery(fn func(Query) error) error {
	if fn == nil {
		return configErrorf("nil inline query handler")
	}
	b.inline = fn
	logger.Wire.Debug("register.inline_query")
	return nil
}

// CustomHelp overrides the auto-generated /help and /start renderer. The
// callback receives the catalog snapshot taken when the command fires and is
// responsible for producing output itself. A ("help", "display this
// message") catalog entry is still recorded for discoverability.
func (b *Bot) CustomHelp(fn HelpFunc) error {
	if fn == nil {
		return configErrorf("nil custom help handler")
	}
	b.customHelp = fn
	b.help.Add("help", defaultHelpText)
	logger.Wire.Debug("register.custom_help")
	return nil
}

// Help exposes the catalog snapshot, mainly for tests and diagnostics.
func (b *Bot) Help() []help.Entry {
	return b.help.Snapshot()
}

// Run wires all accumulated registrations into a telebot bot and blocks
// until ctx is done or the poller stops. debug raises the log level for the
// duration of the run; it has no effect on dispatch behaviour.
func (b *Bot) Run(ctx context.Context, debug bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if debug {
		logger.SetDebug()
	}

	b.finalizeHelp()

	settings := tele.Settings{
		Token:     b.settings.Token,
		Poller:    newPoller(b.settings),
		ParseMode: b.settings.ParseMode,
		Offline:   b.settings.Offline,
		OnError: func(err error, c tele.Context) {
			attrs := []any{slog.String("err", err.Error())}
			if c != nil && c.Chat() != nil {
				attrs = append(attrs, slog.Int64("chat_id", c.Chat().ID))
			}
			logger.TG.Error("handler error", attrs...)
		},
	}

	start := time.Now()
	bot, err := tele.NewBot(settings)
	if err != nil {
		return fmt.Errorf("telegram: bot initialization failed: %w", err)
	}

	bot.Use(middleware.Recover, middleware.Logger)

	wired := make(map[string]struct{})
	for _, cmd := range b.commands {
		for _, name := range append([]string{cmd.Name}, cmd.Aliases...) {
			bot.Handle("/"+name, cmd.Handler)
			wired["/"+name] = struct{}{}
		}
	}
	if h := b.helpHandler(); h != nil {
		// Earlier explicit registrations win over the generated help.
		for _, endpoint := range []string{"/help", "/start"} {
			if _, exists := wired[endpoint]; !exists {
				bot.Handle(endpoint, h)
			}
		}
	}
	if len(b.textRoutes) > 0 {
		bot.Handle(tele.OnText, b.dispatchText)
	}
	if b.inline != nil {
		bot.Handle(tele.OnQuery, b.dispatchQuery)
	}

	logger.Wire.Info("tg.wire",
		slog.String("event", "complete"),
		slog.Int("commands", len(b.commands)),
		slog.Int("text_routes", len(b.textRoutes)),
		slog.Bool("inline", b.inline != nil),
		slog.Bool("help", b.helpHandler() != nil),
		slog.Duration("duration", time.Since(start).Round(time.Millisecond)),
	)

	runDone := make(chan struct{})
	go func() {
		bot.Start()
		close(runDone)
	}()

	select {
	case <-ctx.Done():
		bot.Stop()
		<-runDone
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil
		}
		return ctx.Err()
	case <-runDone:
		return nil
	}
}

// finalizeHelp records the default help catalog entry at run time. It
// mirrors a user command registration, so the catalog gains an entry even
// when a custom help handler already recorded one. Duplicates are kept on
// purpose.
func (b *Bot) finalizeHelp() {
	if b.Config.HelpMessage {
		b.help.Add("help", defaultHelpText)
	}
}

// helpHandler picks the handler for /help and /start: the custom one when
// set, the catalog renderer when help generation is enabled, nil otherwise.
func (b *Bot) helpHandler() tele.HandlerFunc {
	if b.customHelp != nil {
		fn := b.customHelp
		return func(c tele.Context) error {
			return fn(c, b.help.Snapshot())
		}
	}
	if !b.Config.HelpMessage {
		return nil
	}
	return func(c tele.Context) error {
		body := b.help.Render()
		if body == "" {
			body = "No commands registered."
		}
		return tghelpers.SendMD(c, body)
	}
}

// dispatchText routes a plain text update through the registered filters in
// registration order; the first matching route wins.
func (b *Bot) dispatchText(c tele.Context) error {
	msg := c.Message()
	for _, route := range b.textRoutes {
		if route.filter.Match(msg) {
			return route.handler(c)
		}
	}
	logger.TG.Debug("text unmatched", slog.Int("routes", len(b.textRoutes)))
	return nil
}

func (b *Bot) dispatchQuery(c tele.Context) error {
	return b.inline(Query{ctx: c, raw: c.Query()})
}
