package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	coreconfig "github.com/samedamci/telegrask/core/config"
)

var (
	initOnce sync.Once

	levelVar slog.LevelVar

	// L is the base logger shared by all components.
	L *slog.Logger

	// TG logs Telegram transport events.
	TG *slog.Logger
	// Wire logs handler wiring steps.
	Wire *slog.Logger
	// DB logs database-related events.
	DB *slog.Logger
	// Mig logs database migration events.
	Mig *slog.Logger
	// Scaffold logs project scaffolding steps.
	Scaffold *slog.Logger
)

func init() {
	// Reasonable defaults until Init is called with real configuration,
	// so library users who never call Init still get output.
	wire(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: &levelVar})))
}

// Init configures the global structured logger. It may be called only once;
// later calls are no-ops.
func Init(cfg *coreconfig.Config) error {
	initOnce.Do(func() {
		levelVar.Set(selectLevel(cfg))
		wire(slog.New(newHandler(os.Stdout, cfg)))
	})
	return nil
}

// SetDebug lowers the global level to debug. Used by Bot.Run(debug).
func SetDebug() {
	levelVar.Set(slog.LevelDebug)
}

func wire(base *slog.Logger) {
	L = base
	slog.SetDefault(base)
	TG = L.With("component", "tg")
	Wire = L.With("component", "tg.wire")
	DB = L.With("component", "db")
	Mig = L.With("component", "db.migrate")
	Scaffold = L.With("component", "scaffold")
}

// Component constructs a logger scoped to the provided component attribute.
func Component(name string) *slog.Logger {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return L
	}
	return L.With("component", trimmed)
}

func newHandler(w io.Writer, cfg *coreconfig.Config) slog.Handler {
	opts := &slog.HandlerOptions{Level: &levelVar}
	if selectFormat(cfg) == formatJSON {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

type logFormat int

const (
	formatJSON logFormat = iota
	formatText
)

func selectFormat(cfg *coreconfig.Config) logFormat {
	if cfg == nil {
		return formatJSON
	}
	raw := strings.ToLower(strings.TrimSpace(cfg.Logging.Format))
	switch raw {
	case "kv", "text", "pretty":
		return formatText
	case "json":
		return formatJSON
	}
	// Prefer human-friendly format when profile indicates debug/dev mode.
	if strings.EqualFold(cfg.Logging.Profile, "debug") || strings.EqualFold(cfg.Logging.Profile, "dev") {
		return formatText
	}
	return formatJSON
}

func selectLevel(cfg *coreconfig.Config) slog.Level {
	if cfg == nil {
		return slog.LevelInfo
	}
	raw := strings.ToLower(strings.TrimSpace(cfg.Logging.Level))
	switch raw {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
