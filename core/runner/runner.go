// Package runner wires configuration loading, bootstrap, and the blocking
// bot run into a single entry point for bot executables.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/samedamci/telegrask/core/bootstrap"
	coreconfig "github.com/samedamci/telegrask/core/config"
	"github.com/samedamci/telegrask/core/logger"
	"github.com/samedamci/telegrask/core/telegram"
)

// Options describe how to load configuration and build the bot.
type Options struct {
	ConfigEnvVar      string
	DefaultConfigPath string

	// Build receives the loaded configuration and bootstrapped
	// infrastructure and returns a fully registered bot.
	Build func(cfg *coreconfig.Config, infra *bootstrap.Result) (*telegram.Bot, error)
}

// Run loads configuration, bootstraps infrastructure, builds the bot, and
// blocks until the process receives an interrupt or termination signal.
func Run(opts Options) error {
	if opts.Build == nil {
		return fmt.Errorf("runner: Build is required")
	}
	startedAt := time.Now()

	// A missing .env file is fine; environment overrides are optional.
	_ = godotenv.Load()

	env := opts.ConfigEnvVar
	if env == "" {
		env = "CONFIG_PATH"
	}
	cfgPath := os.Getenv(env)
	if cfgPath == "" {
		cfgPath = opts.DefaultConfigPath
	}
	if cfgPath == "" {
		return fmt.Errorf("runner: config path not provided via %s or DefaultConfigPath", env)
	}

	cfg, err := coreconfig.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("runner: failed to load config: %w", err)
	}

	infra, err := bootstrap.Run(bootstrap.Options{Config: cfg})
	if err != nil {
		return err
	}
	if infra.DB != nil {
		defer func() { _ = infra.DB.Close() }()
	}

	bot, err := opts.Build(cfg, infra)
	if err != nil {
		return fmt.Errorf("runner: bot build failed: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger.L.With("component", "app").Info("app ready",
		slog.String("event", "ready"),
		slog.Duration("startup_duration", time.Since(startedAt).Round(time.Millisecond)),
	)

	debug := strings.EqualFold(cfg.Logging.Profile, "debug") ||
		strings.EqualFold(cfg.Logging.Level, "debug")
	return bot.Run(ctx, debug)
}
