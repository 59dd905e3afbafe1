package middleware

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/samedamci/telegrask/core/logger"

	tele "gopkg.in/telebot.v4"
)

// Logger logs one receipt line per update at debug level and a summary line
// with duration and status once the handler returns.
func Logger(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		upd := c.Update()
		chatID, userID := int64(0), int64(0)
		if chat := c.Chat(); chat != nil {
			chatID = chat.ID
		}
		if user := c.Sender(); user != nil {
			userID = user.ID
		}

		rid := fmt.Sprintf("%d:%d:%d", upd.ID, chatID, userID)
		c.Set("rid", rid)

		attrs := []any{
			slog.String("rid", rid),
			slog.Int("update_id", upd.ID),
		}
		switch {
		case upd.Message != nil:
			attrs = append(attrs, slog.String("payload", truncate(c.Text(), 256)))
		case upd.Query != nil:
			attrs = append(attrs, slog.String("payload", truncate(upd.Query.Text, 256)))
		}
		logger.TG.Debug("update.received", attrs...)

		start := time.Now()
		err := next(c)

		status := "ok"
		if err != nil {
			status = "error"
		}
		logger.TG.Debug("update.handled",
			slog.String("rid", rid),
			slog.String("status", status),
			slog.Duration("duration", time.Since(start).Round(time.Millisecond)),
		)
		return err
	}
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
