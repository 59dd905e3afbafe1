package middleware

import (
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/samedamci/telegrask/core/logger"

	tele "gopkg.in/telebot.v4"
)

// Recover converts handler panics into ordinary handler errors, so one
// misbehaving callback cannot take down the polling loop. The error is also
// logged with the stack, since the bot's OnError hook only sees the message.
func Recover(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("handler panic: %v", r)
				logger.TG.Error("panic recovered",
					slog.String("event", "tg.panic"),
					slog.String("err", err.Error()),
					slog.String("stack", string(debug.Stack())),
				)
			}
		}()
		return next(c)
	}
}
