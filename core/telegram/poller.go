package telegram

import (
	"fmt"
	"strings"
	"time"

	coreconfig "github.com/samedamci/telegrask/core/config"

	tele "gopkg.in/telebot.v4"
)

// WebhookOptions declares webhook listener settings.
type WebhookOptions struct {
	Listen string
	Port   int
	URL    string
}

// newPoller selects the update delivery mechanism for the settings:
// a webhook listener when RunMode asks for it, long polling otherwise.
func newPoller(s Settings) tele.Poller {
	if strings.EqualFold(strings.TrimSpace(s.RunMode), coreconfig.RunModeWebhook) {
		return &tele.Webhook{
			Listen:   fmt.Sprintf("%s:%d", s.Webhook.Listen, s.Webhook.Port),
			Endpoint: &tele.WebhookEndpoint{PublicURL: s.Webhook.URL},
		}
	}

	timeout := s.LongPollTimeoutSeconds
	if timeout <= 0 {
		timeout = 10
	}
	return &tele.LongPoller{Timeout: time.Duration(timeout) * time.Second}
}
