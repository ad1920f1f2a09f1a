// Package notify dispatches run summaries to Telegram.
package notify

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"github.com/SuFxGIT/scoutarr-sub000/internal/models"
)

// TelegramNotifier posts one HTML-formatted message per global or manual
// run to a fixed chat.
type TelegramNotifier struct {
	bot  *tele.Bot
	chat *tele.Chat
	log  *zap.Logger
}

// NewTelegramNotifier returns nil when no token is configured; a nil
// notifier disables dispatch entirely.
func NewTelegramNotifier(token string, chatID int64, log *zap.Logger) (*TelegramNotifier, error) {
	if token == "" {
		return nil, nil
	}
	bot, err := tele.NewBot(tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return &TelegramNotifier{
		bot:  bot,
		chat: &tele.Chat{ID: chatID},
		log:  log,
	}, nil
}

func (n *TelegramNotifier) NotifyRun(_ context.Context, rec models.RunRecord) error {
	_, err := n.bot.Send(n.chat, formatRun(rec), tele.ModeHTML)
	if err != nil {
		return fmt.Errorf("send run summary: %w", err)
	}
	return nil
}

func formatRun(rec models.RunRecord) string {
	var b strings.Builder
	if rec.Success {
		b.WriteString("✅ <b>Search run finished</b>\n")
	} else {
		b.WriteString("⚠️ <b>Search run finished with errors</b>\n")
	}
	b.WriteString(rec.Timestamp.Format("2006-01-02 15:04:05 MST"))
	b.WriteString("\n")

	keys := make([]string, 0, len(rec.Results))
	for key := range rec.Results {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		res := rec.Results[key]
		if res.Success {
			fmt.Fprintf(&b, "\n<b>%s</b>: %d searched", key, res.Searched)
			for _, item := range res.Items {
				fmt.Fprintf(&b, "\n  • %s", item.Title)
			}
		} else {
			fmt.Fprintf(&b, "\n<b>%s</b>: failed (%s)", key, res.Error)
		}
	}
	if rec.Error != "" {
		fmt.Fprintf(&b, "\n\n%s", rec.Error)
	}
	return b.String()
}
