package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/kovalyov-valentin/news-selects/internal/botkit"
)

type RecapSender interface {
	SendRecap(ctx context.Context, chatID int64) error
}

// ViewCmdRecap присылает сводку в тот чат, откуда пришла команда
func ViewCmdRecap(recap RecapSender) botkit.ViewFunc {
	return func(ctx context.Context, _ botkit.API, update tgbotapi.Update) error {
		return recap.SendRecap(ctx, update.Message.Chat.ID)
	}
}
