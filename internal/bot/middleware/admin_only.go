package middleware

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/kovalyov-valentin/news-selects/internal/botkit"
)

// AdminOnly пропускает команду дальше, только если ее прислал администратор канала
func AdminOnly(channelID int64, next botkit.ViewFunc) botkit.ViewFunc {
	return func(ctx context.Context, bot botkit.API, update tgbotapi.Update) error {
		admins, err := bot.GetChatAdministrators(
			tgbotapi.ChatAdministratorsConfig{
				ChatConfig: tgbotapi.ChatConfig{
					ChatID: channelID,
				},
			},
		)
		if err != nil {
			return err
		}

		if update.Message.From != nil {
			for _, admin := range admins {
				if admin.User != nil && admin.User.ID == update.Message.From.ID {
					return next(ctx, bot, update)
				}
			}
		}

		log.Warn().Int64("chat", update.Message.Chat.ID).Str("cmd", update.Message.Command()).Msg("command rejected: not an admin")

		if _, err := bot.Send(tgbotapi.NewMessage(update.Message.Chat.ID, "Only channel admins can do that.")); err != nil {
			return err
		}
		return nil
	}
}
