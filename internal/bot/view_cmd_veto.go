package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/samber/lo"

	"github.com/kovalyov-valentin/news-selects/internal/botkit"
	"github.com/kovalyov-valentin/news-selects/internal/botkit/markup"
	"github.com/kovalyov-valentin/news-selects/internal/model"
)

type Vetoer interface {
	Veto(ctx context.Context, numbers []int) ([]model.Article, error)
}

// ViewCmdVeto отклоняет статьи по номерам из сводки: /veto 2 4
func ViewCmdVeto(vetoer Vetoer) botkit.ViewFunc {
	return func(ctx context.Context, bot botkit.API, update tgbotapi.Update) error {
		numbers, err := botkit.ParseNumbers(update.Message.CommandArguments())
		if err != nil || len(numbers) == 0 {
			return reply(bot, update, markup.EscapeForMarkdown("Usage: /veto 2 4 (numbers from the recap)"))
		}

		vetoed, err := vetoer.Veto(ctx, numbers)
		if err != nil {
			return err
		}

		if len(vetoed) == 0 {
			return reply(bot, update, markup.EscapeForMarkdown(fmt.Sprintf("Nothing to veto: no entries %v in the recap.", numbers)))
		}

		lines := lo.Map(vetoed, func(article model.Article, _ int) string {
			return "🚫 " + markup.EscapeForMarkdown(article.Title)
		})

		return reply(bot, update, fmt.Sprintf("Vetoed %d:\n%s", len(vetoed), strings.Join(lines, "\n")))
	}
}

func reply(bot botkit.API, update tgbotapi.Update, text string) error {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2

	_, err := bot.Send(msg)
	return err
}
