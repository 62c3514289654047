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

type Reviewer interface {
	Approve(ctx context.Context, numbers []int) ([]model.Article, error)
	Reject(ctx context.Context, numbers []int) ([]model.Article, error)
}

// ViewCmdApprove переключает одобрение статей из сводки: /approve 1 3
func ViewCmdApprove(reviewer Reviewer) botkit.ViewFunc {
	return viewCmdToggle("approve", reviewer.Approve)
}

// ViewCmdReject переключает отказ: /reject 2. Повторный /reject возвращает статью в ожидание.
func ViewCmdReject(reviewer Reviewer) botkit.ViewFunc {
	return viewCmdToggle("reject", reviewer.Reject)
}

func viewCmdToggle(cmd string, toggle func(ctx context.Context, numbers []int) ([]model.Article, error)) botkit.ViewFunc {
	return func(ctx context.Context, bot botkit.API, update tgbotapi.Update) error {
		numbers, err := botkit.ParseNumbers(update.Message.CommandArguments())
		if err != nil || len(numbers) == 0 {
			return reply(bot, update, markup.EscapeForMarkdown(fmt.Sprintf("Usage: /%s 1 3 (numbers from the recap)", cmd)))
		}

		changed, err := toggle(ctx, numbers)
		if err != nil {
			return err
		}

		if len(changed) == 0 {
			return reply(bot, update, markup.EscapeForMarkdown(fmt.Sprintf("Nothing to %s: no entries %v in the recap.", cmd, numbers)))
		}

		lines := lo.Map(changed, func(article model.Article, _ int) string {
			return stateMarker(article.Approval) + " " + markup.EscapeForMarkdown(article.Title)
		})

		return reply(bot, update, fmt.Sprintf("Updated %d:\n%s", len(changed), strings.Join(lines, "\n")))
	}
}
