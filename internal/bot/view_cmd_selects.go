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

type SelectsLister interface {
	Load(ctx context.Context) ([]model.Article, error)
}

// ViewCmdSelects показывает последние отобранные статьи из хранилища вместе с решением редактора
func ViewCmdSelects(lister SelectsLister) botkit.ViewFunc {
	return func(ctx context.Context, bot botkit.API, update tgbotapi.Update) error {
		articles, err := lister.Load(ctx)
		if err != nil {
			return err
		}

		infos := lo.Map(articles, func(article model.Article, _ int) string {
			return formatSelect(article)
		})

		msgText := fmt.Sprintf(
			"Selects \\(%d\\):\n\n%s",
			len(articles),
			strings.Join(infos, "\n\n"),
		)

		return reply(bot, update, msgText)
	}
}

// Маркер решения, ожидание показывается часами
func stateMarker(approval model.Approval) string {
	if marker := approval.Marker(); marker != "" {
		return marker
	}
	return "⏳"
}

func formatSelect(article model.Article) string {
	return fmt.Sprintf(
		"%s *%s*\n%s · %s",
		stateMarker(article.Approval),
		markup.EscapeForMarkdown(article.Title),
		markup.EscapeForMarkdown(article.Source),
		markup.EscapeForMarkdown(article.Published),
	)
}
