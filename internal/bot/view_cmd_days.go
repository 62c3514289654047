package bot

import (
	"context"
	"fmt"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/samber/lo"

	"github.com/kovalyov-valentin/news-selects/internal/botkit"
	"github.com/kovalyov-valentin/news-selects/internal/botkit/markup"
	"github.com/kovalyov-valentin/news-selects/internal/model"
	"github.com/kovalyov-valentin/news-selects/internal/review"
)

// ViewCmdDays листает отобранные статьи по дням: /days, /days next, /days prev.
// Без аргумента показывается первая страница. Страница запоминается отдельно для каждого чата.
func ViewCmdDays(lister SelectsLister, daysPerPage int) botkit.ViewFunc {
	var (
		mu     sync.Mutex
		pagers = make(map[int64]*review.Pager)
	)

	return func(ctx context.Context, bot botkit.API, update tgbotapi.Update) error {
		articles, err := lister.Load(ctx)
		if err != nil {
			return err
		}

		groups := review.GroupByDay(articles)
		chatID := update.Message.Chat.ID

		mu.Lock()
		pager, ok := pagers[chatID]
		if !ok {
			pager = review.NewPager(len(groups), daysPerPage)
			pagers[chatID] = pager
		}
		// Список мог поменяться с прошлого раза
		pager.Resize(len(groups), daysPerPage)

		switch strings.ToLower(strings.TrimSpace(update.Message.CommandArguments())) {
		case "next":
			pager.Next()
		case "prev":
			pager.Prev()
		default:
			*pager = *review.NewPager(len(groups), daysPerPage)
		}
		page := review.Paginate(groups, pager.Page(), daysPerPage)
		mu.Unlock()

		return reply(bot, update, formatDays(page))
	}
}

func formatDays(page review.Page) string {
	if len(page.Groups) == 0 {
		return markup.EscapeForMarkdown("No dated selects yet.")
	}

	days := lo.Map(page.Groups, func(group review.DayGroup, _ int) string {
		lines := lo.Map(group.Articles, func(article model.Article, _ int) string {
			return stateMarker(article.Approval) + " " + markup.EscapeForMarkdown(article.Title)
		})
		return fmt.Sprintf("*%s*\n%s", markup.EscapeForMarkdown(group.Day), strings.Join(lines, "\n"))
	})

	return fmt.Sprintf(
		"Page %d/%d\n\n%s\n\n%s",
		page.Index+1,
		page.Total,
		strings.Join(days, "\n\n"),
		markup.EscapeForMarkdown("/days next · /days prev"),
	)
}
