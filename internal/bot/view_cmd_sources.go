package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/samber/lo"

	"github.com/kovalyov-valentin/news-selects/internal/botkit"
	"github.com/kovalyov-valentin/news-selects/internal/botkit/markup"
	"github.com/kovalyov-valentin/news-selects/internal/model"
)

type SourceStorage interface {
	Sources(ctx context.Context) ([]model.Source, error)
	Add(ctx context.Context, source model.Source) error
}

// ViewCmdAddSource заводит фид для сбора статей: /addsource {"name": "NME", "url": "https://..."}
func ViewCmdAddSource(storage SourceStorage) botkit.ViewFunc {
	type addSourceArgs struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	}

	return func(ctx context.Context, bot botkit.API, update tgbotapi.Update) error {
		args, err := botkit.ParseJSON[addSourceArgs](update.Message.CommandArguments())
		if err == nil && args.URL == "" {
			err = errors.New("url is required")
		}
		if err != nil {
			return reply(bot, update, markup.EscapeForMarkdown(`Usage: /addsource {"name": "NME", "url": "https://www.nme.com/news/rss"}`))
		}

		if err := storage.Add(ctx, model.Source{Name: args.Name, FeedURL: args.URL}); err != nil {
			return err
		}

		return reply(bot, update, "Source added: "+markup.EscapeForMarkdown(args.URL))
	}
}

// ViewCmdListSources показывает фиды, заведенные через бота
func ViewCmdListSources(lister SourceStorage) botkit.ViewFunc {
	return func(ctx context.Context, bot botkit.API, update tgbotapi.Update) error {
		sources, err := lister.Sources(ctx)
		if err != nil {
			return err
		}

		sourceInfos := lo.Map(sources, func(source model.Source, _ int) string {
			return formatSource(source)
		})

		return reply(bot, update, fmt.Sprintf(
			"Sources \\(%d\\):\n\n%s",
			len(sources),
			strings.Join(sourceInfos, "\n\n"),
		))
	}
}

func formatSource(source model.Source) string {
	name := source.Name
	if name == "" {
		name = "untitled"
	}

	return fmt.Sprintf(
		"🌐 *%s*\n%s",
		markup.EscapeForMarkdown(name),
		markup.EscapeForMarkdown(source.FeedURL),
	)
}
