package notifier

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/kovalyov-valentin/news-selects/internal/botkit/markup"
	"github.com/kovalyov-valentin/news-selects/internal/model"
)

// Столько символов может занимать одна статья в сводке вместе с номером и подписью
const EntryBudget = 153

type ArticleProvider interface {
	Current() ([]model.Article, error)
}

type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier присылает в канал ежедневную сводку сохраненного списка,
// по номерам из сводки редактор может отклонить статью командой /veto
type Notifier struct {
	articles ArticleProvider
	bot      Sender
	// Интервал между сводками
	sendInterval time.Duration
	// id канала куда уходит сводка
	channelID int64
	loc       *time.Location
	now       func() time.Time
}

func New(articles ArticleProvider, bot Sender, sendInterval time.Duration, channelID int64, loc *time.Location) *Notifier {
	if loc == nil {
		loc = time.UTC
	}

	return &Notifier{
		articles:     articles,
		bot:          bot,
		sendInterval: sendInterval,
		channelID:    channelID,
		loc:          loc,
		now:          time.Now,
	}
}

func (n *Notifier) Start(ctx context.Context) error {
	ticker := time.NewTicker(n.sendInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := n.SendRecap(ctx, n.channelID); err != nil {
				// Следующая сводка может пройти, поэтому воркер не останавливаем
				log.Error().Err(err).Msg("failed to send recap")
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// SendRecap отправляет сводку в чат chatID
func (n *Notifier) SendRecap(ctx context.Context, chatID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	articles, err := n.articles.Current()
	if err != nil {
		return fmt.Errorf("reading saved articles: %w", err)
	}

	msg := tgbotapi.NewMessage(chatID, FormatRecap(articles, n.now().In(n.loc)))
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	msg.DisableWebPagePreview = true

	if _, err := n.bot.Send(msg); err != nil {
		return err
	}

	log.Info().Int64("chat", chatID).Int("articles", len(articles)).Msg("recap sent")

	return nil
}

// FormatRecap собирает текст сводки в MarkdownV2
func FormatRecap(articles []model.Article, date time.Time) string {
	header := fmt.Sprintf(
		"📰 *%s*\n%s",
		markup.EscapeForMarkdown("Daily Recap, "+date.Format("Monday, January 02")),
		markup.EscapeForMarkdown("Reply /veto N to veto #N, e.g. /veto 2 4"),
	)

	if len(articles) == 0 {
		return header + "\n\n" + markup.EscapeForMarkdown("Nothing saved yet.")
	}

	entries := lo.Map(articles, func(article model.Article, i int) string {
		return markup.EscapeForMarkdown(Entry(i+1, article))
	})

	return header + "\n\n" + strings.Join(entries, "\n\n")
}

// Entry - одна статья сводки. Подпись обрезается так, чтобы вся запись укладывалась в EntryBudget символов.
func Entry(n int, article model.Article) string {
	prefix := fmt.Sprintf("%d. ", n)
	if article.Approval == model.Rejected {
		prefix += "🚫 "
	}
	prefix += article.Title + "\n"

	caption := article.Caption
	if runeLen(prefix)+runeLen(caption) <= EntryBudget {
		return prefix + caption
	}

	keep := EntryBudget - runeLen(prefix) - len("...")
	if keep < 0 {
		keep = 0
	}

	return prefix + strings.TrimRight(string([]rune(caption)[:keep]), " \t\n") + "..."
}

func runeLen(s string) int {
	return len([]rune(s))
}
