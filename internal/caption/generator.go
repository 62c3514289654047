package caption

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/kovalyov-valentin/news-selects/internal/llm"
	"github.com/kovalyov-valentin/news-selects/internal/model"
	"github.com/kovalyov-valentin/news-selects/internal/review"
)

const (
	// Подпись на случай, когда модель так и не ответила
	Fallback = "🎶 New headline in music — check it out!"

	maxAttempts = 5
	// С этой попытки просим модель уйти от прежних формулировок
	forceVarietyFrom = 2
)

const (
	systemPrompt  = "You are a music-savvy, fun social media editor."
	captionPrompt = "Write a short, upbeat social media caption for a music news headline. " +
		"Use a fun and engaging tone, include emojis if appropriate, and make it feel human and fresh. " +
		"Avoid using the phrases 'get ready', 'can't wait', 'don't miss', 'breaking news', or 'mark your calendars' excessively. " +
		"Vary your structure across posts and keep captions under 25 words."
	varietyPrompt = "\nAvoid using any previous structure or phrase pattern."
)

type Completer interface {
	Complete(ctx context.Context, prompt llm.Prompt) (string, error)
}

type ExcerptProvider interface {
	Excerpt(ctx context.Context, link string) (string, error)
}

// Articles - загрузка и сохранение рабочего списка
type Articles interface {
	Load(ctx context.Context) ([]model.Article, error)
	Save(ctx context.Context, articles []model.Article) error
}

// Generator дописывает подписи статьям, у которых их нет
type Generator struct {
	llm      Completer
	excerpts ExcerptProvider
	strict   bool
}

// NewGenerator создает генератор. excerpts может быть nil, тогда модель видит только заголовок.
func NewGenerator(completer Completer, excerpts ExcerptProvider, strict bool) *Generator {
	return &Generator{
		llm:      completer,
		excerpts: excerpts,
		strict:   strict,
	}
}

// Run подписывает статьи рабочего списка без подписи и сохраняет список
func (g *Generator) Run(ctx context.Context, articles Articles) ([]model.Article, error) {
	current, err := articles.Load(ctx)
	if err != nil {
		return nil, err
	}

	captioned := g.Caption(ctx, current)

	if err := articles.Save(ctx, captioned); err != nil {
		return nil, err
	}

	return captioned, nil
}

// Caption возвращает копию списка, где у каждой статьи без подписи она появилась.
// Уже существующие подписи не меняются, но учитываются при проверке на повторы.
func (g *Generator) Caption(ctx context.Context, articles []model.Article) []model.Article {
	usage := NewUsage(g.strict)
	ws := review.NewWorkingSet(articles)

	existing := lo.Filter(articles, func(article model.Article, _ int) bool {
		return article.Caption != ""
	})
	for _, article := range existing {
		usage.Record(article.Caption)
	}

	for _, article := range articles {
		if article.Caption != "" {
			continue
		}

		ws = ws.WithCaption(article.Link, g.captionFor(ctx, usage, article))
	}

	return ws.Articles()
}

func (g *Generator) captionFor(ctx context.Context, usage *Usage, article model.Article) string {
	logger := log.With().Str("title", article.Title).Logger()
	excerpt := g.excerpt(ctx, article.Link)

	var text string
	for attempt := 0; attempt < maxAttempts; attempt++ {
		generated, err := g.llm.Complete(ctx, prompt(article.Title, excerpt, attempt >= forceVarietyFrom))
		if errors.Is(err, llm.ErrDisabled) || ctx.Err() != nil {
			break
		}
		if err != nil {
			logger.Warn().Err(err).Int("attempt", attempt+1).Msg("caption generation failed")
			continue
		}
		text = generated

		switch usage.Check(text) {
		case Valid:
			usage.Record(text)
			logger.Debug().Str("caption", text).Msg("caption accepted")
			return text
		case Soft:
			usage.Record(text)
			logger.Info().Str("caption", text).Msg("caption accepted despite repetition")
			return text
		default:
			logger.Debug().Int("attempt", attempt+1).Msg("caption rejected, retrying")
		}
	}

	if text == "" {
		logger.Warn().Msg("using fallback caption")
		return Fallback
	}

	return text
}

func (g *Generator) excerpt(ctx context.Context, link string) string {
	if g.excerpts == nil || link == "" {
		return ""
	}

	text, err := g.excerpts.Excerpt(ctx, link)
	if err != nil {
		log.Warn().Err(err).Str("link", link).Msg("failed to extract excerpt")
		return ""
	}
	return text
}

func prompt(title, excerpt string, forceVariety bool) llm.Prompt {
	user := captionPrompt + "\n\nHeadline: " + title
	if excerpt != "" {
		user += "\nArticle excerpt: " + excerpt
	}
	if forceVariety {
		user += varietyPrompt
	}

	return llm.Prompt{
		System:      systemPrompt,
		User:        user,
		Temperature: 0.85,
		MaxTokens:   60,
	}
}
