package selector

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/tomakado/containers/set"

	"github.com/kovalyov-valentin/news-selects/internal/desk"
	"github.com/kovalyov-valentin/news-selects/internal/llm"
	"github.com/kovalyov-valentin/news-selects/internal/model"
	"github.com/kovalyov-valentin/news-selects/internal/review"
)

const (
	DefaultCount = 5

	// Больше заголовков в один запрос не отправляем
	maxHeadlines = 60
	// Столько общих слов в заголовках считаются одной и той же историей
	overlapWords = 3
)

type Completer interface {
	Complete(ctx context.Context, prompt llm.Prompt) (string, error)
}

// Selector отбирает лучшие вчерашние статьи месячного листа в лист selects
type Selector struct {
	store desk.TabStore
	llm   Completer
	loc   *time.Location
	count int
	now   func() time.Time
}

func New(store desk.TabStore, completer Completer, loc *time.Location, count int) *Selector {
	if loc == nil {
		loc = time.UTC
	}
	if count <= 0 {
		count = DefaultCount
	}

	return &Selector{
		store: store,
		llm:   completer,
		loc:   loc,
		count: count,
		now:   time.Now,
	}
}

// Run берет вчерашние статьи месячного листа, выбирает из них лучшие
// и перезаписывает ими вчерашний день в листе selects
func (s *Selector) Run(ctx context.Context) ([]model.Article, error) {
	now := s.now()
	day := now.In(s.loc).AddDate(0, 0, -1).Format("2006-01-02")

	monthly := review.MonthlyTab(now, s.loc)
	rows, err := s.store.AllRows(ctx, monthly)
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		rows = rows[1:]
	}

	candidates := lo.Filter(review.Normalize(rows), func(article model.Article, _ int) bool {
		published, ok := review.ParsePublished(article.Published)
		return ok && published.In(s.loc).Format("2006-01-02") == day
	})

	log.Info().Str("tab", monthly).Str("day", day).Int("candidates", len(candidates)).Msg("ranking candidates")

	selected := s.Rank(ctx, candidates)

	fresh := lo.Map(selected, func(article model.Article, _ int) model.Row {
		return review.IngestRow(article)
	})

	if _, err := desk.ReplaceDay(ctx, s.store, review.SelectsTab(now, s.loc), review.SelectsHeader, day, s.loc, fresh); err != nil {
		return nil, err
	}

	return selected, nil
}

// Rank просит модель выбрать count заголовков и сопоставляет ответ со статьями по точному заголовку.
// Статьи, похожие на уже выбранные, отбрасываются. Недостающие места добираются из остальных
// статей по тому же правилу. Если модель недоступна, выбор идет только по этому правилу.
func (s *Selector) Rank(ctx context.Context, articles []model.Article) []model.Article {
	if len(articles) == 0 {
		return nil
	}

	var picked picks

	answer, err := s.llm.Complete(ctx, rankPrompt(lo.Subset(articles, 0, maxHeadlines), s.count))
	if err != nil {
		log.Warn().Err(err).Msg("ranking failed, falling back to feed order")
	}

	byTitle := lo.KeyBy(lo.Reverse(append([]model.Article(nil), articles...)), func(article model.Article) string {
		return article.Title
	})

	for _, title := range parseTitles(answer) {
		article, ok := byTitle[title]
		if !ok {
			continue
		}
		picked.tryAdd(article)
	}

	log.Info().Int("picked", len(picked.articles)).Msg("model picks mapped")

	for _, article := range articles {
		if len(picked.articles) >= s.count {
			break
		}
		picked.tryAdd(article)
	}

	return lo.Subset(picked.articles, 0, uint(s.count))
}

type picks struct {
	articles []model.Article
}

func (p *picks) tryAdd(article model.Article) bool {
	for _, chosen := range p.articles {
		if chosen.Title == article.Title || similar(chosen.Title, article.Title) {
			return false
		}
	}

	p.articles = append(p.articles, article)
	return true
}

// Заголовки похожи, если у них не меньше overlapWords общих слов
func similar(a, b string) bool {
	words := set.New(strings.Fields(strings.ToLower(a))...)

	common := lo.Uniq(lo.Filter(strings.Fields(strings.ToLower(b)), func(word string, _ int) bool {
		return words.Contains(word)
	}))

	return len(common) >= overlapWords
}

// parseTitles разбирает ответ модели: заголовок на строку, маркеры списка срезаются
func parseTitles(answer string) []string {
	lines := lo.Map(strings.Split(answer, "\n"), func(line string, _ int) string {
		return strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "- "))
	})

	return lo.Filter(lines, func(line string, _ int) bool {
		return line != ""
	})
}

func rankPrompt(articles []model.Article, count int) llm.Prompt {
	headlines := lo.Map(articles, func(article model.Article, _ int) string {
		return "- " + article.Title
	})

	return llm.Prompt{
		System: "You are a helpful assistant.",
		User: fmt.Sprintf(`You are a music editor for a positive, fan-driven live music publication. From the list of music news headlines below, select the %[1]d most exciting, uplifting, and buzzworthy ones that would perform well on social media and align with our publication's upbeat tone.

Avoid stories that are primarily negative (e.g. illnesses, arrests, scandals, cancellations). Focus on live show announcements, tours, new music, fun moments, and artist milestones.

Make sure to select a variety of artists — do not include multiple headlines about the same artist or event.

%[2]s

Return exactly %[1]d headlines, each on a new line, using the original wording.`, count, strings.Join(headlines, "\n")),
		Temperature: 0.7,
	}
}
