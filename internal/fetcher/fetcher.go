package fetcher

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/tomakado/containers/set"

	"github.com/kovalyov-valentin/news-selects/internal/desk"
	"github.com/kovalyov-valentin/news-selects/internal/model"
	"github.com/kovalyov-valentin/news-selects/internal/review"
	"github.com/kovalyov-valentin/news-selects/internal/source"
)

// Сколько статей за день попадает в месячный лист, если в конфиге не задано
const DefaultMaxArticles = 50

// Интерфейс источника
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]model.Item, error)
}

// Fetcher собирает вчерашние статьи из RSS лент и перезаписывает ими день в месячном листе
type Fetcher struct {
	store   desk.TabStore
	sources []Source

	// Часовой пояс, в котором считается "вчера" и месяц листа
	loc *time.Location
	// Фильтрация статей по ключевым словам
	filterKeywords []string
	maxArticles    int

	now func() time.Time
}

// NewFetcher создает сборщик по списку фидов из конфига
func NewFetcher(store desk.TabStore, feeds []model.Source, loc *time.Location, filterKeywords []string, maxArticles int) *Fetcher {
	sources := lo.Map(feeds, func(feed model.Source, _ int) Source {
		return source.NewRSSSourceFromModel(feed)
	})

	return newFetcher(store, sources, loc, filterKeywords, maxArticles)
}

func newFetcher(store desk.TabStore, sources []Source, loc *time.Location, filterKeywords []string, maxArticles int) *Fetcher {
	if loc == nil {
		loc = time.UTC
	}
	if maxArticles <= 0 {
		maxArticles = DefaultMaxArticles
	}

	return &Fetcher{
		store:   store,
		sources: sources,
		loc:     loc,
		filterKeywords: lo.Map(filterKeywords, func(keyword string, _ int) string {
			return strings.ToLower(strings.TrimSpace(keyword))
		}),
		maxArticles: maxArticles,
		now:         time.Now,
	}
}

// Start запускает сбор сразу и затем по interval, пока не отменят ctx
func (f *Fetcher) Start(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if _, err := f.Run(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := f.Run(ctx); err != nil {
				return err
			}
		}
	}
}

// Run собирает статьи за вчера и перезаписывает этот день в листе текущего месяца
func (f *Fetcher) Run(ctx context.Context) ([]model.Article, error) {
	articles := f.Fetch(ctx)

	now := f.now()
	tab := review.MonthlyTab(now, f.loc)
	day := yesterday(now, f.loc)

	rows := lo.Map(articles, func(article model.Article, _ int) model.Row {
		return review.IngestRow(article)
	})

	if _, err := desk.ReplaceDay(ctx, f.store, tab, review.DefaultHeader, day, f.loc, rows); err != nil {
		return nil, err
	}

	return articles, nil
}

// Fetch опрашивает все источники параллельно и возвращает вчерашние статьи:
// без дублей по заголовку, от новых к старым, не больше maxArticles.
// Ошибка одного источника не мешает остальным.
func (f *Fetcher) Fetch(ctx context.Context) []model.Article {
	var (
		wg      sync.WaitGroup
		results = make([][]model.Item, len(f.sources))
	)

	for i, src := range f.sources {
		wg.Add(1)

		go func(i int, source Source) {
			defer wg.Done()

			items, err := source.Fetch(ctx)
			if err != nil {
				log.Error().Err(err).Str("source", source.Name()).Msg("failed to fetch items")
				return
			}

			results[i] = items
		}(i, src)
	}

	wg.Wait()

	day := yesterday(f.now(), f.loc)

	var (
		fresh []model.Item
		seen  = make(map[string]struct{})
	)
	for _, item := range lo.Flatten(results) {
		if item.Date.IsZero() || item.Date.In(f.loc).Format("2006-01-02") != day {
			continue
		}
		if f.itemShouldBeSkipped(item) {
			continue
		}
		if _, ok := seen[item.Title]; ok {
			continue
		}
		seen[item.Title] = struct{}{}
		fresh = append(fresh, item)
	}

	sort.SliceStable(fresh, func(i, j int) bool {
		return fresh[i].Date.After(fresh[j].Date)
	})

	articles := lo.Map(fresh, func(item model.Item, _ int) model.Article {
		return model.Article{
			Title:     item.Title,
			Link:      item.Link,
			Source:    item.SourceName,
			Published: item.Date.In(f.loc).Format(time.RFC3339),
		}
	})

	if len(articles) > f.maxArticles {
		articles = articles[:f.maxArticles]
	}

	log.Info().Str("day", day).Int("articles", len(articles)).Msg("articles fetched")

	return articles
}

// Статья пропускается, если ключевое слово есть в ее категориях или в заголовке
func (f *Fetcher) itemShouldBeSkipped(item model.Item) bool {
	categoriesSet := set.New(lo.Map(item.Categories, func(category string, _ int) string {
		return strings.ToLower(category)
	})...)
	title := strings.ToLower(item.Title)

	for _, keyword := range f.filterKeywords {
		if keyword == "" {
			continue
		}
		if categoriesSet.Contains(keyword) || strings.Contains(title, keyword) {
			return true
		}
	}

	return false
}

func yesterday(now time.Time, loc *time.Location) string {
	return now.In(loc).AddDate(0, 0, -1).Format("2006-01-02")
}
