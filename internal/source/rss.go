package source

import (
	"context"
	"strings"

	"github.com/SlyMarbo/rss"
	"github.com/samber/lo"

	"github.com/kovalyov-valentin/news-selects/internal/model"
)

// FetchFunc скачивает и разбирает ленту по урлу. В тестах подменяется.
type FetchFunc func(url string) (*rss.Feed, error)

// RSS клиент для одного фида из конфига
type RSSSource struct {
	URL        string
	SourceName string

	fetch FetchFunc
}

func NewRSSSourceFromModel(m model.Source) RSSSource {
	return RSSSource{
		URL:        m.FeedURL,
		SourceName: m.Name,
		fetch:      rss.Fetch,
	}
}

// WithFetch возвращает копию источника с другой функцией загрузки
func (s RSSSource) WithFetch(fetch FetchFunc) RSSSource {
	s.fetch = fetch
	return s
}

// Fetch загружает ленту и мапит ее элементы в model.Item.
// Если имя источника не задано в конфиге, берется заголовок фида.
func (s RSSSource) Fetch(ctx context.Context) ([]model.Item, error) {
	feed, err := s.loadFeed(ctx, s.URL)
	if err != nil {
		return nil, err
	}

	name := s.SourceName
	if name == "" {
		name = strings.TrimSpace(feed.Title)
	}

	return lo.Map(feed.Items, func(item *rss.Item, _ int) model.Item {
		return model.Item{
			Title:      strings.TrimSpace(item.Title),
			Categories: item.Categories,
			Link:       item.Link,
			Date:       item.Date,
			Summary:    item.Summary,
			SourceName: name,
		}
	}), nil
}

// Библиотека не принимает контекст, поэтому загрузка идет в горутине, а мы ждем либо ее, либо отмену
func (s RSSSource) loadFeed(ctx context.Context, url string) (*rss.Feed, error) {
	fetch := s.fetch
	if fetch == nil {
		fetch = rss.Fetch
	}

	var (
		feedCh = make(chan *rss.Feed, 1)
		errCh  = make(chan error, 1)
	)

	go func() {
		feed, err := fetch(url)
		if err != nil {
			errCh <- err
			return
		}

		feedCh <- feed
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case err := <-errCh:
		return nil, err
	case feed := <-feedCh:
		return feed, nil
	}
}

func (s RSSSource) Name() string {
	if s.SourceName != "" {
		return s.SourceName
	}
	return s.URL
}
