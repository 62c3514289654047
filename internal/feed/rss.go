package feed

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gorilla/feeds"
	"github.com/samber/lo"

	"github.com/kovalyov-valentin/news-selects/internal/model"
	"github.com/kovalyov-valentin/news-selects/internal/review"
)

// Channel - шапка ленты
type Channel struct {
	Title       string
	Link        string
	Description string
}

// Build собирает ленту из статей. Отклоненные статьи в ленту не попадают.
func Build(channel Channel, articles []model.Article, built time.Time) *feeds.Feed {
	return &feeds.Feed{
		Title:       channel.Title,
		Link:        &feeds.Link{Href: channel.Link},
		Description: channel.Description,
		Updated:     built.UTC(),
		Items: lo.FilterMap(articles, func(article model.Article, _ int) (*feeds.Item, bool) {
			return item(article), article.Approval != model.Rejected
		}),
	}
}

func item(article model.Article) *feeds.Item {
	it := &feeds.Item{
		Title:       article.Title,
		Link:        &feeds.Link{Href: article.Link},
		Id:          article.Link,
		Description: article.Caption,
	}

	// Без разобранной даты pubDate не пишется
	if published, ok := review.ParsePublished(article.Published); ok {
		it.Created = published
	}

	return it
}

// Write пишет RSS 2.0 ленту из статей
func Write(w io.Writer, channel Channel, articles []model.Article, built time.Time) error {
	if err := Build(channel, articles, built).WriteRss(w); err != nil {
		return fmt.Errorf("encoding feed: %w", err)
	}
	return nil
}

// WriteFile пишет ленту в файл, создавая каталог при необходимости
func WriteFile(path string, channel Channel, articles []model.Article, built time.Time) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := Write(f, channel, articles, built); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
