package review

import (
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/kovalyov-valentin/news-selects/internal/model"
)

// Сколько статей показываем на дашборде
const DefaultRecentLimit = 5

// Recent возвращает не больше limit статей, по одной на каждый link.
// Из дублей остается самая свежая, весь результат отсортирован по убыванию даты публикации.
func Recent(articles []model.Article, limit int) []model.Article {
	sorted := SortByPublishedDesc(articles)

	// UniqBy оставляет первое вхождение, а после сортировки первым идет самый свежий дубль
	unique := lo.UniqBy(sorted, func(article model.Article) string {
		return article.Link
	})

	if limit >= 0 && len(unique) > limit {
		unique = unique[:limit]
	}
	return unique
}

// SortByPublishedDesc - стабильная сортировка копии по убыванию даты публикации
func SortByPublishedDesc(articles []model.Article) []model.Article {
	type keyed struct {
		article   model.Article
		published time.Time
		valid     bool
	}

	items := lo.Map(articles, func(article model.Article, _ int) keyed {
		t := publishedOrOldest(article.Published)
		return keyed{article: article, published: t, valid: !t.Equal(oldest)}
	})

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.valid != b.valid {
			return a.valid
		}
		return a.published.After(b.published)
	})

	return lo.Map(items, func(item keyed, _ int) model.Article {
		return item.article
	})
}
