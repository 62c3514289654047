package review

import (
	"github.com/samber/lo"

	"github.com/kovalyov-valentin/news-selects/internal/model"
)

// Patch - результат сверки отредактированного списка с тем, что лежит в хранилище.
// Rows всегда той же длины, что и исходные строки.
type Patch struct {
	Rows []model.Row
	// Сколько строк переписано статьями оператора
	Updated int
	// Ссылки статей, для которых в хранилище не нашлось строки.
	// Такие статьи не добавляются: новых строк сохранение не создает.
	Unmatched []string
}

// PlanMerge сверяет строки хранилища со статьями оператора по link.
// Совпавшая строка заменяется строкой из статьи, остальные строки проходят без изменений.
func PlanMerge(existing []model.Row, articles []model.Article) Patch {
	// При дублях в присланном списке выигрывает первое вхождение
	unique := lo.UniqBy(articles, func(article model.Article) string { return article.Link })
	byLink := lo.KeyBy(unique, func(article model.Article) string { return article.Link })

	patch := Patch{Rows: make([]model.Row, len(existing))}
	matched := make(map[string]struct{}, len(byLink))

	for i, row := range existing {
		article, ok := byLink[row.Cell(model.ColLink)]
		if !ok {
			patch.Rows[i] = row
			continue
		}

		patch.Rows[i] = ToRow(article)
		patch.Updated++
		matched[article.Link] = struct{}{}
	}

	for _, article := range unique {
		if _, ok := matched[article.Link]; !ok {
			patch.Unmatched = append(patch.Unmatched, article.Link)
		}
	}

	return patch
}
