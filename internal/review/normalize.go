package review

import (
	"github.com/samber/lo"

	"github.com/kovalyov-valentin/news-selects/internal/model"
)

// Normalize превращает сырые строки таблицы в статьи.
// Строки без даты публикации выкидываются: это пустые строки в хвосте листа.
func Normalize(rows []model.Row) []model.Article {
	articles := lo.FilterMap(rows, func(row model.Row, _ int) (model.Article, bool) {
		article := FromRow(row)
		return article, article.Published != ""
	})

	if articles == nil {
		return []model.Article{}
	}
	return articles
}

// FromRow - одна строка в статью, недостающие ячейки становятся пустыми
func FromRow(row model.Row) model.Article {
	return model.Article{
		Title:     row.Cell(model.ColTitle),
		Link:      row.Cell(model.ColLink),
		Source:    row.Cell(model.ColSource),
		Published: row.Cell(model.ColPublished),
		Caption:   row.Cell(model.ColCaption),
		Approval:  model.ParseApproval(row.Cell(model.ColApproval)),
	}
}

// ToRow - обратное преобразование, решение пишется маркером или пустой ячейкой
func ToRow(article model.Article) model.Row {
	return model.Row{
		article.Title,
		article.Link,
		article.Source,
		article.Published,
		article.Caption,
		article.Approval.Marker(),
	}
}
