package review

import (
	"time"

	"github.com/samber/lo"

	"github.com/kovalyov-valentin/news-selects/internal/model"
)

// Шапка листа, если лист еще пустой
var DefaultHeader = model.Row{"Title", "Link", "Source", "Published"}

// Шапка листа с отобранными статьями
var SelectsHeader = model.Row{"Title", "Link", "Source", "Published", "Caption", "Approval"}

// DayReplacement - итог пересборки листа за день
type DayReplacement struct {
	Rows    []model.Row
	Removed int
	Added   int
}

// ReplaceDay пересобирает строки листа: выкидывает строки, опубликованные в day
// (день считается в часовом поясе loc), и дописывает в конец свежие строки без дублей по заголовку.
// Строки с неразбираемой датой остаются, строки без колонки даты выкидываются.
func ReplaceDay(rows []model.Row, day string, loc *time.Location, fresh []model.Row) DayReplacement {
	var result DayReplacement

	for _, row := range rows {
		if len(row) <= model.ColPublished {
			continue
		}

		published, ok := ParsePublished(row[model.ColPublished])
		if ok && published.In(loc).Format("2006-01-02") == day {
			result.Removed++
			continue
		}

		result.Rows = append(result.Rows, row)
	}

	unique := lo.UniqBy(fresh, func(row model.Row) string {
		return row.Cell(model.ColTitle)
	})

	result.Rows = append(result.Rows, unique...)
	result.Added = len(unique)

	return result
}

// IngestRow - строка сырого месячного листа (без подписи и решения)
func IngestRow(article model.Article) model.Row {
	return model.Row{article.Title, article.Link, article.Source, article.Published}
}
