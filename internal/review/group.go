package review

import (
	"sort"

	"github.com/samber/lo"

	"github.com/kovalyov-valentin/news-selects/internal/model"
)

// Сколько дней помещается на одну страницу дашборда
const DefaultDaysPerPage = 3

// DayGroup - статьи, опубликованные в один календарный день
type DayGroup struct {
	Day      string          `json:"day"`
	Articles []model.Article `json:"articles"`
}

// GroupByDay раскладывает статьи по дням публикации.
// Внутри дня порядок статей исходный, сами дни идут от свежих к старым.
// Статьи без разбираемой даты в группы не попадают.
func GroupByDay(articles []model.Article) []DayGroup {
	dated := lo.Filter(articles, func(article model.Article, _ int) bool {
		_, ok := DayKey(article.Published)
		return ok
	})

	byDay := lo.GroupBy(dated, func(article model.Article) string {
		day, _ := DayKey(article.Published)
		return day
	})

	days := lo.Keys(byDay)
	// YYYY-MM-DD сортируется лексикографически так же, как по дате
	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	return lo.Map(days, func(day string, _ int) DayGroup {
		return DayGroup{Day: day, Articles: byDay[day]}
	})
}

// Page - одна страница групп по дням
type Page struct {
	Index  int        `json:"page"`
	Total  int        `json:"totalPages"`
	Groups []DayGroup `json:"groups"`
}

// TotalPages - сколько страниц получится из n групп.
// Даже пустой список - это одна (пустая) страница.
func TotalPages(n, size int) int {
	if size <= 0 {
		size = DefaultDaysPerPage
	}
	if n == 0 {
		return 1
	}
	return (n + size - 1) / size
}

// ClampPage загоняет номер страницы в [0, total-1]
func ClampPage(page, total int) int {
	return lo.Clamp(page, 0, max(total-1, 0))
}

// Paginate отдает страницу page из групп, номер страницы зажимается в допустимые границы
func Paginate(groups []DayGroup, page, size int) Page {
	if size <= 0 {
		size = DefaultDaysPerPage
	}

	total := TotalPages(len(groups), size)
	page = ClampPage(page, total)

	chunks := lo.Chunk(groups, size)
	result := Page{Index: page, Total: total, Groups: []DayGroup{}}
	if page < len(chunks) {
		result.Groups = chunks[page]
	}
	return result
}

// Pager - состояние пагинации на дашборде: текущая страница и переходы вперед/назад.
// Начальное состояние - 0, конечного состояния нет.
type Pager struct {
	page  int
	total int
}

func NewPager(groups, size int) *Pager {
	return &Pager{total: TotalPages(groups, size)}
}

func (p *Pager) Page() int { return p.page }

func (p *Pager) Total() int { return p.total }

// Next на последней странице ничего не меняет
func (p *Pager) Next() int {
	p.page = ClampPage(p.page+1, p.total)
	return p.page
}

// Prev на первой странице ничего не меняет
func (p *Pager) Prev() int {
	p.page = ClampPage(p.page-1, p.total)
	return p.page
}

// Resize пересчитывает число страниц, когда список групп поменялся
func (p *Pager) Resize(groups, size int) {
	p.total = TotalPages(groups, size)
	p.page = ClampPage(p.page, p.total)
}
