package review

import "github.com/kovalyov-valentin/news-selects/internal/model"

// WorkingSet - рабочий список оператора.
// Изменения адресуются по link, каждое изменение возвращает новый список, исходный не трогается.
type WorkingSet struct {
	articles []model.Article
	index    map[string]int
}

func NewWorkingSet(articles []model.Article) WorkingSet {
	ws := WorkingSet{
		articles: append([]model.Article(nil), articles...),
		index:    make(map[string]int, len(articles)),
	}
	for i, article := range ws.articles {
		if _, ok := ws.index[article.Link]; !ok {
			ws.index[article.Link] = i
		}
	}
	return ws
}

// Articles - копия статей в исходном порядке
func (ws WorkingSet) Articles() []model.Article {
	return append([]model.Article{}, ws.articles...)
}

func (ws WorkingSet) Len() int { return len(ws.articles) }

func (ws WorkingSet) Get(link string) (model.Article, bool) {
	i, ok := ws.index[link]
	if !ok {
		return model.Article{}, false
	}
	return ws.articles[i], true
}

// LinkAt - link статьи по ее номеру в списке (с нуля)
func (ws WorkingSet) LinkAt(i int) (string, bool) {
	if i < 0 || i >= len(ws.articles) {
		return "", false
	}
	return ws.articles[i].Link, true
}

func (ws WorkingSet) WithCaption(link, caption string) WorkingSet {
	return ws.update(link, func(article model.Article) model.Article {
		article.Caption = caption
		return article
	})
}

func (ws WorkingSet) ToggleApprove(link string) WorkingSet {
	return ws.update(link, func(article model.Article) model.Article {
		article.Approval = article.Approval.ToggleApprove()
		return article
	})
}

func (ws WorkingSet) ToggleReject(link string) WorkingSet {
	return ws.update(link, func(article model.Article) model.Article {
		article.Approval = article.Approval.ToggleReject()
		return article
	})
}

// Reject, в отличие от ToggleReject, не снимает отказ при повторном вызове
func (ws WorkingSet) Reject(link string) WorkingSet {
	return ws.update(link, func(article model.Article) model.Article {
		article.Approval = model.Rejected
		return article
	})
}

func (ws WorkingSet) update(link string, fn func(model.Article) model.Article) WorkingSet {
	i, ok := ws.index[link]
	if !ok {
		return ws
	}

	articles := append([]model.Article(nil), ws.articles...)
	articles[i] = fn(articles[i])

	return WorkingSet{articles: articles, index: ws.index}
}
