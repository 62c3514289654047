package model

import "time"

// Элемент ленты, как он пришел из RSS источника
type Item struct {
	// Название статьи
	Title string
	// Категории статей
	Categories []string
	// Ссылка
	Link string
	// Дата публикации в источнике
	Date time.Time
	// Краткая выжимка
	Summary string
	// Имя источника (название фида)
	SourceName string
}

// Модель источника. Источники задаются в конфиге, для postgres еще и в таблице sources
type Source struct {
	// Имя
	Name string
	// Урл откуда забираем данные
	FeedURL string
}

// Статья-кандидат, которую редактор просматривает на дашборде.
// Link - идентификатор статьи внутри выборки.
type Article struct {
	Title  string `json:"title"`
	Link   string `json:"link"`
	Source string `json:"source"`
	// Дата публикации в ISO-8601, первые 10 символов - день публикации
	Published string `json:"published"`
	// Подпись, которую редактирует оператор
	Caption  string   `json:"caption"`
	Approval Approval `json:"approval"`
}

// Строка таблицы в фиксированной раскладке колонок.
// Ячеек может быть меньше чем колонок, если хвост строки пустой.
type Row []string

// Порядок колонок в строке
const (
	ColTitle = iota
	ColLink
	ColSource
	ColPublished
	ColCaption
	ColApproval

	RowWidth
)

// Cell возвращает ячейку строки или пустую строку, если ячейки нет
func (r Row) Cell(col int) string {
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}
