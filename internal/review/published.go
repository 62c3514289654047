package review

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Форматы, которые встречаются в колонке published.
// Сначала пробуем их, и только потом отдаем строку dateparse.
var publishedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
}

// ParsePublished разбирает дату публикации.
// ok == false означает, что дату разобрать не удалось.
func ParsePublished(value string) (t time.Time, ok bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	for _, layout := range publishedLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}

	t, err := dateparse.ParseAny(value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Неразобранная дата считается самой старой из возможных
var oldest = time.Time{}

func publishedOrOldest(value string) time.Time {
	if t, ok := ParsePublished(value); ok {
		return t
	}
	return oldest
}

// DayKey - календарный день публикации (YYYY-MM-DD).
// Дата должна разбираться ParsePublished, иначе статья в группы не попадает.
// Если строка начинается с YYYY-MM-DD, берется этот префикс без перевода в другой пояс,
// иначе день берется из разобранного времени.
func DayKey(published string) (string, bool) {
	t, ok := ParsePublished(published)
	if !ok {
		return "", false
	}

	published = strings.TrimSpace(published)
	if len(published) >= len(dayLayout) {
		key := published[:len(dayLayout)]
		if _, err := time.Parse(dayLayout, key); err == nil {
			return key, true
		}
	}

	return t.Format(dayLayout), true
}

const dayLayout = "2006-01-02"
