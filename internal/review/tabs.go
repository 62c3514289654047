package review

import (
	"time"

	// часовые пояса нужны даже там, где в системе нет zoneinfo
	_ "time/tzdata"
)

// MonthlyTab - лист с сырыми статьями за месяц, например "May 2025"
func MonthlyTab(now time.Time, loc *time.Location) string {
	return now.In(loc).Format("January 2006")
}

// SelectsTab - лист с отобранными статьями, которые смотрит редактор
func SelectsTab(now time.Time, loc *time.Location) string {
	return MonthlyTab(now, loc) + " (selects)"
}
