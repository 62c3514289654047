package desk

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kovalyov-valentin/news-selects/internal/model"
	"github.com/kovalyov-valentin/news-selects/internal/review"
)

// TabStore - хранилище, которое умеет перезаписывать вкладку целиком
type TabStore interface {
	AllRows(ctx context.Context, tab string) ([]model.Row, error)
	ReplaceAll(ctx context.Context, tab string, header model.Row, rows []model.Row) error
}

// ReplaceDay перезаписывает во вкладке строки за день day свежими строками.
// Шапка вкладки сохраняется, у пустой вкладки пишется header.
func ReplaceDay(ctx context.Context, store TabStore, tab string, header model.Row, day string, loc *time.Location, fresh []model.Row) (review.DayReplacement, error) {
	all, err := store.AllRows(ctx, tab)
	if err != nil {
		return review.DayReplacement{}, err
	}

	var body []model.Row
	if len(all) > 0 {
		header, body = all[0], all[1:]
	}

	replacement := review.ReplaceDay(body, day, loc, fresh)

	if err := store.ReplaceAll(ctx, tab, header, replacement.Rows); err != nil {
		return replacement, err
	}

	log.Info().
		Str("tab", tab).
		Str("day", day).
		Int("removed", replacement.Removed).
		Int("added", replacement.Added).
		Msg("tab day replaced")

	return replacement, nil
}
