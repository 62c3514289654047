package storage

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"

	"github.com/kovalyov-valentin/news-selects/internal/model"
)

// SourcePostgresStorage - RSS фиды, заведенные в таблице sources.
// Используется вместе с фидами из конфига, когда хранилище - postgres.
type SourcePostgresStorage struct {
	db *sqlx.DB
}

func NewSourcePostgresStorage(db *sqlx.DB) *SourcePostgresStorage {
	return &SourcePostgresStorage{db: db}
}

// Sources - список фидов в порядке добавления
func (s *SourcePostgresStorage) Sources(ctx context.Context) ([]model.Source, error) {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	var sources []dbSource
	if err := conn.SelectContext(ctx, &sources, `SELECT name, feed_url FROM sources ORDER BY id`); err != nil {
		return nil, err
	}

	return lo.Map(sources, func(source dbSource, _ int) model.Source {
		return model.Source(source)
	}), nil
}

// Add заводит фид. Повторное добавление того же урла обновляет имя.
func (s *SourcePostgresStorage) Add(ctx context.Context, source model.Source) error {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	_, err = conn.ExecContext(
		ctx,
		`INSERT INTO sources (name, feed_url) VALUES ($1, $2)
		 ON CONFLICT (feed_url) DO UPDATE SET name = EXCLUDED.name`,
		source.Name,
		source.FeedURL,
	)

	return err
}

// Внутренняя модель, чтобы правильно мапить колонки таблицы
type dbSource struct {
	Name    string `db:"name"`
	FeedURL string `db:"feed_url"`
}
