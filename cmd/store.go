package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/samber/lo"

	"github.com/kovalyov-valentin/news-selects/internal/config"
	"github.com/kovalyov-valentin/news-selects/internal/desk"
	"github.com/kovalyov-valentin/news-selects/internal/model"
	"github.com/kovalyov-valentin/news-selects/internal/storage"
)

// Хранилище строк со всеми операциями, которые нужны командам
type rowStore interface {
	desk.RowStore
	desk.TabStore
}

// backend открывает хранилище, выбранное в конфиге.
// Для sheets клиент создается на каждый вызов, для postgres пул соединений общий.
type backend struct {
	cfg config.Config

	once sync.Once
	db   *sqlx.DB
	err  error
}

func newBackend(c config.Config) *backend {
	return &backend{cfg: c}
}

func (b *backend) postgres() (*sqlx.DB, error) {
	b.once.Do(func() {
		if b.cfg.DatabaseDSN == "" {
			b.err = fmt.Errorf("%w: missing database dsn", storage.ErrNotConfigured)
			return
		}
		b.db, b.err = sqlx.Open("postgres", b.cfg.DatabaseDSN)
	})

	return b.db, b.err
}

func (b *backend) Open(ctx context.Context) (rowStore, error) {
	switch b.cfg.StorageBackend {
	case "postgres":
		db, err := b.postgres()
		if err != nil {
			return nil, err
		}
		return storage.NewPostgresStorage(db), nil
	case "sheets", "":
		store, err := storage.OpenSheets(ctx, b.cfg.CredsB64, b.cfg.SheetID)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("%w: unknown storage backend %q", storage.ErrNotConfigured, b.cfg.StorageBackend)
	}
}

// StoreFunc - то же самое для desk.Service
func (b *backend) StoreFunc() desk.StoreFunc {
	return func(ctx context.Context) (desk.RowStore, error) {
		return b.Open(ctx)
	}
}

// Sources - фиды из конфига и, для postgres, из таблицы sources. Повторы по урлу убираются.
func (b *backend) Sources(ctx context.Context) ([]model.Source, error) {
	sources := lo.Map(b.cfg.Feeds, func(url string, _ int) model.Source {
		return model.Source{FeedURL: url}
	})

	if b.cfg.StorageBackend == "postgres" {
		db, err := b.postgres()
		if err != nil {
			return nil, err
		}

		stored, err := storage.NewSourcePostgresStorage(db).Sources(ctx)
		if err != nil {
			return nil, fmt.Errorf("reading sources: %w", err)
		}
		sources = append(sources, stored...)
	}

	return lo.UniqBy(sources, func(source model.Source) string {
		return source.FeedURL
	}), nil
}

func (b *backend) Close() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}

func (b *backend) snapshot() *storage.SnapshotFile {
	var copies []string
	if b.cfg.PublicSnapshotPath != "" && b.cfg.PublicSnapshotPath != b.cfg.SnapshotPath {
		copies = append(copies, b.cfg.PublicSnapshotPath)
	}

	return storage.NewSnapshotFile(b.cfg.SnapshotPath, copies...)
}

func (b *backend) service() *desk.Service {
	return desk.New(b.StoreFunc(), b.snapshot(), b.cfg.Location(), b.cfg.RecentLimit)
}
