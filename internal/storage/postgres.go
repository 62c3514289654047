package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/samber/lo"

	"github.com/kovalyov-valentin/news-selects/internal/model"
)

// Хранилище строк в Postgres, раскладка та же что и у листов таблицы.
// Позиция 0 - шапка вкладки, данные начинаются с 1.
//
//	CREATE TABLE sheet_rows (
//	    tab      TEXT   NOT NULL,
//	    position INT    NOT NULL,
//	    cells    TEXT[] NOT NULL,
//	    PRIMARY KEY (tab, position)
//	);
type PostgresStorage struct {
	db *sqlx.DB
}

func NewPostgresStorage(db *sqlx.DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

// Rows - строки данных вкладки по порядку
func (s *PostgresStorage) Rows(ctx context.Context, tab string) ([]model.Row, error) {
	return s.selectRows(ctx, `SELECT position, cells FROM sheet_rows WHERE tab = $1 AND position > 0 ORDER BY position`, tab)
}

// AllRows - вкладка целиком вместе с шапкой
func (s *PostgresStorage) AllRows(ctx context.Context, tab string) ([]model.Row, error) {
	return s.selectRows(ctx, `SELECT position, cells FROM sheet_rows WHERE tab = $1 ORDER BY position`, tab)
}

func (s *PostgresStorage) selectRows(ctx context.Context, query string, tab string) ([]model.Row, error) {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	var rows []dbRow
	if err := conn.SelectContext(ctx, &rows, query, tab); err != nil {
		return nil, fmt.Errorf("reading %q: %w", tab, err)
	}

	return lo.Map(rows, func(row dbRow, _ int) model.Row {
		return model.Row(row.Cells)
	}), nil
}

// UpdateRows переписывает строки данных по порядку, i-я строка попадает на i-ю занятую позицию вкладки.
// Так дырки в нумерации позиций не сдвигают данные. Лишние строки дописываются после последней позиции.
// Остальные строки вкладки не трогаются.
func (s *PostgresStorage) UpdateRows(ctx context.Context, tab string, rows []model.Row) error {
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		var positions []int
		if err := tx.SelectContext(
			ctx,
			&positions,
			`SELECT position FROM sheet_rows WHERE tab = $1 AND position > 0 ORDER BY position`,
			tab,
		); err != nil {
			return fmt.Errorf("reading %q positions: %w", tab, err)
		}

		for i, row := range rows {
			position := positionAt(positions, i)

			if _, err := tx.ExecContext(
				ctx,
				`INSERT INTO sheet_rows (tab, position, cells) VALUES ($1, $2, $3)
				 ON CONFLICT (tab, position) DO UPDATE SET cells = EXCLUDED.cells`,
				tab,
				position,
				pq.Array([]string(row)),
			); err != nil {
				return fmt.Errorf("updating %q row %d: %w", tab, position, err)
			}
		}
		return nil
	})
}

// positionAt - позиция i-й строки данных (с нуля)
func positionAt(positions []int, i int) int {
	if i < len(positions) {
		return positions[i]
	}

	last := 0
	if len(positions) > 0 {
		last = positions[len(positions)-1]
	}
	return last + i - len(positions) + 1
}

// ReplaceAll удаляет вкладку и записывает шапку и строки заново
func (s *PostgresStorage) ReplaceAll(ctx context.Context, tab string, header model.Row, rows []model.Row) error {
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM sheet_rows WHERE tab = $1`, tab); err != nil {
			return fmt.Errorf("clearing %q: %w", tab, err)
		}

		for i, row := range append([]model.Row{header}, rows...) {
			if _, err := tx.ExecContext(
				ctx,
				`INSERT INTO sheet_rows (tab, position, cells) VALUES ($1, $2, $3)`,
				tab,
				i,
				pq.Array([]string(row)),
			); err != nil {
				return fmt.Errorf("writing %q row %d: %w", tab, i, err)
			}
		}
		return nil
	})
}

func (s *PostgresStorage) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// Внутренняя модель для работы с БД, чтобы правильно мапить ее на колонки в таблице
type dbRow struct {
	Position int            `db:"position"`
	Cells    pq.StringArray `db:"cells"`
}
