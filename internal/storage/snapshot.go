package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kovalyov-valentin/news-selects/internal/model"
)

// Снапшот статей в JSON. Пишется во все пути сразу: внутренний файл и публичная копия,
// которую забирает сборка ленты.
type SnapshotFile struct {
	paths []string
}

func NewSnapshotFile(path string, copies ...string) *SnapshotFile {
	return &SnapshotFile{paths: append([]string{path}, copies...)}
}

// Write сериализует весь список и пишет его по всем путям по очереди.
// Первая же ошибка прерывает запись.
func (f *SnapshotFile) Write(articles []model.Article) error {
	if articles == nil {
		articles = []model.Article{}
	}

	data, err := json.MarshalIndent(articles, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	for _, path := range f.paths {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("creating %s: %w", dir, err)
			}
		}

		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}

	return nil
}

// Read читает внутренний снапшот. Если файла еще нет - пустой список.
func (f *SnapshotFile) Read() ([]model.Article, error) {
	data, err := os.ReadFile(f.paths[0])
	if errors.Is(err, os.ErrNotExist) {
		return []model.Article{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var articles []model.Article
	if err := json.Unmarshal(data, &articles); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}

	return articles, nil
}

// PublicPath - путь публичной копии (последний из переданных)
func (f *SnapshotFile) PublicPath() string {
	return f.paths[len(f.paths)-1]
}
