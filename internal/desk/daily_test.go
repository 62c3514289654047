package desk

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kovalyov-valentin/news-selects/internal/model"
	"github.com/kovalyov-valentin/news-selects/internal/review"
)

type fakeTabStore struct {
	all     map[string][]model.Row
	readErr error

	header model.Row
	rows   []model.Row
}

func (f *fakeTabStore) AllRows(_ context.Context, tab string) ([]model.Row, error) {
	return f.all[tab], f.readErr
}

func (f *fakeTabStore) ReplaceAll(_ context.Context, _ string, header model.Row, rows []model.Row) error {
	f.header, f.rows = header, rows
	return nil
}

func TestReplaceDay_KeepsHeader(t *testing.T) {
	store := &fakeTabStore{all: map[string][]model.Row{
		"May 2025": {
			{"Title", "Link", "Source", "Published", "Caption"},
			{"Old", "l1", "S", "2025-05-19T10:00:00Z"},
			{"Keep", "l2", "S", "2025-05-18T10:00:00Z"},
		},
	}}

	result, err := ReplaceDay(context.Background(), store, "May 2025", review.DefaultHeader, "2025-05-19", time.UTC, []model.Row{
		{"New", "l3", "S", "2025-05-19T11:00:00Z"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Removed)
	assert.Equal(t, 1, result.Added)
	assert.Equal(t, model.Row{"Title", "Link", "Source", "Published", "Caption"}, store.header)
	assert.Equal(t, []model.Row{
		{"Keep", "l2", "S", "2025-05-18T10:00:00Z"},
		{"New", "l3", "S", "2025-05-19T11:00:00Z"},
	}, store.rows)
}

func TestReplaceDay_EmptyTabGetsDefaultHeader(t *testing.T) {
	store := &fakeTabStore{}

	_, err := ReplaceDay(context.Background(), store, "May 2025", review.DefaultHeader, "2025-05-19", time.UTC, []model.Row{{"New", "l3", "S", "2025-05-19"}})
	require.NoError(t, err)

	assert.Equal(t, review.DefaultHeader, store.header)
	assert.Len(t, store.rows, 1)
}

func TestReplaceDay_ReadError(t *testing.T) {
	store := &fakeTabStore{readErr: errors.New("quota")}

	_, err := ReplaceDay(context.Background(), store, "May 2025", review.DefaultHeader, "2025-05-19", time.UTC, nil)
	assert.Error(t, err)
	assert.Nil(t, store.header)
}
