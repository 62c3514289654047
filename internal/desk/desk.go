package desk

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kovalyov-valentin/news-selects/internal/model"
	"github.com/kovalyov-valentin/news-selects/internal/review"
)

// Хранилище строк, адресуемое по имени вкладки
type RowStore interface {
	Rows(ctx context.Context, tab string) ([]model.Row, error)
	UpdateRows(ctx context.Context, tab string, rows []model.Row) error
}

// StoreFunc открывает хранилище на время одного запроса.
// Отсутствие настроек проявляется здесь, до любого сетевого вызова.
type StoreFunc func(ctx context.Context) (RowStore, error)

// Локальный снапшот отредактированного списка
type Snapshot interface {
	Write(articles []model.Article) error
	Read() ([]model.Article, error)
}

// Service - загрузка и сохранение списка, который редактирует оператор
type Service struct {
	store    StoreFunc
	snapshot Snapshot
	loc      *time.Location
	limit    int
	now      func() time.Time
}

func New(store StoreFunc, snapshot Snapshot, loc *time.Location, limit int) *Service {
	if loc == nil {
		loc = time.UTC
	}
	if limit <= 0 {
		limit = review.DefaultRecentLimit
	}

	return &Service{
		store:    store,
		snapshot: snapshot,
		loc:      loc,
		limit:    limit,
		now:      time.Now,
	}
}

// Tab - вкладка с отобранными статьями за текущий месяц
func (s *Service) Tab() string {
	return review.SelectsTab(s.now(), s.loc)
}

// Load читает вкладку и отдает последние статьи без дублей по link
func (s *Service) Load(ctx context.Context) ([]model.Article, error) {
	store, err := s.store(ctx)
	if err != nil {
		return nil, err
	}

	tab := s.Tab()
	rows, err := store.Rows(ctx, tab)
	if err != nil {
		return nil, err
	}

	articles := review.Recent(review.Normalize(rows), s.limit)

	log.Debug().Str("tab", tab).Int("rows", len(rows)).Int("articles", len(articles)).Msg("articles loaded")

	return articles, nil
}

// Days - статьи из Load, разложенные по дням и порезанные на страницы
func (s *Service) Days(ctx context.Context, page, size int) (review.Page, error) {
	articles, err := s.Load(ctx)
	if err != nil {
		return review.Page{}, err
	}

	return review.Paginate(review.GroupByDay(articles), page, size), nil
}

// Save сначала пишет локальный снапшот, потом пробует синхронизировать хранилище.
// Ошибка снапшота прерывает сохранение, ошибка синхронизации только логируется.
func (s *Service) Save(ctx context.Context, articles []model.Article) error {
	if err := s.snapshot.Write(articles); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	log.Info().Int("articles", len(articles)).Msg("snapshot written")

	if _, err := s.Sync(ctx, articles); err != nil {
		log.Warn().Err(err).Msg("skipped store update")
	}

	return nil
}

// Sync сверяет статьи со строками хранилища в три шага: прочитать строки, посчитать патч, записать патч.
// Между чтением и записью вкладку может поменять кто-то еще: побеждает последняя запись.
func (s *Service) Sync(ctx context.Context, articles []model.Article) (review.Patch, error) {
	store, err := s.store(ctx)
	if err != nil {
		return review.Patch{}, err
	}

	tab := s.Tab()

	existing, err := store.Rows(ctx, tab)
	if err != nil {
		return review.Patch{}, err
	}

	patch := review.PlanMerge(existing, articles)
	if len(patch.Unmatched) > 0 {
		// Новых строк сохранение не добавляет, такие статьи только отмечаем в логе
		log.Warn().Str("tab", tab).Strs("links", patch.Unmatched).Msg("articles without a stored row were not written")
	}

	if err := store.UpdateRows(ctx, tab, patch.Rows); err != nil {
		return patch, err
	}

	log.Info().Str("tab", tab).Int("updated", patch.Updated).Int("rows", len(patch.Rows)).Msg("store updated")

	return patch, nil
}

// Current - последний сохраненный список
func (s *Service) Current() ([]model.Article, error) {
	return s.snapshot.Read()
}

// Veto отклоняет статьи сохраненного списка по их номерам (с единицы) и сохраняет результат.
// Номера за пределами списка пропускаются.
func (s *Service) Veto(ctx context.Context, numbers []int) ([]model.Article, error) {
	return s.mark(ctx, numbers, review.WorkingSet.Reject)
}

// Approve переключает одобрение, как кнопка на дашборде: повторный вызов снимает его
func (s *Service) Approve(ctx context.Context, numbers []int) ([]model.Article, error) {
	return s.mark(ctx, numbers, review.WorkingSet.ToggleApprove)
}

// Reject переключает отказ. В отличие от Veto, повторный вызов возвращает статью в ожидание.
func (s *Service) Reject(ctx context.Context, numbers []int) ([]model.Article, error) {
	return s.mark(ctx, numbers, review.WorkingSet.ToggleReject)
}

// mark применяет change к статьям с номерами numbers и сохраняет список.
// Возвращает измененные статьи, пустой результат ничего не сохраняет.
func (s *Service) mark(ctx context.Context, numbers []int, change func(review.WorkingSet, string) review.WorkingSet) ([]model.Article, error) {
	current, err := s.snapshot.Read()
	if err != nil {
		return nil, err
	}

	ws := review.NewWorkingSet(current)
	var changed []model.Article

	for _, n := range numbers {
		link, ok := ws.LinkAt(n - 1)
		if !ok {
			continue
		}

		ws = change(ws, link)
		article, _ := ws.Get(link)
		changed = append(changed, article)
	}

	if len(changed) == 0 {
		return nil, nil
	}

	if err := s.Save(ctx, ws.Articles()); err != nil {
		return nil, err
	}

	return changed, nil
}
