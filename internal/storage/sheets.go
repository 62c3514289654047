package storage

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/kovalyov-valentin/news-selects/internal/model"
)

// Хранилище не настроено: нет ключа сервисного аккаунта или id таблицы
var ErrNotConfigured = errors.New("storage is not configured")

// Ключ сервисного аккаунта, нам из него нужны только эти поля для проверки
type serviceAccount struct {
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
}

// Хранилище строк поверх Google Sheets.
// Лист адресуется именем вкладки, данные начинаются со второй строки, первая - шапка.
type SheetsStorage struct {
	svc           *sheets.Service
	spreadsheetID string
}

func NewSheetsStorage(svc *sheets.Service, spreadsheetID string) *SheetsStorage {
	return &SheetsStorage{svc: svc, spreadsheetID: spreadsheetID}
}

// OpenSheets проверяет настройки и создает клиента.
// Вызывается на каждый запрос: отсутствие секретов - это ошибка запроса, а не старта.
func OpenSheets(ctx context.Context, credsB64, spreadsheetID string, opts ...option.ClientOption) (*SheetsStorage, error) {
	if credsB64 == "" || spreadsheetID == "" {
		return nil, fmt.Errorf("%w: missing Google credentials or sheet id", ErrNotConfigured)
	}

	creds, err := base64.StdEncoding.DecodeString(strings.TrimSpace(credsB64))
	if err != nil {
		return nil, fmt.Errorf("%w: decoding credentials: %v", ErrNotConfigured, err)
	}

	var account serviceAccount
	if err := json.Unmarshal(creds, &account); err != nil {
		return nil, fmt.Errorf("%w: parsing credentials: %v", ErrNotConfigured, err)
	}
	if account.ClientEmail == "" || account.PrivateKey == "" {
		return nil, fmt.Errorf("%w: credentials have no client_email or private_key", ErrNotConfigured)
	}

	opts = append([]option.ClientOption{
		option.WithCredentialsJSON(creds),
		option.WithScopes(sheets.SpreadsheetsScope),
	}, opts...)

	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating sheets client: %w", err)
	}

	return NewSheetsStorage(svc, spreadsheetID), nil
}

// Rows читает строки данных вкладки (A2:F)
func (s *SheetsStorage) Rows(ctx context.Context, tab string) ([]model.Row, error) {
	resp, err := s.svc.Spreadsheets.Values.
		Get(s.spreadsheetID, sheetRange(tab, "A2:F")).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", tab, err)
	}

	return lo.Map(resp.Values, func(values []interface{}, _ int) model.Row {
		return toRow(values)
	}), nil
}

// UpdateRows переписывает строки данных начиная с A2 как есть, без интерпретации значений
func (s *SheetsStorage) UpdateRows(ctx context.Context, tab string, rows []model.Row) error {
	if len(rows) == 0 {
		return nil
	}

	_, err := s.svc.Spreadsheets.Values.
		Update(s.spreadsheetID, sheetRange(tab, "A2"), &sheets.ValueRange{Values: toValues(rows)}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("updating %q: %w", tab, err)
	}

	return nil
}

// AllRows читает вкладку целиком вместе с шапкой. Если вкладки нет - пустой результат.
func (s *SheetsStorage) AllRows(ctx context.Context, tab string) ([]model.Row, error) {
	exists, err := s.tabExists(ctx, tab)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}

	resp, err := s.svc.Spreadsheets.Values.
		Get(s.spreadsheetID, sheetRange(tab, "")).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", tab, err)
	}

	return lo.Map(resp.Values, func(values []interface{}, _ int) model.Row {
		return toRow(values)
	}), nil
}

// ReplaceAll очищает вкладку и записывает шапку и строки заново.
// Вкладка создается, если ее еще нет.
func (s *SheetsStorage) ReplaceAll(ctx context.Context, tab string, header model.Row, rows []model.Row) error {
	exists, err := s.tabExists(ctx, tab)
	if err != nil {
		return err
	}

	if !exists {
		_, err := s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
			Requests: []*sheets.Request{{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{Title: tab},
				},
			}},
		}).Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("adding tab %q: %w", tab, err)
		}
	}

	if _, err := s.svc.Spreadsheets.Values.
		Clear(s.spreadsheetID, sheetRange(tab, ""), &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do(); err != nil {
		return fmt.Errorf("clearing %q: %w", tab, err)
	}

	all := append([]model.Row{header}, rows...)
	if _, err := s.svc.Spreadsheets.Values.
		Update(s.spreadsheetID, sheetRange(tab, "A1"), &sheets.ValueRange{Values: toValues(all)}).
		ValueInputOption("RAW").
		Context(ctx).
		Do(); err != nil {
		return fmt.Errorf("writing %q: %w", tab, err)
	}

	return nil
}

func (s *SheetsStorage) tabExists(ctx context.Context, tab string) (bool, error) {
	spreadsheet, err := s.svc.Spreadsheets.Get(s.spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return false, fmt.Errorf("listing tabs: %w", err)
	}

	return lo.ContainsBy(spreadsheet.Sheets, func(sheet *sheets.Sheet) bool {
		return sheet.Properties != nil && sheet.Properties.Title == tab
	}), nil
}

// Имя вкладки с пробелами и скобками надо брать в кавычки
func sheetRange(tab, cells string) string {
	quoted := "'" + strings.ReplaceAll(tab, "'", "''") + "'"
	if cells == "" {
		return quoted
	}
	return quoted + "!" + cells
}

func toRow(values []interface{}) model.Row {
	return lo.Map(values, func(value interface{}, _ int) string {
		if value == nil {
			return ""
		}
		return fmt.Sprint(value)
	})
}

func toValues(rows []model.Row) [][]interface{} {
	return lo.Map(rows, func(row model.Row, _ int) []interface{} {
		return lo.ToAnySlice(row)
	})
}
