package notifier

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kovalyov-valentin/news-selects/internal/model"
)

type stubArticles struct {
	articles []model.Article
	err      error
}

func (s stubArticles) Current() ([]model.Article, error) { return s.articles, s.err }

type recordingSender struct {
	sent []tgbotapi.MessageConfig
}

func (r *recordingSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	r.sent = append(r.sent, c.(tgbotapi.MessageConfig))
	return tgbotapi.Message{}, nil
}

func TestEntry(t *testing.T) {
	t.Run("short entry is kept", func(t *testing.T) {
		assert.Equal(t, "2. Tour\nSee you there", Entry(2, model.Article{Title: "Tour", Caption: "See you there"}))
	})

	t.Run("long caption is truncated to the budget", func(t *testing.T) {
		article := model.Article{Title: "Big tour 25", Caption: strings.Repeat("word ", 60)}

		entry := Entry(1, article)

		assert.LessOrEqual(t, runeLen(entry), EntryBudget)
		assert.True(t, strings.HasPrefix(entry, "1. Big tour 25\nword word"))
		assert.True(t, strings.HasSuffix(entry, "word..."), "trailing spaces are trimmed before the ellipsis")
	})

	t.Run("emoji count as one character", func(t *testing.T) {
		article := model.Article{Title: "T", Caption: strings.Repeat("🎸", 200)}

		entry := Entry(1, article)

		assert.Equal(t, EntryBudget, runeLen(entry))
	})

	t.Run("title longer than budget", func(t *testing.T) {
		article := model.Article{Title: strings.Repeat("x", 200), Caption: "cap"}

		assert.Equal(t, "1. "+strings.Repeat("x", 200)+"\n...", Entry(1, article))
	})

	t.Run("rejected entry is marked", func(t *testing.T) {
		assert.Equal(t, "3. 🚫 Gone\n", Entry(3, model.Article{Title: "Gone", Approval: model.Rejected}))
	})
}

func TestFormatRecap(t *testing.T) {
	date := time.Date(2025, time.May, 20, 9, 0, 0, 0, time.UTC)

	text := FormatRecap([]model.Article{
		{Title: "Tour (2025)", Caption: "Hi!"},
		{Title: "Album", Caption: "New."},
	}, date)

	assert.Contains(t, text, "*Daily Recap, Tuesday, May 20*")
	assert.Contains(t, text, "1\\. Tour \\(2025\\)\nHi\\!")
	assert.Contains(t, text, "2\\. Album\nNew\\.")

	assert.Contains(t, FormatRecap(nil, date), "Nothing saved yet\\.")
}

func TestNotifier_SendRecap(t *testing.T) {
	sender := &recordingSender{}
	n := New(stubArticles{articles: []model.Article{{Title: "A", Caption: "c"}}}, sender, time.Hour, -100, time.UTC)

	require.NoError(t, n.SendRecap(context.Background(), 55))

	require.Len(t, sender.sent, 1)
	assert.Equal(t, int64(55), sender.sent[0].ChatID)
	assert.Equal(t, tgbotapi.ModeMarkdownV2, sender.sent[0].ParseMode)
	assert.Contains(t, sender.sent[0].Text, "1\\. A\nc")
}

func TestNotifier_SendRecapReadError(t *testing.T) {
	sender := &recordingSender{}
	n := New(stubArticles{err: errors.New("corrupt snapshot")}, sender, time.Hour, -100, time.UTC)

	assert.Error(t, n.SendRecap(context.Background(), 55))
	assert.Empty(t, sender.sent)
}
