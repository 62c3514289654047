package bot

import (
	"context"
	"errors"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kovalyov-valentin/news-selects/internal/bot/middleware"
	"github.com/kovalyov-valentin/news-selects/internal/botkit"
	"github.com/kovalyov-valentin/news-selects/internal/model"
)

type fakeAPI struct {
	admins []tgbotapi.ChatMember
	sent   []tgbotapi.MessageConfig
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c.(tgbotapi.MessageConfig))
	return tgbotapi.Message{}, nil
}

func (f *fakeAPI) GetChatAdministrators(tgbotapi.ChatAdministratorsConfig) ([]tgbotapi.ChatMember, error) {
	return f.admins, nil
}

func command(cmd, args string, from int64) tgbotapi.Update {
	text := "/" + cmd
	if args != "" {
		text += " " + args
	}

	return tgbotapi.Update{Message: &tgbotapi.Message{
		Text:     text,
		Chat:     &tgbotapi.Chat{ID: 42},
		From:     &tgbotapi.User{ID: from},
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd) + 1}},
	}}
}

type fakeVetoer struct {
	numbers []int
	result  []model.Article
	err     error
}

func (f *fakeVetoer) Veto(_ context.Context, numbers []int) ([]model.Article, error) {
	f.numbers = numbers
	return f.result, f.err
}

func TestViewCmdVeto(t *testing.T) {
	api := &fakeAPI{}
	vetoer := &fakeVetoer{result: []model.Article{{Title: "Band splits (again)"}}}

	err := ViewCmdVeto(vetoer)(context.Background(), api, command("veto", "4 2", 7))
	require.NoError(t, err)

	assert.Equal(t, []int{2, 4}, vetoer.numbers)
	require.Len(t, api.sent, 1)
	assert.Equal(t, "Vetoed 1:\n🚫 Band splits \\(again\\)", api.sent[0].Text)
}

func TestViewCmdVeto_BadArguments(t *testing.T) {
	for _, args := range []string{"", "two"} {
		api := &fakeAPI{}
		vetoer := &fakeVetoer{}

		err := ViewCmdVeto(vetoer)(context.Background(), api, command("veto", args, 7))
		require.NoError(t, err)

		assert.Nil(t, vetoer.numbers, "veto is not called for %q", args)
		require.Len(t, api.sent, 1)
		assert.Contains(t, api.sent[0].Text, "Usage: /veto 2 4")
	}
}

func TestViewCmdVeto_NothingMatched(t *testing.T) {
	api := &fakeAPI{}

	err := ViewCmdVeto(&fakeVetoer{})(context.Background(), api, command("veto", "9", 7))
	require.NoError(t, err)

	assert.Contains(t, api.sent[0].Text, "Nothing to veto")
}

func TestViewCmdVeto_Error(t *testing.T) {
	err := ViewCmdVeto(&fakeVetoer{err: errors.New("disk full")})(context.Background(), &fakeAPI{}, command("veto", "1", 7))
	assert.Error(t, err)
}

type fakeLister []model.Article

func (f fakeLister) Load(context.Context) ([]model.Article, error) { return f, nil }

func TestViewCmdSelects(t *testing.T) {
	api := &fakeAPI{}
	lister := fakeLister{
		{Title: "Tour", Source: "Pitchfork", Published: "2025-05-19", Approval: model.Approved},
		{Title: "Album", Source: "NME", Published: "2025-05-18"},
	}

	require.NoError(t, ViewCmdSelects(lister)(context.Background(), api, command("selects", "", 7)))

	require.Len(t, api.sent, 1)
	assert.Equal(t,
		"Selects \\(2\\):\n\n✅ *Tour*\nPitchfork · 2025\\-05\\-19\n\n⏳ *Album*\nNME · 2025\\-05\\-18",
		api.sent[0].Text,
	)
	assert.Equal(t, tgbotapi.ModeMarkdownV2, api.sent[0].ParseMode)
}

type fakeRecap struct{ chat int64 }

func (f *fakeRecap) SendRecap(_ context.Context, chatID int64) error {
	f.chat = chatID
	return nil
}

func TestViewCmdRecap(t *testing.T) {
	recap := &fakeRecap{}

	require.NoError(t, ViewCmdRecap(recap)(context.Background(), &fakeAPI{}, command("recap", "", 7)))

	assert.Equal(t, int64(42), recap.chat)
}

func TestAdminOnly(t *testing.T) {
	admins := []tgbotapi.ChatMember{{User: &tgbotapi.User{ID: 7}}}

	var called bool
	next := botkit.ViewFunc(func(context.Context, botkit.API, tgbotapi.Update) error {
		called = true
		return nil
	})

	t.Run("admin passes", func(t *testing.T) {
		called = false
		api := &fakeAPI{admins: admins}

		require.NoError(t, middleware.AdminOnly(-100, next)(context.Background(), api, command("veto", "1", 7)))
		assert.True(t, called)
		assert.Empty(t, api.sent)
	})

	t.Run("stranger is refused", func(t *testing.T) {
		called = false
		api := &fakeAPI{admins: admins}

		require.NoError(t, middleware.AdminOnly(-100, next)(context.Background(), api, command("veto", "1", 8)))
		assert.False(t, called)
		require.Len(t, api.sent, 1)
		assert.Equal(t, "Only channel admins can do that.", api.sent[0].Text)
	})
}

type fakeSources struct {
	sources []model.Source
}

func (f *fakeSources) Sources(context.Context) ([]model.Source, error) { return f.sources, nil }

func (f *fakeSources) Add(_ context.Context, source model.Source) error {
	f.sources = append(f.sources, source)
	return nil
}

func TestViewCmdAddSource(t *testing.T) {
	api := &fakeAPI{}
	sources := &fakeSources{}

	err := ViewCmdAddSource(sources)(context.Background(), api, command("addsource", `{"name":"NME","url":"https://www.nme.com/news/rss"}`, 7))
	require.NoError(t, err)

	assert.Equal(t, []model.Source{{Name: "NME", FeedURL: "https://www.nme.com/news/rss"}}, sources.sources)
	assert.Equal(t, "Source added: https://www\\.nme\\.com/news/rss", api.sent[0].Text)

	api = &fakeAPI{}
	require.NoError(t, ViewCmdAddSource(sources)(context.Background(), api, command("addsource", `{"name":"x"}`, 7)))
	assert.Contains(t, api.sent[0].Text, "Usage: /addsource")
	assert.Len(t, sources.sources, 1)
}

func TestViewCmdListSources(t *testing.T) {
	api := &fakeAPI{}
	sources := &fakeSources{sources: []model.Source{{Name: "NME", FeedURL: "https://nme.com/rss"}, {FeedURL: "https://spin.com/feed"}}}

	require.NoError(t, ViewCmdListSources(sources)(context.Background(), api, command("listsources", "", 7)))

	assert.Equal(t,
		"Sources \\(2\\):\n\n🌐 *NME*\nhttps://nme\\.com/rss\n\n🌐 *untitled*\nhttps://spin\\.com/feed",
		api.sent[0].Text,
	)
}

type fakeReviewer struct {
	approved []int
	rejected []int
	result   []model.Article
}

func (f *fakeReviewer) Approve(_ context.Context, numbers []int) ([]model.Article, error) {
	f.approved = numbers
	return f.result, nil
}

func (f *fakeReviewer) Reject(_ context.Context, numbers []int) ([]model.Article, error) {
	f.rejected = numbers
	return f.result, nil
}

func TestViewCmdApprove(t *testing.T) {
	api := &fakeAPI{}
	reviewer := &fakeReviewer{result: []model.Article{
		{Title: "Tour", Approval: model.Approved},
		{Title: "Album", Approval: model.Pending},
	}}

	require.NoError(t, ViewCmdApprove(reviewer)(context.Background(), api, command("approve", "3, 1", 7)))

	assert.Equal(t, []int{1, 3}, reviewer.approved)
	assert.Nil(t, reviewer.rejected)
	require.Len(t, api.sent, 1)
	assert.Equal(t, "Updated 2:\n✅ Tour\n⏳ Album", api.sent[0].Text)
}

func TestViewCmdReject(t *testing.T) {
	api := &fakeAPI{}
	reviewer := &fakeReviewer{}

	require.NoError(t, ViewCmdReject(reviewer)(context.Background(), api, command("reject", "2", 7)))

	assert.Equal(t, []int{2}, reviewer.rejected)
	assert.Contains(t, api.sent[0].Text, "Nothing to reject")

	api = &fakeAPI{}
	require.NoError(t, ViewCmdReject(reviewer)(context.Background(), api, command("reject", "", 7)))
	assert.Contains(t, api.sent[0].Text, "Usage: /reject 1 3")
}

func TestViewCmdDays(t *testing.T) {
	lister := fakeLister{
		{Title: "D1", Published: "2025-05-19T10:00:00Z", Approval: model.Approved},
		{Title: "D2", Published: "2025-05-18T10:00:00Z"},
		{Title: "D3", Published: "Sat, 17 May 2025 10:00:00 +0000", Approval: model.Rejected},
	}
	view := ViewCmdDays(lister, 2)

	send := func(args string, chat int64) string {
		api := &fakeAPI{}
		update := command("days", args, 7)
		update.Message.Chat.ID = chat
		require.NoError(t, view(context.Background(), api, update))
		require.Len(t, api.sent, 1)
		return api.sent[0].Text
	}

	first := send("", 1)
	assert.True(t, strings.HasPrefix(first, "Page 1/2\n\n*2025\\-05\\-19*\n✅ D1\n\n*2025\\-05\\-18*\n⏳ D2"), first)

	second := send("next", 1)
	assert.True(t, strings.HasPrefix(second, "Page 2/2\n\n*2025\\-05\\-17*\n❌ D3"), second)

	assert.True(t, strings.HasPrefix(send("next", 1), "Page 2/2"), "next on the last page stays")
	assert.True(t, strings.HasPrefix(send("next", 2), "Page 2/2"), "each chat has its own page")
	assert.True(t, strings.HasPrefix(send("prev", 1), "Page 1/2"))
	assert.True(t, strings.HasPrefix(send("prev", 1), "Page 1/2"), "prev on the first page stays")
}

func TestViewCmdDays_Empty(t *testing.T) {
	api := &fakeAPI{}

	require.NoError(t, ViewCmdDays(fakeLister{{Title: "no date"}}, 3)(context.Background(), api, command("days", "", 7)))

	assert.Equal(t, "No dated selects yet\\.", api.sent[0].Text)
}
