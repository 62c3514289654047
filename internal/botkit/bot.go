package botkit

import (
	"context"
	"runtime/debug"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// API - методы клиента телеграма, которые нужны view. *tgbotapi.BotAPI им удовлетворяет.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetChatAdministrators(config tgbotapi.ChatAdministratorsConfig) ([]tgbotapi.ChatMember, error)
}

// ViewFunc реагирует на одну команду.
// Update - любой эвент, который приходит от телеграма при взаимодействии пользователя с ботом.
type ViewFunc func(ctx context.Context, bot API, update tgbotapi.Update) error

type Bot struct {
	api      *tgbotapi.BotAPI
	cmdViews map[string]ViewFunc
	// Сколько времени дается на обработку одного апдейта
	updateTimeout time.Duration
}

func New(api *tgbotapi.BotAPI) *Bot {
	return &Bot{
		api:           api,
		updateTimeout: 30 * time.Second,
	}
}

// RegisterCmdView регистрирует view для команды (без слеша)
func (b *Bot) RegisterCmdView(cmd string, view ViewFunc) {
	if b.cmdViews == nil {
		b.cmdViews = make(map[string]ViewFunc)
	}

	b.cmdViews[cmd] = view
}

// Run читает апдейты и обрабатывает их по одному, пока не отменят ctx
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case update := <-updates:
			updateCtx, updateCancel := context.WithTimeout(ctx, b.updateTimeout)
			b.HandleUpdate(updateCtx, b.api, update)
			updateCancel()
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// HandleUpdate роутит команду на зарегистрированную view.
// Паника во view перехватывается, пользователю уходит "internal error".
func (b *Bot) HandleUpdate(ctx context.Context, api API, update tgbotapi.Update) {
	defer func() {
		if p := recover(); p != nil {
			log.Error().Interface("panic", p).Str("stack", string(debug.Stack())).Msg("panic recovered")
		}
	}()

	if update.Message == nil || !update.Message.IsCommand() {
		return
	}

	cmd := update.Message.Command()

	view, ok := b.cmdViews[cmd]
	if !ok {
		return
	}

	if err := view(ctx, api, update); err != nil {
		log.Error().Err(err).Str("cmd", cmd).Msg("failed to handle update")

		if _, err := api.Send(
			tgbotapi.NewMessage(update.Message.Chat.ID, "internal error"),
		); err != nil {
			log.Error().Err(err).Msg("failed to send message")
		}
	}
}
