package main

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kovalyov-valentin/news-selects/internal/bot"
	"github.com/kovalyov-valentin/news-selects/internal/bot/middleware"
	"github.com/kovalyov-valentin/news-selects/internal/botkit"
	"github.com/kovalyov-valentin/news-selects/internal/notifier"
	"github.com/kovalyov-valentin/news-selects/internal/storage"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Telegram recap and veto bot",
	Long: `Run the Telegram bot. It posts the recap of the saved selects to the channel
every recap_interval and answers:

  /recap           the numbered recap
  /selects         recent selects with their approval state
  /days [next|prev] selects grouped by day, days_per_page days at a time
  /veto 2 4        reject entries 2 and 4 of the recap (channel admins only)
  /approve 1 3     toggle approval of recap entries (channel admins only)
  /reject 2        toggle rejection of recap entries (channel admins only)
  /addsource {..}  add a feed (postgres storage, admins only)
  /listsources     feeds added through the bot (postgres storage)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if cfg.TelegramBotToken == "" {
			return fmt.Errorf("%w: missing telegram bot token", storage.ErrNotConfigured)
		}

		botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
		if err != nil {
			return fmt.Errorf("creating bot: %w", err)
		}

		b := newBackend(cfg)
		defer b.Close()

		svc := b.service()
		recap := notifier.New(svc, botAPI, cfg.RecapInterval, cfg.TelegramChannelID, cfg.Location())

		deskBot := botkit.New(botAPI)
		deskBot.RegisterCmdView("recap", bot.ViewCmdRecap(recap))
		deskBot.RegisterCmdView("selects", bot.ViewCmdSelects(svc))
		deskBot.RegisterCmdView("days", bot.ViewCmdDays(svc, cfg.DaysPerPage))
		deskBot.RegisterCmdView(
			"veto",
			middleware.AdminOnly(cfg.TelegramChannelID, bot.ViewCmdVeto(svc)),
		)
		deskBot.RegisterCmdView("approve", middleware.AdminOnly(cfg.TelegramChannelID, bot.ViewCmdApprove(svc)))
		deskBot.RegisterCmdView("reject", middleware.AdminOnly(cfg.TelegramChannelID, bot.ViewCmdReject(svc)))

		if cfg.StorageBackend == "postgres" {
			db, err := b.postgres()
			if err != nil {
				return err
			}
			sources := storage.NewSourcePostgresStorage(db)

			deskBot.RegisterCmdView("addsource", middleware.AdminOnly(cfg.TelegramChannelID, bot.ViewCmdAddSource(sources)))
			deskBot.RegisterCmdView("listsources", bot.ViewCmdListSources(sources))
		}

		if cfg.TelegramChannelID != 0 && cfg.RecapInterval > 0 {
			go func(ctx context.Context) {
				if err := recap.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
					log.Error().Err(err).Msg("recap worker stopped")
					return
				}

				log.Info().Msg("recap worker stopped")
			}(ctx)
		}

		return deskBot.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(botCmd)
}
