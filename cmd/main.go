package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kovalyov-valentin/news-selects/internal/config"
)

var (
	configFiles []string
	prettyLogs  bool

	// cfg заполняется перед запуском любой команды
	cfg config.Config
)

// rootCmd - редакторский пульт: сбор статей, отбор, подписи, дашборд и бот
var rootCmd = &cobra.Command{
	Use:   "desk",
	Short: "Editorial desk for the daily music news selects",
	Long: `desk collects yesterday's music news from RSS feeds, lets a model shortlist
the best stories, writes captions for them and serves a dashboard where an editor
approves, rejects and edits the picks before the public feed is rebuilt.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		if len(configFiles) == 0 {
			cfg = config.Get()
		} else {
			loaded, err := config.Load(configFiles...)
			if err != nil {
				return err
			}
			cfg = loaded
		}

		level, err := zerolog.ParseLevel(cfg.LogLevel)
		if err != nil {
			log.Warn().Str("level", cfg.LogLevel).Msg("unknown log level, using info")
			level = zerolog.InfoLevel
		}
		zerolog.SetGlobalLevel(level)

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&configFiles, "config", nil, "HCL config files (default ./config.hcl, ./config.local.hcl)")
	rootCmd.PersistentFlags().BoolVar(&prettyLogs, "pretty", false, "Human-readable console logs instead of JSON")
}

func setupLogger() {
	if prettyLogs {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			log.Info().Msg("stopped")
			return
		}

		log.Error().Err(err).Msg("command failed")
		cancel()
		os.Exit(1)
	}
}
