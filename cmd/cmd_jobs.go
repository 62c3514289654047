package main

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kovalyov-valentin/news-selects/internal/caption"
	"github.com/kovalyov-valentin/news-selects/internal/feed"
	"github.com/kovalyov-valentin/news-selects/internal/fetcher"
	"github.com/kovalyov-valentin/news-selects/internal/llm"
	"github.com/kovalyov-valentin/news-selects/internal/selector"
)

var ingestWatch bool

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Collect yesterday's articles from the RSS feeds into the monthly tab",
	Long: `Fetch every configured feed in parallel, keep the items published yesterday
in the configured timezone, drop excluded keywords and duplicate titles, and
replace yesterday's rows in the "<Month YYYY>" tab.

With --watch the job repeats every fetch_interval until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		b := newBackend(cfg)
		defer b.Close()

		store, err := b.Open(ctx)
		if err != nil {
			return err
		}

		sources, err := b.Sources(ctx)
		if err != nil {
			return err
		}
		if len(sources) == 0 {
			log.Warn().Msg("no feeds configured")
		}

		f := fetcher.NewFetcher(store, sources, cfg.Location(), cfg.ExcludedKeywords, cfg.MaxIngest)

		if ingestWatch {
			return f.Start(ctx, cfg.FetchInterval)
		}

		articles, err := f.Run(ctx)
		if err != nil {
			return err
		}

		log.Info().Int("articles", len(articles)).Msg("ingest finished")
		return nil
	},
}

var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Pick the top stories of yesterday into the selects tab",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		b := newBackend(cfg)
		defer b.Close()

		store, err := b.Open(ctx)
		if err != nil {
			return err
		}

		s := selector.New(store, llm.NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIModel), cfg.Location(), cfg.SelectCount)

		selected, err := s.Run(ctx)
		if err != nil {
			return err
		}

		for i, article := range selected {
			log.Info().Int("n", i+1).Str("title", article.Title).Str("source", article.Source).Msg("selected")
		}
		return nil
	},
}

var captionsCmd = &cobra.Command{
	Use:   "captions",
	Short: "Write captions for the recent selects that have none",
	RunE: func(cmd *cobra.Command, args []string) error {
		b := newBackend(cfg)
		defer b.Close()

		var excerpts caption.ExcerptProvider
		if cfg.CaptionExcerpts {
			excerpts = caption.NewExcerpter(&http.Client{Timeout: 10 * time.Second})
		}

		g := caption.NewGenerator(llm.NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIModel), excerpts, cfg.CaptionStrict)

		articles, err := g.Run(cmd.Context(), b.service())
		if err != nil {
			return err
		}

		log.Info().Int("articles", len(articles)).Msg("captions saved")
		return nil
	},
}

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Render feed.xml from the saved selects",
	RunE: func(cmd *cobra.Command, args []string) error {
		b := newBackend(cfg)
		defer b.Close()

		articles, err := b.service().Current()
		if err != nil {
			return err
		}

		channel := feed.Channel{
			Title:       cfg.FeedTitle,
			Link:        cfg.FeedLink,
			Description: cfg.FeedDescription,
		}

		if err := feed.WriteFile(cfg.FeedPath, channel, articles, time.Now()); err != nil {
			return err
		}

		log.Info().Str("path", cfg.FeedPath).Int("articles", len(articles)).Msg("feed written")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd, selectCmd, captionsCmd, feedCmd)

	ingestCmd.Flags().BoolVar(&ingestWatch, "watch", false, "Keep running and ingest every fetch_interval")
}
