package server

import (
	"context"
	"embed"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
)

//go:embed ui/index.html
var ui embed.FS

// New собирает echo со всеми маршрутами дашборда.
// publicSnapshot - путь к публичной копии снапшота, она отдается как статический файл.
func New(h *Handler, publicSnapshot string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogError:   true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Error != nil {
				event = log.Error().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Int64("latency_ms", v.Latency.Milliseconds()).
				Msg("request")
			return nil
		},
	}))

	e.GET("/", func(c echo.Context) error {
		page, err := ui.ReadFile("ui/index.html")
		if err != nil {
			return err
		}
		return c.HTMLBlob(http.StatusOK, page)
	})
	if publicSnapshot != "" {
		e.File("/top_articles_with_captions.json", publicSnapshot)
	}

	api := e.Group("/api")
	api.GET("/load", h.Load)
	api.POST("/save", h.Save)
	api.POST("/dispatch", h.Dispatch)
	api.GET("/days", h.Days)

	return e
}

// Run запускает сервер и останавливает его, когда отменяется ctx
func Run(ctx context.Context, e *echo.Echo, addr string) error {
	errCh := make(chan error, 1)

	go func() {
		log.Info().Str("addr", addr).Msg("server started")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}

	return ctx.Err()
}
