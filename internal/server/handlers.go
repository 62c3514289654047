package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/kovalyov-valentin/news-selects/internal/dispatch"
	"github.com/kovalyov-valentin/news-selects/internal/model"
	"github.com/kovalyov-valentin/news-selects/internal/review"
)

type ArticleService interface {
	Load(ctx context.Context) ([]model.Article, error)
	Save(ctx context.Context, articles []model.Article) error
	Days(ctx context.Context, page, size int) (review.Page, error)
}

type Dispatcher interface {
	Dispatch(ctx context.Context) error
}

// Handler - три ручки дашборда и постраничный вывод по дням
type Handler struct {
	articles    ArticleService
	dispatcher  Dispatcher
	daysPerPage int
}

func NewHandler(articles ArticleService, dispatcher Dispatcher, daysPerPage int) *Handler {
	if daysPerPage <= 0 {
		daysPerPage = review.DefaultDaysPerPage
	}

	return &Handler{
		articles:    articles,
		dispatcher:  dispatcher,
		daysPerPage: daysPerPage,
	}
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type saveRequest struct {
	Articles json.RawMessage `json:"articles"`
}

func fail(c echo.Context, message string) error {
	return c.JSON(http.StatusInternalServerError, errorResponse{Success: false, Error: message})
}

// Load - GET /api/load
func (h *Handler) Load(c echo.Context) error {
	articles, err := h.articles.Load(c.Request().Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to load articles")
		return fail(c, "Failed to load data")
	}

	return c.JSON(http.StatusOK, articles)
}

// Save - POST /api/save, тело {"articles": [...]}
func (h *Handler) Save(c echo.Context) error {
	var req saveRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		log.Error().Err(err).Msg("failed to decode save request")
		return fail(c, "Server error")
	}

	if !isJSONArray(req.Articles) {
		log.Error().Msg("invalid data format: expected an array")
		return fail(c, "Invalid data format: expected an array")
	}

	var articles []model.Article
	if err := json.Unmarshal(req.Articles, &articles); err != nil {
		log.Error().Err(err).Msg("failed to decode articles")
		return fail(c, "Invalid data format: expected an array of articles")
	}

	log.Info().Int("articles", len(articles)).Msg("received articles")

	if err := h.articles.Save(c.Request().Context(), articles); err != nil {
		log.Error().Err(err).Msg("failed to save articles")
		return fail(c, "Failed to save JSON locally")
	}

	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// Dispatch - POST /api/dispatch. Ответ GitHub при ошибке отдается как есть.
func (h *Handler) Dispatch(c echo.Context) error {
	err := h.dispatcher.Dispatch(c.Request().Context())

	var upstream *dispatch.UpstreamError
	switch {
	case err == nil:
		return c.String(http.StatusOK, "Dispatched")
	case errors.As(err, &upstream):
		log.Warn().Int("status", upstream.StatusCode).Msg("workflow dispatch rejected")
		return c.String(upstream.StatusCode, upstream.Body)
	case errors.Is(err, dispatch.ErrNotConfigured):
		log.Error().Err(err).Msg("workflow dispatch is not configured")
		return c.String(http.StatusInternalServerError, "Dispatch is not configured")
	default:
		log.Error().Err(err).Msg("workflow dispatch failed")
		return c.String(http.StatusInternalServerError, "Dispatch failed")
	}
}

// Days - GET /api/days?page=N, страница групп по дням. Неверный номер страницы считается нулем.
func (h *Handler) Days(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))

	result, err := h.articles.Days(c.Request().Context(), page, h.daysPerPage)
	if err != nil {
		log.Error().Err(err).Msg("failed to load day groups")
		return fail(c, "Failed to load data")
	}

	return c.JSON(http.StatusOK, result)
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}
