package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v66/github"
	"github.com/rs/zerolog/log"
)

// Нет токена для запуска workflow или репозиторий задан не как owner/name
var ErrNotConfigured = errors.New("dispatch is not configured")

// UpstreamError - GitHub ответил не 2xx. Статус и текст ответа отдаются вызывающему как есть.
type UpstreamError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("workflow dispatch failed with HTTP %d: %s", e.StatusCode, e.Body)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Запускает workflow в GitHub Actions, который пересобирает ленту
type WorkflowTrigger struct {
	client   *http.Client
	baseURL  string
	token    string
	repo     string
	workflow string
	ref      string
}

func NewWorkflowTrigger(client *http.Client, baseURL, token, repo, workflow, ref string) *WorkflowTrigger {
	if client == nil {
		client = http.DefaultClient
	}

	return &WorkflowTrigger{
		client:   client,
		baseURL:  baseURL,
		token:    token,
		repo:     repo,
		workflow: workflow,
		ref:      ref,
	}
}

// Dispatch отправляет один запрос без повторов
func (t *WorkflowTrigger) Dispatch(ctx context.Context) error {
	if t.token == "" {
		return ErrNotConfigured
	}

	owner, repo, ok := strings.Cut(t.repo, "/")
	if !ok || owner == "" || repo == "" {
		return fmt.Errorf("%w: repo %q is not owner/name", ErrNotConfigured, t.repo)
	}

	gh, err := t.github()
	if err != nil {
		return err
	}

	resp, err := gh.Actions.CreateWorkflowDispatchEventByFileName(
		ctx,
		owner,
		repo,
		t.workflow,
		github.CreateWorkflowDispatchEventRequest{Ref: t.ref},
	)

	var accepted *github.AcceptedError
	switch {
	case err == nil, errors.As(err, &accepted):
		return nil
	case resp != nil && resp.Response != nil && resp.StatusCode >= http.StatusMultipleChoices:
		return upstreamError(resp.Response, err)
	default:
		return fmt.Errorf("dispatching workflow: %w", err)
	}
}

func (t *WorkflowTrigger) github() (*github.Client, error) {
	gh := github.NewClient(t.client).WithAuthToken(t.token)

	if t.baseURL != "" {
		// go-github требует слеш в конце базового урла
		base, err := url.Parse(strings.TrimRight(t.baseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("parsing github api url: %w", err)
		}
		gh.BaseURL = base
	}

	return gh, nil
}

// upstreamError собирает ошибку из ответа GitHub.
// Тело ответа go-github уже вычитал и положил обратно в буфер.
// Если прочитать его все же не удалось, вместо тела берется сообщение из разобранной ошибки.
func upstreamError(resp *http.Response, cause error) *UpstreamError {
	upstream := &UpstreamError{StatusCode: resp.StatusCode, Err: cause}

	text, err := io.ReadAll(resp.Body)
	if err == nil {
		upstream.Body = string(text)
		return upstream
	}

	log.Warn().Err(err).Int("status", resp.StatusCode).Msg("failed to read workflow dispatch response")

	var errResp *github.ErrorResponse
	if errors.As(cause, &errResp) {
		upstream.Body = errResp.Message
	}
	if upstream.Body == "" {
		upstream.Body = http.StatusText(resp.StatusCode)
	}

	return upstream
}
