package llm

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

// ErrDisabled - ключ OpenAI не задан
var ErrDisabled = errors.New("openai client is disabled: no api key")

// ChatCompleter - часть sdk openai, которой мы пользуемся
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Prompt - один запрос к модели
type Prompt struct {
	System      string
	User        string
	Temperature float32
	MaxTokens   int
}

// Client - обертка над sdk openai для отбора статей и подписей
type Client struct {
	api     ChatCompleter
	model   string
	enabled bool
	mu      sync.Mutex
}

func NewOpenAIClient(apiKey, model string) *Client {
	log.Info().Bool("enabled", apiKey != "").Msg("openai client")

	return newClient(openai.NewClient(apiKey), model, apiKey != "")
}

func newClient(api ChatCompleter, model string, enabled bool) *Client {
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}

	return &Client{
		api:     api,
		model:   model,
		enabled: enabled,
	}
}

// Complete отправляет запрос и возвращает текст первого варианта ответа
func (c *Client) Complete(ctx context.Context, prompt Prompt) (string, error) {
	// Запросы идут по одному, конкурентный доступ к клиенту упирается в лимиты api
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled {
		return "", ErrDisabled
	}

	var messages []openai.ChatCompletionMessage
	if prompt.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: prompt.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt.User,
	})

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   prompt.MaxTokens,
		Temperature: prompt.Temperature,
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
