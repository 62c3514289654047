package caption

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/go-shiori/go-readability"
)

const maxExcerpt = 600

// Excerpter достает из страницы статьи начало основного текста
type Excerpter struct {
	client *http.Client
}

func NewExcerpter(client *http.Client) *Excerpter {
	if client == nil {
		client = http.DefaultClient
	}
	return &Excerpter{client: client}
}

// Excerpt скачивает страницу по link и отдает ее текст без разметки, обрезанный до maxExcerpt символов
func (e *Excerpter) Excerpt(ctx context.Context, link string) (string, error) {
	pageURL, err := url.Parse(link)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", err
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching %s: unexpected status %d", link, resp.StatusCode)
	}

	doc, err := readability.FromReader(resp.Body, pageURL)
	if err != nil {
		return "", err
	}

	text := []rune(strings.TrimSpace(cleanText(doc.TextContent)))
	if len(text) > maxExcerpt {
		text = text[:maxExcerpt]
	}

	return string(text), nil
}

// readability оставляет много пустых строк, три и больше подряд схлопываем в одну
var redundantNewLines = regexp.MustCompile(`\n{3,}`)

func cleanText(text string) string {
	return redundantNewLines.ReplaceAllString(text, "\n")
}
