package markup

import "strings"

// Символы, которые MarkdownV2 телеграма требует экранировать в обычном тексте.
// Обратный слеш идет первым в списке, но replacer все равно обрабатывает строку за один проход.
const specialChars = "\\_*[]()~`>#+-=|{}.!"

var replacer = newReplacer(specialChars)

func newReplacer(chars string) *strings.Replacer {
	pairs := make([]string, 0, 2*len(chars))
	for _, c := range chars {
		pairs = append(pairs, string(c), "\\"+string(c))
	}
	return strings.NewReplacer(pairs...)
}

// EscapeForMarkdown экранирует спецсимволы MarkdownV2
func EscapeForMarkdown(src string) string {
	return replacer.Replace(src)
}
