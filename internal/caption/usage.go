package caption

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// Фразы, которые модель любит повторять
var LimitedPhrases = []string{"get ready", "can't wait", "don't miss", "breaking news", "mark your calendars"}

const (
	maxPhraseUsage   = 2
	maxPositionUsage = 2
	maxIntroUsage    = 2
	// По первым словам подписи определяем, что подписи начинаются одинаково
	introWords = 4
)

type Position string

const (
	Start  Position = "start"
	Middle Position = "middle"
	End    Position = "end"
)

type Verdict int

const (
	Invalid Verdict = iota
	// Подпись повторяет уже использованные приемы, но ее можно взять, если лучше не нашлось
	Soft
	Valid
)

var words = regexp.MustCompile(`\w+`)

// Usage считает, какие фразы и зачины уже использованы в подписях за прогон.
// Не потокобезопасен.
type Usage struct {
	// В строгом режиме перебор фраз тоже отклоняет подпись
	strict bool

	phrases   map[string]int
	positions map[string]map[Position]int
	intros    map[string]int
}

func NewUsage(strict bool) *Usage {
	return &Usage{
		strict:    strict,
		phrases:   make(map[string]int),
		positions: make(map[string]map[Position]int),
		intros:    make(map[string]int),
	}
}

type phraseHit struct {
	phrase   string
	position Position
}

// Ищет ограниченные фразы и место, где они встретились
func analyze(text string) []phraseHit {
	joined := strings.Join(strings.Fields(strings.ToLower(text)), " ")

	return lo.FilterMap(LimitedPhrases, func(phrase string, _ int) (phraseHit, bool) {
		i := strings.Index(joined, phrase)
		if i < 0 {
			return phraseHit{}, false
		}

		position := End
		switch {
		case i < 30:
			position = Start
		case i < 60:
			position = Middle
		}

		return phraseHit{phrase: phrase, position: position}, true
	})
}

// Intro - первые слова подписи в нижнем регистре
func Intro(text string) string {
	return strings.Join(lo.Subset(words.FindAllString(strings.ToLower(text), -1), 0, introWords), " ")
}

func (u *Usage) phraseExceeded(text string) bool {
	exceeded := false

	for _, hit := range analyze(text) {
		if u.positions[hit.phrase][hit.position] >= maxPositionUsage {
			log.Debug().Str("phrase", hit.phrase).Str("position", string(hit.position)).Msg("phrase overused in position")
			exceeded = true
		}
		if u.phrases[hit.phrase] >= maxPhraseUsage {
			log.Debug().Str("phrase", hit.phrase).Msg("phrase overused")
			exceeded = true
		}
	}

	return exceeded
}

// Check оценивает подпись относительно уже использованных
func (u *Usage) Check(text string) Verdict {
	if strings.TrimSpace(text) == "" {
		return Invalid
	}

	phraseExceeded := u.phraseExceeded(text) && u.strict
	introExceeded := u.intros[Intro(text)] >= maxIntroUsage

	if !phraseExceeded && !introExceeded {
		return Valid
	}
	if u.strict {
		return Invalid
	}
	return Soft
}

// Record запоминает фразы и зачин принятой подписи
func (u *Usage) Record(text string) {
	for _, hit := range analyze(text) {
		u.phrases[hit.phrase]++
		if u.positions[hit.phrase] == nil {
			u.positions[hit.phrase] = make(map[Position]int)
		}
		u.positions[hit.phrase][hit.position]++
	}

	u.intros[Intro(text)]++
}
