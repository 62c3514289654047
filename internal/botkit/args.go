package botkit

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// ParseNumbers разбирает аргументы команды вида "2 4" или "2,4" в уникальные числа по возрастанию
func ParseNumbers(args string) ([]int, error) {
	fields := strings.FieldsFunc(args, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\n' || r == '\t'
	})

	numbers := make([]int, 0, len(fields))
	for _, field := range fields {
		n, err := strconv.Atoi(strings.TrimPrefix(field, "#"))
		if err != nil {
			return nil, fmt.Errorf("not a number: %q", field)
		}
		numbers = append(numbers, n)
	}

	numbers = lo.Uniq(numbers)
	slices.Sort(numbers)

	return numbers, nil
}
