package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kovalyov-valentin/news-selects/internal/model"
)

func TestGroupByDay(t *testing.T) {
	articles := []model.Article{
		{Link: "a", Published: "2024-01-02T08:00:00Z"},
		{Link: "b", Published: "2024-01-03T09:00:00Z"},
		{Link: "c", Published: "2024-01-02T23:00:00Z"},
		{Link: "d", Published: "garbage"},
		{Link: "e", Published: "2024-01-01"},
		{Link: "f", Published: "2024-01-03T01:00:00Z"},
	}

	groups := GroupByDay(articles)

	require.Len(t, groups, 3)
	assert.Equal(t, "2024-01-03", groups[0].Day)
	assert.Equal(t, []string{"b", "f"}, links(groups[0].Articles))
	assert.Equal(t, "2024-01-02", groups[1].Day)
	assert.Equal(t, []string{"a", "c"}, links(groups[1].Articles))
	assert.Equal(t, "2024-01-01", groups[2].Day)

	var flat []string
	for _, group := range groups {
		flat = append(flat, links(group.Articles)...)
	}
	assert.ElementsMatch(t, []string{"a", "b", "c", "e", "f"}, flat)
}

func TestGroupByDay_NonISODates(t *testing.T) {
	articles := []model.Article{
		{Link: "rfc", Published: "Mon, 02 Jan 2023 15:04:05 -0700"},
		{Link: "iso", Published: "2023-01-02T08:00:00Z"},
		{Link: "space", Published: " 2023-01-01 10:00:00"},
	}

	groups := GroupByDay(articles)

	require.Len(t, groups, 2)
	assert.Equal(t, "2023-01-02", groups[0].Day)
	assert.Equal(t, []string{"rfc", "iso"}, links(groups[0].Articles))
	assert.Equal(t, "2023-01-01", groups[1].Day)
	assert.Equal(t, []string{"space"}, links(groups[1].Articles))
}

func TestGroupByDay_KeepsEveryParseableRecentArticle(t *testing.T) {
	articles := []model.Article{
		{Link: "junk", Published: "2024-01-03 garbage"},
		{Link: "rfc", Published: "Mon, 02 Jan 2023 15:04:05 -0700"},
		{Link: "iso", Published: "2024-01-02T10:00:00Z"},
		{Link: "bare", Published: "2024-01-01"},
		{Link: "bad", Published: "not a date"},
	}

	recent := Recent(articles, 10)

	var parseable []string
	for _, article := range recent {
		if _, ok := ParsePublished(article.Published); ok {
			parseable = append(parseable, article.Link)
		}
	}

	var grouped []string
	for _, group := range GroupByDay(recent) {
		grouped = append(grouped, links(group.Articles)...)
	}

	assert.Contains(t, grouped, "rfc")
	assert.NotContains(t, grouped, "bad")
	assert.ElementsMatch(t, parseable, grouped)
}

func TestDayKey(t *testing.T) {
	tests := []struct {
		published string
		want      string
		ok        bool
	}{
		{"2024-01-02T23:30:00-08:00", "2024-01-02", true},
		{"2024-01-02", "2024-01-02", true},
		{"Tue, 02 Jan 2024 15:04:05 +0000", "2024-01-02", true},
		{"", "", false},
		{"not a date", "", false},
	}

	for _, tt := range tests {
		got, ok := DayKey(tt.published)
		assert.Equal(t, tt.ok, ok, tt.published)
		assert.Equal(t, tt.want, got, tt.published)
	}
}

func TestPaginate(t *testing.T) {
	groups := make([]DayGroup, 7)
	for i := range groups {
		groups[i] = DayGroup{Day: string(rune('a' + i))}
	}

	tests := []struct {
		name      string
		page      int
		wantIndex int
		wantLen   int
	}{
		{"first page", 0, 0, 3},
		{"middle page", 1, 1, 3},
		{"last page is partial", 2, 2, 1},
		{"past the end is clamped", 10, 2, 1},
		{"negative is clamped", -4, 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Paginate(groups, tt.page, DefaultDaysPerPage)

			assert.Equal(t, tt.wantIndex, page.Index)
			assert.Equal(t, 3, page.Total)
			assert.Len(t, page.Groups, tt.wantLen)
		})
	}
}

func TestPaginate_Empty(t *testing.T) {
	page := Paginate(nil, 3, DefaultDaysPerPage)

	assert.Equal(t, 0, page.Index)
	assert.Equal(t, 1, page.Total)
	assert.NotNil(t, page.Groups)
	assert.Empty(t, page.Groups)
}

func TestPager(t *testing.T) {
	pager := NewPager(7, 3)
	assert.Equal(t, 0, pager.Page())
	assert.Equal(t, 3, pager.Total())

	assert.Equal(t, 0, pager.Prev(), "prev on first page stays")
	assert.Equal(t, 1, pager.Next())
	assert.Equal(t, 2, pager.Next())
	assert.Equal(t, 2, pager.Next(), "next on last page stays")
	assert.Equal(t, 1, pager.Prev())

	pager.Resize(2, 3)
	assert.Equal(t, 0, pager.Page())
	assert.Equal(t, 1, pager.Total())
}
