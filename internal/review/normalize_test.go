package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kovalyov-valentin/news-selects/internal/model"
)

func TestNormalize(t *testing.T) {
	t.Run("fills missing cells and parses approval", func(t *testing.T) {
		rows := []model.Row{
			{"A", "l1", "S", "2024-01-02T00:00Z", "c1", "✅"},
			{"B", "l2", "S", "2024-01-03T00:00Z"},
			{"C", "l3", "S", "2024-01-04T00:00Z", "", "❌"},
		}

		articles := Normalize(rows)
		require.Len(t, articles, 3)

		assert.Equal(t, model.Article{
			Title: "A", Link: "l1", Source: "S", Published: "2024-01-02T00:00Z", Caption: "c1", Approval: model.Approved,
		}, articles[0])
		assert.Equal(t, "", articles[1].Caption)
		assert.Equal(t, model.Pending, articles[1].Approval)
		assert.Equal(t, model.Rejected, articles[2].Approval)
	})

	t.Run("drops rows without published date", func(t *testing.T) {
		rows := []model.Row{
			{"A", "l1", "S", "2024-01-02"},
			{"", "", "", ""},
			{"B", "l2"},
			{},
		}

		articles := Normalize(rows)

		require.Len(t, articles, 1)
		assert.Equal(t, "l1", articles[0].Link)
	})

	t.Run("empty input", func(t *testing.T) {
		articles := Normalize(nil)
		assert.NotNil(t, articles)
		assert.Empty(t, articles)
	})
}

func TestToRow(t *testing.T) {
	article := model.Article{Title: "X", Link: "l1", Source: "S", Published: "2024-01-02", Caption: "c", Approval: model.Approved}

	assert.Equal(t, model.Row{"X", "l1", "S", "2024-01-02", "c", "✅"}, ToRow(article))

	article.Approval = model.Pending
	assert.Equal(t, "", ToRow(article)[model.ColApproval])

	assert.Equal(t, article, FromRow(ToRow(article)))
}
