package review

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kovalyov-valentin/news-selects/internal/model"
)

func TestWorkingSet(t *testing.T) {
	original := NewWorkingSet([]model.Article{
		{Link: "l1", Caption: "one"},
		{Link: "l2", Caption: "two"},
	})

	edited := original.
		WithCaption("l2", "edited").
		ToggleApprove("l1").
		ToggleReject("l2")

	l1, _ := edited.Get("l1")
	l2, _ := edited.Get("l2")
	assert.Equal(t, model.Approved, l1.Approval)
	assert.Equal(t, model.Rejected, l2.Approval)
	assert.Equal(t, "edited", l2.Caption)

	// исходный список не меняется
	before, _ := original.Get("l2")
	assert.Equal(t, "two", before.Caption)
	assert.Equal(t, model.Pending, before.Approval)

	again := edited.ToggleApprove("l1").ToggleReject("l2")
	l1, _ = again.Get("l1")
	l2, _ = again.Get("l2")
	assert.Equal(t, model.Pending, l1.Approval)
	assert.Equal(t, model.Pending, l2.Approval)
}

func TestWorkingSet_UnknownLinkIsNoop(t *testing.T) {
	ws := NewWorkingSet([]model.Article{{Link: "l1"}})

	assert.Equal(t, ws.Articles(), ws.WithCaption("missing", "x").Articles())

	_, ok := ws.Get("missing")
	assert.False(t, ok)
}

func TestWorkingSet_RejectIsIdempotent(t *testing.T) {
	ws := NewWorkingSet([]model.Article{{Link: "l1"}}).Reject("l1").Reject("l1")

	article, _ := ws.Get("l1")
	assert.Equal(t, model.Rejected, article.Approval)
}

func TestWorkingSet_LinkAt(t *testing.T) {
	ws := NewWorkingSet([]model.Article{{Link: "l1"}, {Link: "l2"}})

	link, ok := ws.LinkAt(1)
	assert.True(t, ok)
	assert.Equal(t, "l2", link)

	_, ok = ws.LinkAt(2)
	assert.False(t, ok)
	assert.Equal(t, 2, ws.Len())
}
