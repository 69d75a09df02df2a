package ao3doc_test

import (
	"testing"

	"github.com/fwojciec/ao3doc"
	"github.com/stretchr/testify/assert"
)

func TestWork_Validate(t *testing.T) {
	t.Parallel()

	t.Run("requires ID", func(t *testing.T) {
		t.Parallel()

		w := &ao3doc.Work{Title: "Title"}

		assert.Equal(t, ao3doc.EINVALID, ao3doc.ErrorCode(w.Validate()))
	})

	t.Run("requires title", func(t *testing.T) {
		t.Parallel()

		w := &ao3doc.Work{ID: "1"}

		assert.Equal(t, ao3doc.EINVALID, ao3doc.ErrorCode(w.Validate()))
	})

	t.Run("accepts work with ID and title", func(t *testing.T) {
		t.Parallel()

		w := &ao3doc.Work{ID: "1", Title: "Title"}

		assert.NoError(t, w.Validate())
	})
}

func TestTag_Equality(t *testing.T) {
	t.Parallel()

	a := ao3doc.Tag{Name: "Fluff", Link: "/tags/Fluff/works"}
	b := ao3doc.Tag{Name: "Fluff", Link: "/tags/Fluff/works"}
	c := ao3doc.Tag{Name: "Fluff", Link: "/tags/Angst/works"}

	assert.True(t, a == b)
	assert.False(t, a == c)
}
