package ao3doc_test

import (
	"testing"

	"github.com/fwojciec/ao3doc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkURL(t *testing.T) {
	t.Parallel()

	t.Run("builds work URL with adult view enabled", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "https://archiveofourown.org/works/58593067?view_adult=true",
			ao3doc.WorkURL(ao3doc.DefaultBaseURL, "58593067"))
	})

	t.Run("tolerates trailing slash on base URL", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "http://localhost/works/1?view_adult=true",
			ao3doc.WorkURL("http://localhost/", "1"))
	})
}

func TestCheckPage(t *testing.T) {
	t.Parallel()

	t.Run("returns invalid work ID for the not-found page", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div class="system errors error-404 region">Error 404</div></body></html>`

		err := ao3doc.CheckPage("999", html)

		require.Error(t, err)
		assert.Equal(t, ao3doc.EINVALIDID, ao3doc.ErrorCode(err))
	})

	t.Run("accepts regular work page", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div id="workskin"></div></body></html>`

		assert.NoError(t, ao3doc.CheckPage("1", html))
	})
}
