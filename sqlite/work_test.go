package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/ao3doc"
	"github.com/fwojciec/ao3doc/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openDB(t *testing.T) *sqlite.DB {
	t.Helper()

	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func newWork(id, title, author string) *ao3doc.Work {
	return &ao3doc.Work{
		ID:        id,
		Title:     title,
		Author:    author,
		Published: "2024-09-01",
		Updated:   "2024-10-12",
		Language:  "English",
		Words:     1200,
		Hits:      30,
		Tags:      []ao3doc.Tag{{Name: "Fluff", Link: "/tags/Fluff/works"}},
		Chapters:  []ao3doc.Chapter{{Name: "1. Start", ID: "10"}},
		Body: []ao3doc.Paragraph{
			{ao3doc.Text("Hello"), ao3doc.Bold("world")},
		},
		Progress: ao3doc.ChapterProgress{Current: 1, Total: 0},
	}
}

func TestWorkService_SaveWork(t *testing.T) {
	t.Parallel()

	t.Run("round-trips the full work", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewWorkService(openDB(t))
		ctx := context.Background()
		work := newWork("123", "Title", "someone")

		require.NoError(t, svc.SaveWork(ctx, work))

		got, err := svc.FindWorkByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, work, got)
	})

	t.Run("replaces an existing work", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewWorkService(openDB(t))
		ctx := context.Background()

		require.NoError(t, svc.SaveWork(ctx, newWork("123", "Old", "someone")))
		before, err := svc.FindWorks(ctx, ao3doc.WorkFilter{})
		require.NoError(t, err)
		require.Len(t, before, 1)

		updated := newWork("123", "New", "someone")
		updated.Body = append(updated.Body, ao3doc.Paragraph{ao3doc.Text("More.")})
		require.NoError(t, svc.SaveWork(ctx, updated))

		after, err := svc.FindWorks(ctx, ao3doc.WorkFilter{})
		require.NoError(t, err)
		require.Len(t, after, 1)
		assert.Equal(t, before[0].ID, after[0].ID)
		assert.Equal(t, "New", after[0].Title)
		assert.NotEqual(t, before[0].ContentHash, after[0].ContentHash)
	})

	t.Run("same body gives same content hash", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewWorkService(openDB(t))
		ctx := context.Background()

		require.NoError(t, svc.SaveWork(ctx, newWork("1", "A", "x")))
		require.NoError(t, svc.SaveWork(ctx, newWork("2", "B", "y")))

		records, err := svc.FindWorks(ctx, ao3doc.WorkFilter{})
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, records[0].ContentHash, records[1].ContentHash)
		assert.NotEmpty(t, records[0].ContentHash)
	})

	t.Run("rejects work without ID", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewWorkService(openDB(t))
		err := svc.SaveWork(context.Background(), newWork("", "Title", "someone"))

		require.Error(t, err)
		assert.Equal(t, ao3doc.EINVALID, ao3doc.ErrorCode(err))
	})
}

func TestWorkService_FindWorkByID(t *testing.T) {
	t.Parallel()

	svc := sqlite.NewWorkService(openDB(t))
	_, err := svc.FindWorkByID(context.Background(), "missing")

	require.Error(t, err)
	assert.Equal(t, ao3doc.ENOTFOUND, ao3doc.ErrorCode(err))
}

func TestWorkService_FindWorks(t *testing.T) {
	t.Parallel()

	svc := sqlite.NewWorkService(openDB(t))
	ctx := context.Background()
	require.NoError(t, svc.SaveWork(ctx, newWork("1", "A", "alice")))
	require.NoError(t, svc.SaveWork(ctx, newWork("2", "B", "bob")))
	require.NoError(t, svc.SaveWork(ctx, newWork("3", "C", "alice")))

	t.Run("returns all records", func(t *testing.T) {
		t.Parallel()

		records, err := svc.FindWorks(ctx, ao3doc.WorkFilter{})
		require.NoError(t, err)
		require.Len(t, records, 3)
		for _, r := range records {
			assert.NotEmpty(t, r.ID)
			assert.Equal(t, 1200, r.Words)
			assert.False(t, r.FetchedAt.IsZero())
		}
	})

	t.Run("filters by author", func(t *testing.T) {
		t.Parallel()

		author := "alice"
		records, err := svc.FindWorks(ctx, ao3doc.WorkFilter{Author: &author})
		require.NoError(t, err)

		var ids []string
		for _, r := range records {
			ids = append(ids, r.WorkID)
		}
		assert.ElementsMatch(t, []string{"1", "3"}, ids)
	})

	t.Run("paginates", func(t *testing.T) {
		t.Parallel()

		first, err := svc.FindWorks(ctx, ao3doc.WorkFilter{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, first, 2)

		rest, err := svc.FindWorks(ctx, ao3doc.WorkFilter{Offset: 2})
		require.NoError(t, err)
		assert.Len(t, rest, 1)
	})
}

func TestWorkService_DeleteWork(t *testing.T) {
	t.Parallel()

	t.Run("removes stored work", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewWorkService(openDB(t))
		ctx := context.Background()
		require.NoError(t, svc.SaveWork(ctx, newWork("1", "A", "alice")))

		require.NoError(t, svc.DeleteWork(ctx, "1"))

		_, err := svc.FindWorkByID(ctx, "1")
		assert.Equal(t, ao3doc.ENOTFOUND, ao3doc.ErrorCode(err))
	})

	t.Run("returns not found for unknown work", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewWorkService(openDB(t))
		err := svc.DeleteWork(context.Background(), "nope")

		assert.Equal(t, ao3doc.ENOTFOUND, ao3doc.ErrorCode(err))
	})
}
