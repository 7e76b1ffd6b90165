package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internaldb "pinya-planner/internal/db"
	"pinya-planner/internal/domain"
)

func TestEventRepo_CreateAndList(t *testing.T) {
	writeDB, _ := internaldb.OpenTestSQLite(t)
	repo := NewEventRepo(writeDB)
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.Event{Title: "Assaig general", Date: "2025-03-01"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	_, err = repo.Create(ctx, &domain.Event{Title: "Diada", Date: "2025-02-01"})
	require.NoError(t, err)

	events, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Diada", events[0].Title, "events list in date order")
}

func TestEventRepo_FirstByDate(t *testing.T) {
	writeDB, _ := internaldb.OpenTestSQLite(t)
	repo := NewEventRepo(writeDB)
	ctx := context.Background()

	a, err := repo.Create(ctx, &domain.Event{ID: "a", Title: "Morning", Date: "2025-03-01"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.Event{ID: "b", Title: "Evening", Date: "2025-03-01"})
	require.NoError(t, err)

	got, err := repo.FirstByDate(ctx, "2025-03-01")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID, "ties on a date resolve by (date, id) order")

	t.Run("no event on date", func(t *testing.T) {
		_, err := repo.FirstByDate(ctx, "2030-01-01")
		var notFound *domain.NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})
}

func TestVoteRepo_CastAndList(t *testing.T) {
	writeDB, _ := internaldb.OpenTestSQLite(t)
	repo := NewVoteRepo(writeDB)
	ctx := context.Background()

	require.NoError(t, repo.Cast(ctx, &domain.VoteRecord{Nickname: "ana", EventID: "ev1", Vote: domain.VoteComing}))
	require.NoError(t, repo.Cast(ctx, &domain.VoteRecord{Nickname: "bruno", EventID: "ev1", Vote: domain.VoteLate}))

	// Re-casting replaces the previous vote.
	require.NoError(t, repo.Cast(ctx, &domain.VoteRecord{Nickname: "bruno", EventID: "ev1", Vote: domain.VoteComing}))

	votes, err := repo.ListByEvent(ctx, "ev1")
	require.NoError(t, err)
	require.Len(t, votes, 2)
	for _, v := range votes {
		assert.Equal(t, domain.VoteComing, v.Vote)
	}
}
