package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pinya-planner/internal/db/repository"
	"pinya-planner/internal/domain"
)

// seedDemo populates an empty development database with a small troupe,
// an upcoming rehearsal, and RSVP votes so every pool mode has data to
// show. Idempotent — skips when members already exist.
func seedDemo(ctx context.Context, writeDB *sql.DB, members *repository.MemberRepo, events *repository.EventRepo) error {
	existing, err := members.List(ctx)
	if err != nil {
		return fmt.Errorf("list members: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	demo := []domain.Member{
		{Nickname: "cap", Name: "Carla", Surname: "Puig", Position: "Baix", IsAdmin: true},
		{Nickname: "ferran", Name: "Ferran", Surname: "Roca", Position: "Baix", Position2: "Contrafort"},
		{Nickname: "laia", Name: "Laia", Surname: "Serra", Position: "Vent"},
		{Nickname: "pol", Name: "Pol", Surname: "Vidal", Position: "Mans", Position2: "Lateral"},
		{Nickname: "mireia", Name: "Mireia", Surname: "Font", Position: "Agulla"},
		{Nickname: "biel", Name: "Biel", Surname: "Camps", Position: "Crossa"},
		{Nickname: "nuria", Name: "Núria", Surname: "Pla", Position: "Enxaneta"},
	}
	for i := range demo {
		if _, err := members.Create(ctx, &demo[i]); err != nil {
			return fmt.Errorf("create member %s: %w", demo[i].Nickname, err)
		}
	}

	rehearsal, err := events.Create(ctx, &domain.Event{
		ID:       domain.NewID(),
		Title:    "Assaig general",
		Date:     domain.FormatISODate(time.Now().AddDate(0, 0, 7)),
		Location: "Local d'assaig",
	})
	if err != nil {
		return fmt.Errorf("create rehearsal: %w", err)
	}

	votes := repository.NewVoteRepo(writeDB)
	for _, v := range []domain.VoteRecord{
		{Nickname: "cap", EventID: rehearsal.ID, Vote: domain.VoteComing},
		{Nickname: "ferran", EventID: rehearsal.ID, Vote: domain.VoteComing},
		{Nickname: "laia", EventID: rehearsal.ID, Vote: domain.VoteLate},
		{Nickname: "pol", EventID: rehearsal.ID, Vote: domain.VoteNotComing, Comment: "treballo"},
	} {
		rec := v
		if err := votes.Cast(ctx, &rec); err != nil {
			return fmt.Errorf("cast vote for %s: %w", v.Nickname, err)
		}
	}
	return nil
}
