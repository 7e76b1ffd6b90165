package repository

import (
	"context"
	"database/sql"

	"pinya-planner/internal/domain"
)

var _ domain.VoteRepository = (*VoteRepo)(nil)

// VoteRepo implements domain.VoteRepository using SQLite. The planner
// only reads votes; the RSVP flow that writes them is a separate surface.
type VoteRepo struct {
	db *sql.DB
}

// NewVoteRepo creates a new VoteRepo.
func NewVoteRepo(db *sql.DB) *VoteRepo {
	return &VoteRepo{db: db}
}

// ListByEvent returns all votes cast for one event.
func (r *VoteRepo) ListByEvent(ctx context.Context, eventID string) ([]domain.VoteRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT nickname, event_id, vote, comment, created_at
		FROM votes WHERE event_id = ? ORDER BY created_at
	`, eventID)
	if err != nil {
		return nil, mapDBError(err)
	}
	defer rows.Close()

	var votes []domain.VoteRecord
	for rows.Next() {
		var v domain.VoteRecord
		if err := rows.Scan(&v.Nickname, &v.EventID, &v.Vote, &v.Comment, &v.CreatedAt); err != nil {
			return nil, err
		}
		votes = append(votes, v)
	}
	return votes, rows.Err()
}

// Cast records or replaces a member's vote for an event. Used by tests
// and the seed command; the public RSVP flow is out of the core's scope.
func (r *VoteRepo) Cast(ctx context.Context, v *domain.VoteRecord) error {
	if v == nil || v.Nickname == "" || v.EventID == "" {
		return domain.ErrValidation("nickname and event id are required")
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO votes (nickname, event_id, vote, comment)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (nickname, event_id) DO UPDATE SET vote = excluded.vote, comment = excluded.comment
	`, v.Nickname, v.EventID, v.Vote, v.Comment)
	return mapDBError(err)
}
