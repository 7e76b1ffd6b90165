package repository

import (
	"context"
	"database/sql"

	"pinya-planner/internal/domain"
)

var _ domain.EventRepository = (*EventRepo)(nil)

// EventRepo implements domain.EventRepository using SQLite.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo creates a new EventRepo.
func NewEventRepo(db *sql.DB) *EventRepo {
	return &EventRepo{db: db}
}

const eventColumns = `id, title, date, location, notes, created_at`

// Create inserts a new event.
func (r *EventRepo) Create(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	if e == nil {
		return nil, domain.ErrValidation("event is required")
	}
	id := e.ID
	if id == "" {
		id = domain.NewID()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO events (id, title, date, location, notes)
		VALUES (?, ?, ?, ?, ?)
	`, id, e.Title, e.Date, e.Location, e.Notes)
	if err != nil {
		return nil, mapDBError(err)
	}
	return r.GetByID(ctx, id)
}

// GetByID returns an event by ID.
func (r *EventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+eventColumns+` FROM events WHERE id = ?
	`, id)
	return scanEvent(row.Scan)
}

// List returns all events ordered by date.
func (r *EventRepo) List(ctx context.Context) ([]domain.Event, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+eventColumns+` FROM events ORDER BY date, id
	`)
	if err != nil {
		return nil, mapDBError(err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		e, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

// FirstByDate returns the first event on a date in (date, id) order.
// Which event "first" means when several share a date is deliberately
// unspecified beyond this ordering; callers that care pass an event id.
func (r *EventRepo) FirstByDate(ctx context.Context, date string) (*domain.Event, error) {
	iso, err := domain.NormalizeDate(date)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRowContext(ctx, `
		SELECT `+eventColumns+` FROM events WHERE date = ? ORDER BY date, id LIMIT 1
	`, iso)
	return scanEvent(row.Scan)
}

func scanEvent(scan func(dest ...any) error) (*domain.Event, error) {
	var e domain.Event
	if err := scan(&e.ID, &e.Title, &e.Date, &e.Location, &e.Notes, &e.CreatedAt); err != nil {
		return nil, mapDBError(err)
	}
	return &e, nil
}
